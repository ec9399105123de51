package repository

import (
	"context"

	"gorm.io/gorm"

	"blogcms/internal/model"
)

// CategoryRepository defines category persistence operations.
type CategoryRepository interface {
	List(ctx context.Context) ([]model.Category, error)
	FindByID(ctx context.Context, id uint) (*model.Category, error)
	FirstOrCreate(ctx context.Context, category *model.Category) (bool, error)
}

type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository creates a new category repository.
func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

// List lists all categories.
func (r *categoryRepository) List(ctx context.Context) ([]model.Category, error) {
	var categories []model.Category
	if err := r.db.WithContext(ctx).Order("id").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// FindByID finds a category by ID.
func (r *categoryRepository) FindByID(ctx context.Context, id uint) (*model.Category, error) {
	var category model.Category
	if err := r.db.WithContext(ctx).First(&category, id).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// FirstOrCreate inserts the category unless one with the same name exists.
// The boolean reports whether a new row was created.
func (r *categoryRepository) FirstOrCreate(ctx context.Context, category *model.Category) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("name = ?", category.Name).
		FirstOrCreate(category)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
