package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"blogcms/internal/model"
)

// UserFilter narrows the admin user list.
type UserFilter struct {
	IsActive *bool
	Search   string
}

// UserWithPostCount is a user annotated with the number of posts they own.
type UserWithPostCount struct {
	model.User
	PostsCount int64 `json:"posts"`
}

// UserRepository defines user persistence operations.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	Update(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id uint) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindWithPostCount(ctx context.Context, id uint) (*UserWithPostCount, error)
	ListWithPostCounts(ctx context.Context, f UserFilter, offset, limit int) ([]UserWithPostCount, int64, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// Create creates a new user.
func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

// Update updates an existing user.
func (r *userRepository) Update(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

// FindByID finds a user by ID.
func (r *userRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmail finds a user by email.
func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindWithPostCount finds a user annotated with their post count.
func (r *userRepository) FindWithPostCount(ctx context.Context, id uint) (*UserWithPostCount, error) {
	var user UserWithPostCount
	if err := r.db.WithContext(ctx).Model(&model.User{}).
		Select("users.*, (SELECT COUNT(*) FROM posts WHERE posts.author_id = users.id) AS posts_count").
		Where("users.id = ?", id).
		First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// ListWithPostCounts lists users annotated with their post counts for the
// admin console, filtered and sliced.
func (r *userRepository) ListWithPostCounts(ctx context.Context, f UserFilter, offset, limit int) ([]UserWithPostCount, int64, error) {
	base := func() *gorm.DB {
		q := r.db.WithContext(ctx).Model(&model.User{})
		if f.IsActive != nil {
			q = q.Where("is_active = ?", *f.IsActive)
		}
		if f.Search != "" {
			pattern := "%" + strings.ToLower(f.Search) + "%"
			q = q.Where("LOWER(first_name) LIKE ? OR LOWER(email) LIKE ?", pattern, pattern)
		}
		return q
	}

	var total int64
	if err := base().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []UserWithPostCount
	if err := base().
		Select("users.*, (SELECT COUNT(*) FROM posts WHERE posts.author_id = users.id) AS posts_count").
		Order("users.id").
		Offset(offset).Limit(limit).
		Find(&users).Error; err != nil {
		return nil, 0, err
	}
	return users, total, nil
}
