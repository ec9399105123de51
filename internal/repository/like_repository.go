package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"blogcms/internal/model"
)

// LikeRepository defines like persistence operations.
type LikeRepository interface {
	// Toggle creates the (post, user) like if absent or removes it if
	// present, and reports whether this call created it.
	Toggle(ctx context.Context, postID, userID uint) (created bool, err error)
	CountByPost(ctx context.Context, postID uint) (int64, error)
}

type likeRepository struct {
	db *gorm.DB
}

// NewLikeRepository creates a new like repository.
func NewLikeRepository(db *gorm.DB) LikeRepository {
	return &likeRepository{db: db}
}

// Toggle runs as a single transaction. The conditional insert uses the
// unique (post_id, user_id) index as the arbiter: RowsAffected == 0 means
// the row already existed, so this toggle is an unlike. When two toggles
// from the same user race, the store serializes them on the constraint; a
// loser whose delete finds zero rows still leaves the pair in a consistent
// state.
func (r *likeRepository) Toggle(ctx context.Context, postID, userID uint) (bool, error) {
	created := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		like := model.Like{PostID: postID, UserID: userID}
		res := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "post_id"}, {Name: "user_id"}},
			DoNothing: true,
		}).Create(&like)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			created = true
			return nil
		}
		return tx.Where("post_id = ? AND user_id = ?", postID, userID).
			Delete(&model.Like{}).Error
	})
	return created, err
}

// CountByPost counts likes for a post.
func (r *likeRepository) CountByPost(ctx context.Context, postID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Like{}).
		Where("post_id = ?", postID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
