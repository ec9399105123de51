package service

import (
	"context"

	"gorm.io/gorm"

	apperrors "blogcms/internal/errors"
	"blogcms/internal/repository"
)

const (
	// ActionLiked is reported when the toggle created a like.
	ActionLiked = "liked"
	// ActionUnliked is reported when the toggle removed a like.
	ActionUnliked = "unliked"
)

// LikeService toggles likes on posts.
type LikeService interface {
	// Toggle flips the caller's like on a post and returns the action taken
	// plus the post's like count after the operation.
	Toggle(ctx context.Context, postID, userID uint) (action string, likesCount int64, err error)
}

type likeService struct {
	postRepo repository.PostRepository
	likeRepo repository.LikeRepository
}

// NewLikeService creates a new like service.
func NewLikeService(postRepo repository.PostRepository, likeRepo repository.LikeRepository) LikeService {
	return &likeService{postRepo: postRepo, likeRepo: likeRepo}
}

func (s *likeService) Toggle(ctx context.Context, postID, userID uint) (string, int64, error) {
	if _, err := s.postRepo.FindByID(ctx, postID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return "", 0, apperrors.ErrPostNotFound
		}
		return "", 0, err
	}

	created, err := s.likeRepo.Toggle(ctx, postID, userID)
	if err != nil {
		return "", 0, err
	}

	likesCount, err := s.likeRepo.CountByPost(ctx, postID)
	if err != nil {
		return "", 0, err
	}

	if created {
		return ActionLiked, likesCount, nil
	}
	return ActionUnliked, likesCount, nil
}
