package service

import (
	"context"
	"strings"

	"gorm.io/gorm"

	apperrors "blogcms/internal/errors"
	"blogcms/internal/model"
	"blogcms/internal/repository"
)

// CommentService handles append-only comment creation and listing, plus the
// admin-scoped delete.
type CommentService interface {
	List(ctx context.Context, postID uint) ([]model.Comment, error)
	Create(ctx context.Context, postID, userID uint, content string) (*model.Comment, error)
	// AdminDelete removes a comment only if it belongs to the given post.
	AdminDelete(ctx context.Context, postID, commentID uint) error
}

type commentService struct {
	postRepo    repository.PostRepository
	commentRepo repository.CommentRepository
}

// NewCommentService creates a new comment service.
func NewCommentService(postRepo repository.PostRepository, commentRepo repository.CommentRepository) CommentService {
	return &commentService{postRepo: postRepo, commentRepo: commentRepo}
}

// List returns a post's comments oldest first.
func (s *commentService) List(ctx context.Context, postID uint) ([]model.Comment, error) {
	if err := s.requirePost(ctx, postID); err != nil {
		return nil, err
	}
	return s.commentRepo.ListByPost(ctx, postID)
}

// Create appends a comment authored by the caller.
func (s *commentService) Create(ctx context.Context, postID, userID uint, content string) (*model.Comment, error) {
	if err := s.requirePost(ctx, postID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(content) == "" {
		return nil, apperrors.FieldErrors{"content": {"This field may not be blank."}}
	}

	comment := &model.Comment{
		PostID:  postID,
		UserID:  userID,
		Content: content,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	return s.commentRepo.FindByID(ctx, comment.ID)
}

// AdminDelete deletes a comment scoped to a post. A valid comment ID under
// the wrong post is not found, never deleted.
func (s *commentService) AdminDelete(ctx context.Context, postID, commentID uint) error {
	if err := s.requirePost(ctx, postID); err != nil {
		return err
	}
	if err := s.commentRepo.DeleteScoped(ctx, postID, commentID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperrors.ErrCommentNotFound
		}
		return err
	}
	return nil
}

func (s *commentService) requirePost(ctx context.Context, postID uint) error {
	if _, err := s.postRepo.FindByID(ctx, postID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperrors.ErrPostNotFound
		}
		return err
	}
	return nil
}
