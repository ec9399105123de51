package service

import (
	"context"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	apperrors "blogcms/internal/errors"
	"blogcms/internal/model"
	"blogcms/internal/repository"
)

// PostInput carries the writable post fields.
type PostInput struct {
	Title      string
	Content    string
	Excerpt    string
	CategoryID uint
	Status     string
	Tags       []string
	Thumbnail  string
}

// PostService handles the owner's blog CRUD. The author is always forced to
// the caller; a non-owner hitting an existing post gets not-found.
type PostService interface {
	Create(ctx context.Context, authorID uint, in PostInput) (*repository.PostWithCounts, error)
	GetOwned(ctx context.Context, id, authorID uint) (*repository.PostWithCounts, error)
	UpdateOwned(ctx context.Context, id, authorID uint, in PostInput) (*repository.PostWithCounts, error)
	DeleteOwned(ctx context.Context, id, authorID uint) error
}

type postService struct {
	postRepo     repository.PostRepository
	categoryRepo repository.CategoryRepository
}

// NewPostService creates a new post service.
func NewPostService(postRepo repository.PostRepository, categoryRepo repository.CategoryRepository) PostService {
	return &postService{postRepo: postRepo, categoryRepo: categoryRepo}
}

// validate checks the typed fields and resolves defaults.
func (s *postService) validate(ctx context.Context, in *PostInput) error {
	ferrs := apperrors.FieldErrors{}

	if in.Status == "" {
		in.Status = string(model.PostStatusDraft)
	} else if !model.PostStatus(in.Status).Valid() {
		ferrs.Add("status", "Select a valid choice: draft or published.")
	}

	if _, err := s.categoryRepo.FindByID(ctx, in.CategoryID); err != nil {
		if err == gorm.ErrRecordNotFound {
			ferrs.Add("category", "Invalid category.")
		} else {
			return err
		}
	}

	if len(ferrs) > 0 {
		return ferrs
	}
	return nil
}

// Create creates a post owned by the caller.
func (s *postService) Create(ctx context.Context, authorID uint, in PostInput) (*repository.PostWithCounts, error) {
	if err := s.validate(ctx, &in); err != nil {
		return nil, err
	}

	post := &model.Post{
		AuthorID:   authorID,
		Title:      in.Title,
		Content:    in.Content,
		Excerpt:    in.Excerpt,
		CategoryID: in.CategoryID,
		Status:     model.PostStatus(in.Status),
		Tags:       datatypes.NewJSONSlice(in.Tags),
		Thumbnail:  in.Thumbnail,
		Show:       true,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	return s.postRepo.FindWithCounts(ctx, post.ID)
}

// GetOwned returns one of the caller's posts with counts.
func (s *postService) GetOwned(ctx context.Context, id, authorID uint) (*repository.PostWithCounts, error) {
	post, err := s.postRepo.FindOwnedWithCounts(ctx, id, authorID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrPostNotFound
		}
		return nil, err
	}
	return post, nil
}

// UpdateOwned edits one of the caller's posts.
func (s *postService) UpdateOwned(ctx context.Context, id, authorID uint, in PostInput) (*repository.PostWithCounts, error) {
	post, err := s.postRepo.FindOwned(ctx, id, authorID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrPostNotFound
		}
		return nil, err
	}

	if err := s.validate(ctx, &in); err != nil {
		return nil, err
	}

	post.Title = in.Title
	post.Content = in.Content
	post.Excerpt = in.Excerpt
	post.CategoryID = in.CategoryID
	post.Status = model.PostStatus(in.Status)
	post.Tags = datatypes.NewJSONSlice(in.Tags)
	post.Thumbnail = in.Thumbnail

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}
	return s.postRepo.FindOwnedWithCounts(ctx, id, authorID)
}

// DeleteOwned hard-deletes one of the caller's posts.
func (s *postService) DeleteOwned(ctx context.Context, id, authorID uint) error {
	if _, err := s.postRepo.FindOwned(ctx, id, authorID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperrors.ErrPostNotFound
		}
		return err
	}
	return s.postRepo.Delete(ctx, id)
}
