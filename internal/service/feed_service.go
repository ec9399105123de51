package service

import (
	"context"
	"net/url"

	"gorm.io/gorm"

	apperrors "blogcms/internal/errors"
	"blogcms/internal/model"
	"blogcms/internal/pagination"
	"blogcms/internal/repository"
)

// ParsePostFilter validates filter query parameters. Typed parameters
// (status, sort_by) fail with field errors on unknown values; free-text
// parameters always pass, since any string is a valid substring pattern.
// The owner post list variant does not support free-text search.
func ParsePostFilter(values url.Values, withSearch bool) (repository.PostFilter, error) {
	f := repository.PostFilter{Category: values.Get("category")}
	if withSearch {
		f.Search = values.Get("search")
	}

	ferrs := apperrors.FieldErrors{}
	if raw := values.Get("status"); raw != "" {
		status := model.PostStatus(raw)
		if !status.Valid() {
			ferrs.Add("status", "Select a valid choice: draft or published.")
		} else {
			f.Status = status
		}
	}
	if raw := values.Get("sort_by"); raw != "" {
		sort := repository.SortMode(raw)
		if !sort.Valid() {
			ferrs.Add("sort_by", "Select a valid choice: latest, popular or most-commented.")
		} else {
			f.Sort = sort
		}
	}

	if len(ferrs) > 0 {
		return repository.PostFilter{}, ferrs
	}
	return f, nil
}

// FeedService assembles the public explore feed and the owner's post list.
// It holds no state; each call is a query-composition pipeline executed
// against the store: filter, then aggregate, then paginate.
type FeedService interface {
	Explore(ctx context.Context, query url.Values) ([]repository.PostWithCounts, int64, pagination.Params, error)
	OwnerPosts(ctx context.Context, authorID uint, query url.Values) ([]repository.PostWithCounts, error)
	Detail(ctx context.Context, id uint) (*repository.PostWithCounts, error)
}

type feedService struct {
	postRepo repository.PostRepository
}

// NewFeedService creates a new feed service.
func NewFeedService(postRepo repository.PostRepository) FeedService {
	return &feedService{postRepo: postRepo}
}

// Explore returns one page of the public feed: published, non-hidden posts
// narrowed by the caller's filters and annotated with counts.
func (s *feedService) Explore(ctx context.Context, query url.Values) ([]repository.PostWithCounts, int64, pagination.Params, error) {
	filter, err := ParsePostFilter(query, true)
	if err != nil {
		return nil, 0, pagination.Params{}, err
	}
	page, err := pagination.Parse(query, pagination.DefaultPageSize)
	if err != nil {
		return nil, 0, pagination.Params{}, err
	}

	posts, total, err := s.postRepo.ListVisible(ctx, filter, page.Offset(), page.PageSize)
	if err != nil {
		return nil, 0, pagination.Params{}, err
	}
	if err := page.Check(total); err != nil {
		return nil, 0, pagination.Params{}, err
	}
	return posts, total, page, nil
}

// OwnerPosts returns the author's full post list, drafts and hidden posts
// included, with counts. Unpaginated.
func (s *feedService) OwnerPosts(ctx context.Context, authorID uint, query url.Values) ([]repository.PostWithCounts, error) {
	filter, err := ParsePostFilter(query, false)
	if err != nil {
		return nil, err
	}
	return s.postRepo.ListByAuthor(ctx, authorID, filter)
}

// Detail returns a single post with counts.
func (s *feedService) Detail(ctx context.Context, id uint) (*repository.PostWithCounts, error) {
	post, err := s.postRepo.FindWithCounts(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrPostNotFound
		}
		return nil, err
	}
	return post, nil
}
