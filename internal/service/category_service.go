package service

import (
	"context"
	"encoding/json"
	"time"

	"blogcms/internal/cache"
	"blogcms/internal/model"
	"blogcms/internal/repository"
)

const (
	categoryCacheKey = "content_categories"
	categoryCacheTTL = 5 * time.Minute
)

// CategoryService exposes the content category list.
type CategoryService interface {
	List(ctx context.Context) ([]model.Category, error)
}

type categoryService struct {
	repo  repository.CategoryRepository
	cache *cache.Client
}

// NewCategoryService builds a CategoryService with repository and cache.
func NewCategoryService(repo repository.CategoryRepository, cache *cache.Client) CategoryService {
	return &categoryService{repo: repo, cache: cache}
}

// List returns all categories, read through the cache. Categories change
// rarely; a short TTL is enough to keep the list fresh.
func (s *categoryService) List(ctx context.Context) ([]model.Category, error) {
	if data, _ := s.cache.Get(ctx, categoryCacheKey); data != nil {
		var cached []model.Category
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, nil
		}
	}

	categories, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(categories); err == nil {
		_ = s.cache.Set(ctx, categoryCacheKey, payload, categoryCacheTTL)
	}
	return categories, nil
}
