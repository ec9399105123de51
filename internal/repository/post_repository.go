package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"blogcms/internal/model"
)

// SortMode selects the feed ordering.
type SortMode string

const (
	SortDefault       SortMode = ""
	SortLatest        SortMode = "latest"
	SortPopular       SortMode = "popular"
	SortMostCommented SortMode = "most-commented"
)

// Valid reports whether s is a recognized sort mode.
func (s SortMode) Valid() bool {
	switch s {
	case SortDefault, SortLatest, SortPopular, SortMostCommented:
		return true
	}
	return false
}

// PostFilter narrows a post query. Zero values impose no constraint; set
// fields are applied conjunctively.
type PostFilter struct {
	Search   string
	Category string
	Status   model.PostStatus
	Sort     SortMode
}

// AdminPostFilter narrows the moderation list. Search matches post title or
// author first name; Show filters on the soft-delete flag when non-nil.
type AdminPostFilter struct {
	Status model.PostStatus
	Show   *bool
	Search string
}

// PostWithCounts is a post annotated with aggregate like and comment counts.
type PostWithCounts struct {
	model.Post
	LikesCount    int64 `json:"likes_count"`
	CommentsCount int64 `json:"comments_count"`
}

// postCountsSelect annotates each row with its like and comment counts in a
// single statement, so the query count stays constant regardless of result
// set size.
const postCountsSelect = "posts.*, " +
	"(SELECT COUNT(*) FROM likes WHERE likes.post_id = posts.id) AS likes_count, " +
	"(SELECT COUNT(*) FROM comments WHERE comments.post_id = posts.id) AS comments_count"

// PostRepository defines post persistence operations.
type PostRepository interface {
	Create(ctx context.Context, post *model.Post) error
	Update(ctx context.Context, post *model.Post) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*model.Post, error)
	FindOwned(ctx context.Context, id, authorID uint) (*model.Post, error)
	FindWithCounts(ctx context.Context, id uint) (*PostWithCounts, error)
	FindOwnedWithCounts(ctx context.Context, id, authorID uint) (*PostWithCounts, error)
	ListVisible(ctx context.Context, f PostFilter, offset, limit int) ([]PostWithCounts, int64, error)
	ListByAuthor(ctx context.Context, authorID uint, f PostFilter) ([]PostWithCounts, error)
	ListAdmin(ctx context.Context, f AdminPostFilter, offset, limit int) ([]PostWithCounts, int64, error)
	SetShow(ctx context.Context, id uint, show bool) (*model.Post, error)
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository.
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

// Create creates a new post.
func (r *postRepository) Create(ctx context.Context, post *model.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

// Update persists changes to an existing post.
func (r *postRepository) Update(ctx context.Context, post *model.Post) error {
	return r.db.WithContext(ctx).Save(post).Error
}

// Delete hard-deletes a post; comments and likes go with it via the
// cascading foreign keys.
func (r *postRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Post{}, id).Error
}

// FindByID finds a post by ID.
func (r *postRepository) FindByID(ctx context.Context, id uint) (*model.Post, error) {
	var post model.Post
	if err := r.db.WithContext(ctx).First(&post, id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// FindOwned finds a post by ID scoped to its author; a non-owner gets
// record-not-found, same as a missing post.
func (r *postRepository) FindOwned(ctx context.Context, id, authorID uint) (*model.Post, error) {
	var post model.Post
	if err := r.db.WithContext(ctx).
		Where("id = ? AND author_id = ?", id, authorID).
		First(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// FindWithCounts finds a post with author, category, and aggregate counts.
func (r *postRepository) FindWithCounts(ctx context.Context, id uint) (*PostWithCounts, error) {
	var post PostWithCounts
	if err := r.annotated(ctx).
		Where("posts.id = ?", id).
		First(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// FindOwnedWithCounts is FindWithCounts scoped to the post's author.
func (r *postRepository) FindOwnedWithCounts(ctx context.Context, id, authorID uint) (*PostWithCounts, error) {
	var post PostWithCounts
	if err := r.annotated(ctx).
		Where("posts.id = ? AND posts.author_id = ?", id, authorID).
		First(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// ListVisible lists published, non-hidden posts with counts, filtered,
// sorted, and sliced. Returns the slice and the total filtered count.
func (r *postRepository) ListVisible(ctx context.Context, f PostFilter, offset, limit int) ([]PostWithCounts, int64, error) {
	base := func() *gorm.DB {
		q := r.db.WithContext(ctx).Model(&model.Post{}).
			Where("posts.status = ? AND posts.show = ?", model.PostStatusPublished, true)
		return applyPostFilter(q, f)
	}

	var total int64
	if err := base().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var posts []PostWithCounts
	q := applySort(base().Select(postCountsSelect).Preload("Author").Preload("Category"), f.Sort)
	if err := q.Offset(offset).Limit(limit).Find(&posts).Error; err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

// ListByAuthor lists all of an author's posts with counts, drafts and hidden
// posts included. No pagination: the owner dashboard takes the full list.
func (r *postRepository) ListByAuthor(ctx context.Context, authorID uint, f PostFilter) ([]PostWithCounts, error) {
	q := r.db.WithContext(ctx).Model(&model.Post{}).
		Where("posts.author_id = ?", authorID)
	q = applyPostFilter(q, f)

	var posts []PostWithCounts
	if err := applySort(q.Select(postCountsSelect).Preload("Author").Preload("Category"), f.Sort).
		Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// ListAdmin lists posts for moderation, newest first, hidden posts included.
func (r *postRepository) ListAdmin(ctx context.Context, f AdminPostFilter, offset, limit int) ([]PostWithCounts, int64, error) {
	base := func() *gorm.DB {
		q := r.db.WithContext(ctx).Model(&model.Post{})
		if f.Status != "" {
			q = q.Where("posts.status = ?", f.Status)
		}
		if f.Show != nil {
			q = q.Where("posts.show = ?", *f.Show)
		}
		if f.Search != "" {
			pattern := "%" + strings.ToLower(f.Search) + "%"
			q = q.Joins("JOIN users ON users.id = posts.author_id").
				Where("LOWER(posts.title) LIKE ? OR LOWER(users.first_name) LIKE ?", pattern, pattern)
		}
		return q
	}

	var total int64
	if err := base().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var posts []PostWithCounts
	if err := base().Select(postCountsSelect).
		Preload("Author").Preload("Category").
		Order("posts.created_at DESC").
		Offset(offset).Limit(limit).
		Find(&posts).Error; err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

// SetShow toggles the soft-delete flag and returns the updated post.
func (r *postRepository) SetShow(ctx context.Context, id uint, show bool) (*model.Post, error) {
	var post model.Post
	if err := r.db.WithContext(ctx).First(&post, id).Error; err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Model(&post).Update("show", show).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) annotated(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(&model.Post{}).
		Select(postCountsSelect).
		Preload("Author").Preload("Category")
}

// applyPostFilter applies the set fields conjunctively; unset fields impose
// no constraint.
func applyPostFilter(q *gorm.DB, f PostFilter) *gorm.DB {
	if f.Search != "" {
		pattern := "%" + strings.ToLower(f.Search) + "%"
		q = q.Where("LOWER(posts.title) LIKE ? OR LOWER(posts.excerpt) LIKE ?", pattern, pattern)
	}
	if f.Category != "" {
		q = q.Joins("JOIN categories ON categories.id = posts.category_id").
			Where("LOWER(categories.name) = ?", strings.ToLower(f.Category))
	}
	if f.Status != "" {
		q = q.Where("posts.status = ?", f.Status)
	}
	return q
}

// applySort orders the annotated query. Count-based modes sort on the
// aggregate aliases; ties fall back to primary key so pages stay stable.
func applySort(q *gorm.DB, s SortMode) *gorm.DB {
	switch s {
	case SortLatest:
		return q.Order("posts.created_at DESC")
	case SortPopular:
		return q.Order("likes_count DESC, posts.id")
	case SortMostCommented:
		return q.Order("comments_count DESC, posts.id")
	default:
		return q.Order("posts.id")
	}
}
