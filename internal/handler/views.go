package handler

import (
	stderrors "errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	apperrors "blogcms/internal/errors"
	"blogcms/internal/model"
	"blogcms/internal/repository"
)

// Per-audience projection structs. Each is a plain data carrier populated by
// an explicit mapping function; no reflection-based field extraction.

// AuthorView is the public author profile embedded in post and comment views.
type AuthorView struct {
	ID             uint   `json:"id"`
	FirstName      string `json:"first_name"`
	Email          string `json:"email"`
	ProfilePicture string `json:"profile_picture,omitempty"`
}

// CategoryView is the category projection embedded in post views.
type CategoryView struct {
	ID     uint   `json:"id"`
	Name   string `json:"name"`
	Active bool   `json:"active"`
}

// PublicPostView is an explore feed row.
type PublicPostView struct {
	ID            uint         `json:"id"`
	Author        AuthorView   `json:"author"`
	Title         string       `json:"title"`
	Excerpt       string       `json:"excerpt"`
	Category      CategoryView `json:"category"`
	Status        string       `json:"status"`
	Tags          []string     `json:"tags"`
	Thumbnail     string       `json:"thumbnail"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
	PublishedDate time.Time    `json:"published_date"`
	LikesCount    int64        `json:"likes_count"`
	CommentsCount int64        `json:"comments_count"`
}

// PostDetailView is the single-post explore response, full content included.
type PostDetailView struct {
	PublicPostView
	Content string `json:"content"`
}

// OwnerPostView is a row in the author's own dashboard; the author sees the
// content and only their own ID, not a nested profile.
type OwnerPostView struct {
	ID            uint         `json:"id"`
	Author        uint         `json:"author"`
	Title         string       `json:"title"`
	Content       string       `json:"content"`
	Excerpt       string       `json:"excerpt"`
	Category      CategoryView `json:"category"`
	Status        string       `json:"status"`
	Tags          []string     `json:"tags"`
	Thumbnail     string       `json:"thumbnail"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
	PublishedDate time.Time    `json:"published_date"`
	LikesCount    int64        `json:"likes_count"`
	CommentsCount int64        `json:"comments_count"`
}

// AdminPostView is a moderation list row; unlike the public views it
// exposes the soft-delete flag.
type AdminPostView struct {
	ID            uint         `json:"id"`
	Title         string       `json:"title"`
	Author        AuthorView   `json:"author"`
	Status        string       `json:"status"`
	Category      CategoryView `json:"category"`
	Excerpt       string       `json:"excerpt"`
	Thumbnail     string       `json:"thumbnail"`
	CreatedAt     time.Time    `json:"created_at"`
	PublishedDate time.Time    `json:"published_date"`
	LikesCount    int64        `json:"likes_count"`
	CommentsCount int64        `json:"comments_count"`
	Tags          []string     `json:"tags"`
	Show          bool         `json:"show"`
}

// AdminBlogDetailView is the moderation drill-down: full post plus its
// comment thread.
type AdminBlogDetailView struct {
	AdminPostView
	Content   string        `json:"content"`
	UpdatedAt time.Time     `json:"updated_at"`
	Comments  []CommentView `json:"comments"`
}

// AdminUserView is a user management row.
type AdminUserView struct {
	ID        uint      `json:"id"`
	FirstName string    `json:"first_name"`
	Email     string    `json:"email"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	Posts     int64     `json:"posts"`
}

// CommentView is a comment with its author profile.
type CommentView struct {
	ID        uint       `json:"id"`
	User      AuthorView `json:"user"`
	Content   string     `json:"content"`
	CreatedAt time.Time  `json:"created_at"`
}

func newAuthorView(u model.User) AuthorView {
	return AuthorView{
		ID:             u.ID,
		FirstName:      u.FirstName,
		Email:          u.Email,
		ProfilePicture: u.ProfilePicture,
	}
}

func newCategoryView(c model.Category) CategoryView {
	return CategoryView{ID: c.ID, Name: c.Name, Active: c.Active}
}

func newPublicPostView(p repository.PostWithCounts) PublicPostView {
	return PublicPostView{
		ID:            p.ID,
		Author:        newAuthorView(p.Post.Author),
		Title:         p.Title,
		Excerpt:       p.Excerpt,
		Category:      newCategoryView(p.Post.Category),
		Status:        string(p.Status),
		Tags:          p.Tags,
		Thumbnail:     p.Thumbnail,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
		PublishedDate: p.PublishedDate,
		LikesCount:    p.LikesCount,
		CommentsCount: p.CommentsCount,
	}
}

func newPublicPostViews(posts []repository.PostWithCounts) []PublicPostView {
	views := make([]PublicPostView, 0, len(posts))
	for _, p := range posts {
		views = append(views, newPublicPostView(p))
	}
	return views
}

func newPostDetailView(p repository.PostWithCounts) PostDetailView {
	return PostDetailView{
		PublicPostView: newPublicPostView(p),
		Content:        p.Content,
	}
}

func newOwnerPostView(p repository.PostWithCounts) OwnerPostView {
	return OwnerPostView{
		ID:            p.ID,
		Author:        p.AuthorID,
		Title:         p.Title,
		Content:       p.Content,
		Excerpt:       p.Excerpt,
		Category:      newCategoryView(p.Post.Category),
		Status:        string(p.Status),
		Tags:          p.Tags,
		Thumbnail:     p.Thumbnail,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
		PublishedDate: p.PublishedDate,
		LikesCount:    p.LikesCount,
		CommentsCount: p.CommentsCount,
	}
}

func newOwnerPostViews(posts []repository.PostWithCounts) []OwnerPostView {
	views := make([]OwnerPostView, 0, len(posts))
	for _, p := range posts {
		views = append(views, newOwnerPostView(p))
	}
	return views
}

func newAdminPostView(p repository.PostWithCounts) AdminPostView {
	return AdminPostView{
		ID:            p.ID,
		Title:         p.Title,
		Author:        newAuthorView(p.Post.Author),
		Status:        string(p.Status),
		Category:      newCategoryView(p.Post.Category),
		Excerpt:       p.Excerpt,
		Thumbnail:     p.Thumbnail,
		CreatedAt:     p.CreatedAt,
		PublishedDate: p.PublishedDate,
		LikesCount:    p.LikesCount,
		CommentsCount: p.CommentsCount,
		Tags:          p.Tags,
		Show:          p.Show,
	}
}

func newAdminPostViews(posts []repository.PostWithCounts) []AdminPostView {
	views := make([]AdminPostView, 0, len(posts))
	for _, p := range posts {
		views = append(views, newAdminPostView(p))
	}
	return views
}

func newAdminUserView(u repository.UserWithPostCount) AdminUserView {
	return AdminUserView{
		ID:        u.ID,
		FirstName: u.FirstName,
		Email:     u.Email,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
		Posts:     u.PostsCount,
	}
}

func newAdminUserViews(users []repository.UserWithPostCount) []AdminUserView {
	views := make([]AdminUserView, 0, len(users))
	for _, u := range users {
		views = append(views, newAdminUserView(u))
	}
	return views
}

func newCommentView(c model.Comment) CommentView {
	return CommentView{
		ID:        c.ID,
		User:      newAuthorView(c.User),
		Content:   c.Content,
		CreatedAt: c.CreatedAt,
	}
}

func newCommentViews(comments []model.Comment) []CommentView {
	views := make([]CommentView, 0, len(comments))
	for _, c := range comments {
		views = append(views, newCommentView(c))
	}
	return views
}

// respondError renders a domain error: validation failures become the
// field-error map, everything else goes through the taxonomy mapping. The
// original error rides along for the outer error handler to log.
func respondError(c echo.Context, err error) error {
	var ferrs apperrors.FieldErrors
	if stderrors.As(err, &ferrs) {
		return c.JSON(http.StatusBadRequest, ferrs)
	}
	httpErr := apperrors.MapErrorToHTTP(err)
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse()).SetInternal(err)
}
