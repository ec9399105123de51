package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"blogcms/internal/auth"
	"blogcms/internal/service"
)

// BlogHandler handles the author's own blog endpoints and the public
// category list.
type BlogHandler struct {
	postService     service.PostService
	feedService     service.FeedService
	categoryService service.CategoryService
}

// NewBlogHandler creates a new blog handler.
func NewBlogHandler(
	postService service.PostService,
	feedService service.FeedService,
	categoryService service.CategoryService,
) *BlogHandler {
	return &BlogHandler{
		postService:     postService,
		feedService:     feedService,
		categoryService: categoryService,
	}
}

// BlogPostRequest represents a post create/update request. The author is
// never taken from the body; it is always the caller.
type BlogPostRequest struct {
	Title     string   `json:"title" validate:"required,max=100"`
	Content   string   `json:"content" validate:"required"`
	Excerpt   string   `json:"excerpt" validate:"max=500"`
	Category  uint     `json:"category" validate:"required"`
	Status    string   `json:"status"`
	Tags      []string `json:"tags"`
	Thumbnail string   `json:"thumbnail" validate:"omitempty,url,max=500"`
}

func (r BlogPostRequest) toInput() service.PostInput {
	return service.PostInput{
		Title:      r.Title,
		Content:    r.Content,
		Excerpt:    r.Excerpt,
		CategoryID: r.Category,
		Status:     r.Status,
		Tags:       r.Tags,
		Thumbnail:  r.Thumbnail,
	}
}

// Categories godoc
// @Summary List content categories
// @Tags user
// @Produce json
// @Success 200 {array} CategoryView
// @Router /user/content-categories [get]
func (h *BlogHandler) Categories(c echo.Context) error {
	categories, err := h.categoryService.List(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	views := make([]CategoryView, 0, len(categories))
	for _, cat := range categories {
		views = append(views, newCategoryView(cat))
	}
	return c.JSON(http.StatusOK, views)
}

// Create godoc
// @Summary Create a post owned by the caller
// @Tags user
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body BlogPostRequest true "Post data"
// @Success 201 {object} OwnerPostView
// @Failure 400 {object} errors.FieldErrors
// @Failure 401 {object} errors.ErrorResponse
// @Router /user/blogs/create [post]
func (h *BlogHandler) Create(c echo.Context) error {
	userID, ok := auth.CurrentUserID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}

	var req BlogPostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	post, err := h.postService.Create(c.Request().Context(), userID, req.toInput())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, newOwnerPostView(*post))
}

// OwnPosts godoc
// @Summary Caller's own posts with counts, drafts and hidden included
// @Description Unpaginated; status and category filters only.
// @Tags user
// @Produce json
// @Security BearerAuth
// @Param status query string false "draft | published"
// @Param category query string false "Category name"
// @Success 200 {array} OwnerPostView
// @Failure 400 {object} errors.FieldErrors
// @Failure 401 {object} errors.ErrorResponse
// @Router /user/blogs/user [get]
func (h *BlogHandler) OwnPosts(c echo.Context) error {
	userID, ok := auth.CurrentUserID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}

	posts, err := h.feedService.OwnerPosts(c.Request().Context(), userID, c.QueryParams())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, newOwnerPostViews(posts))
}

// Get godoc
// @Summary Read one of the caller's posts
// @Tags user
// @Produce json
// @Security BearerAuth
// @Param pk path int true "Post ID"
// @Success 200 {object} OwnerPostView
// @Failure 404 {object} errors.ErrorResponse
// @Router /user/blogs/{pk} [get]
func (h *BlogHandler) Get(c echo.Context) error {
	userID, ok := auth.CurrentUserID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}
	id, err := postIDParam(c, "pk")
	if err != nil {
		return err
	}

	post, err := h.postService.GetOwned(c.Request().Context(), id, userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, newOwnerPostView(*post))
}

// Update godoc
// @Summary Edit one of the caller's posts
// @Tags user
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param pk path int true "Post ID"
// @Param request body BlogPostRequest true "Post data"
// @Success 200 {object} OwnerPostView
// @Failure 400 {object} errors.FieldErrors
// @Failure 404 {object} errors.ErrorResponse
// @Router /user/blogs/{pk} [put]
func (h *BlogHandler) Update(c echo.Context) error {
	userID, ok := auth.CurrentUserID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}
	id, err := postIDParam(c, "pk")
	if err != nil {
		return err
	}

	var req BlogPostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	post, err := h.postService.UpdateOwned(c.Request().Context(), id, userID, req.toInput())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, newOwnerPostView(*post))
}

// Delete godoc
// @Summary Delete one of the caller's posts
// @Tags user
// @Security BearerAuth
// @Param pk path int true "Post ID"
// @Success 204
// @Failure 404 {object} errors.ErrorResponse
// @Router /user/blogs/{pk} [delete]
func (h *BlogHandler) Delete(c echo.Context) error {
	userID, ok := auth.CurrentUserID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}
	id, err := postIDParam(c, "pk")
	if err != nil {
		return err
	}

	if err := h.postService.DeleteOwned(c.Request().Context(), id, userID); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
