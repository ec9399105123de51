package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"blogcms/internal/auth"
	"blogcms/internal/pagination"
	"blogcms/internal/service"
)

// ExploreHandler handles the public explore feed and post interactions.
type ExploreHandler struct {
	feedService    service.FeedService
	likeService    service.LikeService
	commentService service.CommentService
}

// NewExploreHandler creates a new explore handler.
func NewExploreHandler(
	feedService service.FeedService,
	likeService service.LikeService,
	commentService service.CommentService,
) *ExploreHandler {
	return &ExploreHandler{
		feedService:    feedService,
		likeService:    likeService,
		commentService: commentService,
	}
}

// CreateCommentRequest represents a comment creation request.
type CreateCommentRequest struct {
	Content string `json:"content"`
}

// ToggleLikeResponse reports the toggle outcome.
type ToggleLikeResponse struct {
	Action     string `json:"action"`
	LikesCount int64  `json:"likes_count"`
}

// List godoc
// @Summary Paginated public feed of published posts
// @Tags explore
// @Produce json
// @Security BearerAuth
// @Param search query string false "Substring match on title or excerpt"
// @Param category query string false "Category name"
// @Param sort_by query string false "latest | popular | most-commented"
// @Param page query int false "Page number"
// @Param page_size query int false "Page size (max 100)"
// @Success 200 {object} pagination.Envelope
// @Failure 400 {object} errors.FieldErrors
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /explore/blogs [get]
func (h *ExploreHandler) List(c echo.Context) error {
	posts, total, page, err := h.feedService.Explore(c.Request().Context(), c.QueryParams())
	if err != nil {
		return respondError(c, err)
	}
	env := pagination.NewEnvelope(c.Request(), page, total, newPublicPostViews(posts))
	return c.JSON(http.StatusOK, env)
}

// Detail godoc
// @Summary Single post with content and counts
// @Tags explore
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Success 200 {object} PostDetailView
// @Failure 404 {object} errors.ErrorResponse
// @Router /explore/blogs/{id} [get]
func (h *ExploreHandler) Detail(c echo.Context) error {
	id, err := postIDParam(c, "id")
	if err != nil {
		return err
	}
	post, err := h.feedService.Detail(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, newPostDetailView(*post))
}

// ToggleLike godoc
// @Summary Toggle the caller's like on a post
// @Tags explore
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Success 200 {object} ToggleLikeResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /explore/blogs/{id}/like [post]
func (h *ExploreHandler) ToggleLike(c echo.Context) error {
	id, err := postIDParam(c, "id")
	if err != nil {
		return err
	}
	userID, ok := auth.CurrentUserID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}

	action, likesCount, err := h.likeService.Toggle(c.Request().Context(), id, userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, ToggleLikeResponse{Action: action, LikesCount: likesCount})
}

// ListComments godoc
// @Summary List a post's comments, oldest first
// @Tags explore
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Success 200 {array} CommentView
// @Failure 404 {object} errors.ErrorResponse
// @Router /explore/blogs/{id}/comments [get]
func (h *ExploreHandler) ListComments(c echo.Context) error {
	id, err := postIDParam(c, "id")
	if err != nil {
		return err
	}
	comments, err := h.commentService.List(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, newCommentViews(comments))
}

// CreateComment godoc
// @Summary Comment on a post as the caller
// @Tags explore
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Param request body CreateCommentRequest true "Comment body"
// @Success 201 {object} CommentView
// @Failure 400 {object} errors.FieldErrors
// @Failure 404 {object} errors.ErrorResponse
// @Router /explore/blogs/{id}/comments [post]
func (h *ExploreHandler) CreateComment(c echo.Context) error {
	id, err := postIDParam(c, "id")
	if err != nil {
		return err
	}
	userID, ok := auth.CurrentUserID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}

	var req CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	comment, err := h.commentService.Create(c.Request().Context(), id, userID, req.Content)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, newCommentView(*comment))
}

// postIDParam parses a numeric path parameter.
func postIDParam(c echo.Context, name string) (uint, error) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id < 1 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return uint(id), nil
}
