package handler

import (
	stderrors "errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"blogcms/internal/auth"
	"blogcms/internal/errors"
	"blogcms/internal/pagination"
	"blogcms/internal/service"
)

// AdminHandler handles the admin console: login, user management, and post
// moderation.
type AdminHandler struct {
	authService    service.AuthService
	adminService   service.AdminService
	feedService    service.FeedService
	commentService service.CommentService
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(
	authService service.AuthService,
	adminService service.AdminService,
	feedService service.FeedService,
	commentService service.CommentService,
) *AdminHandler {
	return &AdminHandler{
		authService:    authService,
		adminService:   adminService,
		feedService:    feedService,
		commentService: commentService,
	}
}

// AdminLoginRequest represents an admin login request.
type AdminLoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UserStatusRequest represents an account status update.
type UserStatusRequest struct {
	Status string `json:"status"`
}

// Login godoc
// @Summary Admin console login
// @Description Staff only; sets auth cookies on success.
// @Tags admin
// @Accept json
// @Produce json
// @Param request body AdminLoginRequest true "Credentials"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Failure 403 {object} map[string]interface{}
// @Router /admin/login [post]
func (h *AdminHandler) Login(c echo.Context) error {
	var req AdminLoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, echo.Map{
			"success": false, "error": "Email and password are required",
		})
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, echo.Map{
			"success": false, "error": "Email and password are required",
		})
	}

	accessToken, refreshToken, user, err := h.authService.AdminLogin(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		switch err {
		case service.ErrInvalidCredentials:
			return echo.NewHTTPError(http.StatusUnauthorized, echo.Map{
				"success": false, "error": "Invalid credentials",
			})
		case service.ErrNotStaff:
			return echo.NewHTTPError(http.StatusForbidden, echo.Map{
				"success": false, "error": "You are not authorized to access admin",
			})
		}
		return respondError(c, err)
	}

	setTokenCookie(c, accessTokenCookie, accessToken, auth.AccessTokenExpiry)
	setTokenCookie(c, refreshTokenCookie, refreshToken, auth.RefreshTokenExpiry)

	name := user.FirstName
	if name == "" {
		name = user.Email
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"role":    "admin",
		"user": echo.Map{
			"id":    user.ID,
			"email": user.Email,
			"name":  name,
		},
	})
}

// ListUsers godoc
// @Summary Paginated user list with post counts
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param status query string false "active | inactive"
// @Param search query string false "Substring match on first name or email"
// @Param page query int false "Page number"
// @Success 200 {object} pagination.Envelope
// @Failure 400 {object} errors.FieldErrors
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/users [get]
func (h *AdminHandler) ListUsers(c echo.Context) error {
	users, total, page, err := h.adminService.ListUsers(c.Request().Context(), c.QueryParams())
	if err != nil {
		return respondError(c, err)
	}
	env := pagination.NewEnvelope(c.Request(), page, total, newAdminUserViews(users))
	return c.JSON(http.StatusOK, env)
}

// UpdateUserStatus godoc
// @Summary Activate or deactivate a user
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param pk path int true "User ID"
// @Param request body UserStatusRequest true "Active or Inactive"
// @Success 200 {object} AdminUserView
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /admin/users/{pk}/status [patch]
func (h *AdminHandler) UpdateUserStatus(c echo.Context) error {
	id, err := postIDParam(c, "pk")
	if err != nil {
		return err
	}
	var req UserStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	user, err := h.adminService.SetUserStatus(c.Request().Context(), id, req.Status)
	if err != nil {
		if err == errors.ErrUserNotFound {
			return echo.NewHTTPError(http.StatusNotFound, map[string]string{"detail": "User not found."})
		}
		var ferrs errors.FieldErrors
		if stderrors.As(err, &ferrs) {
			return c.JSON(http.StatusBadRequest, map[string]string{"detail": "Invalid status."})
		}
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, newAdminUserView(*user))
}

// ListPosts godoc
// @Summary Paginated moderation list, newest first
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param status query string false "draft | published"
// @Param show query bool false "Visibility flag"
// @Param search query string false "Substring match on title or author first name"
// @Param page query int false "Page number"
// @Success 200 {object} pagination.Envelope
// @Failure 400 {object} errors.FieldErrors
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/posts [get]
func (h *AdminHandler) ListPosts(c echo.Context) error {
	posts, total, page, err := h.adminService.ListPosts(c.Request().Context(), c.QueryParams())
	if err != nil {
		return respondError(c, err)
	}
	env := pagination.NewEnvelope(c.Request(), page, total, newAdminPostViews(posts))
	return c.JSON(http.StatusOK, env)
}

// SoftDeletePost godoc
// @Summary Hide a post from public feeds
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param pk path int true "Post ID"
// @Success 200 {object} AdminPostView
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/posts/{pk}/delete [patch]
func (h *AdminHandler) SoftDeletePost(c echo.Context) error {
	id, err := postIDParam(c, "pk")
	if err != nil {
		return err
	}
	post, err := h.adminService.SoftDeletePost(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, newAdminPostView(*post))
}

// RestorePost godoc
// @Summary Restore a hidden post
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param pk path int true "Post ID"
// @Success 200 {object} AdminPostView
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/posts/{pk}/restore [patch]
func (h *AdminHandler) RestorePost(c echo.Context) error {
	id, err := postIDParam(c, "pk")
	if err != nil {
		return err
	}
	post, err := h.adminService.RestorePost(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, newAdminPostView(*post))
}

// BlogDetail godoc
// @Summary Full post detail with comment thread
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param blog_id path int true "Post ID"
// @Success 200 {object} AdminBlogDetailView
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/blog/{blog_id} [get]
func (h *AdminHandler) BlogDetail(c echo.Context) error {
	id, err := postIDParam(c, "blog_id")
	if err != nil {
		return err
	}
	post, err := h.feedService.Detail(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	comments, err := h.commentService.List(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, AdminBlogDetailView{
		AdminPostView: newAdminPostView(*post),
		Content:       post.Content,
		UpdatedAt:     post.UpdatedAt,
		Comments:      newCommentViews(comments),
	})
}

// DeleteComment godoc
// @Summary Delete a comment scoped to a post
// @Tags admin
// @Security BearerAuth
// @Param blog_id path int true "Post ID"
// @Param comment_id query int true "Comment ID"
// @Success 204
// @Failure 400 {object} map[string]string
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/blog/{blog_id} [delete]
func (h *AdminHandler) DeleteComment(c echo.Context) error {
	blogID, err := postIDParam(c, "blog_id")
	if err != nil {
		return err
	}
	raw := c.QueryParam("comment_id")
	if raw == "" {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]string{
			"error": "comment_id query param is required",
		})
	}
	commentID, err := strconv.Atoi(raw)
	if err != nil || commentID < 1 {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]string{
			"error": "invalid comment_id",
		})
	}

	if err := h.commentService.AdminDelete(c.Request().Context(), blogID, uint(commentID)); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
