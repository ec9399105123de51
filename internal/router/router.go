package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v4"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
	echoSwagger "github.com/swaggo/echo-swagger"

	"blogcms/internal/auth"
	"blogcms/internal/config"
	apperrors "blogcms/internal/errors"
	"blogcms/internal/handler"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	tokenStore auth.TokenStoreInterface,
	authHandler *handler.AuthHandler,
	exploreHandler *handler.ExploreHandler,
	blogHandler *handler.BlogHandler,
	adminHandler *handler.AdminHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	e.HTTPErrorHandler = errorHandler(e)

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api/v1")

	// Public routes
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/token", authHandler.Login)
	api.POST("/auth/token/refresh", authHandler.Refresh)
	api.POST("/auth/logout", authHandler.Logout)
	api.POST("/admin/login", adminHandler.Login)
	api.GET("/user/content-categories", blogHandler.Categories)

	// Secured routes (require JWT authentication). The token is read from
	// the access_token cookie first, then the Authorization header.
	secured := api.Group("", echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(cfg.JWTSecret),
		TokenLookup: "cookie:" + "access_token" + ",header:" + echo.HeaderAuthorization + ":Bearer ",
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(auth.Claims)
		},
	}), rejectBlacklisted(tokenStore))

	secured.POST("/auth/authenticated", authHandler.Authenticated)

	// Explore routes
	secured.GET("/explore/blogs", exploreHandler.List)
	secured.GET("/explore/blogs/:id", exploreHandler.Detail)
	secured.POST("/explore/blogs/:id/like", exploreHandler.ToggleLike)
	secured.GET("/explore/blogs/:id/comments", exploreHandler.ListComments)
	secured.POST("/explore/blogs/:id/comments", exploreHandler.CreateComment)

	// Owner blog routes
	secured.POST("/user/blogs/create", blogHandler.Create)
	secured.GET("/user/blogs/user", blogHandler.OwnPosts)
	secured.GET("/user/blogs/:pk", blogHandler.Get)
	secured.PUT("/user/blogs/:pk", blogHandler.Update)
	secured.DELETE("/user/blogs/:pk", blogHandler.Delete)

	// Admin routes (staff only)
	admin := secured.Group("/admin", requireStaff)
	admin.GET("/users", adminHandler.ListUsers)
	admin.PATCH("/users/:pk/status", adminHandler.UpdateUserStatus)
	admin.GET("/posts", adminHandler.ListPosts)
	admin.PATCH("/posts/:pk/delete", adminHandler.SoftDeletePost)
	admin.PATCH("/posts/:pk/restore", adminHandler.RestorePost)
	admin.GET("/blog/:blog_id", adminHandler.BlogDetail)
	admin.DELETE("/blog/:blog_id", adminHandler.DeleteComment)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// requireStaff rejects authenticated non-staff callers.
func requireStaff(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, ok := auth.CurrentClaims(c)
		if !ok {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
		}
		if !claims.IsStaff {
			httpErr := apperrors.MapErrorToHTTP(apperrors.ErrForbidden)
			return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
		}
		return next(c)
	}
}

// rejectBlacklisted refuses access tokens revoked by logout. Runs after the
// JWT middleware so claims are already validated.
func rejectBlacklisted(store auth.TokenStoreInterface) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := auth.CurrentClaims(c)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}
			if claims.ID != "" {
				blacklisted, _ := store.IsAccessTokenBlacklisted(c.Request().Context(), claims.ID)
				if blacklisted {
					return echo.NewHTTPError(http.StatusUnauthorized, "token revoked")
				}
			}
			return next(c)
		}
	}
}

// errorHandler is the outermost boundary: unexpected errors are logged with
// request context and collapsed to a generic 500 body; everything else is
// rendered by Echo's default handler.
func errorHandler(e *echo.Echo) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		he, ok := err.(*echo.HTTPError)
		if !ok || he.Code >= http.StatusInternalServerError {
			logrus.WithFields(logrus.Fields{
				"method":     c.Request().Method,
				"path":       c.Request().URL.Path,
				"request_id": c.Response().Header().Get(echo.HeaderXRequestID),
			}).WithError(unwrapInternal(err)).Error("request failed")

			if !c.Response().Committed {
				_ = c.JSON(http.StatusInternalServerError, apperrors.ErrorResponse{
					Error: "internal server error",
					Code:  "INTERNAL_ERROR",
				})
			}
			return
		}
		e.DefaultHTTPErrorHandler(err, c)
	}
}

func unwrapInternal(err error) error {
	if he, ok := err.(*echo.HTTPError); ok && he.Internal != nil {
		return he.Internal
	}
	return err
}
