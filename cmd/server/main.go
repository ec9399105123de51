package main

import (
	"net/http"
	"os"

	_ "blogcms/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"

	"blogcms/internal/auth"
	"blogcms/internal/cache"
	"blogcms/internal/config"
	"blogcms/internal/db"
	"blogcms/internal/handler"
	"blogcms/internal/model"
	"blogcms/internal/repository"
	"blogcms/internal/router"
	"blogcms/internal/service"
)

// @title Blog CMS API
// @version 1.0
// @description Content platform backend: auth, explore feed, blog management and admin console.
// @host localhost:8080
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token. Browser clients get the same token as an HttpOnly cookie.
func main() {
	logrus.SetFormatter(&logrus.JSONFormatter{})

	cfg := config.Load()

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		logrus.WithError(err).Fatal("database init")
	}

	// Drop tables if RESET_DB environment variable is set
	if os.Getenv("RESET_DB") == "true" {
		logrus.Warn("RESET_DB=true detected, dropping all tables")
		tables := []interface{}{
			&model.Like{},
			&model.Comment{},
			&model.Post{},
			&model.Category{},
			&model.User{},
		}
		for _, table := range tables {
			if err := gormDB.Migrator().DropTable(table); err != nil {
				logrus.WithError(err).Warn("drop table failed (may not exist)")
			}
		}
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Category{},
		&model.Post{},
		&model.Comment{},
		&model.Like{},
	); err != nil {
		logrus.WithError(err).Fatal("auto-migrate")
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	categoryRepo := repository.NewCategoryRepository(gormDB)
	postRepo := repository.NewPostRepository(gormDB)
	commentRepo := repository.NewCommentRepository(gormDB)
	likeRepo := repository.NewLikeRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	tokenStore := auth.NewTokenStore(cacheClient)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtService, tokenStore)
	feedService := service.NewFeedService(postRepo)
	postService := service.NewPostService(postRepo, categoryRepo)
	likeService := service.NewLikeService(postRepo, likeRepo)
	commentService := service.NewCommentService(postRepo, commentRepo)
	categoryService := service.NewCategoryService(categoryRepo, cacheClient)
	adminService := service.NewAdminService(userRepo, postRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	exploreHandler := handler.NewExploreHandler(feedService, likeService, commentService)
	blogHandler := handler.NewBlogHandler(postService, feedService, categoryService)
	adminHandler := handler.NewAdminHandler(authService, adminService, feedService, commentService)

	// Register routes
	router.Register(
		e,
		cfg,
		tokenStore,
		authHandler,
		exploreHandler,
		blogHandler,
		adminHandler,
	)

	addr := ":" + cfg.ServerPort
	logrus.WithField("addr", addr).Info("starting server")
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		logrus.WithError(err).Fatal("server start")
	}
}
