package main

import (
	"context"
	"errors"
	"os"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"blogcms/internal/config"
	"blogcms/internal/db"
	"blogcms/internal/model"
	"blogcms/internal/repository"
)

// defaultCategories is the starter taxonomy for a fresh install.
var defaultCategories = []string{
	"Technology",
	"Lifestyle",
	"Travel",
	"Food",
	"Business",
	"Health",
}

func main() {
	logrus.Info("starting seed script")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		logrus.WithError(err).Fatal("database connect")
	}

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Category{},
		&model.Post{},
		&model.Comment{},
		&model.Like{},
	); err != nil {
		logrus.WithError(err).Fatal("auto-migrate")
	}

	ctx := context.Background()
	categoryRepo := repository.NewCategoryRepository(gormDB)
	userRepo := repository.NewUserRepository(gormDB)

	created := 0
	for _, name := range defaultCategories {
		category := model.Category{Name: name, Active: true}
		wasNew, err := categoryRepo.FirstOrCreate(ctx, &category)
		if err != nil {
			logrus.WithError(err).WithField("category", name).Fatal("seed category")
		}
		if wasNew {
			created++
		}
	}
	logrus.WithFields(logrus.Fields{
		"created":  created,
		"existing": len(defaultCategories) - created,
	}).Info("categories seeded")

	if err := seedAdmin(ctx, userRepo); err != nil {
		logrus.WithError(err).Fatal("seed admin")
	}

	logrus.Info("seed completed")
}

// seedAdmin creates the staff account from ADMIN_EMAIL and ADMIN_PASSWORD.
// Both must be set together; when neither is set the step is skipped.
func seedAdmin(ctx context.Context, userRepo repository.UserRepository) error {
	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" && password == "" {
		logrus.Info("ADMIN_EMAIL not set, skipping admin account")
		return nil
	}
	if email == "" || password == "" {
		return errors.New("ADMIN_EMAIL and ADMIN_PASSWORD must both be set")
	}

	existing, err := userRepo.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	if existing != nil {
		logrus.WithField("email", email).Info("admin account already exists")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := &model.User{
		FirstName:    "Admin",
		Email:        email,
		PasswordHash: string(hash),
		IsActive:     true,
		IsStaff:      true,
	}
	if err := userRepo.Create(ctx, admin); err != nil {
		return err
	}
	logrus.WithField("email", email).Info("admin account created")
	return nil
}
