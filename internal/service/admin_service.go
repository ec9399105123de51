package service

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"gorm.io/gorm"

	apperrors "blogcms/internal/errors"
	"blogcms/internal/model"
	"blogcms/internal/pagination"
	"blogcms/internal/repository"
)

// AdminService handles the admin console: user management and post
// moderation.
type AdminService interface {
	ListUsers(ctx context.Context, query url.Values) ([]repository.UserWithPostCount, int64, pagination.Params, error)
	SetUserStatus(ctx context.Context, id uint, status string) (*repository.UserWithPostCount, error)
	ListPosts(ctx context.Context, query url.Values) ([]repository.PostWithCounts, int64, pagination.Params, error)
	SoftDeletePost(ctx context.Context, id uint) (*repository.PostWithCounts, error)
	RestorePost(ctx context.Context, id uint) (*repository.PostWithCounts, error)
}

type adminService struct {
	userRepo repository.UserRepository
	postRepo repository.PostRepository
}

// NewAdminService creates a new admin service.
func NewAdminService(userRepo repository.UserRepository, postRepo repository.PostRepository) AdminService {
	return &adminService{userRepo: userRepo, postRepo: postRepo}
}

// ListUsers lists users with post counts, filtered by activity status and a
// first-name/email search, paginated.
func (s *adminService) ListUsers(ctx context.Context, query url.Values) ([]repository.UserWithPostCount, int64, pagination.Params, error) {
	filter := repository.UserFilter{Search: query.Get("search")}
	if raw := query.Get("status"); raw != "" {
		switch strings.ToLower(raw) {
		case "active":
			active := true
			filter.IsActive = &active
		case "inactive":
			active := false
			filter.IsActive = &active
		default:
			return nil, 0, pagination.Params{}, apperrors.FieldErrors{"status": {"Select a valid choice: active or inactive."}}
		}
	}

	page, err := pagination.Parse(query, pagination.AdminPageSize)
	if err != nil {
		return nil, 0, pagination.Params{}, err
	}

	users, total, err := s.userRepo.ListWithPostCounts(ctx, filter, page.Offset(), page.PageSize)
	if err != nil {
		return nil, 0, pagination.Params{}, err
	}
	if err := page.Check(total); err != nil {
		return nil, 0, pagination.Params{}, err
	}
	return users, total, page, nil
}

// SetUserStatus flips a user's active flag. Status must be "Active" or
// "Inactive".
func (s *adminService) SetUserStatus(ctx context.Context, id uint, status string) (*repository.UserWithPostCount, error) {
	if status != "Active" && status != "Inactive" {
		return nil, apperrors.FieldErrors{"status": {"Invalid status."}}
	}

	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}

	user.IsActive = status == "Active"
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return s.userRepo.FindWithPostCount(ctx, id)
}

// ListPosts lists all posts for moderation, newest first, hidden and draft
// posts included.
func (s *adminService) ListPosts(ctx context.Context, query url.Values) ([]repository.PostWithCounts, int64, pagination.Params, error) {
	filter := repository.AdminPostFilter{Search: query.Get("search")}
	ferrs := apperrors.FieldErrors{}

	if raw := query.Get("status"); raw != "" {
		status := model.PostStatus(raw)
		if !status.Valid() {
			ferrs.Add("status", "Select a valid choice: draft or published.")
		} else {
			filter.Status = status
		}
	}
	if raw := query.Get("show"); raw != "" {
		show, err := strconv.ParseBool(raw)
		if err != nil {
			ferrs.Add("show", "A valid boolean is required.")
		} else {
			filter.Show = &show
		}
	}
	if len(ferrs) > 0 {
		return nil, 0, pagination.Params{}, ferrs
	}

	page, err := pagination.Parse(query, pagination.AdminPageSize)
	if err != nil {
		return nil, 0, pagination.Params{}, err
	}

	posts, total, err := s.postRepo.ListAdmin(ctx, filter, page.Offset(), page.PageSize)
	if err != nil {
		return nil, 0, pagination.Params{}, err
	}
	if err := page.Check(total); err != nil {
		return nil, 0, pagination.Params{}, err
	}
	return posts, total, page, nil
}

// SoftDeletePost hides a post from public feeds without deleting it.
func (s *adminService) SoftDeletePost(ctx context.Context, id uint) (*repository.PostWithCounts, error) {
	return s.setShow(ctx, id, false)
}

// RestorePost makes a hidden post visible again.
func (s *adminService) RestorePost(ctx context.Context, id uint) (*repository.PostWithCounts, error) {
	return s.setShow(ctx, id, true)
}

func (s *adminService) setShow(ctx context.Context, id uint, show bool) (*repository.PostWithCounts, error) {
	if _, err := s.postRepo.SetShow(ctx, id, show); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrPostNotFound
		}
		return nil, err
	}
	return s.postRepo.FindWithCounts(ctx, id)
}
