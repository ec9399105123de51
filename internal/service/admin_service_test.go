package service

import (
	"context"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	apperrors "blogcms/internal/errors"
	"blogcms/internal/model"
	"blogcms/internal/repository"
)

func TestAdminService_ListUsers(t *testing.T) {
	users := []repository.UserWithPostCount{
		{User: model.User{ID: 1, FirstName: "Sam", IsActive: true}, PostsCount: 3},
	}

	boolPtr := func(b bool) *bool { return &b }

	tests := []struct {
		name      string
		query     url.Values
		setupMock func(*MockUserRepository)
		wantField string
	}{
		{
			name:  "no filters",
			query: url.Values{},
			setupMock: func(m *MockUserRepository) {
				m.On("ListWithPostCounts", mock.Anything, repository.UserFilter{}, 0, 10).
					Return(users, int64(1), nil)
			},
		},
		{
			name:  "status filter is case-insensitive",
			query: url.Values{"status": {"Active"}},
			setupMock: func(m *MockUserRepository) {
				m.On("ListWithPostCounts", mock.Anything, repository.UserFilter{IsActive: boolPtr(true)}, 0, 10).
					Return(users, int64(1), nil)
			},
		},
		{
			name:  "inactive filter",
			query: url.Values{"status": {"inactive"}},
			setupMock: func(m *MockUserRepository) {
				m.On("ListWithPostCounts", mock.Anything, repository.UserFilter{IsActive: boolPtr(false)}, 0, 10).
					Return(users, int64(1), nil)
			},
		},
		{
			name:      "unknown status",
			query:     url.Values{"status": {"banned"}},
			setupMock: func(m *MockUserRepository) {},
			wantField: "status",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			service := NewAdminService(mockRepo, new(MockPostRepository))
			result, total, _, err := service.ListUsers(context.Background(), tt.query)

			if tt.wantField != "" {
				var ferrs apperrors.FieldErrors
				assert.ErrorAs(t, err, &ferrs)
				assert.Contains(t, ferrs, tt.wantField)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, int64(1), total)
				assert.Len(t, result, 1)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestAdminService_SetUserStatus(t *testing.T) {
	tests := []struct {
		name          string
		status        string
		setupMock     func(*MockUserRepository)
		expectedError error
		wantField     string
		wantActive    bool
	}{
		{
			name:   "deactivate",
			status: "Inactive",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByID", mock.Anything, uint(5)).
					Return(&model.User{ID: 5, IsActive: true}, nil)
				m.On("Update", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
					return !u.IsActive
				})).Return(nil)
				m.On("FindWithPostCount", mock.Anything, uint(5)).
					Return(&repository.UserWithPostCount{
						User:       model.User{ID: 5, IsActive: false},
						PostsCount: 2,
					}, nil)
			},
			wantActive: false,
		},
		{
			name:   "reactivate",
			status: "Active",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByID", mock.Anything, uint(5)).
					Return(&model.User{ID: 5, IsActive: false}, nil)
				m.On("Update", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
					return u.IsActive
				})).Return(nil)
				m.On("FindWithPostCount", mock.Anything, uint(5)).
					Return(&repository.UserWithPostCount{
						User:       model.User{ID: 5, IsActive: true},
						PostsCount: 2,
					}, nil)
			},
			wantActive: true,
		},
		{
			name:      "unknown status value",
			status:    "disabled",
			setupMock: func(m *MockUserRepository) {},
			wantField: "status",
		},
		{
			name:   "user not found",
			status: "Active",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByID", mock.Anything, uint(5)).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrUserNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			service := NewAdminService(mockRepo, new(MockPostRepository))
			user, err := service.SetUserStatus(context.Background(), 5, tt.status)

			switch {
			case tt.wantField != "":
				var ferrs apperrors.FieldErrors
				assert.ErrorAs(t, err, &ferrs)
				assert.Contains(t, ferrs, tt.wantField)
			case tt.expectedError != nil:
				assert.ErrorIs(t, err, tt.expectedError)
			default:
				assert.NoError(t, err)
				assert.Equal(t, tt.wantActive, user.IsActive)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestAdminService_ListPosts(t *testing.T) {
	posts := []repository.PostWithCounts{
		{Post: model.Post{ID: 1, Title: "Hidden", Show: false}},
	}

	boolPtr := func(b bool) *bool { return &b }

	tests := []struct {
		name      string
		query     url.Values
		setupMock func(*MockPostRepository)
		wantField string
	}{
		{
			name:  "show filter parsed strictly",
			query: url.Values{"show": {"false"}},
			setupMock: func(m *MockPostRepository) {
				m.On("ListAdmin", mock.Anything, repository.AdminPostFilter{Show: boolPtr(false)}, 0, 10).
					Return(posts, int64(1), nil)
			},
		},
		{
			name:      "malformed show value",
			query:     url.Values{"show": {"hidden"}},
			setupMock: func(m *MockPostRepository) {},
			wantField: "show",
		},
		{
			name:  "status and search combined",
			query: url.Values{"status": {"draft"}, "search": {"sam"}},
			setupMock: func(m *MockPostRepository) {
				m.On("ListAdmin", mock.Anything, repository.AdminPostFilter{
					Status: model.PostStatusDraft,
					Search: "sam",
				}, 0, 10).Return(posts, int64(1), nil)
			},
		},
		{
			name:      "invalid status",
			query:     url.Values{"status": {"archived"}},
			setupMock: func(m *MockPostRepository) {},
			wantField: "status",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockPostRepository)
			tt.setupMock(mockRepo)

			service := NewAdminService(new(MockUserRepository), mockRepo)
			result, total, _, err := service.ListPosts(context.Background(), tt.query)

			if tt.wantField != "" {
				var ferrs apperrors.FieldErrors
				assert.ErrorAs(t, err, &ferrs)
				assert.Contains(t, ferrs, tt.wantField)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, int64(1), total)
				assert.Len(t, result, 1)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestAdminService_SoftDeleteAndRestore(t *testing.T) {
	tests := []struct {
		name          string
		call          func(AdminService) (*repository.PostWithCounts, error)
		setupMock     func(*MockPostRepository)
		expectedError error
		wantShow      bool
	}{
		{
			name: "soft delete hides the post",
			call: func(s AdminService) (*repository.PostWithCounts, error) {
				return s.SoftDeletePost(context.Background(), 3)
			},
			setupMock: func(m *MockPostRepository) {
				m.On("SetShow", mock.Anything, uint(3), false).
					Return(&model.Post{ID: 3, Show: false}, nil)
				m.On("FindWithCounts", mock.Anything, uint(3)).
					Return(&repository.PostWithCounts{Post: model.Post{ID: 3, Show: false}}, nil)
			},
			wantShow: false,
		},
		{
			name: "restore brings it back",
			call: func(s AdminService) (*repository.PostWithCounts, error) {
				return s.RestorePost(context.Background(), 3)
			},
			setupMock: func(m *MockPostRepository) {
				m.On("SetShow", mock.Anything, uint(3), true).
					Return(&model.Post{ID: 3, Show: true}, nil)
				m.On("FindWithCounts", mock.Anything, uint(3)).
					Return(&repository.PostWithCounts{Post: model.Post{ID: 3, Show: true}}, nil)
			},
			wantShow: true,
		},
		{
			name: "missing post",
			call: func(s AdminService) (*repository.PostWithCounts, error) {
				return s.SoftDeletePost(context.Background(), 3)
			},
			setupMock: func(m *MockPostRepository) {
				m.On("SetShow", mock.Anything, uint(3), false).
					Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrPostNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockPostRepository)
			tt.setupMock(mockRepo)

			service := NewAdminService(new(MockUserRepository), mockRepo)
			post, err := tt.call(service)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, post)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.wantShow, post.Show)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}
