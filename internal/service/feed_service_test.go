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

func TestParsePostFilter(t *testing.T) {
	tests := []struct {
		name       string
		query      url.Values
		withSearch bool
		expected   repository.PostFilter
		wantField  string
	}{
		{
			name:       "empty query",
			query:      url.Values{},
			withSearch: true,
			expected:   repository.PostFilter{},
		},
		{
			name: "all filters set",
			query: url.Values{
				"search":   {"golang"},
				"category": {"Technology"},
				"status":   {"published"},
				"sort_by":  {"popular"},
			},
			withSearch: true,
			expected: repository.PostFilter{
				Search:   "golang",
				Category: "Technology",
				Status:   model.PostStatusPublished,
				Sort:     repository.SortPopular,
			},
		},
		{
			name:       "search ignored for owner list",
			query:      url.Values{"search": {"golang"}},
			withSearch: false,
			expected:   repository.PostFilter{},
		},
		{
			name:       "invalid status",
			query:      url.Values{"status": {"archived"}},
			withSearch: true,
			wantField:  "status",
		},
		{
			name:       "invalid sort",
			query:      url.Values{"sort_by": {"trending"}},
			withSearch: true,
			wantField:  "sort_by",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filter, err := ParsePostFilter(tt.query, tt.withSearch)

			if tt.wantField != "" {
				assert.Error(t, err)
				var ferrs apperrors.FieldErrors
				assert.ErrorAs(t, err, &ferrs)
				assert.Contains(t, ferrs, tt.wantField)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expected, filter)
			}
		})
	}
}

func TestFeedService_Explore(t *testing.T) {
	posts := []repository.PostWithCounts{
		{Post: model.Post{ID: 1, Title: "First"}, LikesCount: 3, CommentsCount: 1},
		{Post: model.Post{ID: 2, Title: "Second"}, LikesCount: 1, CommentsCount: 0},
	}

	tests := []struct {
		name          string
		query         url.Values
		setupMock     func(*MockPostRepository)
		expectedTotal int64
		expectedError error
		wantField     string
	}{
		{
			name:  "first page with defaults",
			query: url.Values{},
			setupMock: func(m *MockPostRepository) {
				m.On("ListVisible", mock.Anything, repository.PostFilter{}, 0, 9).
					Return(posts, int64(2), nil)
			},
			expectedTotal: 2,
		},
		{
			name:  "filters forwarded to repository",
			query: url.Values{"category": {"Travel"}, "sort_by": {"most-commented"}},
			setupMock: func(m *MockPostRepository) {
				m.On("ListVisible", mock.Anything, repository.PostFilter{
					Category: "Travel",
					Sort:     repository.SortMostCommented,
				}, 0, 9).Return(posts, int64(2), nil)
			},
			expectedTotal: 2,
		},
		{
			name:  "page past the end",
			query: url.Values{"page": {"5"}},
			setupMock: func(m *MockPostRepository) {
				m.On("ListVisible", mock.Anything, repository.PostFilter{}, 36, 9).
					Return([]repository.PostWithCounts{}, int64(2), nil)
			},
			expectedError: apperrors.ErrPageOutOfRange,
		},
		{
			name:      "invalid page number",
			query:     url.Values{"page": {"zero"}},
			setupMock: func(m *MockPostRepository) {},
			wantField: "page",
		},
		{
			name:      "invalid filter short-circuits before the query",
			query:     url.Values{"status": {"archived"}},
			setupMock: func(m *MockPostRepository) {},
			wantField: "status",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockPostRepository)
			tt.setupMock(mockRepo)

			service := NewFeedService(mockRepo)
			result, total, _, err := service.Explore(context.Background(), tt.query)

			switch {
			case tt.wantField != "":
				var ferrs apperrors.FieldErrors
				assert.ErrorAs(t, err, &ferrs)
				assert.Contains(t, ferrs, tt.wantField)
			case tt.expectedError != nil:
				assert.ErrorIs(t, err, tt.expectedError)
			default:
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedTotal, total)
				assert.Len(t, result, len(posts))
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestFeedService_Detail(t *testing.T) {
	tests := []struct {
		name          string
		postID        uint
		setupMock     func(*MockPostRepository)
		expectedError error
	}{
		{
			name:   "found",
			postID: 7,
			setupMock: func(m *MockPostRepository) {
				m.On("FindWithCounts", mock.Anything, uint(7)).
					Return(&repository.PostWithCounts{
						Post:       model.Post{ID: 7, Title: "Hello"},
						LikesCount: 4,
					}, nil)
			},
		},
		{
			name:   "not found",
			postID: 99,
			setupMock: func(m *MockPostRepository) {
				m.On("FindWithCounts", mock.Anything, uint(99)).
					Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrPostNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockPostRepository)
			tt.setupMock(mockRepo)

			service := NewFeedService(mockRepo)
			post, err := service.Detail(context.Background(), tt.postID)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, post)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.postID, post.ID)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}
