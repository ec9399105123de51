package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"blogcms/internal/auth"
	apperrors "blogcms/internal/errors"
	"blogcms/internal/model"
)

func hashFor(t *testing.T, password string) string {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	assert.NoError(t, err)
	return string(hashed)
}

func TestAuthService_Register(t *testing.T) {
	tests := []struct {
		name      string
		firstName string
		email     string
		password  string
		setupMock func(*MockUserRepository)
		wantField string
	}{
		{
			name:      "successful registration",
			firstName: "Sam",
			email:     "sam@example.com",
			password:  "password123",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "sam@example.com").Return(nil, gorm.ErrRecordNotFound)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
			},
		},
		{
			name:      "email already in use",
			firstName: "Sam",
			email:     "taken@example.com",
			password:  "password123",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "taken@example.com").
					Return(&model.User{Email: "taken@example.com"}, nil)
			},
			wantField: "email",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			jwtService := auth.NewJWTService("test-secret")
			service := NewAuthService(mockRepo, jwtService, new(MockTokenStore))

			user, err := service.Register(context.Background(), tt.firstName, tt.email, tt.password)

			if tt.wantField != "" {
				var ferrs apperrors.FieldErrors
				assert.ErrorAs(t, err, &ferrs)
				assert.Contains(t, ferrs, tt.wantField)
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.email, user.Email)
				assert.True(t, user.IsActive)
				assert.NotEqual(t, tt.password, user.PasswordHash)
				assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(tt.password)))
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	tests := []struct {
		name          string
		email         string
		password      string
		setupMock     func(*testing.T, *MockUserRepository, *MockTokenStore)
		expectedError error
	}{
		{
			name:     "successful login",
			email:    "sam@example.com",
			password: "password123",
			setupMock: func(t *testing.T, mRepo *MockUserRepository, mToken *MockTokenStore) {
				mRepo.On("FindByEmail", mock.Anything, "sam@example.com").Return(&model.User{
					ID:           10,
					Email:        "sam@example.com",
					PasswordHash: hashFor(t, "password123"),
					IsActive:     true,
				}, nil)
				mToken.On("StoreRefreshToken", mock.Anything, mock.Anything, uint(10), "sam@example.com", mock.Anything).Return(nil)
			},
		},
		{
			name:     "unknown email",
			email:    "nobody@example.com",
			password: "password123",
			setupMock: func(t *testing.T, mRepo *MockUserRepository, mToken *MockTokenStore) {
				mRepo.On("FindByEmail", mock.Anything, "nobody@example.com").Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: ErrInvalidCredentials,
		},
		{
			name:     "wrong password",
			email:    "sam@example.com",
			password: "wrong",
			setupMock: func(t *testing.T, mRepo *MockUserRepository, mToken *MockTokenStore) {
				mRepo.On("FindByEmail", mock.Anything, "sam@example.com").Return(&model.User{
					ID:           10,
					Email:        "sam@example.com",
					PasswordHash: hashFor(t, "password123"),
					IsActive:     true,
				}, nil)
			},
			expectedError: ErrInvalidCredentials,
		},
		{
			name:     "deactivated account",
			email:    "sam@example.com",
			password: "password123",
			setupMock: func(t *testing.T, mRepo *MockUserRepository, mToken *MockTokenStore) {
				mRepo.On("FindByEmail", mock.Anything, "sam@example.com").Return(&model.User{
					ID:           10,
					Email:        "sam@example.com",
					PasswordHash: hashFor(t, "password123"),
					IsActive:     false,
				}, nil)
			},
			expectedError: ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			mockTokenStore := new(MockTokenStore)
			tt.setupMock(t, mockRepo, mockTokenStore)

			jwtService := auth.NewJWTService("test-secret")
			service := NewAuthService(mockRepo, jwtService, mockTokenStore)

			accessToken, refreshToken, user, err := service.Login(context.Background(), tt.email, tt.password)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Empty(t, accessToken)
				assert.Empty(t, refreshToken)
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				assert.NotEmpty(t, accessToken)
				assert.NotEmpty(t, refreshToken)
				assert.Equal(t, tt.email, user.Email)
			}

			mockRepo.AssertExpectations(t)
			mockTokenStore.AssertExpectations(t)
		})
	}
}

func TestAuthService_AdminLogin(t *testing.T) {
	tests := []struct {
		name          string
		isStaff       bool
		expectedError error
	}{
		{name: "staff user", isStaff: true},
		{name: "non-staff user", isStaff: false, expectedError: ErrNotStaff},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			mockTokenStore := new(MockTokenStore)

			mockRepo.On("FindByEmail", mock.Anything, "admin@example.com").Return(&model.User{
				ID:           1,
				Email:        "admin@example.com",
				PasswordHash: hashFor(t, "password123"),
				IsActive:     true,
				IsStaff:      tt.isStaff,
			}, nil)
			if tt.isStaff {
				mockTokenStore.On("StoreRefreshToken", mock.Anything, mock.Anything, uint(1), "admin@example.com", mock.Anything).Return(nil)
			}

			jwtService := auth.NewJWTService("test-secret")
			service := NewAuthService(mockRepo, jwtService, mockTokenStore)

			accessToken, _, user, err := service.AdminLogin(context.Background(), "admin@example.com", "password123")

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				assert.NotEmpty(t, accessToken)
				assert.True(t, user.IsStaff)
			}

			mockTokenStore.AssertExpectations(t)
		})
	}
}

func TestAuthService_RefreshToken(t *testing.T) {
	jwtService := auth.NewJWTService("test-secret")

	t.Run("valid refresh token", func(t *testing.T) {
		tokenID, refreshToken, err := jwtService.GenerateRefreshToken(10, "sam@example.com", false)
		assert.NoError(t, err)

		mockTokenStore := new(MockTokenStore)
		mockTokenStore.On("GetRefreshToken", mock.Anything, tokenID).
			Return(uint(10), "sam@example.com", nil)

		service := NewAuthService(new(MockUserRepository), jwtService, mockTokenStore)
		accessToken, err := service.RefreshToken(context.Background(), refreshToken)

		assert.NoError(t, err)
		assert.NotEmpty(t, accessToken)

		claims, err := jwtService.ValidateToken(accessToken)
		assert.NoError(t, err)
		assert.Equal(t, uint(10), claims.UserID)
		mockTokenStore.AssertExpectations(t)
	})

	t.Run("token signed with another key", func(t *testing.T) {
		otherService := auth.NewJWTService("other-secret")
		_, refreshToken, err := otherService.GenerateRefreshToken(10, "sam@example.com", false)
		assert.NoError(t, err)

		service := NewAuthService(new(MockUserRepository), jwtService, new(MockTokenStore))
		_, err = service.RefreshToken(context.Background(), refreshToken)
		assert.ErrorIs(t, err, ErrInvalidRefreshToken)
	})

	t.Run("revoked refresh token", func(t *testing.T) {
		tokenID, refreshToken, err := jwtService.GenerateRefreshToken(10, "sam@example.com", false)
		assert.NoError(t, err)

		mockTokenStore := new(MockTokenStore)
		mockTokenStore.On("GetRefreshToken", mock.Anything, tokenID).
			Return(uint(0), "", assert.AnError)

		service := NewAuthService(new(MockUserRepository), jwtService, mockTokenStore)
		_, err = service.RefreshToken(context.Background(), refreshToken)
		assert.ErrorIs(t, err, ErrInvalidRefreshToken)
	})
}

func TestAuthService_Logout(t *testing.T) {
	jwtService := auth.NewJWTService("test-secret")

	tokenID, refreshToken, err := jwtService.GenerateRefreshToken(10, "sam@example.com", false)
	assert.NoError(t, err)
	accessToken, err := jwtService.GenerateAccessToken(10, "sam@example.com", false)
	assert.NoError(t, err)

	mockTokenStore := new(MockTokenStore)
	mockTokenStore.On("DeleteRefreshToken", mock.Anything, tokenID).Return(nil)
	mockTokenStore.On("BlacklistAccessToken", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	service := NewAuthService(new(MockUserRepository), jwtService, mockTokenStore)
	err = service.Logout(context.Background(), refreshToken, accessToken)

	assert.NoError(t, err)
	mockTokenStore.AssertExpectations(t)
}

// Logging out with garbage tokens must not fail; there is nothing to revoke.
func TestAuthService_LogoutBadTokens(t *testing.T) {
	jwtService := auth.NewJWTService("test-secret")
	service := NewAuthService(new(MockUserRepository), jwtService, new(MockTokenStore))

	err := service.Logout(context.Background(), "not-a-token", "also-not-a-token")
	assert.NoError(t, err)
}
