package identity

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/crm/backend/internal/domain/identity"
	"github.com/crm/backend/internal/domain/shared"
	"github.com/crm/backend/internal/infrastructure/auth"
	"github.com/crm/backend/internal/infrastructure/config"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockUserRepository is a mock implementation of identity.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*identity.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	args := m.Called(ctx, username)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func newTestJWTService() *auth.JWTService {
	return auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-key",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 7 * 24 * time.Hour,
		Issuer:                 "crm-backend-test",
	})
}

func newAuthService(repo *MockUserRepository) *AuthService {
	return NewAuthService(repo, newTestJWTService(), auth.NewInMemoryTokenBlacklist(), zap.NewNop())
}

func TestAuthService_Login_Success(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := newAuthService(mockRepo)

	user, err := identity.NewUser("admin", "admin123", "admin")
	require.NoError(t, err)

	mockRepo.On("FindByUsername", mock.Anything, "admin").Return(user, nil)
	mockRepo.On("Update", mock.Anything, user).Return(nil)

	result, err := service.Login(context.Background(), LoginInput{Username: "admin", Password: "admin123"})

	require.NoError(t, err)
	assert.NotEmpty(t, result.AccessToken)
	assert.NotEmpty(t, result.RefreshToken)
	assert.Equal(t, "Bearer", result.TokenType)
	assert.Equal(t, "admin", result.User.Username)
	assert.NotNil(t, result.User.LastLoginAt)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_Login_UnknownUser(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := newAuthService(mockRepo)

	mockRepo.On("FindByUsername", mock.Anything, "ghost").Return(nil, shared.ErrNotFound)

	result, err := service.Login(context.Background(), LoginInput{Username: "ghost", Password: "whatever"})

	assert.Nil(t, result)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "UNAUTHORIZED", domainErr.Code)
	assert.Equal(t, "Invalid username or password", domainErr.Message)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := newAuthService(mockRepo)

	user, err := identity.NewUser("admin", "admin123", "admin")
	require.NoError(t, err)

	mockRepo.On("FindByUsername", mock.Anything, "admin").Return(user, nil)

	result, err := service.Login(context.Background(), LoginInput{Username: "admin", Password: "wrong"})

	assert.Nil(t, result)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "UNAUTHORIZED", domainErr.Code)
	// Identical message for unknown user and wrong password
	assert.Equal(t, "Invalid username or password", domainErr.Message)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_Login_RecordLoginFailureIsNonFatal(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := newAuthService(mockRepo)

	user, err := identity.NewUser("admin", "admin123", "admin")
	require.NoError(t, err)

	mockRepo.On("FindByUsername", mock.Anything, "admin").Return(user, nil)
	mockRepo.On("Update", mock.Anything, user).Return(errors.New("connection reset"))

	result, err := service.Login(context.Background(), LoginInput{Username: "admin", Password: "admin123"})

	require.NoError(t, err)
	assert.NotEmpty(t, result.AccessToken)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_Refresh_Success(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := newAuthService(mockRepo)

	user, err := identity.NewUser("admin", "admin123", "admin")
	require.NoError(t, err)

	tokens, err := newTestJWTService().GenerateTokenPair(auth.GenerateTokenInput{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
	})
	require.NoError(t, err)

	mockRepo.On("FindByID", mock.Anything, user.ID).Return(user, nil)

	result, err := service.Refresh(context.Background(), RefreshTokenInput{RefreshToken: tokens.RefreshToken})

	require.NoError(t, err)
	assert.NotEmpty(t, result.AccessToken)
	assert.NotEmpty(t, result.RefreshToken)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_Refresh_RejectsAccessToken(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := newAuthService(mockRepo)

	user, err := identity.NewUser("admin", "admin123", "admin")
	require.NoError(t, err)

	tokens, err := newTestJWTService().GenerateTokenPair(auth.GenerateTokenInput{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
	})
	require.NoError(t, err)

	result, err := service.Refresh(context.Background(), RefreshTokenInput{RefreshToken: tokens.AccessToken})

	assert.Nil(t, result)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "UNAUTHORIZED", domainErr.Code)
	mockRepo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

func TestAuthService_Refresh_InvalidToken(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := newAuthService(mockRepo)

	result, err := service.Refresh(context.Background(), RefreshTokenInput{RefreshToken: "not-a-token"})

	assert.Nil(t, result)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "UNAUTHORIZED", domainErr.Code)
}

func TestAuthService_Logout(t *testing.T) {
	mockRepo := new(MockUserRepository)
	blacklist := auth.NewInMemoryTokenBlacklist()
	service := NewAuthService(mockRepo, newTestJWTService(), blacklist, zap.NewNop())

	t.Run("blacklists token for its remaining lifetime", func(t *testing.T) {
		err := service.Logout(context.Background(), LogoutInput{
			TokenJTI:  "jti-123",
			ExpiresAt: time.Now().Add(10 * time.Minute),
		})

		require.NoError(t, err)
		blocked, err := blacklist.IsBlacklisted(context.Background(), "jti-123")
		require.NoError(t, err)
		assert.True(t, blocked)
	})

	t.Run("expired token is a no-op", func(t *testing.T) {
		err := service.Logout(context.Background(), LogoutInput{
			TokenJTI:  "jti-expired",
			ExpiresAt: time.Now().Add(-time.Minute),
		})

		require.NoError(t, err)
		blocked, err := blacklist.IsBlacklisted(context.Background(), "jti-expired")
		require.NoError(t, err)
		assert.False(t, blocked)
	})

	t.Run("missing jti is a no-op", func(t *testing.T) {
		assert.NoError(t, service.Logout(context.Background(), LogoutInput{}))
	})
}

func TestAuthService_EnsureInitialAdmin(t *testing.T) {
	t.Run("creates admin when no users exist", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		service := newAuthService(mockRepo)

		mockRepo.On("Count", mock.Anything).Return(int64(0), nil)
		mockRepo.On("Create", mock.Anything, mock.MatchedBy(func(u *identity.User) bool {
			return u.Username == "admin" && u.Role == identity.DefaultRole && u.VerifyPassword("admin123")
		})).Return(nil)

		err := service.EnsureInitialAdmin(context.Background(), "admin", "admin123")

		require.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("leaves existing deployments untouched", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		service := newAuthService(mockRepo)

		mockRepo.On("Count", mock.Anything).Return(int64(3), nil)

		err := service.EnsureInitialAdmin(context.Background(), "admin", "admin123")

		require.NoError(t, err)
		mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		mockRepo.AssertExpectations(t)
	})
}
