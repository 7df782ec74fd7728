package integration

import (
	"context"
	"testing"
	"time"

	identityapp "github.com/crm/backend/internal/application/identity"
	"github.com/crm/backend/internal/domain/shared"
	"github.com/crm/backend/internal/infrastructure/auth"
	"github.com/crm/backend/internal/infrastructure/config"
	"github.com/crm/backend/internal/infrastructure/persistence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newAuthService(tdb *TestDB) *identityapp.AuthService {
	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:                 "integration-test-secret-key-32ch",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 7 * 24 * time.Hour,
		Issuer:                 "crm-backend-test",
	})
	return identityapp.NewAuthService(
		persistence.NewGormUserRepository(tdb.DB),
		jwtService,
		auth.NewInMemoryTokenBlacklist(),
		zap.NewNop(),
	)
}

func TestAuth_InitialAdminBootstrap(t *testing.T) {
	tdb := NewTestDB(t)
	service := newAuthService(tdb)
	ctx := context.Background()

	require.NoError(t, service.EnsureInitialAdmin(ctx, "admin", "ChangeMe123"))

	// A second start against a populated table is a no-op
	require.NoError(t, service.EnsureInitialAdmin(ctx, "admin", "DifferentPassword"))

	result, err := service.Login(ctx, identityapp.LoginInput{Username: "admin", Password: "ChangeMe123"})
	require.NoError(t, err)
	assert.NotEmpty(t, result.AccessToken)
	assert.NotEmpty(t, result.RefreshToken)
	assert.Equal(t, "admin", result.User.Username)
}

func TestAuth_LoginRecordsTimestamp(t *testing.T) {
	tdb := NewTestDB(t)
	service := newAuthService(tdb)
	userRepo := persistence.NewGormUserRepository(tdb.DB)
	ctx := context.Background()

	require.NoError(t, service.EnsureInitialAdmin(ctx, "admin", "ChangeMe123"))

	_, err := service.Login(ctx, identityapp.LoginInput{Username: "admin", Password: "ChangeMe123"})
	require.NoError(t, err)

	user, err := userRepo.FindByUsername(ctx, "admin")
	require.NoError(t, err)
	assert.NotNil(t, user.LastLoginAt)
}

func TestAuth_WrongCredentials(t *testing.T) {
	tdb := NewTestDB(t)
	service := newAuthService(tdb)
	ctx := context.Background()

	require.NoError(t, service.EnsureInitialAdmin(ctx, "admin", "ChangeMe123"))

	_, err := service.Login(ctx, identityapp.LoginInput{Username: "admin", Password: "nope"})
	require.Error(t, err)

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "UNAUTHORIZED", domainErr.Code)

	// Unknown users get the same answer as bad passwords
	_, err = service.Login(ctx, identityapp.LoginInput{Username: "ghost", Password: "nope"})
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "UNAUTHORIZED", domainErr.Code)
}

func TestAuth_RefreshAndLogout(t *testing.T) {
	tdb := NewTestDB(t)
	service := newAuthService(tdb)
	ctx := context.Background()

	require.NoError(t, service.EnsureInitialAdmin(ctx, "admin", "ChangeMe123"))

	login, err := service.Login(ctx, identityapp.LoginInput{Username: "admin", Password: "ChangeMe123"})
	require.NoError(t, err)

	refreshed, err := service.Refresh(ctx, identityapp.RefreshTokenInput{RefreshToken: login.RefreshToken})
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)

	// Logout with an empty JTI is a harmless no-op
	assert.NoError(t, service.Logout(ctx, identityapp.LogoutInput{}))
}
