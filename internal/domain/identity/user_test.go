package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	t.Run("creates user with hashed password", func(t *testing.T) {
		user, err := NewUser("Admin", "admin123", "")

		require.NoError(t, err)
		assert.Equal(t, "admin", user.Username)
		assert.Equal(t, DefaultRole, user.Role)
		assert.NotEqual(t, "admin123", user.PasswordHash)
		assert.Nil(t, user.LastLoginAt)
	})

	t.Run("fails with empty username", func(t *testing.T) {
		user, err := NewUser("", "admin123", "")

		assert.Error(t, err)
		assert.Nil(t, user)
	})

	t.Run("fails with invalid username characters", func(t *testing.T) {
		user, err := NewUser("admin user", "admin123", "")

		assert.Error(t, err)
		assert.Nil(t, user)
	})

	t.Run("fails with empty password", func(t *testing.T) {
		user, err := NewUser("admin", "", "")

		assert.Error(t, err)
		assert.Nil(t, user)
	})
}

func TestUser_VerifyPassword(t *testing.T) {
	user, err := NewUser("admin", "admin123", "admin")
	require.NoError(t, err)

	assert.True(t, user.VerifyPassword("admin123"))
	assert.False(t, user.VerifyPassword("wrong"))
}

func TestUser_RecordLogin(t *testing.T) {
	user, err := NewUser("admin", "admin123", "admin")
	require.NoError(t, err)

	before := user.UpdatedAt
	user.RecordLogin()

	require.NotNil(t, user.LastLoginAt)
	assert.Greater(t, user.UpdatedAt.UnixMilli(), before.UnixMilli())
}

func TestUser_ChangePassword(t *testing.T) {
	user, err := NewUser("admin", "admin123", "admin")
	require.NoError(t, err)

	require.NoError(t, user.ChangePassword("newpass456"))
	assert.True(t, user.VerifyPassword("newpass456"))
	assert.False(t, user.VerifyPassword("admin123"))
}
