package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	t.Run("creates active user with hashed password", func(t *testing.T) {
		user, err := NewUser("user@example.com", "johndoe", "John Doe", "SecurePass123!")

		require.NoError(t, err)
		assert.Equal(t, "user@example.com", user.Email)
		assert.Equal(t, "johndoe", user.Username)
		assert.True(t, user.IsActive)
		assert.NotEqual(t, "SecurePass123!", user.PasswordHash)
		assert.True(t, user.VerifyPassword("SecurePass123!"))
		assert.False(t, user.VerifyPassword("wrong"))
	})

	t.Run("lowercases email", func(t *testing.T) {
		user, err := NewUser("User@Example.COM", "johndoe", "John Doe", "SecurePass123!")

		require.NoError(t, err)
		assert.Equal(t, "user@example.com", user.Email)
	})

	t.Run("fails with invalid email", func(t *testing.T) {
		user, err := NewUser("not-an-email", "johndoe", "John Doe", "SecurePass123!")

		assert.Error(t, err)
		assert.Nil(t, user)
	})

	t.Run("fails with short username", func(t *testing.T) {
		user, err := NewUser("user@example.com", "jd", "John Doe", "SecurePass123!")

		assert.Error(t, err)
		assert.Nil(t, user)
	})

	t.Run("fails with short password", func(t *testing.T) {
		user, err := NewUser("user@example.com", "johndoe", "John Doe", "short")

		assert.Error(t, err)
		assert.Nil(t, user)
	})
}

func TestUser_Apply(t *testing.T) {
	newUser := func(t *testing.T) *User {
		user, err := NewUser("user@example.com", "johndoe", "John Doe", "SecurePass123!")
		require.NoError(t, err)
		return user
	}

	t.Run("merges present fields only", func(t *testing.T) {
		user := newUser(t)
		name := "Jane Doe"

		err := user.Apply(UserPatch{FullName: &name})

		require.NoError(t, err)
		assert.Equal(t, "Jane Doe", user.FullName)
		assert.Equal(t, "user@example.com", user.Email)
		assert.Equal(t, "johndoe", user.Username)
	})

	t.Run("rehashes password when present", func(t *testing.T) {
		user := newUser(t)
		password := "NewSecurePass456!"

		err := user.Apply(UserPatch{Password: &password})

		require.NoError(t, err)
		assert.True(t, user.VerifyPassword("NewSecurePass456!"))
		assert.False(t, user.VerifyPassword("SecurePass123!"))
	})

	t.Run("deactivates account", func(t *testing.T) {
		user := newUser(t)
		inactive := false

		err := user.Apply(UserPatch{IsActive: &inactive})

		require.NoError(t, err)
		assert.False(t, user.IsActive)
	})

	t.Run("rejects invalid email in patch", func(t *testing.T) {
		user := newUser(t)
		bad := "nope"

		err := user.Apply(UserPatch{Email: &bad})

		assert.Error(t, err)
		assert.Equal(t, "user@example.com", user.Email)
	})
}
