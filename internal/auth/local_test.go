package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trofos-project/trofos/internal/db/models"
)

func TestLocalProviderAuthenticate(t *testing.T) {
	p := NewLocalProvider(setupTestDB(t))

	user, err := p.CreateUser("new@test.com", "secret", "New User", models.RoleStudentID)
	require.NoError(t, err)
	require.NotZero(t, user.ID)

	authed, err := p.Authenticate("new@test.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, user.ID, authed.ID)

	_, err = p.Authenticate("new@test.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidPassword)

	_, err = p.Authenticate("nobody@test.com", "secret")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestLocalProviderDuplicateEmail(t *testing.T) {
	p := NewLocalProvider(setupTestDB(t))

	_, err := p.CreateUser("new@test.com", "secret", "New User", models.RoleStudentID)
	require.NoError(t, err)

	_, err = p.CreateUser("new@test.com", "other", "Other User", models.RoleStudentID)
	assert.ErrorIs(t, err, ErrEmailExists)
}

func TestLocalProviderPasswordlessAccount(t *testing.T) {
	db := setupTestDB(t)
	p := NewLocalProvider(db)

	// Roster imports may create accounts without a password. Those must not
	// be able to log in locally.
	user := models.User{Email: "sso@test.com", RoleID: models.RoleStudentID}
	require.NoError(t, db.Create(&user).Error)

	_, err := p.Authenticate("sso@test.com", "")
	assert.ErrorIs(t, err, ErrInvalidPassword)
}

func TestLocalProviderChangePassword(t *testing.T) {
	p := NewLocalProvider(setupTestDB(t))

	user, err := p.CreateUser("new@test.com", "secret", "New User", models.RoleStudentID)
	require.NoError(t, err)

	assert.ErrorIs(t, p.ChangePassword(user.ID, "wrong", "next"), ErrInvalidOldPassword)
	require.NoError(t, p.ChangePassword(user.ID, "secret", "next"))

	_, err = p.Authenticate("new@test.com", "next")
	assert.NoError(t, err)
}

func TestLocalProviderResetPassword(t *testing.T) {
	p := NewLocalProvider(setupTestDB(t))

	user, err := p.CreateUser("new@test.com", "secret", "New User", models.RoleStudentID)
	require.NoError(t, err)

	require.NoError(t, p.ResetPassword(user.ID, "fresh"))

	_, err = p.Authenticate("new@test.com", "fresh")
	assert.NoError(t, err)
}

func TestLocalProviderListUsers(t *testing.T) {
	p := NewLocalProvider(setupTestDB(t))

	users, total, err := p.ListUsers(2, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 4, total)
	assert.Len(t, users, 2)
}
