package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"puzzle-scoreboard-go/models"
)

func newTestUser(t *testing.T, repo *MemoryUserRepository, id int, email string, allowed bool) *models.User {
	t.Helper()

	user := &models.User{
		ID:      id,
		Name:    "TESTER",
		Email:   email,
		Allowed: allowed,
	}
	require.NoError(t, user.HashPassword("hunter2"))
	require.NoError(t, repo.CreateUser(user))
	return user
}

func TestAuthService_LoginAndTokenRoundTrip(t *testing.T) {
	repo := NewMemoryUserRepository()
	newTestUser(t, repo, 1, "ana@example.com", true)

	auth := NewAuthService(repo, "test-secret")

	resp, err := auth.Login("ana@example.com", "hunter2")
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)

	// password never leaves the service
	assert.Empty(t, resp.User.Password)
	assert.True(t, resp.User.Allowed)

	user, err := auth.GetUserFromToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, 1, user.ID)
	assert.Equal(t, "ana@example.com", user.Email)
}

func TestAuthService_LoginIsCaseInsensitiveOnEmail(t *testing.T) {
	repo := NewMemoryUserRepository()
	newTestUser(t, repo, 1, "ana@example.com", false)

	auth := NewAuthService(repo, "test-secret")

	resp, err := auth.Login("Ana@Example.com", "hunter2")
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", resp.User.Email)
}

func TestAuthService_LoginRejectsBadCredentials(t *testing.T) {
	repo := NewMemoryUserRepository()
	newTestUser(t, repo, 1, "ana@example.com", true)

	auth := NewAuthService(repo, "test-secret")

	_, err := auth.Login("ana@example.com", "wrong")
	assert.Error(t, err)

	_, err = auth.Login("nobody@example.com", "hunter2")
	assert.Error(t, err)
}

func TestAuthService_ClaimsCarryAllowedFlag(t *testing.T) {
	repo := NewMemoryUserRepository()
	allowed := newTestUser(t, repo, 1, "ana@example.com", true)
	readonly := newTestUser(t, repo, 2, "guest@example.com", false)

	auth := NewAuthService(repo, "test-secret")

	allowedToken, err := auth.GenerateToken(allowed)
	require.NoError(t, err)
	claims, err := auth.ValidateToken(allowedToken)
	require.NoError(t, err)
	assert.True(t, claims.Allowed)

	readonlyToken, err := auth.GenerateToken(readonly)
	require.NoError(t, err)
	claims, err = auth.ValidateToken(readonlyToken)
	require.NoError(t, err)
	assert.False(t, claims.Allowed)
}

func TestAuthService_RejectsForeignToken(t *testing.T) {
	repo := NewMemoryUserRepository()
	user := newTestUser(t, repo, 1, "ana@example.com", true)

	auth := NewAuthService(repo, "test-secret")
	other := NewAuthService(repo, "other-secret")

	token, err := other.GenerateToken(user)
	require.NoError(t, err)

	_, err = auth.ValidateToken(token)
	assert.Error(t, err)

	_, err = auth.ValidateToken("not-a-token")
	assert.Error(t, err)
}
