package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserPasswordHashing(t *testing.T) {
	user := &User{Email: "ana@example.com"}
	require.NoError(t, user.HashPassword("hunter2"))

	assert.NotEqual(t, "hunter2", user.Password)
	assert.True(t, user.CheckPassword("hunter2"))
	assert.False(t, user.CheckPassword("wrong"))
}

func TestToSafeUserStripsPassword(t *testing.T) {
	user := &User{ID: 1, Name: "Ana", Email: "ana@example.com", Allowed: true}
	require.NoError(t, user.HashPassword("hunter2"))

	safe := user.ToSafeUser()
	assert.Empty(t, safe.Password)
	assert.Equal(t, user.Email, safe.Email)
	assert.True(t, safe.Allowed)
}
