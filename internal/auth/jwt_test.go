package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskboard/taskboard/internal/domain/entity"
)

func TestTokenRoundTrip(t *testing.T) {
	m := NewTokenManager("test-secret", time.Hour)

	token, err := m.Issue(&entity.User{ID: 7, Role: entity.RoleAdmin})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	session, err := m.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, int64(7), session.UserID)
	assert.Equal(t, entity.RoleAdmin, session.Role)
}

func TestTokenWrongSecret(t *testing.T) {
	issuer := NewTokenManager("secret-a", time.Hour)
	verifier := NewTokenManager("secret-b", time.Hour)

	token, err := issuer.Issue(&entity.User{ID: 1, Role: entity.RoleEmployee})
	require.NoError(t, err)

	_, err = verifier.Parse(token)
	assert.Error(t, err)
}

func TestTokenExpired(t *testing.T) {
	m := NewTokenManager("test-secret", -time.Minute)

	token, err := m.Issue(&entity.User{ID: 1, Role: entity.RoleEmployee})
	require.NoError(t, err)

	_, err = m.Parse(token)
	assert.Error(t, err)
}

func TestTokenGarbage(t *testing.T) {
	m := NewTokenManager("test-secret", time.Hour)

	_, err := m.Parse("not.a.token")
	assert.Error(t, err)
}
