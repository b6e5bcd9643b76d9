package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndVerifyToken(t *testing.T) {
	a := NewAuthenticator("test-secret", time.Hour)

	token, err := a.IssueToken(map[string]interface{}{
		"email": "user@example.com",
		"name":  "Test User",
	})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := a.VerifyToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "user@example.com", claims.Email)
	assert.Equal(t, "Test User", claims.Raw["name"])
}

func TestVerifyToken_Expired(t *testing.T) {
	a := NewAuthenticator("test-secret", -time.Minute)

	token, err := a.IssueToken(map[string]interface{}{"email": "user@example.com"})
	require.NoError(t, err)

	_, err = a.VerifyToken(context.Background(), token)
	assert.Error(t, err)
}

func TestVerifyToken_WrongSecret(t *testing.T) {
	issuer := NewAuthenticator("secret-one", time.Hour)
	verifier := NewAuthenticator("secret-two", time.Hour)

	token, err := issuer.IssueToken(map[string]interface{}{"email": "user@example.com"})
	require.NoError(t, err)

	_, err = verifier.VerifyToken(context.Background(), token)
	assert.Error(t, err)
}

func TestVerifyToken_Malformed(t *testing.T) {
	a := NewAuthenticator("test-secret", time.Hour)

	_, err := a.VerifyToken(context.Background(), "not-a-token")
	assert.Error(t, err)
}
