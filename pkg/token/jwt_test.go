package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVisitorTokenRoundTrip(t *testing.T) {
	m := NewJWTManager("test-secret", 15, 12)

	tokenString, err := m.GenerateVisitorToken("", "u1", "s1")
	require.NoError(t, err)

	claims, err := m.VerifyToken(tokenString)
	require.NoError(t, err)
	// type 为空时默认 anonymous
	assert.Equal(t, "anonymous", claims.Type)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, "s1", claims.SessionID)
	assert.Empty(t, claims.Role)
}

func TestAdminTokenCarriesRole(t *testing.T) {
	m := NewJWTManager("test-secret", 15, 12)

	tokenString, err := m.GenerateAdminToken("admin")
	require.NoError(t, err)

	claims, err := m.VerifyToken(tokenString)
	require.NoError(t, err)
	assert.Equal(t, "ADMIN", claims.Role)
	assert.Equal(t, "admin", claims.Subject)
}

func TestVerifyTokenRejectsWrongSecret(t *testing.T) {
	m := NewJWTManager("secret-a", 15, 12)
	other := NewJWTManager("secret-b", 15, 12)

	tokenString, err := m.GenerateVisitorToken("anonymous", "", "")
	require.NoError(t, err)

	_, err = other.VerifyToken(tokenString)
	assert.Error(t, err)
}

func TestVerifyTokenRejectsExpired(t *testing.T) {
	// 有效期为负，签发即过期
	m := NewJWTManager("test-secret", -1, 12)

	tokenString, err := m.GenerateVisitorToken("anonymous", "", "")
	require.NoError(t, err)

	_, err = m.VerifyToken(tokenString)
	assert.Error(t, err)
}

func TestVerifyTokenRejectsGarbage(t *testing.T) {
	m := NewJWTManager("test-secret", 15, 12)
	_, err := m.VerifyToken("not-a-jwt")
	assert.Error(t, err)
}
