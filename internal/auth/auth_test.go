package auth

import (
	"strings"
	"testing"
	"time"

	"solarsmart/internal/model"

	"github.com/golang-jwt/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef-test"

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("güneş-123")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hash, "$argon2id$v=19$m=65536,t=1,p=4$"))
	assert.True(t, VerifyPassword("güneş-123", hash))
	assert.False(t, VerifyPassword("wrong", hash))

	other, err := HashPassword("güneş-123")
	require.NoError(t, err)
	assert.NotEqual(t, hash, other, "salt is random")

	for _, bad := range []string{"", "plain", "$argon2i$v=19$m=1,t=1,p=1$c2FsdA$aGFzaA", "$argon2id$v=19$m=x,t=1,p=1$c2FsdA$aGFzaA"} {
		assert.False(t, VerifyPassword("güneş-123", bad), bad)
	}
}

func TestTokens(t *testing.T) {
	tokens, err := NewTokens(testSecret, time.Hour)
	require.NoError(t, err)

	raw, exp, err := tokens.Issue()
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)
	assert.NoError(t, tokens.Verify(raw))

	assert.ErrorIs(t, tokens.Verify(""), model.ErrUnauthorized)
	assert.ErrorIs(t, tokens.Verify("garbage"), model.ErrUnauthorized)
	assert.ErrorIs(t, tokens.Verify(raw+"x"), model.ErrUnauthorized)

	otherKey, err := NewTokens("another-secret-of-length", time.Hour)
	require.NoError(t, err)
	assert.ErrorIs(t, otherKey.Verify(raw), model.ErrUnauthorized)
}

func TestExpiredToken(t *testing.T) {
	tokens, err := NewTokens(testSecret, time.Minute)
	require.NoError(t, err)
	tokens.now = func() time.Time { return time.Now().Add(-time.Hour) }

	raw, _, err := tokens.Issue()
	require.NoError(t, err)
	assert.ErrorIs(t, tokens.Verify(raw), model.ErrUnauthorized)
}

func TestTokenWithWrongSubject(t *testing.T) {
	tokens, err := NewTokens(testSecret, time.Hour)
	require.NoError(t, err)
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.StandardClaims{
		Issuer:    tokenIssuer,
		Subject:   "visitor",
		ExpiresAt: time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)
	assert.ErrorIs(t, tokens.Verify(raw), model.ErrUnauthorized)
}

func TestNewTokensValidation(t *testing.T) {
	_, err := NewTokens("short", time.Hour)
	assert.Error(t, err)
	_, err = NewTokens(testSecret, 0)
	assert.Error(t, err)
}

func TestLogin(t *testing.T) {
	tokens, err := NewTokens(testSecret, time.Hour)
	require.NoError(t, err)
	svc, err := NewService("", "admin123", tokens)
	require.NoError(t, err)

	raw, _, err := svc.Login("admin123")
	require.NoError(t, err)
	assert.NoError(t, svc.Authenticate(raw))

	_, _, err = svc.Login("admin")
	assert.ErrorIs(t, err, model.ErrUnauthorized)

	hash, err := HashPassword("from-env")
	require.NoError(t, err)
	svc, err = NewService(hash, "", tokens)
	require.NoError(t, err)
	_, _, err = svc.Login("from-env")
	assert.NoError(t, err)

	_, err = NewService("", "", tokens)
	assert.Error(t, err)
	_, err = NewService("", "x", nil)
	assert.Error(t, err)
}
