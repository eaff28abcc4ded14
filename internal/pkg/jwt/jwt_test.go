package jwt

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cmlabs-hris/hr-portal-backend/internal/domain/user"
	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAccessToken_Claims(t *testing.T) {
	svc := NewJWTService("test-secret-key-for-jwt", "1h", false)

	token, expiresAt, err := svc.GenerateAccessToken(42, user.RoleManager)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.InDelta(t, time.Now().Add(time.Hour).Unix(), expiresAt, 5)

	decoded, err := svc.JWTAuth().Decode(token)
	require.NoError(t, err)

	userID, _ := decoded.Get("user_id")
	role, _ := decoded.Get("role")
	tokenType, _ := decoded.Get("type")
	assert.Equal(t, "42", userID)
	assert.Equal(t, "manager", role)
	assert.Equal(t, "access", tokenType)
	assert.NotEmpty(t, decoded.JwtID())
}

func TestNewJWTService_InvalidExpirationFallsBack(t *testing.T) {
	svc := NewJWTService("secret", "forever", false)
	assert.Equal(t, 24*time.Hour, svc.accessTokenExpiration)
}

func TestRevokeToken(t *testing.T) {
	svc := NewJWTService("secret", "1h", false)
	now := time.Unix(1_700_000_000, 0)
	svc.now = func() time.Time { return now }

	svc.RevokeToken("stale", now.Add(-time.Minute).Unix())
	assert.True(t, svc.IsTokenRevoked("stale"))

	svc.RevokeToken("fresh", now.Add(time.Hour).Unix())
	assert.True(t, svc.IsTokenRevoked("fresh"))
	assert.False(t, svc.IsTokenRevoked("stale"), "expired revocations are pruned")
	assert.False(t, svc.IsTokenRevoked("unknown"))
}

func TestSessionCookie(t *testing.T) {
	svc := NewJWTService("secret", "1h", true)

	cookie := svc.SessionCookie("abc", time.Now().Add(time.Hour).Unix())
	assert.Equal(t, SessionCookieName, cookie.Name)
	assert.True(t, cookie.HttpOnly)
	assert.True(t, cookie.Secure)

	cleared := svc.ClearSessionCookie()
	assert.Equal(t, -1, cleared.MaxAge)

	req := httptest.NewRequest("GET", "/", nil)
	req.AddCookie(cookie)
	assert.Equal(t, "abc", jwtauth.TokenFromCookie(req))
}
