package auth

import (
	"encoding/base64"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"noteful/config"
	"noteful/internal/domain/entity"
	"noteful/internal/domain/service"
)

const testSecret = "test_secret_key_very_long_for_testing"

func newTestConfig(secret string, expiry time.Duration) *config.Config {
	cfg := &config.Config{}
	cfg.Auth.JWT.Secret = secret
	cfg.Auth.JWT.Expiry = expiry

	return cfg
}

// fakeClock is a settable time source.
type fakeClock struct {
	current time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.current
}

func newTestUser() *entity.User {
	return &entity.User{
		ID:           uuid.New(),
		Username:     "bobuser",
		Fullname:     "Bob User",
		PasswordHash: "$2a$10$secretdigestvalue",
	}
}

func TestJWTService_IssueAndVerify(t *testing.T) {
	svc, err := NewJWTService(newTestConfig(testSecret, time.Hour))
	require.NoError(t, err)

	user := newTestUser()
	token, err := svc.Issue(user)
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	verified, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, verified.ID)
	assert.Equal(t, user.Username, verified.Username)
	assert.Equal(t, user.Fullname, verified.Fullname)
	assert.Empty(t, verified.PasswordHash)
}

func TestJWTService_PayloadHasNoPasswordHash(t *testing.T) {
	svc, err := NewJWTService(newTestConfig(testSecret, time.Hour))
	require.NoError(t, err)

	user := newTestUser()
	token, err := svc.Issue(user)
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	require.NoError(t, err)

	assert.NotContains(t, string(payload), user.PasswordHash)
	assert.NotContains(t, strings.ToLower(string(payload)), "password")
	assert.Contains(t, string(payload), `"sub":"bobuser"`)
}

func TestJWTService_ExpiryFromConfig(t *testing.T) {
	clock := &fakeClock{current: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
	svc, err := newJWTService(newTestConfig(testSecret, 7*24*time.Hour), clock.Now)
	require.NoError(t, err)

	token, err := svc.Issue(newTestUser())
	require.NoError(t, err)

	claims := &service.Claims{}
	_, _, err = jwt.NewParser().ParseUnverified(token, claims)
	require.NoError(t, err)
	assert.Equal(t, clock.current.Unix(), claims.IssuedAt.Unix())
	assert.Equal(t, clock.current.Add(7*24*time.Hour).Unix(), claims.ExpiresAt.Unix())
}

func TestJWTService_Expired(t *testing.T) {
	clock := &fakeClock{current: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
	svc, err := newJWTService(newTestConfig(testSecret, time.Hour), clock.Now)
	require.NoError(t, err)

	token, err := svc.Issue(newTestUser())
	require.NoError(t, err)

	clock.current = clock.current.Add(time.Hour + time.Second)

	user, err := svc.Verify(token)
	require.Error(t, err)
	assert.Nil(t, user)
	assert.ErrorIs(t, err, service.ErrInvalidToken)
	assert.ErrorIs(t, err, service.ErrTokenExpired)
	assert.NotErrorIs(t, err, service.ErrTokenBadSignature)
	assert.NotErrorIs(t, err, service.ErrTokenMalformed)
}

func TestJWTService_LeewayToleratesSkew(t *testing.T) {
	clock := &fakeClock{current: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
	cfg := newTestConfig(testSecret, time.Hour)
	cfg.Auth.JWT.Leeway = time.Minute
	svc, err := newJWTService(cfg, clock.Now)
	require.NoError(t, err)

	token, err := svc.Issue(newTestUser())
	require.NoError(t, err)

	clock.current = clock.current.Add(time.Hour + 30*time.Second)
	_, err = svc.Verify(token)
	assert.NoError(t, err)
}

func TestJWTService_BadSignature(t *testing.T) {
	issuer, err := NewJWTService(newTestConfig("some-other-secret-entirely", time.Hour))
	require.NoError(t, err)
	verifier, err := NewJWTService(newTestConfig(testSecret, time.Hour))
	require.NoError(t, err)

	token, err := issuer.Issue(newTestUser())
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	require.Error(t, err)
	assert.ErrorIs(t, err, service.ErrInvalidToken)
	assert.ErrorIs(t, err, service.ErrTokenBadSignature)
}

func TestJWTService_UnexpectedAlgorithm(t *testing.T) {
	svc, err := NewJWTService(newTestConfig(testSecret, time.Hour))
	require.NoError(t, err)

	user := newTestUser()
	claims := service.Claims{
		User: user.Public(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Username,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = svc.Verify(token)
	require.Error(t, err)
	assert.ErrorIs(t, err, service.ErrTokenBadSignature)
}

func TestJWTService_Malformed(t *testing.T) {
	svc, err := NewJWTService(newTestConfig(testSecret, time.Hour))
	require.NoError(t, err)

	for _, token := range []string{"", "clearly-not-a-jwt-token-format", "not.a.jwt"} {
		_, err := svc.Verify(token)
		require.Error(t, err, token)
		assert.ErrorIs(t, err, service.ErrInvalidToken, token)
		assert.ErrorIs(t, err, service.ErrTokenMalformed, token)
	}
}

func TestJWTService_SubjectMustMatchPayload(t *testing.T) {
	svc, err := NewJWTService(newTestConfig(testSecret, time.Hour))
	require.NoError(t, err)

	claims := service.Claims{
		User: newTestUser().Public(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "someone-else",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = svc.Verify(token)
	require.Error(t, err)
	assert.ErrorIs(t, err, service.ErrTokenMalformed)
}

func TestJWTService_ExpiryRequired(t *testing.T) {
	svc, err := NewJWTService(newTestConfig(testSecret, time.Hour))
	require.NoError(t, err)

	user := newTestUser()
	claims := service.Claims{
		User:             user.Public(),
		RegisteredClaims: jwt.RegisteredClaims{Subject: user.Username},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = svc.Verify(token)
	require.Error(t, err)
	assert.ErrorIs(t, err, service.ErrTokenMalformed)
}

func TestJWTService_IssueRequiresUsername(t *testing.T) {
	svc, err := NewJWTService(newTestConfig(testSecret, time.Hour))
	require.NoError(t, err)

	_, err = svc.Issue(&entity.User{})
	assert.Error(t, err)

	_, err = svc.Issue(nil)
	assert.Error(t, err)
}

func TestJWTService_InvalidConfig(t *testing.T) {
	svc, err := NewJWTService(newTestConfig("", time.Hour))
	assert.Error(t, err)
	assert.Nil(t, svc)
	assert.Contains(t, err.Error(), "jwt secret must be provided")

	svc, err = NewJWTService(newTestConfig(testSecret, 0))
	assert.Error(t, err)
	assert.Nil(t, svc)
}
