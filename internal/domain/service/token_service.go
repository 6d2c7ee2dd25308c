package service

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"

	"noteful/internal/domain/entity"
)

// ErrInvalidToken is wrapped by every Verify failure. Exactly one of the kind
// sentinels below is wrapped alongside it.
var ErrInvalidToken = errors.New("invalid token")

var (
	ErrTokenMalformed    = errors.New("token malformed")
	ErrTokenBadSignature = errors.New("token signature invalid")
	ErrTokenExpired      = errors.New("token expired")
)

// Claims defines the custom claims for the bearer tokens.
type Claims struct {
	User entity.PublicUser `json:"user"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies signed, time-bounded bearer tokens.
type TokenService interface {
	// Issue signs a token whose subject is the username and whose payload is
	// the public part of the user.
	Issue(user *entity.User) (string, error)

	// Verify checks signature and expiry and returns the identity encoded in
	// the payload.
	Verify(token string) (*entity.User, error)
}
