// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"

	"noteful/config"
	"noteful/internal/domain/entity"
	"noteful/internal/domain/service"
)

// jwtService is a concrete implementation of the TokenService interface using HS256 JWTs.
type jwtService struct {
	secret []byte        // Secret key for signing tokens.
	ttl    time.Duration // Time-to-live for issued tokens.
	leeway time.Duration // Clock skew tolerated on expiry.
	now    func() time.Time
}

// NewJWTService is the constructor for jwtService.
// It takes configuration values to create a new token service instance.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	svc, err := newJWTService(cfg, time.Now)
	if err != nil {
		return nil, err
	}

	return svc, nil
}

func newJWTService(cfg *config.Config, now func() time.Time) (*jwtService, error) {
	if cfg.Auth.JWT.Secret == "" {
		return nil, errors.New("jwt secret must be provided")
	}
	if cfg.Auth.JWT.Expiry <= 0 {
		return nil, errors.New("jwt expiry must be positive")
	}

	return &jwtService{
		secret: []byte(cfg.Auth.JWT.Secret),
		ttl:    cfg.Auth.JWT.Expiry,
		leeway: cfg.Auth.JWT.Leeway,
		now:    now,
	}, nil
}

// Issue creates a signed token for the user. The password hash never enters the claims.
func (s *jwtService) Issue(user *entity.User) (string, error) {
	if user == nil || user.Username == "" {
		return "", errors.New("cannot issue token without a username")
	}

	issuedAt := s.now()
	claims := service.Claims{
		User: user.Public(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Username,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(s.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", errors.Wrap(err, "sign token")
	}

	return signed, nil
}

// Verify checks the token and returns the identity from its payload.
func (s *jwtService) Verify(tokenString string) (*entity.User, error) {
	claims := &service.Claims{}

	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(s.leeway),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, classifyParseError(err)
	}

	if claims.User.Username == "" || claims.Subject != claims.User.Username {
		return nil, invalidToken(service.ErrTokenMalformed, "subject does not match payload")
	}

	return claims.User.ToUser(), nil
}

// classifyParseError maps jwt errors onto exactly one token failure kind.
func classifyParseError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return invalidToken(service.ErrTokenExpired, err.Error())
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
		return invalidToken(service.ErrTokenBadSignature, err.Error())
	default:
		return invalidToken(service.ErrTokenMalformed, err.Error())
	}
}

// tokenError carries the failure kind. It matches service.ErrInvalidToken and
// unwraps to the kind sentinel.
type tokenError struct {
	kind   error
	reason string
}

func invalidToken(kind error, reason string) error {
	return errors.WithStack(&tokenError{kind: kind, reason: reason})
}

func (e *tokenError) Error() string {
	return service.ErrInvalidToken.Error() + ": " + e.kind.Error() + ": " + e.reason
}

func (e *tokenError) Is(target error) bool {
	return target == service.ErrInvalidToken
}

func (e *tokenError) Unwrap() error {
	return e.kind
}
