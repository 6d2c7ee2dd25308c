package service

import (
	"context"

	"noteful/internal/domain/entity"
)

// PasswordCredential is the username/password pair sent to login. It only
// lives for the duration of a request.
type PasswordCredential struct {
	Username string
	Password string
}

// BearerCredential is a token taken from the Authorization header.
type BearerCredential struct {
	Token string
}

// Strategy is one authentication pipeline. On failure it returns a classified
// AuthenticationError and the caller stops processing.
type Strategy[C any] interface {
	Authenticate(ctx context.Context, credential C) (*entity.User, error)
}
