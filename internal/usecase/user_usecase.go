// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"noteful/internal/domain/entity"
)

// --- Input DTOs ---

// RegisterInput defines the data required to register a new user.
type RegisterInput struct {
	Username string
	Password string
	Fullname string
}

// LoginInput defines the data required for a user to log in.
type LoginInput struct {
	Username string
	Password string
}

// RefreshInput carries the bearer token presented for refresh.
type RefreshInput struct {
	Token string
}

// --- Output DTOs ---

// RegisterOutput returns the newly created user without secrets and where it lives.
type RegisterOutput struct {
	User     entity.PublicUser
	Location string
}

// TokenOutput is returned by login and refresh. User is the identity the
// token was issued for and is not serialized.
type TokenOutput struct {
	AuthToken string       `json:"authToken"`
	User      *entity.User `json:"-"`
}

// AuthUsecase defines the registration, login and refresh operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type AuthUsecase interface {
	Register(ctx context.Context, input *RegisterInput) (*RegisterOutput, error)
	Login(ctx context.Context, input *LoginInput) (*TokenOutput, error)
	Refresh(ctx context.Context, input *RefreshInput) (*TokenOutput, error)

	// Authenticate resolves a bearer token to the identity it carries.
	Authenticate(ctx context.Context, token string) (*entity.User, error)
}

// Strategy names and outcomes reported to AuthMetrics.
const (
	StrategyPassword = "password"
	StrategyToken    = "token"

	OutcomeSuccess      = "success"
	OutcomeBadRequest   = "bad_request"
	OutcomeUnauthorized = "unauthorized"
	OutcomeExpired      = "expired"
	OutcomeError        = "error"
	OutcomeCanceled     = "canceled"
	OutcomeDuplicate    = "duplicate"
	OutcomeInvalid      = "invalid"
)

// AuthMetrics receives one observation per authentication attempt and registration.
type AuthMetrics interface {
	ObserveAuthentication(strategy, outcome string)
	ObserveRegistration(outcome string)
}
