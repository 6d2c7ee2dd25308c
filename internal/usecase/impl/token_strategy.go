package impl

import (
	"context"
	"log/slog"

	deliverycontext "noteful/internal/delivery/context"
	"noteful/internal/domain/entity"
	domainerrors "noteful/internal/domain/errors"
	"noteful/internal/domain/service"
	"noteful/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// tokenStrategy authenticates a bearer token through the TokenService.
type tokenStrategy struct {
	tokens  service.TokenService
	metrics usecase.AuthMetrics
	logger  *slog.Logger
}

// TokenStrategyParams holds dependencies for the token strategy, injected by Fx.
type TokenStrategyParams struct {
	fx.In

	TokenService service.TokenService
	Metrics      usecase.AuthMetrics
	Logger       *slog.Logger
}

// NewTokenStrategy builds the bearer token authentication pipeline.
func NewTokenStrategy(params TokenStrategyParams) service.Strategy[service.BearerCredential] {
	return &tokenStrategy{
		tokens:  params.TokenService,
		metrics: params.Metrics,
		logger:  params.Logger,
	}
}

// Authenticate verifies the token. Every failure kind collapses into the same
// Unauthorized error; the kind is only logged and counted.
func (s *tokenStrategy) Authenticate(ctx context.Context, cred service.BearerCredential) (*entity.User, error) {
	if cred.Token == "" {
		s.metrics.ObserveAuthentication(usecase.StrategyToken, usecase.OutcomeUnauthorized)

		return nil, domainerrors.ErrAuthUnauthorized.WrapMessage("missing bearer token")
	}

	user, err := s.tokens.Verify(cred.Token)
	if err != nil {
		kind := tokenFailureKind(err)
		deliverycontext.GetLoggerOrDefault(ctx, s.logger).Debug("Token authentication rejected", slog.String("kind", kind))

		outcome := usecase.OutcomeUnauthorized
		if kind == "expired" {
			outcome = usecase.OutcomeExpired
		}
		s.metrics.ObserveAuthentication(usecase.StrategyToken, outcome)

		return nil, domainerrors.ErrAuthUnauthorized.WrapMessage("token rejected")
	}

	s.metrics.ObserveAuthentication(usecase.StrategyToken, usecase.OutcomeSuccess)

	return user, nil
}

func tokenFailureKind(err error) string {
	switch {
	case errors.Is(err, service.ErrTokenExpired):
		return "expired"
	case errors.Is(err, service.ErrTokenBadSignature):
		return "bad_signature"
	case errors.Is(err, service.ErrTokenMalformed):
		return "malformed"
	default:
		return "unknown"
	}
}
