package impl

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	deliverycontext "noteful/internal/delivery/context"
	"noteful/internal/domain/entity"
	domainerrors "noteful/internal/domain/errors"
	"noteful/internal/domain/repository"
	"noteful/internal/domain/service"
	"noteful/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// timingPassword is hashed once and checked against when the username is
// unknown, so a miss costs as much as a wrong password.
const timingPassword = "noteful-unknown-user"

// passwordStrategy authenticates a username/password pair against the user store.
type passwordStrategy struct {
	userRepo repository.UserRepository
	hasher   service.PasswordHasher
	metrics  usecase.AuthMetrics
	logger   *slog.Logger

	timingOnce sync.Once
	timingHash string
}

// PasswordStrategyParams holds dependencies for the password strategy, injected by Fx.
type PasswordStrategyParams struct {
	fx.In

	UserRepo repository.UserRepository
	Hasher   service.PasswordHasher
	Metrics  usecase.AuthMetrics
	Logger   *slog.Logger
}

// NewPasswordStrategy builds the username/password authentication pipeline.
func NewPasswordStrategy(params PasswordStrategyParams) service.Strategy[service.PasswordCredential] {
	return &passwordStrategy{
		userRepo: params.UserRepo,
		hasher:   params.Hasher,
		metrics:  params.Metrics,
		logger:   params.Logger,
	}
}

func (s *passwordStrategy) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, s.logger)
}

// Authenticate runs presence validation, the store lookup and the password check, in that order.
func (s *passwordStrategy) Authenticate(ctx context.Context, cred service.PasswordCredential) (*entity.User, error) {
	if !isPresent(cred.Username) || !isPresent(cred.Password) {
		s.metrics.ObserveAuthentication(usecase.StrategyPassword, usecase.OutcomeBadRequest)

		return nil, domainerrors.ErrAuthBadRequest.WrapMessage("missing credentials")
	}

	user, err := s.userRepo.FindByUsername(ctx, cred.Username)
	if errors.Is(err, repository.ErrUserNotFound) {
		s.equalizeTiming(ctx, cred.Password)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, s.aborted(ctxErr)
		}
		s.log(ctx).Debug("Password authentication rejected", slog.String("reason", "unknown user"))
		s.metrics.ObserveAuthentication(usecase.StrategyPassword, usecase.OutcomeUnauthorized)

		return nil, domainerrors.ErrAuthUnauthorized.WrapMessage("login failed")
	}
	if err != nil {
		s.metrics.ObserveAuthentication(usecase.StrategyPassword, usecase.OutcomeError)

		return nil, errors.Wrap(err, "failed to find user by username")
	}

	if !s.hasher.Check(ctx, cred.Password, user.PasswordHash) {
		// Check also fails when the request was cancelled while waiting for a hash worker.
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, s.aborted(ctxErr)
		}
		s.log(ctx).Debug("Password authentication rejected", slog.String("reason", "password mismatch"))
		s.metrics.ObserveAuthentication(usecase.StrategyPassword, usecase.OutcomeUnauthorized)

		return nil, domainerrors.ErrAuthUnauthorized.WrapMessage("login failed")
	}

	s.metrics.ObserveAuthentication(usecase.StrategyPassword, usecase.OutcomeSuccess)

	return user, nil
}

func (s *passwordStrategy) aborted(ctxErr error) error {
	s.metrics.ObserveAuthentication(usecase.StrategyPassword, usecase.OutcomeCanceled)

	return errors.Wrap(ctxErr, "password authentication aborted")
}

func (s *passwordStrategy) equalizeTiming(ctx context.Context, password string) {
	s.timingOnce.Do(func() {
		hash, err := s.hasher.Hash(context.WithoutCancel(ctx), timingPassword)
		if err != nil {
			s.log(ctx).Warn("Failed to prepare timing digest", slog.Any("error", err))

			return
		}
		s.timingHash = hash
	})

	if s.timingHash != "" {
		_ = s.hasher.Check(ctx, password, s.timingHash)
	}
}

// isPresent is the basic presence rule shared by login and registration.
func isPresent(value string) bool {
	return strings.TrimSpace(value) != ""
}
