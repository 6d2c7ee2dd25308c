// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"

	"noteful/config"
	deliverycontext "noteful/internal/delivery/context"
	"noteful/internal/domain/entity"
	domainerrors "noteful/internal/domain/errors"
	"noteful/internal/domain/repository"
	"noteful/internal/domain/service"
	"noteful/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const usersLocationPrefix = "/api/users/"

// authService implements the AuthUsecase interface.
type authService struct {
	userRepo  repository.UserRepository
	hasher    service.PasswordHasher
	tokens    service.TokenService
	passwords service.Strategy[service.PasswordCredential]
	bearers   service.Strategy[service.BearerCredential]
	validator *registrationValidator
	metrics   usecase.AuthMetrics
	logger    *slog.Logger
}

// AuthServiceParams holds dependencies for AuthService, injected by Fx.
type AuthServiceParams struct {
	fx.In

	UserRepo         repository.UserRepository
	Hasher           service.PasswordHasher
	TokenService     service.TokenService
	PasswordStrategy service.Strategy[service.PasswordCredential]
	TokenStrategy    service.Strategy[service.BearerCredential]
	Metrics          usecase.AuthMetrics
	Config           *config.Config
	Logger           *slog.Logger
}

// NewAuthService builds the auth use case. It fails when the configured
// registration rules reference unknown validators.
func NewAuthService(params AuthServiceParams) (usecase.AuthUsecase, error) {
	validator, err := newRegistrationValidator(params.Config.Registration)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build registration validator")
	}

	return &authService{
		userRepo:  params.UserRepo,
		hasher:    params.Hasher,
		tokens:    params.TokenService,
		passwords: params.PasswordStrategy,
		bearers:   params.TokenStrategy,
		validator: validator,
		metrics:   params.Metrics,
		logger:    params.Logger,
	}, nil
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register validates the input, hashes the password and stores the new user.
func (srv *authService) Register(ctx context.Context, input *usecase.RegisterInput) (*usecase.RegisterOutput, error) {
	if err := srv.validator.Validate(input); err != nil {
		srv.log(ctx).Debug("Registration rejected by validation", slog.Any("error", err))
		srv.metrics.ObserveRegistration(usecase.OutcomeInvalid)

		return nil, err
	}

	hashedPassword, err := srv.hasher.Hash(ctx, input.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password during registration", slog.Any("error", err))
		srv.metrics.ObserveRegistration(usecase.OutcomeError)

		return nil, domainerrors.ErrInternal.WithCause(errors.Wrap(err, "hash password"))
	}

	newUser := &entity.User{
		Username:     input.Username,
		Fullname:     input.Fullname,
		PasswordHash: hashedPassword,
	}

	if err := srv.userRepo.Create(ctx, newUser); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			srv.log(ctx).Info("Registration rejected, username taken", slog.String("username", input.Username))
			srv.metrics.ObserveRegistration(usecase.OutcomeDuplicate)

			return nil, domainerrors.ErrUsernameTaken.WrapMessage("failed to create user")
		}

		srv.metrics.ObserveRegistration(usecase.OutcomeError)

		return nil, errors.Wrap(err, "failed to create user during registration")
	}

	srv.log(ctx).Info("User registered", slog.Any("userID", newUser.ID))
	srv.metrics.ObserveRegistration(usecase.OutcomeSuccess)

	return &usecase.RegisterOutput{
		User:     newUser.Public(),
		Location: usersLocationPrefix + newUser.ID.String(),
	}, nil
}

// Login authenticates a username/password pair and issues a fresh token.
func (srv *authService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.TokenOutput, error) {
	user, err := srv.passwords.Authenticate(ctx, service.PasswordCredential{
		Username: input.Username,
		Password: input.Password,
	})
	if err != nil {
		return nil, err
	}

	return srv.issue(ctx, user)
}

// Refresh re-authenticates with a still-valid token and issues a new one.
func (srv *authService) Refresh(ctx context.Context, input *usecase.RefreshInput) (*usecase.TokenOutput, error) {
	user, err := srv.bearers.Authenticate(ctx, service.BearerCredential{Token: input.Token})
	if err != nil {
		return nil, err
	}

	return srv.issue(ctx, user)
}

// Authenticate resolves a bearer token to its identity.
func (srv *authService) Authenticate(ctx context.Context, token string) (*entity.User, error) {
	return srv.bearers.Authenticate(ctx, service.BearerCredential{Token: token})
}

func (srv *authService) issue(ctx context.Context, user *entity.User) (*usecase.TokenOutput, error) {
	token, err := srv.tokens.Issue(user)
	if err != nil {
		srv.log(ctx).Error("Failed to issue token", slog.Any("userID", user.ID), slog.Any("error", err))

		return nil, domainerrors.ErrInternal.WithCause(errors.Wrap(err, "issue token"))
	}

	return &usecase.TokenOutput{AuthToken: token, User: user}, nil
}
