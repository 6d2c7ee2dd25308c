package impl

import (
	"context"
	"testing"

	"noteful/internal/domain/entity"
	domainerrors "noteful/internal/domain/errors"
	"noteful/internal/domain/repository"
	"noteful/internal/domain/service"
	mockRepo "noteful/internal/mocks/repository"
	mockSvc "noteful/internal/mocks/service"
	"noteful/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type passwordStrategyFixtures struct {
	strategy service.Strategy[service.PasswordCredential]
	userRepo *mockRepo.MockUserRepository
	hasher   *mockSvc.MockPasswordHasher
	metrics  *recordingMetrics
}

func createTestPasswordStrategy(t *testing.T) passwordStrategyFixtures {
	userRepo := mockRepo.NewMockUserRepository(t)
	hasher := mockSvc.NewMockPasswordHasher(t)
	metrics := &recordingMetrics{}

	strategy := NewPasswordStrategy(PasswordStrategyParams{
		UserRepo: userRepo,
		Hasher:   hasher,
		Metrics:  metrics,
		Logger:   newDiscardLogger(),
	})

	return passwordStrategyFixtures{
		strategy: strategy,
		userRepo: userRepo,
		hasher:   hasher,
		metrics:  metrics,
	}
}

func requireAppError(t *testing.T, err error, expectedStatus int, expectedName string) domainerrors.AppError {
	t.Helper()

	var appErr domainerrors.AppError
	require.True(t, errors.As(err, &appErr), "expected an AppError, got %v", err)
	assert.Equal(t, expectedStatus, appErr.HTTPCode())
	assert.Equal(t, expectedName, appErr.Name())

	return appErr
}

func TestPasswordStrategy_Authenticate_Success(t *testing.T) {
	fx := createTestPasswordStrategy(t)
	ctx := context.Background()

	stored := &entity.User{ID: uuid.New(), Username: "alice", PasswordHash: "digest"}
	fx.userRepo.EXPECT().FindByUsername(ctx, "alice").Return(stored, nil)
	fx.hasher.EXPECT().Check(ctx, "s3cret", "digest").Return(true)

	user, err := fx.strategy.Authenticate(ctx, service.PasswordCredential{Username: "alice", Password: "s3cret"})

	require.NoError(t, err)
	assert.Equal(t, stored, user)
	assert.Equal(t, []string{"password:success"}, fx.metrics.authentication)
}

func TestPasswordStrategy_Authenticate_MissingCredentials(t *testing.T) {
	tests := []struct {
		name string
		cred service.PasswordCredential
	}{
		{name: "missing username", cred: service.PasswordCredential{Password: "s3cret"}},
		{name: "missing password", cred: service.PasswordCredential{Username: "alice"}},
		{name: "both missing", cred: service.PasswordCredential{}},
		{name: "whitespace username", cred: service.PasswordCredential{Username: "   ", Password: "s3cret"}},
		{name: "whitespace password", cred: service.PasswordCredential{Username: "alice", Password: "\t"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := createTestPasswordStrategy(t)

			user, err := fx.strategy.Authenticate(context.Background(), tt.cred)

			require.Error(t, err)
			assert.Nil(t, user)
			assert.True(t, errors.Is(err, domainerrors.ErrAuthBadRequest))
			appErr := requireAppError(t, err, 400, domainerrors.NameAuthentication)
			assert.Equal(t, "Bad Request", appErr.Message())
			assert.Equal(t, []string{"password:bad_request"}, fx.metrics.authentication)
		})
	}
}

func TestPasswordStrategy_Authenticate_UnknownUser(t *testing.T) {
	fx := createTestPasswordStrategy(t)
	ctx := context.Background()

	fx.userRepo.EXPECT().FindByUsername(ctx, "ghost").Return(nil, repository.ErrUserNotFound)
	fx.hasher.EXPECT().Hash(mock.Anything, timingPassword).Return("timing-digest", nil).Once()
	fx.hasher.EXPECT().Check(ctx, "s3cret", "timing-digest").Return(false)

	user, err := fx.strategy.Authenticate(ctx, service.PasswordCredential{Username: "ghost", Password: "s3cret"})

	require.Error(t, err)
	assert.Nil(t, user)
	assert.True(t, errors.Is(err, domainerrors.ErrAuthUnauthorized))
	appErr := requireAppError(t, err, 401, domainerrors.NameAuthentication)
	assert.Equal(t, "Unauthorized", appErr.Message())
}

func TestPasswordStrategy_Authenticate_TimingDigestComputedOnce(t *testing.T) {
	fx := createTestPasswordStrategy(t)
	ctx := context.Background()

	fx.userRepo.EXPECT().FindByUsername(ctx, mock.Anything).Return(nil, repository.ErrUserNotFound).Times(2)
	fx.hasher.EXPECT().Hash(mock.Anything, timingPassword).Return("timing-digest", nil).Once()
	fx.hasher.EXPECT().Check(ctx, mock.Anything, "timing-digest").Return(false).Times(2)

	_, err := fx.strategy.Authenticate(ctx, service.PasswordCredential{Username: "ghost", Password: "one"})
	require.Error(t, err)
	_, err = fx.strategy.Authenticate(ctx, service.PasswordCredential{Username: "phantom", Password: "two"})
	require.Error(t, err)
}

func TestPasswordStrategy_Authenticate_WrongPasswordMatchesUnknownUser(t *testing.T) {
	ctx := context.Background()

	unknown := createTestPasswordStrategy(t)
	unknown.userRepo.EXPECT().FindByUsername(ctx, "ghost").Return(nil, repository.ErrUserNotFound)
	unknown.hasher.EXPECT().Hash(mock.Anything, timingPassword).Return("timing-digest", nil)
	unknown.hasher.EXPECT().Check(ctx, "s3cret", "timing-digest").Return(false)
	_, unknownErr := unknown.strategy.Authenticate(ctx, service.PasswordCredential{Username: "ghost", Password: "s3cret"})

	wrong := createTestPasswordStrategy(t)
	wrong.userRepo.EXPECT().FindByUsername(ctx, "alice").Return(&entity.User{Username: "alice", PasswordHash: "digest"}, nil)
	wrong.hasher.EXPECT().Check(ctx, "nope", "digest").Return(false)
	_, wrongErr := wrong.strategy.Authenticate(ctx, service.PasswordCredential{Username: "alice", Password: "nope"})

	unknownApp := requireAppError(t, unknownErr, 401, domainerrors.NameAuthentication)
	wrongApp := requireAppError(t, wrongErr, 401, domainerrors.NameAuthentication)
	assert.Equal(t, unknownApp.Message(), wrongApp.Message())
	assert.Equal(t, unknownApp.ErrorCode(), wrongApp.ErrorCode())
	assert.Equal(t, unknownErr.Error(), wrongErr.Error())
	assert.Equal(t, []string{"password:unauthorized"}, wrong.metrics.authentication)
}

func TestPasswordStrategy_Authenticate_StoreFailure(t *testing.T) {
	fx := createTestPasswordStrategy(t)
	ctx := context.Background()

	storeErr := errors.New("connection reset")
	fx.userRepo.EXPECT().FindByUsername(ctx, "alice").Return(nil, storeErr)

	user, err := fx.strategy.Authenticate(ctx, service.PasswordCredential{Username: "alice", Password: "s3cret"})

	require.Error(t, err)
	assert.Nil(t, user)
	assert.True(t, errors.Is(err, storeErr))
	assert.False(t, errors.Is(err, domainerrors.ErrAuthUnauthorized))
	assert.Equal(t, []string{"password:" + usecase.OutcomeError}, fx.metrics.authentication)
}

func TestPasswordStrategy_Authenticate_CanceledDuringCheck(t *testing.T) {
	fx := createTestPasswordStrategy(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	fx.userRepo.EXPECT().FindByUsername(ctx, "alice").Return(&entity.User{Username: "alice", PasswordHash: "digest"}, nil)
	fx.hasher.EXPECT().Check(ctx, "s3cret", "digest").Return(false)

	user, err := fx.strategy.Authenticate(ctx, service.PasswordCredential{Username: "alice", Password: "s3cret"})

	require.Error(t, err)
	assert.Nil(t, user)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.False(t, errors.Is(err, domainerrors.ErrAuthUnauthorized))
	assert.Equal(t, []string{"password:" + usecase.OutcomeCanceled}, fx.metrics.authentication)
}

func TestPasswordStrategy_Authenticate_CanceledForUnknownUser(t *testing.T) {
	fx := createTestPasswordStrategy(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	fx.userRepo.EXPECT().FindByUsername(ctx, "ghost").Return(nil, repository.ErrUserNotFound)
	fx.hasher.EXPECT().Hash(mock.Anything, timingPassword).Return("timing-digest", nil)
	fx.hasher.EXPECT().Check(ctx, "s3cret", "timing-digest").Return(false)

	_, err := fx.strategy.Authenticate(ctx, service.PasswordCredential{Username: "ghost", Password: "s3cret"})

	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Equal(t, []string{"password:" + usecase.OutcomeCanceled}, fx.metrics.authentication)
}
