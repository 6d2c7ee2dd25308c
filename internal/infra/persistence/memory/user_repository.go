// Package memory provides an in-process user store for development and tests.
package memory

import (
	"context"
	"sync"
	"time"

	"noteful/internal/domain/entity"
	"noteful/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// userRepository keeps users in a map keyed by username. Records are copied
// in and out so callers never share memory with the store.
type userRepository struct {
	mu    sync.RWMutex
	users map[string]entity.User
	now   func() time.Time
}

// NewUserRepository returns an empty in-memory store.
func NewUserRepository() repository.UserRepository {
	return &userRepository{
		users: make(map[string]entity.User),
		now:   time.Now,
	}
}

func (repo *userRepository) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.WithStack(err)
	}

	repo.mu.RLock()
	defer repo.mu.RUnlock()

	user, ok := repo.users[username]
	if !ok {
		return nil, repository.ErrUserNotFound
	}

	return &user, nil
}

func (repo *userRepository) Create(ctx context.Context, user *entity.User) error {
	if err := ctx.Err(); err != nil {
		return errors.WithStack(err)
	}

	repo.mu.Lock()
	defer repo.mu.Unlock()

	if _, exists := repo.users[user.Username]; exists {
		return errors.Wrap(repository.ErrDuplicateKey, "username already exists")
	}

	if user.ID == uuid.Nil {
		id, err := uuid.NewV7()
		if err != nil {
			return errors.Wrap(err, "failed to generate user id")
		}
		user.ID = id
	}
	now := repo.now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	repo.users[user.Username] = *user

	return nil
}
