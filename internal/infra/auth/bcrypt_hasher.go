// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"context"

	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/semaphore"

	"noteful/config"
	"noteful/internal/domain/service"
)

// bcryptHasher is a concrete implementation of the PasswordHasher interface using bcrypt.
// bcrypt is CPU bound, so the number of hashes running at once is capped by a semaphore.
type bcryptHasher struct {
	cost    int
	workers *semaphore.Weighted
}

// NewBcryptHasher is the constructor for bcryptHasher, configured from auth settings.
func NewBcryptHasher(cfg *config.Config) service.PasswordHasher {
	return NewBcryptHasherWithCost(cfg.Auth.BcryptCost, cfg.Auth.MaxConcurrentHashes)
}

// NewBcryptHasherWithCost builds a hasher with an explicit cost and worker limit.
func NewBcryptHasherWithCost(cost, maxConcurrent int) service.PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	if maxConcurrent <= 0 {
		maxConcurrent = 1
	}

	return &bcryptHasher{
		cost:    cost,
		workers: semaphore.NewWeighted(int64(maxConcurrent)),
	}
}

// Hash generates a salted hash from a plaintext password using bcrypt.
// bcrypt automatically handles salt generation.
func (h *bcryptHasher) Hash(ctx context.Context, password string) (string, error) {
	if err := h.workers.Acquire(ctx, 1); err != nil {
		return "", errors.Wrap(err, "wait for hash worker")
	}
	defer h.workers.Release(1)

	bytes, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", errors.Wrap(err, "bcrypt generate")
	}

	return string(bytes), nil
}

// Check compares a plaintext password with a bcrypt hash.
func (h *bcryptHasher) Check(ctx context.Context, password, hash string) bool {
	if err := h.workers.Acquire(ctx, 1); err != nil {
		return false
	}
	defer h.workers.Release(1)

	// err is nil if the password and hash match.
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
