// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"noteful/internal/domain/entity"
)

var (
	// ErrUserNotFound is returned when no user matches the lookup.
	ErrUserNotFound = errors.New("user not found")

	// ErrDuplicateKey is returned by Create when the username is already taken.
	// Implementations translate their engine-specific unique violation into it.
	ErrDuplicateKey = errors.New("duplicate key")
)

// UserRepository is the user store the auth core consumes.
// Implementations must enforce username uniqueness atomically on Create.
type UserRepository interface {
	// FindByUsername retrieves a single user by username.
	FindByUsername(ctx context.Context, username string) (*entity.User, error)

	// Create persists a new user and fills its ID and timestamps.
	Create(ctx context.Context, user *entity.User) error
}
