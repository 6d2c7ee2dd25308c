// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is the identity record behind every account.
type User struct {
	ID           uuid.UUID // The Global Unique Identifier (GUID) for the user.
	Username     string    // Unique login name. Immutable once created.
	Fullname     string    // Optional display name.
	PasswordHash string    `json:"-"` // bcrypt digest. Never leaves the service.
	CreatedAt    time.Time // Timestamp of when this user account was created.
	UpdatedAt    time.Time // Timestamp of the last modification to this user's data.
}

// PublicUser is the identity without any secret material. It is what the API
// returns and what tokens carry as their payload.
type PublicUser struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Fullname string    `json:"fullname,omitempty"`
}

// Public strips the password hash and timestamps from the user.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:       u.ID,
		Username: u.Username,
		Fullname: u.Fullname,
	}
}

// ToUser turns a public identity back into a User with no password hash.
func (p PublicUser) ToUser() *User {
	return &User{
		ID:       p.ID,
		Username: p.Username,
		Fullname: p.Fullname,
	}
}
