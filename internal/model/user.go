package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// UserStore defines persistence operations for users.
type UserStore interface {
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByID(ctx context.Context, id uuid.UUID) (User, error)
	Create(ctx context.Context, user User) (User, error)
	Save(ctx context.Context, user User) error
}

// PasswordHasher hashes and verifies user passwords with a salted one-way function.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Compare(hash, plain string) bool
}

// User represents a stored user with authentication material.
type User struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	GoogleID     *string   `json:"google_id"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// HasGoogleID reports whether the user is already linked to a Google account.
func (u User) HasGoogleID() bool {
	return u.GoogleID != nil && *u.GoogleID != ""
}

// Credentials is an email/password pair presented on login.
type Credentials struct {
	Email    string
	Password string
}

// RegisterParams contains parameters to register a user.
type RegisterParams struct {
	Name     string
	Email    string
	Password string
}

// AuthResult is a user together with a freshly minted token.
type AuthResult struct {
	User  User
	Token string
}
