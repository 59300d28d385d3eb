package model

import (
	"time"

	"github.com/google/uuid"
)

// TokenCodec mints and verifies signed bearer tokens.
type TokenCodec interface {
	Mint(user User, ttl time.Duration) (string, error)
	MintDefault(user User) (string, error)
	Verify(token string) (Claims, error)
}

// Claims is the payload carried by a bearer token.
type Claims struct {
	ID        string
	Issuer    string
	Subject   uuid.UUID
	IssuedAt  time.Time
	ExpiresAt time.Time
	User      EmbeddedUser
}

// EmbeddedUser is the user snapshot embedded into a token at mint time.
type EmbeddedUser struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

// Expired reports whether the claims expire before now.
func (c Claims) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && c.ExpiresAt.Before(now)
}
