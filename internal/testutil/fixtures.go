package testutil

import (
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/countries-api/internal/model"
)

// MakeUser returns a stored-looking user with a fresh id.
func MakeUser(name, email string) model.User {
	now := time.Now().UTC().Truncate(time.Second)
	return model.User{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		PasswordHash: "$2a$04$hash",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// StringPtr returns a pointer to s.
func StringPtr(s string) *string {
	return &s
}
