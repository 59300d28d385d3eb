package context

import (
	"context"

	"github.com/dtroode/countries-api/internal/model"
)

type contextKey int

const (
	userKey contextKey = iota
	guardKey
)

var _ model.ContextManager = (*Manager)(nil)

// Manager stores per-request authentication state in request contexts.
type Manager struct{}

// NewManager creates a new context manager instance.
func NewManager() *Manager {
	return &Manager{}
}

// SetUserToContext returns a copy of ctx carrying the authenticated user.
func (m *Manager) SetUserToContext(ctx context.Context, user model.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// GetUserFromContext returns the authenticated user stored in ctx.
func (m *Manager) GetUserFromContext(ctx context.Context) (model.User, bool) {
	user, ok := ctx.Value(userKey).(model.User)
	return user, ok
}

// SetGuardToContext returns a copy of ctx carrying the request guard.
func (m *Manager) SetGuardToContext(ctx context.Context, guard model.Guard) context.Context {
	return context.WithValue(ctx, guardKey, guard)
}

// GetGuardFromContext returns the request guard stored in ctx.
func (m *Manager) GetGuardFromContext(ctx context.Context) (model.Guard, bool) {
	guard, ok := ctx.Value(guardKey).(model.Guard)
	if !ok || guard == nil {
		return nil, false
	}
	return guard, true
}
