package middleware

import (
	"net/http"

	"github.com/dtroode/countries-api/internal/model"
)

// NewGuardFunc builds a guard for a request carrying the given Authorization header.
type NewGuardFunc func(authorization string) model.Guard

// Guard attaches a fresh request-scoped guard to every request context.
type Guard struct {
	newGuard       NewGuardFunc
	contextManager model.ContextManager
}

// NewGuard creates a new Guard middleware instance.
func NewGuard(newGuard NewGuardFunc, contextManager model.ContextManager) *Guard {
	return &Guard{newGuard: newGuard, contextManager: contextManager}
}

// Handle wraps next so that handlers can read the guard from the request context.
func (m *Guard) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		guard := m.newGuard(r.Header.Get("Authorization"))
		ctx := m.contextManager.SetGuardToContext(r.Context(), guard)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
