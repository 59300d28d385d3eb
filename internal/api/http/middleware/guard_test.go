package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpcontext "github.com/dtroode/countries-api/internal/api/http/context"
	"github.com/dtroode/countries-api/internal/mocks"
	"github.com/dtroode/countries-api/internal/model"
)

func TestGuard_Handle(t *testing.T) {
	cm := httpcontext.NewManager()
	guard := mocks.NewGuard(t)

	var gotHeader string
	m := NewGuard(func(authorization string) model.Guard {
		gotHeader = authorization
		return guard
	}, cm)

	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		got, ok := cm.GetGuardFromContext(r.Context())
		require.True(t, ok)
		assert.Same(t, guard, got)
	})

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
	req.Header.Set("Authorization", "Bearer abc")
	m.Handle(next).ServeHTTP(httptest.NewRecorder(), req)

	assert.True(t, called)
	assert.Equal(t, "Bearer abc", gotHeader)
}

func TestGuard_Handle_FreshGuardPerRequest(t *testing.T) {
	created := 0
	m := NewGuard(func(string) model.Guard {
		created++
		return mocks.NewGuard(t)
	}, httpcontext.NewManager())

	h := m.Handle(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	for i := 0; i < 3; i++ {
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	}

	assert.Equal(t, 3, created)
}
