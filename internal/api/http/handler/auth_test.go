package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	httpcontext "github.com/dtroode/countries-api/internal/api/http/context"
	"github.com/dtroode/countries-api/internal/mocks"
	"github.com/dtroode/countries-api/internal/model"
	"github.com/dtroode/countries-api/internal/testutil"
)

func newJSONRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestAuth_Register(t *testing.T) {
	user := testutil.MakeUser("Ann", "ann@example.com")

	tests := []struct {
		name       string
		body       string
		setup      func(svc *mocks.AuthService)
		wantStatus int
		check      func(t *testing.T, body map[string]any)
	}{
		{
			name: "success",
			body: `{"name":"Ann","email":"ann@example.com","password":"secret123","password_confirmation":"secret123"}`,
			setup: func(svc *mocks.AuthService) {
				svc.On("Register", mock.Anything, model.RegisterParams{Name: "Ann", Email: "ann@example.com", Password: "secret123"}).
					Return(model.AuthResult{User: user, Token: "tok"}, nil)
			},
			wantStatus: http.StatusCreated,
			check: func(t *testing.T, body map[string]any) {
				assert.Equal(t, "success", body["status"])
				assert.Equal(t, "User registered successfully", body["message"])
				assert.Equal(t, "tok", body["token"])
				u := body["user"].(map[string]any)
				assert.Equal(t, user.ID.String(), u["id"])
				assert.NotContains(t, u, "password_hash")
				assert.NotContains(t, u, "PasswordHash")
			},
		},
		{
			name:       "validation failure",
			body:       `{"name":"","email":"not-an-email","password":"short","password_confirmation":"short"}`,
			wantStatus: http.StatusUnprocessableEntity,
			check: func(t *testing.T, body map[string]any) {
				errs := body["errors"].(map[string]any)
				assert.Equal(t, []any{"The name field is required."}, errs["name"])
				assert.Equal(t, []any{"The email field must be a valid email address."}, errs["email"])
				assert.Equal(t, []any{"The password field must be at least 8 characters."}, errs["password"])
			},
		},
		{
			name:       "confirmation mismatch",
			body:       `{"name":"Ann","email":"ann@example.com","password":"secret123","password_confirmation":"secret124"}`,
			wantStatus: http.StatusUnprocessableEntity,
			check: func(t *testing.T, body map[string]any) {
				errs := body["errors"].(map[string]any)
				assert.Equal(t, []any{"The password field confirmation does not match."}, errs["password"])
			},
		},
		{
			name: "email taken",
			body: `{"name":"Ann","email":"ann@example.com","password":"secret123","password_confirmation":"secret123"}`,
			setup: func(svc *mocks.AuthService) {
				svc.On("Register", mock.Anything, mock.Anything).
					Return(model.AuthResult{}, model.NewValidationError("email", "The email has already been taken."))
			},
			wantStatus: http.StatusUnprocessableEntity,
			check: func(t *testing.T, body map[string]any) {
				errs := body["errors"].(map[string]any)
				assert.Equal(t, []any{"The email has already been taken."}, errs["email"])
			},
		},
		{
			name:       "password longer than bcrypt accepts",
			body:       fmt.Sprintf(`{"name":"Ann","email":"ann@example.com","password":%q,"password_confirmation":%q}`, strings.Repeat("a", 73), strings.Repeat("a", 73)),
			wantStatus: http.StatusUnprocessableEntity,
			check: func(t *testing.T, body map[string]any) {
				errs := body["errors"].(map[string]any)
				assert.Equal(t, []any{"The password field must not be greater than 72 bytes."}, errs["password"])
			},
		},
		{
			name: "password at bcrypt limit",
			body: fmt.Sprintf(`{"name":"Ann","email":"ann@example.com","password":%q,"password_confirmation":%q}`, strings.Repeat("a", 72), strings.Repeat("a", 72)),
			setup: func(svc *mocks.AuthService) {
				svc.On("Register", mock.Anything, model.RegisterParams{Name: "Ann", Email: "ann@example.com", Password: strings.Repeat("a", 72)}).
					Return(model.AuthResult{User: user, Token: "tok"}, nil)
			},
			wantStatus: http.StatusCreated,
			check: func(t *testing.T, body map[string]any) {
				assert.Equal(t, "tok", body["token"])
			},
		},
		{
			name:       "empty body",
			body:       ``,
			wantStatus: http.StatusUnprocessableEntity,
			check: func(t *testing.T, body map[string]any) {
				errs := body["errors"].(map[string]any)
				assert.Equal(t, []any{"The name field is required."}, errs["name"])
				assert.Equal(t, []any{"The email field is required."}, errs["email"])
				assert.Equal(t, []any{"The password field is required."}, errs["password"])
			},
		},
		{
			name:       "unparsable body",
			body:       `{"name":`,
			wantStatus: http.StatusBadRequest,
			check: func(t *testing.T, body map[string]any) {
				assert.Equal(t, "error", body["status"])
				assert.Equal(t, "Invalid request body", body["message"])
			},
		},
		{
			name: "unexpected failure",
			body: `{"name":"Ann","email":"ann@example.com","password":"secret123","password_confirmation":"secret123"}`,
			setup: func(svc *mocks.AuthService) {
				svc.On("Register", mock.Anything, mock.Anything).Return(model.AuthResult{}, errors.New("db down"))
			},
			wantStatus: http.StatusInternalServerError,
			check: func(t *testing.T, body map[string]any) {
				assert.Equal(t, "Internal server error", body["message"])
				assert.NotContains(t, body, "error")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := mocks.NewAuthService(t)
			if tt.setup != nil {
				tt.setup(svc)
			}
			h := NewAuth(svc, httpcontext.NewManager(), testutil.MakeNoopLogger())

			rec := httptest.NewRecorder()
			h.Register(rec, newJSONRequest(http.MethodPost, "/api/auth/register", tt.body))

			assert.Equal(t, tt.wantStatus, rec.Code)
			tt.check(t, decodeBody(t, rec))
		})
	}
}

func TestAuth_Login(t *testing.T) {
	user := testutil.MakeUser("Ann", "ann@example.com")
	creds := model.Credentials{Email: "ann@example.com", Password: "secret123"}

	t.Run("success", func(t *testing.T) {
		svc := mocks.NewAuthService(t)
		guard := mocks.NewGuard(t)
		cm := httpcontext.NewManager()
		svc.On("Login", mock.Anything, guard, creds).Return(model.AuthResult{User: user, Token: "tok"}, nil)

		h := NewAuth(svc, cm, testutil.MakeNoopLogger())

		req := newJSONRequest(http.MethodPost, "/api/auth/login", `{"email":"ann@example.com","password":"secret123"}`)
		req = req.WithContext(cm.SetGuardToContext(req.Context(), guard))
		rec := httptest.NewRecorder()
		h.Login(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		body := decodeBody(t, rec)
		assert.Equal(t, "Login successful", body["message"])
		assert.Equal(t, "tok", body["token"])
	})

	t.Run("invalid credentials", func(t *testing.T) {
		svc := mocks.NewAuthService(t)
		guard := mocks.NewGuard(t)
		cm := httpcontext.NewManager()
		svc.On("Login", mock.Anything, guard, mock.Anything).Return(model.AuthResult{}, model.ErrInvalidCredentials)

		h := NewAuth(svc, cm, testutil.MakeNoopLogger())

		req := newJSONRequest(http.MethodPost, "/api/auth/login", `{"email":"ann@example.com","password":"wrong"}`)
		req = req.WithContext(cm.SetGuardToContext(req.Context(), guard))
		rec := httptest.NewRecorder()
		h.Login(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		body := decodeBody(t, rec)
		assert.Equal(t, "error", body["status"])
		assert.Equal(t, "Invalid credentials", body["message"])
		assert.NotContains(t, body, "token")
	})

	t.Run("validation failure", func(t *testing.T) {
		h := NewAuth(mocks.NewAuthService(t), httpcontext.NewManager(), testutil.MakeNoopLogger())

		rec := httptest.NewRecorder()
		h.Login(rec, newJSONRequest(http.MethodPost, "/api/auth/login", `{"email":"","password":""}`))

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		errs := decodeBody(t, rec)["errors"].(map[string]any)
		assert.Contains(t, errs, "email")
		assert.Contains(t, errs, "password")
	})

	t.Run("missing guard", func(t *testing.T) {
		h := NewAuth(mocks.NewAuthService(t), httpcontext.NewManager(), testutil.MakeNoopLogger())

		rec := httptest.NewRecorder()
		h.Login(rec, newJSONRequest(http.MethodPost, "/api/auth/login", `{"email":"ann@example.com","password":"secret123"}`))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}

func TestAuth_Google(t *testing.T) {
	user := testutil.MakeUser("Bob", "bob@example.com")
	user.GoogleID = testutil.StringPtr("g-1")

	t.Run("success", func(t *testing.T) {
		svc := mocks.NewAuthService(t)
		svc.On("FederatedLogin", mock.Anything, "ptoken").Return(model.AuthResult{User: user, Token: "tok"}, nil)

		h := NewAuth(svc, httpcontext.NewManager(), testutil.MakeNoopLogger())

		rec := httptest.NewRecorder()
		h.Google(rec, newJSONRequest(http.MethodPost, "/api/auth/google", `{"id_token":"ptoken"}`))

		assert.Equal(t, http.StatusOK, rec.Code)
		body := decodeBody(t, rec)
		assert.Equal(t, "Google login successful", body["message"])
		assert.Equal(t, "g-1", body["user"].(map[string]any)["google_id"])
	})

	t.Run("missing token", func(t *testing.T) {
		h := NewAuth(mocks.NewAuthService(t), httpcontext.NewManager(), testutil.MakeNoopLogger())

		rec := httptest.NewRecorder()
		h.Google(rec, newJSONRequest(http.MethodPost, "/api/auth/google", `{}`))

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		errs := decodeBody(t, rec)["errors"].(map[string]any)
		assert.Equal(t, []any{"The id token field is required."}, errs["id_token"])
	})

	t.Run("exchange failure surfaces detail", func(t *testing.T) {
		svc := mocks.NewAuthService(t)
		svc.On("FederatedLogin", mock.Anything, "bad").
			Return(model.AuthResult{}, fmt.Errorf("%w: %w", model.ErrFederatedLogin, errors.New("google api returned status 401")))

		h := NewAuth(svc, httpcontext.NewManager(), testutil.MakeNoopLogger())

		rec := httptest.NewRecorder()
		h.Google(rec, newJSONRequest(http.MethodPost, "/api/auth/google", `{"id_token":"bad"}`))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		body := decodeBody(t, rec)
		assert.Equal(t, "Google token verification failed", body["message"])
		assert.Equal(t, "google api returned status 401", body["error"])
	})
}

func TestAuth_User(t *testing.T) {
	user := testutil.MakeUser("Ann", "ann@example.com")
	cm := httpcontext.NewManager()
	h := NewAuth(mocks.NewAuthService(t), cm, testutil.MakeNoopLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/auth/user", nil)
	req = req.WithContext(cm.SetUserToContext(req.Context(), user))
	rec := httptest.NewRecorder()
	h.User(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "success", body["status"])
	assert.Equal(t, "ann@example.com", body["user"].(map[string]any)["email"])
	assert.NotContains(t, body, "token")

	rec = httptest.NewRecorder()
	h.User(rec, httptest.NewRequest(http.MethodGet, "/api/auth/user", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuth_Refresh(t *testing.T) {
	user := testutil.MakeUser("Ann", "ann@example.com")
	cm := httpcontext.NewManager()
	svc := mocks.NewAuthService(t)
	svc.On("Refresh", mock.Anything, user).Return("fresh", nil)

	h := NewAuth(svc, cm, testutil.MakeNoopLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/auth/refresh", nil)
	req = req.WithContext(cm.SetUserToContext(req.Context(), user))
	rec := httptest.NewRecorder()
	h.Refresh(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "Token refreshed successfully", body["message"])
	assert.Equal(t, "fresh", body["token"])
	assert.NotContains(t, body, "user")
}

func TestAuth_Logout(t *testing.T) {
	user := testutil.MakeUser("Ann", "ann@example.com")

	tests := []struct {
		name   string
		ctx    func(cm *httpcontext.Manager) context.Context
		wantID uuid.UUID
	}{
		{
			name:   "authenticated",
			ctx:    func(cm *httpcontext.Manager) context.Context { return cm.SetUserToContext(context.Background(), user) },
			wantID: user.ID,
		},
		{
			name:   "anonymous",
			ctx:    func(cm *httpcontext.Manager) context.Context { return context.Background() },
			wantID: uuid.Nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cm := httpcontext.NewManager()
			svc := mocks.NewAuthService(t)
			svc.On("Logout", mock.Anything, tt.wantID).Return(nil)

			h := NewAuth(svc, cm, testutil.MakeNoopLogger())

			req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil).WithContext(tt.ctx(cm))
			rec := httptest.NewRecorder()
			h.Logout(rec, req)

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.JSONEq(t, `{"status":"success","message":"Successfully logged out"}`, rec.Body.String())
		})
	}
}
