package middleware

import (
	"errors"
	"net/http"
	"time"

	"github.com/dtroode/countries-api/internal/api/http/response"
	"github.com/dtroode/countries-api/internal/logger"
	"github.com/dtroode/countries-api/internal/model"
	"github.com/dtroode/countries-api/internal/token"
)

const (
	msgTokenNotProvided = "Unauthenticated - Token not provided"
	msgInvalidFormat    = "Invalid token format"
	msgTokenExpired     = "Token has expired"
	msgSignatureInvalid = "Token signature is invalid"
	msgTokenInvalid     = "Token is invalid"
	msgUserNotFound     = "User not found"
)

// Authenticate rejects requests without a valid bearer token and attaches
// the token owner to the request context.
type Authenticate struct {
	codec          model.TokenCodec
	userStore      model.UserStore
	contextManager model.ContextManager
	logger         *logger.Logger
	now            func() time.Time
}

// NewAuthenticate creates a new Authenticate middleware instance.
func NewAuthenticate(codec model.TokenCodec, userStore model.UserStore, contextManager model.ContextManager, logger *logger.Logger) *Authenticate {
	return &Authenticate{
		codec:          codec,
		userStore:      userStore,
		contextManager: contextManager,
		logger:         logger,
		now:            time.Now,
	}
}

// Handle wraps next with bearer token authentication.
func (m *Authenticate) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenString, ok := token.FromHeader(r.Header.Get("Authorization"))
		if !ok {
			response.Error(w, http.StatusUnauthorized, msgTokenNotProvided, "")
			return
		}

		claims, err := m.codec.Verify(tokenString)
		if err != nil {
			m.logger.Debug("Authenticate middleware: token rejected",
				"path", r.URL.Path,
				"error", err.Error())
			m.rejectToken(w, err)
			return
		}

		user, err := m.userStore.GetByID(r.Context(), claims.Subject)
		if errors.Is(err, model.ErrNotFound) {
			response.Error(w, http.StatusUnauthorized, msgUserNotFound, "")
			return
		}
		if err != nil {
			m.logger.Error("Authenticate middleware: failed to load token owner",
				"user_id", claims.Subject,
				"error", err.Error())
			response.Error(w, http.StatusUnauthorized, msgTokenInvalid, err.Error())
			return
		}

		if claims.Expired(m.now()) {
			response.Error(w, http.StatusUnauthorized, msgTokenExpired, "")
			return
		}

		ctx := m.contextManager.SetUserToContext(r.Context(), user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (m *Authenticate) rejectToken(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, model.ErrTokenMalformed):
		response.Error(w, http.StatusUnauthorized, msgInvalidFormat, "")
	case errors.Is(err, model.ErrTokenExpired):
		response.Error(w, http.StatusUnauthorized, msgTokenExpired, "")
	case errors.Is(err, model.ErrTokenSignatureInvalid):
		response.Error(w, http.StatusUnauthorized, msgSignatureInvalid, "")
	default:
		response.Error(w, http.StatusUnauthorized, msgTokenInvalid, err.Error())
	}
}
