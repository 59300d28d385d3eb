package handler

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/dtroode/countries-api/internal/api/http/response"
	"github.com/dtroode/countries-api/internal/logger"
	"github.com/dtroode/countries-api/internal/model"
)

// AuthService defines registration, login and token operations.
type AuthService interface {
	Register(ctx context.Context, params model.RegisterParams) (model.AuthResult, error)
	Login(ctx context.Context, guard model.Guard, creds model.Credentials) (model.AuthResult, error)
	FederatedLogin(ctx context.Context, providerToken string) (model.AuthResult, error)
	Refresh(ctx context.Context, user model.User) (string, error)
	Logout(ctx context.Context, userID uuid.UUID) error
}

// Auth handles HTTP endpoints for authentication.
type Auth struct {
	authService    AuthService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewAuth creates a new Auth handler.
func NewAuth(authService AuthService, contextManager model.ContextManager, logger *logger.Logger) *Auth {
	return &Auth{
		authService:    authService,
		contextManager: contextManager,
		logger:         logger,
	}
}

// Register creates an account and responds with it and a token.
func (h *Auth) Register(w http.ResponseWriter, r *http.Request) {
	var payload registerPayload
	if err := decodeAndValidate(r, &payload); err != nil {
		handleError(w, err)
		return
	}

	h.logger.Debug("Auth handler: processing registration request",
		"email", payload.Email)

	res, err := h.authService.Register(r.Context(), model.RegisterParams{
		Name:     payload.Name,
		Email:    payload.Email,
		Password: payload.Password,
	})
	if err != nil {
		h.logger.Info("Auth handler: registration failed",
			"email", payload.Email,
			"error", err.Error())
		handleError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.Envelope{
		Status:  response.StatusSuccess,
		Message: "User registered successfully",
		User:    res.User,
		Token:   res.Token,
	})
}

// Login checks credentials through the request guard and responds with a token.
func (h *Auth) Login(w http.ResponseWriter, r *http.Request) {
	var payload loginPayload
	if err := decodeAndValidate(r, &payload); err != nil {
		handleError(w, err)
		return
	}

	guard, ok := h.contextManager.GetGuardFromContext(r.Context())
	if !ok {
		h.logger.Error("Auth handler: no guard in request context")
		handleError(w, errNoGuard)
		return
	}

	res, err := h.authService.Login(r.Context(), guard, model.Credentials{
		Email:    payload.Email,
		Password: payload.Password,
	})
	if err != nil {
		handleError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.Envelope{
		Status:  response.StatusSuccess,
		Message: "Login successful",
		User:    res.User,
		Token:   res.Token,
	})
}

// Google exchanges a Google token for a local account and responds with a token.
func (h *Auth) Google(w http.ResponseWriter, r *http.Request) {
	var payload googlePayload
	if err := decodeAndValidate(r, &payload); err != nil {
		handleError(w, err)
		return
	}

	res, err := h.authService.FederatedLogin(r.Context(), payload.IDToken)
	if err != nil {
		handleError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.Envelope{
		Status:  response.StatusSuccess,
		Message: "Google login successful",
		User:    res.User,
		Token:   res.Token,
	})
}

// User responds with the authenticated user.
func (h *Auth) User(w http.ResponseWriter, r *http.Request) {
	user, ok := h.contextManager.GetUserFromContext(r.Context())
	if !ok {
		response.Error(w, http.StatusUnauthorized, msgUnauthenticated, "")
		return
	}

	response.JSON(w, http.StatusOK, response.Envelope{
		Status: response.StatusSuccess,
		User:   user,
	})
}

// Refresh responds with a new token for the authenticated user.
func (h *Auth) Refresh(w http.ResponseWriter, r *http.Request) {
	user, ok := h.contextManager.GetUserFromContext(r.Context())
	if !ok {
		response.Error(w, http.StatusUnauthorized, msgUnauthenticated, "")
		return
	}

	tok, err := h.authService.Refresh(r.Context(), user)
	if err != nil {
		handleError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.Envelope{
		Status:  response.StatusSuccess,
		Message: "Token refreshed successfully",
		Token:   tok,
	})
}

// Logout acknowledges a logout. It serves both the authenticated and the anonymous route.
func (h *Auth) Logout(w http.ResponseWriter, r *http.Request) {
	userID := uuid.Nil
	if user, ok := h.contextManager.GetUserFromContext(r.Context()); ok {
		userID = user.ID
	}

	if err := h.authService.Logout(r.Context(), userID); err != nil {
		handleError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.Envelope{
		Status:  response.StatusSuccess,
		Message: "Successfully logged out",
	})
}
