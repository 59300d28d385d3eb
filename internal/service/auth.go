package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/countries-api/internal/logger"
	"github.com/dtroode/countries-api/internal/model"
	"github.com/dtroode/countries-api/internal/password"
)

const emailTakenMessage = "The email has already been taken."

// Auth implements registration, login and token operations.
type Auth struct {
	userStore   model.UserStore
	hasher      model.PasswordHasher
	codec       model.TokenCodec
	provider    model.IdentityProvider
	logger      *logger.Logger
	placeholder func() (string, error)
	now         func() time.Time
}

func NewAuth(
	userStore model.UserStore,
	hasher model.PasswordHasher,
	codec model.TokenCodec,
	provider model.IdentityProvider,
	logger *logger.Logger,
) *Auth {
	return &Auth{
		userStore:   userStore,
		hasher:      hasher,
		codec:       codec,
		provider:    provider,
		logger:      logger,
		placeholder: password.Random,
		now:         time.Now,
	}
}

// Register creates a password-based account and returns it with a fresh token.
func (a *Auth) Register(ctx context.Context, params model.RegisterParams) (model.AuthResult, error) {
	a.logger.Debug("Auth service: starting user registration",
		"email", params.Email)

	_, err := a.userStore.GetByEmail(ctx, params.Email)
	if err == nil {
		a.logger.Info("Auth service: user already exists",
			"email", params.Email)
		return model.AuthResult{}, model.NewValidationError("email", emailTakenMessage)
	}
	if !errors.Is(err, model.ErrNotFound) {
		a.logger.Error("Auth service: failed to get user by email",
			"email", params.Email,
			"error", err.Error())
		return model.AuthResult{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	hash, err := a.hasher.Hash(params.Password)
	if err != nil {
		return model.AuthResult{}, fmt.Errorf("failed to secure password: %w", err)
	}

	now := a.now()
	user, err := a.userStore.Create(ctx, model.User{
		ID:           uuid.New(),
		Name:         params.Name,
		Email:        params.Email,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if errors.Is(err, model.ErrAlreadyExists) {
		return model.AuthResult{}, model.NewValidationError("email", emailTakenMessage)
	}
	if err != nil {
		a.logger.Error("Auth service: failed to create user",
			"email", params.Email,
			"error", err.Error())
		return model.AuthResult{}, fmt.Errorf("failed to create user: %w", err)
	}

	tok, err := a.codec.MintDefault(user)
	if err != nil {
		return model.AuthResult{}, fmt.Errorf("failed to issue token: %w", err)
	}

	a.logger.Info("Auth service: user registration completed successfully",
		"user_id", user.ID)

	return model.AuthResult{User: user, Token: tok}, nil
}

// Login authenticates creds through the request guard and returns a fresh token.
func (a *Auth) Login(ctx context.Context, guard model.Guard, creds model.Credentials) (model.AuthResult, error) {
	a.logger.Debug("Auth service: starting user login",
		"email", creds.Email)

	ok, err := guard.Attempt(ctx, creds)
	if err != nil {
		a.logger.Error("Auth service: login attempt failed",
			"email", creds.Email,
			"error", err.Error())
		return model.AuthResult{}, fmt.Errorf("failed to attempt login: %w", err)
	}
	if !ok {
		a.logger.Info("Auth service: invalid credentials",
			"email", creds.Email)
		return model.AuthResult{}, model.ErrInvalidCredentials
	}

	user, ok := guard.User(ctx)
	if !ok {
		return model.AuthResult{}, model.ErrInvalidCredentials
	}

	tok, err := guard.GenerateToken(user)
	if err != nil {
		return model.AuthResult{}, fmt.Errorf("failed to issue token: %w", err)
	}

	a.logger.Info("Auth service: login completed successfully",
		"user_id", user.ID)

	return model.AuthResult{User: user, Token: tok}, nil
}

// FederatedLogin exchanges a provider token for a local account, creating or
// linking it by email, and returns a fresh token. Every failure is reported
// as model.ErrFederatedLogin wrapping the cause.
func (a *Auth) FederatedLogin(ctx context.Context, providerToken string) (model.AuthResult, error) {
	a.logger.Debug("Auth service: starting federated login",
		"provider", a.provider.Name())

	user, err := a.resolveFederatedUser(ctx, providerToken)
	if err != nil {
		a.logger.Info("Auth service: federated login failed",
			"provider", a.provider.Name(),
			"error", err.Error())
		return model.AuthResult{}, fmt.Errorf("%w: %w", model.ErrFederatedLogin, err)
	}

	tok, err := a.codec.MintDefault(user)
	if err != nil {
		return model.AuthResult{}, fmt.Errorf("failed to issue token: %w", err)
	}

	a.logger.Info("Auth service: federated login completed successfully",
		"provider", a.provider.Name(),
		"user_id", user.ID)

	return model.AuthResult{User: user, Token: tok}, nil
}

func (a *Auth) resolveFederatedUser(ctx context.Context, providerToken string) (model.User, error) {
	identity, err := a.provider.Exchange(ctx, providerToken)
	if err != nil {
		return model.User{}, err
	}
	if identity.Email == "" || identity.ID == "" {
		return model.User{}, errors.New("provider returned an incomplete identity")
	}

	user, err := a.userStore.GetByEmail(ctx, identity.Email)
	if errors.Is(err, model.ErrNotFound) {
		return a.createFederatedUser(ctx, identity)
	}
	if err != nil {
		return model.User{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	if user.HasGoogleID() {
		return user, nil
	}

	providerID := identity.ID
	user.GoogleID = &providerID
	user.UpdatedAt = a.now()
	if err := a.userStore.Save(ctx, user); err != nil {
		return model.User{}, fmt.Errorf("failed to link provider account: %w", err)
	}

	a.logger.Info("Auth service: linked provider account",
		"provider", a.provider.Name(),
		"user_id", user.ID)

	return user, nil
}

func (a *Auth) createFederatedUser(ctx context.Context, identity model.FederatedIdentity) (model.User, error) {
	plain, err := a.placeholder()
	if err != nil {
		return model.User{}, fmt.Errorf("failed to generate placeholder password: %w", err)
	}
	hash, err := a.hasher.Hash(plain)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to hash placeholder password: %w", err)
	}

	providerID := identity.ID
	now := a.now()
	user, err := a.userStore.Create(ctx, model.User{
		ID:           uuid.New(),
		Name:         identity.Name,
		Email:        identity.Email,
		GoogleID:     &providerID,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return model.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// Refresh mints a new token for an already authenticated user. Earlier
// tokens stay valid until they expire.
func (a *Auth) Refresh(ctx context.Context, user model.User) (string, error) {
	tok, err := a.codec.MintDefault(user)
	if err != nil {
		a.logger.Error("Auth service: token refresh failed",
			"user_id", user.ID,
			"error", err.Error())
		return "", fmt.Errorf("failed to issue token: %w", err)
	}

	a.logger.Info("Auth service: token refreshed",
		"user_id", user.ID)

	return tok, nil
}

// Logout acknowledges a logout. Tokens are stateless, so discarding them is up to the client.
func (a *Auth) Logout(ctx context.Context, userID uuid.UUID) error {
	if userID == uuid.Nil {
		a.logger.Info("Auth service: anonymous logout")
		return nil
	}

	a.logger.Info("Auth service: user logged out",
		"user_id", userID)
	return nil
}
