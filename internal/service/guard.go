package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/dtroode/countries-api/internal/logger"
	"github.com/dtroode/countries-api/internal/model"
	"github.com/dtroode/countries-api/internal/token"
)

// GuardFactory builds one Guard per inbound request.
type GuardFactory struct {
	userStore model.UserStore
	hasher    model.PasswordHasher
	codec     model.TokenCodec
	logger    *logger.Logger
}

// NewGuardFactory creates a GuardFactory sharing the given collaborators across requests.
func NewGuardFactory(userStore model.UserStore, hasher model.PasswordHasher, codec model.TokenCodec, logger *logger.Logger) *GuardFactory {
	return &GuardFactory{userStore: userStore, hasher: hasher, codec: codec, logger: logger}
}

// New creates a Guard bound to a request carrying the given Authorization header value.
func (f *GuardFactory) New(authorization string) *Guard {
	return &Guard{
		userStore:     f.userStore,
		hasher:        f.hasher,
		codec:         f.codec,
		logger:        f.logger,
		authorization: authorization,
	}
}

var _ model.Guard = (*Guard)(nil)

// Guard resolves the user of a single request by credentials or by bearer token.
// The resolved user is memoized for the lifetime of the Guard; it is not safe
// for concurrent use and must not outlive its request.
type Guard struct {
	userStore     model.UserStore
	hasher        model.PasswordHasher
	codec         model.TokenCodec
	logger        *logger.Logger
	authorization string

	user     model.User
	resolved bool
}

// Attempt authenticates creds and remembers the user on success.
func (g *Guard) Attempt(ctx context.Context, creds model.Credentials) (bool, error) {
	user, ok, err := g.fromCredentials(ctx, creds)
	if err != nil || !ok {
		return false, err
	}

	g.setUser(user)
	return true, nil
}

// Validate checks creds without changing the guard state.
func (g *Guard) Validate(ctx context.Context, creds model.Credentials) (bool, error) {
	_, ok, err := g.fromCredentials(ctx, creds)
	return ok, err
}

// User returns the current user, resolving it from the request bearer token on first call.
func (g *Guard) User(ctx context.Context) (model.User, bool) {
	if g.resolved {
		return g.user, true
	}

	user, err := g.fromToken(ctx)
	if err != nil {
		g.logger.Debug("Auth guard: no user resolved from token", "error", err.Error())
		return model.User{}, false
	}

	g.setUser(user)
	return user, true
}

// GenerateToken mints a token for user with the default lifetime.
func (g *Guard) GenerateToken(user model.User) (string, error) {
	return g.codec.MintDefault(user)
}

func (g *Guard) setUser(user model.User) {
	g.user = user
	g.resolved = true
}

func (g *Guard) fromCredentials(ctx context.Context, creds model.Credentials) (model.User, bool, error) {
	if creds.Email == "" || creds.Password == "" {
		return model.User{}, false, nil
	}

	user, err := g.userStore.GetByEmail(ctx, creds.Email)
	if errors.Is(err, model.ErrNotFound) {
		return model.User{}, false, nil
	}
	if err != nil {
		return model.User{}, false, fmt.Errorf("failed to get user by email: %w", err)
	}

	if !g.hasher.Compare(user.PasswordHash, creds.Password) {
		return model.User{}, false, nil
	}

	return user, true, nil
}

var errNoBearerToken = errors.New("no bearer token in request")

func (g *Guard) fromToken(ctx context.Context) (model.User, error) {
	tokenString, ok := token.FromHeader(g.authorization)
	if !ok {
		return model.User{}, errNoBearerToken
	}

	claims, err := g.codec.Verify(tokenString)
	if err != nil {
		return model.User{}, err
	}

	user, err := g.userStore.GetByID(ctx, claims.Subject)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to get user by id: %w", err)
	}

	return user, nil
}
