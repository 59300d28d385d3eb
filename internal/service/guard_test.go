package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/dtroode/countries-api/internal/mocks"
	"github.com/dtroode/countries-api/internal/model"
	"github.com/dtroode/countries-api/internal/password"
	"github.com/dtroode/countries-api/internal/testutil"
)

func TestGuard_Attempt(t *testing.T) {
	hasher := password.NewBcrypt(bcrypt.MinCost)
	hash, err := hasher.Hash("secret123")
	require.NoError(t, err)

	stored := testutil.MakeUser("Ann", "ann@example.com")
	stored.PasswordHash = hash
	storeErr := errors.New("db down")

	tests := []struct {
		name      string
		creds     model.Credentials
		setup     func(us *mocks.UserStore)
		wantOK    bool
		wantErr   error
		wantCache bool
	}{
		{
			name:  "valid credentials",
			creds: model.Credentials{Email: "ann@example.com", Password: "secret123"},
			setup: func(us *mocks.UserStore) {
				us.On("GetByEmail", mock.Anything, "ann@example.com").Return(stored, nil)
			},
			wantOK:    true,
			wantCache: true,
		},
		{
			name:  "wrong password",
			creds: model.Credentials{Email: "ann@example.com", Password: "nope"},
			setup: func(us *mocks.UserStore) {
				us.On("GetByEmail", mock.Anything, "ann@example.com").Return(stored, nil)
			},
		},
		{
			name:  "unknown email",
			creds: model.Credentials{Email: "who@example.com", Password: "secret123"},
			setup: func(us *mocks.UserStore) {
				us.On("GetByEmail", mock.Anything, "who@example.com").Return(model.User{}, model.ErrNotFound)
			},
		},
		{
			name:  "empty credentials",
			creds: model.Credentials{},
			setup: func(us *mocks.UserStore) {},
		},
		{
			name:  "store error",
			creds: model.Credentials{Email: "ann@example.com", Password: "secret123"},
			setup: func(us *mocks.UserStore) {
				us.On("GetByEmail", mock.Anything, "ann@example.com").Return(model.User{}, storeErr)
			},
			wantErr: storeErr,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userStore := mocks.NewUserStore(t)
			tt.setup(userStore)

			g := NewGuardFactory(userStore, hasher, mocks.NewTokenCodec(t), testutil.MakeNoopLogger()).New("")

			ok, err := g.Attempt(context.Background(), tt.creds)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.wantOK, ok)

			user, cached := g.User(context.Background())
			assert.Equal(t, tt.wantCache, cached)
			if tt.wantCache {
				assert.Equal(t, stored.ID, user.ID)
			}
		})
	}
}

func TestGuard_Validate_DoesNotCache(t *testing.T) {
	hasher := password.NewBcrypt(bcrypt.MinCost)
	hash, err := hasher.Hash("secret123")
	require.NoError(t, err)

	stored := testutil.MakeUser("Ann", "ann@example.com")
	stored.PasswordHash = hash

	userStore := mocks.NewUserStore(t)
	userStore.On("GetByEmail", mock.Anything, "ann@example.com").Return(stored, nil)

	g := NewGuardFactory(userStore, hasher, mocks.NewTokenCodec(t), testutil.MakeNoopLogger()).New("")

	ok, err := g.Validate(context.Background(), model.Credentials{Email: "ann@example.com", Password: "secret123"})
	require.NoError(t, err)
	assert.True(t, ok)

	_, cached := g.User(context.Background())
	assert.False(t, cached)
}

func TestGuard_User_FromToken(t *testing.T) {
	codec := newTestCodec()
	stored := testutil.MakeUser("Ann", "ann@example.com")
	tok, err := codec.MintDefault(stored)
	require.NoError(t, err)

	userStore := mocks.NewUserStore(t)
	userStore.On("GetByID", mock.Anything, stored.ID).Return(stored, nil).Once()

	g := NewGuardFactory(userStore, mocks.NewPasswordHasher(t), codec, testutil.MakeNoopLogger()).New("Bearer " + tok)

	user, ok := g.User(context.Background())
	require.True(t, ok)
	assert.Equal(t, stored.ID, user.ID)
	assert.Equal(t, stored.Name, user.Name)
	assert.Equal(t, stored.Email, user.Email)

	again, ok := g.User(context.Background())
	require.True(t, ok)
	assert.Equal(t, user, again)
	userStore.AssertNumberOfCalls(t, "GetByID", 1)
}

func TestGuard_User_Unresolved(t *testing.T) {
	codec := newTestCodec()
	stored := testutil.MakeUser("Ann", "ann@example.com")
	tok, err := codec.MintDefault(stored)
	require.NoError(t, err)

	tests := []struct {
		name          string
		authorization string
		setup         func(us *mocks.UserStore)
	}{
		{
			name:          "no header",
			authorization: "",
			setup:         func(us *mocks.UserStore) {},
		},
		{
			name:          "not a bearer scheme",
			authorization: "Basic dXNlcjpwYXNz",
			setup:         func(us *mocks.UserStore) {},
		},
		{
			name:          "garbage token",
			authorization: "Bearer not-a-token",
			setup:         func(us *mocks.UserStore) {},
		},
		{
			name:          "user deleted",
			authorization: "Bearer " + tok,
			setup: func(us *mocks.UserStore) {
				us.On("GetByID", mock.Anything, stored.ID).Return(model.User{}, model.ErrNotFound)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userStore := mocks.NewUserStore(t)
			tt.setup(userStore)

			g := NewGuardFactory(userStore, mocks.NewPasswordHasher(t), codec, testutil.MakeNoopLogger()).New(tt.authorization)

			_, ok := g.User(context.Background())
			assert.False(t, ok)
		})
	}
}

func TestGuard_GenerateToken(t *testing.T) {
	codec := mocks.NewTokenCodec(t)
	user := testutil.MakeUser("Ann", "ann@example.com")
	codec.On("MintDefault", user).Return("tok", nil)

	g := NewGuardFactory(mocks.NewUserStore(t), mocks.NewPasswordHasher(t), codec, testutil.MakeNoopLogger()).New("")

	tok, err := g.GenerateToken(user)
	require.NoError(t, err)
	assert.Equal(t, "tok", tok)
}
