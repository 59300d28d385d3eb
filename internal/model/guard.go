package model

import "context"

// Guard resolves the current user of a single request, either from
// explicit credentials or from the bearer token the request carries.
type Guard interface {
	Attempt(ctx context.Context, creds Credentials) (bool, error)
	User(ctx context.Context) (User, bool)
	Validate(ctx context.Context, creds Credentials) (bool, error)
	GenerateToken(user User) (string, error)
}

// FederatedIdentity is a verified identity returned by an external provider.
type FederatedIdentity struct {
	ID    string
	Name  string
	Email string
}

// IdentityProvider exchanges a provider token for a verified identity.
type IdentityProvider interface {
	Name() string
	Exchange(ctx context.Context, token string) (FederatedIdentity, error)
}
