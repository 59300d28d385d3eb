package model

import "context"

// ContextManager stores per-request authentication state in a context.
type ContextManager interface {
	SetUserToContext(ctx context.Context, user User) context.Context
	GetUserFromContext(ctx context.Context) (User, bool)
	SetGuardToContext(ctx context.Context, guard Guard) context.Context
	GetGuardFromContext(ctx context.Context) (Guard, bool)
}
