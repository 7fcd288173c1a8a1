package auth

import (
	"context"
)

// Identity is the caller resolved from a verified bearer token.
type Identity struct {
	UserID int64
	Email  string
}

type identityKey struct{}

func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(Identity)
	if !ok || id.UserID <= 0 {
		return Identity{}, false
	}
	return id, true
}

// GetUserID returns 0 when the request carries no valid identity.
func GetUserID(ctx context.Context) int64 {
	id, _ := IdentityFromContext(ctx)
	return id.UserID
}
