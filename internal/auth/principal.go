package auth

import (
	"context"

	"dataconsult/internal/model"
)

// Principal is the identity resolved from a session for the current request.
type Principal struct {
	UserID uint
	Role   model.Role
	Email  string
	Name   string
	Image  string
}

type principalKey struct{}

// WithPrincipal returns a child context carrying p.
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// PrincipalFrom returns the principal stored in ctx, if any.
func PrincipalFrom(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(Principal)
	if !ok || p.UserID == 0 {
		return Principal{}, false
	}
	return p, true
}
