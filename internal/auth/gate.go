package auth

import (
	"context"

	apperrors "dataconsult/internal/errors"
	"dataconsult/internal/model"
)

// RequireAuth returns the request principal or an Unauthorized error.
func RequireAuth(ctx context.Context) (Principal, error) {
	p, ok := PrincipalFrom(ctx)
	if !ok {
		return Principal{}, apperrors.ErrUnauthorized
	}
	return p, nil
}

// RequireAdmin requires an authenticated ADMIN.
func RequireAdmin(ctx context.Context) (Principal, error) {
	p, err := RequireAuth(ctx)
	if err != nil {
		return Principal{}, err
	}
	if p.Role != model.RoleAdmin {
		return Principal{}, apperrors.ErrForbidden
	}
	return p, nil
}

// RequireHROrAdmin requires an authenticated ADMIN or HR user.
func RequireHROrAdmin(ctx context.Context) (Principal, error) {
	p, err := RequireAuth(ctx)
	if err != nil {
		return Principal{}, err
	}
	if p.Role != model.RoleAdmin && p.Role != model.RoleHR {
		return Principal{}, apperrors.ErrForbidden
	}
	return p, nil
}
