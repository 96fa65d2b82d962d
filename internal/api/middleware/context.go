package middleware

import (
	"context"
	"errors"
)

type contextKey string

const userIDKey contextKey = "userID"

var errUnauthorized = errors.New("unauthorized")

// ContextWithUserID returns a new context with the given user ID set.
// This is intended for use in tests and middleware.
func ContextWithUserID(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

func GetUserIDFromContext(ctx context.Context) (int64, error) {
	v := ctx.Value(userIDKey)
	if v == nil {
		return 0, errUnauthorized
	}

	id, ok := v.(int64)
	if !ok {
		return 0, errUnauthorized
	}
	return id, nil
}

// IsAdminFromContext reports whether the authenticated user carries the
// admin claim. Missing claim reads as false.
func IsAdminFromContext(ctx context.Context) bool {
	admin, _ := ctx.Value(isAdminKey).(bool)
	return admin
}

const isAdminKey contextKey = "isAdmin"

func contextWithIsAdmin(ctx context.Context, admin bool) context.Context {
	return context.WithValue(ctx, isAdminKey, admin)
}
