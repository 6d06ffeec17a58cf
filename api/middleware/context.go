package middleware

import (
	"context"

	pkgerrors "github.com/angelmondragon/scancart-backend/pkg/errors"
)

type contextKey string

const (
	ctxUserID contextKey = "user_id"
)

// UserIDFromContext returns the user id carried by a verified bearer token.
func UserIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxUserID).(string); ok {
		return v
	}
	return ""
}

// WithUserID injects the user identifier into the context.
func WithUserID(ctx context.Context, userID string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxUserID, userID)
}

// AuthorizeUser rejects requests acting on another user's cart. Requests
// without a token subject pass.
func AuthorizeUser(ctx context.Context, userID string) error {
	subject := UserIDFromContext(ctx)
	if subject == "" || subject == userID {
		return nil
	}
	return pkgerrors.New(pkgerrors.CodeForbidden, "Token does not match the requested user.")
}
