package auth

import (
	"context"

	"github.com/stellarhost/portal/internal/model"
)

type contextKey struct{}

// WithUser stores the authenticated user in the request context.
func WithUser(ctx context.Context, user *model.User) context.Context {
	return context.WithValue(ctx, contextKey{}, user)
}

// UserFromContext retrieves the authenticated user set by the auth
// middleware.
func UserFromContext(ctx context.Context) (*model.User, bool) {
	user, ok := ctx.Value(contextKey{}).(*model.User)
	return user, ok
}
