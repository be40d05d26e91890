package contexthelpers

import (
	"context"
	"net/http"
)

// WithUserID binds the user ID to the request context.
func WithUserID(r *http.Request, userID string) *http.Request {
	return r.WithContext(BindUserID(r.Context(), userID))
}

// BindUserID binds the user ID to a plain context. Background jobs use this
// to act on behalf of a user outside the request path.
func BindUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, UserIDContextKey, userID)
}
