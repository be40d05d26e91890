package contexthelpers

import (
	"context"
)

// CurrentUserID returns the device-scoped user ID established by the session
// middleware. It returns the empty string when no user is bound to the
// context.
func CurrentUserID(ctx context.Context) string {
	userID, ok := ctx.Value(UserIDContextKey).(string)
	if !ok {
		return ""
	}
	return userID
}
