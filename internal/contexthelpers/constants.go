package contexthelpers

type contextKey string

const UserIDContextKey = contextKey("userID")
