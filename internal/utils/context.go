package utils

import "context"

type contextKey string

const (
	UserEmailKey    contextKey = "email"
	UserRoleKey     contextKey = "role"
	UsernameKey     contextKey = "username"
	authenticatedTk contextKey = "authenticated"
)

// SetUserContext sets identity info into context (called by middleware).
func SetUserContext(ctx context.Context, username, email, role string) context.Context {
	ctx = context.WithValue(ctx, UsernameKey, username)
	ctx = context.WithValue(ctx, UserEmailKey, email)
	ctx = context.WithValue(ctx, UserRoleKey, role)
	ctx = context.WithValue(ctx, authenticatedTk, true)
	return ctx
}

func GetUserEmailFromContext(ctx context.Context) string {
	email, _ := ctx.Value(UserEmailKey).(string)
	return email
}

func GetUserRoleFromContext(ctx context.Context) string {
	role, _ := ctx.Value(UserRoleKey).(string)
	return role
}

func GetUsernameFromContext(ctx context.Context) string {
	name, _ := ctx.Value(UsernameKey).(string)
	return name
}

func IsAuthenticated(ctx context.Context) bool {
	ok, _ := ctx.Value(authenticatedTk).(bool)
	return ok
}
