package httpx

import "context"

type ctxKey string

const (
	CtxKeyUsername ctxKey = "username"
	CtxKeyScopes   ctxKey = "scopes"
	CtxKeyScheme   ctxKey = "auth_scheme"
)

// ContextWithAuth records who the gate let through and how.
func ContextWithAuth(ctx context.Context, username, scheme string, scopes []string) context.Context {
	ctx = context.WithValue(ctx, CtxKeyUsername, username)
	ctx = context.WithValue(ctx, CtxKeyScheme, scheme)
	ctx = context.WithValue(ctx, CtxKeyScopes, scopes)
	return ctx
}

func UsernameFromContext(ctx context.Context) string {
	v, _ := ctx.Value(CtxKeyUsername).(string)
	return v
}

func SchemeFromContext(ctx context.Context) string {
	v, _ := ctx.Value(CtxKeyScheme).(string)
	return v
}

func ScopesFromContext(ctx context.Context) []string {
	if v, ok := ctx.Value(CtxKeyScopes).([]string); ok {
		return v
	}
	return nil
}
