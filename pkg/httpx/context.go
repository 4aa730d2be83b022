package httpx

import (
	"context"

	"github.com/lanternhq/lantern/pkg/jwtx"
)

type ctxKey string

const (
	ctxKeySubject ctxKey = "subject"
	ctxKeyRoles   ctxKey = "roles"
	ctxKeyClaims  ctxKey = "claims"
	ctxKeyToken   ctxKey = "token" // raw compact JWT, needed by logout
)

// SubjectFromContext returns the authenticated account email, or "" when
// the request never passed AuthnMiddleware.
func SubjectFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(ctxKeySubject).(string); ok {
		return v
	}
	return ""
}

// RolesFromContext returns the authenticated account's role tags.
func RolesFromContext(ctx context.Context) []string {
	if v, ok := ctx.Value(ctxKeyRoles).([]string); ok {
		return v
	}
	return nil
}

// ClaimsFromContext returns the verified access-token claims.
func ClaimsFromContext(ctx context.Context) (jwtx.Claims, bool) {
	v, ok := ctx.Value(ctxKeyClaims).(jwtx.Claims)
	return v, ok
}

// TokenFromContext returns the raw bearer token the request authenticated
// with.
func TokenFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(ctxKeyToken).(string); ok {
		return v
	}
	return ""
}

func contextWithAuth(ctx context.Context, raw string, c jwtx.Claims) context.Context {
	ctx = context.WithValue(ctx, ctxKeySubject, c.Subject)
	ctx = context.WithValue(ctx, ctxKeyRoles, c.Roles)
	ctx = context.WithValue(ctx, ctxKeyClaims, c)
	ctx = context.WithValue(ctx, ctxKeyToken, raw)
	return ctx
}
