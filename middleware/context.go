package middleware

import (
	"context"

	"github.com/RuponGomeZ/Medical-Camp-Manage-System-Server/auth"
)

// Context key type to avoid collisions
type contextKey string

// ClaimsKey is the context key for verified session claims
const ClaimsKey contextKey = "claims"

// WithClaims adds verified session claims to the context
func WithClaims(ctx context.Context, claims *auth.Claims) context.Context {
	return context.WithValue(ctx, ClaimsKey, claims)
}

// GetClaimsFromContext retrieves session claims from context
func GetClaimsFromContext(ctx context.Context) *auth.Claims {
	if val := ctx.Value(ClaimsKey); val != nil {
		if claims, ok := val.(*auth.Claims); ok {
			return claims
		}
	}
	return nil
}

// IdentityEmail returns the authenticated email, or "" when the request
// never passed the authentication gate.
func IdentityEmail(ctx context.Context) string {
	if claims := GetClaimsFromContext(ctx); claims != nil {
		return claims.Email
	}
	return ""
}
