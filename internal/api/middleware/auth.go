package middleware

import (
	"context"
	"net/http"
	"strings"

	"cyberguard-lab/internal/domain/services"
)

// ContextKey is a type for context keys
type ContextKey string

const (
	// ContextKeyClaims is the context key for verified JWT claims
	ContextKeyClaims ContextKey = "claims"
)

// JWTAuth returns middleware that validates bearer tokens and stores
// the verified claims in the request context
func JWTAuth(auth *services.AuthService) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Skip auth for OPTIONS requests (CORS preflight)
			if r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}

			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				http.Error(w, `{"error":"missing authorization header"}`, http.StatusUnauthorized)
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				http.Error(w, `{"error":"invalid authorization header format"}`, http.StatusUnauthorized)
				return
			}

			claims, err := auth.VerifyToken(parts[1])
			if err != nil {
				http.Error(w, `{"error":"invalid or expired token"}`, http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyClaims, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// StaffOnly returns middleware that requires an analyst or admin role.
// It must run after JWTAuth.
func StaffOnly() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := GetClaims(r.Context())
			if claims == nil {
				http.Error(w, `{"error":"unauthorized"}`, http.StatusUnauthorized)
				return
			}
			if !claims.Role.IsStaff() {
				http.Error(w, `{"error":"staff access required"}`, http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// GetClaims returns the verified claims from context, or nil
func GetClaims(ctx context.Context) *services.Claims {
	if claims, ok := ctx.Value(ContextKeyClaims).(*services.Claims); ok {
		return claims
	}
	return nil
}

// ActorEmail returns the authenticated user's email, or empty
func ActorEmail(ctx context.Context) string {
	if claims := GetClaims(ctx); claims != nil {
		return claims.Email
	}
	return ""
}
