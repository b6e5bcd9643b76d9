package httputil

import (
	"context"
	"net/http"
	"strings"

	"github.com/bistroboss/bistro-api/internal/domain"
	"github.com/bistroboss/bistro-api/internal/pkg/ctxlog"
	"golang.org/x/time/rate"
)

type contextKey string

// ClaimsKey stores the verified token claims on the request context.
const ClaimsKey contextKey = "claims"

// TokenVerifier checks a bearer token's signature and expiration and returns
// the identity claim it embeds.
type TokenVerifier interface {
	VerifyToken(ctx context.Context, token string) (*domain.TokenClaims, error)
}

// RoleChecker resolves whether the user stored under an email holds the
// admin role. The lookup goes to the store on every call.
type RoleChecker interface {
	IsAdmin(ctx context.Context, email string) (bool, error)
}

// AuthMiddleware gates a route on a verified bearer token. A missing
// Authorization header is rejected before any token parsing; an unverifiable
// token (bad signature, expired, malformed) is rejected separately.
func AuthMiddleware(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				Message(w, http.StatusUnauthorized, "Forbidden access")
				return
			}

			var token string
			if parts := strings.SplitN(authHeader, " ", 2); len(parts) == 2 {
				token = parts[1]
			}

			claims, err := verifier.VerifyToken(r.Context(), token)
			if err != nil {
				Message(w, http.StatusForbidden, "Invalid token")
				return
			}

			ctx := context.WithValue(r.Context(), ClaimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin gates a route on the admin role. Must run after
// AuthMiddleware so the email in the claim is trustworthy.
func RequireAdmin(roles RoleChecker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := GetClaims(r.Context())
			if claims == nil {
				Message(w, http.StatusUnauthorized, "Forbidden access")
				return
			}

			isAdmin, err := roles.IsAdmin(r.Context(), claims.Email)
			if err != nil {
				ctxlog.FromContext(r.Context()).Error("admin role lookup failed", "error", err)
				Message(w, http.StatusInternalServerError, "internal error")
				return
			}
			if !isAdmin {
				Message(w, http.StatusForbidden, "Forbidden access")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RateLimitMiddleware rejects requests above the limiter's rate with 429.
// A nil limiter disables limiting.
func RateLimitMiddleware(limiter *rate.Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if limiter == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				Message(w, http.StatusTooManyRequests, "too many requests")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// GetClaims extracts the verified token claims from context. Returns nil on
// unauthenticated requests.
func GetClaims(ctx context.Context) *domain.TokenClaims {
	if claims, ok := ctx.Value(ClaimsKey).(*domain.TokenClaims); ok {
		return claims
	}
	return nil
}
