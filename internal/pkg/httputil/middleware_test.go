package httputil

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bistroboss/bistro-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

// mockVerifier implements TokenVerifier for testing.
type mockVerifier struct {
	claims *domain.TokenClaims
	err    error
}

func (m *mockVerifier) VerifyToken(_ context.Context, _ string) (*domain.TokenClaims, error) {
	return m.claims, m.err
}

// mockRoleChecker implements RoleChecker for testing.
type mockRoleChecker struct {
	isAdmin bool
	err     error
}

func (m *mockRoleChecker) IsAdmin(_ context.Context, _ string) (bool, error) {
	return m.isAdmin, m.err
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	mw := AuthMiddleware(&mockVerifier{})

	req := httptest.NewRequest("GET", "/", nil)
	rec := httptest.NewRecorder()
	mw(okHandler()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"message":"Forbidden access"}`, rec.Body.String())
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	mw := AuthMiddleware(&mockVerifier{err: errors.New("bad signature")})

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer bad-token")
	rec := httptest.NewRecorder()
	mw(okHandler()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.JSONEq(t, `{"message":"Invalid token"}`, rec.Body.String())
}

func TestAuthMiddleware_StoresClaims(t *testing.T) {
	verifier := &mockVerifier{claims: &domain.TokenClaims{Email: "user@example.com"}}
	mw := AuthMiddleware(verifier)

	var got *domain.TokenClaims
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = GetClaims(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	rec := httptest.NewRecorder()
	mw(next).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, got)
	assert.Equal(t, "user@example.com", got.Email)
}

func TestRequireAdmin_NotAdmin(t *testing.T) {
	mw := RequireAdmin(&mockRoleChecker{isAdmin: false})

	req := httptest.NewRequest("GET", "/", nil)
	ctx := context.WithValue(req.Context(), ClaimsKey, &domain.TokenClaims{Email: "user@example.com"})
	rec := httptest.NewRecorder()
	mw(okHandler()).ServeHTTP(rec, req.WithContext(ctx))

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.JSONEq(t, `{"message":"Forbidden access"}`, rec.Body.String())
}

func TestRequireAdmin_NoClaims(t *testing.T) {
	mw := RequireAdmin(&mockRoleChecker{isAdmin: true})

	req := httptest.NewRequest("GET", "/", nil)
	rec := httptest.NewRecorder()
	mw(okHandler()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAdmin_LookupError(t *testing.T) {
	mw := RequireAdmin(&mockRoleChecker{err: errors.New("store down")})

	req := httptest.NewRequest("GET", "/", nil)
	ctx := context.WithValue(req.Context(), ClaimsKey, &domain.TokenClaims{Email: "user@example.com"})
	rec := httptest.NewRecorder()
	mw(okHandler()).ServeHTTP(rec, req.WithContext(ctx))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestRequireAdmin_Admin(t *testing.T) {
	mw := RequireAdmin(&mockRoleChecker{isAdmin: true})

	req := httptest.NewRequest("GET", "/", nil)
	ctx := context.WithValue(req.Context(), ClaimsKey, &domain.TokenClaims{Email: "admin@example.com"})
	rec := httptest.NewRecorder()
	mw(okHandler()).ServeHTTP(rec, req.WithContext(ctx))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRateLimitMiddleware_NilLimiterPassesThrough(t *testing.T) {
	mw := RateLimitMiddleware(nil)

	req := httptest.NewRequest("POST", "/", nil)
	rec := httptest.NewRecorder()
	mw(okHandler()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRateLimitMiddleware_RejectsAboveBurst(t *testing.T) {
	// 1 req/s with burst 1: the second immediate request must be rejected.
	mw := RateLimitMiddleware(rate.NewLimiter(1, 1))
	handler := mw(okHandler())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("POST", "/", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("POST", "/", nil))
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}
