package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"staffdesk/internal/domain/auth"
)

const testSecret = "test-secret"

func tokenFor(t *testing.T, roleName string) string {
	t.Helper()
	token, err := auth.GenerateToken(testSecret, auth.Claims{UserID: "user-1", RoleID: "role-1", RoleName: roleName}, time.Hour)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	return token
}

func protectedRequest(t *testing.T, guard func(http.Handler) http.Handler, token string) *httptest.ResponseRecorder {
	t.Helper()
	handler := Auth(testSecret)(guard(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestRequireRole(t *testing.T) {
	guard := RequireRole(auth.RoleAdmin, auth.RoleHR)

	if rec := protectedRequest(t, guard, ""); rec.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous request: expected 401, got %d", rec.Code)
	}
	if rec := protectedRequest(t, guard, tokenFor(t, auth.RoleEmployee)); rec.Code != http.StatusForbidden {
		t.Fatalf("employee on staff route: expected 403, got %d", rec.Code)
	}
	if rec := protectedRequest(t, guard, tokenFor(t, auth.RoleHR)); rec.Code != http.StatusOK {
		t.Fatalf("hr on staff route: expected 200, got %d", rec.Code)
	}
	if rec := protectedRequest(t, guard, tokenFor(t, auth.RoleAdmin)); rec.Code != http.StatusOK {
		t.Fatalf("admin on staff route: expected 200, got %d", rec.Code)
	}
}

func TestRequireAuth(t *testing.T) {
	if rec := protectedRequest(t, func(next http.Handler) http.Handler { return RequireAuth(next) }, ""); rec.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous request: expected 401, got %d", rec.Code)
	}
	if rec := protectedRequest(t, func(next http.Handler) http.Handler { return RequireAuth(next) }, tokenFor(t, auth.RoleEmployee)); rec.Code != http.StatusOK {
		t.Fatalf("authenticated request: expected 200, got %d", rec.Code)
	}
}

func TestAuthIgnoresGarbageToken(t *testing.T) {
	rec := protectedRequest(t, func(next http.Handler) http.Handler { return RequireAuth(next) }, "not-a-jwt")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("garbage token: expected 401, got %d", rec.Code)
	}
}
