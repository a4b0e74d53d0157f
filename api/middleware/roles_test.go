package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/adirahmanto/craftline-backend/pkg/enums"
)

func requestWithRole(role enums.Role) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	ctx := WithPrincipal(context.Background(), uuid.New(), role, "sid")
	return req.WithContext(ctx)
}

func TestRequireRole(t *testing.T) {
	handler := RequireRole(nil, enums.RoleAdmin)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, requestWithRole(enums.RoleAdmin))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for admin got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, requestWithRole(enums.RoleSales))
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for sales got %d", rec.Code)
	}
}

func TestRequireRoleRejectsMissingPrincipal(t *testing.T) {
	handler := RequireRole(nil, enums.RoleAdmin)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 got %d", rec.Code)
	}
}

func TestRequireStaff(t *testing.T) {
	handler := RequireStaff(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for _, role := range enums.StaffRoles() {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, requestWithRole(role))
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200 for %s got %d", role, rec.Code)
		}
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, requestWithRole(enums.RoleRegular))
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for regular got %d", rec.Code)
	}
}
