package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
)

func TestTenantResolution(t *testing.T) {
	defaultID := uuid.New()
	headerID := uuid.New()
	queryID := uuid.New()

	tests := []struct {
		name   string
		header string
		query  string
		want   uuid.UUID
	}{
		{"default", "", "", defaultID},
		{"header", headerID.String(), "", headerID},
		{"query", "", queryID.String(), queryID},
		{"header wins over query", headerID.String(), queryID.String(), headerID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got uuid.UUID
			handler := Tenant(defaultID, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got = TenantIDFromContext(r.Context())
			}))

			target := "/api/products"
			if tt.query != "" {
				target += "?tenantId=" + tt.query
			}
			req := httptest.NewRequest(http.MethodGet, target, nil)
			if tt.header != "" {
				req.Header.Set("X-Tenant-ID", tt.header)
			}
			handler.ServeHTTP(httptest.NewRecorder(), req)

			if got != tt.want {
				t.Fatalf("expected tenant %s got %s", tt.want, got)
			}
		})
	}
}

func TestTenantRejectsMalformedID(t *testing.T) {
	called := false
	handler := Tenant(uuid.New(), nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	req.Header.Set("X-Tenant-ID", "not-a-uuid")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
	if called {
		t.Fatal("handler should not run with malformed tenant")
	}
}
