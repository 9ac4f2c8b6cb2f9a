package middleware

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/angelmondragon/capstudio-backend/api/responses"
	pkgerrors "github.com/angelmondragon/capstudio-backend/pkg/errors"
	"github.com/angelmondragon/capstudio-backend/pkg/logger"
)

const (
	tenantHeader     = "X-Tenant-ID"
	tenantQueryParam = "tenantId"
)

// Tenant resolves the storefront for the request from the X-Tenant-ID header or
// the tenantId query parameter, falling back to defaultID.
func Tenant(defaultID uuid.UUID, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := strings.TrimSpace(r.Header.Get(tenantHeader))
			if raw == "" {
				raw = strings.TrimSpace(r.URL.Query().Get(tenantQueryParam))
			}

			tenantID := defaultID
			if raw != "" {
				parsed, err := uuid.Parse(raw)
				if err != nil {
					responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid tenant id").
						WithDetails(map[string]any{"tenantId": raw}))
					return
				}
				tenantID = parsed
			}

			ctx := WithTenantID(r.Context(), tenantID)
			if logg != nil {
				ctx = logg.WithTenantID(ctx, tenantID.String())
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
