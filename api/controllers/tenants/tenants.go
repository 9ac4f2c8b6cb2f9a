package tenants

import (
	"net/http"
	"strings"

	"github.com/angelmondragon/capstudio-backend/api/middleware"
	"github.com/angelmondragon/capstudio-backend/api/responses"
	"github.com/angelmondragon/capstudio-backend/api/validators"
	internaltenants "github.com/angelmondragon/capstudio-backend/internal/tenants"
	pkgerrors "github.com/angelmondragon/capstudio-backend/pkg/errors"
	"github.com/angelmondragon/capstudio-backend/pkg/logger"
	"github.com/angelmondragon/capstudio-backend/pkg/types"
)

// Current returns the resolved tenant with its effective settings. A slug query
// parameter selects the tenant by slug instead.
func Current(svc internaltenants.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "tenants service unavailable"))
			return
		}

		var (
			tenant *internaltenants.TenantDTO
			err    error
		)
		if slug := strings.TrimSpace(r.URL.Query().Get("slug")); slug != "" {
			tenant, err = svc.GetBySlug(r.Context(), slug)
		} else {
			tenant, err = svc.Get(r.Context(), middleware.TenantIDFromContext(r.Context()))
		}
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, tenant)
	}
}

// List returns every tenant ordered by name.
func List(svc internaltenants.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "tenants service unavailable"))
			return
		}

		list, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

// UpdateSettings merges a partial settings document over the tenant's stored settings.
func UpdateSettings(svc internaltenants.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "tenants service unavailable"))
			return
		}

		var body types.TenantSettingsOverrides
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		tenant, err := svc.UpdateSettings(r.Context(), middleware.TenantIDFromContext(r.Context()), body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, tenant)
	}
}
