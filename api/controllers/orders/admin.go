package orders

import (
	"net/http"
	"strings"
	"time"

	"github.com/angelmondragon/capstudio-backend/api/middleware"
	"github.com/angelmondragon/capstudio-backend/api/responses"
	"github.com/angelmondragon/capstudio-backend/api/validators"
	internalorders "github.com/angelmondragon/capstudio-backend/internal/orders"
	"github.com/angelmondragon/capstudio-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/capstudio-backend/pkg/errors"
	"github.com/angelmondragon/capstudio-backend/pkg/logger"
	"github.com/angelmondragon/capstudio-backend/pkg/pagination"
	"github.com/angelmondragon/capstudio-backend/pkg/types"
)

type adminUpdateRequest struct {
	Status     *string                `json:"status"`
	ChangedBy  string                 `json:"changedBy"`
	StatusMemo *string                `json:"statusMemo"`
	AdminMemo  types.Nullable[string] `json:"adminMemo"`
}

type registerShipmentRequest struct {
	Carrier        string `json:"carrier"`
	TrackingNumber string `json:"trackingNumber"`
}

// AdminList pages through the tenant's orders, newest first.
func AdminList(svc internalorders.Service, loc *time.Location, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		params := pagination.Params{
			Limit:  limit,
			Cursor: strings.TrimSpace(r.URL.Query().Get("cursor")),
		}

		filters, err := buildAdminFilters(r, loc)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		list, err := svc.ListForAdmin(r.Context(), middleware.TenantIDFromContext(r.Context()), params, filters)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

// AdminStats counts the tenant's orders per status.
func AdminStats(svc internalorders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		stats, err := svc.Stats(r.Context(), middleware.TenantIDFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, stats)
	}
}

// AdminUpdate applies a status transition and/or an admin memo change.
func AdminUpdate(svc internalorders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		orderNumber, err := orderNumberParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body adminUpdateRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := internalorders.AdminUpdateInput{
			ChangedBy:  body.ChangedBy,
			StatusMemo: body.StatusMemo,
			AdminMemo:  body.AdminMemo,
		}
		if body.Status != nil {
			status := enums.OrderStatus(strings.TrimSpace(*body.Status))
			input.Status = &status
		}

		order, err := svc.AdminUpdate(r.Context(), orderNumber, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, order)
	}
}

// RegisterShipment records carrier tracking and moves the order to shipped.
func RegisterShipment(svc internalorders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		orderNumber, err := orderNumberParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body registerShipmentRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		shipping, err := svc.RegisterShipment(r.Context(), internalorders.ShipmentInput{
			OrderNumber:    orderNumber,
			Carrier:        enums.Carrier(strings.ToLower(strings.TrimSpace(body.Carrier))),
			TrackingNumber: body.TrackingNumber,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, shipping)
	}
}

func buildAdminFilters(r *http.Request, loc *time.Location) (internalorders.AdminOrderFilters, error) {
	query := r.URL.Query()
	filters := internalorders.AdminOrderFilters{
		CustomerPhone: strings.TrimSpace(query.Get("phone")),
		OrderNumber:   strings.TrimSpace(query.Get("orderNumber")),
	}

	if raw := strings.TrimSpace(query.Get("status")); raw != "" && raw != "all" {
		status, err := enums.ParseOrderStatus(raw)
		if err != nil {
			return filters, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status filter").
				WithDetails(map[string]any{"field": "status"})
		}
		filters.Status = &status
	}

	from, err := validators.ParseQueryDate(r, "dateFrom", loc)
	if err != nil {
		return filters, err
	}
	filters.DateFrom = from

	to, err := validators.ParseQueryDate(r, "dateTo", loc)
	if err != nil {
		return filters, err
	}
	if to != nil && len(strings.TrimSpace(query.Get("dateTo"))) == len(time.DateOnly) {
		end := to.AddDate(0, 0, 1).Add(-time.Nanosecond)
		to = &end
	}
	filters.DateTo = to

	return filters, nil
}
