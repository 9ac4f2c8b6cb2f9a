package orders

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/angelmondragon/capstudio-backend/api/middleware"
	"github.com/angelmondragon/capstudio-backend/api/responses"
	"github.com/angelmondragon/capstudio-backend/api/validators"
	internalorders "github.com/angelmondragon/capstudio-backend/internal/orders"
	"github.com/angelmondragon/capstudio-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/capstudio-backend/pkg/errors"
	"github.com/angelmondragon/capstudio-backend/pkg/logger"
	"github.com/angelmondragon/capstudio-backend/pkg/types"
)

type createOrderRequest struct {
	TenantID      *uuid.UUID          `json:"tenantId"`
	UserID        *uuid.UUID          `json:"userId"`
	CustomerName  string              `json:"customerName" validate:"notblank"`
	CustomerPhone string              `json:"customerPhone" validate:"notblank"`
	CustomerEmail *string             `json:"customerEmail" validate:"omitempty,email"`
	ShippingInfo  types.ShippingInfo  `json:"shippingInfo"`
	Items         []createItemRequest `json:"items" validate:"required,min=1,dive"`
}

type createItemRequest struct {
	ProductID      uuid.UUID            `json:"productId"`
	ProductName    string               `json:"productName"`
	Color          string               `json:"color"`
	ColorLabel     string               `json:"colorLabel"`
	Size           string               `json:"size"`
	Quantity       int                  `json:"quantity" validate:"min=1"`
	DesignSnapshot types.DesignSnapshot `json:"designSnapshot"`
}

type createOrderResponse struct {
	ID          uuid.UUID         `json:"id"`
	OrderNumber string            `json:"orderNumber"`
	Status      enums.OrderStatus `json:"status"`
	TotalAmount int               `json:"totalAmount"`
	CreatedAt   time.Time         `json:"createdAt"`
}

type updateDesignRequest struct {
	Items []designItemRequest `json:"items" validate:"required,min=1,dive"`
}

type designItemRequest struct {
	ID             uuid.UUID            `json:"id"`
	DesignSnapshot types.DesignSnapshot `json:"designSnapshot"`
}

// Create places an order for the resolved tenant. Unit prices are always taken
// from the catalogue.
func Create(svc internalorders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		var body createOrderRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		tenantID := middleware.TenantIDFromContext(r.Context())
		if body.TenantID != nil && *body.TenantID != uuid.Nil {
			tenantID = *body.TenantID
		}

		input := internalorders.CreateOrderInput{
			TenantID:      tenantID,
			UserID:        body.UserID,
			CustomerName:  validators.SanitizeString(body.CustomerName, 100),
			CustomerPhone: validators.SanitizeString(body.CustomerPhone, 30),
			CustomerEmail: body.CustomerEmail,
			ShippingInfo:  body.ShippingInfo,
			Items:         make([]internalorders.CreateItemInput, 0, len(body.Items)),
		}
		for _, item := range body.Items {
			input.Items = append(input.Items, internalorders.CreateItemInput{
				ProductID:    item.ProductID,
				ProductName:  item.ProductName,
				Color:        item.Color,
				ColorLabel:   item.ColorLabel,
				Size:         item.Size,
				Quantity:     item.Quantity,
				DesignLayers: item.DesignSnapshot,
			})
		}

		order, err := svc.Create(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, createOrderResponse{
			ID:          order.ID,
			OrderNumber: order.OrderNumber,
			Status:      order.Status,
			TotalAmount: order.TotalAmount,
			CreatedAt:   order.CreatedAt,
		})
	}
}

// List serves the customer lookups: by phone for guests, by user id for members.
func List(svc internalorders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		tenantID := middleware.TenantIDFromContext(r.Context())

		userID, err := validators.ParseQueryUUID(r, "userId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if userID != nil {
			detail, err := validators.ParseQueryBool(r, "detail", false)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			list, err := svc.ListByUser(r.Context(), tenantID, *userID, detail)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			responses.WriteSuccess(w, list)
			return
		}

		phone := strings.TrimSpace(r.URL.Query().Get("phone"))
		if phone == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "phone or userId is required"))
			return
		}
		list, err := svc.ListByPhone(r.Context(), tenantID, phone)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

// Detail returns an order with its items and status history.
func Detail(svc internalorders.Service, logg *logger.Logger) http.HandlerFunc {
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

		order, err := svc.GetByNumber(r.Context(), orderNumber)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, order.Public())
	}
}

// UpdateDesign replaces item designs while the order is still pending.
func UpdateDesign(svc internalorders.Service, logg *logger.Logger) http.HandlerFunc {
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

		var body updateDesignRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		updates := make([]internalorders.DesignUpdate, 0, len(body.Items))
		for _, item := range body.Items {
			updates = append(updates, internalorders.DesignUpdate{
				ItemID:         item.ID,
				DesignSnapshot: item.DesignSnapshot,
			})
		}

		if err := svc.UpdateDesign(r.Context(), orderNumber, updates); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"orderNumber": orderNumber})
	}
}

// Shipping returns the delivery destination and carrier tracking for an order.
func Shipping(svc internalorders.Service, logg *logger.Logger) http.HandlerFunc {
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

		shipping, err := svc.GetShipping(r.Context(), orderNumber)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, shipping)
	}
}

func orderNumberParam(r *http.Request) (string, error) {
	orderNumber := strings.TrimSpace(chi.URLParam(r, "orderNumber"))
	if orderNumber == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "order number is required")
	}
	return orderNumber, nil
}
