package products

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/angelmondragon/capstudio-backend/api/middleware"
	"github.com/angelmondragon/capstudio-backend/api/responses"
	"github.com/angelmondragon/capstudio-backend/api/validators"
	"github.com/angelmondragon/capstudio-backend/internal/pricing"
	internalproducts "github.com/angelmondragon/capstudio-backend/internal/products"
	"github.com/angelmondragon/capstudio-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/capstudio-backend/pkg/errors"
	"github.com/angelmondragon/capstudio-backend/pkg/logger"
	"github.com/angelmondragon/capstudio-backend/pkg/types"
)

const maxQuoteQuantity = 100000

type createProductRequest struct {
	Name              string                 `json:"name" validate:"required,max=200"`
	Slug              string                 `json:"slug" validate:"required,max=200"`
	Description       *string                `json:"description"`
	Category          enums.ProductCategory  `json:"category" validate:"required"`
	BasePrice         int                    `json:"basePrice" validate:"min=0"`
	PriceTiers        []pricing.Tier         `json:"priceTiers" validate:"dive"`
	Images            []types.ProductImage   `json:"images" validate:"dive"`
	Variants          []types.ProductVariant `json:"variants" validate:"dive"`
	DetailImageURL    *string                `json:"detailImageUrl"`
	AdminMessage      *string                `json:"adminMessage"`
	IsActive          *bool                  `json:"isActive"`
	SortOrder         int                    `json:"sortOrder"`
	CustomizableAreas []areaRequest          `json:"customizableAreas" validate:"dive"`
}

type updateProductRequest struct {
	Name           *string                        `json:"name"`
	Slug           *string                        `json:"slug"`
	Description    types.Nullable[string]         `json:"description"`
	Category       *enums.ProductCategory         `json:"category"`
	BasePrice      *int                           `json:"basePrice"`
	PriceTiers     types.Nullable[[]pricing.Tier] `json:"priceTiers"`
	Images         *[]types.ProductImage          `json:"images"`
	Variants       *[]types.ProductVariant        `json:"variants"`
	DetailImageURL types.Nullable[string]         `json:"detailImageUrl"`
	AdminMessage   types.Nullable[string]         `json:"adminMessage"`
	IsActive       *bool                          `json:"isActive"`
	SortOrder      *int                           `json:"sortOrder"`
}

type areaRequest struct {
	ColorID     *string           `json:"colorId"`
	ViewName    enums.ProductView `json:"viewName" validate:"required"`
	DisplayName string            `json:"displayName" validate:"required"`
	ZoneX       float64           `json:"zoneX"`
	ZoneY       float64           `json:"zoneY"`
	ZoneWidth   float64           `json:"zoneWidth"`
	ZoneHeight  float64           `json:"zoneHeight"`
	ImageURL    *string           `json:"imageUrl"`
	IsEnabled   *bool             `json:"isEnabled"`
	SortOrder   *int              `json:"sortOrder"`
}

func (a areaRequest) toInput() internalproducts.AreaInput {
	return internalproducts.AreaInput{
		ColorID:     a.ColorID,
		ViewName:    a.ViewName,
		DisplayName: a.DisplayName,
		ZoneX:       a.ZoneX,
		ZoneY:       a.ZoneY,
		ZoneWidth:   a.ZoneWidth,
		ZoneHeight:  a.ZoneHeight,
		ImageURL:    a.ImageURL,
		IsEnabled:   a.IsEnabled,
		SortOrder:   a.SortOrder,
	}
}

// List returns the tenant's catalogue ordered by sort order.
func List(svc internalproducts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "products service unavailable"))
			return
		}

		includeInactive, err := validators.ParseQueryBool(r, "includeInactive", false)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		list, err := svc.List(r.Context(), middleware.TenantIDFromContext(r.Context()), includeInactive)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

// Get returns one product, optionally with its customizable areas.
func Get(svc internalproducts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "products service unavailable"))
			return
		}

		productID, err := validators.ParseUUIDParam(chi.URLParam(r, "productId"), "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		withAreas, err := validators.ParseQueryBool(r, "withAreas", false)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.Get(r.Context(), productID, withAreas)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}

func GetBySlug(svc internalproducts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "products service unavailable"))
			return
		}

		slug := strings.TrimSpace(chi.URLParam(r, "slug"))
		if slug == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "slug is required"))
			return
		}

		product, err := svc.GetBySlug(r.Context(), middleware.TenantIDFromContext(r.Context()), slug)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}

// Areas lists the printable zones of a product, optionally for one colour.
func Areas(svc internalproducts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "products service unavailable"))
			return
		}

		productID, err := validators.ParseUUIDParam(chi.URLParam(r, "productId"), "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var colorID *string
		if raw := strings.TrimSpace(r.URL.Query().Get("colorId")); raw != "" {
			colorID = &raw
		}

		areas, err := svc.ListAreas(r.Context(), productID, colorID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, areas)
	}
}

// Quote prices a quantity against the product's tier table.
func Quote(svc internalproducts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "products service unavailable"))
			return
		}

		productID, err := validators.ParseUUIDParam(chi.URLParam(r, "productId"), "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		quantity, err := validators.ParseQueryInt(r, "quantity", 1, 1, maxQuoteQuantity)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		quote, err := svc.Quote(r.Context(), productID, quantity)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, quote)
	}
}

func Create(svc internalproducts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "products service unavailable"))
			return
		}

		var body createProductRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := internalproducts.CreateProductInput{
			Name:           validators.SanitizeString(body.Name, 200),
			Slug:           strings.ToLower(strings.TrimSpace(body.Slug)),
			Description:    body.Description,
			Category:       body.Category,
			BasePrice:      body.BasePrice,
			PriceTiers:     body.PriceTiers,
			Images:         body.Images,
			Variants:       body.Variants,
			DetailImageURL: body.DetailImageURL,
			AdminMessage:   body.AdminMessage,
			IsActive:       body.IsActive,
			SortOrder:      body.SortOrder,
		}
		for _, area := range body.CustomizableAreas {
			input.CustomizableAreas = append(input.CustomizableAreas, area.toInput())
		}

		product, err := svc.Create(r.Context(), middleware.TenantIDFromContext(r.Context()), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, product)
	}
}

func Update(svc internalproducts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "products service unavailable"))
			return
		}

		productID, err := validators.ParseUUIDParam(chi.URLParam(r, "productId"), "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body updateProductRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.Update(r.Context(), middleware.TenantIDFromContext(r.Context()), productID, internalproducts.UpdateProductInput{
			Name:           body.Name,
			Slug:           body.Slug,
			Description:    body.Description,
			Category:       body.Category,
			BasePrice:      body.BasePrice,
			PriceTiers:     body.PriceTiers,
			Images:         body.Images,
			Variants:       body.Variants,
			DetailImageURL: body.DetailImageURL,
			AdminMessage:   body.AdminMessage,
			IsActive:       body.IsActive,
			SortOrder:      body.SortOrder,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}

func Delete(svc internalproducts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "products service unavailable"))
			return
		}

		productID, err := validators.ParseUUIDParam(chi.URLParam(r, "productId"), "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), middleware.TenantIDFromContext(r.Context()), productID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]uuid.UUID{"id": productID})
	}
}

// UpsertArea creates or replaces the area for a (view, colour) pair.
func UpsertArea(svc internalproducts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "products service unavailable"))
			return
		}

		productID, err := validators.ParseUUIDParam(chi.URLParam(r, "productId"), "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body areaRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		area, err := svc.UpsertArea(r.Context(), middleware.TenantIDFromContext(r.Context()), productID, body.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, area)
	}
}

func DeleteArea(svc internalproducts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "products service unavailable"))
			return
		}

		productID, err := validators.ParseUUIDParam(chi.URLParam(r, "productId"), "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		areaID, err := validators.ParseUUIDParam(chi.URLParam(r, "areaId"), "areaId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteArea(r.Context(), middleware.TenantIDFromContext(r.Context()), productID, areaID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]uuid.UUID{"id": areaID})
	}
}
