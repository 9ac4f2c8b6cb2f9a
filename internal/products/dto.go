package products

import (
	"time"

	"github.com/angelmondragon/capstudio-backend/internal/pricing"
	"github.com/angelmondragon/capstudio-backend/pkg/db/models"
	"github.com/angelmondragon/capstudio-backend/pkg/enums"
	"github.com/angelmondragon/capstudio-backend/pkg/types"
	"github.com/google/uuid"
)

// ProductDTO is the product payload returned to storefront and admin clients.
type ProductDTO struct {
	ID                uuid.UUID              `json:"id"`
	TenantID          uuid.UUID              `json:"tenantId"`
	Name              string                 `json:"name"`
	Slug              string                 `json:"slug"`
	Description       *string                `json:"description,omitempty"`
	Category          enums.ProductCategory  `json:"category"`
	BasePrice         int                    `json:"basePrice"`
	PriceTiers        []pricing.Tier         `json:"priceTiers"`
	Images            []types.ProductImage   `json:"images"`
	Variants          []types.ProductVariant `json:"variants"`
	DetailImageURL    *string                `json:"detailImageUrl,omitempty"`
	AdminMessage      *string                `json:"adminMessage,omitempty"`
	IsActive          bool                   `json:"isActive"`
	SortOrder         int                    `json:"sortOrder"`
	CustomizableAreas []AreaDTO              `json:"customizableAreas,omitempty"`
	CreatedAt         time.Time              `json:"createdAt"`
	UpdatedAt         time.Time              `json:"updatedAt"`
}

// AreaDTO is a printable zone on one product view.
type AreaDTO struct {
	ID          uuid.UUID         `json:"id"`
	ProductID   uuid.UUID         `json:"productId"`
	ColorID     *string           `json:"colorId"`
	ViewName    enums.ProductView `json:"viewName"`
	DisplayName string            `json:"displayName"`
	ZoneX       float64           `json:"zoneX"`
	ZoneY       float64           `json:"zoneY"`
	ZoneWidth   float64           `json:"zoneWidth"`
	ZoneHeight  float64           `json:"zoneHeight"`
	ImageURL    *string           `json:"imageUrl,omitempty"`
	IsEnabled   bool              `json:"isEnabled"`
	SortOrder   int               `json:"sortOrder"`
}

// NewProductDTO builds a DTO from the persisted model.
func NewProductDTO(product *models.Product) *ProductDTO {
	dto := &ProductDTO{
		ID:             product.ID,
		TenantID:       product.TenantID,
		Name:           product.Name,
		Slug:           product.Slug,
		Description:    product.Description,
		Category:       product.Category,
		BasePrice:      product.BasePrice,
		PriceTiers:     pricing.FromModels(product.PriceTiers),
		Images:         product.Images,
		Variants:       product.Variants,
		DetailImageURL: product.DetailImageURL,
		AdminMessage:   product.AdminMessage,
		IsActive:       product.IsActive,
		SortOrder:      product.SortOrder,
		CreatedAt:      product.CreatedAt,
		UpdatedAt:      product.UpdatedAt,
	}
	if dto.PriceTiers == nil {
		dto.PriceTiers = []pricing.Tier{}
	}
	if dto.Images == nil {
		dto.Images = []types.ProductImage{}
	}
	if dto.Variants == nil {
		dto.Variants = []types.ProductVariant{}
	}
	if product.CustomizableAreas != nil {
		dto.CustomizableAreas = NewAreaDTOs(product.CustomizableAreas)
	}
	return dto
}

// NewAreaDTO converts a customizable area row.
func NewAreaDTO(area models.CustomizableArea) AreaDTO {
	return AreaDTO{
		ID:          area.ID,
		ProductID:   area.ProductID,
		ColorID:     area.ColorID,
		ViewName:    area.ViewName,
		DisplayName: area.DisplayName,
		ZoneX:       area.ZoneX,
		ZoneY:       area.ZoneY,
		ZoneWidth:   area.ZoneWidth,
		ZoneHeight:  area.ZoneHeight,
		ImageURL:    area.ImageURL,
		IsEnabled:   area.IsEnabled,
		SortOrder:   area.SortOrder,
	}
}

// NewAreaDTOs converts a list of areas, never returning nil.
func NewAreaDTOs(areas []models.CustomizableArea) []AreaDTO {
	out := make([]AreaDTO, 0, len(areas))
	for _, area := range areas {
		out = append(out, NewAreaDTO(area))
	}
	return out
}
