package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/angelmondragon/capstudio-backend/pkg/enums"
	"github.com/angelmondragon/capstudio-backend/pkg/types"
)

// Product is a customizable blank sold by a tenant.
type Product struct {
	ID                uuid.UUID              `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	TenantID          uuid.UUID              `gorm:"column:tenant_id;type:uuid;not null"`
	Name              string                 `gorm:"column:name;not null"`
	Slug              string                 `gorm:"column:slug;not null"`
	Description       *string                `gorm:"column:description"`
	Category          enums.ProductCategory  `gorm:"column:category;type:product_category;not null;default:'hat'"`
	BasePrice         int                    `gorm:"column:base_price;not null"`
	Images            []types.ProductImage   `gorm:"column:images;type:jsonb;serializer:json"`
	Variants          []types.ProductVariant `gorm:"column:variants;type:jsonb;serializer:json"`
	DetailImageURL    *string                `gorm:"column:detail_image_url"`
	AdminMessage      *string                `gorm:"column:admin_message"`
	IsActive          bool                   `gorm:"column:is_active;not null"`
	SortOrder         int                    `gorm:"column:sort_order;not null;default:0"`
	PriceTiers        []ProductPriceTier     `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	CustomizableAreas []CustomizableArea     `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	CreatedAt         time.Time              `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time              `gorm:"column:updated_at;autoUpdateTime"`
}

// ProductPriceTier is a volume breakpoint: orders of at least MinQuantity pay UnitPrice.
type ProductPriceTier struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ProductID   uuid.UUID `gorm:"column:product_id;type:uuid;not null"`
	MinQuantity int       `gorm:"column:min_quantity;not null"`
	UnitPrice   int       `gorm:"column:unit_price;not null"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
}

// CustomizableArea is a printable zone on one view of a product, optionally per colour.
type CustomizableArea struct {
	ID          uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ProductID   uuid.UUID         `gorm:"column:product_id;type:uuid;not null"`
	ColorID     *string           `gorm:"column:color_id"`
	ViewName    enums.ProductView `gorm:"column:view_name;not null"`
	DisplayName string            `gorm:"column:display_name;not null"`
	ZoneX       float64           `gorm:"column:zone_x;not null;default:0"`
	ZoneY       float64           `gorm:"column:zone_y;not null;default:0"`
	ZoneWidth   float64           `gorm:"column:zone_width;not null;default:0"`
	ZoneHeight  float64           `gorm:"column:zone_height;not null;default:0"`
	ImageURL    *string           `gorm:"column:image_url"`
	IsEnabled   bool              `gorm:"column:is_enabled;not null"`
	SortOrder   int               `gorm:"column:sort_order;not null;default:0"`
	CreatedAt   time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
