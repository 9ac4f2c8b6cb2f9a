package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/angelmondragon/capstudio-backend/pkg/enums"
	"github.com/angelmondragon/capstudio-backend/pkg/types"
)

// Review is a customer or admin-curated testimonial shown in the gallery.
type Review struct {
	ID               uuid.UUID              `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	TenantID         uuid.UUID              `gorm:"column:tenant_id;type:uuid;not null"`
	OrderID          *uuid.UUID             `gorm:"column:order_id;type:uuid"`
	AuthorType       enums.ReviewAuthorType `gorm:"column:author_type;type:review_author_type;not null;default:'customer'"`
	AuthorName       string                 `gorm:"column:author_name;not null"`
	OrganizationName *string                `gorm:"column:organization_name"`
	Title            *string                `gorm:"column:title"`
	Content          string                 `gorm:"column:content;not null"`
	Rating           int                    `gorm:"column:rating;not null"`
	Images           []types.ReviewImage    `gorm:"column:images;type:jsonb;serializer:json"`
	Status           enums.ReviewStatus     `gorm:"column:status;type:review_status;not null;default:'pending'"`
	AdminMemo        *string                `gorm:"column:admin_memo"`
	IsFeatured       bool                   `gorm:"column:is_featured;not null;default:false"`
	SortOrder        int                    `gorm:"column:sort_order;not null;default:0"`
	ApprovedAt       *time.Time             `gorm:"column:approved_at"`
	CreatedAt        time.Time              `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time              `gorm:"column:updated_at;autoUpdateTime"`
}
