package reviews

import (
	"time"

	"github.com/angelmondragon/capstudio-backend/pkg/db/models"
	"github.com/angelmondragon/capstudio-backend/pkg/enums"
	"github.com/angelmondragon/capstudio-backend/pkg/types"
	"github.com/google/uuid"
)

// ReviewDTO is the review payload. Admin-only fields are dropped by Public.
type ReviewDTO struct {
	ID               uuid.UUID              `json:"id"`
	TenantID         uuid.UUID              `json:"tenantId"`
	OrderID          *uuid.UUID             `json:"orderId,omitempty"`
	AuthorType       enums.ReviewAuthorType `json:"authorType"`
	AuthorName       string                 `json:"authorName"`
	OrganizationName *string                `json:"organizationName"`
	Title            *string                `json:"title"`
	Content          string                 `json:"content"`
	Rating           int                    `json:"rating"`
	Images           []types.ReviewImage    `json:"images"`
	Status           enums.ReviewStatus     `json:"status"`
	AdminMemo        *string                `json:"adminMemo,omitempty"`
	IsFeatured       bool                   `json:"isFeatured"`
	SortOrder        int                    `json:"sortOrder"`
	ApprovedAt       *time.Time             `json:"approvedAt"`
	CreatedAt        time.Time              `json:"createdAt"`
	UpdatedAt        time.Time              `json:"updatedAt"`
}

func NewReviewDTO(m *models.Review) *ReviewDTO {
	images := m.Images
	if images == nil {
		images = []types.ReviewImage{}
	}
	return &ReviewDTO{
		ID:               m.ID,
		TenantID:         m.TenantID,
		OrderID:          m.OrderID,
		AuthorType:       m.AuthorType,
		AuthorName:       m.AuthorName,
		OrganizationName: m.OrganizationName,
		Title:            m.Title,
		Content:          m.Content,
		Rating:           m.Rating,
		Images:           images,
		Status:           m.Status,
		AdminMemo:        m.AdminMemo,
		IsFeatured:       m.IsFeatured,
		SortOrder:        m.SortOrder,
		ApprovedAt:       m.ApprovedAt,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}

// Public strips moderation fields before a review is shown on the storefront.
func (d ReviewDTO) Public() ReviewDTO {
	d.AdminMemo = nil
	return d
}
