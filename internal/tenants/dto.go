package tenants

import (
	"time"

	"github.com/angelmondragon/capstudio-backend/pkg/db/models"
	"github.com/angelmondragon/capstudio-backend/pkg/types"
	"github.com/google/uuid"
)

// TenantDTO is the tenant payload with settings resolved against defaults.
type TenantDTO struct {
	ID           uuid.UUID            `json:"id"`
	Name         string               `json:"name"`
	Slug         string               `json:"slug"`
	LogoURL      *string              `json:"logoUrl"`
	ContactEmail string               `json:"contactEmail"`
	ContactPhone *string              `json:"contactPhone"`
	Settings     types.TenantSettings `json:"settings"`
	CreatedAt    time.Time            `json:"createdAt"`
	UpdatedAt    time.Time            `json:"updatedAt"`
}

// SummaryDTO is the listing shape used by tenant pickers.
type SummaryDTO struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	Slug    string    `json:"slug"`
	LogoURL *string   `json:"logoUrl"`
}

// FromModel converts a tenant row into its DTO.
func FromModel(m *models.Tenant) *TenantDTO {
	if m == nil {
		return nil
	}
	return &TenantDTO{
		ID:           m.ID,
		Name:         m.Name,
		Slug:         m.Slug,
		LogoURL:      m.LogoURL,
		ContactEmail: m.ContactEmail,
		ContactPhone: m.ContactPhone,
		Settings:     MergeSettings(m.Settings),
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func toSummary(m models.Tenant) SummaryDTO {
	return SummaryDTO{
		ID:      m.ID,
		Name:    m.Name,
		Slug:    m.Slug,
		LogoURL: m.LogoURL,
	}
}
