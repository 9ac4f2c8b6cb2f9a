package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/angelmondragon/capstudio-backend/pkg/types"
)

// Tenant is an independently branded storefront.
type Tenant struct {
	ID           uuid.UUID                     `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name         string                        `gorm:"column:name;not null"`
	Slug         string                        `gorm:"column:slug;not null;uniqueIndex"`
	LogoURL      *string                       `gorm:"column:logo_url"`
	ContactEmail string                        `gorm:"column:contact_email;not null"`
	ContactPhone *string                       `gorm:"column:contact_phone"`
	Settings     types.TenantSettingsOverrides `gorm:"column:settings;type:jsonb;serializer:json"`
	CreatedAt    time.Time                     `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time                     `gorm:"column:updated_at;autoUpdateTime"`
}
