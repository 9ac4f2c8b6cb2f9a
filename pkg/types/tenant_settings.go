package types

import "github.com/angelmondragon/capstudio-backend/pkg/enums"

// TenantSettings is the effective storefront configuration after defaults are applied.
type TenantSettings struct {
	BasePrice             int                        `json:"basePrice"`
	ShippingFreeThreshold int                        `json:"shippingFreeThreshold"`
	ShippingCost          int                        `json:"shippingCost"`
	Currency              enums.Currency             `json:"currency"`
	Colors                []ColorOption              `json:"colors"`
	SafeZones             map[enums.ProductView]Zone `json:"safeZones"`
	PrintColorPalette     []PrintColor               `json:"printColorPalette,omitempty"`
}

// ColorOption is a blank-product colour with its per-view base images.
type ColorOption struct {
	ID    string                       `json:"id"`
	Label string                       `json:"label"`
	Hex   string                       `json:"hex"`
	Views map[enums.ProductView]string `json:"views"`
}

// Zone is a printable rectangle in percent of the rendered view.
type Zone struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// PrintColor is an ink colour the print shop can reproduce on text layers.
type PrintColor struct {
	Label string `json:"label"`
	Hex   string `json:"hex"`
}

// TenantSettingsOverrides is the sparse settings document stored as JSONB on tenants
// and accepted by settings updates. Absent fields fall back to defaults.
type TenantSettingsOverrides struct {
	BasePrice             *int                       `json:"basePrice,omitempty" validate:"omitempty,min=0"`
	ShippingFreeThreshold *int                       `json:"shippingFreeThreshold,omitempty" validate:"omitempty,min=0"`
	ShippingCost          *int                       `json:"shippingCost,omitempty" validate:"omitempty,min=0"`
	Currency              *enums.Currency            `json:"currency,omitempty"`
	Colors                []ColorOption              `json:"colors,omitempty"`
	SafeZones             map[enums.ProductView]Zone `json:"safeZones,omitempty"`
	PrintColorPalette     []PrintColor               `json:"printColorPalette,omitempty"`
}
