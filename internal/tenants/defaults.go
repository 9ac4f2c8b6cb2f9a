package tenants

import (
	"strings"

	"github.com/angelmondragon/capstudio-backend/pkg/enums"
	"github.com/angelmondragon/capstudio-backend/pkg/types"
)

const (
	DefaultBasePrice             = 22400
	DefaultShippingFreeThreshold = 50000
	DefaultShippingCost          = 3000
	DefaultCurrency              = enums.CurrencyKRW
)

var defaultPrintPalette = []types.PrintColor{
	{Label: "반사 블랙", Hex: "#2E2F38"},
	{Label: "반사 다크그레이", Hex: "#5C5A64"},
	{Label: "반사 로얄블루", Hex: "#434B91"},
	{Label: "반사 옐로우", Hex: "#FFBB55"},
	{Label: "반사 그린", Hex: "#277664"},
	{Label: "반사 화이트", Hex: "#EBF0F1"},
	{Label: "반사 레드", Hex: "#D03340"},
	{Label: "반사 골드", Hex: "#9C7F5A"},
	{Label: "반사 블루", Hex: "#4E7FAA"},
	{Label: "반사 스카이블루", Hex: "#A6D9F7"},
	{Label: "반사 오렌지", Hex: "#BC422D"},
	{Label: "반사 바이올렛", Hex: "#4F2463"},
	{Label: "반사 브라운", Hex: "#5C3C16"},
	{Label: "반사 투명", Hex: "#F6F7F1"},
	{Label: "반사 네온레드", Hex: "#FF4545"},
	{Label: "반사 바나나", Hex: "#FFA833"},
	{Label: "반사 레드오렌지", Hex: "#F13021"},
	{Label: "반사 네온핑크", Hex: "#FA4D68"},
	{Label: "반사 네온옐로우", Hex: "#F8F646"},
	{Label: "반사 네온그린", Hex: "#47F154"},
	{Label: "반사 네온오렌지", Hex: "#FF8440"},
	{Label: "반사 스노우화이트2", Hex: "#F5EEF2"},
	{Label: "반사 그레이2", Hex: "#BDBCC5"},
	{Label: "반사 다크네이비2", Hex: "#252A52"},
}

// DefaultPrintPalette returns a copy of the reflective ink palette used when a
// tenant has not configured its own.
func DefaultPrintPalette() []types.PrintColor {
	out := make([]types.PrintColor, len(defaultPrintPalette))
	copy(out, defaultPrintPalette)
	return out
}

// DefaultColors returns the four stock hat colours with their per-view images.
func DefaultColors() []types.ColorOption {
	return []types.ColorOption{
		{
			ID:    "black",
			Label: "Midnight Black",
			Hex:   "#000000",
			Views: map[enums.ProductView]string{
				enums.ProductViewFront: "/assets/hats/black-front.png",
				enums.ProductViewLeft:  "/assets/hats/black-left.png",
				enums.ProductViewRight: "/assets/hats/black-right.png",
				enums.ProductViewBack:  "/assets/hats/black-back.png",
				enums.ProductViewTop:   "/assets/hats/black-top.png",
			},
		},
		{
			ID:    "khaki",
			Label: "Desert Khaki",
			Hex:   "#C3B091",
			Views: map[enums.ProductView]string{
				enums.ProductViewFront: "/assets/hats/khaki.png",
				enums.ProductViewLeft:  "/assets/hats/khaki-side.png",
				enums.ProductViewRight: "/assets/hats/khaki-side.png",
				enums.ProductViewBack:  "/assets/hats/khaki-back.png",
				enums.ProductViewTop:   "/assets/hats/khaki-top.png",
			},
		},
		{
			ID:    "beige",
			Label: "Sand Beige",
			Hex:   "#F5F5DC",
			Views: map[enums.ProductView]string{
				enums.ProductViewFront: "/assets/hats/beige.png",
				enums.ProductViewLeft:  "/assets/hats/beige-side.png",
				enums.ProductViewRight: "/assets/hats/beige-side.png",
				enums.ProductViewBack:  "/assets/hats/beige-back.png",
				enums.ProductViewTop:   "/assets/hats/beige-top.png",
			},
		},
		{
			ID:    "red",
			Label: "Race Red",
			Hex:   "#FF0000",
			Views: map[enums.ProductView]string{
				enums.ProductViewFront: "/assets/hats/red.png",
				enums.ProductViewLeft:  "/assets/hats/red-side.png",
				enums.ProductViewRight: "/assets/hats/red-side.png",
				enums.ProductViewBack:  "/assets/hats/red-back.png",
				enums.ProductViewTop:   "/assets/hats/red-top.png",
			},
		},
	}
}

// DefaultSafeZones returns the printable rectangle per view, in percent.
func DefaultSafeZones() map[enums.ProductView]types.Zone {
	return map[enums.ProductView]types.Zone{
		enums.ProductViewFront: {X: 30, Y: 30, Width: 40, Height: 30},
		enums.ProductViewLeft:  {X: 30, Y: 40, Width: 40, Height: 20},
		enums.ProductViewRight: {X: 30, Y: 40, Width: 40, Height: 20},
		enums.ProductViewBack:  {X: 30, Y: 40, Width: 40, Height: 20},
		enums.ProductViewTop:   {X: 25, Y: 25, Width: 50, Height: 50},
	}
}

// DefaultSettings is the effective configuration of a tenant with nothing stored.
func DefaultSettings() types.TenantSettings {
	return MergeSettings(types.TenantSettingsOverrides{})
}

// MergeSettings fills every absent field of the stored document with its default.
func MergeSettings(stored types.TenantSettingsOverrides) types.TenantSettings {
	settings := types.TenantSettings{
		BasePrice:             DefaultBasePrice,
		ShippingFreeThreshold: DefaultShippingFreeThreshold,
		ShippingCost:          DefaultShippingCost,
		Currency:              DefaultCurrency,
		Colors:                DefaultColors(),
		SafeZones:             DefaultSafeZones(),
		PrintColorPalette:     DefaultPrintPalette(),
	}
	if stored.BasePrice != nil {
		settings.BasePrice = *stored.BasePrice
	}
	if stored.ShippingFreeThreshold != nil {
		settings.ShippingFreeThreshold = *stored.ShippingFreeThreshold
	}
	if stored.ShippingCost != nil {
		settings.ShippingCost = *stored.ShippingCost
	}
	if stored.Currency != nil {
		settings.Currency = *stored.Currency
	}
	if stored.Colors != nil {
		settings.Colors = stored.Colors
	}
	if stored.SafeZones != nil {
		settings.SafeZones = stored.SafeZones
	}
	if len(stored.PrintColorPalette) > 0 {
		settings.PrintColorPalette = stored.PrintColorPalette
	}
	return settings
}

// ApplyOverrides layers patch on top of stored; fields absent from patch keep their stored value.
func ApplyOverrides(stored, patch types.TenantSettingsOverrides) types.TenantSettingsOverrides {
	out := stored
	if patch.BasePrice != nil {
		out.BasePrice = patch.BasePrice
	}
	if patch.ShippingFreeThreshold != nil {
		out.ShippingFreeThreshold = patch.ShippingFreeThreshold
	}
	if patch.ShippingCost != nil {
		out.ShippingCost = patch.ShippingCost
	}
	if patch.Currency != nil {
		out.Currency = patch.Currency
	}
	if patch.Colors != nil {
		out.Colors = patch.Colors
	}
	if patch.SafeZones != nil {
		out.SafeZones = patch.SafeZones
	}
	if patch.PrintColorPalette != nil {
		out.PrintColorPalette = patch.PrintColorPalette
	}
	return out
}

// ShippingFee is zero once subtotal reaches the free-shipping threshold.
func ShippingFee(settings types.TenantSettings, subtotal int) int {
	if subtotal >= settings.ShippingFreeThreshold {
		return 0
	}
	return settings.ShippingCost
}

func normalizeHex(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

// IsAllowedPrintColor reports whether color matches a palette entry, ignoring
// case and surrounding whitespace. An empty palette falls back to the default.
func IsAllowedPrintColor(color string, palette []types.PrintColor) bool {
	normalized := normalizeHex(color)
	if normalized == "" {
		return false
	}
	if len(palette) == 0 {
		palette = defaultPrintPalette
	}
	for _, entry := range palette {
		if normalizeHex(entry.Hex) == normalized {
			return true
		}
	}
	return false
}
