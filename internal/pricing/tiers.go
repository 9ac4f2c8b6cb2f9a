// Package pricing resolves volume tier prices for a product quantity.
package pricing

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/capstudio-backend/pkg/db/models"
)

// Tier is a quantity breakpoint: at MinQuantity or more, each unit costs UnitPrice.
type Tier struct {
	MinQuantity int `json:"minQuantity" validate:"min=1"`
	UnitPrice   int `json:"unitPrice" validate:"min=0"`
}

// ResolveUnitPrice returns the unit price of the highest tier whose MinQuantity
// does not exceed quantity, or basePrice when no tier qualifies.
func ResolveUnitPrice(basePrice, quantity int, tiers []Tier) int {
	if len(tiers) == 0 {
		return basePrice
	}
	sorted := make([]Tier, len(tiers))
	copy(sorted, tiers)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].MinQuantity > sorted[j].MinQuantity
	})
	for _, tier := range sorted {
		if quantity >= tier.MinQuantity {
			return tier.UnitPrice
		}
	}
	return basePrice
}

// DiscountAmount is the total saved against basePrice for the line.
func DiscountAmount(basePrice, quantity int, tiers []Tier) int {
	unit := ResolveUnitPrice(basePrice, quantity, tiers)
	return (basePrice - unit) * quantity
}

// DiscountRate is the whole-number percentage saved per unit. A zero basePrice yields 0.
func DiscountRate(basePrice, quantity int, tiers []Tier) int {
	if basePrice == 0 {
		return 0
	}
	unit := ResolveUnitPrice(basePrice, quantity, tiers)
	rate := decimal.NewFromInt(int64(basePrice - unit)).
		Div(decimal.NewFromInt(int64(basePrice))).
		Mul(decimal.NewFromInt(100))
	// half-up toward positive infinity
	return int(rate.Add(decimal.NewFromFloat(0.5)).Floor().IntPart())
}

// BestTier returns the tier with the largest MinQuantity, or nil when there are none.
func BestTier(tiers []Tier) *Tier {
	var best *Tier
	for _, tier := range tiers {
		if best == nil || tier.MinQuantity > best.MinQuantity {
			candidate := tier
			best = &candidate
		}
	}
	return best
}

// SortTiers returns a copy ordered by MinQuantity ascending.
func SortTiers(tiers []Tier) []Tier {
	sorted := make([]Tier, len(tiers))
	copy(sorted, tiers)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].MinQuantity < sorted[j].MinQuantity
	})
	return sorted
}

// ValidateTiers rejects non-positive thresholds, negative prices and duplicate thresholds.
func ValidateTiers(tiers []Tier) error {
	seen := make(map[int]struct{}, len(tiers))
	for _, tier := range tiers {
		if tier.MinQuantity < 1 {
			return fmt.Errorf("minQuantity must be at least 1")
		}
		if tier.UnitPrice < 0 {
			return fmt.Errorf("unitPrice must be non-negative")
		}
		if _, ok := seen[tier.MinQuantity]; ok {
			return fmt.Errorf("duplicate minQuantity %d", tier.MinQuantity)
		}
		seen[tier.MinQuantity] = struct{}{}
	}
	return nil
}

// FromModels converts persisted tiers.
func FromModels(rows []models.ProductPriceTier) []Tier {
	if len(rows) == 0 {
		return nil
	}
	out := make([]Tier, 0, len(rows))
	for _, row := range rows {
		out = append(out, Tier{MinQuantity: row.MinQuantity, UnitPrice: row.UnitPrice})
	}
	return out
}
