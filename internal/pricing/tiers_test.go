package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/capstudio-backend/pkg/db/models"
)

func TestResolveUnitPriceStepFunction(t *testing.T) {
	t.Parallel()

	tiers := []Tier{{MinQuantity: 5, UnitPrice: 100}, {MinQuantity: 10, UnitPrice: 90}}
	cases := map[int]int{1: 120, 4: 120, 5: 100, 9: 100, 10: 90, 100: 90}
	for qty, want := range cases {
		assert.Equal(t, want, ResolveUnitPrice(120, qty, tiers), "quantity %d", qty)
	}
}

func TestResolveUnitPriceIgnoresInputOrder(t *testing.T) {
	t.Parallel()

	asc := []Tier{{1, 22400}, {5, 20000}, {10, 18000}, {20, 16000}, {50, 14000}}
	desc := []Tier{{50, 14000}, {20, 16000}, {10, 18000}, {5, 20000}, {1, 22400}}
	for qty := 0; qty <= 60; qty++ {
		assert.Equal(t, ResolveUnitPrice(22400, qty, asc), ResolveUnitPrice(22400, qty, desc), "quantity %d", qty)
	}
	assert.Equal(t, []Tier{{1, 22400}, {5, 20000}, {10, 18000}, {20, 16000}, {50, 14000}}, asc, "input must not be reordered")
}

func TestResolveUnitPriceEmptyTiers(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 22400, ResolveUnitPrice(22400, 3, nil))
	assert.Equal(t, 22400, ResolveUnitPrice(22400, 3, []Tier{}))
}

func TestResolveUnitPriceNeverInterpolates(t *testing.T) {
	t.Parallel()

	base := 30000
	tiers := []Tier{{3, 27000}, {7, 25500}, {15, 21000}, {40, 19900}}
	allowed := map[int]struct{}{base: {}}
	for _, tier := range tiers {
		allowed[tier.UnitPrice] = struct{}{}
	}

	prev := base
	for qty := 0; qty <= 100; qty++ {
		got := ResolveUnitPrice(base, qty, tiers)
		_, ok := allowed[got]
		require.True(t, ok, "quantity %d resolved to %d", qty, got)
		require.LessOrEqual(t, got, prev, "price rose at quantity %d", qty)
		prev = got
	}
}

func TestDiscountAmountAndRate(t *testing.T) {
	t.Parallel()

	tiers := []Tier{{5, 100}, {10, 90}}
	assert.Equal(t, 0, DiscountAmount(120, 1, tiers))
	assert.Equal(t, 100, DiscountAmount(120, 5, tiers))
	assert.Equal(t, 300, DiscountAmount(120, 10, tiers))

	assert.Equal(t, 0, DiscountRate(120, 1, tiers))
	assert.Equal(t, 17, DiscountRate(120, 5, tiers))
	assert.Equal(t, 25, DiscountRate(120, 10, tiers))
}

func TestDiscountRateRoundsHalfUp(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 3, DiscountRate(200, 1, []Tier{{1, 195}}), "2.5 rounds up")
	assert.Equal(t, -2, DiscountRate(200, 1, []Tier{{1, 205}}), "-2.5 rounds toward positive infinity")
}

func TestDiscountRateZeroBase(t *testing.T) {
	t.Parallel()

	for _, qty := range []int{0, 1, 50} {
		assert.Equal(t, 0, DiscountRate(0, qty, []Tier{{1, 10}}))
		assert.Equal(t, 0, DiscountRate(0, qty, nil))
	}
}

func TestBestTierAndSort(t *testing.T) {
	t.Parallel()

	assert.Nil(t, BestTier(nil))

	tiers := []Tier{{10, 90}, {50, 70}, {5, 100}}
	best := BestTier(tiers)
	require.NotNil(t, best)
	assert.Equal(t, Tier{50, 70}, *best)

	assert.Equal(t, []Tier{{5, 100}, {10, 90}, {50, 70}}, SortTiers(tiers))
	assert.Equal(t, Tier{10, 90}, tiers[0])
}

func TestValidateTiers(t *testing.T) {
	t.Parallel()

	require.NoError(t, ValidateTiers(nil))
	require.NoError(t, ValidateTiers([]Tier{{1, 100}, {10, 80}}))
	require.Error(t, ValidateTiers([]Tier{{0, 100}}))
	require.Error(t, ValidateTiers([]Tier{{1, -1}}))
	require.Error(t, ValidateTiers([]Tier{{5, 100}, {5, 90}}))
}

func TestFromModels(t *testing.T) {
	t.Parallel()

	assert.Nil(t, FromModels(nil))
	got := FromModels([]models.ProductPriceTier{{MinQuantity: 10, UnitPrice: 18000}})
	assert.Equal(t, []Tier{{10, 18000}}, got)
}

func TestNewQuote(t *testing.T) {
	t.Parallel()

	tiers := []Tier{{5, 100}, {10, 90}}
	q := NewQuote(120, 7, tiers)
	assert.Equal(t, 100, q.UnitPrice)
	assert.Equal(t, 700, q.LineTotal)
	assert.Equal(t, 140, q.DiscountAmount)
	assert.Equal(t, 17, q.DiscountRate)
	require.NotNil(t, q.AppliedTier)
	assert.Equal(t, 5, q.AppliedTier.MinQuantity)
	require.NotNil(t, q.NextTier)
	assert.Equal(t, 10, q.NextTier.MinQuantity)

	top := NewQuote(120, 10, tiers)
	assert.Nil(t, top.NextTier)

	none := NewQuote(120, 2, tiers)
	assert.Nil(t, none.AppliedTier)
	assert.Equal(t, 240, none.LineTotal)
}
