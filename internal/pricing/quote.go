package pricing

// Quote summarizes tier pricing for one product line.
type Quote struct {
	BasePrice      int   `json:"basePrice"`
	Quantity       int   `json:"quantity"`
	UnitPrice      int   `json:"unitPrice"`
	LineTotal      int   `json:"lineTotal"`
	DiscountAmount int   `json:"discountAmount"`
	DiscountRate   int   `json:"discountRate"`
	AppliedTier    *Tier `json:"appliedTier,omitempty"`
	NextTier       *Tier `json:"nextTier,omitempty"`
}

// NewQuote prices quantity units against the tier table.
func NewQuote(basePrice, quantity int, tiers []Tier) Quote {
	unit := ResolveUnitPrice(basePrice, quantity, tiers)
	q := Quote{
		BasePrice:      basePrice,
		Quantity:       quantity,
		UnitPrice:      unit,
		LineTotal:      unit * quantity,
		DiscountAmount: DiscountAmount(basePrice, quantity, tiers),
		DiscountRate:   DiscountRate(basePrice, quantity, tiers),
	}
	for _, tier := range SortTiers(tiers) {
		if tier.MinQuantity <= quantity {
			applied := tier
			q.AppliedTier = &applied
			continue
		}
		next := tier
		q.NextTier = &next
		break
	}
	return q
}
