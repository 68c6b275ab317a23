package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/craftsign/signquote-backend/pkg/db/models"
	"github.com/craftsign/signquote-backend/pkg/enums"
)

var oneHundred = decimal.NewFromInt(100)

// AppliedDiscount is the outcome of running a unit price through the
// material's tier table. Rate is always populated; for price-type tiers it
// is derived from the replacement price.
type AppliedDiscount struct {
	Tier                *models.MaterialDiscountTier
	RatePercent         decimal.Decimal
	DiscountedUnitPrice decimal.Decimal
	Warnings            []string
}

// SelectDiscountTier returns the tier covering qty, or nil when none does.
// Overlapping tiers resolve to the greatest min_quantity.
func SelectDiscountTier(tiers []models.MaterialDiscountTier, qty int) *models.MaterialDiscountTier {
	var selected *models.MaterialDiscountTier
	for _, tier := range tiers {
		if tier.MinQuantity > qty {
			continue
		}
		if tier.MaxQuantity != nil && qty > *tier.MaxQuantity {
			continue
		}
		if selected == nil || tier.MinQuantity > selected.MinQuantity {
			copy := tier
			selected = &copy
		}
	}
	return selected
}

// ApplyDiscount computes the discounted unit price for the selected tier.
// It never fails: a discount that would drive the price negative clamps to
// zero and flags a warning instead.
func ApplyDiscount(unitPrice decimal.Decimal, tier *models.MaterialDiscountTier) AppliedDiscount {
	applied := AppliedDiscount{
		Tier:                tier,
		RatePercent:         decimal.Zero,
		DiscountedUnitPrice: unitPrice,
	}
	if tier == nil {
		return applied
	}

	switch tier.DiscountType {
	case enums.DiscountTypeRate:
		if tier.DiscountRate == nil {
			return applied
		}
		applied.RatePercent = *tier.DiscountRate
		factor := decimal.NewFromInt(1).Sub(tier.DiscountRate.Div(oneHundred))
		applied.DiscountedUnitPrice = unitPrice.Mul(factor)

	case enums.DiscountTypePrice:
		if tier.DiscountPrice == nil {
			return applied
		}
		applied.DiscountedUnitPrice = *tier.DiscountPrice
		if unitPrice.GreaterThan(decimal.Zero) {
			applied.RatePercent = unitPrice.Sub(*tier.DiscountPrice).Div(unitPrice).Mul(oneHundred)
		}
	}

	if applied.DiscountedUnitPrice.LessThan(decimal.Zero) {
		applied.DiscountedUnitPrice = decimal.Zero
		applied.RatePercent = oneHundred
		applied.Warnings = append(applied.Warnings, "discount drove unit price below zero; clamped to 0")
	}
	return applied
}
