package pricing

import (
	"testing"

	"github.com/craftsign/signquote-backend/pkg/db/models"
	"github.com/craftsign/signquote-backend/pkg/enums"
)

func intPtr(value int) *int {
	return &value
}

func rateTier(minQty int, maxQty *int, rate string) models.MaterialDiscountTier {
	return models.MaterialDiscountTier{
		MinQuantity:  minQty,
		MaxQuantity:  maxQty,
		DiscountType: enums.DiscountTypeRate,
		DiscountRate: decPtr(rate),
	}
}

func TestSelectDiscountTier(t *testing.T) {
	t.Parallel()

	tiers := []models.MaterialDiscountTier{
		rateTier(10, intPtr(19), "5"),
		rateTier(20, nil, "10"),
	}

	if tier := SelectDiscountTier(tiers, 12); tier == nil || tier.MinQuantity != 10 {
		t.Fatalf("expected tier min 10 for qty 12, got %+v", tier)
	}
	if tier := SelectDiscountTier(tiers, 4); tier != nil {
		t.Fatalf("expected no tier for qty 4, got %+v", tier)
	}
	if tier := SelectDiscountTier(tiers, 25); tier == nil || tier.MinQuantity != 20 {
		t.Fatalf("expected tier min 20 for qty 25, got %+v", tier)
	}
}

func TestSelectDiscountTierOverlapPrefersGreatestMin(t *testing.T) {
	t.Parallel()

	tiers := []models.MaterialDiscountTier{
		rateTier(5, nil, "5"),
		rateTier(10, nil, "15"),
	}
	if tier := SelectDiscountTier(tiers, 15); tier == nil || tier.MinQuantity != 10 {
		t.Fatalf("overlap must resolve to greatest min_quantity, got %+v", tier)
	}
}

func TestSelectDiscountTierIsDeterministic(t *testing.T) {
	t.Parallel()

	tiers := []models.MaterialDiscountTier{
		rateTier(10, nil, "15"),
		rateTier(5, nil, "5"),
	}
	first := SelectDiscountTier(tiers, 12)
	for i := 0; i < 10; i++ {
		again := SelectDiscountTier(tiers, 12)
		if again == nil || first == nil || again.MinQuantity != first.MinQuantity {
			t.Fatalf("selection changed across runs: %+v vs %+v", first, again)
		}
	}
}

func TestApplyDiscountRate(t *testing.T) {
	t.Parallel()

	tier := rateTier(10, nil, "20")
	applied := ApplyDiscount(dec("1000"), &tier)
	if !applied.DiscountedUnitPrice.Equal(dec("800")) {
		t.Fatalf("expected discounted price 800, got %s", applied.DiscountedUnitPrice)
	}
	if !applied.RatePercent.Equal(dec("20")) {
		t.Fatalf("expected rate 20, got %s", applied.RatePercent)
	}
}

func TestApplyDiscountPriceDerivesRate(t *testing.T) {
	t.Parallel()

	tier := models.MaterialDiscountTier{
		MinQuantity:   10,
		DiscountType:  enums.DiscountTypePrice,
		DiscountPrice: decPtr("750"),
	}
	applied := ApplyDiscount(dec("1000"), &tier)
	if !applied.DiscountedUnitPrice.Equal(dec("750")) {
		t.Fatalf("expected replacement price 750, got %s", applied.DiscountedUnitPrice)
	}
	if !applied.RatePercent.Equal(dec("25")) {
		t.Fatalf("expected derived rate 25, got %s", applied.RatePercent)
	}
}

func TestApplyDiscountPriceZeroUnitPrice(t *testing.T) {
	t.Parallel()

	tier := models.MaterialDiscountTier{
		MinQuantity:   1,
		DiscountType:  enums.DiscountTypePrice,
		DiscountPrice: decPtr("10"),
	}
	applied := ApplyDiscount(dec("0"), &tier)
	if !applied.RatePercent.Equal(dec("0")) {
		t.Fatalf("zero unit price must derive rate 0, got %s", applied.RatePercent)
	}
}

func TestApplyDiscountClampsNegative(t *testing.T) {
	t.Parallel()

	tier := models.MaterialDiscountTier{
		MinQuantity:   1,
		DiscountType:  enums.DiscountTypePrice,
		DiscountPrice: decPtr("-50"),
	}
	applied := ApplyDiscount(dec("1000"), &tier)
	if !applied.DiscountedUnitPrice.Equal(dec("0")) {
		t.Fatalf("expected clamp to 0, got %s", applied.DiscountedUnitPrice)
	}
	if len(applied.Warnings) == 0 {
		t.Fatalf("expected a data-quality warning after clamping")
	}
}

func TestApplyDiscountNoTier(t *testing.T) {
	t.Parallel()

	applied := ApplyDiscount(dec("1000"), nil)
	if !applied.DiscountedUnitPrice.Equal(dec("1000")) || !applied.RatePercent.Equal(dec("0")) {
		t.Fatalf("no tier must leave price untouched, got %s at %s%%", applied.DiscountedUnitPrice, applied.RatePercent)
	}
}
