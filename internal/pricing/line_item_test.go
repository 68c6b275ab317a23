package pricing

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/craftsign/signquote-backend/pkg/db/models"
	"github.com/craftsign/signquote-backend/pkg/enums"
	pkgerrors "github.com/craftsign/signquote-backend/pkg/errors"
)

func hiraganaLookup(class enums.CharClass) (decimal.Decimal, bool) {
	if class == enums.CharClassHiragana {
		return dec("6.0"), true
	}
	return decimal.Zero, false
}

func TestCalculateLineItemAreaExample(t *testing.T) {
	t.Parallel()

	item, err := CalculateLineItem(areaMaterial("5000"), nil, nil, LineItemRequest{
		WidthMM:  dec("1000"),
		HeightMM: dec("2000"),
		Quantity: 2,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !item.AreaM2.Equal(dec("2")) {
		t.Fatalf("expected area 2.0, got %s", item.AreaM2)
	}
	if !item.UnitPrice.Equal(dec("5000")) {
		t.Fatalf("expected unit price 5000, got %s", item.UnitPrice)
	}
	if !item.LineSubtotal.Equal(dec("20000")) {
		t.Fatalf("expected subtotal 20000, got %s", item.LineSubtotal)
	}
}

func TestCalculateLineItemSubtotalLinearInAreaAndQuantity(t *testing.T) {
	t.Parallel()

	material := areaMaterial("5000")
	base, err := CalculateLineItem(material, nil, nil, LineItemRequest{
		WidthMM: dec("500"), HeightMM: dec("400"), Quantity: 1,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	doubledWidth, err := CalculateLineItem(material, nil, nil, LineItemRequest{
		WidthMM: dec("1000"), HeightMM: dec("400"), Quantity: 1,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !doubledWidth.LineSubtotal.Equal(base.LineSubtotal.Mul(dec("2"))) {
		t.Fatalf("subtotal must be linear in width: %s vs %s", base.LineSubtotal, doubledWidth.LineSubtotal)
	}

	tripledQty, err := CalculateLineItem(material, nil, nil, LineItemRequest{
		WidthMM: dec("500"), HeightMM: dec("400"), Quantity: 3,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !tripledQty.LineSubtotal.Equal(base.LineSubtotal.Mul(dec("3"))) {
		t.Fatalf("subtotal must be linear in quantity: %s vs %s", base.LineSubtotal, tripledQty.LineSubtotal)
	}
}

func TestCalculateLineItemSamePriceInsideTier(t *testing.T) {
	t.Parallel()

	material := areaMaterial("5000")
	tiers := []models.MaterialDiscountTier{rateTier(10, intPtr(50), "20")}

	q12, err := CalculateLineItem(material, tiers, nil, LineItemRequest{
		WidthMM: dec("1000"), HeightMM: dec("1000"), Quantity: 12,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	q40, err := CalculateLineItem(material, tiers, nil, LineItemRequest{
		WidthMM: dec("1000"), HeightMM: dec("1000"), Quantity: 40,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !q12.DiscountedUnitPrice.Equal(q40.DiscountedUnitPrice) {
		t.Fatalf("discounted unit price must not vary inside a tier: %s vs %s", q12.DiscountedUnitPrice, q40.DiscountedUnitPrice)
	}
}

func TestCalculateLineItemWeightUsesWeightForDiscountedBase(t *testing.T) {
	t.Parallel()

	material := &models.Material{
		Name:            "steel plate",
		PricingModel:    enums.PricingModelWeight,
		UnitPriceWeight: decPtr("100"),
		SpecificGravity: decPtr("7.85"),
		ThicknessMM:     decPtr("2"),
	}
	tiers := []models.MaterialDiscountTier{rateTier(1, nil, "50")}

	item, err := CalculateLineItem(material, tiers, nil, LineItemRequest{
		WidthMM: dec("1000"), HeightMM: dec("1000"), Quantity: 1,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// weight 15.7 kg * 50 (half of 100) = 785
	if !item.LineSubtotal.Equal(dec("785")) {
		t.Fatalf("expected subtotal 785, got %s", item.LineSubtotal)
	}
}

func TestCalculateLineItemWithTextProcessing(t *testing.T) {
	t.Parallel()

	material := areaMaterial("5000")
	material.SupportsTextProcessing = true

	item, err := CalculateLineItem(material, nil, hiraganaLookup, LineItemRequest{
		WidthMM:  dec("1000"),
		HeightMM: dec("2000"),
		Quantity: 2,
		TextProcessing: &TextProcessingInput{
			Mode:               enums.TextProcessingModeCut,
			Content:            "あいう",
			TextHeightMM:       dec("100"),
			CharClass:          enums.CharClassHiragana,
			PerimeterUnitPrice: decPtr("2"),
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !item.ProcessingCost.Equal(dec("3600")) {
		t.Fatalf("expected processing cost 3600, got %s", item.ProcessingCost)
	}
	// 20000 material + 3600 lettering
	if !item.LineSubtotal.Equal(dec("23600")) {
		t.Fatalf("expected subtotal 23600, got %s", item.LineSubtotal)
	}
}

func TestCalculateLineItemRejectsTextOnUnsupportedMaterial(t *testing.T) {
	t.Parallel()

	_, err := CalculateLineItem(areaMaterial("5000"), nil, hiraganaLookup, LineItemRequest{
		WidthMM:  dec("1000"),
		HeightMM: dec("1000"),
		Quantity: 1,
		TextProcessing: &TextProcessingInput{
			Mode:         enums.TextProcessingModeCut,
			Content:      "あ",
			TextHeightMM: dec("100"),
			CharClass:    enums.CharClassHiragana,
		},
	})
	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestCalculateLineItemUnknownCharClass(t *testing.T) {
	t.Parallel()

	material := areaMaterial("5000")
	material.SupportsTextProcessing = true

	_, err := CalculateLineItem(material, nil, hiraganaLookup, LineItemRequest{
		WidthMM:  dec("1000"),
		HeightMM: dec("1000"),
		Quantity: 1,
		TextProcessing: &TextProcessingInput{
			Mode:         enums.TextProcessingModeCut,
			Content:      "XYZ",
			TextHeightMM: dec("100"),
			CharClass:    enums.CharClassUppercase,
		},
	})
	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for unresolved coefficient, got %v", err)
	}
}

func TestCalculateLineItemRejectsZeroQuantity(t *testing.T) {
	t.Parallel()

	_, err := CalculateLineItem(areaMaterial("5000"), nil, nil, LineItemRequest{
		WidthMM: dec("100"), HeightMM: dec("100"), Quantity: 0,
	})
	if appErr := pkgerrors.As(err); appErr == nil || appErr.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}
