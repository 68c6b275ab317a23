package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/craftsign/signquote-backend/pkg/db/models"
	"github.com/craftsign/signquote-backend/pkg/enums"
	pkgerrors "github.com/craftsign/signquote-backend/pkg/errors"
)

// CoefficientLookup resolves the perimeter coefficient for a character
// class, tenant override first. The bool reports whether any row was found.
type CoefficientLookup func(class enums.CharClass) (decimal.Decimal, bool)

// CalculateLineItem prices one panel end to end: material price, quantity
// discount, optional lettering surcharge. Intermediate values keep full
// precision; nothing rounds per line.
func CalculateLineItem(material *models.Material, tiers []models.MaterialDiscountTier, lookup CoefficientLookup, req LineItemRequest) (*PricedLineItem, error) {
	if req.Quantity < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}

	resolved, err := ResolveMaterialPrice(material, req.WidthMM, req.HeightMM)
	if err != nil {
		return nil, err
	}

	tier := SelectDiscountTier(tiers, req.Quantity)
	discount := ApplyDiscount(resolved.UnitPrice, tier)

	item := &PricedLineItem{
		Request:             req,
		AreaM2:              resolved.AreaM2,
		WeightKg:            resolved.WeightKg,
		VolumeM3:            resolved.VolumeM3,
		PricingModel:        resolved.Model,
		UnitPrice:           resolved.UnitPrice,
		DiscountRatePercent: discount.RatePercent,
		DiscountedUnitPrice: discount.DiscountedUnitPrice,
		ProcessingCost:      decimal.Zero,
		Warnings:            discount.Warnings,
	}

	if req.TextProcessing != nil {
		if !material.SupportsTextProcessing {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "material does not support text processing")
		}
		if lookup == nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "character coefficient not found")
		}
		coefficient, ok := lookup(req.TextProcessing.CharClass)
		if !ok {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "character coefficient not found")
		}
		estimate, err := EstimatePerimeter(req.TextProcessing, coefficient)
		if err != nil {
			return nil, err
		}
		item.CharacterCount = estimate.CharacterCount
		item.EstimatedPerimeterMM = &estimate.EstimatedPerimeterMM
		item.FinalPerimeterMM = &estimate.FinalPerimeterMM
		item.ProcessingCost = estimate.ProcessingCost
	}

	discountedBase := resolved.PhysicalQuantity().Mul(item.DiscountedUnitPrice)
	item.LineSubtotal = discountedBase.Mul(decimal.NewFromInt(int64(req.Quantity))).Add(item.ProcessingCost)

	return item, nil
}
