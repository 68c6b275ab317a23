package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/craftsign/signquote-backend/pkg/db/models"
	"github.com/craftsign/signquote-backend/pkg/enums"
	pkgerrors "github.com/craftsign/signquote-backend/pkg/errors"
)

var mmPerMeter = decimal.NewFromInt(1000)

// ResolvedPrice is the pre-discount material price for one unit, together
// with the physical quantities the discount and subtotal stages reuse.
type ResolvedPrice struct {
	Model     enums.PricingModel
	AreaM2    decimal.Decimal
	WeightKg  *decimal.Decimal
	VolumeM3  *decimal.Decimal
	UnitPrice decimal.Decimal
	BasePrice decimal.Decimal
}

// PhysicalQuantity returns the quantity the unit price multiplies: area,
// weight, or volume depending on the material's model.
func (r ResolvedPrice) PhysicalQuantity() decimal.Decimal {
	switch r.Model {
	case enums.PricingModelWeight:
		if r.WeightKg != nil {
			return *r.WeightKg
		}
	case enums.PricingModelVolume:
		if r.VolumeM3 != nil {
			return *r.VolumeM3
		}
	}
	return r.AreaM2
}

// ResolveMaterialPrice computes the pre-discount unit price and physical
// quantities for a panel of the given dimensions. The weight formula keeps
// thickness in millimeters, matching the numbers historical quotes were
// charged with.
func ResolveMaterialPrice(material *models.Material, widthMM, heightMM decimal.Decimal) (*ResolvedPrice, error) {
	if material == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "material is required")
	}
	if widthMM.LessThanOrEqual(decimal.Zero) || heightMM.LessThanOrEqual(decimal.Zero) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "width and height must be positive")
	}

	areaM2 := widthMM.Div(mmPerMeter).Mul(heightMM.Div(mmPerMeter))

	resolved := &ResolvedPrice{
		Model:  material.PricingModel,
		AreaM2: areaM2,
	}

	switch material.PricingModel {
	case enums.PricingModelArea:
		resolved.UnitPrice = derefPrice(material.UnitPriceArea)
		resolved.BasePrice = areaM2.Mul(resolved.UnitPrice)

	case enums.PricingModelWeight:
		if material.SpecificGravity == nil || material.ThicknessMM == nil ||
			material.SpecificGravity.LessThanOrEqual(decimal.Zero) || material.ThicknessMM.LessThanOrEqual(decimal.Zero) {
			return nil, pkgerrors.New(pkgerrors.CodeConfiguration, "missing weight parameters")
		}
		weightKg := areaM2.Mul(*material.SpecificGravity).Mul(*material.ThicknessMM)
		resolved.WeightKg = &weightKg
		resolved.UnitPrice = derefPrice(material.UnitPriceWeight)
		resolved.BasePrice = weightKg.Mul(resolved.UnitPrice)

	case enums.PricingModelVolume:
		if material.ThicknessMM == nil || material.ThicknessMM.LessThanOrEqual(decimal.Zero) {
			return nil, pkgerrors.New(pkgerrors.CodeConfiguration, "missing thickness")
		}
		volumeM3 := areaM2.Mul(material.ThicknessMM.Div(mmPerMeter))
		resolved.VolumeM3 = &volumeM3
		resolved.UnitPrice = derefPrice(material.UnitPriceVolume)
		resolved.BasePrice = volumeM3.Mul(resolved.UnitPrice)

	default:
		return nil, pkgerrors.New(pkgerrors.CodeConfiguration, "unknown pricing model")
	}

	if resolved.UnitPrice.LessThanOrEqual(decimal.Zero) {
		return nil, pkgerrors.New(pkgerrors.CodeConfiguration, "material not priced")
	}
	return resolved, nil
}

func derefPrice(price *decimal.Decimal) decimal.Decimal {
	if price == nil {
		return decimal.Zero
	}
	return *price
}
