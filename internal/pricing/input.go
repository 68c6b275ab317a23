package pricing

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/craftsign/signquote-backend/pkg/enums"
)

// TextProcessingInput describes optional cut lettering on a line item.
// MeasuredPerimeterMM, when positive, overrides the model estimate.
type TextProcessingInput struct {
	Mode                enums.TextProcessingMode
	Content             string
	TextHeightMM        decimal.Decimal
	TextWidthMM         *decimal.Decimal
	CharClass           enums.CharClass
	MeasuredPerimeterMM *decimal.Decimal
	PerimeterUnitPrice  *decimal.Decimal
}

// LineItemRequest is one sign panel to price.
type LineItemRequest struct {
	MaterialID     uuid.UUID
	WidthMM        decimal.Decimal
	HeightMM       decimal.Decimal
	Quantity       int
	TextProcessing *TextProcessingInput
}

// PricedLineItem echoes the request plus every derived quantity. Monetary
// fields carry full decimal precision; rounding happens only at aggregation.
type PricedLineItem struct {
	Request LineItemRequest

	AreaM2       decimal.Decimal
	WeightKg     *decimal.Decimal
	VolumeM3     *decimal.Decimal
	PricingModel enums.PricingModel

	UnitPrice           decimal.Decimal
	DiscountRatePercent decimal.Decimal
	DiscountedUnitPrice decimal.Decimal

	CharacterCount       int
	EstimatedPerimeterMM *decimal.Decimal
	FinalPerimeterMM     *decimal.Decimal
	ProcessingCost       decimal.Decimal

	LineSubtotal decimal.Decimal
	Warnings     []string
}
