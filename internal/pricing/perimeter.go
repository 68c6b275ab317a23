package pricing

import (
	"github.com/rivo/uniseg"
	"github.com/shopspring/decimal"

	pkgerrors "github.com/craftsign/signquote-backend/pkg/errors"
)

// PerimeterEstimate prices the cut-path surcharge of lettering. A positive
// human-entered measurement always overrides the model estimate.
type PerimeterEstimate struct {
	CharacterCount       int
	EstimatedPerimeterMM decimal.Decimal
	FinalPerimeterMM     decimal.Decimal
	ProcessingCost       decimal.Decimal
}

// EstimatePerimeter derives the cut perimeter of the text block from the
// per-class coefficient, then prices it. Cost floors to whole currency units.
func EstimatePerimeter(tp *TextProcessingInput, coefficient decimal.Decimal) (*PerimeterEstimate, error) {
	if tp == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "text processing input is required")
	}
	if tp.Content == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "text content is required")
	}
	if tp.TextHeightMM.LessThanOrEqual(decimal.Zero) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "text height must be positive")
	}

	// grapheme clusters, not bytes or runes
	count := uniseg.GraphemeClusterCount(tp.Content)

	estimated := tp.TextHeightMM.Mul(decimal.NewFromInt(int64(count))).Mul(coefficient)

	final := estimated
	if tp.MeasuredPerimeterMM != nil && tp.MeasuredPerimeterMM.GreaterThan(decimal.Zero) {
		final = *tp.MeasuredPerimeterMM
	}

	cost := decimal.Zero
	if tp.PerimeterUnitPrice != nil {
		cost = final.Mul(*tp.PerimeterUnitPrice).Floor()
	}

	return &PerimeterEstimate{
		CharacterCount:       count,
		EstimatedPerimeterMM: estimated,
		FinalPerimeterMM:     final,
		ProcessingCost:       cost,
	}, nil
}
