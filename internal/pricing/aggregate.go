package pricing

import (
	"github.com/shopspring/decimal"

	pkgerrors "github.com/craftsign/signquote-backend/pkg/errors"
)

// QuoteTotals is the folded result of a full line-item set.
type QuoteTotals struct {
	Subtotal    decimal.Decimal
	TaxRate     decimal.Decimal
	TaxAmount   decimal.Decimal
	TotalAmount decimal.Decimal
}

// AggregateQuote sums line subtotals and applies the tax rate. Tax floors
// to whole currency units per the fiscal convention already in force.
func AggregateQuote(lines []*PricedLineItem, taxRate decimal.Decimal) (*QuoteTotals, error) {
	if len(lines) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "empty quote")
	}

	subtotal := decimal.Zero
	for _, line := range lines {
		subtotal = subtotal.Add(line.LineSubtotal)
	}

	taxAmount := subtotal.Mul(taxRate).Floor()

	return &QuoteTotals{
		Subtotal:    subtotal,
		TaxRate:     taxRate,
		TaxAmount:   taxAmount,
		TotalAmount: subtotal.Add(taxAmount),
	}, nil
}
