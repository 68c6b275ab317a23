package pricing

import (
	"testing"

	pkgerrors "github.com/craftsign/signquote-backend/pkg/errors"
)

func TestAggregateQuoteFloorsTax(t *testing.T) {
	t.Parallel()

	lines := []*PricedLineItem{
		{LineSubtotal: dec("10005")},
		{LineSubtotal: dec("4990")},
	}
	totals, err := AggregateQuote(lines, dec("0.10"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !totals.Subtotal.Equal(dec("14995")) {
		t.Fatalf("expected subtotal 14995, got %s", totals.Subtotal)
	}
	// 1499.5 floors to 1499
	if !totals.TaxAmount.Equal(dec("1499")) {
		t.Fatalf("expected tax 1499, got %s", totals.TaxAmount)
	}
	if !totals.TotalAmount.Equal(dec("16494")) {
		t.Fatalf("expected total 16494, got %s", totals.TotalAmount)
	}
}

func TestAggregateQuoteEmptyFails(t *testing.T) {
	t.Parallel()

	_, err := AggregateQuote(nil, dec("0.10"))
	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if appErr.Message() != "empty quote" {
		t.Fatalf("expected message %q, got %q", "empty quote", appErr.Message())
	}
}

func TestAggregateQuoteSubtotalBeforeRounding(t *testing.T) {
	t.Parallel()

	// two lines whose fractional parts only trigger a floor once summed
	lines := []*PricedLineItem{
		{LineSubtotal: dec("100.6")},
		{LineSubtotal: dec("100.6")},
	}
	totals, err := AggregateQuote(lines, dec("0.10"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !totals.Subtotal.Equal(dec("201.2")) {
		t.Fatalf("line subtotals must not round before summing, got %s", totals.Subtotal)
	}
	// 20.12 floors to 20
	if !totals.TaxAmount.Equal(dec("20")) {
		t.Fatalf("expected tax 20, got %s", totals.TaxAmount)
	}
}
