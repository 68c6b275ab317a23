package pricing

import (
	"testing"

	"github.com/craftsign/signquote-backend/pkg/enums"
	pkgerrors "github.com/craftsign/signquote-backend/pkg/errors"
)

func TestEstimatePerimeterFromCoefficient(t *testing.T) {
	t.Parallel()

	tp := &TextProcessingInput{
		Mode:         enums.TextProcessingModeCut,
		Content:      "あいう",
		TextHeightMM: dec("100"),
		CharClass:    enums.CharClassHiragana,
	}

	estimate, err := EstimatePerimeter(tp, dec("6.0"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if estimate.CharacterCount != 3 {
		t.Fatalf("expected 3 characters, got %d", estimate.CharacterCount)
	}
	// 100 * 3 * 6.0
	if !estimate.EstimatedPerimeterMM.Equal(dec("1800")) {
		t.Fatalf("expected perimeter 1800, got %s", estimate.EstimatedPerimeterMM)
	}
	if !estimate.ProcessingCost.Equal(dec("0")) {
		t.Fatalf("no perimeter unit price means zero cost, got %s", estimate.ProcessingCost)
	}
}

func TestEstimatePerimeterPricesAndFloors(t *testing.T) {
	t.Parallel()

	tp := &TextProcessingInput{
		Mode:               enums.TextProcessingModeCut,
		Content:            "あいう",
		TextHeightMM:       dec("100"),
		CharClass:          enums.CharClassHiragana,
		PerimeterUnitPrice: decPtr("2"),
	}
	estimate, err := EstimatePerimeter(tp, dec("6.0"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !estimate.ProcessingCost.Equal(dec("3600")) {
		t.Fatalf("expected cost 3600, got %s", estimate.ProcessingCost)
	}

	tp.PerimeterUnitPrice = decPtr("2.75")
	tp.TextHeightMM = dec("100.5")
	estimate, err = EstimatePerimeter(tp, dec("6.0"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// 100.5 * 3 * 6.0 = 1809, * 2.75 = 4974.75 -> 4974
	if !estimate.ProcessingCost.Equal(dec("4974")) {
		t.Fatalf("expected floored cost 4974, got %s", estimate.ProcessingCost)
	}
}

func TestEstimatePerimeterMeasuredOverridesEstimate(t *testing.T) {
	t.Parallel()

	tp := &TextProcessingInput{
		Mode:                enums.TextProcessingModeCut,
		Content:             "あいう",
		TextHeightMM:        dec("100"),
		CharClass:           enums.CharClassHiragana,
		MeasuredPerimeterMM: decPtr("2000"),
		PerimeterUnitPrice:  decPtr("2"),
	}
	estimate, err := EstimatePerimeter(tp, dec("6.0"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !estimate.FinalPerimeterMM.Equal(dec("2000")) {
		t.Fatalf("measured perimeter must win, got %s", estimate.FinalPerimeterMM)
	}
	if !estimate.ProcessingCost.Equal(dec("4000")) {
		t.Fatalf("expected cost 4000, got %s", estimate.ProcessingCost)
	}

	// non-positive measurement falls back to the estimate
	tp.MeasuredPerimeterMM = decPtr("0")
	estimate, err = EstimatePerimeter(tp, dec("6.0"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !estimate.FinalPerimeterMM.Equal(dec("1800")) {
		t.Fatalf("zero measurement must fall back, got %s", estimate.FinalPerimeterMM)
	}
}

func TestEstimatePerimeterCountsGraphemes(t *testing.T) {
	t.Parallel()

	tp := &TextProcessingInput{
		Mode:         enums.TextProcessingModeCut,
		Content:      "営業中",
		TextHeightMM: dec("50"),
		CharClass:    enums.CharClassKanjiNormal,
	}
	estimate, err := EstimatePerimeter(tp, dec("8.5"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if estimate.CharacterCount != 3 {
		t.Fatalf("multibyte content must count characters, not bytes: got %d", estimate.CharacterCount)
	}
}

func TestEstimatePerimeterValidation(t *testing.T) {
	t.Parallel()

	_, err := EstimatePerimeter(&TextProcessingInput{TextHeightMM: dec("100")}, dec("6.0"))
	if appErr := pkgerrors.As(err); appErr == nil || appErr.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for empty content, got %v", err)
	}

	_, err = EstimatePerimeter(&TextProcessingInput{Content: "A", TextHeightMM: dec("0")}, dec("6.0"))
	if appErr := pkgerrors.As(err); appErr == nil || appErr.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for zero height, got %v", err)
	}
}
