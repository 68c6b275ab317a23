package quotes

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/craftsign/signquote-backend/internal/pricing"
	"github.com/craftsign/signquote-backend/pkg/db/models"
)

// QuoteDTO is the public shape of a persisted quote.
type QuoteDTO struct {
	ID           uuid.UUID          `json:"id"`
	QuoteNumber  string             `json:"quote_number"`
	CustomerName *string            `json:"customer_name,omitempty"`
	Status       string             `json:"status"`
	Subtotal     decimal.Decimal    `json:"subtotal"`
	TaxRate      decimal.Decimal    `json:"tax_rate"`
	TaxAmount    decimal.Decimal    `json:"tax_amount"`
	TotalAmount  decimal.Decimal    `json:"total_amount"`
	Notes        *string            `json:"notes,omitempty"`
	LineItems    []QuoteLineItemDTO `json:"line_items"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
}

// QuoteLineItemDTO surfaces the pricing snapshot of one line.
type QuoteLineItemDTO struct {
	ID         uuid.UUID `json:"id"`
	Position   int       `json:"position"`
	MaterialID uuid.UUID `json:"material_id"`

	WidthMM  decimal.Decimal `json:"width_mm"`
	HeightMM decimal.Decimal `json:"height_mm"`
	Quantity int             `json:"quantity"`

	AreaM2       decimal.Decimal  `json:"area_m2"`
	WeightKg     *decimal.Decimal `json:"weight_kg,omitempty"`
	VolumeM3     *decimal.Decimal `json:"volume_m3,omitempty"`
	PricingModel string           `json:"pricing_model"`

	UnitPrice           decimal.Decimal `json:"unit_price"`
	DiscountRatePercent decimal.Decimal `json:"discount_rate_percent"`
	DiscountedUnitPrice decimal.Decimal `json:"discounted_unit_price"`
	ProcessingCost      decimal.Decimal `json:"processing_cost"`
	LineSubtotal        decimal.Decimal `json:"line_subtotal"`

	TextMode             *string          `json:"text_mode,omitempty"`
	TextContent          *string          `json:"text_content,omitempty"`
	TextHeightMM         *decimal.Decimal `json:"text_height_mm,omitempty"`
	TextWidthMM          *decimal.Decimal `json:"text_width_mm,omitempty"`
	CharClass            *string          `json:"char_class,omitempty"`
	MeasuredPerimeterMM  *decimal.Decimal `json:"measured_perimeter_mm,omitempty"`
	EstimatedPerimeterMM *decimal.Decimal `json:"estimated_perimeter_mm,omitempty"`
	PerimeterUnitPrice   *decimal.Decimal `json:"perimeter_unit_price,omitempty"`

	Warnings []string `json:"warnings"`
}

// PricedLineDTO is a non-persisted pricing result used by previews.
type PricedLineDTO struct {
	MaterialID uuid.UUID       `json:"material_id"`
	WidthMM    decimal.Decimal `json:"width_mm"`
	HeightMM   decimal.Decimal `json:"height_mm"`
	Quantity   int             `json:"quantity"`

	AreaM2       decimal.Decimal  `json:"area_m2"`
	WeightKg     *decimal.Decimal `json:"weight_kg,omitempty"`
	VolumeM3     *decimal.Decimal `json:"volume_m3,omitempty"`
	PricingModel string           `json:"pricing_model"`

	UnitPrice           decimal.Decimal `json:"unit_price"`
	DiscountRatePercent decimal.Decimal `json:"discount_rate_percent"`
	DiscountedUnitPrice decimal.Decimal `json:"discounted_unit_price"`

	CharacterCount       int              `json:"character_count,omitempty"`
	EstimatedPerimeterMM *decimal.Decimal `json:"estimated_perimeter_mm,omitempty"`
	FinalPerimeterMM     *decimal.Decimal `json:"final_perimeter_mm,omitempty"`
	ProcessingCost       decimal.Decimal  `json:"processing_cost"`

	LineSubtotal decimal.Decimal `json:"line_subtotal"`
	Warnings     []string        `json:"warnings"`
}

// QuotePreviewDTO aggregates priced lines without allocating a number.
type QuotePreviewDTO struct {
	Lines       []PricedLineDTO `json:"lines"`
	Subtotal    decimal.Decimal `json:"subtotal"`
	TaxRate     decimal.Decimal `json:"tax_rate"`
	TaxAmount   decimal.Decimal `json:"tax_amount"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

// QuoteSummaryDTO is the list-view shape without line items.
type QuoteSummaryDTO struct {
	ID           uuid.UUID       `json:"id"`
	QuoteNumber  string          `json:"quote_number"`
	CustomerName *string         `json:"customer_name,omitempty"`
	Status       string          `json:"status"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
	CreatedAt    time.Time       `json:"created_at"`
}

// QuotesPage pairs list results with the cursor for the next page.
type QuotesPage struct {
	Quotes     []QuoteSummaryDTO `json:"quotes"`
	NextCursor string            `json:"next_cursor,omitempty"`
}

// NewQuoteDTO builds the public shape from the persisted model.
func NewQuoteDTO(quote *models.Quote) *QuoteDTO {
	if quote == nil {
		return nil
	}
	items := make([]QuoteLineItemDTO, 0, len(quote.LineItems))
	for _, item := range quote.LineItems {
		items = append(items, newLineItemDTO(item))
	}
	return &QuoteDTO{
		ID:           quote.ID,
		QuoteNumber:  quote.QuoteNumber,
		CustomerName: quote.CustomerName,
		Status:       quote.Status.String(),
		Subtotal:     quote.Subtotal,
		TaxRate:      quote.TaxRate,
		TaxAmount:    quote.TaxAmount,
		TotalAmount:  quote.TotalAmount,
		Notes:        quote.Notes,
		LineItems:    items,
		CreatedAt:    quote.CreatedAt,
		UpdatedAt:    quote.UpdatedAt,
	}
}

func newLineItemDTO(item models.QuoteLineItem) QuoteLineItemDTO {
	dto := QuoteLineItemDTO{
		ID:                   item.ID,
		Position:             item.Position,
		MaterialID:           item.MaterialID,
		WidthMM:              item.WidthMM,
		HeightMM:             item.HeightMM,
		Quantity:             item.Quantity,
		AreaM2:               item.AreaM2,
		WeightKg:             item.WeightKg,
		VolumeM3:             item.VolumeM3,
		PricingModel:         item.PricingModel.String(),
		UnitPrice:            item.UnitPrice,
		DiscountRatePercent:  item.DiscountRatePercent,
		DiscountedUnitPrice:  item.DiscountedUnitPrice,
		ProcessingCost:       item.ProcessingCost,
		LineSubtotal:         item.LineSubtotal,
		TextContent:          item.TextContent,
		TextHeightMM:         item.TextHeightMM,
		TextWidthMM:          item.TextWidthMM,
		MeasuredPerimeterMM:  item.MeasuredPerimeterMM,
		EstimatedPerimeterMM: item.EstimatedPerimeterMM,
		PerimeterUnitPrice:   item.PerimeterUnitPrice,
		Warnings:             append([]string{}, item.Warnings...),
	}
	if item.TextMode != nil {
		mode := item.TextMode.String()
		dto.TextMode = &mode
	}
	if item.CharClass != nil {
		class := item.CharClass.String()
		dto.CharClass = &class
	}
	return dto
}

// NewPricedLineDTO builds the preview shape from an in-memory pricing result.
func NewPricedLineDTO(line *pricing.PricedLineItem) PricedLineDTO {
	return PricedLineDTO{
		MaterialID:           line.Request.MaterialID,
		WidthMM:              line.Request.WidthMM,
		HeightMM:             line.Request.HeightMM,
		Quantity:             line.Request.Quantity,
		AreaM2:               line.AreaM2,
		WeightKg:             line.WeightKg,
		VolumeM3:             line.VolumeM3,
		PricingModel:         line.PricingModel.String(),
		UnitPrice:            line.UnitPrice,
		DiscountRatePercent:  line.DiscountRatePercent,
		DiscountedUnitPrice:  line.DiscountedUnitPrice,
		CharacterCount:       line.CharacterCount,
		EstimatedPerimeterMM: line.EstimatedPerimeterMM,
		FinalPerimeterMM:     line.FinalPerimeterMM,
		ProcessingCost:       line.ProcessingCost,
		LineSubtotal:         line.LineSubtotal,
		Warnings:             append([]string{}, line.Warnings...),
	}
}

// NewQuoteSummaryDTO builds the list-view shape.
func NewQuoteSummaryDTO(quote models.Quote) QuoteSummaryDTO {
	return QuoteSummaryDTO{
		ID:           quote.ID,
		QuoteNumber:  quote.QuoteNumber,
		CustomerName: quote.CustomerName,
		Status:       quote.Status.String(),
		TotalAmount:  quote.TotalAmount,
		CreatedAt:    quote.CreatedAt,
	}
}
