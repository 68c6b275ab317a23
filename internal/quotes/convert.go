package quotes

import (
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/craftsign/signquote-backend/internal/pricing"
	"github.com/craftsign/signquote-backend/pkg/db/models"
)

// buildLineItemModels snapshots priced lines into persistence rows. Every
// derived value is copied; historical quotes never re-read the catalog.
func buildLineItemModels(lines []*pricing.PricedLineItem) []models.QuoteLineItem {
	items := make([]models.QuoteLineItem, 0, len(lines))
	for position, line := range lines {
		item := models.QuoteLineItem{
			Position:            position + 1,
			MaterialID:          line.Request.MaterialID,
			WidthMM:             line.Request.WidthMM,
			HeightMM:            line.Request.HeightMM,
			Quantity:            line.Request.Quantity,
			AreaM2:              line.AreaM2,
			WeightKg:            copyDecimalPtr(line.WeightKg),
			VolumeM3:            copyDecimalPtr(line.VolumeM3),
			PricingModel:        line.PricingModel,
			UnitPrice:           line.UnitPrice,
			DiscountRatePercent: line.DiscountRatePercent,
			DiscountedUnitPrice: line.DiscountedUnitPrice,
			ProcessingCost:      line.ProcessingCost,
			LineSubtotal:        line.LineSubtotal,
			Warnings:            pq.StringArray(line.Warnings),
		}
		if tp := line.Request.TextProcessing; tp != nil {
			mode := tp.Mode
			class := tp.CharClass
			item.TextMode = &mode
			item.TextContent = strPtr(tp.Content)
			item.TextHeightMM = copyDecimal(tp.TextHeightMM)
			item.TextWidthMM = copyDecimalPtr(tp.TextWidthMM)
			item.CharClass = &class
			item.MeasuredPerimeterMM = copyDecimalPtr(tp.MeasuredPerimeterMM)
			item.EstimatedPerimeterMM = copyDecimalPtr(line.EstimatedPerimeterMM)
			item.PerimeterUnitPrice = copyDecimalPtr(tp.PerimeterUnitPrice)
		}
		if item.Warnings == nil {
			item.Warnings = pq.StringArray{}
		}
		items = append(items, item)
	}
	return items
}

func copyDecimal(value decimal.Decimal) *decimal.Decimal {
	return &value
}

func copyDecimalPtr(src *decimal.Decimal) *decimal.Decimal {
	if src == nil {
		return nil
	}
	value := *src
	return &value
}

func strPtr(value string) *string {
	return &value
}
