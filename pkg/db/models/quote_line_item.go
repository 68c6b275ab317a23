package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/craftsign/signquote-backend/pkg/enums"
)

// QuoteLineItem snapshots one priced sign panel inside a quote, including the
// physical quantities and the text-processing inputs that produced its price.
type QuoteLineItem struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	QuoteID    uuid.UUID `gorm:"column:quote_id;type:uuid;not null;index"`
	Position   int       `gorm:"column:position;not null"`
	MaterialID uuid.UUID `gorm:"column:material_id;type:uuid;not null"`

	WidthMM  decimal.Decimal `gorm:"column:width_mm;type:numeric(10,2);not null"`
	HeightMM decimal.Decimal `gorm:"column:height_mm;type:numeric(10,2);not null"`
	Quantity int             `gorm:"column:quantity;not null;default:1"`

	AreaM2       decimal.Decimal    `gorm:"column:area_m2;type:numeric(10,4);not null"`
	WeightKg     *decimal.Decimal   `gorm:"column:weight_kg;type:numeric(10,4)"`
	VolumeM3     *decimal.Decimal   `gorm:"column:volume_m3;type:numeric(10,6)"`
	PricingModel enums.PricingModel `gorm:"column:pricing_model;type:pricing_model;not null"`

	UnitPrice           decimal.Decimal `gorm:"column:unit_price;type:numeric(10,2);not null"`
	DiscountRatePercent decimal.Decimal `gorm:"column:discount_rate_percent;type:numeric(5,2);not null;default:0"`
	DiscountedUnitPrice decimal.Decimal `gorm:"column:discounted_unit_price;type:numeric(10,2);not null"`
	ProcessingCost      decimal.Decimal `gorm:"column:processing_cost;type:numeric(12,2);not null;default:0"`
	LineSubtotal        decimal.Decimal `gorm:"column:line_subtotal;type:numeric(12,2);not null"`

	TextMode             *enums.TextProcessingMode `gorm:"column:text_mode;type:text_processing_mode"`
	TextContent          *string                   `gorm:"column:text_content"`
	TextHeightMM         *decimal.Decimal          `gorm:"column:text_height_mm;type:numeric(8,2)"`
	TextWidthMM          *decimal.Decimal          `gorm:"column:text_width_mm;type:numeric(8,2)"`
	CharClass            *enums.CharClass          `gorm:"column:char_class;type:char_class"`
	MeasuredPerimeterMM  *decimal.Decimal          `gorm:"column:measured_perimeter_mm;type:numeric(10,2)"`
	EstimatedPerimeterMM *decimal.Decimal          `gorm:"column:estimated_perimeter_mm;type:numeric(10,2)"`
	PerimeterUnitPrice   *decimal.Decimal          `gorm:"column:perimeter_unit_price;type:numeric(10,2)"`

	Warnings pq.StringArray `gorm:"column:warnings;type:text[];default:ARRAY[]::text[]"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (QuoteLineItem) TableName() string {
	return "quote_line_items"
}
