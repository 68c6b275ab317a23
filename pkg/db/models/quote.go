package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/craftsign/signquote-backend/pkg/enums"
)

// Quote is a finalized, numbered collection of priced line items. Monetary
// columns are snapshots taken at pricing time and are never re-derived from
// the live material catalog.
type Quote struct {
	ID           uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	TenantID     uuid.UUID         `gorm:"column:tenant_id;type:uuid;not null;uniqueIndex:uk_quotes_tenant_number"`
	QuoteNumber  string            `gorm:"column:quote_number;not null;uniqueIndex:uk_quotes_tenant_number"`
	CustomerName *string           `gorm:"column:customer_name"`
	Status       enums.QuoteStatus `gorm:"column:status;type:quote_status;not null;default:'draft'"`
	Subtotal     decimal.Decimal   `gorm:"column:subtotal;type:numeric(12,2);not null"`
	TaxRate      decimal.Decimal   `gorm:"column:tax_rate;type:numeric(5,4);not null"`
	TaxAmount    decimal.Decimal   `gorm:"column:tax_amount;type:numeric(12,2);not null"`
	TotalAmount  decimal.Decimal   `gorm:"column:total_amount;type:numeric(12,2);not null"`
	Notes        *string           `gorm:"column:notes"`
	LineItems    []QuoteLineItem   `gorm:"foreignKey:QuoteID;constraint:OnDelete:CASCADE"`
	CreatedAt    time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}

func (Quote) TableName() string {
	return "quotes"
}
