package models

import (
	"time"

	"github.com/google/uuid"
)

// QuoteSequence is the per-tenant-per-day counter backing quote number
// allocation. The composite key scopes contention to a single (tenant, date)
// pair; a new day starts a fresh row, so no reset operation exists.
type QuoteSequence struct {
	TenantID  uuid.UUID `gorm:"column:tenant_id;type:uuid;primaryKey"`
	SeqDate   string    `gorm:"column:seq_date;type:char(8);primaryKey"`
	LastValue int64     `gorm:"column:last_value;not null;default:0"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (QuoteSequence) TableName() string {
	return "quote_sequences"
}
