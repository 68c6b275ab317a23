package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/craftsign/signquote-backend/pkg/enums"
)

// MaterialDiscountTier captures quantity-tiered pricing per material.
// MaxQuantity nil means unbounded above MinQuantity.
type MaterialDiscountTier struct {
	ID            uuid.UUID          `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	MaterialID    uuid.UUID          `gorm:"column:material_id;type:uuid;not null;index"`
	MinQuantity   int                `gorm:"column:min_quantity;not null"`
	MaxQuantity   *int               `gorm:"column:max_quantity"`
	DiscountType  enums.DiscountType `gorm:"column:discount_type;type:discount_type;not null;default:'rate'"`
	DiscountRate  *decimal.Decimal   `gorm:"column:discount_rate;type:numeric(5,2)"`
	DiscountPrice *decimal.Decimal   `gorm:"column:discount_price;type:numeric(10,2)"`
	CreatedAt     time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}

func (MaterialDiscountTier) TableName() string {
	return "material_discount_tiers"
}
