package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/craftsign/signquote-backend/pkg/enums"
)

// Material is the tenant-scoped fabrication material master. Exactly one of
// the three unit prices must be populated, matching PricingModel.
type Material struct {
	ID                     uuid.UUID              `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	TenantID               uuid.UUID              `gorm:"column:tenant_id;type:uuid;not null;index"`
	Name                   string                 `gorm:"column:name;not null"`
	PricingModel           enums.PricingModel     `gorm:"column:pricing_model;type:pricing_model;not null;default:'area'"`
	UnitPriceArea          *decimal.Decimal       `gorm:"column:unit_price_area;type:numeric(10,2)"`
	UnitPriceWeight        *decimal.Decimal       `gorm:"column:unit_price_weight;type:numeric(10,2)"`
	UnitPriceVolume        *decimal.Decimal       `gorm:"column:unit_price_volume;type:numeric(10,2)"`
	SpecificGravity        *decimal.Decimal       `gorm:"column:specific_gravity;type:numeric(8,4)"`
	ThicknessMM            *decimal.Decimal       `gorm:"column:thickness_mm;type:numeric(8,2)"`
	SupportsTextProcessing bool                   `gorm:"column:supports_text_processing;not null;default:false"`
	Description            *string                `gorm:"column:description"`
	Active                 bool                   `gorm:"column:active;not null;default:true"`
	DiscountTiers          []MaterialDiscountTier `gorm:"foreignKey:MaterialID;constraint:OnDelete:CASCADE"`
	CreatedAt              time.Time              `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt              time.Time              `gorm:"column:updated_at;autoUpdateTime"`
}

func (Material) TableName() string {
	return "materials"
}
