package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/craftsign/signquote-backend/pkg/enums"
)

// CharacterCoefficient maps a character class to its cut-perimeter
// contribution per character per mm of text height. TenantID nil marks the
// shared global default; a tenant row shadows the global one for that class.
type CharacterCoefficient struct {
	ID          uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	TenantID    *uuid.UUID      `gorm:"column:tenant_id;type:uuid;index"`
	CharClass   enums.CharClass `gorm:"column:char_class;type:char_class;not null"`
	Coefficient decimal.Decimal `gorm:"column:coefficient;type:numeric(8,4);not null"`
	Description *string         `gorm:"column:description"`
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

func (CharacterCoefficient) TableName() string {
	return "character_coefficients"
}

// IsGlobal reports whether the row is the shared default for its class.
func (c CharacterCoefficient) IsGlobal() bool {
	return c.TenantID == nil
}
