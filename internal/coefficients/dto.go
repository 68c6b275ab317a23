package coefficients

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/craftsign/signquote-backend/pkg/db/models"
)

// CoefficientDTO is the public shape of a perimeter coefficient. Global
// default rows report scope "global"; tenant overrides report "tenant".
type CoefficientDTO struct {
	ID          uuid.UUID       `json:"id"`
	CharClass   string          `json:"char_class"`
	Coefficient decimal.Decimal `json:"coefficient"`
	Scope       string          `json:"scope"`
	Description *string         `json:"description,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// NewCoefficientDTO builds the public shape from the persisted model.
func NewCoefficientDTO(row *models.CharacterCoefficient) *CoefficientDTO {
	if row == nil {
		return nil
	}
	scope := "global"
	if row.TenantID != nil {
		scope = "tenant"
	}
	return &CoefficientDTO{
		ID:          row.ID,
		CharClass:   row.CharClass.String(),
		Coefficient: row.Coefficient,
		Scope:       scope,
		Description: row.Description,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
}
