package materials

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/craftsign/signquote-backend/pkg/db/models"
)

// MaterialDTO is the public shape of a catalog material.
type MaterialDTO struct {
	ID                     uuid.UUID         `json:"id"`
	Name                   string            `json:"name"`
	PricingModel           string            `json:"pricing_model"`
	UnitPriceArea          *decimal.Decimal  `json:"unit_price_area,omitempty"`
	UnitPriceWeight        *decimal.Decimal  `json:"unit_price_weight,omitempty"`
	UnitPriceVolume        *decimal.Decimal  `json:"unit_price_volume,omitempty"`
	SpecificGravity        *decimal.Decimal  `json:"specific_gravity,omitempty"`
	ThicknessMM            *decimal.Decimal  `json:"thickness_mm,omitempty"`
	SupportsTextProcessing bool              `json:"supports_text_processing"`
	Description            *string           `json:"description,omitempty"`
	Active                 bool              `json:"active"`
	DiscountTiers          []DiscountTierDTO `json:"discount_tiers"`
	CreatedAt              time.Time         `json:"created_at"`
	UpdatedAt              time.Time         `json:"updated_at"`
}

// DiscountTierDTO represents one quantity band of a material.
type DiscountTierDTO struct {
	ID            uuid.UUID        `json:"id"`
	MinQuantity   int              `json:"min_quantity"`
	MaxQuantity   *int             `json:"max_quantity,omitempty"`
	DiscountType  string           `json:"discount_type"`
	DiscountRate  *decimal.Decimal `json:"discount_rate,omitempty"`
	DiscountPrice *decimal.Decimal `json:"discount_price,omitempty"`
}

// MaterialsPage pairs list results with the cursor for the next page.
type MaterialsPage struct {
	Materials  []MaterialDTO `json:"materials"`
	NextCursor string        `json:"next_cursor,omitempty"`
}

// NewMaterialDTO builds the public shape from the persisted model.
func NewMaterialDTO(material *models.Material) *MaterialDTO {
	if material == nil {
		return nil
	}
	tiers := make([]DiscountTierDTO, 0, len(material.DiscountTiers))
	for _, tier := range material.DiscountTiers {
		tiers = append(tiers, DiscountTierDTO{
			ID:            tier.ID,
			MinQuantity:   tier.MinQuantity,
			MaxQuantity:   tier.MaxQuantity,
			DiscountType:  tier.DiscountType.String(),
			DiscountRate:  tier.DiscountRate,
			DiscountPrice: tier.DiscountPrice,
		})
	}
	return &MaterialDTO{
		ID:                     material.ID,
		Name:                   material.Name,
		PricingModel:           material.PricingModel.String(),
		UnitPriceArea:          material.UnitPriceArea,
		UnitPriceWeight:        material.UnitPriceWeight,
		UnitPriceVolume:        material.UnitPriceVolume,
		SpecificGravity:        material.SpecificGravity,
		ThicknessMM:            material.ThicknessMM,
		SupportsTextProcessing: material.SupportsTextProcessing,
		Description:            material.Description,
		Active:                 material.Active,
		DiscountTiers:          tiers,
		CreatedAt:              material.CreatedAt,
		UpdatedAt:              material.UpdatedAt,
	}
}
