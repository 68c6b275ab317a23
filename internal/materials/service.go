package materials

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/craftsign/signquote-backend/pkg/db/models"
	"github.com/craftsign/signquote-backend/pkg/enums"
	pkgerrors "github.com/craftsign/signquote-backend/pkg/errors"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// MaterialRepository is the persistence surface the service drives.
type MaterialRepository interface {
	Create(ctx context.Context, material *models.Material) error
	Update(ctx context.Context, tx *gorm.DB, material *models.Material) error
	GetByID(ctx context.Context, tenantID, materialID uuid.UUID) (*models.Material, error)
	List(ctx context.Context, tenantID uuid.UUID, cursor string, limit int) (MaterialsPageDTO, error)
}

// MaterialInput carries a create or update request. Tiers replace the
// existing set wholesale.
type MaterialInput struct {
	Name                   string
	PricingModel           enums.PricingModel
	UnitPriceArea          *decimal.Decimal
	UnitPriceWeight        *decimal.Decimal
	UnitPriceVolume        *decimal.Decimal
	SpecificGravity        *decimal.Decimal
	ThicknessMM            *decimal.Decimal
	SupportsTextProcessing bool
	Description            *string
	Active                 *bool
	DiscountTiers          []models.MaterialDiscountTier
}

// Service manages the tenant material catalog.
type Service interface {
	Create(ctx context.Context, tenantID uuid.UUID, input MaterialInput) (*models.Material, []string, error)
	Update(ctx context.Context, tenantID, materialID uuid.UUID, input MaterialInput) (*models.Material, []string, error)
	Get(ctx context.Context, tenantID, materialID uuid.UUID) (*models.Material, error)
	List(ctx context.Context, tenantID uuid.UUID, cursor string, limit int) (MaterialsPageDTO, error)
	GetWithTiers(ctx context.Context, tenantID, materialID uuid.UUID) (*models.Material, []models.MaterialDiscountTier, error)
}

type service struct {
	repo MaterialRepository
	tx   txRunner
}

// NewService builds a material catalog service.
func NewService(repo MaterialRepository, tx txRunner) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("material repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{repo: repo, tx: tx}, nil
}

func (s *service) Create(ctx context.Context, tenantID uuid.UUID, input MaterialInput) (*models.Material, []string, error) {
	if tenantID == uuid.Nil {
		return nil, nil, pkgerrors.New(pkgerrors.CodeValidation, "tenant id is required")
	}
	warnings, err := validateInput(input)
	if err != nil {
		return nil, nil, err
	}

	material := buildMaterial(tenantID, input)
	if err := s.repo.Create(ctx, material); err != nil {
		return nil, nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create material")
	}
	return material, warnings, nil
}

func (s *service) Update(ctx context.Context, tenantID, materialID uuid.UUID, input MaterialInput) (*models.Material, []string, error) {
	existing, err := s.Get(ctx, tenantID, materialID)
	if err != nil {
		return nil, nil, err
	}
	warnings, err := validateInput(input)
	if err != nil {
		return nil, nil, err
	}

	material := buildMaterial(tenantID, input)
	material.ID = existing.ID
	material.CreatedAt = existing.CreatedAt

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		return s.repo.Update(ctx, tx, material)
	})
	if err != nil {
		return nil, nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update material")
	}
	updated, err := s.Get(ctx, tenantID, materialID)
	if err != nil {
		return nil, nil, err
	}
	return updated, warnings, nil
}

func (s *service) Get(ctx context.Context, tenantID, materialID uuid.UUID) (*models.Material, error) {
	material, err := s.repo.GetByID(ctx, tenantID, materialID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "material not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load material")
	}
	return material, nil
}

func (s *service) List(ctx context.Context, tenantID uuid.UUID, cursor string, limit int) (MaterialsPageDTO, error) {
	page, err := s.repo.List(ctx, tenantID, cursor, limit)
	if err != nil {
		return MaterialsPageDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list materials")
	}
	return page, nil
}

// GetWithTiers is the read path the pricing engine consumes. Inactive
// materials are refused here so stale catalog rows cannot enter new quotes.
func (s *service) GetWithTiers(ctx context.Context, tenantID, materialID uuid.UUID) (*models.Material, []models.MaterialDiscountTier, error) {
	material, err := s.Get(ctx, tenantID, materialID)
	if err != nil {
		return nil, nil, err
	}
	if !material.Active {
		return nil, nil, pkgerrors.New(pkgerrors.CodeValidation, "material is inactive")
	}
	return material, material.DiscountTiers, nil
}

func buildMaterial(tenantID uuid.UUID, input MaterialInput) *models.Material {
	active := true
	if input.Active != nil {
		active = *input.Active
	}
	return &models.Material{
		TenantID:               tenantID,
		Name:                   input.Name,
		PricingModel:           input.PricingModel,
		UnitPriceArea:          input.UnitPriceArea,
		UnitPriceWeight:        input.UnitPriceWeight,
		UnitPriceVolume:        input.UnitPriceVolume,
		SpecificGravity:        input.SpecificGravity,
		ThicknessMM:            input.ThicknessMM,
		SupportsTextProcessing: input.SupportsTextProcessing,
		Description:            input.Description,
		Active:                 active,
		DiscountTiers:          input.DiscountTiers,
	}
}

// validateInput enforces the per-model field requirements and inspects the
// tier set. Overlapping tiers are legal but reported as warnings; the
// resolver breaks ties deterministically.
func validateInput(input MaterialInput) ([]string, error) {
	if input.Name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "material name is required")
	}
	if !input.PricingModel.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown pricing model")
	}

	switch input.PricingModel {
	case enums.PricingModelArea:
		if !positive(input.UnitPriceArea) {
			return nil, pkgerrors.New(pkgerrors.CodeConfiguration, "area model requires a positive unit_price_area")
		}
	case enums.PricingModelWeight:
		if !positive(input.UnitPriceWeight) {
			return nil, pkgerrors.New(pkgerrors.CodeConfiguration, "weight model requires a positive unit_price_weight")
		}
		if !positive(input.SpecificGravity) || !positive(input.ThicknessMM) {
			return nil, pkgerrors.New(pkgerrors.CodeConfiguration, "missing weight parameters")
		}
	case enums.PricingModelVolume:
		if !positive(input.UnitPriceVolume) {
			return nil, pkgerrors.New(pkgerrors.CodeConfiguration, "volume model requires a positive unit_price_volume")
		}
		if !positive(input.ThicknessMM) {
			return nil, pkgerrors.New(pkgerrors.CodeConfiguration, "missing thickness")
		}
	}

	return validateTiers(input.DiscountTiers)
}

func validateTiers(tiers []models.MaterialDiscountTier) ([]string, error) {
	var warnings []string

	sorted := make([]models.MaterialDiscountTier, len(tiers))
	copy(sorted, tiers)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].MinQuantity < sorted[j].MinQuantity })

	for i, tier := range sorted {
		if tier.MinQuantity < 1 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "tier min_quantity must be at least 1")
		}
		if tier.MaxQuantity != nil && *tier.MaxQuantity < tier.MinQuantity {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "tier max_quantity below min_quantity")
		}
		switch tier.DiscountType {
		case enums.DiscountTypeRate:
			if tier.DiscountRate == nil {
				return nil, pkgerrors.New(pkgerrors.CodeValidation, "rate tier requires discount_rate")
			}
		case enums.DiscountTypePrice:
			if tier.DiscountPrice == nil {
				return nil, pkgerrors.New(pkgerrors.CodeValidation, "price tier requires discount_price")
			}
		default:
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown discount type")
		}

		if i > 0 {
			prev := sorted[i-1]
			if prev.MaxQuantity == nil || *prev.MaxQuantity >= tier.MinQuantity {
				warnings = append(warnings, fmt.Sprintf("tiers starting at %d and %d overlap; the higher min_quantity wins", prev.MinQuantity, tier.MinQuantity))
			}
		}
	}
	return warnings, nil
}

func positive(value *decimal.Decimal) bool {
	return value != nil && value.GreaterThan(decimal.Zero)
}
