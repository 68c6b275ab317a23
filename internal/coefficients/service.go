package coefficients

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/craftsign/signquote-backend/pkg/db/models"
	"github.com/craftsign/signquote-backend/pkg/enums"
	pkgerrors "github.com/craftsign/signquote-backend/pkg/errors"
)

// CoefficientRepository is the persistence surface the service drives.
type CoefficientRepository interface {
	ListVisible(ctx context.Context, tenantID uuid.UUID) ([]models.CharacterCoefficient, error)
	FindForClass(ctx context.Context, tenantID uuid.UUID, class enums.CharClass) (*models.CharacterCoefficient, error)
	Create(ctx context.Context, row *models.CharacterCoefficient) error
	GetTenantRow(ctx context.Context, tenantID, id uuid.UUID) (*models.CharacterCoefficient, error)
	Update(ctx context.Context, row *models.CharacterCoefficient) error
	Delete(ctx context.Context, tenantID, id uuid.UUID) (int64, error)
}

// CoefficientInput carries a tenant override create or update.
type CoefficientInput struct {
	CharClass   enums.CharClass
	Coefficient decimal.Decimal
	Description *string
}

// Service manages perimeter coefficients. Global default rows are visible
// to every tenant but immutable through this service; tenants shadow them
// with their own rows per character class.
type Service interface {
	List(ctx context.Context, tenantID uuid.UUID) ([]models.CharacterCoefficient, error)
	Resolve(ctx context.Context, tenantID uuid.UUID, class enums.CharClass) (decimal.Decimal, error)
	Create(ctx context.Context, tenantID uuid.UUID, input CoefficientInput) (*models.CharacterCoefficient, error)
	Update(ctx context.Context, tenantID, id uuid.UUID, input CoefficientInput) (*models.CharacterCoefficient, error)
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
}

type service struct {
	repo CoefficientRepository
}

// NewService builds a coefficient service.
func NewService(repo CoefficientRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("coefficient repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) List(ctx context.Context, tenantID uuid.UUID) ([]models.CharacterCoefficient, error) {
	rows, err := s.repo.ListVisible(ctx, tenantID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list coefficients")
	}
	return rows, nil
}

// Resolve returns the effective coefficient for the class: the tenant row
// when one exists, otherwise the global default.
func (s *service) Resolve(ctx context.Context, tenantID uuid.UUID, class enums.CharClass) (decimal.Decimal, error) {
	if !class.IsValid() {
		return decimal.Zero, pkgerrors.New(pkgerrors.CodeValidation, "unknown character class")
	}
	row, err := s.repo.FindForClass(ctx, tenantID, class)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return decimal.Zero, pkgerrors.New(pkgerrors.CodeNotFound, "character coefficient not found")
		}
		return decimal.Zero, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "resolve coefficient")
	}
	return row.Coefficient, nil
}

func (s *service) Create(ctx context.Context, tenantID uuid.UUID, input CoefficientInput) (*models.CharacterCoefficient, error) {
	if tenantID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "tenant id is required")
	}
	if err := validateInput(input); err != nil {
		return nil, err
	}

	row := &models.CharacterCoefficient{
		TenantID:    &tenantID,
		CharClass:   input.CharClass,
		Coefficient: input.Coefficient,
		Description: input.Description,
	}
	if err := s.repo.Create(ctx, row); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create coefficient")
	}
	return row, nil
}

func (s *service) Update(ctx context.Context, tenantID, id uuid.UUID, input CoefficientInput) (*models.CharacterCoefficient, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}
	row, err := s.repo.GetTenantRow(ctx, tenantID, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "character coefficient not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load coefficient")
	}

	row.Coefficient = input.Coefficient
	row.Description = input.Description
	if err := s.repo.Update(ctx, row); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update coefficient")
	}
	return row, nil
}

// Delete removes a tenant override. Global rows never match the tenant
// filter, so they cannot be deleted here.
func (s *service) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	affected, err := s.repo.Delete(ctx, tenantID, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete coefficient")
	}
	if affected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "character coefficient not found")
	}
	return nil
}

func validateInput(input CoefficientInput) error {
	if !input.CharClass.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "unknown character class")
	}
	if input.Coefficient.LessThanOrEqual(decimal.Zero) {
		return pkgerrors.New(pkgerrors.CodeValidation, "coefficient must be positive")
	}
	return nil
}
