package coefficients

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/craftsign/signquote-backend/pkg/db/models"
	"github.com/craftsign/signquote-backend/pkg/enums"
)

// Repository encapsulates character coefficient persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a coefficient repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListVisible returns every row the tenant can see: its own rows plus the
// global defaults.
func (r *Repository) ListVisible(ctx context.Context, tenantID uuid.UUID) ([]models.CharacterCoefficient, error) {
	var rows []models.CharacterCoefficient
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? OR tenant_id IS NULL", tenantID).
		Order("char_class ASC, tenant_id ASC NULLS LAST").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// FindForClass returns the tenant row for the class if one exists, else the
// global row, else gorm.ErrRecordNotFound.
func (r *Repository) FindForClass(ctx context.Context, tenantID uuid.UUID, class enums.CharClass) (*models.CharacterCoefficient, error) {
	var row models.CharacterCoefficient
	err := r.db.WithContext(ctx).
		Where("char_class = ? AND (tenant_id = ? OR tenant_id IS NULL)", class, tenantID).
		Order("tenant_id ASC NULLS LAST").
		First(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *Repository) Create(ctx context.Context, row *models.CharacterCoefficient) error {
	return r.db.WithContext(ctx).Create(row).Error
}

// GetTenantRow loads a row only when it belongs to the tenant; global rows
// are not reachable for mutation.
func (r *Repository) GetTenantRow(ctx context.Context, tenantID, id uuid.UUID) (*models.CharacterCoefficient, error) {
	var row models.CharacterCoefficient
	err := r.db.WithContext(ctx).
		Where("id = ? AND tenant_id = ?", id, tenantID).
		First(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *Repository) Update(ctx context.Context, row *models.CharacterCoefficient) error {
	return r.db.WithContext(ctx).Model(row).
		Updates(map[string]any{
			"coefficient": row.Coefficient,
			"description": row.Description,
		}).Error
}

func (r *Repository) Delete(ctx context.Context, tenantID, id uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("id = ? AND tenant_id = ?", id, tenantID).
		Delete(&models.CharacterCoefficient{})
	return result.RowsAffected, result.Error
}
