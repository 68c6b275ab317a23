package materials

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/craftsign/signquote-backend/pkg/db/models"
	"github.com/craftsign/signquote-backend/pkg/pagination"
)

// Repository encapsulates material catalog persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a material repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, material *models.Material) error {
	return r.db.WithContext(ctx).Create(material).Error
}

// Update rewrites the material row and replaces its tier set.
func (r *Repository) Update(ctx context.Context, tx *gorm.DB, material *models.Material) error {
	handle := r.handle(tx).WithContext(ctx)

	if err := handle.Where("material_id = ?", material.ID).Delete(&models.MaterialDiscountTier{}).Error; err != nil {
		return err
	}
	for i := range material.DiscountTiers {
		material.DiscountTiers[i].MaterialID = material.ID
		material.DiscountTiers[i].ID = uuid.New()
	}
	return handle.Session(&gorm.Session{FullSaveAssociations: true}).Save(material).Error
}

// GetByID loads one tenant material with tiers ordered by min_quantity.
func (r *Repository) GetByID(ctx context.Context, tenantID, materialID uuid.UUID) (*models.Material, error) {
	var material models.Material
	err := r.db.WithContext(ctx).
		Preload("DiscountTiers", func(db *gorm.DB) *gorm.DB {
			return db.Order("min_quantity ASC")
		}).
		Where("tenant_id = ? AND id = ?", tenantID, materialID).
		First(&material).Error
	if err != nil {
		return nil, err
	}
	return &material, nil
}

// MaterialsPageDTO is one cursor page of materials.
type MaterialsPageDTO struct {
	Materials  []models.Material
	NextCursor string
}

// List returns tenant materials newest first, cursor-paginated. Inactive
// materials are included; callers filter on Active when quoting.
func (r *Repository) List(ctx context.Context, tenantID uuid.UUID, cursor string, limit int) (MaterialsPageDTO, error) {
	normalizedLimit := pagination.NormalizeLimit(limit)
	limitWithBuffer := pagination.LimitWithBuffer(limit)
	decodedCursor, err := pagination.ParseCursor(strings.TrimSpace(cursor))
	if err != nil {
		return MaterialsPageDTO{}, err
	}

	query := r.db.WithContext(ctx).
		Preload("DiscountTiers", func(db *gorm.DB) *gorm.DB {
			return db.Order("min_quantity ASC")
		}).
		Where("tenant_id = ?", tenantID).
		Order("created_at DESC, id DESC").
		Limit(limitWithBuffer)

	if decodedCursor != nil {
		query = query.Where("(created_at, id) < (?, ?)", decodedCursor.CreatedAt, decodedCursor.ID)
	}

	var materials []models.Material
	if err := query.Find(&materials).Error; err != nil {
		return MaterialsPageDTO{}, err
	}

	page := MaterialsPageDTO{Materials: materials}
	if len(materials) > normalizedLimit {
		page.Materials = materials[:normalizedLimit]
		last := page.Materials[len(page.Materials)-1]
		page.NextCursor = pagination.EncodeCursor(pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID})
	}
	return page, nil
}

func (r *Repository) handle(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}
