package materials

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/craftsign/signquote-backend/pkg/db/models"
	"github.com/craftsign/signquote-backend/pkg/enums"
)

func setupMaterialsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	materials := `
CREATE TABLE IF NOT EXISTS materials (
  id TEXT PRIMARY KEY,
  tenant_id TEXT NOT NULL,
  name TEXT NOT NULL,
  pricing_model TEXT NOT NULL DEFAULT 'area',
  unit_price_area NUMERIC,
  unit_price_weight NUMERIC,
  unit_price_volume NUMERIC,
  specific_gravity NUMERIC,
  thickness_mm NUMERIC,
  supports_text_processing INTEGER NOT NULL DEFAULT 0,
  description TEXT,
  active INTEGER NOT NULL DEFAULT 1,
  created_at DATETIME,
  updated_at DATETIME
);`
	tiers := `
CREATE TABLE IF NOT EXISTS material_discount_tiers (
  id TEXT PRIMARY KEY,
  material_id TEXT NOT NULL,
  min_quantity INTEGER NOT NULL,
  max_quantity INTEGER,
  discount_type TEXT NOT NULL DEFAULT 'rate',
  discount_rate NUMERIC,
  discount_price NUMERIC,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(materials).Error)
	require.NoError(t, db.Exec(tiers).Error)
	return db
}

func seedMaterial(t *testing.T, repo *Repository, tenantID uuid.UUID, name string, createdAt time.Time) *models.Material {
	t.Helper()
	material := &models.Material{
		ID:            uuid.New(),
		TenantID:      tenantID,
		Name:          name,
		PricingModel:  enums.PricingModelArea,
		UnitPriceArea: decPtr("5000"),
		Active:        true,
		CreatedAt:     createdAt,
		DiscountTiers: []models.MaterialDiscountTier{
			{ID: uuid.New(), MinQuantity: 20, DiscountType: enums.DiscountTypeRate, DiscountRate: decPtr("10")},
			{ID: uuid.New(), MinQuantity: 10, DiscountType: enums.DiscountTypeRate, DiscountRate: decPtr("5")},
		},
	}
	require.NoError(t, repo.Create(context.Background(), material))
	return material
}

func TestRepositoryCreateAndGet(t *testing.T) {
	db := setupMaterialsTestDB(t)
	repo := NewRepository(db)
	tenantID := uuid.New()

	created := seedMaterial(t, repo, tenantID, "acrylic panel", time.Now().UTC())

	got, err := repo.GetByID(context.Background(), tenantID, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "acrylic panel", got.Name)
	require.Len(t, got.DiscountTiers, 2)
	// preload orders by min_quantity
	assert.Equal(t, 10, got.DiscountTiers[0].MinQuantity)
	assert.Equal(t, 20, got.DiscountTiers[1].MinQuantity)

	_, err = repo.GetByID(context.Background(), uuid.New(), created.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepositoryUpdateReplacesTiers(t *testing.T) {
	db := setupMaterialsTestDB(t)
	repo := NewRepository(db)
	tenantID := uuid.New()

	material := seedMaterial(t, repo, tenantID, "acrylic panel", time.Now().UTC())

	material.Name = "cast acrylic panel"
	material.DiscountTiers = []models.MaterialDiscountTier{
		{MinQuantity: 50, DiscountType: enums.DiscountTypeRate, DiscountRate: decPtr("25")},
	}
	require.NoError(t, repo.Update(context.Background(), nil, material))

	got, err := repo.GetByID(context.Background(), tenantID, material.ID)
	require.NoError(t, err)
	assert.Equal(t, "cast acrylic panel", got.Name)
	require.Len(t, got.DiscountTiers, 1)
	assert.Equal(t, 50, got.DiscountTiers[0].MinQuantity)
}

func TestRepositoryListPaginates(t *testing.T) {
	db := setupMaterialsTestDB(t)
	repo := NewRepository(db)
	tenantID := uuid.New()

	base := time.Date(2026, 1, 6, 9, 0, 0, 0, time.UTC)
	seedMaterial(t, repo, tenantID, "panel a", base)
	seedMaterial(t, repo, tenantID, "panel b", base.Add(time.Minute))
	seedMaterial(t, repo, tenantID, "panel c", base.Add(2*time.Minute))
	seedMaterial(t, repo, uuid.New(), "other tenant", base.Add(3*time.Minute))

	page, err := repo.List(context.Background(), tenantID, "", 2)
	require.NoError(t, err)
	require.Len(t, page.Materials, 2)
	assert.Equal(t, "panel c", page.Materials[0].Name)
	assert.NotEmpty(t, page.NextCursor)

	rest, err := repo.List(context.Background(), tenantID, page.NextCursor, 2)
	require.NoError(t, err)
	require.Len(t, rest.Materials, 1)
	assert.Equal(t, "panel a", rest.Materials[0].Name)
	assert.Empty(t, rest.NextCursor)
}
