package quotes

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/craftsign/signquote-backend/pkg/db/models"
	"github.com/craftsign/signquote-backend/pkg/enums"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// QuoteRepository is the persistence surface the service drives.
type QuoteRepository interface {
	Create(ctx context.Context, tx *gorm.DB, quote *models.Quote) error
	GetByID(ctx context.Context, tenantID, quoteID uuid.UUID) (*models.Quote, error)
	List(ctx context.Context, tenantID uuid.UUID, cursor string, limit int) (QuotesPageDTO, error)
	ReplaceLineItems(ctx context.Context, tx *gorm.DB, quote *models.Quote, items []models.QuoteLineItem) error
	UpdateStatus(ctx context.Context, tenantID, quoteID uuid.UUID, status string) (int64, error)
}

type materialCatalog interface {
	GetWithTiers(ctx context.Context, tenantID, materialID uuid.UUID) (*models.Material, []models.MaterialDiscountTier, error)
}

type coefficientResolver interface {
	Resolve(ctx context.Context, tenantID uuid.UUID, class enums.CharClass) (decimal.Decimal, error)
}

type quoteMetrics interface {
	ObservePricingDuration(operation string, duration time.Duration)
	IncQuotesPriced(outcome string)
	IncAllocationRetry()
	IncAllocationExhaustion()
}
