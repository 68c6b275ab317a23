package quotes

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/craftsign/signquote-backend/pkg/db/models"
	"github.com/craftsign/signquote-backend/pkg/pagination"
)

// Repository encapsulates quote persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a quote repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts the quote and its line items. Callers pass the transaction
// handle so the insert shares fate with the sequence bump.
func (r *Repository) Create(ctx context.Context, tx *gorm.DB, quote *models.Quote) error {
	handle := r.handle(tx)
	return handle.WithContext(ctx).Create(quote).Error
}

// GetByID loads one tenant-scoped quote with its line items in position order.
func (r *Repository) GetByID(ctx context.Context, tenantID, quoteID uuid.UUID) (*models.Quote, error) {
	var quote models.Quote
	err := r.db.WithContext(ctx).
		Preload("LineItems", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Where("tenant_id = ? AND id = ?", tenantID, quoteID).
		First(&quote).Error
	if err != nil {
		return nil, err
	}
	return &quote, nil
}

// QuotesPageDTO is one cursor page of quotes.
type QuotesPageDTO struct {
	Quotes     []models.Quote
	NextCursor string
}

// List returns tenant quotes newest first, cursor-paginated.
func (r *Repository) List(ctx context.Context, tenantID uuid.UUID, cursor string, limit int) (QuotesPageDTO, error) {
	normalizedLimit := pagination.NormalizeLimit(limit)
	limitWithBuffer := pagination.LimitWithBuffer(limit)
	decodedCursor, err := pagination.ParseCursor(strings.TrimSpace(cursor))
	if err != nil {
		return QuotesPageDTO{}, err
	}

	query := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("created_at DESC, id DESC").
		Limit(limitWithBuffer)

	if decodedCursor != nil {
		query = query.Where("(created_at, id) < (?, ?)", decodedCursor.CreatedAt, decodedCursor.ID)
	}

	var quotes []models.Quote
	if err := query.Find(&quotes).Error; err != nil {
		return QuotesPageDTO{}, err
	}

	page := QuotesPageDTO{Quotes: quotes}
	if len(quotes) > normalizedLimit {
		page.Quotes = quotes[:normalizedLimit]
		last := page.Quotes[len(page.Quotes)-1]
		page.NextCursor = pagination.EncodeCursor(pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID})
	}
	return page, nil
}

// ReplaceLineItems swaps the full line-item set and rewrites the totals
// inside the supplied transaction.
func (r *Repository) ReplaceLineItems(ctx context.Context, tx *gorm.DB, quote *models.Quote, items []models.QuoteLineItem) error {
	handle := r.handle(tx).WithContext(ctx)

	if err := handle.Where("quote_id = ?", quote.ID).Delete(&models.QuoteLineItem{}).Error; err != nil {
		return err
	}
	for i := range items {
		items[i].QuoteID = quote.ID
	}
	if len(items) > 0 {
		if err := handle.Create(&items).Error; err != nil {
			return err
		}
	}

	return handle.Model(&models.Quote{}).
		Where("id = ?", quote.ID).
		Updates(map[string]any{
			"subtotal":     quote.Subtotal,
			"tax_rate":     quote.TaxRate,
			"tax_amount":   quote.TaxAmount,
			"total_amount": quote.TotalAmount,
		}).Error
}

// UpdateStatus sets the quote lifecycle status.
func (r *Repository) UpdateStatus(ctx context.Context, tenantID, quoteID uuid.UUID, status string) (int64, error) {
	result := r.db.WithContext(ctx).Model(&models.Quote{}).
		Where("tenant_id = ? AND id = ?", tenantID, quoteID).
		Update("status", status)
	return result.RowsAffected, result.Error
}

func (r *Repository) handle(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}
