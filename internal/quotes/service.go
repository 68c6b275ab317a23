package quotes

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/craftsign/signquote-backend/internal/pricing"
	"github.com/craftsign/signquote-backend/pkg/db"
	"github.com/craftsign/signquote-backend/pkg/db/models"
	"github.com/craftsign/signquote-backend/pkg/enums"
	pkgerrors "github.com/craftsign/signquote-backend/pkg/errors"
)

// PriceQuoteInput is the full line-item set a caller wants finalized.
type PriceQuoteInput struct {
	CustomerName *string
	Notes        *string
	Items        []pricing.LineItemRequest
}

// Service turns line-item requests into persisted, numbered quotes.
type Service interface {
	PriceQuote(ctx context.Context, tenantID uuid.UUID, input PriceQuoteInput) (*models.Quote, error)
	PreviewQuote(ctx context.Context, tenantID uuid.UUID, input PriceQuoteInput) (*QuotePreviewDTO, error)
	RecalculateLineItem(ctx context.Context, tenantID uuid.UUID, req pricing.LineItemRequest) (*pricing.PricedLineItem, error)
	GetQuote(ctx context.Context, tenantID, quoteID uuid.UUID) (*models.Quote, error)
	ListQuotes(ctx context.Context, tenantID uuid.UUID, cursor string, limit int) (QuotesPageDTO, error)
	ReplaceLineItems(ctx context.Context, tenantID, quoteID uuid.UUID, items []pricing.LineItemRequest) (*models.Quote, error)
	UpdateStatus(ctx context.Context, tenantID, quoteID uuid.UUID, status enums.QuoteStatus) error
}

type service struct {
	repo       QuoteRepository
	tx         txRunner
	catalog    materialCatalog
	coeffs     coefficientResolver
	allocator  NumberAllocator
	metrics    quoteMetrics
	taxRate    decimal.Decimal
	maxRetries int
	now        func() time.Time
}

// NewService builds a quote service backed by the provided stack.
func NewService(repo QuoteRepository, tx txRunner, catalog materialCatalog, coeffs coefficientResolver, allocator NumberAllocator, metrics quoteMetrics, taxRate decimal.Decimal, maxRetries int) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("quote repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if catalog == nil {
		return nil, fmt.Errorf("material catalog required")
	}
	if coeffs == nil {
		return nil, fmt.Errorf("coefficient resolver required")
	}
	if allocator == nil {
		return nil, fmt.Errorf("number allocator required")
	}
	if taxRate.LessThan(decimal.Zero) {
		return nil, fmt.Errorf("tax rate must not be negative")
	}
	if maxRetries < 1 {
		return nil, fmt.Errorf("allocation retry cap must be at least 1")
	}
	return &service{
		repo:       repo,
		tx:         tx,
		catalog:    catalog,
		coeffs:     coeffs,
		allocator:  allocator,
		metrics:    metrics,
		taxRate:    taxRate,
		maxRetries: maxRetries,
		now:        time.Now,
	}, nil
}

func (s *service) PriceQuote(ctx context.Context, tenantID uuid.UUID, input PriceQuoteInput) (*models.Quote, error) {
	started := s.now()
	quote, err := s.priceQuote(ctx, tenantID, input)
	if s.metrics != nil {
		s.metrics.ObservePricingDuration("price_quote", s.now().Sub(started))
		if err != nil {
			s.metrics.IncQuotesPriced("error")
		} else {
			s.metrics.IncQuotesPriced("success")
		}
	}
	return quote, err
}

func (s *service) priceQuote(ctx context.Context, tenantID uuid.UUID, input PriceQuoteInput) (*models.Quote, error) {
	if tenantID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "tenant id is required")
	}
	if len(input.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "empty quote")
	}

	lines, err := s.priceLines(ctx, tenantID, input.Items)
	if err != nil {
		return nil, err
	}

	totals, err := pricing.AggregateQuote(lines, s.taxRate)
	if err != nil {
		return nil, err
	}

	quote := &models.Quote{
		TenantID:     tenantID,
		CustomerName: input.CustomerName,
		Status:       enums.QuoteStatusDraft,
		Subtotal:     totals.Subtotal,
		TaxRate:      totals.TaxRate,
		TaxAmount:    totals.TaxAmount,
		TotalAmount:  totals.TotalAmount,
		Notes:        input.Notes,
		LineItems:    buildLineItemModels(lines),
	}

	date := s.now().UTC()
	for attempt := 0; attempt < s.maxRetries; attempt++ {
		number, err := s.allocator.Next(ctx, tenantID, date)
		if err != nil {
			return nil, err
		}
		quote.QuoteNumber = number
		quote.ID = uuid.Nil

		err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
			return s.repo.Create(ctx, tx, quote)
		})
		if err == nil {
			return quote, nil
		}
		if !db.IsUniqueViolation(err, "uk_quotes_tenant_number") {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist quote")
		}
		if s.metrics != nil {
			s.metrics.IncAllocationRetry()
		}
	}

	if s.metrics != nil {
		s.metrics.IncAllocationExhaustion()
	}
	return nil, pkgerrors.New(pkgerrors.CodeResourceExhausted, "quote number allocation retries exhausted")
}

// PreviewQuote prices the full line-item set without persisting anything
// and without consuming a quote number.
func (s *service) PreviewQuote(ctx context.Context, tenantID uuid.UUID, input PriceQuoteInput) (*QuotePreviewDTO, error) {
	started := s.now()
	preview, err := s.previewQuote(ctx, tenantID, input)
	if s.metrics != nil {
		s.metrics.ObservePricingDuration("preview_quote", s.now().Sub(started))
	}
	return preview, err
}

func (s *service) previewQuote(ctx context.Context, tenantID uuid.UUID, input PriceQuoteInput) (*QuotePreviewDTO, error) {
	if tenantID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "tenant id is required")
	}
	if len(input.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "empty quote")
	}

	lines, err := s.priceLines(ctx, tenantID, input.Items)
	if err != nil {
		return nil, err
	}
	totals, err := pricing.AggregateQuote(lines, s.taxRate)
	if err != nil {
		return nil, err
	}

	dtos := make([]PricedLineDTO, 0, len(lines))
	for _, line := range lines {
		dtos = append(dtos, NewPricedLineDTO(line))
	}
	return &QuotePreviewDTO{
		Lines:       dtos,
		Subtotal:    totals.Subtotal,
		TaxRate:     totals.TaxRate,
		TaxAmount:   totals.TaxAmount,
		TotalAmount: totals.TotalAmount,
	}, nil
}

func (s *service) RecalculateLineItem(ctx context.Context, tenantID uuid.UUID, req pricing.LineItemRequest) (*pricing.PricedLineItem, error) {
	lines, err := s.priceLines(ctx, tenantID, []pricing.LineItemRequest{req})
	if err != nil {
		return nil, err
	}
	return lines[0], nil
}

// priceLines is the single pricing path shared by finalize, preview, and
// line-item replacement. A failure on any line aborts the whole set.
func (s *service) priceLines(ctx context.Context, tenantID uuid.UUID, items []pricing.LineItemRequest) ([]*pricing.PricedLineItem, error) {
	lookup, err := s.buildCoefficientLookup(ctx, tenantID, items)
	if err != nil {
		return nil, err
	}

	lines := make([]*pricing.PricedLineItem, 0, len(items))
	for idx, item := range items {
		material, tiers, err := s.catalog.GetWithTiers(ctx, tenantID, item.MaterialID)
		if err != nil {
			return nil, lineError(idx, err)
		}
		priced, err := pricing.CalculateLineItem(material, tiers, lookup, item)
		if err != nil {
			return nil, lineError(idx, err)
		}
		lines = append(lines, priced)
	}
	return lines, nil
}

func (s *service) buildCoefficientLookup(ctx context.Context, tenantID uuid.UUID, items []pricing.LineItemRequest) (pricing.CoefficientLookup, error) {
	classes := map[enums.CharClass]decimal.Decimal{}
	for idx, item := range items {
		if item.TextProcessing == nil {
			continue
		}
		class := item.TextProcessing.CharClass
		if _, ok := classes[class]; ok {
			continue
		}
		coefficient, err := s.coeffs.Resolve(ctx, tenantID, class)
		if err != nil {
			if appErr := pkgerrors.As(err); appErr != nil && appErr.Code() == pkgerrors.CodeNotFound {
				return nil, lineError(idx, pkgerrors.New(pkgerrors.CodeValidation, "character coefficient not found"))
			}
			return nil, err
		}
		classes[class] = coefficient
	}
	return func(class enums.CharClass) (decimal.Decimal, bool) {
		coefficient, ok := classes[class]
		return coefficient, ok
	}, nil
}

func (s *service) GetQuote(ctx context.Context, tenantID, quoteID uuid.UUID) (*models.Quote, error) {
	quote, err := s.repo.GetByID(ctx, tenantID, quoteID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "quote not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load quote")
	}
	return quote, nil
}

func (s *service) ListQuotes(ctx context.Context, tenantID uuid.UUID, cursor string, limit int) (QuotesPageDTO, error) {
	page, err := s.repo.List(ctx, tenantID, cursor, limit)
	if err != nil {
		return QuotesPageDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list quotes")
	}
	return page, nil
}

// ReplaceLineItems swaps the full line-item set and recomputes totals in
// one transaction. The quote number is preserved; partial edits do not
// exist as an operation.
func (s *service) ReplaceLineItems(ctx context.Context, tenantID, quoteID uuid.UUID, items []pricing.LineItemRequest) (*models.Quote, error) {
	if len(items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "empty quote")
	}

	quote, err := s.GetQuote(ctx, tenantID, quoteID)
	if err != nil {
		return nil, err
	}

	lines, err := s.priceLines(ctx, tenantID, items)
	if err != nil {
		return nil, err
	}
	totals, err := pricing.AggregateQuote(lines, quote.TaxRate)
	if err != nil {
		return nil, err
	}

	quote.Subtotal = totals.Subtotal
	quote.TaxAmount = totals.TaxAmount
	quote.TotalAmount = totals.TotalAmount
	lineModels := buildLineItemModels(lines)

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		return s.repo.ReplaceLineItems(ctx, tx, quote, lineModels)
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "replace line items")
	}

	return s.GetQuote(ctx, tenantID, quoteID)
}

func (s *service) UpdateStatus(ctx context.Context, tenantID, quoteID uuid.UUID, status enums.QuoteStatus) error {
	if !status.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "unknown quote status")
	}
	affected, err := s.repo.UpdateStatus(ctx, tenantID, quoteID, status.String())
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update quote status")
	}
	if affected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "quote not found")
	}
	return nil
}

func lineError(index int, err error) error {
	if appErr := pkgerrors.As(err); appErr != nil {
		return appErr.WithDetails(map[string]any{"line_index": index})
	}
	return err
}
