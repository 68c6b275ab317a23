package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/craftsign/signquote-backend/api/middleware"
	"github.com/craftsign/signquote-backend/api/responses"
	"github.com/craftsign/signquote-backend/api/validators"
	"github.com/craftsign/signquote-backend/internal/pricing"
	quotesvc "github.com/craftsign/signquote-backend/internal/quotes"
	"github.com/craftsign/signquote-backend/pkg/enums"
	pkgerrors "github.com/craftsign/signquote-backend/pkg/errors"
	"github.com/craftsign/signquote-backend/pkg/logger"
	"github.com/craftsign/signquote-backend/pkg/pagination"
)

// CreateQuote prices the submitted line items, allocates a quote number
// and persists the result.
func CreateQuote(svc quotesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID, ok := requireTenant(w, r, logg)
		if !ok {
			return
		}

		var payload createQuoteRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		quote, err := svc.PriceQuote(r.Context(), tenantID, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if logg != nil {
			logg.Info(logg.WithQuoteNumber(r.Context(), quote.QuoteNumber), "quote.finalized")
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, quotesvc.NewQuoteDTO(quote))
	}
}

// PreviewQuote prices the submitted line items without persisting them.
func PreviewQuote(svc quotesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID, ok := requireTenant(w, r, logg)
		if !ok {
			return
		}

		var payload createQuoteRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		preview, err := svc.PreviewQuote(r.Context(), tenantID, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, preview)
	}
}

func ListQuotes(svc quotesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID, ok := requireTenant(w, r, logg)
		if !ok {
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		cursor := strings.TrimSpace(r.URL.Query().Get("cursor"))

		page, err := svc.ListQuotes(r.Context(), tenantID, cursor, limit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		summaries := make([]quotesvc.QuoteSummaryDTO, 0, len(page.Quotes))
		for _, quote := range page.Quotes {
			summaries = append(summaries, quotesvc.NewQuoteSummaryDTO(quote))
		}
		responses.WriteSuccess(w, quotesvc.QuotesPage{Quotes: summaries, NextCursor: page.NextCursor})
	}
}

func GetQuote(svc quotesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID, ok := requireTenant(w, r, logg)
		if !ok {
			return
		}

		quoteID, err := parsePathUUID(r, "quoteId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		quote, err := svc.GetQuote(r.Context(), tenantID, quoteID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, quotesvc.NewQuoteDTO(quote))
	}
}

// ReplaceQuoteLineItems swaps the full line-item set and reprices the
// quote under its existing number.
func ReplaceQuoteLineItems(svc quotesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID, ok := requireTenant(w, r, logg)
		if !ok {
			return
		}

		quoteID, err := parsePathUUID(r, "quoteId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload replaceLineItemsRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		items, err := toLineItemRequests(payload.Items)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		quote, err := svc.ReplaceLineItems(r.Context(), tenantID, quoteID, items)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, quotesvc.NewQuoteDTO(quote))
	}
}

func UpdateQuoteStatus(svc quotesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID, ok := requireTenant(w, r, logg)
		if !ok {
			return
		}

		quoteID, err := parsePathUUID(r, "quoteId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateQuoteStatusRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		status, err := enums.ParseQuoteStatus(strings.TrimSpace(payload.Status))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status"))
			return
		}

		if err := svc.UpdateStatus(r.Context(), tenantID, quoteID, status); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": status.String()})
	}
}

type createQuoteRequest struct {
	CustomerName *string           `json:"customer_name,omitempty"`
	Notes        *string           `json:"notes,omitempty"`
	Items        []lineItemRequest `json:"items" validate:"required,min=1,dive"`
}

type replaceLineItemsRequest struct {
	Items []lineItemRequest `json:"items" validate:"required,min=1,dive"`
}

type updateQuoteStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type lineItemRequest struct {
	MaterialID     string                 `json:"material_id" validate:"required,uuid"`
	WidthMM        decimal.Decimal        `json:"width_mm" validate:"required"`
	HeightMM       decimal.Decimal        `json:"height_mm" validate:"required"`
	Quantity       int                    `json:"quantity" validate:"required,min=1"`
	TextProcessing *textProcessingRequest `json:"text_processing,omitempty"`
}

type textProcessingRequest struct {
	Mode                string           `json:"mode" validate:"required"`
	Content             string           `json:"content" validate:"required"`
	TextHeightMM        decimal.Decimal  `json:"text_height_mm" validate:"required"`
	TextWidthMM         *decimal.Decimal `json:"text_width_mm,omitempty"`
	CharClass           string           `json:"char_class" validate:"required"`
	MeasuredPerimeterMM *decimal.Decimal `json:"measured_perimeter_mm,omitempty"`
	PerimeterUnitPrice  *decimal.Decimal `json:"perimeter_unit_price,omitempty"`
}

func (r createQuoteRequest) toInput() (quotesvc.PriceQuoteInput, error) {
	items, err := toLineItemRequests(r.Items)
	if err != nil {
		return quotesvc.PriceQuoteInput{}, err
	}
	return quotesvc.PriceQuoteInput{
		CustomerName: r.CustomerName,
		Notes:        r.Notes,
		Items:        items,
	}, nil
}

func toLineItemRequests(items []lineItemRequest) ([]pricing.LineItemRequest, error) {
	result := make([]pricing.LineItemRequest, 0, len(items))
	for idx, item := range items {
		materialID, err := uuid.Parse(item.MaterialID)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid material id").
				WithDetails(map[string]any{"line_index": idx})
		}

		req := pricing.LineItemRequest{
			MaterialID: materialID,
			WidthMM:    item.WidthMM,
			HeightMM:   item.HeightMM,
			Quantity:   item.Quantity,
		}

		if tp := item.TextProcessing; tp != nil {
			mode, err := enums.ParseTextProcessingMode(strings.TrimSpace(tp.Mode))
			if err != nil {
				return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid text processing mode").
					WithDetails(map[string]any{"line_index": idx})
			}
			class, err := enums.ParseCharClass(strings.TrimSpace(tp.CharClass))
			if err != nil {
				return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid character class").
					WithDetails(map[string]any{"line_index": idx})
			}
			req.TextProcessing = &pricing.TextProcessingInput{
				Mode:                mode,
				Content:             tp.Content,
				TextHeightMM:        tp.TextHeightMM,
				TextWidthMM:         tp.TextWidthMM,
				CharClass:           class,
				MeasuredPerimeterMM: tp.MeasuredPerimeterMM,
				PerimeterUnitPrice:  tp.PerimeterUnitPrice,
			}
		}

		result = append(result, req)
	}
	return result, nil
}

func requireTenant(w http.ResponseWriter, r *http.Request, logg *logger.Logger) (uuid.UUID, bool) {
	tenantID := middleware.TenantIDFromContext(r.Context())
	if tenantID == uuid.Nil {
		responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "tenant context missing"))
		return uuid.Nil, false
	}
	return tenantID, true
}

func parsePathUUID(r *http.Request, param string) (uuid.UUID, error) {
	raw := chi.URLParam(r, param)
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid id").
			WithDetails(map[string]any{"param": param})
	}
	return id, nil
}
