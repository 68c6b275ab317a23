package controllers

import (
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/craftsign/signquote-backend/api/responses"
	"github.com/craftsign/signquote-backend/api/validators"
	materialsvc "github.com/craftsign/signquote-backend/internal/materials"
	"github.com/craftsign/signquote-backend/pkg/db/models"
	"github.com/craftsign/signquote-backend/pkg/enums"
	pkgerrors "github.com/craftsign/signquote-backend/pkg/errors"
	"github.com/craftsign/signquote-backend/pkg/logger"
	"github.com/craftsign/signquote-backend/pkg/pagination"
)

func CreateMaterial(svc materialsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID, ok := requireTenant(w, r, logg)
		if !ok {
			return
		}

		var payload materialRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		material, warnings, err := svc.Create(r.Context(), tenantID, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, materialResponse{
			Material: materialsvc.NewMaterialDTO(material),
			Warnings: warnings,
		})
	}
}

func UpdateMaterial(svc materialsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID, ok := requireTenant(w, r, logg)
		if !ok {
			return
		}

		materialID, err := parsePathUUID(r, "materialId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload materialRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		material, warnings, err := svc.Update(r.Context(), tenantID, materialID, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, materialResponse{
			Material: materialsvc.NewMaterialDTO(material),
			Warnings: warnings,
		})
	}
}

func GetMaterial(svc materialsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID, ok := requireTenant(w, r, logg)
		if !ok {
			return
		}

		materialID, err := parsePathUUID(r, "materialId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		material, err := svc.Get(r.Context(), tenantID, materialID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, materialsvc.NewMaterialDTO(material))
	}
}

func ListMaterials(svc materialsvc.Service, logg *logger.Logger) http.HandlerFunc {
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

		page, err := svc.List(r.Context(), tenantID, cursor, limit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dtos := make([]materialsvc.MaterialDTO, 0, len(page.Materials))
		for i := range page.Materials {
			dtos = append(dtos, *materialsvc.NewMaterialDTO(&page.Materials[i]))
		}
		responses.WriteSuccess(w, materialsvc.MaterialsPage{Materials: dtos, NextCursor: page.NextCursor})
	}
}

type materialResponse struct {
	Material *materialsvc.MaterialDTO `json:"material"`
	Warnings []string                 `json:"warnings,omitempty"`
}

type materialRequest struct {
	Name                   string               `json:"name" validate:"required"`
	PricingModel           string               `json:"pricing_model" validate:"required"`
	UnitPriceArea          *decimal.Decimal     `json:"unit_price_area,omitempty"`
	UnitPriceWeight        *decimal.Decimal     `json:"unit_price_weight,omitempty"`
	UnitPriceVolume        *decimal.Decimal     `json:"unit_price_volume,omitempty"`
	SpecificGravity        *decimal.Decimal     `json:"specific_gravity,omitempty"`
	ThicknessMM            *decimal.Decimal     `json:"thickness_mm,omitempty"`
	SupportsTextProcessing bool                 `json:"supports_text_processing"`
	Description            *string              `json:"description,omitempty"`
	Active                 *bool                `json:"active,omitempty"`
	DiscountTiers          []discountTierInput  `json:"discount_tiers,omitempty" validate:"omitempty,dive"`
}

type discountTierInput struct {
	MinQuantity   int              `json:"min_quantity" validate:"required,min=1"`
	MaxQuantity   *int             `json:"max_quantity,omitempty"`
	DiscountType  string           `json:"discount_type" validate:"required"`
	DiscountRate  *decimal.Decimal `json:"discount_rate,omitempty"`
	DiscountPrice *decimal.Decimal `json:"discount_price,omitempty"`
}

func (r materialRequest) toInput() (materialsvc.MaterialInput, error) {
	model, err := enums.ParsePricingModel(strings.TrimSpace(r.PricingModel))
	if err != nil {
		return materialsvc.MaterialInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid pricing model")
	}

	tiers := make([]models.MaterialDiscountTier, 0, len(r.DiscountTiers))
	for _, tier := range r.DiscountTiers {
		discountType, err := enums.ParseDiscountType(strings.TrimSpace(tier.DiscountType))
		if err != nil {
			return materialsvc.MaterialInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid discount type")
		}
		tiers = append(tiers, models.MaterialDiscountTier{
			MinQuantity:   tier.MinQuantity,
			MaxQuantity:   tier.MaxQuantity,
			DiscountType:  discountType,
			DiscountRate:  tier.DiscountRate,
			DiscountPrice: tier.DiscountPrice,
		})
	}

	return materialsvc.MaterialInput{
		Name:                   strings.TrimSpace(r.Name),
		PricingModel:           model,
		UnitPriceArea:          r.UnitPriceArea,
		UnitPriceWeight:        r.UnitPriceWeight,
		UnitPriceVolume:        r.UnitPriceVolume,
		SpecificGravity:        r.SpecificGravity,
		ThicknessMM:            r.ThicknessMM,
		SupportsTextProcessing: r.SupportsTextProcessing,
		Description:            r.Description,
		Active:                 r.Active,
		DiscountTiers:          tiers,
	}, nil
}
