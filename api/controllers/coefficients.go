package controllers

import (
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/craftsign/signquote-backend/api/responses"
	"github.com/craftsign/signquote-backend/api/validators"
	coefficientsvc "github.com/craftsign/signquote-backend/internal/coefficients"
	"github.com/craftsign/signquote-backend/pkg/enums"
	pkgerrors "github.com/craftsign/signquote-backend/pkg/errors"
	"github.com/craftsign/signquote-backend/pkg/logger"
)

// ListCoefficients returns the coefficients visible to the tenant: its own
// overrides plus the global defaults it has not shadowed.
func ListCoefficients(svc coefficientsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID, ok := requireTenant(w, r, logg)
		if !ok {
			return
		}

		rows, err := svc.List(r.Context(), tenantID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dtos := make([]coefficientsvc.CoefficientDTO, 0, len(rows))
		for i := range rows {
			dtos = append(dtos, *coefficientsvc.NewCoefficientDTO(&rows[i]))
		}
		responses.WriteSuccess(w, dtos)
	}
}

func CreateCoefficient(svc coefficientsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID, ok := requireTenant(w, r, logg)
		if !ok {
			return
		}

		var payload coefficientRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		row, err := svc.Create(r.Context(), tenantID, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, coefficientsvc.NewCoefficientDTO(row))
	}
}

func UpdateCoefficient(svc coefficientsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID, ok := requireTenant(w, r, logg)
		if !ok {
			return
		}

		id, err := parsePathUUID(r, "coefficientId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload coefficientRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		row, err := svc.Update(r.Context(), tenantID, id, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, coefficientsvc.NewCoefficientDTO(row))
	}
}

func DeleteCoefficient(svc coefficientsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID, ok := requireTenant(w, r, logg)
		if !ok {
			return
		}

		id, err := parsePathUUID(r, "coefficientId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), tenantID, id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

type coefficientRequest struct {
	CharClass   string          `json:"char_class" validate:"required"`
	Coefficient decimal.Decimal `json:"coefficient" validate:"required"`
	Description *string         `json:"description,omitempty"`
}

func (r coefficientRequest) toInput() (coefficientsvc.CoefficientInput, error) {
	class, err := enums.ParseCharClass(strings.TrimSpace(r.CharClass))
	if err != nil {
		return coefficientsvc.CoefficientInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid character class")
	}
	return coefficientsvc.CoefficientInput{
		CharClass:   class,
		Coefficient: r.Coefficient,
		Description: r.Description,
	}, nil
}
