package coefficients

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/craftsign/signquote-backend/pkg/db/models"
	"github.com/craftsign/signquote-backend/pkg/enums"
	pkgerrors "github.com/craftsign/signquote-backend/pkg/errors"
)

func dec(value string) decimal.Decimal {
	d, err := decimal.NewFromString(value)
	if err != nil {
		panic(err)
	}
	return d
}

type stubRepo struct {
	rows    []models.CharacterCoefficient
	created *models.CharacterCoefficient
	deleted int64
}

func (s *stubRepo) ListVisible(ctx context.Context, tenantID uuid.UUID) ([]models.CharacterCoefficient, error) {
	return s.rows, nil
}

// FindForClass mirrors the SQL ordering: tenant row first, then global.
func (s *stubRepo) FindForClass(ctx context.Context, tenantID uuid.UUID, class enums.CharClass) (*models.CharacterCoefficient, error) {
	var global *models.CharacterCoefficient
	for i := range s.rows {
		row := &s.rows[i]
		if row.CharClass != class {
			continue
		}
		if row.TenantID != nil && *row.TenantID == tenantID {
			return row, nil
		}
		if row.TenantID == nil {
			global = row
		}
	}
	if global != nil {
		return global, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubRepo) Create(ctx context.Context, row *models.CharacterCoefficient) error {
	s.created = row
	return nil
}

func (s *stubRepo) GetTenantRow(ctx context.Context, tenantID, id uuid.UUID) (*models.CharacterCoefficient, error) {
	for i := range s.rows {
		row := &s.rows[i]
		if row.ID == id && row.TenantID != nil && *row.TenantID == tenantID {
			return row, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubRepo) Update(ctx context.Context, row *models.CharacterCoefficient) error {
	return nil
}

func (s *stubRepo) Delete(ctx context.Context, tenantID, id uuid.UUID) (int64, error) {
	return s.deleted, nil
}

func newTestService(t *testing.T, repo CoefficientRepository) Service {
	t.Helper()
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("building service: %v", err)
	}
	return svc
}

func TestResolveTenantRowShadowsGlobal(t *testing.T) {
	tenantID := uuid.New()
	repo := &stubRepo{rows: []models.CharacterCoefficient{
		{ID: uuid.New(), CharClass: enums.CharClassHiragana, Coefficient: dec("6.0")},
		{ID: uuid.New(), TenantID: &tenantID, CharClass: enums.CharClassHiragana, Coefficient: dec("7.2")},
	}}
	svc := newTestService(t, repo)

	got, err := svc.Resolve(context.Background(), tenantID, enums.CharClassHiragana)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Equal(dec("7.2")) {
		t.Fatalf("tenant override must shadow global, got %s", got)
	}

	// another tenant only sees the global default
	got, err = svc.Resolve(context.Background(), uuid.New(), enums.CharClassHiragana)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Equal(dec("6.0")) {
		t.Fatalf("expected global fallback 6.0, got %s", got)
	}
}

func TestResolveUnknownClass(t *testing.T) {
	svc := newTestService(t, &stubRepo{})

	_, err := svc.Resolve(context.Background(), uuid.New(), enums.CharClass("cuneiform"))
	if appErr := pkgerrors.As(err); appErr == nil || appErr.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}

	_, err = svc.Resolve(context.Background(), uuid.New(), enums.CharClassSymbol)
	if appErr := pkgerrors.As(err); appErr == nil || appErr.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found for missing rows, got %v", err)
	}
}

func TestCreateValidates(t *testing.T) {
	repo := &stubRepo{}
	svc := newTestService(t, repo)

	tenantID := uuid.New()
	row, err := svc.Create(context.Background(), tenantID, CoefficientInput{
		CharClass:   enums.CharClassKatakana,
		Coefficient: dec("5.5"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if row.TenantID == nil || *row.TenantID != tenantID {
		t.Fatalf("created rows must be tenant scoped")
	}

	_, err = svc.Create(context.Background(), tenantID, CoefficientInput{
		CharClass:   enums.CharClassKatakana,
		Coefficient: dec("0"),
	})
	if appErr := pkgerrors.As(err); appErr == nil || appErr.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for non-positive coefficient, got %v", err)
	}
}

func TestUpdateRefusesGlobalRows(t *testing.T) {
	globalID := uuid.New()
	repo := &stubRepo{rows: []models.CharacterCoefficient{
		{ID: globalID, CharClass: enums.CharClassHiragana, Coefficient: dec("6.0")},
	}}
	svc := newTestService(t, repo)

	_, err := svc.Update(context.Background(), uuid.New(), globalID, CoefficientInput{
		CharClass:   enums.CharClassHiragana,
		Coefficient: dec("9.9"),
	})
	if appErr := pkgerrors.As(err); appErr == nil || appErr.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("global rows must be unreachable for update, got %v", err)
	}
}

func TestDeleteNotFound(t *testing.T) {
	svc := newTestService(t, &stubRepo{deleted: 0})

	err := svc.Delete(context.Background(), uuid.New(), uuid.New())
	if appErr := pkgerrors.As(err); appErr == nil || appErr.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}
