package quotes

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	pkgerrors "github.com/craftsign/signquote-backend/pkg/errors"
)

const seqDateLayout = "20060102"

// NumberAllocator hands out the next quote number for a (tenant, date)
// scope. Numbers are strictly increasing within the scope and never reused,
// even when a quote is later deleted. Failed quote inserts leave gaps.
type NumberAllocator interface {
	Next(ctx context.Context, tenantID uuid.UUID, date time.Time) (string, error)
}

// FormatQuoteNumber renders prefix-YYYYMMDD-NNNN. The sequence is
// zero-padded to four digits and simply grows wider past 9999.
func FormatQuoteNumber(prefix string, date time.Time, seq int64) string {
	return fmt.Sprintf("%s-%s-%04d", prefix, date.Format(seqDateLayout), seq)
}

// SequenceAllocator increments a per-(tenant, date) counter row. The upsert
// is a single statement, so concurrent callers for the same scope serialize
// on the row while other tenants and dates stay uncontended.
type SequenceAllocator struct {
	db     *gorm.DB
	prefix string
}

func NewSequenceAllocator(db *gorm.DB, prefix string) (*SequenceAllocator, error) {
	if db == nil {
		return nil, fmt.Errorf("db handle required")
	}
	if prefix == "" {
		return nil, fmt.Errorf("number prefix required")
	}
	return &SequenceAllocator{db: db, prefix: prefix}, nil
}

func (a *SequenceAllocator) Next(ctx context.Context, tenantID uuid.UUID, date time.Time) (string, error) {
	if tenantID == uuid.Nil {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "tenant id is required")
	}

	var lastValue int64
	err := a.db.WithContext(ctx).Raw(`
		INSERT INTO quote_sequences (tenant_id, seq_date, last_value, updated_at)
		VALUES (?, ?, 1, now())
		ON CONFLICT (tenant_id, seq_date)
		DO UPDATE SET last_value = quote_sequences.last_value + 1, updated_at = now()
		RETURNING last_value`,
		tenantID, date.Format(seqDateLayout),
	).Scan(&lastValue).Error
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "increment quote sequence")
	}
	return FormatQuoteNumber(a.prefix, date, lastValue), nil
}

type counterStore interface {
	IncrWithTTL(ctx context.Context, key string, ttl time.Duration) (int64, error)
	CounterKey(parts ...string) string
}

// RedisAllocator backs the sequence with a Redis INCR counter. The key
// carries the date, so counters expire on their own shortly after the day
// they cover.
type RedisAllocator struct {
	store  counterStore
	prefix string
	ttl    time.Duration
}

func NewRedisAllocator(store counterStore, prefix string) (*RedisAllocator, error) {
	if store == nil {
		return nil, fmt.Errorf("counter store required")
	}
	if prefix == "" {
		return nil, fmt.Errorf("number prefix required")
	}
	return &RedisAllocator{store: store, prefix: prefix, ttl: 48 * time.Hour}, nil
}

func (a *RedisAllocator) Next(ctx context.Context, tenantID uuid.UUID, date time.Time) (string, error) {
	if tenantID == uuid.Nil {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "tenant id is required")
	}

	key := a.store.CounterKey("quote_seq", tenantID.String(), date.Format(seqDateLayout))
	seq, err := a.store.IncrWithTTL(ctx, key, a.ttl)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "increment redis quote counter")
	}
	return FormatQuoteNumber(a.prefix, date, seq), nil
}
