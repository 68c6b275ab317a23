package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// QuoteMetrics records pricing throughput and number-allocation health.
type QuoteMetrics struct {
	pricingDuration  *prometheus.HistogramVec
	quotesPriced     *prometheus.CounterVec
	allocRetries     prometheus.Counter
	allocExhaustions prometheus.Counter
}

// NewQuoteMetrics registers the quotation metrics on the provided registerer.
func NewQuoteMetrics(reg prometheus.Registerer) *QuoteMetrics {
	if reg == nil {
		return &QuoteMetrics{}
	}
	pricingDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "quote_pricing_duration_seconds",
		Help:    "Duration of quote pricing runs in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation"})
	quotesPriced := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "quotes_priced_total",
		Help: "Quotes priced, labelled by outcome.",
	}, []string{"outcome"})
	allocRetries := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "quote_number_allocation_retries_total",
		Help: "Quote number allocation attempts retried after a conflict.",
	})
	allocExhaustions := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "quote_number_allocation_exhaustions_total",
		Help: "Quote number allocations abandoned after exhausting retries.",
	})
	reg.MustRegister(pricingDuration, quotesPriced, allocRetries, allocExhaustions)
	return &QuoteMetrics{
		pricingDuration:  pricingDuration,
		quotesPriced:     quotesPriced,
		allocRetries:     allocRetries,
		allocExhaustions: allocExhaustions,
	}
}

// ObservePricingDuration records how long the named pricing operation took.
func (m *QuoteMetrics) ObservePricingDuration(operation string, duration time.Duration) {
	if m == nil || m.pricingDuration == nil {
		return
	}
	m.pricingDuration.WithLabelValues(normalizeLabel(operation)).Observe(duration.Seconds())
}

// IncQuotesPriced increments the priced counter for the given outcome.
func (m *QuoteMetrics) IncQuotesPriced(outcome string) {
	if m == nil || m.quotesPriced == nil {
		return
	}
	m.quotesPriced.WithLabelValues(normalizeLabel(outcome)).Inc()
}

// IncAllocationRetry counts a retried quote number allocation.
func (m *QuoteMetrics) IncAllocationRetry() {
	if m == nil || m.allocRetries == nil {
		return
	}
	m.allocRetries.Inc()
}

// IncAllocationExhaustion counts an allocation that gave up after retrying.
func (m *QuoteMetrics) IncAllocationExhaustion() {
	if m == nil || m.allocExhaustions == nil {
		return
	}
	m.allocExhaustions.Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
