package metrics

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"time"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	RejectReasonValidation = "validation"
	RejectReasonNotFound   = "not_found"
	RejectReasonIntegrity  = "integrity"
	RejectReasonTimeout    = "deadline_exceeded"
	RejectReasonUnknown    = "unknown"
)

// LedgerMetrics captures ledger activity and HTTP traffic for the /metrics endpoint.
// A nil *LedgerMetrics is valid and records nothing.
type LedgerMetrics struct {
	entriesCreated   *prometheus.CounterVec
	entriesRejected  *prometheus.CounterVec
	entriesPosted    prometheus.Counter
	accountsUpserted prometheus.Counter
	taxonomyRows     *prometheus.CounterVec
	httpRequests     *prometheus.CounterVec
	httpDuration     *prometheus.HistogramVec
}

var (
	ledgerMetricsOnce sync.Once
	ledgerMetrics     *LedgerMetrics
)

// Ledger returns the process-wide metrics registered on the default registerer.
func Ledger() *LedgerMetrics {
	ledgerMetricsOnce.Do(func() {
		ledgerMetrics = NewLedgerMetrics(prometheus.DefaultRegisterer)
	})
	return ledgerMetrics
}

// NewLedgerMetrics creates the collectors and registers them on registerer.
func NewLedgerMetrics(registerer prometheus.Registerer) *LedgerMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	m := &LedgerMetrics{
		entriesCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ledger_entries_created_total",
			Help: "Journal entries persisted, by initial status.",
		}, []string{"status"}),
		entriesRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ledger_entries_rejected_total",
			Help: "Journal entries refused, by low-cardinality reason.",
		}, []string{"reason"}),
		entriesPosted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ledger_entries_posted_total",
			Help: "Draft entries transitioned to posted.",
		}),
		accountsUpserted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ledger_accounts_upserted_total",
			Help: "Ledger accounts created or replaced.",
		}),
		taxonomyRows: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ledger_taxonomy_rows_imported_total",
			Help: "Taxonomy import rows by outcome.",
		}, []string{"outcome"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ledger_http_requests_total",
			Help: "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "ledger_http_request_duration_seconds",
			Help:    "HTTP request latency by method and route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}

	registerer.MustRegister(
		m.entriesCreated,
		m.entriesRejected,
		m.entriesPosted,
		m.accountsUpserted,
		m.taxonomyRows,
		m.httpRequests,
		m.httpDuration,
	)
	return m
}

// EntryCreated counts a persisted entry.
func (m *LedgerMetrics) EntryCreated(status domain.EntryStatus) {
	if m == nil {
		return
	}
	m.entriesCreated.WithLabelValues(string(status)).Inc()
}

// EntryRejected counts a refused entry under the reason derived from err.
func (m *LedgerMetrics) EntryRejected(err error) {
	if m == nil {
		return
	}
	m.entriesRejected.WithLabelValues(ClassifyRejection(err)).Inc()
}

// EntryPosted counts a posting transition.
func (m *LedgerMetrics) EntryPosted() {
	if m == nil {
		return
	}
	m.entriesPosted.Inc()
}

// AccountUpserted counts an account write.
func (m *LedgerMetrics) AccountUpserted() {
	if m == nil {
		return
	}
	m.accountsUpserted.Inc()
}

// TaxonomyImported adds the outcome counts of a committed import.
func (m *LedgerMetrics) TaxonomyImported(result domain.TaxonomyImportResult) {
	if m == nil {
		return
	}
	m.taxonomyRows.WithLabelValues("inserted").Add(float64(result.Inserted))
	m.taxonomyRows.WithLabelValues("updated").Add(float64(result.Updated))
	m.taxonomyRows.WithLabelValues("skipped").Add(float64(result.Skipped))
}

// ObserveHTTP records one served request.
func (m *LedgerMetrics) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// ClassifyRejection maps an error to a metric label.
func ClassifyRejection(err error) string {
	if err == nil {
		return RejectReasonUnknown
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return RejectReasonTimeout
	}
	if errors.Is(err, apperrors.ErrValidation) {
		return RejectReasonValidation
	}
	if errors.Is(err, apperrors.ErrNotFound) {
		return RejectReasonNotFound
	}
	if errors.Is(err, apperrors.ErrIntegrity) {
		return RejectReasonIntegrity
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && len(pgErr.Code) == 5 && pgErr.Code[:2] == "23" {
		return RejectReasonIntegrity
	}
	return RejectReasonUnknown
}
