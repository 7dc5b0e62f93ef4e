// Package metrics owns the JSON shape of the persisted sync metrics
// (spec.md §3 "SyncMetrics", §4.2 key "sync_metrics.json") and exposes a
// Prometheus collector that mirrors the same counters for the ambient
// GET /metrics endpoint (SPEC_FULL.md §9, grounded on
// github.com/prometheus/client_golang as used by jordigilh-kubernaut).
package metrics

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/nimbushr/syncengine/internal/domain"
	"github.com/nimbushr/syncengine/internal/statestore"
)

// Key is the fixed statestore key the metrics document is persisted under.
const Key = "sync_metrics.json"

// Store owns reading and atomically overwriting the persisted sync
// metrics, and reports the same counters through a Prometheus collector.
type Store struct {
	backend statestore.Store

	tasksTotal   *prometheus.CounterVec
	lastSyncUnix *prometheus.GaugeVec
}

// New wraps backend as a metrics.Store and registers its Prometheus
// collectors against reg.
func New(backend statestore.Store, reg prometheus.Registerer) *Store {
	s := &Store{
		backend: backend,
		tasksTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "syncengine_tasks_total",
			Help: "Reconciler task outcomes by counter name (synced, updated, skipped, error, ...).",
		}, []string{"counter"}),
		lastSyncUnix: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "syncengine_last_sync_unixtime",
			Help: "Unix timestamp of the last successful run of each task kind.",
		}, []string{"kind"}),
	}
	reg.MustRegister(s.tasksTotal, s.lastSyncUnix)
	return s
}

// Load returns the current metrics document, or a fresh one if none has
// been written yet.
func (s *Store) Load(ctx context.Context) (domain.SyncMetrics, error) {
	data, found, err := s.backend.Get(ctx, Key)
	if err != nil {
		return domain.SyncMetrics{}, fmt.Errorf("metrics: load: %w", err)
	}
	if !found {
		return domain.NewSyncMetrics(), nil
	}

	var m domain.SyncMetrics
	if err := json.Unmarshal(data, &m); err != nil {
		return domain.SyncMetrics{}, fmt.Errorf("metrics: decode: %w", err)
	}
	return m, nil
}

// Save overwrites the persisted metrics document.
func (s *Store) Save(ctx context.Context, m domain.SyncMetrics) error {
	data, err := domain.CanonicalJSON(m)
	if err != nil {
		return fmt.Errorf("metrics: encode: %w", err)
	}
	if err := s.backend.Put(ctx, Key, data); err != nil {
		return fmt.Errorf("metrics: save: %w", err)
	}
	return nil
}

// RecordOutcome loads the metrics document, applies a single task outcome
// (counter bump, optional error record, optional last-sync mark), saves it
// back, and mirrors the change onto the Prometheus collectors. Called once
// per reconcile.Dispatch invocation; reconcile's CTCRecalculate also calls
// it directly, so a ctc_recalculate dispatch records two outcomes.
func (s *Store) RecordOutcome(ctx context.Context, kind, counter string, errRec *domain.ErrorRecord, syncedAt time.Time) error {
	m, err := s.Load(ctx)
	if err != nil {
		return err
	}

	m.Incr(counter)
	s.tasksTotal.WithLabelValues(counter).Inc()

	if errRec != nil {
		m.RecordError(*errRec)
	} else {
		m.MarkSync(kind, syncedAt)
		s.lastSyncUnix.WithLabelValues(kind).Set(float64(syncedAt.Unix()))
	}

	return s.Save(ctx, m)
}
