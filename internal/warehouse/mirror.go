// Package warehouse implements the C5 warehouse-mirror batch (spec.md
// §4.5.2): a static collection catalog, bounded-fan-out fetch against the
// resource-planning remote, staging load + schema-tolerant MERGE against
// the target warehouse, and monotonic per-collection checkpoint advance.
//
// This is distinct from internal/client/warehouse, which is the plain
// BigQuery adapter (staging load, MERGE, checkpoint read/write) this
// package drives; internal/warehouse owns the fetch-and-orchestrate
// policy, internal/client/warehouse owns the mechanical BigQuery calls.
package warehouse

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	warehousedb "github.com/nimbushr/syncengine/internal/client/warehouse"
	"github.com/nimbushr/syncengine/internal/config"
)

// Summary is the JSON response shape for a mirror run.
type Summary struct {
	CollectionsProcessed int              `json:"collections_processed"`
	RowsLoaded           map[string]int   `json:"rows_loaded"`
	Skipped              []string         `json:"skipped_empty,omitempty"`
	Errors               map[string]string `json:"errors,omitempty"`
}

// Mirror owns the collaborators one warehouse-mirror run needs.
type Mirror struct {
	source *source
	db     *warehousedb.Client
	cfg    *config.WarehouseConfig
}

// New builds a Mirror from its collaborators.
func New(plannerCfg *config.PlannerConfig, db *warehousedb.Client, cfg *config.WarehouseConfig) *Mirror {
	return &Mirror{source: newSource(plannerCfg), db: db, cfg: cfg}
}

// Run fetches and merges every cataloged collection, fanning the fetch
// phase out over a bounded worker pool (§4.5.2, §5 "≤4 workers"); the
// load+MERGE phase runs sequentially per collection once all fetches
// complete, since BigQuery-style engines serialize DML against a single
// table reasonably anyway and the spec does not ask for parallel MERGEs.
func (m *Mirror) Run(ctx context.Context) (Summary, error) {
	now := time.Now().UTC()

	type fetched struct {
		name string
		spec CollectionSpec
		rows []map[string]any
	}

	results := make([]fetched, len(Catalog))
	names := make([]string, 0, len(Catalog))
	for name := range Catalog {
		names = append(names, name)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(m.fanOut())

	errs := make(map[string]string)
	for i, name := range names {
		i, name := i, name
		spec := Catalog[name]
		g.Go(func() error {
			checkpoint, err := m.db.GetCheckpoint(gctx, name)
			if err != nil {
				errs[name] = err.Error()
				return nil
			}
			window := buildWindow(spec, checkpoint, now, m.cfg.WindowDays, m.cfg.OverlapDays)
			rows, err := m.fetchCollection(gctx, name, spec, window)
			if err != nil {
				errs[name] = err.Error()
				return nil
			}
			results[i] = fetched{name: name, spec: spec, rows: rows}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Summary{}, fmt.Errorf("warehouse: fetch phase: %w", err)
	}

	summary := Summary{RowsLoaded: make(map[string]int), Errors: errs}
	for _, f := range results {
		if f.name == "" {
			continue
		}
		if len(f.rows) == 0 {
			summary.Skipped = append(summary.Skipped, f.name)
			continue
		}
		if err := m.loadAndMerge(ctx, f.name, f.spec, f.rows, now); err != nil {
			errs[f.name] = err.Error()
			continue
		}
		summary.RowsLoaded[f.name] = len(f.rows)
		summary.CollectionsProcessed++
	}
	if len(errs) == 0 {
		summary.Errors = nil
	}
	return summary, nil
}

// Backfill implements §4.5.2 "Backfill": a caller-provided date range (and
// optional person) overrides the checkpoint-derived window for
// actuals/assignments, deleting the overlapping target rows first so the
// window stays authoritative, then loading and merging as usual.
func (m *Mirror) Backfill(ctx context.Context, collection, dateFrom, dateTo, personID string) (Summary, error) {
	spec, ok := Catalog[collection]
	if !ok || !BackfillableCollections[collection] {
		return Summary{}, fmt.Errorf("warehouse: %q does not support backfill", collection)
	}

	from, err := time.Parse("2006-01-02", dateFrom)
	if err != nil {
		return Summary{}, fmt.Errorf("warehouse: invalid date_from: %w", err)
	}
	to, err := time.Parse("2006-01-02", dateTo)
	if err != nil {
		return Summary{}, fmt.Errorf("warehouse: invalid date_to: %w", err)
	}

	if err := m.db.DeleteWindow(ctx, collection, spec.PartitionField, from, to, personID); err != nil {
		return Summary{}, fmt.Errorf("warehouse: backfill delete: %w", err)
	}

	window := fetchWindow{minDate: from, maxDate: to}
	rows, err := m.fetchCollection(ctx, collection, spec, window)
	if err != nil {
		return Summary{}, err
	}

	summary := Summary{RowsLoaded: map[string]int{}}
	if len(rows) == 0 {
		summary.Skipped = []string{collection}
		return summary, nil
	}

	if err := m.loadAndMerge(ctx, collection, spec, rows, time.Now().UTC()); err != nil {
		return Summary{}, err
	}
	summary.RowsLoaded[collection] = len(rows)
	summary.CollectionsProcessed = 1
	return summary, nil
}

// loadAndMerge runs §4.5.2 steps 1-5 for one collection's already-fetched
// rows, then advances its checkpoint (never regressing, §3 invariant 3).
func (m *Mirror) loadAndMerge(ctx context.Context, name string, spec CollectionSpec, rows []map[string]any, batchStart time.Time) error {
	suffix := strconv.FormatInt(time.Now().UTC().UnixNano(), 36)

	stagingName, err := m.db.LoadStaging(ctx, name, suffix, rows)
	if err != nil {
		return err
	}
	defer func() { _ = m.db.DropStaging(ctx, stagingName) }()

	if err := m.db.EnsureTargetTable(ctx, name, stagingName, spec.PartitionField); err != nil {
		return err
	}
	if err := m.db.Merge(ctx, name, stagingName, spec.PK, spec.TSField); err != nil {
		return err
	}

	newTS := maxUpdatedAt(rows, spec.TSField)
	if newTS.IsZero() {
		newTS = batchStart
	}

	current, err := m.db.GetCheckpoint(ctx, name)
	if err != nil {
		return err
	}
	advanced := current.Advance(newTS)
	return m.db.SetCheckpoint(ctx, name, advanced.LastSuccessTS)
}

func maxUpdatedAt(rows []map[string]any, tsField string) time.Time {
	if tsField == "" {
		return time.Time{}
	}
	var max time.Time
	for _, row := range rows {
		raw, ok := row[tsField]
		if !ok {
			continue
		}
		s, ok := raw.(string)
		if !ok {
			continue
		}
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			continue
		}
		if t.After(max) {
			max = t
		}
	}
	return max
}

func (m *Mirror) fanOut() int {
	if m.cfg.FanOut <= 0 {
		return 4
	}
	return m.cfg.FanOut
}
