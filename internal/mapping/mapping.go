// Package mapping owns the JSON shape of the state store's id-mapping
// documents: the bidirectional time-off id mapping (spec.md §3
// "TimeOffMapping", §4.2 key "timeoff_mapping.json") and the HRIS-to-ATS
// job id mapping (§4.4 job classification, see job.go).
package mapping

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nimbushr/syncengine/internal/domain"
	"github.com/nimbushr/syncengine/internal/statestore"
)

// Key is the fixed statestore key the mapping is persisted under.
const Key = "timeoff_mapping.json"

// document is the on-disk shape named in spec.md §4.2:
// {ch_to_planner: {…}, planner_to_ch: {…}}.
type document struct {
	CHToPlanner map[string]domain.TimeOffMappingEntry `json:"ch_to_planner"`
	PlannerToCH map[string]string                     `json:"planner_to_ch"`
}

func emptyDocument() document {
	return document{
		CHToPlanner: make(map[string]domain.TimeOffMappingEntry),
		PlannerToCH: make(map[string]string),
	}
}

// Store owns reading, mutating, and atomically overwriting the time-off
// mapping.
type Store struct {
	backend statestore.Store
}

// New wraps backend as a mapping.Store.
func New(backend statestore.Store) *Store {
	return &Store{backend: backend}
}

func (s *Store) load(ctx context.Context) (document, error) {
	data, found, err := s.backend.Get(ctx, Key)
	if err != nil {
		return document{}, fmt.Errorf("mapping: load: %w", err)
	}
	if !found {
		return emptyDocument(), nil
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return document{}, fmt.Errorf("mapping: decode: %w", err)
	}
	if doc.CHToPlanner == nil {
		doc.CHToPlanner = make(map[string]domain.TimeOffMappingEntry)
	}
	if doc.PlannerToCH == nil {
		doc.PlannerToCH = make(map[string]string)
	}
	return doc, nil
}

func (s *Store) save(ctx context.Context, doc document) error {
	data, err := domain.CanonicalJSON(doc)
	if err != nil {
		return fmt.Errorf("mapping: encode: %w", err)
	}
	if err := s.backend.Put(ctx, Key, data); err != nil {
		return fmt.Errorf("mapping: save: %w", err)
	}
	return nil
}

// Lookup returns the mapping entry for an HRIS time-off id, consulted on
// update/delete (§3 "consulted on update/delete").
func (s *Store) Lookup(ctx context.Context, hrisTimeOffID string) (domain.TimeOffMappingEntry, bool, error) {
	doc, err := s.load(ctx)
	if err != nil {
		return domain.TimeOffMappingEntry{}, false, err
	}
	entry, ok := doc.CHToPlanner[hrisTimeOffID]
	return entry, ok, nil
}

// Put records a new mapping entry after a confirmed downstream create
// (§3 invariant 1, §5 "Cancellation": write only after confirmed success).
func (s *Store) Put(ctx context.Context, hrisTimeOffID string, entry domain.TimeOffMappingEntry) error {
	doc, err := s.load(ctx)
	if err != nil {
		return err
	}
	doc.CHToPlanner[hrisTimeOffID] = entry
	doc.PlannerToCH[entry.PlannerTimeOffID] = hrisTimeOffID
	return s.save(ctx, doc)
}

// Delete removes a mapping entry, on downstream delete or TTL purge (§3
// Lifecycles).
func (s *Store) Delete(ctx context.Context, hrisTimeOffID string) error {
	doc, err := s.load(ctx)
	if err != nil {
		return err
	}
	if entry, ok := doc.CHToPlanner[hrisTimeOffID]; ok {
		delete(doc.PlannerToCH, entry.PlannerTimeOffID)
	}
	delete(doc.CHToPlanner, hrisTimeOffID)
	return s.save(ctx, doc)
}

// PurgeExpired removes every mapping entry whose age has passed
// domain.MappingTTL (§3 Lifecycles: "purged ... by age >= 180 days").
func (s *Store) PurgeExpired(ctx context.Context, now time.Time) (int, error) {
	doc, err := s.load(ctx)
	if err != nil {
		return 0, err
	}

	purged := 0
	for hrisID, entry := range doc.CHToPlanner {
		if entry.Expired(now) {
			delete(doc.CHToPlanner, hrisID)
			delete(doc.PlannerToCH, entry.PlannerTimeOffID)
			purged++
		}
	}
	if purged == 0 {
		return 0, nil
	}
	return purged, s.save(ctx, doc)
}
