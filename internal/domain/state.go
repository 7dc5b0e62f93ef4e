package domain

import "time"

// ManifestEntry is one Employee Id's worth of state in the snapshot
// manifest (§3 SnapshotManifest). ContentHash is over Row's canonical JSON
// (§3 invariant 2); HRISPersonID lets the delta pass look up endDateOrg for
// a person who has dropped out of the current scan (§4.5.1 step 3).
type ManifestEntry struct {
	ContentHash  string      `json:"content_hash"`
	HRISPersonID string      `json:"hris_person_id"`
	Row          SnapshotRow `json:"last_row"`
}

// Manifest is the full persisted snapshot manifest, keyed by Employee Id.
type Manifest map[string]ManifestEntry

// TimeOffMappingEntry is one HRIS-TimeOff-Id's worth of state in the
// bidirectional mapping (§3 TimeOffMapping).
type TimeOffMappingEntry struct {
	PlannerTimeOffID string          `json:"planner_timeoff_id"`
	Category         TimeOffCategory `json:"category"`
	OwnerEmail       string          `json:"owner_email"`
	CreatedAt        time.Time       `json:"created_at_iso"`
}

// MappingTTL is the age at which a mapping entry is purged even if its
// upstream entity was never explicitly deleted (§3 Lifecycles).
const MappingTTL = 180 * 24 * time.Hour

// Expired reports whether this mapping entry has passed MappingTTL as of
// now.
func (e TimeOffMappingEntry) Expired(now time.Time) bool {
	return now.Sub(e.CreatedAt) >= MappingTTL
}

// ErrorRecord is one entry in SyncMetrics.LastErrors (§3), capped at 100
// entries, oldest evicted first.
type ErrorRecord struct {
	Time     time.Time `json:"time"`
	Kind     string    `json:"kind"`
	EntityID string    `json:"entity_id"`
	Message  string    `json:"message"`
}

// MaxErrorRecords bounds SyncMetrics.LastErrors.
const MaxErrorRecords = 100

// SyncMetrics is the per-process rolling counters persisted under
// sync_metrics.json (§3, §4.2).
type SyncMetrics struct {
	LastSync   map[string]time.Time `json:"last_sync"` // task-kind -> last successful run
	Counters   map[string]int       `json:"counters"`  // e.g. "synced", "updated", "skipped", "ctc_calc_updated"
	LastErrors []ErrorRecord        `json:"last_errors"`
}

// NewSyncMetrics returns a zero-value SyncMetrics with initialized maps.
func NewSyncMetrics() SyncMetrics {
	return SyncMetrics{
		LastSync: make(map[string]time.Time),
		Counters: make(map[string]int),
	}
}

// Incr bumps a named counter by one.
func (m *SyncMetrics) Incr(counter string) {
	if m.Counters == nil {
		m.Counters = make(map[string]int)
	}
	m.Counters[counter]++
}

// RecordError appends an error record, evicting the oldest entry once
// MaxErrorRecords is exceeded (§3 SyncMetrics, §7).
func (m *SyncMetrics) RecordError(rec ErrorRecord) {
	m.LastErrors = append(m.LastErrors, rec)
	if len(m.LastErrors) > MaxErrorRecords {
		m.LastErrors = m.LastErrors[len(m.LastErrors)-MaxErrorRecords:]
	}
}

// MarkSync records the completion time of a task kind.
func (m *SyncMetrics) MarkSync(kind string, at time.Time) {
	if m.LastSync == nil {
		m.LastSync = make(map[string]time.Time)
	}
	m.LastSync[kind] = at
}

// WarehouseCheckpoint is the per-collection high-water mark (§3).
// Monotonic: Advance never regresses it (invariant 3).
type WarehouseCheckpoint struct {
	Collection    string
	LastSuccessTS time.Time
}

// Advance returns the later of the current checkpoint and candidate,
// enforcing invariant 3 (never regress).
func (c WarehouseCheckpoint) Advance(candidate time.Time) WarehouseCheckpoint {
	if candidate.After(c.LastSuccessTS) {
		return WarehouseCheckpoint{Collection: c.Collection, LastSuccessTS: candidate}
	}
	return c
}
