// Package reconcile implements the translator from an upstream change to
// the downstream writes it requires (spec.md §4.3 "Reconciler"). Each
// handler is keyed by task kind, grounded on the teacher's small
// enum-keyed factory pattern (internal/recurring.GetCalculator): a plain
// switch over a closed set of kinds rather than a registry of registered
// handlers, since the kind set here is fixed by spec rather than
// extensible at runtime.
package reconcile

import (
	"context"
	"fmt"
	"time"

	"github.com/nimbushr/syncengine/internal/client/ats"
	"github.com/nimbushr/syncengine/internal/client/hris"
	"github.com/nimbushr/syncengine/internal/client/planner"
	"github.com/nimbushr/syncengine/internal/domain"
	"github.com/nimbushr/syncengine/internal/mapping"
	"github.com/nimbushr/syncengine/internal/metrics"
)

// Kind is the closed set of reconciliation task kinds (§4.3, §6 task
// payload). KindHire is not part of the documented /tasks/worker payload
// enum — the ATS webhook handler passes it to Dispatch after HMAC
// verification, synchronously within the webhook request, rather than via
// the task queue (see DESIGN.md for why).
type Kind string

const (
	KindTimeOff               Kind = "timeoff"
	KindTimeOffDelete         Kind = "timeoff_delete"
	KindPerson                Kind = "person"
	KindJob                   Kind = "job"
	KindJobUpdate             Kind = "job_update"
	KindCompensation          Kind = "compensation"
	KindCompensationSyncBatch Kind = "compensation_sync_batch"
	KindCTCRecalculate        Kind = "ctc_recalculate"
	KindCTCRecalculateBatch   Kind = "ctc_recalculate_batch"
	KindHire                  Kind = "hire"
)

// Status is the outcome of a single reconciliation (§4.3).
type Status string

const (
	StatusSynced  Status = "synced"
	StatusUpdated Status = "updated"
	StatusSkipped Status = "skipped"
	StatusError   Status = "error"
)

// Result is the uniform return shape of every handler.
type Result struct {
	Status       Status `json:"status"`
	Reason       string `json:"reason,omitempty"`
	DownstreamID string `json:"downstream_id,omitempty"`

	// Count/Errors are populated only by the *_batch handlers (§4.3.5,
	// §4.3.6), aggregating the per-entity outcomes.
	Count  int      `json:"count,omitempty"`
	Errors []string `json:"errors,omitempty"`
}

// Handlers holds the C1 adapters and C2 wrappers every reconciler method
// needs, grounded on the teacher's application-service layering (one
// struct holding every collaborator a use case needs, methods on it per
// use case).
type Handlers struct {
	HRIS    *hris.Client
	ATS     *ats.Client
	Planner *planner.Client
	Mapping *mapping.Store
	Metrics *metrics.Store

	// JobMapping is the HRIS-to-ATS job id mapping Job/JobUpdate consult
	// (§4.4 job classification).
	JobMapping *mapping.JobStore

	// CorpEmailDomain/WebhookSigningKey/CreatePlannerOnHire parameterize
	// the hire flow (§4.3.7, §6). AutoAssignWorkEmail is carried here but
	// Hire does not read it; Hire always generates the work email.
	CorpEmailDomain     string
	AutoAssignWorkEmail bool
	WebhookSigningKey   string
	CreatePlannerOnHire bool

	// OnboardingLookaheadDays/TimeOffLookbackDays/TimeOffLookaheadDays
	// parameterize the windowed cron batches (PersonOnboardingBatch,
	// TimeOffSyncBatch). Zero means "use the package default".
	OnboardingLookaheadDays int
	TimeOffLookbackDays     int
	TimeOffLookaheadDays    int
}

// New builds a Handlers from its collaborators.
func New(hrisC *hris.Client, atsC *ats.Client, plannerC *planner.Client, mappingStore *mapping.Store, metricsStore *metrics.Store, jobMappingStore *mapping.JobStore) *Handlers {
	return &Handlers{HRIS: hrisC, ATS: atsC, Planner: plannerC, Mapping: mappingStore, Metrics: metricsStore, JobMapping: jobMappingStore}
}

// Dispatch is the single entry point both the /tasks/worker HTTP handler
// and the ATS webhook handler call, keyed by Kind.
func (h *Handlers) Dispatch(ctx context.Context, kind Kind, entityID string) (Result, error) {
	result, err := h.dispatch(ctx, kind, entityID)
	h.recordOutcome(ctx, kind, result, err)
	return result, err
}

func (h *Handlers) dispatch(ctx context.Context, kind Kind, entityID string) (Result, error) {
	switch kind {
	case KindTimeOff:
		return h.TimeOff(ctx, entityID)
	case KindTimeOffDelete:
		return h.TimeOffDelete(ctx, entityID)
	case KindPerson:
		return h.Person(ctx, entityID)
	case KindJob:
		return h.Job(ctx, entityID)
	case KindJobUpdate:
		return h.JobUpdate(ctx, entityID)
	case KindCompensation:
		return h.Compensation(ctx, entityID, time.Now())
	case KindCompensationSyncBatch:
		return h.CompensationSyncBatch(ctx, time.Now())
	case KindCTCRecalculate:
		return h.CTCRecalculate(ctx, entityID)
	case KindCTCRecalculateBatch:
		return h.CTCRecalculateBatch(ctx)
	case KindHire:
		return h.Hire(ctx, entityID)
	default:
		return Result{}, fmt.Errorf("reconcile: unknown kind %q", kind)
	}
}

// recordOutcome mirrors a completed dispatch onto C2 metrics (§3
// SyncMetrics, §7: "every skipped/errored event increments the appropriate
// counter and appends to last_errors").
func (h *Handlers) recordOutcome(ctx context.Context, kind Kind, result Result, err error) {
	if h.Metrics == nil {
		return
	}

	now := time.Now()
	counter := string(result.Status)
	if counter == "" {
		counter = "error"
	}

	var errRec *domain.ErrorRecord
	if err != nil || result.Status == StatusError {
		msg := result.Reason
		if err != nil {
			msg = err.Error()
		}
		errRec = &domain.ErrorRecord{Time: now, Kind: string(kind), Message: msg}
	}

	_ = h.Metrics.RecordOutcome(ctx, string(kind), counter, errRec, now)
}
