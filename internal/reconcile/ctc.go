package reconcile

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/nimbushr/syncengine/internal/domain"
	"github.com/nimbushr/syncengine/internal/httpx"
)

// CTCRecalculate implements §4.3.6: recompute a person's cost-to-company
// in USD and write it back to the associated HRIS job.
func (h *Handlers) CTCRecalculate(ctx context.Context, hrisPersonID string) (Result, error) {
	person, err := h.HRIS.GetPerson(ctx, hrisPersonID)
	if errors.Is(err, httpx.ErrNotFound) {
		return Result{Status: StatusSkipped, Reason: "person not found"}, nil
	}
	if err != nil {
		return Result{Status: StatusError, Reason: err.Error()}, err
	}

	if person.JobID == "" {
		return Result{Status: StatusSkipped, Reason: "no job id"}, nil
	}

	job, err := h.HRIS.GetJob(ctx, person.JobID)
	if errors.Is(err, httpx.ErrNotFound) {
		return Result{Status: StatusSkipped, Reason: "job not found"}, nil
	}
	if err != nil {
		return Result{Status: StatusError, Reason: err.Error()}, err
	}
	if job.BaseComp <= 0 {
		return Result{Status: StatusSkipped, Reason: "base compensation is not positive"}, nil
	}

	ctc, ok := domain.CTCForScheme(job.BaseComp, person.HiringScheme)
	if !ok {
		slog.WarnContext(ctx, "ctc_recalculate: unrecognized hiring scheme, using base unchanged",
			"person_id", person.ID, "scheme", person.HiringScheme)
	}

	if err := h.HRIS.PatchJob(ctx, job.ID, map[string]any{"ctc": ctc, "currency": "USD"}); err != nil {
		return Result{Status: StatusError, Reason: err.Error()}, err
	}

	if h.Metrics != nil {
		_ = h.Metrics.RecordOutcome(ctx, string(KindCTCRecalculate), "ctc_calc_updated", nil, time.Now())
	}
	return Result{Status: StatusSynced, DownstreamID: job.ID}, nil
}

// CTCRecalculateBatch implements §4.3.6's batch form: recalculate CTC for
// every active HRIS person.
func (h *Handlers) CTCRecalculateBatch(ctx context.Context) (Result, error) {
	agg := Result{Status: StatusSynced}
	for person, err := range h.HRIS.ListPeople(ctx) {
		if err != nil {
			return agg, fmt.Errorf("reconcile: ctc recalculate batch: list people: %w", err)
		}
		if !person.Active {
			continue
		}

		result, _ := h.CTCRecalculate(ctx, person.ID)
		agg.Count++
		if result.Status == StatusError {
			agg.Errors = append(agg.Errors, person.ID+": "+result.Reason)
		}
	}
	return agg, nil
}
