package reconcile

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/nimbushr/syncengine/internal/httpx"
)

// atsJobSourceIDFieldAPIName is the ATS custom field that records the
// source HRIS job id on the mirrored job, so a job can be traced back to
// where it was synced from (original_source/app/services/job_sync.py's
// tt_upsert_job_custom_field).
const atsJobSourceIDFieldAPIName = "hris_job_id"

// jobStatus maps an HRIS job's open flag to an ATS job status
// (job_sync.py's _status_from_open): open jobs are listed but not yet
// publicly visible, closed jobs are archived.
func jobStatus(open bool) string {
	if open {
		return "unlisted"
	}
	return "archived"
}

// Job implements §4.4's job-create classification: create the downstream
// ATS job from an HRIS job and record the mapping so later updates patch
// it instead of creating a duplicate. A replay against an already-mapped
// job patches the existing ATS job rather than creating a second one.
func (h *Handlers) Job(ctx context.Context, hrisJobID string) (Result, error) {
	job, err := h.HRIS.GetJob(ctx, hrisJobID)
	if errors.Is(err, httpx.ErrNotFound) {
		return Result{Status: StatusSkipped, Reason: "job not found"}, nil
	}
	if err != nil {
		return Result{Status: StatusError, Reason: err.Error()}, err
	}

	if existing, found, err := h.JobMapping.Lookup(ctx, hrisJobID); err != nil {
		return Result{Status: StatusError, Reason: err.Error()}, err
	} else if found {
		if err := h.ATS.PatchJob(ctx, existing, job.Title, jobStatus(job.Open)); err != nil {
			return Result{Status: StatusError, Reason: err.Error()}, err
		}
		return Result{Status: StatusUpdated, DownstreamID: existing}, nil
	}

	atsJobID, err := h.ATS.CreateJob(ctx, job.Title)
	if err != nil {
		return Result{Status: StatusError, Reason: err.Error()}, err
	}
	if err := h.ATS.PatchJob(ctx, atsJobID, "", jobStatus(job.Open)); err != nil {
		return Result{Status: StatusError, Reason: err.Error()}, err
	}
	h.linkJobSourceID(ctx, atsJobID, hrisJobID)

	if err := h.JobMapping.Put(ctx, hrisJobID, atsJobID); err != nil {
		return Result{Status: StatusError, Reason: fmt.Sprintf("downstream create succeeded but mapping write failed: %v", err)}, err
	}
	return Result{Status: StatusSynced, DownstreamID: atsJobID}, nil
}

// JobUpdate implements §4.4's job-update classification: patch the ATS
// job already mapped to this HRIS job. A job with no mapping yet is
// skipped rather than implicitly created — job_sync.py's sync_job_update
// likewise refuses to guess at a downstream id it has never seen.
func (h *Handlers) JobUpdate(ctx context.Context, hrisJobID string) (Result, error) {
	job, err := h.HRIS.GetJob(ctx, hrisJobID)
	if errors.Is(err, httpx.ErrNotFound) {
		return Result{Status: StatusSkipped, Reason: "job not found"}, nil
	}
	if err != nil {
		return Result{Status: StatusError, Reason: err.Error()}, err
	}

	atsJobID, found, err := h.JobMapping.Lookup(ctx, hrisJobID)
	if err != nil {
		return Result{Status: StatusError, Reason: err.Error()}, err
	}
	if !found {
		return Result{Status: StatusSkipped, Reason: "no mapping found, job was never synced"}, nil
	}

	if err := h.ATS.PatchJob(ctx, atsJobID, job.Title, jobStatus(job.Open)); err != nil {
		return Result{Status: StatusError, Reason: err.Error()}, err
	}
	return Result{Status: StatusUpdated, DownstreamID: atsJobID}, nil
}

// linkJobSourceID best-effort writes the HRIS job id back onto the new
// ATS job's custom field. Failure here does not fail the create: the job
// was already synced successfully, and the source-id link is an audit
// convenience, not something downstream reconciliation depends on.
func (h *Handlers) linkJobSourceID(ctx context.Context, atsJobID, hrisJobID string) {
	fieldID, err := h.ATS.ResolveCustomFieldID(ctx, atsJobSourceIDFieldAPIName)
	if err != nil {
		slog.WarnContext(ctx, "job: failed resolving source-id custom field", "error", err)
		return
	}
	if err := h.ATS.UpsertJobCustomField(ctx, atsJobID, fieldID, hrisJobID); err != nil {
		slog.WarnContext(ctx, "job: failed linking source-id custom field", "hris_job_id", hrisJobID, "ats_job_id", atsJobID, "error", err)
	}
}
