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

// TimeOff implements §4.3.1: create or update a downstream time-off from
// an HRIS time-off entry.
func (h *Handlers) TimeOff(ctx context.Context, hrisTimeOffID string) (Result, error) {
	entry, err := h.HRIS.GetTimeOff(ctx, hrisTimeOffID)
	if errors.Is(err, httpx.ErrNotFound) {
		return Result{Status: StatusSkipped, Reason: "time off not found"}, nil
	}
	if err != nil {
		return Result{Status: StatusError, Reason: err.Error()}, err
	}

	if entry.Status.ShouldSkip() {
		return Result{Status: StatusSkipped, Reason: "status in skip-set: " + string(entry.Status)}, nil
	}

	email, err := h.resolveOwnerEmail(ctx, entry)
	if err != nil {
		return Result{Status: StatusError, Reason: err.Error()}, err
	}
	if email == "" {
		return Result{Status: StatusSkipped, Reason: "no owner email resolved"}, nil
	}

	person, err := h.Planner.FindPersonByEmail(ctx, email)
	if errors.Is(err, httpx.ErrNotFound) {
		return Result{Status: StatusSkipped, Reason: "no planner person for " + email}, nil
	}
	if err != nil {
		return Result{Status: StatusError, Reason: err.Error()}, err
	}

	startDate, ok := normalizeDate(entry.StartDate)
	if !ok {
		return Result{Status: StatusSkipped, Reason: "missing or unparseable start date"}, nil
	}
	endDate, _ := normalizeDate(entry.EndDate)

	category := domain.ClassifyCategory(entry.Reason)
	note := entry.Note()

	if existing, found, err := h.Mapping.Lookup(ctx, hrisTimeOffID); err != nil {
		return Result{Status: StatusError, Reason: err.Error()}, err
	} else if found {
		if err := h.Planner.UpdateTimeOff(ctx, existing.PlannerTimeOffID, category, startDate, endDate, note); err != nil {
			return Result{Status: StatusError, Reason: err.Error()}, err
		}
		h.logOverlap(ctx, person.ID, startDate, endDate)
		return Result{Status: StatusUpdated, DownstreamID: existing.PlannerTimeOffID}, nil
	}

	downstreamID, err := h.Planner.CreateTimeOff(ctx, person.ID, category, startDate, endDate, note)
	if err != nil {
		return Result{Status: StatusError, Reason: err.Error()}, err
	}
	h.logOverlap(ctx, person.ID, startDate, endDate)

	if err := h.Mapping.Put(ctx, hrisTimeOffID, domain.TimeOffMappingEntry{
		PlannerTimeOffID: downstreamID,
		Category:         category,
		OwnerEmail:       email,
		CreatedAt:        time.Now(),
	}); err != nil {
		return Result{Status: StatusError, Reason: fmt.Sprintf("downstream create succeeded but mapping write failed: %v", err)}, err
	}

	return Result{Status: StatusSynced, DownstreamID: downstreamID}, nil
}

// TimeOffDelete implements §4.3.2: delete the mapped downstream time-off,
// and remove the mapping on success. A replay with no mapping is a no-op
// skip, never a second planner call.
func (h *Handlers) TimeOffDelete(ctx context.Context, hrisTimeOffID string) (Result, error) {
	entry, found, err := h.Mapping.Lookup(ctx, hrisTimeOffID)
	if err != nil {
		return Result{Status: StatusError, Reason: err.Error()}, err
	}
	if !found {
		return Result{Status: StatusSkipped, Reason: "no mapping found"}, nil
	}

	if err := h.Planner.DeleteTimeOff(ctx, entry.PlannerTimeOffID, entry.Category); err != nil {
		return Result{Status: StatusError, Reason: err.Error()}, err
	}
	if err := h.Mapping.Delete(ctx, hrisTimeOffID); err != nil {
		return Result{Status: StatusError, Reason: err.Error()}, err
	}
	return Result{Status: StatusSynced, DownstreamID: entry.PlannerTimeOffID}, nil
}

// logOverlap probes the planner for an overlapping time-off on the same
// person and window, logging the result rather than blocking the sync on
// it — the planner's own overlap-merge behavior is tolerated (§4.3.1
// step 7). A probe error is likewise logged and swallowed: it reflects a
// best-effort diagnostic call, not the create/update this method already
// confirmed succeeded.
func (h *Handlers) logOverlap(ctx context.Context, personID, startDate, endDate string) {
	overlap, err := h.Planner.ProbeOverlap(ctx, personID, startDate, endDate)
	if err != nil {
		slog.WarnContext(ctx, "planner overlap probe failed", "person_id", personID, "error", err)
		return
	}
	if overlap {
		slog.InfoContext(ctx, "planner time-off overlap detected", "person_id", personID, "start_date", startDate, "end_date", endDate)
	}
}

// resolveOwnerEmail implements §4.3.1 step 2's five-step fallback order.
func (h *Handlers) resolveOwnerEmail(ctx context.Context, entry domain.TimeOff) (string, error) {
	if entry.PersonEmail != "" {
		return entry.PersonEmail, nil
	}
	if entry.PersonWorkEmail != "" {
		return entry.PersonWorkEmail, nil
	}
	if entry.PersonPersonalEmail != "" {
		return entry.PersonPersonalEmail, nil
	}
	if entry.PersonID == "" {
		return "", nil
	}

	if email, err := h.HRIS.PersonEmailByID(ctx, entry.PersonID); err == nil && email != "" {
		return email, nil
	}

	person, err := h.HRIS.GetPerson(ctx, entry.PersonID)
	if errors.Is(err, httpx.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return person.PrimaryEmail(), nil
}

// normalizeDate truncates a date string to YYYY-MM-DD (§4.3.1 step 4),
// accepting either a bare date or an RFC3339 timestamp.
func normalizeDate(s string) (string, bool) {
	if s == "" {
		return "", false
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t.Format("2006-01-02"), true
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.Format("2006-01-02"), true
	}
	return "", false
}
