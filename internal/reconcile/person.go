package reconcile

import (
	"context"
	"errors"

	"github.com/nimbushr/syncengine/internal/httpx"
)

// Person implements §4.3.3: upsert an HRIS person into the planner.
func (h *Handlers) Person(ctx context.Context, hrisPersonID string) (Result, error) {
	person, err := h.HRIS.GetPerson(ctx, hrisPersonID)
	if errors.Is(err, httpx.ErrNotFound) {
		return Result{Status: StatusSkipped, Reason: "person not found"}, nil
	}
	if err != nil {
		return Result{Status: StatusError, Reason: err.Error()}, err
	}

	email := person.PrimaryEmail()
	if email == "" {
		return Result{Status: StatusSkipped, Reason: "no work or personal email"}, nil
	}

	startsAt := ""
	if !person.StartDate.IsZero() {
		startsAt = person.StartDate.Format("2006-01-02")
	}

	downstream, err := h.Planner.UpsertPerson(ctx, person.DisplayName(), email, person.EmploymentType, startsAt)
	if err != nil {
		return Result{Status: StatusError, Reason: err.Error()}, err
	}
	return Result{Status: StatusSynced, DownstreamID: downstream.ID}, nil
}
