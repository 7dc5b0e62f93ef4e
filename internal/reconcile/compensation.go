package reconcile

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/nimbushr/syncengine/internal/httpx"
)

const costPerHourEpsilon = 0.01

// Compensation implements §4.3.4: patch a planner person's contract
// cost-per-hour from the HRIS person's annualized compensation.
func (h *Handlers) Compensation(ctx context.Context, hrisPersonID string, asOf time.Time) (Result, error) {
	person, err := h.HRIS.GetPerson(ctx, hrisPersonID)
	if errors.Is(err, httpx.ErrNotFound) {
		return Result{Status: StatusSkipped, Reason: "person not found"}, nil
	}
	if err != nil {
		return Result{Status: StatusError, Reason: err.Error()}, err
	}

	email := person.PrimaryEmail()
	if email == "" || person.CostToCompany <= 0 || person.JobID == "" {
		return Result{Status: StatusSkipped, Reason: "missing email, cost, or job id"}, nil
	}

	costPerHour := math.Round(person.CostToCompany/h.Planner.AnnualHours()*100) / 100

	plannerPerson, err := h.Planner.FindPersonByEmail(ctx, email)
	if errors.Is(err, httpx.ErrNotFound) {
		return Result{Status: StatusSkipped, Reason: "no planner person for " + email}, nil
	}
	if err != nil {
		return Result{Status: StatusError, Reason: err.Error()}, err
	}

	contracts, err := h.Planner.ListActiveContracts(ctx, plannerPerson.ID, asOf)
	if err != nil {
		return Result{Status: StatusError, Reason: err.Error()}, err
	}

	patched, failed := 0, 0
	for _, contract := range contracts {
		if math.Abs(contract.CostPerHour-costPerHour) < costPerHourEpsilon {
			continue
		}
		if err := h.Planner.PatchContractCostPerHour(ctx, contract.ID, costPerHour); err != nil {
			failed++
			continue
		}
		patched++
	}

	switch {
	case patched > 0:
		return Result{Status: StatusSynced, Count: patched}, nil
	case failed > 0:
		return Result{Status: StatusError, Reason: fmt.Sprintf("%d contract patches failed", failed)}, fmt.Errorf("reconcile: compensation patch failed for %d contracts", failed)
	default:
		return Result{Status: StatusSkipped, Reason: "no contracts needed a cost-per-hour update"}, nil
	}
}

// CompensationSyncBatch implements §4.3.5: apply Compensation to every
// active HRIS person with compensation data, aggregating counters.
func (h *Handlers) CompensationSyncBatch(ctx context.Context, asOf time.Time) (Result, error) {
	agg := Result{Status: StatusSynced}
	for person, err := range h.HRIS.ListPeople(ctx) {
		if err != nil {
			return agg, fmt.Errorf("reconcile: compensation batch: list people: %w", err)
		}
		if !person.Active || person.CostToCompany <= 0 {
			continue
		}

		result, _ := h.Compensation(ctx, person.ID, asOf)
		agg.Count++
		switch result.Status {
		case StatusError:
			agg.Errors = append(agg.Errors, person.ID+": "+result.Reason)
		}
	}
	return agg, nil
}
