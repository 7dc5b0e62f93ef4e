package reconcile

import (
	"context"
	"fmt"
	"time"
)

// Default lookahead/lookback windows for the windowed cron syncs (§6
// `/cron/onboarding`, `/cron/timeoff`). The retrieved upstream configuration
// for these three values could not be recovered in full (see DESIGN.md);
// these defaults mirror the shape of the upstream's own window (a short
// look-forward for onboarding, a month-ish look-back/lookahead straddle for
// time-off, wide enough to catch a typical HRIS approval lag) and are
// overridable per Handlers instance.
const (
	DefaultOnboardingLookaheadDays = 14
	DefaultTimeOffLookbackDays     = 7
	DefaultTimeOffLookaheadDays    = 30
)

// PersonOnboardingBatch implements the `/cron/onboarding` windowed sync:
// upsert every HRIS person whose start date falls within
// [reference, reference+OnboardingLookaheadDays], a client-side filter over
// the full active listing. This is distinct from Person, which upserts a
// single person by id on a webhook/task trigger.
func (h *Handlers) PersonOnboardingBatch(ctx context.Context, reference time.Time) (Result, error) {
	lookahead := h.OnboardingLookaheadDays
	if lookahead <= 0 {
		lookahead = DefaultOnboardingLookaheadDays
	}
	windowStart := reference
	windowEnd := reference.AddDate(0, 0, lookahead)

	agg := Result{Status: StatusSynced}
	for person, err := range h.HRIS.ListPeople(ctx) {
		if err != nil {
			return agg, fmt.Errorf("reconcile: onboarding batch: list people: %w", err)
		}
		if person.StartDate.IsZero() {
			continue
		}
		start := person.StartDate
		if start.Before(windowStart) || start.After(windowEnd) {
			continue
		}

		result, _ := h.Person(ctx, person.ID)
		agg.Count++
		if result.Status == StatusError {
			agg.Errors = append(agg.Errors, person.ID+": "+result.Reason)
		}
	}
	return agg, nil
}

// TimeOffSyncBatch implements the `/cron/timeoff` windowed sync: run
// TimeOff over every HRIS time-off entry whose window overlaps
// [reference-TimeOffLookbackDays, reference+TimeOffLookaheadDays]. Create
// vs. update is still decided per entry by TimeOff's own mapping lookup;
// this batch only selects which entries to visit.
func (h *Handlers) TimeOffSyncBatch(ctx context.Context, reference time.Time) (Result, error) {
	lookback := h.TimeOffLookbackDays
	if lookback <= 0 {
		lookback = DefaultTimeOffLookbackDays
	}
	lookahead := h.TimeOffLookaheadDays
	if lookahead <= 0 {
		lookahead = DefaultTimeOffLookaheadDays
	}
	from := reference.AddDate(0, 0, -lookback)
	to := reference.AddDate(0, 0, lookahead)

	agg := Result{Status: StatusSynced}
	for entry, err := range h.HRIS.ListTimeOff(ctx, from, to) {
		if err != nil {
			return agg, fmt.Errorf("reconcile: timeoff batch: list time off: %w", err)
		}

		result, _ := h.TimeOff(ctx, entry.ID)
		agg.Count++
		if result.Status == StatusError {
			agg.Errors = append(agg.Errors, entry.ID+": "+result.Reason)
		}
	}
	return agg, nil
}
