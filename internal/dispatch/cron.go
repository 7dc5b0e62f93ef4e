package dispatch

import (
	"net/http"
	"time"
)

// handleCronNightly implements §6 "GET /cron/nightly": enqueue the
// snapshot export and ACK quickly (§4.4: "the scheduler expects fast
// ACK"), deterministically naming the task by date so a same-day retry
// dedupes (§4.4 "idempotent within a day").
func (h *Handlers) handleCronNightly(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	taskID := "export-snapshot-" + start.UTC().Format("2006-01-02")

	result, err := h.Enqueuer.Enqueue(r.Context(), "/tasks/export-snapshot", taskID, map[string]string{"mode": h.DefaultExportMode})
	if err != nil {
		writeJSONStatus(w, http.StatusOK, map[string]any{
			"status":     "error",
			"elapsed_ms": time.Since(start).Milliseconds(),
			"error":      err.Error(),
		})
		return
	}
	writeJSONStatus(w, http.StatusOK, map[string]any{
		"status":     "queued",
		"elapsed_ms": time.Since(start).Milliseconds(),
		"task":       result.TaskName,
	})
}

// handleCronOnboarding implements §6 "GET /cron/onboarding": run the
// onboarding batch synchronously and return its summary, unlike the other
// cron routes which only enqueue.
func (h *Handlers) handleCronOnboarding(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	reference := time.Now().UTC().Truncate(24 * time.Hour)

	result, err := h.Reconcile.PersonOnboardingBatch(r.Context(), reference)
	writeCronSummary(w, start, reference, result, err)
}

// handleCronTimeoff implements §6 "GET /cron/timeoff": run the time-off
// batch synchronously and return its summary.
func (h *Handlers) handleCronTimeoff(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	reference := time.Now().UTC().Truncate(24 * time.Hour)

	result, err := h.Reconcile.TimeOffSyncBatch(r.Context(), reference)
	writeCronSummary(w, start, reference, result, err)
}

func writeCronSummary(w http.ResponseWriter, start, reference time.Time, result any, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	writeJSONStatus(w, http.StatusOK, map[string]any{
		"status":        status,
		"elapsed_ms":    time.Since(start).Milliseconds(),
		"reference_date": reference.Format("2006-01-02"),
		"result":        result,
	})
}

// handleCronCompensation implements §6 "GET /cron/compensation": enqueue
// the compensation batch.
func (h *Handlers) handleCronCompensation(w http.ResponseWriter, r *http.Request) {
	h.enqueueBatchTask(w, r, "compensation_sync_batch")
}

// handleCronRecalculateCTC implements §6 "GET /cron/recalculate-ctc":
// enqueue the CTC recalculation batch.
func (h *Handlers) handleCronRecalculateCTC(w http.ResponseWriter, r *http.Request) {
	h.enqueueBatchTask(w, r, "ctc_recalculate_batch")
}

func (h *Handlers) enqueueBatchTask(w http.ResponseWriter, r *http.Request, kind string) {
	result, err := h.Enqueuer.Enqueue(r.Context(), "/tasks/worker", "", map[string]string{"kind": kind})
	if err != nil {
		writeJSONStatus(w, http.StatusOK, map[string]string{"status": "error", "error": err.Error()})
		return
	}
	writeJSONStatus(w, http.StatusOK, map[string]string{"status": "queued", "task": result.TaskName})
}
