package dispatch

import (
	"encoding/json"
	"net/http"

	"github.com/nimbushr/syncengine/internal/reconcile"
)

// handleTaskWorker implements §4.4/§6 "POST /tasks/worker": typed payload
// {kind, entity_id}, routed to the matching reconciler handler.
func (h *Handlers) handleTaskWorker(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Kind     string `json:"kind"`
		EntityID string `json:"entity_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.Kind == "" || payload.EntityID == "" {
		writeJSONStatus(w, http.StatusBadRequest, map[string]string{"error": "kind and entity_id are required"})
		return
	}

	result, err := h.Reconcile.Dispatch(r.Context(), reconcile.Kind(payload.Kind), payload.EntityID)
	if err != nil {
		// Non-2xx so the task platform retries (§7 "downstream write:
		// retryable at the task level"); the task is idempotent under
		// at-least-once delivery (§4.4, §5).
		writeJSONStatus(w, http.StatusBadGateway, result)
		return
	}
	writeJSONStatus(w, http.StatusOK, result)
}

// handleExportSnapshot implements §6 "POST /tasks/export-snapshot": an
// optional {"mode": "full"|"delta"} body overrides the configured default
// mode for this one run.
func (h *Handlers) handleExportSnapshot(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Mode string `json:"mode"`
	}
	_ = json.NewDecoder(r.Body).Decode(&payload)

	mode := payload.Mode
	if mode == "" {
		mode = h.DefaultExportMode
	}

	summary, err := h.Snapshot.Run(r.Context(), mode)
	if err != nil {
		writeJSONStatus(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSONStatus(w, http.StatusOK, summary)
}

// handleExportWarehouse implements §6 "POST /tasks/export-warehouse". An
// optional body requests a scoped backfill for actuals/assignments
// (§4.5.2 "Backfill"): {"collection", "date_from", "date_to", "person_id"}.
func (h *Handlers) handleExportWarehouse(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Collection string `json:"collection"`
		DateFrom   string `json:"date_from"`
		DateTo     string `json:"date_to"`
		PersonID   string `json:"person_id"`
	}
	_ = json.NewDecoder(r.Body).Decode(&payload)

	var summary any
	var err error
	if payload.Collection != "" && payload.DateFrom != "" && payload.DateTo != "" {
		summary, err = h.Warehouse.Backfill(r.Context(), payload.Collection, payload.DateFrom, payload.DateTo, payload.PersonID)
	} else {
		summary, err = h.Warehouse.Run(r.Context())
	}
	if err != nil {
		writeJSONStatus(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSONStatus(w, http.StatusOK, summary)
}

func writeJSONStatus(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
