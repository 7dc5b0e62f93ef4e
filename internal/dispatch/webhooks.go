package dispatch

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/nimbushr/syncengine/internal/client/ats"
	"github.com/nimbushr/syncengine/internal/reconcile"
)

// handleHRISWebhook implements §4.4 "POST /webhooks/hris": classify and
// enqueue. It always returns 200 — a malformed or unrecognized event is
// logged and dropped, never surfaced to the sender (§7: "webhooks always
// return 200 to prevent upstream retry storms").
func (h *Handlers) handleHRISWebhook(w http.ResponseWriter, r *http.Request) {
	var body map[string]any
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		slog.WarnContext(r.Context(), "hris webhook: malformed body", "error", err)
		w.WriteHeader(http.StatusOK)
		return
	}

	kind, entityID, ok := classifyHRISEvent(body)
	if !ok {
		slog.InfoContext(r.Context(), "hris webhook: unrecognized or unsupported event, skipping")
		w.WriteHeader(http.StatusOK)
		return
	}

	if _, err := h.Enqueuer.Enqueue(r.Context(), "/tasks/worker", "", map[string]string{
		"kind":      string(kind),
		"entity_id": entityID,
	}); err != nil {
		slog.ErrorContext(r.Context(), "hris webhook: enqueue failed", "kind", kind, "entity_id", entityID, "error", err)
	}
	w.WriteHeader(http.StatusOK)
}

// handleATSWebhook implements §4.4 "POST /webhooks/ats" and §4.3.7's HMAC
// verification: a signature mismatch is opaque to the sender (still 200,
// no side effect) rather than surfaced as an authentication failure.
func (h *Handlers) handleATSWebhook(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ResourceID string `json:"resource_id"`
		ID         string `json:"id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		slog.WarnContext(r.Context(), "ats webhook: malformed body", "error", err)
		w.WriteHeader(http.StatusOK)
		return
	}
	resourceID := body.ResourceID
	if resourceID == "" {
		resourceID = body.ID
	}
	if resourceID == "" {
		w.WriteHeader(http.StatusOK)
		return
	}

	signingKey := h.Reconcile.WebhookSigningKey
	if signingKey != "" {
		sig := r.Header.Get("Teamtailor-Signature")
		if !ats.VerifySignature(signingKey, resourceID, sig) {
			slog.WarnContext(r.Context(), "ats webhook: signature mismatch", "resource_id", resourceID)
			w.WriteHeader(http.StatusOK)
			return
		}
	}

	if _, err := h.Reconcile.Dispatch(r.Context(), reconcile.KindHire, resourceID); err != nil {
		slog.ErrorContext(r.Context(), "ats webhook: hire flow failed", "resource_id", resourceID, "error", err)
	}
	w.WriteHeader(http.StatusOK)
}

// handleRoot implements §6 "GET/POST /": delegate to the HRIS or ATS
// handler by shape. An ATS webhook body carries resource_id/id; an HRIS
// event carries one of the entityId key variants. Anything else is a
// liveness probe.
func (h *Handlers) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
		return
	}

	body, err := peekJSONBody(r)
	if err != nil {
		w.WriteHeader(http.StatusOK)
		return
	}
	if body["resource_id"] != nil || body["id"] != nil {
		h.handleATSWebhook(w, r)
		return
	}
	h.handleHRISWebhook(w, r)
}
