package reconcile

import (
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompensationPatchesStaleContract(t *testing.T) {
	var patchedCostPerHour float64

	h := newTestHandlers(t,
		func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, map[string]any{
				"id": "p-1", "workEmail": "jane@co.com",
				"costToCompany": 185600.0, "jobId": "job-1",
			})
		},
		func(w http.ResponseWriter, r *http.Request) {
			switch {
			case r.URL.Path == "/people" && r.URL.Query().Get("email") == "jane@co.com":
				writeJSON(w, map[string]any{"items": []map[string]any{{"id": "planner-1", "email": "jane@co.com"}}})
			case r.URL.Path == "/people/planner-1/contracts":
				writeJSON(w, []map[string]any{{"id": "c-1", "personId": "planner-1", "costPerHour": 50.0, "startDate": "2026-01-01"}})
			case strings.HasPrefix(r.URL.Path, "/contracts/") && r.Method == http.MethodPatch:
				var body struct {
					CostPerHour float64 `json:"costPerHour"`
				}
				_ = decodeJSON(r, &body)
				patchedCostPerHour = body.CostPerHour
				w.WriteHeader(http.StatusOK)
			default:
				t.Fatalf("unexpected planner call %s %s", r.Method, r.URL.Path)
			}
		},
		nil,
	)

	result, err := h.Compensation(t.Context(), "p-1", time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, StatusSynced, result.Status)
	assert.Equal(t, 1, result.Count)
	assert.InDelta(t, 100.0, patchedCostPerHour, 0.01)
}

func TestCompensationSkipsContractAlreadyCurrent(t *testing.T) {
	h := newTestHandlers(t,
		func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, map[string]any{
				"id": "p-1", "workEmail": "jane@co.com",
				"costToCompany": 185600.0, "jobId": "job-1",
			})
		},
		func(w http.ResponseWriter, r *http.Request) {
			switch {
			case r.URL.Path == "/people" && r.URL.Query().Get("email") == "jane@co.com":
				writeJSON(w, map[string]any{"items": []map[string]any{{"id": "planner-1", "email": "jane@co.com"}}})
			case r.URL.Path == "/people/planner-1/contracts":
				writeJSON(w, []map[string]any{{"id": "c-1", "personId": "planner-1", "costPerHour": 100.0, "startDate": "2026-01-01"}})
			default:
				t.Fatalf("unexpected planner call %s %s", r.Method, r.URL.Path)
			}
		},
		nil,
	)

	result, err := h.Compensation(t.Context(), "p-1", time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, StatusSkipped, result.Status)
}
