package reconcile

import (
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPersonOnboardingBatchUpsertsPeopleStartingInWindow(t *testing.T) {
	reference := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	var upserted []string

	h := newTestHandlers(t,
		func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/people/p-in-window" {
				writeJSON(w, map[string]any{"id": "p-in-window", "startDate": "2026-07-10", "workEmail": "in@co.com", "active": true})
				return
			}
			if r.URL.Path != "/people" {
				t.Fatalf("unexpected hris call %s", r.URL.Path)
			}
			writeJSON(w, map[string]any{"items": []map[string]any{
				{"id": "p-in-window", "startDate": "2026-07-10", "workEmail": "in@co.com", "active": true},
				{"id": "p-before-window", "startDate": "2026-06-01", "workEmail": "before@co.com", "active": true},
				{"id": "p-after-window", "startDate": "2026-08-01", "workEmail": "after@co.com", "active": true},
				{"id": "p-no-start", "workEmail": "nostart@co.com", "active": true},
			}})
		},
		func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, http.MethodPost, r.Method)
			var body struct{ Email string }
			_ = decodeJSON(r, &body)
			upserted = append(upserted, body.Email)
			writeJSON(w, map[string]any{"id": "planner-1"})
		},
		nil,
	)
	h.OnboardingLookaheadDays = 14

	result, err := h.PersonOnboardingBatch(t.Context(), reference)
	require.NoError(t, err)
	assert.Equal(t, StatusSynced, result.Status)
	assert.Equal(t, 1, result.Count)
	assert.Equal(t, []string{"in@co.com"}, upserted)
	assert.Empty(t, result.Errors)
}

func TestTimeOffSyncBatchVisitsEntriesInTheWindow(t *testing.T) {
	reference := time.Date(2026, 7, 15, 0, 0, 0, 0, time.UTC)
	var seen []string

	h := newTestHandlers(t,
		func(w http.ResponseWriter, r *http.Request) {
			switch {
			case r.URL.Path == "/time_off":
				assert.Equal(t, "2026-07-08", r.URL.Query().Get("startDate"))
				assert.Equal(t, "2026-08-14", r.URL.Query().Get("endDate"))
				writeJSON(w, map[string]any{"items": []map[string]any{
					{"id": "to-1", "personEmail": "jane@co.com", "startDate": "2026-07-20", "endDate": "2026-07-21", "status": "approved"},
				}})
			case strings.HasPrefix(r.URL.Path, "/time_off/"):
				seen = append(seen, strings.TrimPrefix(r.URL.Path, "/time_off/"))
				writeJSON(w, map[string]any{"id": "to-1", "personEmail": "jane@co.com", "startDate": "2026-07-20", "endDate": "2026-07-21", "status": "approved"})
			default:
				t.Fatalf("unexpected hris call %s", r.URL.Path)
			}
		},
		func(w http.ResponseWriter, r *http.Request) {
			switch {
			case r.URL.Path == "/people":
				writeJSON(w, map[string]any{"items": []map[string]any{{"id": "pl-1", "email": "jane@co.com"}}})
			case r.URL.Path == "/time-off":
				writeJSON(w, map[string]any{"id": "dn-1"})
			case strings.HasPrefix(r.URL.Path, "/time-off"):
				writeJSON(w, []map[string]any{})
			default:
				writeJSON(w, []map[string]any{})
			}
		},
		nil,
	)
	h.TimeOffLookbackDays = 7
	h.TimeOffLookaheadDays = 30

	result, err := h.TimeOffSyncBatch(t.Context(), reference)
	require.NoError(t, err)
	assert.Equal(t, StatusSynced, result.Status)
	assert.Equal(t, 1, result.Count)
	assert.Equal(t, []string{"to-1"}, seen)
	assert.Empty(t, result.Errors)
}
