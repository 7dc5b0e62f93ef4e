package reconcile

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeOffCreatesAndRecordsMapping(t *testing.T) {
	var createCalled bool

	h := newTestHandlers(t,
		func(w http.ResponseWriter, r *http.Request) {
			switch {
			case strings.HasPrefix(r.URL.Path, "/time_off/"):
				writeJSON(w, map[string]any{
					"id": "to-1", "personId": "p-1",
					"startDate": "2026-08-01", "endDate": "2026-08-05",
					"status": "approved", "reason": "annual leave",
					"personEmail": "jane@co.com",
				})
			default:
				t.Fatalf("unexpected hris path %s", r.URL.Path)
			}
		},
		func(w http.ResponseWriter, r *http.Request) {
			switch {
			case r.URL.Path == "/people" && r.URL.Query().Get("email") == "jane@co.com":
				writeJSON(w, map[string]any{"items": []map[string]any{{"id": "planner-1", "email": "jane@co.com"}}})
			case r.URL.Path == "/time-off" && r.Method == http.MethodPost:
				createCalled = true
				writeJSON(w, map[string]any{"id": "dn-1"})
			case strings.HasPrefix(r.URL.Path, "/holidays") || strings.HasPrefix(r.URL.Path, "/rostered-days-off") || strings.HasPrefix(r.URL.Path, "/time-off"):
				writeJSON(w, []any{})
			default:
				t.Fatalf("unexpected planner path %s %s", r.Method, r.URL.Path)
			}
		},
		nil,
	)

	result, err := h.TimeOff(t.Context(), "to-1")
	require.NoError(t, err)
	assert.True(t, createCalled)
	assert.Equal(t, StatusSynced, result.Status)
	assert.Equal(t, "dn-1", result.DownstreamID)

	entry, found, err := h.Mapping.Lookup(t.Context(), "to-1")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "dn-1", entry.PlannerTimeOffID)
	assert.Equal(t, "jane@co.com", entry.OwnerEmail)
}

func TestTimeOffSkipsDeniedStatus(t *testing.T) {
	h := newTestHandlers(t,
		func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, map[string]any{"id": "to-2", "status": "denied"})
		},
		func(w http.ResponseWriter, r *http.Request) { t.Fatalf("planner should not be called") },
		nil,
	)

	result, err := h.TimeOff(t.Context(), "to-2")
	require.NoError(t, err)
	assert.Equal(t, StatusSkipped, result.Status)
}

func TestTimeOffDeleteWithNoMappingIsNoopSkip(t *testing.T) {
	h := newTestHandlers(t,
		func(w http.ResponseWriter, r *http.Request) { t.Fatalf("hris should not be called") },
		func(w http.ResponseWriter, r *http.Request) { t.Fatalf("planner should not be called") },
		nil,
	)

	result, err := h.TimeOffDelete(t.Context(), "to-missing")
	require.NoError(t, err)
	assert.Equal(t, StatusSkipped, result.Status)
}
