package reconcile

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlugifyStripsDiacriticsAndPunctuation(t *testing.T) {
	assert.Equal(t, "jose", slugify("José"))
	assert.Equal(t, "munoz", slugify("Muñoz"))
	assert.Equal(t, "oconnor", slugify("O'Connor"))
	assert.Equal(t, "", slugify(""))
}

func TestHireGeneratesWorkEmailAndSubmitsImport(t *testing.T) {
	var importSteps []string
	var importedCSV string

	h := newTestHandlers(t,
		func(w http.ResponseWriter, r *http.Request) {
			switch {
			case r.URL.Path == "/people" && r.Method == http.MethodGet:
				q := r.URL.Query().Get("q")
				if q == `workEmail\ana.perez@co.com` {
					writeJSON(w, map[string]any{"items": []map[string]any{{"id": "p-1"}}})
					return
				}
				writeJSON(w, map[string]any{"items": []map[string]any{}})
			case r.URL.Path == "/people_imports" && r.Method == http.MethodPost:
				importSteps = append(importSteps, "create")
				writeJSON(w, map[string]any{"importId": "imp-1"})
			case strings.HasSuffix(r.URL.Path, "/data"):
				importSteps = append(importSteps, "data")
				var body struct {
					CSV string `json:"csv"`
				}
				_ = decodeJSON(r, &body)
				importedCSV = body.CSV
				w.WriteHeader(http.StatusOK)
			case strings.HasSuffix(r.URL.Path, "/submit"):
				importSteps = append(importSteps, "submit")
				w.WriteHeader(http.StatusOK)
			default:
				t.Fatalf("unexpected hris call %s %s", r.Method, r.URL.Path)
			}
		},
		func(w http.ResponseWriter, r *http.Request) { t.Fatalf("planner should not be called without CreatePlannerOnHire") },
		func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, map[string]any{
				"status": "hired",
				"candidate": map[string]any{"firstName": "Ana", "lastName": "Pérez"},
				"job":       map[string]any{"title": "Engineer"},
				"offers":    []map[string]any{{"startDate": "2026-09-01"}},
			})
		},
	)
	h.CorpEmailDomain = "co.com"

	result, err := h.Hire(t.Context(), "app-1")
	require.NoError(t, err)
	assert.Equal(t, StatusSynced, result.Status)
	assert.Equal(t, "ana.perez2@co.com", result.DownstreamID)
	assert.Equal(t, []string{"create", "data", "submit"}, importSteps)
	assert.Contains(t, importedCSV, "ana.perez2@co.com")
}

func TestHireSkipsWhenNotHired(t *testing.T) {
	h := newTestHandlers(t,
		func(w http.ResponseWriter, r *http.Request) { t.Fatalf("hris should not be called") },
		func(w http.ResponseWriter, r *http.Request) { t.Fatalf("planner should not be called") },
		func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, map[string]any{"status": "rejected"})
		},
	)

	result, err := h.Hire(t.Context(), "app-2")
	require.NoError(t, err)
	assert.Equal(t, StatusSkipped, result.Status)
}
