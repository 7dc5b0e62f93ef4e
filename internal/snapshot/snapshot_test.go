package snapshot

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nimbushr/syncengine/internal/client/hris"
	"github.com/nimbushr/syncengine/internal/config"
	"github.com/nimbushr/syncengine/internal/domain"
	"github.com/nimbushr/syncengine/internal/manifest"
	"github.com/nimbushr/syncengine/internal/statestore/memstore"
)

func newTestBuilder(t *testing.T, hrisHandler http.HandlerFunc) *Builder {
	t.Helper()
	srv := httptest.NewServer(hrisHandler)
	t.Cleanup(srv.Close)

	cfg := &config.HRISConfig{BaseURLV2: srv.URL, BaseURLV1: srv.URL, APIToken: "t", RequestTimeout: 2 * time.Second, PageSize: 200}
	require.NoError(t, cfg.Validate())

	return New(hris.NewClient(cfg), manifest.New(memstore.New()), &config.SFTPConfig{})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

// TestBuildRowsResolvesManagerNameAndSkipsEmptyEmail covers the
// Manager/Location resolution decided in DESIGN.md: a manager's display
// name is resolved from the same listing, and a row with no primary
// email is dropped (§4.5.1 "Row generation").
func TestBuildRowsResolvesManagerNameAndSkipsEmptyEmail(t *testing.T) {
	b := newTestBuilder(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{"items": []map[string]any{
			{"id": "mgr-1", "workEmail": "mgr@co.com", "legalName": "Morgan Manager", "startDate": "2020-01-01", "active": true},
			{"id": "p-1", "workEmail": "jane@co.com", "legalName": "Jane Doe", "managerEmail": "mgr@co.com", "city": "Bogota", "startDate": "2024-01-01", "active": true},
			{"id": "p-no-email", "startDate": "2024-01-01", "active": true},
		}})
	})

	rows, hashes, managerless, err := b.buildRows(t.Context())
	require.NoError(t, err)
	assert.Equal(t, 0, managerless)
	assert.Len(t, rows, 2)
	assert.NotContains(t, rows, "p-no-email")

	row := rows["p-1"]
	assert.Equal(t, "Morgan Manager", row.Manager)
	assert.Equal(t, "mgr@co.com", row.ManagerEmail)
	assert.Equal(t, "Bogota", row.Location)
	assert.NotEmpty(t, hashes["p-1"])
}

// TestRunDeltaWithNoChangesSkipsUpload covers §4.5.1 delta step 4 and the
// §8 round-trip law ("full -> delta with no upstream change produces zero
// rows to send"): an unchanged snapshot rewrites the manifest but does
// not attempt an SFTP dial (which would fail against the zero-value
// config used here if it were attempted).
func TestRunDeltaWithNoChangesSkipsUpload(t *testing.T) {
	b := newTestBuilder(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{"items": []map[string]any{
			{"id": "p-1", "workEmail": "jane@co.com", "legalName": "Jane Doe", "startDate": "2024-01-01", "active": true},
		}})
	})

	row := domain.FlattenSnapshotRow(domain.Person{
		ID: "p-1", WorkEmail: "jane@co.com", LegalName: "Jane Doe",
		StartDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}, nil, "")
	hash, err := domain.ContentHash(row.AsMap())
	require.NoError(t, err)
	require.NoError(t, b.Manifest.Save(t.Context(), domain.Manifest{
		"p-1": {ContentHash: hash, HRISPersonID: "p-1", Row: row},
	}))

	summary, err := b.Run(t.Context(), string(config.ExportModeDelta))
	require.NoError(t, err)
	assert.False(t, summary.Uploaded)
	assert.Zero(t, summary.RowsSent)
}

// TestRunFullWithNoPeopleSkipsUpload exercises the full-mode path with an
// empty listing, which must not attempt an SFTP dial either.
func TestRunFullWithNoPeopleSkipsUpload(t *testing.T) {
	b := newTestBuilder(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{"items": []map[string]any{}})
	})

	summary, err := b.Run(t.Context(), string(config.ExportModeFull))
	require.NoError(t, err)
	assert.False(t, summary.Uploaded)
	assert.Zero(t, summary.RowsSent)
}
