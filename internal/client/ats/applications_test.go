package ats

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nimbushr/syncengine/internal/config"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := &config.ATSConfig{BaseURL: srv.URL, APIKey: "key", RequestTimeout: 2 * time.Second}
	require.NoError(t, cfg.Validate())
	return NewClient(cfg)
}

func TestGetApplicationDerivesOfferStartDate(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "candidate,job,offers", r.URL.Query().Get("include"))
		w.Header().Set("Content-Type", "application/json")
		dto := applicationDTO{ID: "app-1", Status: "hired"}
		dto.Candidate.FirstName = "Ada"
		dto.Candidate.LastName = "Lovelace"
		dto.Candidate.Email = "ada@example.com"
		dto.Offers = []struct {
			StartDate     string `json:"startDate"`
			AttributeDate string `json:"attributeStartDate"`
		}{{StartDate: "2026-02-01"}}
		_ = json.NewEncoder(w).Encode(dto)
	})

	event, err := client.GetApplication(t.Context(), "app-1")
	require.NoError(t, err)
	assert.True(t, event.IsHired())

	start, ok := event.StartDate()
	require.True(t, ok)
	assert.Equal(t, "2026-02-01", start.Format("2006-01-02"))
}
