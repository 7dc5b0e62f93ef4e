package planner

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nimbushr/syncengine/internal/config"
	"github.com/nimbushr/syncengine/internal/domain"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := &config.PlannerConfig{
		BaseURL:           srv.URL,
		APIKey:            "key",
		RequestTimeout:    2 * time.Second,
		RateLimitRequests: 1000,
		RateLimitWindow:   time.Minute,
		PersonCacheTTL:    time.Minute,
		AnnualHours:       1856,
	}
	require.NoError(t, cfg.Validate())
	return NewClient(cfg)
}

func TestFindPersonByEmailDirectHit(t *testing.T) {
	calls := 0
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(peoplePage{Items: []personDTO{{ID: "p1", Email: "a@co.com"}}})
	})

	p, err := client.FindPersonByEmail(t.Context(), "a@co.com")
	require.NoError(t, err)
	assert.Equal(t, "p1", p.ID)

	// Second call hits the cache, not the server.
	_, err = client.FindPersonByEmail(t.Context(), "a@co.com")
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestFindPersonByEmailFallsBackToFullScan(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Query().Get("email") != "" {
			_ = json.NewEncoder(w).Encode(peoplePage{})
			return
		}
		_ = json.NewEncoder(w).Encode(peoplePage{Items: []personDTO{{ID: "p2", Email: "b@co.com"}}})
	})

	p, err := client.FindPersonByEmail(t.Context(), "b@co.com")
	require.NoError(t, err)
	assert.Equal(t, "p2", p.ID)
}

func TestListActiveContractsFiltersByDate(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode([]Contract{
			{ID: "c1", StartDate: "2020-01-01", EndDate: "2021-01-01"},
			{ID: "c2", StartDate: "2025-01-01"},
		})
	})

	contracts, err := client.ListActiveContracts(t.Context(), "p1", time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, contracts, 1)
	assert.Equal(t, "c2", contracts[0].ID)
}

func TestTimeOffEndpointRoutingByCategory(t *testing.T) {
	var gotPath string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(TimeOff{ID: "t1"})
	})

	_, err := client.CreateTimeOff(t.Context(), "p1", domain.CategoryHolidays, "2026-01-01", "2026-01-02", "note")
	require.NoError(t, err)
	assert.Equal(t, "/holidays", gotPath)

	_, err = client.CreateTimeOff(t.Context(), "p1", domain.CategoryLeave, "2026-01-01", "2026-01-02", "note")
	require.NoError(t, err)
	assert.Equal(t, "/time-off", gotPath)
}
