package reconcile

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/nimbushr/syncengine/internal/client/ats"
	"github.com/nimbushr/syncengine/internal/client/hris"
	"github.com/nimbushr/syncengine/internal/client/planner"
	"github.com/nimbushr/syncengine/internal/config"
	"github.com/nimbushr/syncengine/internal/mapping"
	"github.com/nimbushr/syncengine/internal/metrics"
	"github.com/nimbushr/syncengine/internal/statestore/memstore"

	"github.com/prometheus/client_golang/prometheus"
)

// newTestHandlers wires a Handlers against three independent test servers,
// one per remote, plus in-memory mapping/metrics stores.
func newTestHandlers(t *testing.T, hrisHandler, plannerHandler, atsHandler http.HandlerFunc) *Handlers {
	t.Helper()

	hrisSrv := httptest.NewServer(hrisHandler)
	t.Cleanup(hrisSrv.Close)
	plannerSrv := httptest.NewServer(plannerHandler)
	t.Cleanup(plannerSrv.Close)

	hrisCfg := &config.HRISConfig{BaseURLV2: hrisSrv.URL, BaseURLV1: hrisSrv.URL, APIToken: "t", RequestTimeout: 2 * time.Second, PageSize: 200}
	require.NoError(t, hrisCfg.Validate())
	plannerCfg := &config.PlannerConfig{BaseURL: plannerSrv.URL, APIKey: "t", RequestTimeout: 2 * time.Second}
	require.NoError(t, plannerCfg.Validate())

	atsCfg := &config.ATSConfig{BaseURL: "http://unused.invalid", APIKey: "t", RequestTimeout: 2 * time.Second}
	if atsHandler != nil {
		atsSrv := httptest.NewServer(atsHandler)
		t.Cleanup(atsSrv.Close)
		atsCfg.BaseURL = atsSrv.URL
	}
	require.NoError(t, atsCfg.Validate())

	mappingStore := mapping.New(memstore.New())
	jobMappingStore := mapping.NewJobStore(memstore.New())
	metricsStore := metrics.New(memstore.New(), prometheus.NewRegistry())

	return New(hris.NewClient(hrisCfg), ats.NewClient(atsCfg), planner.NewClient(plannerCfg), mappingStore, metricsStore, jobMappingStore)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func decodeJSON(r *http.Request, v any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}
