package dispatch

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nimbushr/syncengine/internal/client/ats"
	"github.com/nimbushr/syncengine/internal/client/hris"
	"github.com/nimbushr/syncengine/internal/client/planner"
	"github.com/nimbushr/syncengine/internal/config"
	"github.com/nimbushr/syncengine/internal/mapping"
	"github.com/nimbushr/syncengine/internal/metrics"
	"github.com/nimbushr/syncengine/internal/reconcile"
	"github.com/nimbushr/syncengine/internal/statestore/memstore"

	"github.com/prometheus/client_golang/prometheus"
)

func TestClassifyHRISEventMapsPersonAndTimeOffAcrossCasingVariants(t *testing.T) {
	kind, id, ok := classifyHRISEvent(map[string]any{
		"eventType": "Person.Update", "entityType": "Person", "entityId": "p-1",
	})
	require.True(t, ok)
	assert.Equal(t, reconcile.KindPerson, kind)
	assert.Equal(t, "p-1", id)

	kind, id, ok = classifyHRISEvent(map[string]any{
		"event_type": "timeoff_delete", "entity_type": "time_off", "entity_id": "t-9",
	})
	require.True(t, ok)
	assert.Equal(t, reconcile.KindTimeOffDelete, kind)
	assert.Equal(t, "t-9", id)
}

func TestClassifyHRISEventMapsJobCreateAndUpdate(t *testing.T) {
	kind, id, ok := classifyHRISEvent(map[string]any{
		"type": "job_create", "entityType": "job", "entityId": "j-1",
	})
	require.True(t, ok)
	assert.Equal(t, reconcile.KindJob, kind)
	assert.Equal(t, "j-1", id)

	kind, id, ok = classifyHRISEvent(map[string]any{
		"type": "job.update", "entityType": "jobs", "entityId": "j-2",
	})
	require.True(t, ok)
	assert.Equal(t, reconcile.KindJobUpdate, kind)
	assert.Equal(t, "j-2", id)
}

func TestClassifyHRISEventUnsupportedEntityIsSkipped(t *testing.T) {
	_, _, ok := classifyHRISEvent(map[string]any{
		"type": "asset.update", "entityType": "asset", "entityId": "a-1",
	})
	assert.False(t, ok)
}

func TestClassifyHRISEventMissingEntityIDIsSkipped(t *testing.T) {
	_, _, ok := classifyHRISEvent(map[string]any{
		"type": "person.update", "entityType": "person",
	})
	assert.False(t, ok)
}

func TestPeekJSONBodyRewindsBodyForDownstreamDecode(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(`{"id":"abc"}`))

	peeked, err := peekJSONBody(req)
	require.NoError(t, err)
	assert.Equal(t, "abc", peeked["id"])

	var again struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.NewDecoder(req.Body).Decode(&again))
	assert.Equal(t, "abc", again.ID)
}

func TestHandleATSWebhookSignatureMismatchIsNoop(t *testing.T) {
	var hireCalled bool
	atsSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hireCalled = true
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(atsSrv.Close)

	handlers := newTestDispatchHandlers(t, atsSrv.URL)
	handlers.Reconcile.WebhookSigningKey = "secret"

	body := bytes.NewBufferString(`{"resource_id":"app-1"}`)
	req := httptest.NewRequest(http.MethodPost, "/webhooks/ats", body)
	req.Header.Set("Teamtailor-Signature", "not-the-real-signature")
	rec := httptest.NewRecorder()

	handlers.handleATSWebhook(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, hireCalled, "a signature mismatch must not reach the hire flow")
}

func TestHandleATSWebhookMissingResourceIDIsNoop(t *testing.T) {
	handlers := newTestDispatchHandlers(t, "http://unused.invalid")

	req := httptest.NewRequest(http.MethodPost, "/webhooks/ats", bytes.NewBufferString(`{}`))
	rec := httptest.NewRecorder()

	handlers.handleATSWebhook(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHandleRootGETIsLivenessProbe(t *testing.T) {
	handlers := newTestDispatchHandlers(t, "http://unused.invalid")

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	handlers.handleRoot(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
}

func TestRouterServesHealthAndMetrics(t *testing.T) {
	handlers := newTestDispatchHandlers(t, "http://unused.invalid")
	handlers.Registry = prometheus.NewRegistry()
	serverCfg := &config.ServerConfig{}
	require.NoError(t, serverCfg.Validate())

	router := NewRouter(handlers, serverCfg)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

// newTestDispatchHandlers wires a minimal Handlers against in-memory
// mapping/metrics stores and throwaway HRIS/planner servers, mirroring
// internal/reconcile's own newTestHandlers helper — only the ATS base URL
// is exercised by the tests above.
func newTestDispatchHandlers(t *testing.T, atsBaseURL string) *Handlers {
	t.Helper()

	unusedSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(unusedSrv.Close)

	hrisCfg := &config.HRISConfig{BaseURLV2: unusedSrv.URL, BaseURLV1: unusedSrv.URL, APIToken: "t", RequestTimeout: 2 * time.Second, PageSize: 200}
	require.NoError(t, hrisCfg.Validate())
	plannerCfg := &config.PlannerConfig{BaseURL: unusedSrv.URL, APIKey: "t", RequestTimeout: 2 * time.Second}
	require.NoError(t, plannerCfg.Validate())
	atsCfg := &config.ATSConfig{BaseURL: atsBaseURL, APIKey: "t", RequestTimeout: 2 * time.Second}
	require.NoError(t, atsCfg.Validate())

	mappingStore := mapping.New(memstore.New())
	jobMappingStore := mapping.NewJobStore(memstore.New())
	metricsStore := metrics.New(memstore.New(), prometheus.NewRegistry())

	reconcileHandlers := reconcile.New(hris.NewClient(hrisCfg), ats.NewClient(atsCfg), planner.NewClient(plannerCfg), mappingStore, metricsStore, jobMappingStore)

	return &Handlers{Reconcile: reconcileHandlers}
}
