package metrics_test

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nimbushr/syncengine/internal/domain"
	"github.com/nimbushr/syncengine/internal/metrics"
	"github.com/nimbushr/syncengine/internal/statestore/memstore"
)

func TestLoadWithNoPriorMetricsReturnsFreshDocument(t *testing.T) {
	ctx := t.Context()
	store := metrics.New(memstore.New(), prometheus.NewRegistry())

	m, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, m.Counters)
	assert.Empty(t, m.LastErrors)
}

func TestRecordOutcomeBumpsCounterAndMarksSync(t *testing.T) {
	ctx := t.Context()
	store := metrics.New(memstore.New(), prometheus.NewRegistry())
	at := time.Date(2026, 7, 30, 12, 0, 0, 0, time.UTC)

	require.NoError(t, store.RecordOutcome(ctx, "timeoff", "synced", nil, at))

	m, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, m.Counters["synced"])
	assert.Equal(t, at, m.LastSync["timeoff"])
	assert.Empty(t, m.LastErrors)
}

func TestRecordOutcomeWithErrorRecordsButDoesNotMarkSync(t *testing.T) {
	ctx := t.Context()
	store := metrics.New(memstore.New(), prometheus.NewRegistry())
	at := time.Date(2026, 7, 30, 12, 0, 0, 0, time.UTC)

	rec := &domain.ErrorRecord{Time: at, Kind: "timeoff", EntityID: "e1", Message: "boom"}
	require.NoError(t, store.RecordOutcome(ctx, "timeoff", "error", rec, at))

	m, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, m.Counters["error"])
	require.Len(t, m.LastErrors, 1)
	assert.Equal(t, "boom", m.LastErrors[0].Message)
	assert.NotContains(t, m.LastSync, "timeoff")
}
