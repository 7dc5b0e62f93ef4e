package mapping_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nimbushr/syncengine/internal/domain"
	"github.com/nimbushr/syncengine/internal/mapping"
	"github.com/nimbushr/syncengine/internal/statestore/memstore"
)

func TestLookupMissingEntryReturnsFalse(t *testing.T) {
	ctx := t.Context()
	store := mapping.New(memstore.New())

	_, found, err := store.Lookup(ctx, "ch-timeoff-1")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestPutThenLookupRoundTrips(t *testing.T) {
	ctx := t.Context()
	store := mapping.New(memstore.New())

	entry := domain.TimeOffMappingEntry{
		PlannerTimeOffID: "planner-1",
		Category:         domain.CategoryHolidays,
		OwnerEmail:       "a@example.com",
		CreatedAt:        time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, store.Put(ctx, "ch-timeoff-1", entry))

	got, found, err := store.Lookup(ctx, "ch-timeoff-1")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, entry.PlannerTimeOffID, got.PlannerTimeOffID)
}

func TestDeleteRemovesBothDirections(t *testing.T) {
	ctx := t.Context()
	store := mapping.New(memstore.New())

	entry := domain.TimeOffMappingEntry{PlannerTimeOffID: "planner-2"}
	require.NoError(t, store.Put(ctx, "ch-timeoff-2", entry))
	require.NoError(t, store.Delete(ctx, "ch-timeoff-2"))

	_, found, err := store.Lookup(ctx, "ch-timeoff-2")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestPurgeExpiredRemovesOnlyOldEntries(t *testing.T) {
	ctx := t.Context()
	store := mapping.New(memstore.New())
	now := time.Date(2026, 7, 30, 0, 0, 0, 0, time.UTC)

	old := domain.TimeOffMappingEntry{PlannerTimeOffID: "p-old", CreatedAt: now.Add(-200 * 24 * time.Hour)}
	fresh := domain.TimeOffMappingEntry{PlannerTimeOffID: "p-fresh", CreatedAt: now.Add(-1 * time.Hour)}
	require.NoError(t, store.Put(ctx, "ch-old", old))
	require.NoError(t, store.Put(ctx, "ch-fresh", fresh))

	purged, err := store.PurgeExpired(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, 1, purged)

	_, found, err := store.Lookup(ctx, "ch-old")
	require.NoError(t, err)
	assert.False(t, found)

	_, found, err = store.Lookup(ctx, "ch-fresh")
	require.NoError(t, err)
	assert.True(t, found)
}
