package statestore_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nimbushr/syncengine/internal/statestore"
	"github.com/nimbushr/syncengine/internal/statestore/memstore"
)

// runConformanceSuite runs a standard set of tests against a Store
// implementation, grounded on the teacher's internal/storage/compliance
// suite pattern of running one shared test function against every backend.
func runConformanceSuite(t *testing.T, setup func() statestore.Store) {
	t.Run("GetMissingKeyReturnsFalseNotError", func(t *testing.T) {
		store := setup()
		ctx := context.Background()

		data, found, err := store.Get(ctx, "does/not/exist.json")
		require.NoError(t, err)
		assert.False(t, found)
		assert.Nil(t, data)
	})

	t.Run("PutThenGetRoundTrips", func(t *testing.T) {
		store := setup()
		ctx := context.Background()

		require.NoError(t, store.Put(ctx, "culture-amp/state.json", []byte(`{"a":1}`)))

		data, found, err := store.Get(ctx, "culture-amp/state.json")
		require.NoError(t, err)
		require.True(t, found)
		assert.JSONEq(t, `{"a":1}`, string(data))
	})

	t.Run("PutOverwritesExistingValue", func(t *testing.T) {
		store := setup()
		ctx := context.Background()

		require.NoError(t, store.Put(ctx, "timeoff_mapping.json", []byte(`{"v":1}`)))
		require.NoError(t, store.Put(ctx, "timeoff_mapping.json", []byte(`{"v":2}`)))

		data, found, err := store.Get(ctx, "timeoff_mapping.json")
		require.NoError(t, err)
		require.True(t, found)
		assert.JSONEq(t, `{"v":2}`, string(data))
	})

	t.Run("KeysAreIndependent", func(t *testing.T) {
		store := setup()
		ctx := context.Background()

		require.NoError(t, store.Put(ctx, "a.json", []byte("a")))
		require.NoError(t, store.Put(ctx, "b.json", []byte("b")))

		av, _, err := store.Get(ctx, "a.json")
		require.NoError(t, err)
		bv, _, err := store.Get(ctx, "b.json")
		require.NoError(t, err)

		assert.Equal(t, "a", string(av))
		assert.Equal(t, "b", string(bv))
	})
}

func TestMemstoreConformance(t *testing.T) {
	runConformanceSuite(t, func() statestore.Store {
		return memstore.New()
	})
}
