// Package manifest owns the JSON shape of the persisted snapshot manifest
// (spec.md §3 "SnapshotManifest", §4.2 key "culture-amp/state.json"),
// layered over a plain internal/statestore.Store the way the teacher's
// application package wraps its storage interface with domain rules.
package manifest

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nimbushr/syncengine/internal/domain"
	"github.com/nimbushr/syncengine/internal/statestore"
)

// Key is the fixed statestore key the manifest is persisted under.
const Key = "culture-amp/state.json"

// Store owns reading and atomically overwriting the snapshot manifest.
type Store struct {
	backend statestore.Store
}

// New wraps backend as a manifest.Store.
func New(backend statestore.Store) *Store {
	return &Store{backend: backend}
}

// Load returns the current manifest, or an empty one if none has been
// written yet (§4.5.1: a missing manifest is treated as an empty previous
// snapshot).
func (s *Store) Load(ctx context.Context) (domain.Manifest, error) {
	data, found, err := s.backend.Get(ctx, Key)
	if err != nil {
		return nil, fmt.Errorf("manifest: load: %w", err)
	}
	if !found {
		return domain.Manifest{}, nil
	}

	var m domain.Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("manifest: decode: %w", err)
	}
	return m, nil
}

// Save overwrites the manifest atomically (single PUT of the whole blob,
// matching the teacher's overwrite-the-whole-object store semantics).
func (s *Store) Save(ctx context.Context, m domain.Manifest) error {
	data, err := domain.CanonicalJSON(m)
	if err != nil {
		return fmt.Errorf("manifest: encode: %w", err)
	}
	if err := s.backend.Put(ctx, Key, data); err != nil {
		return fmt.Errorf("manifest: save: %w", err)
	}
	return nil
}
