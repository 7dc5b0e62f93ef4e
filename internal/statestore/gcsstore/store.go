// Package gcsstore is a GCS-backed internal/statestore.Store, adapted from
// the teacher's object-per-entity GCS store: this one is repointed at a
// small fixed set of named keys instead of one object per aggregate, so it
// drops CreateList/ListLists entirely in favor of a plain Get/Put pair.
package gcsstore

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"cloud.google.com/go/storage"
)

// Store is a GCS-based implementation of statestore.Store.
type Store struct {
	client *storage.Client
	bucket string
}

// NewStore creates a new GCS-backed state store. It assumes the client is
// authenticated (e.g. via GOOGLE_APPLICATION_CREDENTIALS).
func NewStore(ctx context.Context, bucketName string) (*Store, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("statestore: create GCS client: %w", err)
	}
	return &Store{client: client, bucket: bucketName}, nil
}

// Close releases the underlying GCS client.
func (s *Store) Close() error {
	return s.client.Close()
}

// Get reads the object named key from the bucket.
func (s *Store) Get(ctx context.Context, key string) ([]byte, bool, error) {
	obj := s.client.Bucket(s.bucket).Object(key)

	r, err := obj.NewReader(ctx)
	if errors.Is(err, storage.ErrObjectNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("statestore: read %s: %w", key, err)
	}
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, false, fmt.Errorf("statestore: drain %s: %w", key, err)
	}
	return data, true, nil
}

// Put overwrites the object named key with data.
func (s *Store) Put(ctx context.Context, key string, data []byte) error {
	obj := s.client.Bucket(s.bucket).Object(key)
	w := obj.NewWriter(ctx)
	w.ContentType = "application/json"

	if _, err := io.Copy(w, bytes.NewReader(data)); err != nil {
		_ = w.Close()
		return fmt.Errorf("statestore: write %s: %w", key, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("statestore: close %s: %w", key, err)
	}
	return nil
}
