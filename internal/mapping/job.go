package mapping

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nimbushr/syncengine/internal/domain"
	"github.com/nimbushr/syncengine/internal/statestore"
)

// JobKey is the fixed statestore key the HRIS-to-ATS job id mapping is
// persisted under, the job-sync counterpart of Key.
const JobKey = "job_mapping.json"

type jobDocument struct {
	HRISToATS map[string]string `json:"hris_to_ats"`
}

func emptyJobDocument() jobDocument {
	return jobDocument{HRISToATS: make(map[string]string)}
}

// JobStore owns reading, mutating, and atomically overwriting the
// HRIS-to-ATS job id mapping a job create/update reconciliation consults
// to find the downstream job it must patch rather than recreate.
type JobStore struct {
	backend statestore.Store
}

// NewJobStore wraps backend as a mapping.JobStore.
func NewJobStore(backend statestore.Store) *JobStore {
	return &JobStore{backend: backend}
}

func (s *JobStore) load(ctx context.Context) (jobDocument, error) {
	data, found, err := s.backend.Get(ctx, JobKey)
	if err != nil {
		return jobDocument{}, fmt.Errorf("mapping: job: load: %w", err)
	}
	if !found {
		return emptyJobDocument(), nil
	}

	var doc jobDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return jobDocument{}, fmt.Errorf("mapping: job: decode: %w", err)
	}
	if doc.HRISToATS == nil {
		doc.HRISToATS = make(map[string]string)
	}
	return doc, nil
}

func (s *JobStore) save(ctx context.Context, doc jobDocument) error {
	data, err := domain.CanonicalJSON(doc)
	if err != nil {
		return fmt.Errorf("mapping: job: encode: %w", err)
	}
	if err := s.backend.Put(ctx, JobKey, data); err != nil {
		return fmt.Errorf("mapping: job: save: %w", err)
	}
	return nil
}

// Lookup returns the ATS job id mapped to an HRIS job id, consulted on
// job update so it patches the existing downstream job instead of
// creating a duplicate.
func (s *JobStore) Lookup(ctx context.Context, hrisJobID string) (string, bool, error) {
	doc, err := s.load(ctx)
	if err != nil {
		return "", false, err
	}
	atsJobID, ok := doc.HRISToATS[hrisJobID]
	return atsJobID, ok, nil
}

// Put records a new HRIS-to-ATS job id mapping after a confirmed
// downstream create.
func (s *JobStore) Put(ctx context.Context, hrisJobID, atsJobID string) error {
	doc, err := s.load(ctx)
	if err != nil {
		return err
	}
	doc.HRISToATS[hrisJobID] = atsJobID
	return s.save(ctx, doc)
}
