package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/custodia-labs/dvf-ingest/internal/core/domain"
	"github.com/custodia-labs/dvf-ingest/internal/core/ports/driven"
)

// Ensure RunStore implements the interface.
var _ driven.RunStore = (*RunStore)(nil)

// RunStore is an in-memory implementation of driven.RunStore.
type RunStore struct {
	mu   sync.RWMutex
	runs map[string]domain.IngestRun
	seq  map[string]int
	next int
}

// NewRunStore creates a new in-memory run store.
func NewRunStore() *RunStore {
	return &RunStore{
		runs: make(map[string]domain.IngestRun),
		seq:  make(map[string]int),
	}
}

// Save stores or updates a run.
func (s *RunStore) Save(_ context.Context, run domain.IngestRun) error {
	if run.ID == "" {
		return fmt.Errorf("%w: run id is required", domain.ErrInvalidInput)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.seq[run.ID]; !ok {
		s.seq[run.ID] = s.next
		s.next++
	}
	s.runs[run.ID] = run
	return nil
}

// Get retrieves a run by ID.
func (s *RunStore) Get(_ context.Context, id string) (*domain.IngestRun, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	run, ok := s.runs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &run, nil
}

// List returns runs ordered by start time, most recent first. Runs that
// started at the same instant are ordered by insertion, newest first.
func (s *RunStore) List(_ context.Context, limit int) ([]domain.IngestRun, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.IngestRun, 0, len(s.runs))
	for _, run := range s.runs {
		result = append(result, run)
	}
	sort.Slice(result, func(i, j int) bool {
		a, b := result[i], result[j]
		if !a.StartedAt.Equal(b.StartedAt) {
			return a.StartedAt.After(b.StartedAt)
		}
		return s.seq[a.ID] > s.seq[b.ID]
	})

	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}
