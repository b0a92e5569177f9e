package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/dvf-ingest/internal/core/domain"
	"github.com/custodia-labs/dvf-ingest/internal/core/ports/driven"
	"github.com/custodia-labs/dvf-ingest/internal/core/ports/driving"
)

// Ensure HistoryService implements the interface.
var _ driving.HistoryService = (*HistoryService)(nil)

// HistoryService reads recorded ingestion runs.
type HistoryService struct {
	runs driven.RunStore
}

// NewHistoryService creates a new history service.
func NewHistoryService(runs driven.RunStore) *HistoryService {
	return &HistoryService{runs: runs}
}

// List returns at most limit runs, most recent first.
func (s *HistoryService) List(ctx context.Context, limit int) ([]domain.IngestRun, error) {
	runs, err := s.runs.List(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	return runs, nil
}

// Get returns one run.
func (s *HistoryService) Get(ctx context.Context, id string) (*domain.IngestRun, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: run id is required", domain.ErrInvalidInput)
	}
	return s.runs.Get(ctx, id)
}
