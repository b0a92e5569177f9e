package services

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/dvf-ingest/internal/core/domain"
	"github.com/custodia-labs/dvf-ingest/internal/core/ports/driven"
	"github.com/custodia-labs/dvf-ingest/internal/core/ports/driving"
	"github.com/custodia-labs/dvf-ingest/internal/logger"
)

// Ensure IngestService implements the interface.
var _ driving.IngestService = (*IngestService)(nil)

// IngestService runs resolve, locate, fetch, load, transform and export
// strictly in order and records every run.
type IngestService struct {
	resolver    *DatasetResolver
	locator     *ResourceLocator
	fetcher     *Fetcher
	transformer *Transformer
	exporter    *Exporter
	runs        driven.RunStore
	metrics     driven.PipelineMetrics
	paths       domain.PathSettings

	now   func() time.Time
	newID func() string
}

// NewIngestService creates a new ingest service.
// The run store and metrics are optional - if nil, runs are not recorded
// and no metrics are collected.
func NewIngestService(
	resolver *DatasetResolver,
	locator *ResourceLocator,
	fetcher *Fetcher,
	transformer *Transformer,
	exporter *Exporter,
	runs driven.RunStore,
	metrics driven.PipelineMetrics,
	paths domain.PathSettings,
) *IngestService {
	return &IngestService{
		resolver:    resolver,
		locator:     locator,
		fetcher:     fetcher,
		transformer: transformer,
		exporter:    exporter,
		runs:        runs,
		metrics:     metrics,
		paths:       paths,
		now:         time.Now,
		newID:       func() string { return uuid.New().String() },
	}
}

// DefaultOutputPath returns <processed_dir>/dvf_{year}.parquet.
func (s *IngestService) DefaultOutputPath(year int) string {
	return filepath.Join(s.paths.ProcessedDir, fmt.Sprintf("dvf_%d.parquet", year))
}

// Ingest runs the pipeline for one year. It stops at the first failing
// stage; failures to record the run are logged and never replace the
// pipeline result.
func (s *IngestService) Ingest(ctx context.Context, req domain.IngestRequest) (*domain.IngestResult, error) {
	if req.Year <= 0 {
		return nil, fmt.Errorf("%w: year must be positive, got %d", domain.ErrInvalidInput, req.Year)
	}
	if req.OutputPath == "" {
		req.OutputPath = s.DefaultOutputPath(req.Year)
	}

	started := s.now()
	result := &domain.IngestResult{
		RunID:      s.newID(),
		OutputPath: req.OutputPath,
	}

	logger.Info("Starting ingest run %s for %d", result.RunID, req.Year)
	err := s.run(ctx, req, result)
	result.Duration = s.now().Sub(started)

	s.record(ctx, req, result, started, err)

	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *IngestService) run(ctx context.Context, req domain.IngestRequest, result *domain.IngestResult) error {
	err := s.stage(req, domain.StageResolve, func() (string, error) {
		id, err := s.resolver.Resolve(ctx)
		result.DatasetID = id
		return id, err
	})
	if err != nil {
		return err
	}

	err = s.stage(req, domain.StageLocate, func() (string, error) {
		res, err := s.locator.Locate(ctx, result.DatasetID, req.Year)
		if err != nil {
			return "", err
		}
		result.Resource = *res
		return res.URL, nil
	})
	if err != nil {
		return err
	}

	err = s.stage(req, domain.StageFetch, func() (string, error) {
		var downloaded int64
		progress := func(written, total int64) {
			downloaded = written
			if req.Progress != nil {
				req.Progress(written, total)
			}
		}
		path, err := s.fetcher.Fetch(ctx, result.Resource.URL, s.paths.RawDir, progress)
		if s.metrics != nil {
			s.metrics.AddBytes("download", downloaded)
		}
		result.RawPath = path
		return path, err
	})
	if err != nil {
		return err
	}

	var table *domain.Table
	err = s.stage(req, domain.StageLoad, func() (string, error) {
		var err error
		table, err = s.transformer.Load(ctx, result.RawPath)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%d rows", table.NumRows()), nil
	})
	if err != nil {
		return err
	}

	err = s.stage(req, domain.StageTransform, func() (string, error) {
		var err error
		table, err = s.transformer.Transform(table)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%d columns", table.NumColumns()), nil
	})
	if err != nil {
		return err
	}

	return s.stage(req, domain.StageExport, func() (string, error) {
		n, err := s.exporter.Export(ctx, table, req.OutputPath)
		if err != nil {
			return "", err
		}
		result.Rows = table.NumRows()
		result.Columns = table.NumColumns()
		result.Bytes = n
		if s.metrics != nil {
			s.metrics.AddBytes("export", n)
			s.metrics.SetRows(result.Rows, result.Columns)
		}
		return req.OutputPath, nil
	})
}

// stage times fn, reports it and wraps its error with the stage name.
func (s *IngestService) stage(req domain.IngestRequest, name string, fn func() (string, error)) error {
	start := s.now()
	detail, err := fn()
	d := s.now().Sub(start)

	if s.metrics != nil {
		s.metrics.ObserveStage(name, d, err)
	}
	logger.Stage(name, d)
	if req.OnStage != nil {
		req.OnStage(domain.StageEvent{Stage: name, Detail: detail, Duration: d, Err: err})
	}

	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

// record saves the run and flushes metrics.
func (s *IngestService) record(
	ctx context.Context,
	req domain.IngestRequest,
	result *domain.IngestResult,
	started time.Time,
	runErr error,
) {
	if s.metrics != nil {
		if err := s.metrics.Flush(); err != nil {
			logger.Warn("Failed to flush metrics: %v", err)
		}
	}
	if s.runs == nil {
		return
	}

	run := domain.IngestRun{
		ID:          result.RunID,
		Year:        req.Year,
		DatasetID:   result.DatasetID,
		ResourceURL: result.Resource.URL,
		OutputPath:  result.OutputPath,
		Rows:        result.Rows,
		Columns:     result.Columns,
		Bytes:       result.Bytes,
		Status:      domain.RunStatusSucceeded,
		StartedAt:   started,
		EndedAt:     started.Add(result.Duration),
	}
	if runErr != nil {
		run.Status = domain.RunStatusFailed
		run.Error = runErr.Error()
	}

	// Record even if the caller's context was cancelled.
	if err := s.runs.Save(context.WithoutCancel(ctx), run); err != nil {
		logger.Warn("Failed to record run %s: %v", run.ID, err)
	}
}
