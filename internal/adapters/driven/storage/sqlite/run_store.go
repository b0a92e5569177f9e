package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/custodia-labs/dvf-ingest/internal/core/domain"
	"github.com/custodia-labs/dvf-ingest/internal/core/ports/driven"
)

// timeLayout is a fixed-width UTC layout so stored timestamps sort as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// runStore implements driven.RunStore.
type runStore struct {
	store *Store
}

var _ driven.RunStore = (*runStore)(nil)

// Save stores or updates a run.
func (s *runStore) Save(ctx context.Context, run domain.IngestRun) error {
	if run.ID == "" {
		return fmt.Errorf("%w: run id is required", domain.ErrInvalidInput)
	}

	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO ingest_runs (id, year, dataset_id, resource_url, output_path,
			row_count, column_count, byte_count, status, error, started_at, ended_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			year = excluded.year,
			dataset_id = excluded.dataset_id,
			resource_url = excluded.resource_url,
			output_path = excluded.output_path,
			row_count = excluded.row_count,
			column_count = excluded.column_count,
			byte_count = excluded.byte_count,
			status = excluded.status,
			error = excluded.error,
			started_at = excluded.started_at,
			ended_at = excluded.ended_at
	`, run.ID, run.Year, nullString(run.DatasetID), nullString(run.ResourceURL), run.OutputPath,
		run.Rows, run.Columns, run.Bytes, string(run.Status), nullString(run.Error),
		run.StartedAt.UTC().Format(timeLayout), formatNullableTime(run.EndedAt))

	if err != nil {
		return fmt.Errorf("saving ingest run: %w", err)
	}
	return nil
}

// Get retrieves a run by ID.
func (s *runStore) Get(ctx context.Context, id string) (*domain.IngestRun, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, year, dataset_id, resource_url, output_path,
			row_count, column_count, byte_count, status, error, started_at, ended_at
		FROM ingest_runs WHERE id = ?
	`, id)

	run, err := scanRun(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return run, nil
}

// List returns recent runs, most recent first.
func (s *runStore) List(ctx context.Context, limit int) ([]domain.IngestRun, error) {
	if limit <= 0 {
		limit = -1 // SQLite: no limit
	}

	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, year, dataset_id, resource_url, output_path,
			row_count, column_count, byte_count, status, error, started_at, ended_at
		FROM ingest_runs
		ORDER BY started_at DESC, rowid DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying ingest runs: %w", err)
	}
	defer rows.Close()

	var runs []domain.IngestRun //nolint:prealloc // size unknown from query
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, *run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating ingest runs: %w", err)
	}

	return runs, nil
}

// ==================== Helper Functions ====================

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// scanRun scans a single ingest run.
func scanRun(row scanner) (*domain.IngestRun, error) {
	var run domain.IngestRun
	var datasetID, resourceURL, errMsg, endedAt sql.NullString
	var status, startedAt string

	if err := row.Scan(&run.ID, &run.Year, &datasetID, &resourceURL, &run.OutputPath,
		&run.Rows, &run.Columns, &run.Bytes, &status, &errMsg, &startedAt, &endedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning ingest run: %w", err)
	}

	run.DatasetID = datasetID.String
	run.ResourceURL = resourceURL.String
	run.Error = errMsg.String
	run.Status = domain.RunStatus(status)
	if t, err := time.Parse(timeLayout, startedAt); err == nil {
		run.StartedAt = t
	}
	run.EndedAt = parseNullableTime(endedAt)

	return &run, nil
}

// formatNullableTime formats a time in timeLayout, or returns nil for zero time.
func formatNullableTime(t time.Time) interface{} {
	if t.IsZero() {
		return nil
	}
	return t.UTC().Format(timeLayout)
}

// parseNullableTime parses a nullable timestamp.
// Returns zero time if the string is empty or invalid.
func parseNullableTime(s sql.NullString) time.Time {
	if !s.Valid || s.String == "" {
		return time.Time{}
	}
	t, err := time.Parse(timeLayout, s.String)
	if err != nil {
		return time.Time{}
	}
	return t
}

// nullString returns nil for empty strings, otherwise the string.
func nullString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
