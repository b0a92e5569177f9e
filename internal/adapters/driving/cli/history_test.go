package cli

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/dvf-ingest/internal/core/domain"
)

func sampleRuns() []domain.IngestRun {
	start := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	return []domain.IngestRun{
		{
			ID:          "run-ok",
			Year:        2023,
			DatasetID:   "5c4ae55a634f4117716d5656",
			ResourceURL: "https://x/2023.txt.zip",
			OutputPath:  "data/processed/dvf_2023.parquet",
			Rows:        1200,
			Columns:     43,
			Bytes:       2_000_000,
			Status:      domain.RunStatusSucceeded,
			StartedAt:   start,
			EndedAt:     start.Add(90 * time.Second),
		},
		{
			ID:        "run-bad",
			Year:      2031,
			Status:    domain.RunStatusFailed,
			Error:     "locate: no data found for year: 2031",
			StartedAt: start.Add(-time.Hour),
			EndedAt:   start.Add(-time.Hour + time.Second),
		},
	}
}

func TestHistoryCmd_Use(t *testing.T) {
	assert.Equal(t, "history", historyCmd.Use)
	flag := historyCmd.Flags().Lookup("limit")
	require.NotNil(t, flag)
	assert.Equal(t, "n", flag.Shorthand)
	assert.Equal(t, "10", flag.DefValue)
}

func TestHistoryCmd_List(t *testing.T) {
	mock := &mockHistoryService{runs: sampleRuns()}
	historyService = mock

	out, err := executeCommand(t, "history", "-n", "5")

	require.NoError(t, err)
	assert.Equal(t, 5, mock.limit)
	assert.Contains(t, out, "run-ok")
	assert.Contains(t, out, "1,200 rows")
	assert.Contains(t, out, "2.0 MB")
	assert.Contains(t, out, "run-bad")
	assert.Contains(t, out, "failed")
}

func TestHistoryCmd_Empty(t *testing.T) {
	historyService = &mockHistoryService{}

	out, err := executeCommand(t, "history")

	require.NoError(t, err)
	assert.Contains(t, out, "No runs recorded.")
}

func TestHistoryShowCmd(t *testing.T) {
	historyService = &mockHistoryService{runs: sampleRuns()}

	out, err := executeCommand(t, "history", "show", "run-ok")

	require.NoError(t, err)
	assert.Contains(t, out, "Run run-ok")
	assert.Contains(t, out, "succeeded")
	assert.Contains(t, out, "https://x/2023.txt.zip")
	assert.Contains(t, out, "1m30s")
	assert.NotContains(t, out, "Error")
}

func TestHistoryShowCmd_Failed(t *testing.T) {
	historyService = &mockHistoryService{runs: sampleRuns()}

	out, err := executeCommand(t, "history", "show", "run-bad")

	require.NoError(t, err)
	assert.Contains(t, out, "no data found for year: 2031")
}

func TestHistoryShowCmd_NotFound(t *testing.T) {
	historyService = &mockHistoryService{runs: sampleRuns()}

	_, err := executeCommand(t, "history", "show", "nope")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestHistoryCmd_NotConfigured(t *testing.T) {
	_, err := executeCommand(t, "history")
	assert.EqualError(t, err, "history service not configured")
}
