package cli

import (
	"bytes"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/dvf-ingest/internal/core/domain"
)

func sampleResult() *domain.IngestResult {
	return &domain.IngestResult{
		RunID:      "0b6f9c1e-run",
		DatasetID:  "5c4ae55a634f4117716d5656",
		Resource:   domain.Resource{Title: "Valeurs foncières 2023", URL: "https://x/2023.txt.zip"},
		OutputPath: "data/processed/dvf_2023.parquet",
		Rows:       3_799_078,
		Columns:    43,
		Bytes:      180 * 1000 * 1000,
		Duration:   95 * time.Second,
	}
}

func TestIngestCmd_Use(t *testing.T) {
	assert.Equal(t, "ingest", ingestCmd.Use)
	assert.NotNil(t, ingestCmd.Flags().Lookup("year"))
	assert.NotNil(t, ingestCmd.Flags().Lookup("output"))
}

func TestIngestCmd_Success(t *testing.T) {
	mock := &mockIngestService{
		result: sampleResult(),
		events: []domain.StageEvent{
			{Stage: domain.StageResolve, Detail: "5c4ae55a634f4117716d5656", Duration: 120 * time.Millisecond},
			{Stage: domain.StageFetch, Detail: "/data/raw/dvf/valeursfoncieres-2023.txt", Duration: time.Minute},
		},
	}
	ingestService = mock

	out, err := executeCommand(t, "ingest")

	require.NoError(t, err)
	assert.Equal(t, 2023, mock.req.Year)
	assert.Equal(t, "data/processed/dvf_2023.parquet", mock.req.OutputPath)
	assert.NotNil(t, mock.req.Progress)

	assert.Contains(t, out, "DVF ingest 2023")
	assert.Contains(t, out, "resolve")
	assert.Contains(t, out, "valeursfoncieres-2023.txt")
	assert.NotContains(t, out, "/data/raw/dvf/")
	assert.Contains(t, out, "Summary")
	assert.Contains(t, out, "3,799,078")
	assert.Contains(t, out, "180 MB")
	assert.Contains(t, out, "43")
}

func TestIngestCmd_CustomYearAndOutput(t *testing.T) {
	mock := &mockIngestService{result: sampleResult()}
	ingestService = mock

	_, err := executeCommand(t, "ingest", "--year", "2019", "--output", "/tmp/dvf.parquet")

	require.NoError(t, err)
	assert.Equal(t, 2019, mock.req.Year)
	assert.Equal(t, "/tmp/dvf.parquet", mock.req.OutputPath)
}

func TestIngestCmd_Error(t *testing.T) {
	ingestService = &mockIngestService{
		err:    errors.New("locate: no data found for year: 2031"),
		events: []domain.StageEvent{{Stage: domain.StageLocate, Err: domain.ErrYearNotFound}},
	}

	out, err := executeCommand(t, "ingest", "--year", "2031")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no data found for year")
	assert.Contains(t, out, "✗")
	assert.NotContains(t, out, "Summary")
}

func TestIngestCmd_NotConfigured(t *testing.T) {
	_, err := executeCommand(t, "ingest")
	assert.EqualError(t, err, "ingest service not configured")
}

func TestDownloadProgress_SilentWithoutTerminal(t *testing.T) {
	buf := new(bytes.Buffer)
	p := newDownloadProgress(buf)

	p.Update(50, 100)
	p.Done()

	assert.Empty(t, buf.String())
}

func TestDownloadProgress_Terminal(t *testing.T) {
	original := isTerminal
	isTerminal = func(io.Writer) bool { return true }
	t.Cleanup(func() { isTerminal = original })

	buf := new(bytes.Buffer)
	p := newDownloadProgress(buf)

	p.Update(500, 1000)
	first := buf.Len()
	p.Update(501, 1000) // same whole percent
	assert.Equal(t, first, buf.Len())

	p.Update(1000, 1000)
	p.Done()

	out := buf.String()
	assert.Contains(t, out, "\r")
	assert.Contains(t, out, "1.0 kB / 1.0 kB")
	assert.True(t, bytes.HasSuffix(buf.Bytes(), []byte("\n")))
}

func TestDownloadProgress_UnknownTotal(t *testing.T) {
	original := isTerminal
	isTerminal = func(io.Writer) bool { return true }
	t.Cleanup(func() { isTerminal = original })

	buf := new(bytes.Buffer)
	p := newDownloadProgress(buf)
	p.Update(2048, -1)

	assert.Contains(t, buf.String(), "2.0 kB downloaded")
}
