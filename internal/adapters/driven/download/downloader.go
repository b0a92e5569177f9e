// Package download streams remote files to local disk.
package download

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/go-resty/resty/v2"

	"github.com/custodia-labs/dvf-ingest/internal/core/ports/driven"
	"github.com/custodia-labs/dvf-ingest/internal/logger"
)

// ChunkSize is the copy buffer size, bounding memory use per download.
const ChunkSize = 8192

// Ensure Downloader implements the interface.
var _ driven.Downloader = (*Downloader)(nil)

// Downloader fetches files over HTTP. It sets no overall timeout so large
// archives are not cut off; cancellation comes from the context.
type Downloader struct {
	http *resty.Client
}

// NewDownloader creates an HTTP downloader.
func NewDownloader() *Downloader {
	return &Downloader{
		http: resty.New().SetDoNotParseResponse(true),
	}
}

// Download streams url into dest and returns the bytes written.
func (d *Downloader) Download(ctx context.Context, url, dest string, progress driven.ProgressFunc) (int64, error) {
	resp, err := d.http.R().SetContext(ctx).Get(url)
	if err != nil {
		return 0, fmt.Errorf("download %s: %w", url, err)
	}
	body := resp.RawBody()
	defer body.Close()

	if !resp.IsSuccess() {
		return 0, &HTTPError{StatusCode: resp.StatusCode(), URL: url}
	}

	f, err := os.Create(dest)
	if err != nil {
		return 0, fmt.Errorf("creating %s: %w", dest, err)
	}

	total := resp.RawResponse.ContentLength
	w := &progressWriter{w: f, total: total, report: progress}

	n, copyErr := io.CopyBuffer(w, body, make([]byte, ChunkSize))
	closeErr := f.Close()
	if copyErr != nil {
		return n, fmt.Errorf("writing %s: %w", dest, copyErr)
	}
	if closeErr != nil {
		return n, fmt.Errorf("closing %s: %w", dest, closeErr)
	}

	logger.Debug("downloaded %s (%s)", dest, humanize.Bytes(uint64(n)))
	return n, nil
}

// HTTPError is a non-success download response.
type HTTPError struct {
	StatusCode int
	URL        string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("download: HTTP %d %s (URL: %s)", e.StatusCode, http.StatusText(e.StatusCode), e.URL)
}

// progressWriter counts bytes and forwards them to a ProgressFunc.
type progressWriter struct {
	w       io.Writer
	written int64
	total   int64
	report  driven.ProgressFunc
}

func (p *progressWriter) Write(b []byte) (int, error) {
	n, err := p.w.Write(b)
	p.written += int64(n)
	if p.report != nil {
		p.report(p.written, p.total)
	}
	return n, err
}
