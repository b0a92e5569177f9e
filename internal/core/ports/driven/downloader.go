package driven

import "context"

// ProgressFunc receives the byte count written so far and the expected
// total, or -1 when the server did not announce a length.
type ProgressFunc func(written, total int64)

// Downloader fetches a remote file.
type Downloader interface {
	// Download streams url into the file at dest and returns the number
	// of bytes written. Any non-success HTTP status is an error.
	Download(ctx context.Context, url, dest string, progress ProgressFunc) (int64, error)
}
