// Package datagouv implements the catalog port against the data.gouv.fr
// REST API (version 1).
//
// Two endpoints are used:
//
//   - GET {base}/datasets/?q={query}&page_size={n}: free-text dataset search
//   - GET {base}/datasets/{id}/: dataset detail including its resources
//
// # Rate Limiting
//
// Requests pass through a token bucket (golang.org/x/time/rate) so the
// client never bursts the public API. A 429 response, or a 403 with an
// exhausted X-RateLimit-Remaining header, is reported as a RateLimitError
// carrying the reset time. The client does not retry: every non-success
// status surfaces immediately as an APIError.
package datagouv
