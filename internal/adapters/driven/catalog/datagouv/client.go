package datagouv

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/custodia-labs/dvf-ingest/internal/core/domain"
	"github.com/custodia-labs/dvf-ingest/internal/core/ports/driven"
	"github.com/custodia-labs/dvf-ingest/internal/logger"
)

// DefaultTimeout is the per-request timeout for catalog calls.
const DefaultTimeout = 30 * time.Second

// Ensure Client implements the interface.
var _ driven.Catalog = (*Client)(nil)

// Client talks to the data.gouv.fr catalog API.
type Client struct {
	http        *resty.Client
	rateLimiter *RateLimiter
}

// Option configures a Client.
type Option func(*Client)

// WithRateLimiter replaces the default rate limiter.
func WithRateLimiter(rl *RateLimiter) Option {
	return func(c *Client) {
		c.rateLimiter = rl
	}
}

// NewClient creates a catalog client rooted at baseURL,
// e.g. "https://www.data.gouv.fr/api/1".
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		http: resty.New().
			SetBaseURL(strings.TrimRight(baseURL, "/")).
			SetTimeout(DefaultTimeout).
			SetHeader("Accept", "application/json"),
		rateLimiter: NewRateLimiter(DefaultRequestsPerSecond),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// datasetPayload mirrors the dataset object of the API.
type datasetPayload struct {
	ID        string            `json:"id"`
	Title     string            `json:"title"`
	Resources []resourcePayload `json:"resources"`
}

// resourcePayload mirrors the resource object of the API.
type resourcePayload struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Format   string `json:"format"`
	URL      string `json:"url"`
	FileSize int64  `json:"filesize"`
}

// searchPayload mirrors a paginated dataset search response.
type searchPayload struct {
	Data     []datasetPayload `json:"data"`
	Page     int              `json:"page"`
	PageSize int              `json:"page_size"`
	Total    int              `json:"total"`
}

// SearchDatasets runs a free-text dataset search and returns the first page.
func (c *Client) SearchDatasets(ctx context.Context, query string, pageSize int) ([]domain.Dataset, error) {
	var out searchPayload
	err := c.get(ctx, "/datasets/", map[string]string{
		"q":         query,
		"page_size": strconv.Itoa(pageSize),
	}, &out, "search datasets")
	if err != nil {
		return nil, err
	}

	logger.Debug("catalog search %q returned %d of %d datasets", query, len(out.Data), out.Total)

	datasets := make([]domain.Dataset, 0, len(out.Data))
	for _, d := range out.Data {
		datasets = append(datasets, domain.Dataset{ID: d.ID, Title: d.Title})
	}
	return datasets, nil
}

// GetDataset fetches a dataset and its resources.
func (c *Client) GetDataset(ctx context.Context, id string) (*domain.DatasetDetail, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: empty dataset id", domain.ErrInvalidInput)
	}

	var out datasetPayload
	if err := c.get(ctx, "/datasets/"+url.PathEscape(id)+"/", nil, &out, "get dataset"); err != nil {
		return nil, err
	}

	detail := &domain.DatasetDetail{
		Dataset:   domain.Dataset{ID: out.ID, Title: out.Title},
		Resources: make([]domain.Resource, 0, len(out.Resources)),
	}
	for _, r := range out.Resources {
		detail.Resources = append(detail.Resources, domain.Resource{
			ID:       r.ID,
			Title:    r.Title,
			Format:   r.Format,
			URL:      r.URL,
			FileSize: r.FileSize,
		})
	}
	return detail, nil
}

// RateLimiter returns the rate limiter for external access.
func (c *Client) RateLimiter() *RateLimiter {
	return c.rateLimiter
}

// get performs a throttled GET and decodes the JSON body into result.
func (c *Client) get(ctx context.Context, path string, params map[string]string, result any, operation string) error {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(params).
		Get(path)
	if err != nil {
		return fmt.Errorf("%s: %w", operation, err)
	}

	if err := c.rateLimiter.CheckRateLimit(resp.RawResponse); err != nil {
		return err
	}
	if !resp.IsSuccess() {
		return newAPIError(resp)
	}

	if err := json.Unmarshal(resp.Body(), result); err != nil {
		return fmt.Errorf("%s: decode response: %w", operation, err)
	}
	return nil
}

// newAPIError builds an APIError, preferring the message field of a JSON
// error body over the bare status text.
func newAPIError(resp *resty.Response) *APIError {
	msg := http.StatusText(resp.StatusCode())
	var body struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(resp.Body(), &body); err == nil && body.Message != "" {
		msg = body.Message
	}

	reqURL := ""
	if resp.Request != nil {
		reqURL = resp.Request.URL
	}
	return &APIError{
		StatusCode: resp.StatusCode(),
		Message:    msg,
		URL:        reqURL,
	}
}
