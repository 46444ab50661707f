// Package fetch provides the minimal retrying HTTP transport the chart
// packages delegate to. It knows nothing about charts: callers get a status
// code and body text back and classify them themselves.
package fetch

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"
)

const (
	// DefaultTimeout is the per-request timeout applied when none is given.
	DefaultTimeout = 25 * time.Second
	// DefaultMaxRetries is the transient-failure retry budget.
	DefaultMaxRetries = 5
	// DefaultUserAgent identifies chartfed to the remote site.
	DefaultUserAgent = "chartfed/1.0 (+https://github.com/pevans/chartfed)"

	// retryBackoff is the base delay between attempts, doubled per retry.
	retryBackoff = 500 * time.Millisecond
)

// Response is one completed HTTP exchange.
type Response struct {
	StatusCode int
	Body       string
}

// Client issues GET requests with a fixed timeout and a bounded retry budget.
// Only network errors and 5xx responses are retried: the requests carry no
// side effects, so re-issuing an identical GET is always safe. 4xx responses
// (including 404) are returned to the caller immediately, never retried.
type Client struct {
	http       *http.Client
	userAgent  string
	maxRetries int
}

// New creates a client. A non-positive timeout, a negative maxRetries or an
// empty userAgent fall back to the package defaults; maxRetries of 0 disables
// retries.
func New(timeout time.Duration, maxRetries int, userAgent string) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if maxRetries < 0 {
		maxRetries = DefaultMaxRetries
	}
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	return &Client{
		http:       &http.Client{Timeout: timeout},
		userAgent:  userAgent,
		maxRetries: maxRetries,
	}
}

// Get fetches url, retrying transient failures up to the client's budget.
// A non-nil Response is returned for any completed exchange regardless of
// status code; the error is non-nil only when every attempt failed at the
// network level.
func (c *Client) Get(ctx context.Context, url string) (*Response, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(retryBackoff << (attempt - 1)):
			}
		}

		resp, err := c.do(ctx, url)
		if err != nil {
			log.Printf("WARN: GET %s attempt %d/%d failed: %v", url, attempt+1, c.maxRetries+1, err)
			lastErr = err
			continue
		}
		if resp.StatusCode >= 500 && attempt < c.maxRetries {
			log.Printf("WARN: GET %s attempt %d/%d: HTTP status %d", url, attempt+1, c.maxRetries+1, resp.StatusCode)
			continue
		}
		return resp, nil
	}
	return nil, fmt.Errorf("GET %s failed after %d attempts: %w", url, c.maxRetries+1, lastErr)
}

func (c *Client) do(ctx context.Context, url string) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return &Response{StatusCode: resp.StatusCode, Body: string(body)}, nil
}
