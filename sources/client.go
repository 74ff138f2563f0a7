// Package sources holds the upstream HTTP boundary: a client that issues
// single requests with a fixed identifying user agent, and a resolver that
// walks an ordered list of candidate requests until one yields usable data.
package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
)

// Client issues GET requests against upstream data APIs. Rate-limit
// responses (429) are retried with exponential backoff up to maxAttempts;
// every other failure is returned to the caller immediately.
type Client struct {
	http            *http.Client
	userAgent       string
	maxAttempts     int
	initialInterval time.Duration
	log             *zap.Logger
}

func NewClient(timeout time.Duration, userAgent string, maxAttempts int, log *zap.Logger) *Client {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &Client{
		http:            &http.Client{Timeout: timeout},
		userAgent:       userAgent,
		maxAttempts:     maxAttempts,
		initialInterval: 500 * time.Millisecond,
		log:             log,
	}
}

// GetJSON fetches url and decodes the response body into out.
func (c *Client) GetJSON(ctx context.Context, url string, out any) error {
	body, err := c.GetBytes(ctx, url)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode %s: %w", url, err)
	}
	return nil
}

// GetBytes fetches url and returns the raw response body.
func (c *Client) GetBytes(ctx context.Context, url string) ([]byte, error) {
	var body []byte

	op := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header.Set("User-Agent", c.userAgent)

		resp, err := c.http.Do(req)
		if err != nil {
			return backoff.Permanent(err)
		}
		defer resp.Body.Close()

		if resp.StatusCode == http.StatusTooManyRequests {
			// Retryable: upstream rate limit.
			return fmt.Errorf("http 429 for %s", url)
		}
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return backoff.Permanent(fmt.Errorf("http %d for %s", resp.StatusCode, url))
		}

		body, err = io.ReadAll(resp.Body)
		if err != nil {
			return backoff.Permanent(err)
		}
		return nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = c.initialInterval
	retries := backoff.WithMaxRetries(bo, uint64(c.maxAttempts-1))

	if err := backoff.Retry(op, backoff.WithContext(retries, ctx)); err != nil {
		return nil, err
	}
	return body, nil
}
