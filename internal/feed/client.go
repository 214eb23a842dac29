// Package feed retrieves the upstream game-data tables.
package feed

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/huangsam/relicdb/internal/contract"
	"github.com/huangsam/relicdb/schema"
)

// maxErrorBody caps how much of a failed response is quoted in the error.
const maxErrorBody = 4 << 10

// Client performs plain HTTP GET requests for feed documents.
type Client struct {
	httpClient *http.Client
	userAgent  string
}

var _ contract.FeedSource = &Client{} // Compile-time check

// NewClient returns a client with the given request timeout and User-Agent.
func NewClient(timeout time.Duration, userAgent string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		userAgent:  userAgent,
	}
}

// Fetch returns the body of url. Transport errors and non-2xx responses wrap
// schema.ErrFeedUnavailable.
func (c *Client) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", schema.ErrFeedUnavailable, err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", schema.ErrFeedUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, fmt.Errorf("%w: status %d for %s: %s", schema.ErrFeedUnavailable, resp.StatusCode, url, string(b))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", schema.ErrFeedUnavailable, url, err)
	}
	return body, nil
}
