package platform

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/playgate/playgate/internal/utils"
)

// Client is a thin JSON-over-HTTP client for the platform APIs. Every call
// carries an explicit timeout and is aborted when it elapses.
type Client struct {
	http    *http.Client
	timeout time.Duration
}

// NewClient builds a client with the given per-call timeout.
func NewClient(timeout time.Duration) *Client {
	return &Client{
		timeout: timeout,
		http: &http.Client{
			Timeout: timeout,
		},
	}
}

// GetJSON issues a GET and decodes the response body into out.
// A non-2xx status or a decode failure is an error; callers treat either
// as "this strategy failed" and move on.
func (c *Client) GetJSON(ctx context.Context, url string, out any) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("upstream call failed: %w", err)
	}
	defer utils.Close(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("upstream returned status %d for %s", resp.StatusCode, url)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode upstream response: %w", err)
	}
	return nil
}
