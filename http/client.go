// Package http provides an HTTP implementation of the price extraction
// backend protocols: the blocking batch endpoint and the session
// endpoints that are polled for progress.
package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/fwojciec/pricex"
)

// DefaultTimeout is the default timeout for a single HTTP request.
// Batch extraction blocks until every URL is processed, so it is generous.
const DefaultTimeout = 5 * time.Minute

// Ensure Client implements the backend services at compile time.
var (
	_ pricex.BatchService   = (*Client)(nil)
	_ pricex.SessionService = (*Client)(nil)
)

// Client talks to a price extraction backend.
type Client struct {
	baseURL string
	client  *http.Client
	timeout time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultTimeout if not specified.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithHTTPClient sets the underlying HTTP client. Its timeout is
// replaced by the configured timeout.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.client = hc
	}
}

// NewClient creates a Client for the backend rooted at baseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.client == nil {
		c.client = &http.Client{}
	}
	c.client.Timeout = c.timeout

	return c
}

type urlsRequest struct {
	URLs []string `json:"urls"`
}

// errorResponse is the body shape the backend uses to report failures.
type errorResponse struct {
	Error string `json:"error"`
}

// do sends a request and decodes a successful JSON response into out.
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return pricex.Errorf(pricex.EINVALID, "invalid backend URL %q: %v", c.baseURL, err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return pricex.Errorf(pricex.ENETWORK, "request to %s failed: %v", path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return pricex.Errorf(pricex.ENETWORK, "reading response from %s: %v", path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var e errorResponse
		if json.Unmarshal(data, &e) == nil && e.Error != "" {
			return pricex.Errorf(pricex.ENETWORK, "%s", e.Error)
		}
		return pricex.Errorf(pricex.ENETWORK, "HTTP error! status: %d", resp.StatusCode)
	}

	if err := json.Unmarshal(data, out); err != nil {
		return pricex.Errorf(pricex.EPROTOCOL, "invalid response from %s: %v", path, err)
	}
	return nil
}

// checkResults rejects null entries in a results array.
func checkResults(results []*pricex.Result) error {
	for _, r := range results {
		if r == nil {
			return pricex.Errorf(pricex.EPROTOCOL, "response contains an empty result")
		}
	}
	return nil
}
