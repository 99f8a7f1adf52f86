// Package backend implements the REST clients for the four OrderNest
// services: auth, inventory, order, and payment. All four share one client
// core, so base-URL handling, error decoding, and the bearer-credential
// policy are defined once.
package backend

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"

	"github.com/go-faster/errors"
)

// maxBodySize bounds how much of a response the client will read.
const maxBodySize = 4 << 20

// Client is the shared HTTP core for one backend service. It is a stateless
// pass-through: no retries, no caching, no circuit breaking. Failures
// surface to the caller as errors.
type Client struct {
	base string
	http *http.Client
}

// New creates a Client for the service at baseURL. Trailing slashes are
// trimmed so path joining is uniform. The http.Client carries the shared
// transport chain (bearer auth, request IDs, logging, tracing).
func New(baseURL string, httpClient *http.Client) *Client {
	return &Client{
		base: strings.TrimRight(baseURL, "/"),
		http: httpClient,
	}
}

func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+path, nil)
	if err != nil {
		return nil, errors.Wrap(err, "build request")
	}
	return c.do(req)
}

func (c *Client) post(ctx context.Context, path string, body []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+path, bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrap(err, "build request")
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req)
}

// do sends the request and returns the response body. Any status >= 400
// becomes an *APIError carrying the status code and the human-readable
// message derived from the error body.
func (c *Client) do(req *http.Request) ([]byte, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "%s %s", req.Method, req.URL.Path)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, errors.Wrap(err, "read response")
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Message:    errorMessage(body),
		}
	}
	return body, nil
}
