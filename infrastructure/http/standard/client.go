// ABOUTME: Standard HTTP client with auth header injection and outgoing rate limiting
// ABOUTME: Retries idempotent GETs with exponential backoff; mutating verbs are sent once

// Package standard provides the net/http-backed HTTPClient implementation.
package standard

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/jbpiacentino/lumen-digest/core/interfaces"
)

const (
	maxRetries = 3
	userAgent  = "LumenDigestConsole/1.0"
)

// TokenProvider returns the current capability token, or empty when the
// session is signed out.
type TokenProvider func() string

// StandardHTTPClient implements the HTTPClient interface using the
// standard library. All requests carry the capability token and pass an
// outgoing rate limiter so rapid filter changes cannot flood the backend.
type StandardHTTPClient struct {
	client  *http.Client
	token   TokenProvider
	limiter *rate.Limiter
}

// NewStandardHTTPClient creates a client with the given timeout and
// token provider. A timed-out request returns an error, never a silent
// hang. rps bounds outgoing requests per second; 0 disables limiting.
func NewStandardHTTPClient(timeout time.Duration, token TokenProvider, rps float64) *StandardHTTPClient {
	var limiter *rate.Limiter
	if rps > 0 {
		limiter = rate.NewLimiter(rate.Limit(rps), int(rps)+1)
	}
	return &StandardHTTPClient{
		client:  &http.Client{Timeout: timeout},
		token:   token,
		limiter: limiter,
	}
}

// prepare builds a request with the standard headers
func (c *StandardHTTPClient) prepare(ctx context.Context, method, url string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, err
	}

	req.Header.Set("User-Agent", userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != nil {
		if tok := c.token(); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}
	return req, nil
}

func (c *StandardHTTPClient) wait(ctx context.Context) error {
	if c.limiter == nil {
		return nil
	}
	return c.limiter.Wait(ctx)
}

// Get performs an HTTP GET request with retry on transport errors and 5xx
func (c *StandardHTTPClient) Get(ctx context.Context, url string) (interfaces.Response, error) {
	if err := c.wait(ctx); err != nil {
		return nil, err
	}

	var resp *http.Response
	var lastErr error

	for attempt := 0; attempt < maxRetries; attempt++ {
		if attempt > 0 {
			// Exponential backoff: 100ms, 200ms, 400ms
			backoff := time.Duration(100*(1<<(attempt-1))) * time.Millisecond
			select {
			case <-time.After(backoff):
				// Continue with retry
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		req, err := c.prepare(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, err
		}

		resp, err = c.client.Do(req)
		if err != nil {
			lastErr = err
			resp = nil
			continue
		}

		// Don't retry on success or 4xx errors
		if resp.StatusCode < 500 {
			break
		}

		// Close body for retry
		resp.Body.Close()
		lastErr = fmt.Errorf("server returned %d", resp.StatusCode)
		resp = nil
	}

	if resp == nil {
		return nil, lastErr
	}

	return &httpResponse{
		statusCode: resp.StatusCode,
		body:       resp.Body,
		headers:    resp.Header,
	}, nil
}

// Post performs an HTTP POST request. Mutations are never retried
// automatically; failures surface to the caller.
func (c *StandardHTTPClient) Post(ctx context.Context, url string, body io.Reader) (interfaces.Response, error) {
	return c.send(ctx, http.MethodPost, url, body)
}

// Patch performs an HTTP PATCH request
func (c *StandardHTTPClient) Patch(ctx context.Context, url string, body io.Reader) (interfaces.Response, error) {
	return c.send(ctx, http.MethodPatch, url, body)
}

// Delete performs an HTTP DELETE request
func (c *StandardHTTPClient) Delete(ctx context.Context, url string) (interfaces.Response, error) {
	return c.send(ctx, http.MethodDelete, url, nil)
}

func (c *StandardHTTPClient) send(ctx context.Context, method, url string, body io.Reader) (interfaces.Response, error) {
	if err := c.wait(ctx); err != nil {
		return nil, err
	}

	req, err := c.prepare(ctx, method, url, body)
	if err != nil {
		return nil, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}

	return &httpResponse{
		statusCode: resp.StatusCode,
		body:       resp.Body,
		headers:    resp.Header,
	}, nil
}

// httpResponse implements the Response interface
type httpResponse struct {
	statusCode int
	body       io.ReadCloser
	headers    http.Header
}

// StatusCode returns the HTTP status code
func (r *httpResponse) StatusCode() int {
	return r.statusCode
}

// Body returns the response body
func (r *httpResponse) Body() io.ReadCloser {
	return r.body
}

// Header returns the value of the specified header
func (r *httpResponse) Header(key string) string {
	return r.headers.Get(key)
}
