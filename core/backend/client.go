// ABOUTME: Typed client for the classifier backend's JSON/HTTP boundary
// ABOUTME: Maps transport and status failures into the core error taxonomy

// Package backend wraps the classifier service's HTTP endpoints behind
// typed methods. Transport framing stays here; the rest of the core only
// sees domain types and typed errors.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	coreerrors "github.com/jbpiacentino/lumen-digest/core/errors"
	"github.com/jbpiacentino/lumen-digest/core/interfaces"
)

const apiName = "classifier-backend"

// Client is a typed client for the classifier backend
type Client struct {
	deps    interfaces.Dependencies
	baseURL string
}

// NewClient creates a backend client for the given base URL.
// The trailing slash on baseURL is optional.
func NewClient(deps interfaces.Dependencies, baseURL string) *Client {
	for len(baseURL) > 0 && baseURL[len(baseURL)-1] == '/' {
		baseURL = baseURL[:len(baseURL)-1]
	}
	return &Client{deps: deps, baseURL: baseURL}
}

// endpoint joins the base URL with a path beginning in "/"
func (c *Client) endpoint(path string) string {
	return c.baseURL + path
}

// get performs a GET and decodes the JSON response into out when non-nil
func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	resp, err := c.deps.HTTPClient.Get(ctx, c.endpoint(path))
	if err != nil {
		return &coreerrors.NetworkError{Endpoint: path, Cause: err}
	}
	return c.decode(resp, path, out)
}

// post marshals body to JSON, performs a POST and decodes into out
func (c *Client) post(ctx context.Context, path string, body, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return coreerrors.WrapError(err, "failed to encode request body")
	}

	resp, err := c.deps.HTTPClient.Post(ctx, c.endpoint(path), bytes.NewReader(payload))
	if err != nil {
		return &coreerrors.NetworkError{Endpoint: path, Cause: err}
	}
	return c.decode(resp, path, out)
}

// patch marshals body to JSON, performs a PATCH and decodes into out
func (c *Client) patch(ctx context.Context, path string, body, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return coreerrors.WrapError(err, "failed to encode request body")
	}

	resp, err := c.deps.HTTPClient.Patch(ctx, c.endpoint(path), bytes.NewReader(payload))
	if err != nil {
		return &coreerrors.NetworkError{Endpoint: path, Cause: err}
	}
	return c.decode(resp, path, out)
}

// del performs a DELETE and decodes into out when non-nil
func (c *Client) del(ctx context.Context, path string, out interface{}) error {
	resp, err := c.deps.HTTPClient.Delete(ctx, c.endpoint(path))
	if err != nil {
		return &coreerrors.NetworkError{Endpoint: path, Cause: err}
	}
	return c.decode(resp, path, out)
}

// decode checks the status code and unmarshals the body into out.
// 401/403 become SessionExpiredError; other non-2xx statuses become
// ExternalAPIError carrying the backend's detail message when decodable.
func (c *Client) decode(resp interfaces.Response, path string, out interface{}) error {
	defer resp.Body().Close()

	status := resp.StatusCode()
	if status == 401 || status == 403 {
		return &coreerrors.SessionExpiredError{StatusCode: status, Endpoint: path}
	}

	bodyBytes, err := io.ReadAll(resp.Body())
	if err != nil {
		return &coreerrors.NetworkError{Endpoint: path, Cause: err}
	}

	if status < 200 || status >= 300 {
		return &coreerrors.ExternalAPIError{
			StatusCode: status,
			Message:    errorMessage(bodyBytes, status),
			API:        apiName,
		}
	}

	if out == nil {
		return nil
	}

	if err := json.Unmarshal(bodyBytes, out); err != nil {
		return coreerrors.WrapError(err, fmt.Sprintf("failed to parse response from %s", path))
	}
	return nil
}

// errorMessage extracts the backend's detail field from an error body,
// falling back to a generic message.
func errorMessage(body []byte, status int) string {
	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Detail != "" {
		return payload.Detail
	}
	return fmt.Sprintf("request failed with status %d", status)
}
