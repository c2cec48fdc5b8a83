// Package client provides a thin HTTP client for the stock-tracker API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// Client is a thin HTTP client for the stock-tracker API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a new API client targeting the given base URL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Option configures the Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// APIError is a non-2xx response. Title and Detail come from the problem
// body when the server sent one.
type APIError struct {
	StatusCode int
	Title      string
	Detail     string
	Body       []byte
}

func (e *APIError) Error() string {
	msg := e.Detail
	if msg == "" {
		msg = strings.TrimSpace(string(e.Body))
	}
	return fmt.Sprintf("API error (HTTP %d): %s", e.StatusCode, msg)
}

// request is one call to the API. A JSON body is marshaled; a raw body is
// sent as is with contentType.
type request struct {
	method      string
	path        string
	json        any
	raw         io.Reader
	contentType string
}

func (c *Client) get(ctx context.Context, path string, dst any) error {
	return c.do(ctx, request{method: http.MethodGet, path: path}, dst)
}

func (c *Client) post(ctx context.Context, path string, body, dst any) error {
	return c.do(ctx, request{method: http.MethodPost, path: path, json: body}, dst)
}

func (c *Client) put(ctx context.Context, path string, body, dst any) error {
	return c.do(ctx, request{method: http.MethodPut, path: path, json: body}, dst)
}

func (c *Client) del(ctx context.Context, path string, dst any) error {
	return c.do(ctx, request{method: http.MethodDelete, path: path}, dst)
}

func (c *Client) do(ctx context.Context, r request, dst any) error {
	url := c.baseURL + r.path

	bodyReader := r.raw
	contentType := r.contentType
	if r.json != nil {
		data, err := json.Marshal(r.json)
		if err != nil {
			return fmt.Errorf("marshaling request body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
		contentType = "application/json"
	}

	req, err := http.NewRequestWithContext(ctx, r.method, url, bodyReader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if isConnectionRefused(err) {
			return fmt.Errorf("API server not running at %s", c.baseURL)
		}
		return fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response body: %w", err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return newAPIError(resp.StatusCode, respBody)
	}

	if dst != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, dst); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}

	return nil
}

func newAPIError(status int, body []byte) *APIError {
	apiErr := &APIError{StatusCode: status, Body: body}

	var problem struct {
		Title  string `json:"title"`
		Detail string `json:"detail"`
	}
	if json.Unmarshal(body, &problem) == nil {
		apiErr.Title = problem.Title
		apiErr.Detail = problem.Detail
	}
	return apiErr
}

func isConnectionRefused(err error) bool {
	return strings.Contains(err.Error(), "connection refused")
}
