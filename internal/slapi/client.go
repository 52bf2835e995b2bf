// Package slapi is a typed client for the SimpleLogin-compatible
// email-alias REST API. Every operation is described by a pure endpoint
// descriptor, executed over a single HTTP round trip, and decoded into a
// typed result or exactly one typed error. The client never retries and
// keeps no per-operation state; pagination bookkeeping belongs to callers.
package slapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

// DefaultBaseURL is the hosted service; self-hosted instances override it.
const DefaultBaseURL = "https://app.simplelogin.io"

const defaultTimeout = 30 * time.Second

// Client executes API operations against one base URL. It is safe for
// concurrent use; all fields are set at construction and never mutated.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	logger     *zap.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client, e.g. to control
// timeouts or inject a test transport.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithLogger enables debug-level request logging. The API key is never
// written to the log.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// NewClient creates a client for the given base URL (scheme and host only;
// any path component is ignored). An empty baseURL selects the hosted
// service.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, &InvalidURLError{Base: baseURL}
	}

	c := &Client{
		baseURL: u,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the base URL the client was built with.
func (c *Client) BaseURL() string { return c.baseURL.String() }

// do executes one endpoint descriptor and decodes the JSON response into
// result. A nil result discards the body. Error mapping: transport failure
// to NetworkError, non-2xx status to APIError, malformed success payload
// to DecodeError.
func (c *Client) do(ctx context.Context, ep Endpoint, apiKey string, result any) error {
	op := ep.Method() + " " + ep.Path()

	req, err := newRequest(ctx, c.baseURL, ep, apiKey)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &NetworkError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &NetworkError{Op: op, Err: err}
	}

	c.logger.Debug("api call",
		zap.String("method", ep.Method()),
		zap.String("path", ep.Path()),
		zap.Int("status", resp.StatusCode))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    serverErrorMessage(resp.StatusCode, body),
		}
	}

	if result == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	if err := json.Unmarshal(body, result); err != nil {
		return &DecodeError{Op: op, Err: err}
	}

	return nil
}

// serverErrorMessage extracts the service's {"error": "..."} body when
// present, falling back to a generic description of the status code.
func serverErrorMessage(statusCode int, body []byte) string {
	var payload struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(body, &payload) == nil && payload.Error != "" {
		return payload.Error
	}
	if text := http.StatusText(statusCode); text != "" {
		return fmt.Sprintf("request failed: %s", text)
	}
	return fmt.Sprintf("request failed with status %d", statusCode)
}
