package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const maxErrorBody = 4 << 10

// APIError is returned for non-2xx backend responses. 401 and 404 are surfaced as-is for
// the caller to handle.
type APIError struct {
	Method     string
	Path       string
	StatusCode int
	Message    string
	Body       string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api %s %s: status %d: %s", e.Method, e.Path, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("api %s %s: status %d", e.Method, e.Path, e.StatusCode)
}

// Client is the authenticated client for the backend REST API.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
}

type clientSettings struct {
	timeout time.Duration
	base    http.RoundTripper
}

// Option configures a Client.
type Option func(*clientSettings)

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(s *clientSettings) {
		s.timeout = d
	}
}

// WithBaseTransport sets the transport underneath the bearer interceptor.
func WithBaseTransport(rt http.RoundTripper) Option {
	return func(s *clientSettings) {
		s.base = rt
	}
}

// NewClient creates a client for the API rooted at baseURL. Every request is traced and
// carries the bearer token of the session found on its context.
func NewClient(baseURL string, source SessionSource, options ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimSuffix(baseURL, "/"))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("[apiclient NewClient] invalid base url %q", baseURL)
	}

	settings := clientSettings{timeout: 10 * time.Second, base: http.DefaultTransport}
	for _, opt := range options {
		opt(&settings)
	}

	return &Client{
		baseURL: u,
		httpClient: &http.Client{
			Transport: otelhttp.NewTransport(&BearerTransport{Source: source, Base: settings.base}),
			Timeout:   settings.timeout,
		},
	}, nil
}

// HTTPClient exposes the underlying authenticated client.
func (c *Client) HTTPClient() *http.Client {
	return c.httpClient
}

// url resolves an escaped path against the base URL.
func (c *Client) url(path string, query url.Values) string {
	u := c.baseURL.JoinPath(path)
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

// Do sends a JSON request and decodes a JSON response into out when out is non-nil.
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("[apiclient Do] marshal %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.url(path, query), reader)
	if err != nil {
		return fmt.Errorf("[apiclient Do] new request %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("[apiclient Do] %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newAPIError(method, path, resp)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil && err != io.EOF {
		return fmt.Errorf("[apiclient Do] decode %s %s: %w", method, path, err)
	}
	return nil
}

func newAPIError(method, path string, resp *http.Response) *APIError {
	b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	apiErr := &APIError{Method: method, Path: path, StatusCode: resp.StatusCode, Body: string(b)}

	var msg struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if json.Unmarshal(b, &msg) == nil {
		apiErr.Message = msg.Message
		if apiErr.Message == "" {
			apiErr.Message = msg.Error
		}
	}
	return apiErr
}
