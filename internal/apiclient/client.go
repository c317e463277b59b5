// ABOUTME: HTTP client for the upstream blog content API
// ABOUTME: Holds the base URL, the token source, and shared request plumbing

package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// TokenSource supplies the bearer token for mutating requests.
// It is consulted at call time, never cached, so a login or logout
// between two calls is always observed.
type TokenSource interface {
	CurrentToken() string
}

// Post is a blog post as served by the content API.
// ID and CreatedAt are server-assigned and immutable.
type Post struct {
	ID        int       `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Image     string    `json:"image"`
	CreatedAt time.Time `json:"created_at"`
}

// TokenPair is the response of the token endpoint.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// Client talks to the upstream content API. All durable state lives
// behind it; the frontend never persists posts.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
	logger  *slog.Logger
}

// New creates a Client for the API at baseURL. tokens may be nil for a
// read-only client; mutating calls then go out without a bearer token
// and the server rejects them like any other unauthorized request.
func New(baseURL string, timeout time.Duration, tokens TokenSource) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing base URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("base URL must use http or https, got %q", u.Scheme)
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		tokens:  tokens,
		logger:  slog.Default().With("component", "apiclient"),
	}, nil
}

// BaseURL returns the upstream base URL the client was created with.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// WithTokenSource returns a copy of the client bound to tokens, sharing
// the underlying HTTP client. The web frontend uses it to scope each
// request to the caller's cookie session.
func (c *Client) WithTokenSource(tokens TokenSource) *Client {
	clone := *c
	clone.tokens = tokens
	return &clone
}

// newRequest builds a request against the API base URL.
func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	return req, nil
}

// authorize attaches the bearer token read from the token source at call time.
func (c *Client) authorize(req *http.Request) {
	if c.tokens == nil {
		return
	}
	if token := c.tokens.CurrentToken(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

// do executes the request and, on a 2xx response, decodes the JSON body
// into out (skipped when out is nil). Non-2xx responses are classified
// into *APIError; transport failures are wrapped as-is.
func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("calling %s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.classifyFailure(resp)
	}

	if out == nil {
		// Drain so the connection can be reused
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding %s %s response: %w", req.Method, req.URL.Path, err)
	}
	return nil
}

// classifyFailure turns a non-2xx response into an *APIError. A JSON
// body keeps its decoded detail; anything else rides along as raw text.
func (c *Client) classifyFailure(resp *http.Response) error {
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		body = nil
	}

	apiErr := &APIError{
		StatusCode: resp.StatusCode,
		Body:       string(body),
	}

	contentType := resp.Header.Get("Content-Type")
	if strings.Contains(contentType, "application/json") && json.Valid(bytes.TrimSpace(body)) {
		apiErr.JSON = true
		apiErr.Detail = extractDetail(body)
	}

	c.logger.Debug("api request failed",
		"status", resp.StatusCode,
		"url", resp.Request.URL.Path,
		"json", apiErr.JSON,
	)

	return apiErr
}

// maxErrorBody caps how much of an error response is retained.
const maxErrorBody = 64 << 10

// extractDetail pulls a human-readable message out of a JSON error body.
// DRF-style bodies use "detail"; field validation errors come back as a
// map of lists, which we flatten into one line.
func extractDetail(body []byte) string {
	var m map[string]any
	if err := json.Unmarshal(body, &m); err != nil {
		return ""
	}

	if d, ok := m["detail"].(string); ok {
		return d
	}

	var parts []string
	for field, v := range m {
		switch val := v.(type) {
		case string:
			parts = append(parts, field+": "+val)
		case []any:
			for _, item := range val {
				if s, ok := item.(string); ok {
					parts = append(parts, field+": "+s)
				}
			}
		}
	}
	return strings.Join(parts, "; ")
}
