package client

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

	"github.com/google/uuid"
)

// maxBodySize caps how much of a response body is read (4 MB).
const maxBodySize = 4 << 20

// TokenSource supplies the bearer token for each request. An empty token
// means the request is sent without an Authorization header.
type TokenSource interface {
	Token() string
}

// StaticToken is a fixed TokenSource.
type StaticToken string

// Token implements TokenSource.
func (s StaticToken) Token() string { return string(s) }

// RequestOptions configures a single call. Headers override the defaults.
type RequestOptions struct {
	Method  string
	Body    any
	Headers map[string]string
}

// Client is the VLP API client.
type Client struct {
	baseURL    string
	tokens     TokenSource
	httpClient *http.Client
	log        *slog.Logger
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout sets the per-request timeout of the default http.Client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// WithLogger sets the logger used for request records.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.log = l }
}

// New creates a new API client. baseURL includes the API prefix, e.g.
// http://localhost:8000/api/v1.
func New(baseURL string, tokens TokenSource, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		tokens:  tokens,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		log: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the configured API base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Do issues a request to path (relative to the base URL) and decodes the JSON
// response into out. out may be nil when the caller does not need the body.
func (c *Client) Do(ctx context.Context, path string, opts RequestOptions, out any) error {
	return c.do(ctx, c.baseURL+path, opts, out)
}

// Fetch is the typed form of Do.
func Fetch[T any](ctx context.Context, c *Client, path string, opts RequestOptions) (T, error) {
	var out T
	if err := c.Do(ctx, path, opts, &out); err != nil {
		var zero T
		return zero, err
	}
	return out, nil
}

func (c *Client) token() string {
	if c.tokens == nil {
		return ""
	}
	return c.tokens.Token()
}

func (c *Client) do(ctx context.Context, target string, opts RequestOptions, out any) error {
	method := opts.Method
	if method == "" {
		method = http.MethodGet
	}

	var reqBody io.Reader
	if opts.Body != nil {
		data, err := json.Marshal(opts.Body)
		if err != nil {
			return fmt.Errorf("marshal body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	rid := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", rid)
	if opts.Body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if tok := c.token(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	for k, v := range opts.Headers {
		req.Header.Set(k, v)
	}

	l := c.log.With(
		slog.String("request_id", rid),
		slog.String("method", method),
		slog.String("path", req.URL.Path),
	)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		l.Debug("api", slog.String("err", err.Error()), slog.Duration("dur", time.Since(start)))
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck // best-effort close

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	l.Debug("api", slog.Int("status", resp.StatusCode), slog.Duration("dur", time.Since(start)))
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &HTTPError{StatusCode: resp.StatusCode, Message: errorMessage(resp.StatusCode, raw)}
	}

	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &DecodeError{StatusCode: resp.StatusCode, Raw: strings.TrimSpace(string(raw)), Err: err}
	}
	return nil
}

// originURL returns scheme://host of the base URL, for endpoints mounted
// outside the API prefix.
func (c *Client) originURL() (string, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return "", fmt.Errorf("parse base url: %w", err)
	}
	return u.Scheme + "://" + u.Host, nil
}
