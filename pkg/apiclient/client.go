// Package apiclient talks JSON to the SkillBridge backend on behalf of the
// browser whose request is being served.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/skillbridge-web/pkg/middleware/requestid"
)

// DefaultErrorMessage is used when the backend gives no message of its own.
const DefaultErrorMessage = "Something went wrong"

// Error is returned for transport failures and non-2xx responses.
// Status is zero when no response was received.
type Error struct {
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("backend %d: %s: %v", e.Status, e.Message, e.Err)
	}
	return fmt.Sprintf("backend %d: %s", e.Status, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// UserMessage is the text shown to the visitor.
func (e *Error) UserMessage() string { return e.Message }

// Observer records backend call outcomes.
type Observer interface {
	ObserveBackendCall(method, route string, status int, elapsed time.Duration)
}

type cookieKey struct{}

// WithCookies stores the browser's Cookie header so outgoing calls carry the
// same credentials.
func WithCookies(ctx context.Context, header string) context.Context {
	if header == "" {
		return ctx
	}
	return context.WithValue(ctx, cookieKey{}, header)
}

// CookiesFrom returns the Cookie header stored by WithCookies.
func CookiesFrom(ctx context.Context) string {
	v, _ := ctx.Value(cookieKey{}).(string)
	return v
}

// Response exposes what callers may need beyond the decoded body.
type Response struct {
	Status int
	Header http.Header
}

// Client issues requests relative to a base URL such as http://host/api.
type Client struct {
	baseURL  string
	http     *http.Client
	logger   *zap.Logger
	observer Observer
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTimeout sets the per-request timeout of the default http.Client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithLogger attaches a logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithObserver attaches a metrics observer.
func WithObserver(o Observer) Option {
	return func(c *Client) { c.observer = o }
}

// New builds a Client for baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the configured base.
func (c *Client) BaseURL() string { return c.baseURL }

// Get issues a GET and decodes the body into out.
func (c *Client) Get(ctx context.Context, path string, query url.Values, out interface{}) (*Response, error) {
	return c.Do(ctx, http.MethodGet, path, query, nil, out)
}

// Post issues a POST with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body, out interface{}) (*Response, error) {
	return c.Do(ctx, http.MethodPost, path, nil, body, out)
}

// Put issues a PUT with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body, out interface{}) (*Response, error) {
	return c.Do(ctx, http.MethodPut, path, nil, body, out)
}

// Patch issues a PATCH; body may be nil.
func (c *Client) Patch(ctx context.Context, path string, body, out interface{}) (*Response, error) {
	return c.Do(ctx, http.MethodPatch, path, nil, body, out)
}

// Delete issues a DELETE.
func (c *Client) Delete(ctx context.Context, path string, out interface{}) (*Response, error) {
	return c.Do(ctx, http.MethodDelete, path, nil, nil, out)
}

// Do performs one request/response pair. A non-2xx status yields *Error with
// the body's "message" field.
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, body, out interface{}) (*Response, error) {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if cookies := CookiesFrom(ctx); cookies != "" {
		req.Header.Set("Cookie", cookies)
	}
	if id := requestid.FromContext(ctx); id != "" {
		req.Header.Set(requestid.HeaderKey, id)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.observe(method, path, 0, start)
		c.logger.Warn("backend request failed", zap.String("method", method), zap.String("path", path), zap.Error(err))
		return nil, &Error{Message: DefaultErrorMessage, Err: err}
	}
	defer resp.Body.Close()
	c.observe(method, path, resp.StatusCode, start)

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Status: resp.StatusCode, Message: DefaultErrorMessage, Err: err}
	}

	result := &Response{Status: resp.StatusCode, Header: resp.Header}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &Error{Status: resp.StatusCode, Message: messageFrom(raw)}
		c.logger.Debug("backend rejected request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.String("message", apiErr.Message),
		)
		return result, apiErr
	}

	if out != nil && len(bytes.TrimSpace(raw)) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return result, &Error{Status: resp.StatusCode, Message: DefaultErrorMessage, Err: fmt.Errorf("decode response: %w", err)}
		}
	}
	return result, nil
}

// Ping reports whether the backend answers at all; any HTTP status counts.
func (c *Client) Ping(ctx context.Context, path string) error {
	_, err := c.Do(ctx, http.MethodGet, path, nil, nil, nil)
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Status != 0 {
		return nil
	}
	return err
}

func (c *Client) observe(method, path string, status int, start time.Time) {
	if c.observer == nil {
		return
	}
	c.observer.ObserveBackendCall(method, routeOf(path), status, time.Since(start))
}

func messageFrom(raw []byte) string {
	var body struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &body); err != nil || strings.TrimSpace(body.Message) == "" {
		return DefaultErrorMessage
	}
	return body.Message
}

// routeOf keeps the first path segment so metric labels stay bounded.
func routeOf(path string) string {
	trimmed := strings.TrimPrefix(path, "/")
	if i := strings.IndexByte(trimmed, '/'); i >= 0 {
		trimmed = trimmed[:i]
	}
	return "/" + trimmed
}
