package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/tidwall/gjson"

	"github.com/idilsaglam/roster/internal/logger"
	"github.com/idilsaglam/roster/internal/model"
)

// Client talks to the student directory API rooted at baseURL
// (e.g. http://localhost:8080/api/students).
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *slog.Logger
}

// Option configures the Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client (for testing).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		c.log = l
	}
}

// NewClient creates a client. No timeout is set on the default HTTP client;
// callers bound requests through ctx.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{},
		log:        logger.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// StatusError is returned for any non-2xx reply. The body is not inspected.
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: unexpected status %d", e.Method, e.Path, e.StatusCode)
}

// updateRequest is the PUT body: the full record, id included.
type updateRequest struct {
	ID string `json:"id"`
	model.Fields
}

// List fetches every student, in store order.
func (c *Client) List(ctx context.Context) ([]model.Student, error) {
	body, err := c.do(ctx, http.MethodGet, "/fetch", nil)
	if err != nil {
		return nil, err
	}
	return decodeStudents(body)
}

// Create inserts a new student; the store assigns its id.
func (c *Client) Create(ctx context.Context, f model.Fields) error {
	_, err := c.do(ctx, http.MethodPost, "/insert", f)
	return err
}

// Update replaces the student identified by id.
func (c *Client) Update(ctx context.Context, id string, f model.Fields) error {
	_, err := c.do(ctx, http.MethodPut, "/"+url.PathEscape(id), updateRequest{ID: id, Fields: f})
	return err
}

// Delete removes the student identified by id.
func (c *Client) Delete(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodDelete, "/"+url.PathEscape(id), nil)
	return err
}

func (c *Client) do(ctx context.Context, method, path string, in any) ([]byte, error) {
	var reqBody io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}
		reqBody = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.WarnContext(ctx, "request failed", "method", method, "path", path, "error", err)
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}
	c.log.DebugContext(ctx, "request done", "method", method, "path", path, "status", resp.StatusCode)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{Method: method, Path: path, StatusCode: resp.StatusCode}
	}
	return body, nil
}

// decodeStudents reads a JSON array of students. The store may send ids and
// ages as numbers or strings, so values are taken as their raw text.
func decodeStudents(body []byte) ([]model.Student, error) {
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("parse response: invalid json")
	}
	res := gjson.ParseBytes(body)
	if !res.IsArray() {
		return nil, fmt.Errorf("parse response: expected array, got %s", res.Type)
	}
	out := make([]model.Student, 0, len(res.Array()))
	res.ForEach(func(_, v gjson.Result) bool {
		out = append(out, model.Student{
			ID:          text(v.Get("id")),
			Name:        text(v.Get("name")),
			Age:         text(v.Get("age")),
			ClassName:   text(v.Get("className")),
			PhoneNumber: text(v.Get("phoneNumber")),
		})
		return true
	})
	return out, nil
}

func text(r gjson.Result) string {
	switch r.Type {
	case gjson.Null:
		return ""
	case gjson.Number:
		// keep the store's spelling, e.g. 30 rather than 30.000000
		return r.Raw
	default:
		return r.String()
	}
}
