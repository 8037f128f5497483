// Package backend is the HTTP client for the EduReach REST API.
//
// Every authenticated call takes the bearer token explicitly. When the token is empty the
// call returns its zero value and a nil error without touching the network: a visitor
// without a session simply has nothing to fetch.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/yigit/edureach/internal/pkg/apperrors"
)

const defaultTimeout = 30 * time.Second

// maxErrorBody caps how much of a failed response is kept for diagnostics.
const maxErrorBody = 4 << 10

// Options configures a Client.
type Options struct {
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client
	Logger     zerolog.Logger
}

// Client talks to the backend API.
type Client struct {
	baseURL string
	http    *http.Client
	logger  zerolog.Logger
}

// New creates a Client. A trailing slash is added to the base URL when missing so that
// endpoint paths can be joined relative to it.
func New(opts Options) *Client {
	baseURL := opts.BaseURL
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Client{
		baseURL: baseURL,
		http:    httpClient,
		logger:  opts.Logger,
	}
}

// BaseURL returns the normalized base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// HTTPError is returned for any non-2xx response.
type HTTPError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("backend %s %s: status %d: %s", e.Method, e.Path, e.StatusCode, e.Body)
	}
	return fmt.Sprintf("backend %s %s: status %d", e.Method, e.Path, e.StatusCode)
}

// Unwrap maps the status code onto the application error taxonomy.
func (e *HTTPError) Unwrap() error {
	switch e.StatusCode {
	case http.StatusUnauthorized:
		return apperrors.ErrUnauthorized
	case http.StatusForbidden:
		return apperrors.ErrPermissionDenied
	case http.StatusNotFound:
		return apperrors.ErrResourceNotFound
	case http.StatusConflict:
		return apperrors.ErrConflict
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return apperrors.ErrBadRequest
	default:
		return apperrors.ErrBackendResponse
	}
}

// Message extracts a human readable message from the error body when the backend sent one.
func (e *HTTPError) Message() string {
	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
		Title   string `json:"title"`
	}
	if err := json.Unmarshal([]byte(e.Body), &body); err == nil {
		for _, m := range []string{body.Message, body.Error, body.Title} {
			if m != "" {
				return m
			}
		}
	}
	return ""
}

// request describes one outbound call.
type request struct {
	method      string
	path        string
	token       string
	body        io.Reader
	contentType string
}

func jsonRequest(method, path, token string, payload interface{}) (request, error) {
	req := request{method: method, path: path, token: token}
	if payload == nil {
		return req, nil
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return req, fmt.Errorf("failed to marshal request: %w", err)
	}
	req.body = bytes.NewReader(data)
	req.contentType = "application/json"
	return req, nil
}

// do sends the request and returns the raw response body of a 2xx response.
func (c *Client) do(ctx context.Context, r request) ([]byte, error) {
	httpReq, err := http.NewRequestWithContext(ctx, r.method, c.baseURL+strings.TrimPrefix(r.path, "/"), r.body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")
	if r.contentType != "" {
		httpReq.Header.Set("Content-Type", r.contentType)
	}
	if r.token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+r.token)
	}

	start := time.Now()
	resp, err := c.http.Do(httpReq)
	if err != nil {
		c.logger.Warn().Err(err).Str("method", r.method).Str("path", r.path).Msg("Backend request failed")
		return nil, fmt.Errorf("%w: %s %s: %v", apperrors.ErrBackendUnavailable, r.method, r.path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %v", apperrors.ErrBackendUnavailable, err)
	}

	c.logger.Debug().
		Str("method", r.method).
		Str("path", r.path).
		Int("status", resp.StatusCode).
		Dur("latency", time.Since(start)).
		Msg("Backend request")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if len(body) > maxErrorBody {
			body = body[:maxErrorBody]
		}
		return nil, &HTTPError{
			Method:     r.method,
			Path:       r.path,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(body)),
		}
	}
	return body, nil
}

// doJSON sends the request and decodes a JSON response into out when out is non-nil.
func (c *Client) doJSON(ctx context.Context, r request, out interface{}) error {
	body, err := c.do(ctx, r)
	if err != nil {
		return err
	}
	if out == nil || len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: failed to decode %s %s: %v", apperrors.ErrBackendResponse, r.method, r.path, err)
	}
	return nil
}

func (c *Client) getJSON(ctx context.Context, path, token string, out interface{}) error {
	return c.doJSON(ctx, request{method: http.MethodGet, path: path, token: token}, out)
}

func (c *Client) sendJSON(ctx context.Context, method, path, token string, payload, out interface{}) error {
	req, err := jsonRequest(method, path, token, payload)
	if err != nil {
		return err
	}
	return c.doJSON(ctx, req, out)
}

// IsHTTPStatus reports whether err is an HTTPError with the given status code.
func IsHTTPStatus(err error, status int) bool {
	var httpErr *HTTPError
	return errors.As(err, &httpErr) && httpErr.StatusCode == status
}
