// Package apiclient is a cookie-session client for the TaskMate REST API.
//
// Every call goes through one request path. When a protected endpoint answers
// 401 the client refreshes the session once (concurrent callers share the
// in-flight refresh) and retries the original request once. Auth endpoints
// are never retried.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"
)

// ErrSessionExpired is wrapped by the APIError returned when the refresh
// failed or the retried request was still rejected.
var ErrSessionExpired = errors.New("session expired")

const (
	refreshPath    = "/auth/refresh-token"
	refreshTimeout = 15 * time.Second
)

// APIError is a non-2xx answer decoded from the {success:false,...} envelope.
type APIError struct {
	Status  int
	Code    string
	Message string
	Err     error
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.Status)
	}
	if e.Err != nil {
		return fmt.Sprintf("api %d: %s: %v", e.Status, msg, e.Err)
	}
	return fmt.Sprintf("api %d: %s", e.Status, msg)
}

func (e *APIError) Unwrap() error { return e.Err }

type Client struct {
	baseURL string
	http    *http.Client
	refresh singleflight.Group
}

type Option func(*Client)

// WithHTTPClient replaces the underlying client. A cookie jar is attached
// when the given client has none.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// New returns a client for baseURL, e.g. "http://localhost:5000/api".
func New(baseURL string, opts ...Option) (*Client, error) {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 90 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.http.Jar == nil {
		jar, err := cookiejar.New(nil)
		if err != nil {
			return nil, err
		}
		c.http.Jar = jar
	}
	return c, nil
}

// isAuthPath lists the endpoints that must never trigger a refresh.
func isAuthPath(path string) bool {
	switch path {
	case "/auth/signup", "/auth/login", "/auth/logout", "/auth/me", refreshPath:
		return true
	}
	return false
}

type call struct {
	method string
	path   string
	query  url.Values
	body   any
}

// do sends the call, applies the refresh-once contract and decodes the
// envelope into out (when non-nil).
func (c *Client) do(ctx context.Context, req call, out any) error {
	raw, err := c.send(ctx, req)
	if err != nil {
		return err
	}
	return decode(raw, out)
}

// send returns the body of a 2xx response.
func (c *Client) send(ctx context.Context, req call) ([]byte, error) {
	var payload []byte
	if req.body != nil {
		b, err := json.Marshal(req.body)
		if err != nil {
			return nil, fmt.Errorf("encode %s %s: %w", req.method, req.path, err)
		}
		payload = b
	}

	status, raw, err := c.roundTrip(ctx, req, payload)
	if err != nil {
		return nil, err
	}
	if status != http.StatusUnauthorized || isAuthPath(req.path) {
		return checkStatus(status, raw)
	}

	if err := c.refreshSession(ctx); err != nil {
		log.Printf("[apiclient][refresh][err] %v", err)
		apiErr := &APIError{Status: http.StatusUnauthorized, Message: "Session expired", Err: ErrSessionExpired}
		var refreshErr *APIError
		if errors.As(err, &refreshErr) {
			apiErr.Code = refreshErr.Code
			apiErr.Message = refreshErr.Message
		}
		return nil, apiErr
	}

	status, raw, err = c.roundTrip(ctx, req, payload)
	if err != nil {
		return nil, err
	}
	if status == http.StatusUnauthorized {
		apiErr := envelopeError(status, raw)
		apiErr.Err = ErrSessionExpired
		return nil, apiErr
	}
	return checkStatus(status, raw)
}

// refreshSession performs one POST /auth/refresh-token shared by every
// caller that arrives while it is in flight. The refresh is detached from the
// first caller's cancellation and bounded by refreshTimeout instead.
func (c *Client) refreshSession(ctx context.Context) error {
	_, err, _ := c.refresh.Do(refreshPath, func() (any, error) {
		rctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), refreshTimeout)
		defer cancel()
		status, raw, err := c.roundTrip(rctx, call{method: http.MethodPost, path: refreshPath}, nil)
		if err != nil {
			return nil, err
		}
		_, err = checkStatus(status, raw)
		return nil, err
	})
	return err
}

func (c *Client) roundTrip(ctx context.Context, req call, payload []byte) (int, []byte, error) {
	u := c.baseURL + req.path
	if len(req.query) > 0 {
		u += "?" + req.query.Encode()
	}
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	httpReq, err := http.NewRequestWithContext(ctx, req.method, u, body)
	if err != nil {
		return 0, nil, err
	}
	if payload != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return 0, nil, fmt.Errorf("%s %s: %w", req.method, req.path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("read %s %s: %w", req.method, req.path, err)
	}
	return resp.StatusCode, raw, nil
}

func checkStatus(status int, raw []byte) ([]byte, error) {
	if status >= 200 && status < 300 {
		return raw, nil
	}
	return nil, envelopeError(status, raw)
}

func envelopeError(status int, raw []byte) *APIError {
	var env struct {
		Message string `json:"message"`
		Code    string `json:"code"`
	}
	_ = json.Unmarshal(raw, &env)
	return &APIError{Status: status, Code: env.Code, Message: env.Message}
}

func decode(raw []byte, out any) error {
	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
