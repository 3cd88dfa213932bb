package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/emrgen/papernote/internal/session"
	"github.com/sirupsen/logrus"
)

// Request describes a single call against the remote API.
type Request struct {
	// Op names the operation in logs, e.g. "list comments".
	Op string
	// Message is the user facing text used when the call fails.
	Message string
	Method  string
	Path    string
	Query   url.Values
	Body    any
	// Public requests are sent without the bearer token.
	Public bool
}

// Response is the raw body and headers of a successful call.
type Response struct {
	Status int
	Header http.Header
	Body   []byte
}

// Client talks JSON to the remote API.
type Client struct {
	baseURL *url.URL
	http    *http.Client
	retry   int
	backoff func() backoff.BackOff
}

type Option func(*Client)

// WithRetry sets how many times an idempotent GET is retried.
func WithRetry(n int) Option {
	return func(c *Client) {
		c.retry = n
	}
}

// WithTimeout sets the per request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.http.Timeout = d
	}
}

// WithHTTPClient replaces the underlying http client. The cookie jar of the
// given client is used as is.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		c.http = h
	}
}

// WithBackOff overrides the retry schedule.
func WithBackOff(f func() backoff.BackOff) Option {
	return func(c *Client) {
		c.backoff = f
	}
}

// NewClient creates a client for the API at baseURL. Cookies set by the API
// are kept for the lifetime of the client.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid api url: %w", err)
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}

	c := &Client{
		baseURL: u,
		http:    &http.Client{Jar: jar, Timeout: 10 * time.Second},
		retry:   1,
		backoff: func() backoff.BackOff {
			b := backoff.NewExponentialBackOff()
			b.InitialInterval = 200 * time.Millisecond
			return b
		},
	}
	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// BaseURL returns the API root.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// Cookie returns the value of a cookie the API has set, if any.
func (c *Client) Cookie(name string) string {
	if c.http.Jar == nil {
		return ""
	}
	for _, cookie := range c.http.Jar.Cookies(c.baseURL) {
		if cookie.Name == name {
			return cookie.Value
		}
	}
	return ""
}

// Do executes req and decodes the body into out when out is not nil.
func (c *Client) Do(ctx context.Context, sess *session.Session, req Request, out any) error {
	res, err := c.Send(ctx, sess, req)
	if err != nil {
		return err
	}

	if out == nil || len(bytes.TrimSpace(res.Body)) == 0 {
		return nil
	}

	if raw, ok := out.(*json.RawMessage); ok {
		*raw = append((*raw)[:0], res.Body...)
		return nil
	}

	if err := json.Unmarshal(res.Body, out); err != nil {
		return fmt.Errorf("%s: %w: %v", req.Op, ErrShapeMismatch, err)
	}

	return nil
}

// Send executes req and returns the raw response. GET requests are retried,
// mutations are sent exactly once.
func (c *Client) Send(ctx context.Context, sess *session.Session, req Request) (*Response, error) {
	var res *Response
	attempt := 0

	operation := func() error {
		attempt++
		var err error
		res, err = c.send(ctx, sess, req)
		if err == nil {
			return nil
		}

		var apiErr *Error
		if errors.As(err, &apiErr) && apiErr.Status >= 400 && apiErr.Status < 500 {
			return backoff.Permanent(err)
		}
		if errors.Is(err, session.ErrNoAccessToken) || ctx.Err() != nil {
			return backoff.Permanent(err)
		}

		logrus.Warnf("%s failed (attempt %d): %v", req.Op, attempt, err)
		return err
	}

	retries := 0
	if req.Method == "" || req.Method == http.MethodGet {
		retries = c.retry
	}

	b := backoff.WithContext(backoff.WithMaxRetries(c.backoff(), uint64(retries)), ctx)
	if err := backoff.Retry(operation, b); err != nil {
		return nil, err
	}

	return res, nil
}

func (c *Client) send(ctx context.Context, sess *session.Session, req Request) (*Response, error) {
	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	u := c.baseURL.JoinPath(req.Path)
	if len(req.Query) > 0 {
		u.RawQuery = req.Query.Encode()
	}

	var body io.Reader
	if req.Body != nil {
		data, err := json.Marshal(req.Body)
		if err != nil {
			return nil, err
		}
		body = bytes.NewReader(data)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Accept", "application/json")
	if req.Body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	if !req.Public {
		if err := sess.Authorize(httpReq); err != nil {
			return nil, err
		}
	}

	start := time.Now()
	httpRes, err := c.http.Do(httpReq)
	logrus.Debugf("request time: %s %s: %v", method, u.Path, time.Since(start))
	if err != nil {
		return nil, &Error{Op: req.Op, Message: req.message(), Err: err}
	}
	defer httpRes.Body.Close()

	data, err := io.ReadAll(httpRes.Body)
	if err != nil {
		return nil, &Error{Op: req.Op, Message: req.message(), Err: err}
	}

	if httpRes.StatusCode < 200 || httpRes.StatusCode > 299 {
		logrus.Debugf("%s: status %d: %s", req.Op, httpRes.StatusCode, truncate(string(data), 200))
		return nil, &Error{Op: req.Op, Status: httpRes.StatusCode, Message: req.message()}
	}

	return &Response{Status: httpRes.StatusCode, Header: httpRes.Header, Body: data}, nil
}

func (r Request) message() string {
	if r.Message != "" {
		return r.Message
	}
	return "요청 실패"
}

// truncate keeps the first n runes of s.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
