// Package httpx is the shared HTTP transport underneath the REST and Upload
// API clients. It handles base URL resolution, default headers, optional
// retries for transient failures and mapping of non-2xx responses into
// HTTPError values.
package httpx

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/sirupsen/logrus"
)

// RetryPolicy controls the retry behaviour for transient failures.
// The zero value performs no retries: errors are surfaced directly, which is
// what the upstream API contract expects from a thin client.
type RetryPolicy struct {
	MaxRetries int
	BaseDelay  time.Duration
	MaxDelay   time.Duration
	RetryIf    func(resp *http.Response, err error) bool
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the HTTP client used by the transport.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.httpClient = h
		}
	}
}

// WithHeaders assigns default headers added to every request.
func WithHeaders(h http.Header) Option {
	return func(c *Client) {
		for k, values := range h {
			for _, v := range values {
				c.headers.Add(k, v)
			}
		}
	}
}

// WithRetryPolicy enables retries for transient failures (connection errors,
// 408/429 and 5xx responses).
func WithRetryPolicy(policy RetryPolicy) Option {
	return func(c *Client) {
		c.retryPolicy = policy
	}
}

// WithLogger sets the logger used for request/response debug logging.
func WithLogger(log logrus.FieldLogger) Option {
	return func(c *Client) {
		if log != nil {
			c.log = log
		}
	}
}

// Client wraps http.Client providing base URL and error mapping utilities.
type Client struct {
	baseURL     *url.URL
	httpClient  *http.Client
	headers     http.Header
	retryPolicy RetryPolicy
	log         logrus.FieldLogger
}

// Request describes a single outbound request.
type Request struct {
	Method string
	// Path is resolved against the client base URL. URL, when set, is used
	// verbatim instead; pagination and presigned part URLs are absolute.
	Path         string
	URL          string
	Query        url.Values
	Header       http.Header
	DisableRetry bool
	Body         io.Reader
	GetBody      func() (io.ReadCloser, error)
}

// NewClient creates a Client for the provided base URL.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, errors.New("httpx: base URL is required")
	}

	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("httpx: invalid base URL: %w", err)
	}

	c := &Client{
		baseURL: parsed,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		headers: make(http.Header),
		log:     discardLogger(),
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.retryPolicy.MaxRetries < 0 {
		c.retryPolicy.MaxRetries = 0
	}
	if c.retryPolicy.BaseDelay <= 0 {
		c.retryPolicy.BaseDelay = 250 * time.Millisecond
	}
	if c.retryPolicy.MaxDelay <= 0 {
		c.retryPolicy.MaxDelay = 2 * time.Second
	}
	return c, nil
}

// Do executes the provided request and returns the response, or an HTTPError
// for non-2xx statuses.
func (c *Client) Do(ctx context.Context, req *Request) (*http.Response, error) {
	if req == nil {
		return nil, errors.New("httpx: request is nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if req.Method == "" {
		return nil, errors.New("httpx: HTTP method is required")
	}

	retries := c.retryPolicy.MaxRetries
	if req.DisableRetry {
		retries = 0
	}

	if retries > 0 && req.GetBody == nil && req.Body != nil {
		// Buffer the body so it can be replayed on retry.
		data, err := io.ReadAll(req.Body)
		if err != nil {
			return nil, fmt.Errorf("httpx: read request body: %w", err)
		}
		req.Body = bytes.NewReader(data)
		req.GetBody = func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(data)), nil
		}
	}

	fullURL, err := c.resolveURL(req)
	if err != nil {
		return nil, err
	}

	var resp *http.Response
	attempt := 0
	operation := func() error {
		body, err := c.prepareBody(req, attempt == 0)
		if err != nil {
			return backoff.Permanent(err)
		}
		attempt++

		httpReq, err := http.NewRequestWithContext(ctx, req.Method, fullURL, body)
		if err != nil {
			return backoff.Permanent(err)
		}

		httpReq.Header = cloneHeader(c.headers)
		for k, values := range req.Header {
			for _, v := range values {
				httpReq.Header.Add(k, v)
			}
		}

		c.log.WithFields(logrus.Fields{
			"method": req.Method,
			"url":    fullURL,
		}).Debug("sending request")

		res, err := c.httpClient.Do(httpReq)
		if err != nil {
			if !c.shouldRetry(nil, err) {
				return backoff.Permanent(err)
			}
			return err
		}

		c.log.WithFields(logrus.Fields{
			"method": req.Method,
			"url":    fullURL,
			"status": res.StatusCode,
		}).Debug("received response")

		if res.StatusCode >= 400 {
			httpErr := newHTTPError(res)
			if !c.shouldRetry(res, httpErr) {
				return backoff.Permanent(httpErr)
			}
			return httpErr
		}

		resp = res
		return nil
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(c.newBackoff(), uint64(retries)), ctx)
	if err := backoff.Retry(operation, policy); err != nil {
		var perm *backoff.PermanentError
		if errors.As(err, &perm) {
			return nil, perm.Unwrap()
		}
		return nil, err
	}
	return resp, nil
}

func (c *Client) newBackoff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = c.retryPolicy.BaseDelay
	b.MaxInterval = c.retryPolicy.MaxDelay
	b.MaxElapsedTime = 0
	return b
}

func (c *Client) prepareBody(req *Request, first bool) (io.Reader, error) {
	if first && req.Body != nil {
		body := req.Body
		req.Body = nil
		return body, nil
	}
	if req.GetBody != nil {
		return req.GetBody()
	}
	return http.NoBody, nil
}

func (c *Client) shouldRetry(resp *http.Response, err error) bool {
	if c.retryPolicy.RetryIf != nil {
		return c.retryPolicy.RetryIf(resp, err)
	}
	if resp == nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return false
		}
		var httpErr *HTTPError
		if errors.As(err, &httpErr) {
			return httpErr.Retryable()
		}
		return true
	}
	return resp.StatusCode == http.StatusTooManyRequests ||
		resp.StatusCode == http.StatusRequestTimeout ||
		(resp.StatusCode >= 500 && resp.StatusCode <= 599)
}

func (c *Client) resolveURL(req *Request) (string, error) {
	if req.URL != "" {
		parsed, err := url.Parse(req.URL)
		if err != nil {
			return "", fmt.Errorf("httpx: invalid request URL: %w", err)
		}
		if !parsed.IsAbs() {
			return "", fmt.Errorf("httpx: request URL %q is not absolute", req.URL)
		}
		return parsed.String(), nil
	}

	path := req.Path
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	ref, err := url.Parse(path)
	if err != nil {
		return "", err
	}
	if len(req.Query) > 0 {
		ref.RawQuery = req.Query.Encode()
	}
	return c.baseURL.ResolveReference(ref).String(), nil
}

// ReadAllAndClose drains the reader and ensures it is closed.
func ReadAllAndClose(rc io.ReadCloser) ([]byte, error) {
	defer closeBody(rc)
	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, err
	}
	return data, nil
}

func closeBody(rc io.ReadCloser) {
	if rc != nil {
		_ = rc.Close()
	}
}

func cloneHeader(src http.Header) http.Header {
	dst := make(http.Header, len(src))
	for k, values := range src {
		vCopy := make([]string, len(values))
		copy(vCopy, values)
		dst[k] = vCopy
	}
	return dst
}

func discardLogger() logrus.FieldLogger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}
