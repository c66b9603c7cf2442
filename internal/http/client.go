// Package http is the transport used by the Sensibo API client. It assembles
// URLs and query parameters, encodes JSON bodies, checks response status, and
// hands raw bodies back to the resource layer.
package http

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
	"sync"
	"sync/atomic"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/fivetwenty-io/sensibo/internal/constants"
	"github.com/fivetwenty-io/sensibo/pkg/sensibo"
)

// Logger is the logging interface used by the transport.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Request describes one API call.
type Request struct {
	Method  string
	Path    string
	Query   url.Values
	Body    interface{}
	Headers map[string]string
}

// Response is a fully read API response.
type Response struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
}

// Client performs API requests against a base URL, adding the API key to
// every request.
type Client struct {
	baseURL   string
	apiKey    string
	userAgent string
	timeout   time.Duration
	logger    Logger
	debug     bool

	httpClient *http.Client
	// retryable is set only when the transport is owned by this client.
	retryable    *retryablehttp.Client
	interceptors *sensibo.InterceptorChain
	metrics      *metrics

	closeOnce sync.Once
	closed    atomic.Bool
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger.
func WithLogger(logger Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithDebug enables request/response logging.
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// WithTimeout bounds each request of a client-owned transport. It has no
// effect together with WithHTTPClient.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// WithHTTPClient makes the client borrow httpClient. A borrowed client is
// never closed.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithInterceptors runs chain around every request.
func WithInterceptors(chain *sensibo.InterceptorChain) Option {
	return func(c *Client) {
		c.interceptors = chain
	}
}

// WithMetrics records request metrics in registerer.
func WithMetrics(registerer prometheus.Registerer) Option {
	return func(c *Client) {
		if registerer != nil {
			c.metrics = newMetrics(registerer)
		}
	}
}

// NewClient creates a client for baseURL. The returned client owns its
// transport unless WithHTTPClient is given.
func NewClient(baseURL, apiKey string, opts ...Option) *Client {
	client := &Client{
		baseURL:   strings.TrimSuffix(baseURL, "/"),
		apiKey:    apiKey,
		userAgent: constants.DefaultUserAgent,
		timeout:   constants.DefaultHTTPTimeout,
	}

	for _, opt := range opts {
		opt(client)
	}

	if client.httpClient == nil {
		client.retryable = newOwnedTransport(client.timeout)
		client.httpClient = client.retryable.StandardClient()
	}

	return client
}

// newOwnedTransport builds the pooled transport used when the caller did not
// supply one. Requests are sent exactly once.
func newOwnedTransport(timeout time.Duration) *retryablehttp.Client {
	retryable := retryablehttp.NewClient()
	retryable.Logger = nil
	retryable.RetryMax = 0
	retryable.CheckRetry = func(ctx context.Context, resp *http.Response, err error) (bool, error) {
		return false, nil
	}
	retryable.ErrorHandler = retryablehttp.PassthroughErrorHandler
	retryable.HTTPClient.Timeout = timeout

	return retryable
}

// Owned reports whether the client created, and therefore releases, its
// transport.
func (c *Client) Owned() bool {
	return c.retryable != nil
}

// HTTPClient returns the underlying HTTP client.
func (c *Client) HTTPClient() *http.Client {
	return c.httpClient
}

// Close releases an owned transport. It is a no-op for a borrowed one and
// safe to call more than once.
func (c *Client) Close() error {
	c.closeOnce.Do(func() {
		c.closed.Store(true)

		if c.retryable != nil {
			c.retryable.HTTPClient.CloseIdleConnections()
		}
	})

	return nil
}

// Do performs req. A non-2xx status yields both the response and an
// *sensibo.APIError.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	if c.closed.Load() {
		return nil, sensibo.ErrClientClosed
	}

	var body []byte

	if req.Body != nil {
		encoded, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("encoding request body: %w", err)
		}

		body = encoded
	}

	intercepted := &sensibo.Request{
		Method:  req.Method,
		Path:    req.Path,
		Headers: make(http.Header),
		Body:    body,
	}

	if c.interceptors != nil {
		err := c.interceptors.ExecuteRequestInterceptors(ctx, intercepted)
		if err != nil {
			return nil, err
		}
	}

	httpReq, err := c.buildRequest(ctx, req, intercepted)
	if err != nil {
		return nil, err
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Request", map[string]interface{}{
			"method": httpReq.Method,
			"url":    c.redact(httpReq.URL),
		})
	}

	start := time.Now()

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.metrics.observe(req.Method, "error", time.Since(start))
		c.intercept(ctx, intercepted, &sensibo.Response{Error: err})

		return nil, fmt.Errorf("executing request: %w", c.scrub(err))
	}

	defer func() {
		_ = httpResp.Body.Close()
	}()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		c.metrics.observe(req.Method, "error", time.Since(start))
		c.intercept(ctx, intercepted, &sensibo.Response{StatusCode: httpResp.StatusCode, Error: err})

		return nil, fmt.Errorf("reading response body: %w", err)
	}

	c.metrics.observe(req.Method, fmt.Sprintf("%d", httpResp.StatusCode), time.Since(start))

	resp := &Response{
		StatusCode: httpResp.StatusCode,
		Headers:    httpResp.Header,
		Body:       respBody,
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Response", map[string]interface{}{
			"status": resp.StatusCode,
			"bytes":  len(respBody),
		})
	}

	var apiErr error
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		apiErr = statusError(resp)
	}

	c.intercept(ctx, intercepted, &sensibo.Response{
		StatusCode: resp.StatusCode,
		Headers:    resp.Headers,
		Body:       resp.Body,
		Error:      apiErr,
	})

	if apiErr != nil {
		return resp, apiErr
	}

	return resp, nil
}

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, path string, query url.Values) (*Response, error) {
	return c.Do(ctx, &Request{
		Method: http.MethodGet,
		Path:   path,
		Query:  query,
	})
}

// Patch performs a PATCH request with a JSON body.
func (c *Client) Patch(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{
		Method: http.MethodPatch,
		Path:   path,
		Body:   body,
	})
}

func (c *Client) buildRequest(ctx context.Context, req *Request, intercepted *sensibo.Request) (*http.Request, error) {
	endpoint, err := url.Parse(c.baseURL + req.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", sensibo.ErrInvalidBaseURL, err)
	}

	query := url.Values{}
	for key, values := range req.Query {
		query[key] = append([]string(nil), values...)
	}

	query.Set(constants.ParamAPIKey, c.apiKey)
	endpoint.RawQuery = query.Encode()

	var reader io.Reader
	if intercepted.Body != nil {
		reader = bytes.NewReader(intercepted.Body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, endpoint.String(), reader)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	httpReq.Header.Set("Accept", constants.ContentTypeJSON)
	httpReq.Header.Set("User-Agent", c.userAgent)

	if intercepted.Body != nil {
		httpReq.Header.Set("Content-Type", constants.ContentTypeJSON)
	}

	for key, values := range intercepted.Headers {
		for _, value := range values {
			httpReq.Header.Add(key, value)
		}
	}

	for key, value := range req.Headers {
		httpReq.Header.Set(key, value)
	}

	return httpReq, nil
}

func (c *Client) intercept(ctx context.Context, req *sensibo.Request, resp *sensibo.Response) {
	if c.interceptors == nil {
		return
	}

	err := c.interceptors.ExecuteResponseInterceptors(ctx, req, resp)
	if err != nil && c.logger != nil {
		c.logger.Warn("response interceptor failed", map[string]interface{}{
			"path":  req.Path,
			"error": err.Error(),
		})
	}
}

// redact renders u with the API key masked.
func (c *Client) redact(u *url.URL) string {
	clone := *u
	query := clone.Query()

	if query.Has(constants.ParamAPIKey) {
		query.Set(constants.ParamAPIKey, constants.MaskedSecret)
	}

	clone.RawQuery = query.Encode()

	return clone.String()
}

// scrub keeps the API key out of transport errors, which embed the URL.
func (c *Client) scrub(err error) error {
	if c.apiKey == "" {
		return err
	}

	urlErr := &url.Error{}
	if errors.As(err, &urlErr) {
		if parsed, parseErr := url.Parse(urlErr.URL); parseErr == nil {
			err = &url.Error{Op: urlErr.Op, URL: c.redact(parsed), Err: urlErr.Err}
		}
	}

	return &redactedError{err: err, secrets: []string{c.apiKey, url.QueryEscape(c.apiKey)}}
}

// redactedError masks secrets in the message of a wrapped error. Nested
// url.Errors carry their own copy of the request URL.
type redactedError struct {
	err     error
	secrets []string
}

func (e *redactedError) Error() string {
	msg := e.err.Error()

	for _, secret := range e.secrets {
		if secret != "" {
			msg = strings.ReplaceAll(msg, secret, constants.MaskedSecret)
		}
	}

	return msg
}

func (e *redactedError) Unwrap() error {
	return e.err
}

// statusError builds the error for a non-2xx response. Sensibo error bodies
// use the same envelope as successful ones, with a reason and a message.
func statusError(resp *Response) *sensibo.APIError {
	apiErr := &sensibo.APIError{
		Kind:       sensibo.ErrorKindStatus,
		StatusCode: resp.StatusCode,
		Err:        sensibo.ErrUnexpectedHTTPStatus,
	}

	var envelope struct {
		Status  string `json:"status"`
		Reason  string `json:"reason"`
		Message string `json:"message"`
	}

	if err := json.Unmarshal(resp.Body, &envelope); err == nil {
		apiErr.Status = envelope.Status
		apiErr.Reason = envelope.Reason
		apiErr.Message = envelope.Message
	}

	if apiErr.Message == "" {
		apiErr.Message = strings.TrimSpace(string(resp.Body))
	}

	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(resp.StatusCode)
	}

	return apiErr
}
