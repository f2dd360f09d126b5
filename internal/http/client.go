package http

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

	"github.com/google/uuid"
	"github.com/hashicorp/go-retryablehttp"

	"github.com/fivetwenty-io/batch-client/internal/auth"
	"github.com/fivetwenty-io/batch-client/internal/constants"
	"github.com/fivetwenty-io/batch-client/pkg/batch"
)

// Request describes one call to the Batch service.
type Request struct {
	Method string
	// Path is appended to the base URL. Path parameters must already be escaped.
	Path string
	// URL, when set, is used as-is instead of the base URL and Path (continuation links).
	URL string
	Query   url.Values
	Headers map[string]string
	// Body is JSON-encoded unless it is already a []byte.
	Body interface{}
	// Operation names the call for logs and metrics.
	Operation string
}

// Response is a received HTTP response with its body fully read.
type Response struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
	// Raw is the underlying response. Its Body reads the buffered bytes.
	Raw *http.Response
}

// Client performs single round trips against the Batch service.
type Client struct {
	baseURL         string
	httpClient      *retryablehttp.Client
	authorizer      auth.Authorizer
	interceptors    *batch.InterceptorChain
	logger          batch.Logger
	debug           bool
	userAgent       string
	apiVersion      string
	acceptLanguage  string
	clientRequestID bool
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger.
func WithLogger(logger batch.Logger) Option {
	return func(c *Client) {
		c.logger = logger
		c.httpClient.Logger = retryLogger{logger: logger}
	}
}

// WithDebug enables request and response logging.
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}

// WithRetryConfig enables transport retries for connection failures, 429 and 5xx responses.
func WithRetryConfig(retryMax int, waitMin, waitMax time.Duration) Option {
	return func(c *Client) {
		c.httpClient.RetryMax = retryMax

		if waitMin > 0 {
			c.httpClient.RetryWaitMin = waitMin
		}

		if waitMax > 0 {
			c.httpClient.RetryWaitMax = waitMax
		}
	}
}

// WithTimeout bounds a single round trip.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.HTTPClient.Timeout = timeout
		}
	}
}

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient.HTTPClient = httpClient
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// WithInterceptors installs an interceptor chain.
func WithInterceptors(chain *batch.InterceptorChain) Option {
	return func(c *Client) {
		c.interceptors = chain
	}
}

// WithAPIVersion sets the api-version query parameter.
func WithAPIVersion(version string) Option {
	return func(c *Client) {
		if version != "" {
			c.apiVersion = version
		}
	}
}

// WithAcceptLanguage sets the Accept-Language header.
func WithAcceptLanguage(language string) Option {
	return func(c *Client) {
		if language != "" {
			c.acceptLanguage = language
		}
	}
}

// WithClientRequestID controls generation of client-request-id headers.
func WithClientRequestID(enabled bool) Option {
	return func(c *Client) {
		c.clientRequestID = enabled
	}
}

// NewClient creates a transport for baseURL. A nil authorizer sends unauthenticated requests.
func NewClient(baseURL string, authorizer auth.Authorizer, opts ...Option) *Client {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = 0
	retryClient.RetryWaitMin = constants.DefaultRetryWaitMin
	retryClient.RetryWaitMax = constants.DefaultRetryWaitMax
	retryClient.HTTPClient.Timeout = constants.DefaultHTTPTimeout
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler
	retryClient.Logger = nil

	if authorizer == nil {
		authorizer = auth.AnonymousAuthorizer{}
	}

	client := &Client{
		baseURL:         strings.TrimSuffix(baseURL, "/"),
		httpClient:      retryClient,
		authorizer:      authorizer,
		logger:          batch.NoopLogger{},
		userAgent:       constants.DefaultUserAgent,
		apiVersion:      constants.DefaultAPIVersion,
		acceptLanguage:  constants.DefaultAcceptLanguage,
		clientRequestID: true,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// BaseURL returns the account endpoint.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Do performs one round trip. A non-2xx status is returned as a Response, not an error.
// A body that cannot be encoded is a *batch.ValidationError. Everything else that stops the
// request from producing a response is a *batch.TransportError: connection failures, timeouts,
// a request interceptor rejecting the call and a failed authorization.
// Response interceptor errors are logged and do not fail the call.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	target, err := c.buildURL(req)
	if err != nil {
		return nil, &batch.TransportError{Method: req.Method, URL: req.Path, Err: err}
	}

	body, err := encodeBody(req.Body)
	if err != nil {
		return nil, &batch.ValidationError{Operation: req.Operation, Parameter: "body", Err: err}
	}

	var rawBody interface{}
	if body != nil {
		rawBody = body
	}

	retryReq, err := retryablehttp.NewRequestWithContext(ctx, req.Method, target, rawBody)
	if err != nil {
		return nil, &batch.TransportError{Method: req.Method, URL: target, Err: err}
	}

	c.setHeaders(retryReq.Request, req, body != nil)

	intercepted := &batch.Request{
		Method:    req.Method,
		Path:      retryReq.URL.Path,
		Operation: req.Operation,
		Headers:   retryReq.Header,
		Body:      body,
	}

	err = c.interceptors.ExecuteRequestInterceptors(ctx, intercepted)
	if err != nil {
		return nil, &batch.TransportError{Method: req.Method, URL: target, Err: err}
	}

	err = c.authorizer.Authorize(ctx, retryReq.Request)
	if err != nil {
		return nil, &batch.TransportError{Method: req.Method, URL: target, Err: fmt.Errorf("authorizing request: %w", err)}
	}

	if c.debug {
		c.logger.Debug("HTTP Request", map[string]interface{}{
			"method":            req.Method,
			"url":               target,
			"operation":         req.Operation,
			"client_request_id": retryReq.Header.Get(constants.HeaderClientRequestID),
		})
	}

	start := time.Now()

	httpResp, err := c.httpClient.Do(retryReq)
	if err != nil {
		if httpResp != nil {
			_ = httpResp.Body.Close()
		}

		transportErr := &batch.TransportError{Method: req.Method, URL: target, Err: err}
		_ = c.interceptors.ExecuteResponseInterceptors(ctx, intercepted, &batch.InterceptedResponse{Error: transportErr})

		return nil, transportErr
	}
	defer func() { _ = httpResp.Body.Close() }()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, &batch.TransportError{Method: req.Method, URL: target, Err: fmt.Errorf("reading response body: %w", err)}
	}

	httpResp.Body = io.NopCloser(bytes.NewReader(respBody))

	if c.debug {
		c.logger.Debug("HTTP Response", map[string]interface{}{
			"status":     httpResp.StatusCode,
			"request_id": httpResp.Header.Get(constants.HeaderRequestID),
			"duration":   time.Since(start).String(),
			"body_size":  len(respBody),
		})
	}

	err = c.interceptors.ExecuteResponseInterceptors(ctx, intercepted, &batch.InterceptedResponse{
		StatusCode: httpResp.StatusCode,
		Headers:    httpResp.Header,
	})
	if err != nil {
		c.logger.Warn("response interceptor failed", map[string]interface{}{
			"operation": req.Operation,
			"error":     err.Error(),
		})
	}

	return &Response{
		StatusCode: httpResp.StatusCode,
		Headers:    httpResp.Header,
		Body:       respBody,
		Raw:        httpResp,
	}, nil
}

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, path string, query url.Values) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodGet, Path: path, Query: query})
}

// Head performs a HEAD request.
func (c *Client) Head(ctx context.Context, path string, query url.Values) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodHead, Path: path, Query: query})
}

// Post performs a POST request.
func (c *Client) Post(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPost, Path: path, Body: body})
}

// Put performs a PUT request.
func (c *Client) Put(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPut, Path: path, Body: body})
}

// Patch performs a PATCH request.
func (c *Client) Patch(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPatch, Path: path, Body: body})
}

// Delete performs a DELETE request.
func (c *Client) Delete(ctx context.Context, path string) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodDelete, Path: path})
}

func (c *Client) buildURL(req *Request) (string, error) {
	raw := req.URL
	if raw == "" {
		raw = c.baseURL + req.Path
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("parsing request URL: %w", err)
	}

	query := parsed.Query()
	for key, values := range req.Query {
		for _, value := range values {
			query.Add(key, value)
		}
	}

	if query.Get(constants.QueryAPIVersion) == "" {
		query.Set(constants.QueryAPIVersion, c.apiVersion)
	}

	parsed.RawQuery = query.Encode()

	return parsed.String(), nil
}

func (c *Client) setHeaders(httpReq *http.Request, req *Request, hasBody bool) {
	httpReq.Header.Set(constants.HeaderAccept, "application/json")
	httpReq.Header.Set(constants.HeaderUserAgent, c.userAgent)
	httpReq.Header.Set(constants.HeaderAcceptLanguage, c.acceptLanguage)
	httpReq.Header.Set(constants.HeaderOcpDate, time.Now().UTC().Format(http.TimeFormat))

	if c.clientRequestID {
		httpReq.Header.Set(constants.HeaderClientRequestID, uuid.NewString())
		httpReq.Header.Set(constants.HeaderReturnClientRequestID, "true")
	}

	if hasBody {
		httpReq.Header.Set(constants.HeaderContentType, constants.ContentTypeJSON)
	}

	for key, value := range req.Headers {
		httpReq.Header.Set(key, value)
	}
}

func encodeBody(body interface{}) ([]byte, error) {
	switch typed := body.(type) {
	case nil:
		return nil, nil
	case []byte:
		return typed, nil
	default:
		data, err := json.Marshal(typed)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}

		return data, nil
	}
}

// retryLogger adapts batch.Logger to retryablehttp.LeveledLogger.
type retryLogger struct {
	logger batch.Logger
}

func (l retryLogger) Error(msg string, keysAndValues ...interface{}) {
	l.logger.Error(msg, keyValueFields(keysAndValues))
}

func (l retryLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Info(msg, keyValueFields(keysAndValues))
}

func (l retryLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.logger.Debug(msg, keyValueFields(keysAndValues))
}

func (l retryLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.logger.Warn(msg, keyValueFields(keysAndValues))
}

func keyValueFields(keysAndValues []interface{}) map[string]interface{} {
	fields := make(map[string]interface{}, len(keysAndValues)/2)

	for i := 0; i+1 < len(keysAndValues); i += 2 {
		fields[fmt.Sprint(keysAndValues[i])] = keysAndValues[i+1]
	}

	return fields
}
