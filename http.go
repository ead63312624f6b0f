package client

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"

	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"
)

// RequestInterceptor runs immediately before dispatch. Interceptors never
// block or queue a call; an unauthenticated request goes out as-is and the
// server decides.
type RequestInterceptor func(req *http.Request) error

// ResponseInterceptor is a pure observation point on every inbound response.
// Each hook receives its own reader over the buffered body; reading it
// affects neither later hooks nor decoding.
type ResponseInterceptor func(req *http.Request, resp *http.Response) error

// APIClient is the request engine: fixed base URL, JSON content negotiation,
// cache-busting defaults, a cookie jar for cookie-based session continuity,
// and interceptor hooks around every call.
type APIClient struct {
	baseURL   string
	client    *http.Client
	reqHooks  []RequestInterceptor
	respHooks []ResponseInterceptor
	trace     TraceHook
	logger    Logger
}

// ClientOption customizes APIClient construction.
type ClientOption func(*APIClient)

// WithHTTPClient replaces the underlying http.Client. The cookie jar is
// preserved unless the replacement carries its own.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *APIClient) {
		if hc == nil {
			return
		}
		if hc.Jar == nil {
			hc.Jar = c.client.Jar
		}
		c.client = hc
	}
}

// WithClientLogger overrides the client logger.
func WithClientLogger(logger Logger) ClientOption {
	return func(c *APIClient) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithTraceHook sets the observability callback invoked once per request.
func WithTraceHook(hook TraceHook) ClientOption {
	return func(c *APIClient) {
		c.trace = hook
	}
}

// WithRequestInterceptor appends a request interceptor.
func WithRequestInterceptor(hook RequestInterceptor) ClientOption {
	return func(c *APIClient) {
		if hook != nil {
			c.reqHooks = append(c.reqHooks, hook)
		}
	}
}

// WithResponseInterceptor appends a response interceptor.
func WithResponseInterceptor(hook ResponseInterceptor) ClientOption {
	return func(c *APIClient) {
		if hook != nil {
			c.respHooks = append(c.respHooks, hook)
		}
	}
}

// AuthorizationInterceptor injects the current session credential as
// "Bearer <token>". An Authorization header already present on the request
// wins over the store; either way the value is normalized so applying the
// interceptor twice never double-prefixes.
func AuthorizationInterceptor(store *SessionStore) RequestInterceptor {
	return func(req *http.Request) error {
		if existing := req.Header.Get("Authorization"); existing != "" {
			req.Header.Set("Authorization", "Bearer "+NormalizeBearerToken(existing))
			return nil
		}

		if session := store.Get(); session != nil && session.AccessToken != "" {
			req.Header.Set("Authorization", "Bearer "+NormalizeBearerToken(session.AccessToken))
		}

		return nil
	}
}

// NewAPIClient creates a client rooted at baseURL.
func NewAPIClient(baseURL string, opts ...ClientOption) *APIClient {
	jar, _ := cookiejar.New(nil)

	c := &APIClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Jar: jar},
		logger:  defLogger{},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// BaseURL returns the fixed base address the client is rooted at.
func (c *APIClient) BaseURL() string {
	return c.baseURL
}

// RequestOption tweaks a single call.
type RequestOption func(*requestConfig)

type requestConfig struct {
	headers http.Header
	query   url.Values
}

// WithHeader adds a header to this call, overriding the default of the same
// name.
func WithHeader(key, value string) RequestOption {
	return func(rc *requestConfig) {
		rc.headers.Set(key, value)
	}
}

// WithQuery adds a query parameter to this call.
func WithQuery(key, value string) RequestOption {
	return func(rc *requestConfig) {
		rc.query.Add(key, value)
	}
}

// WithQueryValues merges a set of query parameters into this call.
func WithQueryValues(values url.Values) RequestOption {
	return func(rc *requestConfig) {
		for key, vals := range values {
			for _, v := range vals {
				rc.query.Add(key, v)
			}
		}
	}
}

// Get issues a GET and decodes the 2xx body into out.
func (c *APIClient) Get(ctx context.Context, path string, out any, opts ...RequestOption) error {
	return c.do(ctx, http.MethodGet, path, nil, out, opts...)
}

// Post issues a POST and decodes the 2xx body into out. A url.Values body is
// form-encoded, a []byte or io.Reader body is sent verbatim, anything else
// is marshaled as JSON.
func (c *APIClient) Post(ctx context.Context, path string, body, out any, opts ...RequestOption) error {
	return c.do(ctx, http.MethodPost, path, body, out, opts...)
}

// Put issues a PUT with the same body handling as Post.
func (c *APIClient) Put(ctx context.Context, path string, body, out any, opts ...RequestOption) error {
	return c.do(ctx, http.MethodPut, path, body, out, opts...)
}

// Delete issues a DELETE and decodes the 2xx body into out.
func (c *APIClient) Delete(ctx context.Context, path string, out any, opts ...RequestOption) error {
	return c.do(ctx, http.MethodDelete, path, nil, out, opts...)
}

func (c *APIClient) do(ctx context.Context, method, path string, body, out any, opts ...RequestOption) error {
	cfg := &requestConfig{
		headers: http.Header{},
		query:   url.Values{},
	}
	for _, opt := range opts {
		opt(cfg)
	}

	reader, contentType, err := encodeBody(body)
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryBadInput, "failed to encode request body")
	}

	target := c.baseURL + path
	if len(cfg.query) > 0 {
		target += "?" + cfg.query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryBadInput, "failed to build request")
	}

	requestID := uuid.NewString()

	// Marketplace data is read-sensitive; never let an intermediate cache
	// serve it stale.
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("Pragma", "no-cache")
	req.Header.Set("X-Request-ID", requestID)

	for key, vals := range cfg.headers {
		req.Header.Del(key)
		for _, v := range vals {
			req.Header.Add(key, v)
		}
	}

	for _, hook := range c.reqHooks {
		if err := hook(req); err != nil {
			return goerrors.Wrap(err, goerrors.CategoryOperation, "request interceptor failed")
		}
	}

	c.logger.Debug("%s %s request_id=%s", method, path, requestID)

	resp, err := c.client.Do(req)
	if err != nil {
		apiErr := &APIError{
			Method:  method,
			Path:    path,
			Message: err.Error(),
			Err:     err,
		}
		c.traceCall(requestID, method, path, 0, apiErr)
		return apiErr
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		apiErr := &APIError{
			Method:  method,
			Path:    path,
			Status:  resp.StatusCode,
			Message: err.Error(),
			Err:     err,
		}
		c.traceCall(requestID, method, path, resp.StatusCode, apiErr)
		return apiErr
	}

	// Each hook gets its own reader over the buffered body, so one hook
	// draining it does not starve the next, or the decode below.
	for _, hook := range c.respHooks {
		resp.Body = io.NopCloser(bytes.NewReader(raw))
		if err := hook(req, resp); err != nil {
			return goerrors.Wrap(err, goerrors.CategoryOperation, "response interceptor failed")
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := newStatusError(method, path, resp.StatusCode, raw)
		c.traceCall(requestID, method, path, resp.StatusCode, apiErr)
		return apiErr
	}

	c.traceCall(requestID, method, path, resp.StatusCode, nil)

	if out == nil || len(raw) == 0 {
		return nil
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryBadInput, "failed to decode response body").
			WithTextCode(TextCodeMalformedResponse)
	}

	return nil
}

func (c *APIClient) traceCall(requestID, method, path string, status int, err error) {
	if c.trace == nil {
		return
	}

	c.trace(TraceInfo{
		RequestID: requestID,
		Method:    method,
		Path:      path,
		Status:    status,
		Err:       err,
	})
}

// newStatusError normalizes a non-2xx response. The body is decoded when it
// is JSON; the message prefers the API's detail field.
func newStatusError(method, path string, status int, raw []byte) *APIError {
	apiErr := &APIError{
		Method: method,
		Path:   path,
		Status: status,
	}

	var body any
	if len(raw) > 0 && json.Unmarshal(raw, &body) == nil {
		apiErr.Body = body
	}

	if fields, ok := body.(map[string]any); ok {
		if detail, ok := fields["detail"].(string); ok {
			apiErr.Message = detail
		} else if msg, ok := fields["message"].(string); ok {
			apiErr.Message = msg
		}
	}

	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(status)
	}

	return apiErr
}

func encodeBody(body any) (io.Reader, string, error) {
	switch v := body.(type) {
	case nil:
		return nil, "application/json", nil
	case url.Values:
		return strings.NewReader(v.Encode()), "application/x-www-form-urlencoded", nil
	case []byte:
		return bytes.NewReader(v), "application/json", nil
	case io.Reader:
		return v, "application/json", nil
	default:
		raw, err := json.Marshal(v)
		if err != nil {
			return nil, "", err
		}
		return bytes.NewReader(raw), "application/json", nil
	}
}
