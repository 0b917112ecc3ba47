package httpclient

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"
	"sync/atomic"
)

// Adapter is a configured HTTP transport context: one *http.Client with
// pooled connections, optional TLS, default headers and a round-trip timeout.
// It is safe for concurrent use.
type Adapter struct {
	httpClient *http.Client
	config     Config
	closed     atomic.Bool
}

// Option customizes an Adapter after it is built.
type Option func(*Adapter)

// WithTransport replaces the underlying round tripper.
func WithTransport(rt http.RoundTripper) Option {
	return func(a *Adapter) { a.httpClient.Transport = rt }
}

// New creates a new HTTP adapter with the given configuration.
func New(cfg Config, opts ...Option) (*Adapter, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()

	if cfg.TLS != nil {
		tlsCfg, err := cfg.TLS.Build()
		if err != nil {
			return nil, err
		}
		if tlsCfg != nil {
			transport.TLSClientConfig = tlsCfg
		}
	}

	a := &Adapter{
		httpClient: &http.Client{
			Transport: transport,
			Timeout:   cfg.Timeout,
		},
		config: cfg,
	}

	for _, opt := range opts {
		opt(a)
	}

	return a, nil
}

// Do executes exactly one HTTP round-trip and returns the complete response.
//
// A non-2xx status yields both the Response and an *Error with
// ErrCodeRequestFailed. Failures below HTTP (DNS, refused connection,
// timeout, cancellation) are returned as the *url.Error produced by
// net/http, unchanged. A body that fails mid-read yields an *Error with
// ErrCodeReadBody wrapping the read error.
func (a *Adapter) Do(ctx context.Context, req Request) (*Response, error) {
	httpReq, err := a.buildRequest(ctx, req)
	if err != nil {
		return nil, err
	}

	resp, err := a.httpClient.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = resp.Body.Close()
		// A request that outlived Close hands its connection back to the
		// pool; drop it instead of keeping it until the idle timeout.
		if a.closed.Load() {
			a.httpClient.CloseIdleConnections()
		}
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, NewReadBodyError(resp.StatusCode, err)
	}

	result := &Response{
		StatusCode: resp.StatusCode,
		Headers:    flattenHeaders(resp.Header),
		Body:       body,
	}

	if !result.IsSuccess() {
		return result, ClassifyStatusCode(resp.StatusCode, body)
	}
	return result, nil
}

// Close releases idle pooled connections. In-flight requests run to
// completion, and their connections are closed when they finish instead of
// returning to the pool.
func (a *Adapter) Close() {
	a.closed.Store(true)
	a.httpClient.CloseIdleConnections()
}

// ResolveURL joins path onto the adapter's BaseURL. Every path, including
// one that looks like an absolute URL, stays under the base. With no BaseURL
// the path is used as is.
func (a *Adapter) ResolveURL(path string) string {
	if a.config.BaseURL == "" {
		return path
	}
	return JoinURL(a.config.BaseURL, path)
}

// JoinURL joins base and path with exactly one slash between them.
func JoinURL(base, path string) string {
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(path, "/")
}

// buildRequest constructs an *http.Request from the adapter config and request.
func (a *Adapter) buildRequest(ctx context.Context, req Request) (*http.Request, error) {
	var body io.Reader
	if req.Body != nil {
		body = bytes.NewReader(req.Body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, a.ResolveURL(req.Path), body)
	if err != nil {
		return nil, NewInvalidRequestError("create request: "+err.Error(), err)
	}

	for k, v := range a.config.Headers {
		httpReq.Header.Set(k, v)
	}

	// Request headers override defaults
	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}

	if httpReq.Header.Get("Accept") == "" {
		httpReq.Header.Set("Accept", "application/json")
	}

	return httpReq, nil
}

// flattenHeaders converts multi-value headers to single-value.
func flattenHeaders(h http.Header) map[string]string {
	result := make(map[string]string, len(h))
	for k, v := range h {
		if len(v) > 0 {
			result[k] = v[0]
		}
	}
	return result
}
