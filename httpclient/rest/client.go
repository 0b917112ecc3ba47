package rest

import (
	"fmt"
	"net/url"
	"sync/atomic"
	"time"

	"github.com/kbukum/picoview/httpclient"
	"github.com/kbukum/picoview/logger"
	"github.com/kbukum/picoview/observability"
	"github.com/kbukum/picoview/version"
)

// APIPrefix is the fixed path segment between the base address and every endpoint.
const APIPrefix = "api"

const loggerName = "rest"

// Client is the typed REST client for the pico backend.
//
// A Client starts uninitialized; every operation fails with ErrNotInitialized
// until Initialize succeeds. Initialize and SetBaseAddress may be called at
// any time, including concurrently with in-flight operations: each operation
// snapshots the transport once and finishes against it.
type Client struct {
	state atomic.Pointer[transport]

	log       *logger.Logger
	metrics   *observability.Metrics
	timeout   time.Duration
	headers   map[string]string
	tls       *httpclient.TLSConfig
	httpOpts  []httpclient.Option
	userAgent string
}

// transport is one immutable initialized state.
type transport struct {
	baseAddress string
	adapter     *httpclient.Adapter
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger used for round-trip logging. Without it the
// client uses logger.Get("rest").
func WithLogger(l *logger.Logger) Option {
	return func(c *Client) { c.log = l }
}

// WithMetrics records round-trip metrics on m.
func WithMetrics(m *observability.Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

// WithTimeout bounds each round-trip. Defaults to 30s.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// WithHeaders adds default headers to every request.
func WithHeaders(headers map[string]string) Option {
	return func(c *Client) {
		for k, v := range headers {
			c.headers[k] = v
		}
	}
}

// WithTLS configures TLS for https base addresses.
func WithTLS(cfg *httpclient.TLSConfig) Option {
	return func(c *Client) { c.tls = cfg }
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// WithHTTPOptions passes options through to every adapter the client builds.
func WithHTTPOptions(opts ...httpclient.Option) Option {
	return func(c *Client) { c.httpOpts = append(c.httpOpts, opts...) }
}

// New creates an uninitialized client.
func New(opts ...Option) *Client {
	c := &Client{
		headers:   make(map[string]string),
		userAgent: version.UserAgent(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.log == nil {
		c.log = logger.Get(loggerName)
	} else {
		c.log = c.log.WithComponent(loggerName)
	}
	return c
}

// Initialize builds a fresh transport context for baseAddress and makes it
// current. A previous context is replaced and closed: its idle connections
// are dropped at once, and requests already using it run to completion and
// drop their connections when they finish, so repeated re-targeting does
// not accumulate pooled sockets.
//
// baseAddress must be an absolute http or https URL. On error the client
// keeps its previous state.
func (c *Client) Initialize(baseAddress string) error {
	if err := validateBaseAddress(baseAddress); err != nil {
		return err
	}

	headers := make(map[string]string, len(c.headers)+1)
	for k, v := range c.headers {
		headers[k] = v
	}
	if _, ok := headers["User-Agent"]; !ok && c.userAgent != "" {
		headers["User-Agent"] = c.userAgent
	}

	adapter, err := httpclient.New(httpclient.Config{
		BaseURL: httpclient.JoinURL(baseAddress, APIPrefix),
		Timeout: c.timeout,
		TLS:     c.tls,
		Headers: headers,
	}, c.httpOpts...)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidBaseAddress, err)
	}

	prev := c.state.Swap(&transport{baseAddress: baseAddress, adapter: adapter})
	if prev != nil {
		prev.adapter.Close()
	}

	c.log.Debug("rest client initialized", logger.Fields(
		"base_address", baseAddress,
		"reinitialized", prev != nil,
	))
	return nil
}

// SetBaseAddress retargets the client. It is Initialize under another name.
func (c *Client) SetBaseAddress(baseAddress string) error {
	return c.Initialize(baseAddress)
}

// BaseAddress returns the current base address, or "" before Initialize.
func (c *Client) BaseAddress() string {
	if t := c.state.Load(); t != nil {
		return t.baseAddress
	}
	return ""
}

// IsInitialized reports whether Initialize has succeeded.
func (c *Client) IsInitialized() bool {
	return c.state.Load() != nil
}

// Close releases idle connections and returns the client to the
// uninitialized state.
func (c *Client) Close() {
	if prev := c.state.Swap(nil); prev != nil {
		prev.adapter.Close()
	}
}

func validateBaseAddress(baseAddress string) error {
	u, err := url.Parse(baseAddress)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidBaseAddress, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: %q is not an absolute http(s) URL", ErrInvalidBaseAddress, baseAddress)
	}
	return nil
}
