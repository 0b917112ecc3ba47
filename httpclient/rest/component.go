package rest

import (
	"context"

	"github.com/kbukum/picoview/component"
)

// Component owns a Client's lifetime inside a component.Registry:
// Start initializes it with the configured base address, Stop closes it.
type Component struct {
	client *Client
	cfg    Config
}

var (
	_ component.Component   = (*Component)(nil)
	_ component.Describable = (*Component)(nil)
)

// NewComponent builds the client eagerly so it can be handed to consumers
// before Start; it stays uninitialized until then.
func NewComponent(cfg Config, opts ...Option) *Component {
	cfg.ApplyDefaults()
	all := append(cfg.Options(), opts...)
	return &Component{client: New(all...), cfg: cfg}
}

// Name returns the component name.
func (c *Component) Name() string { return "rest-client" }

// Start validates the configuration and initializes the client.
func (c *Component) Start(_ context.Context) error {
	if err := c.cfg.Validate(); err != nil {
		return err
	}
	return c.client.Initialize(c.cfg.BaseAddress)
}

// Stop releases the client's connections.
func (c *Component) Stop(_ context.Context) error {
	c.client.Close()
	return nil
}

// Health reports whether the client is initialized. It does not probe the
// backend.
func (c *Component) Health(_ context.Context) component.Health {
	h := component.Health{Name: c.Name(), Status: component.StatusHealthy}
	if !c.client.IsInitialized() {
		h.Status = component.StatusUnhealthy
		h.Message = "not initialized"
	}
	return h
}

// Describe returns the component description for startup logging.
func (c *Component) Describe() component.Description {
	return component.Description{
		Name:    "REST client",
		Type:    "http-client",
		Details: c.cfg.BaseAddress,
	}
}

// Client returns the managed client.
func (c *Component) Client() *Client { return c.client }
