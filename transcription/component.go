package transcription

import (
	"context"
	"fmt"
	"sync"

	"github.com/kbukum/assemblyai-mcp/component"
	"github.com/kbukum/assemblyai-mcp/provider"
)

// Component manages the lifecycle of the configured transcription provider.
// Start creates it through the registry; Stop closes it if it holds resources.
type Component struct {
	registry *provider.Registry[Provider]
	name     string
	cfg      map[string]any

	mu       sync.RWMutex
	provider Provider
}

var (
	_ component.Component   = (*Component)(nil)
	_ component.Describable = (*Component)(nil)
)

// NewComponent creates a component that instantiates provider name from reg.
func NewComponent(reg *provider.Registry[Provider], name string, cfg map[string]any) *Component {
	return &Component{registry: reg, name: name, cfg: cfg}
}

// Name returns the component name.
func (c *Component) Name() string { return "transcription" }

// Start instantiates the provider.
func (c *Component) Start(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.provider != nil {
		return nil
	}
	p, err := c.registry.Instantiate(c.name, c.cfg)
	if err != nil {
		return fmt.Errorf("transcription provider %s: %w", c.name, err)
	}
	c.provider = p
	return nil
}

// Stop closes the provider when it implements provider.Closeable.
func (c *Component) Stop(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.provider == nil {
		return nil
	}
	var err error
	if closer, ok := c.provider.(provider.Closeable); ok {
		err = closer.Close(ctx)
	}
	c.provider = nil
	return err
}

// Health reports the provider's availability.
func (c *Component) Health(ctx context.Context) component.Health {
	p := c.Provider()
	h := component.Health{Name: c.Name(), Status: component.StatusHealthy}
	switch {
	case p == nil:
		h.Status = component.StatusUnhealthy
		h.Message = "not started"
	case !p.IsAvailable(ctx):
		h.Status = component.StatusUnhealthy
		h.Message = p.Name() + " unavailable"
	}
	return h
}

// Describe returns the startup summary entry, delegating details to the
// provider when it can describe itself.
func (c *Component) Describe() component.Description {
	desc := component.Description{Name: "Transcription", Type: "transcription", Details: c.name}
	if d, ok := c.Provider().(component.Describable); ok {
		desc.Details = c.name + " " + d.Describe().Details
	}
	return desc
}

// Provider returns the running provider, or nil before Start.
func (c *Component) Provider() Provider {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.provider
}
