package observability

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/kbukum/assemblyai-mcp/component"
)

// Telemetry is a lifecycle component owning the tracer and meter providers.
// When the config is disabled it only builds metrics on a no-op meter, so
// callers can record unconditionally.
type Telemetry struct {
	cfg *Config

	mu      sync.RWMutex
	tp      *sdktrace.TracerProvider
	mp      *sdkmetric.MeterProvider
	metrics *Metrics
	started bool
}

var (
	_ component.Component   = (*Telemetry)(nil)
	_ component.Describable = (*Telemetry)(nil)
)

// NewTelemetry creates a telemetry component for the given config.
func NewTelemetry(cfg *Config) *Telemetry {
	return &Telemetry{cfg: cfg}
}

// Name returns the component name.
func (t *Telemetry) Name() string { return "telemetry" }

// Start installs the exporters when enabled and builds the metric instruments.
func (t *Telemetry) Start(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.started {
		return nil
	}

	var meter metric.Meter = noop.NewMeterProvider().Meter(defaultTracerName)
	if t.cfg.Enabled {
		tp, err := InitTracer(ctx, t.cfg.TracerConfig())
		if err != nil {
			return fmt.Errorf("telemetry: %w", err)
		}
		mp, err := InitMeter(ctx, t.cfg.MeterConfig())
		if err != nil {
			_ = tp.Shutdown(ctx)
			return fmt.Errorf("telemetry: %w", err)
		}
		t.tp, t.mp = tp, mp
		meter = Meter(defaultTracerName)
	}

	metrics, err := NewMetrics(meter)
	if err != nil {
		return fmt.Errorf("telemetry: %w", err)
	}
	t.metrics = metrics
	t.started = true
	return nil
}

// Stop flushes and shuts down the providers.
func (t *Telemetry) Stop(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	var errs []error
	if t.tp != nil {
		errs = append(errs, t.tp.Shutdown(ctx))
		t.tp = nil
	}
	if t.mp != nil {
		errs = append(errs, t.mp.Shutdown(ctx))
		t.mp = nil
	}
	t.started = false
	return errors.Join(errs...)
}

// Health reports whether the component has been started.
func (t *Telemetry) Health(_ context.Context) component.Health {
	t.mu.RLock()
	defer t.mu.RUnlock()

	h := component.Health{Name: t.Name(), Status: component.StatusHealthy}
	if !t.started {
		h.Status = component.StatusUnhealthy
		h.Message = "not started"
	} else if !t.cfg.Enabled {
		h.Message = "export disabled"
	}
	return h
}

// Describe returns the startup summary entry.
func (t *Telemetry) Describe() component.Description {
	details := "disabled"
	if t.cfg.Enabled {
		details = fmt.Sprintf("otlp http://%s sample=%.2f", t.cfg.Endpoint, t.cfg.SampleRate)
	}
	return component.Description{Name: "Telemetry", Type: "otel", Details: details}
}

// Metrics returns the tool-call instruments, or nil before Start.
func (t *Telemetry) Metrics() *Metrics {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.metrics
}
