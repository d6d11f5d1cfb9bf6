package tools

import (
	"context"

	"github.com/google/uuid"
	mcpgo "github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/kbukum/assemblyai-mcp/errors"
	"github.com/kbukum/assemblyai-mcp/logger"
	"github.com/kbukum/assemblyai-mcp/observability"
	"github.com/kbukum/assemblyai-mcp/transcription"
)

const (
	statusOK    = "ok"
	statusError = "error"
)

// CallRequest is a single tool invocation.
type CallRequest struct {
	Name      string
	Arguments map[string]any
}

// Dispatcher routes tool calls to their handlers. It holds no per-call
// state, so concurrent calls are independent.
type Dispatcher struct {
	registry    *Registry
	provider    transcription.Provider
	metrics     *observability.Metrics
	log         *logger.Logger
	serviceName string
}

// DispatcherOption configures a Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithMetrics records call counts and latencies on m.
func WithMetrics(m *observability.Metrics) DispatcherOption {
	return func(d *Dispatcher) { d.metrics = m }
}

// WithLogger sets the dispatcher logger.
func WithLogger(l *logger.Logger) DispatcherOption {
	return func(d *Dispatcher) { d.log = l }
}

// WithServiceName sets the service name attached to call spans.
func WithServiceName(name string) DispatcherOption {
	return func(d *Dispatcher) { d.serviceName = name }
}

// NewDispatcher creates a dispatcher over reg backed by p.
func NewDispatcher(reg *Registry, p transcription.Provider, opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{
		registry:    reg,
		provider:    p,
		log:         logger.Get("dispatcher"),
		serviceName: "assemblyai-mcp",
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// ServerTools binds every registered tool to the dispatcher, in registry
// order. Each handler answers with a single text block.
func (d *Dispatcher) ServerTools() []mcpserver.ServerTool {
	tools := d.registry.Tools()
	out := make([]mcpserver.ServerTool, len(tools))
	for i, tool := range tools {
		name := tool.Name
		out[i] = mcpserver.ServerTool{
			Tool: tool,
			Handler: func(ctx context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
				text, err := d.Call(ctx, CallRequest{Name: name, Arguments: req.GetArguments()})
				if err != nil {
					return nil, err
				}
				return mcpgo.NewToolResultText(text), nil
			},
		}
	}
	return out
}

// Call validates req, performs at most one provider call and returns the
// text payload. Unknown names and bad arguments never reach the provider.
func (d *Dispatcher) Call(ctx context.Context, req CallRequest) (string, error) {
	e, ok := d.registry.lookup(req.Name)
	if !ok {
		err := errors.UnknownTool(req.Name)
		d.recordError(ctx, err)
		d.log.Warn("unknown tool requested", logger.Fields(logger.FieldTool, req.Name))
		return "", err
	}

	correlationID := uuid.NewString()
	ctx = logger.ContextWithCorrelationID(ctx, correlationID)

	oc := observability.NewOperationContext(d.serviceName, req.Name, correlationID, d.metrics)
	ctx, span := oc.StartSpanForOperation(ctx, observability.SpanToolCall)
	observability.SetSpanAttribute(ctx, observability.AttrToolName, req.Name)
	if traceID, spanID := observability.TraceIDs(ctx); traceID != "" {
		ctx = logger.ContextWithTrace(ctx, traceID, spanID)
	}
	log := d.log.WithContext(ctx)
	log.Debug("tool call received", logger.Fields(logger.FieldTool, req.Name))

	text, err := d.invoke(ctx, e, req.Arguments)

	status := statusOK
	if err != nil {
		status = statusError
	}
	oc.EndOperation(ctx, span, status, err)

	if err != nil {
		d.recordError(ctx, err)
		log.Warn("tool call failed", logger.MergeWithError(
			logger.Fields(logger.FieldTool, req.Name, logger.FieldDuration, oc.Duration().Milliseconds()), err))
		return "", err
	}
	log.Info("tool call completed", logger.Fields(
		logger.FieldTool, req.Name, logger.FieldDuration, oc.Duration().Milliseconds()))
	return text, nil
}

func (d *Dispatcher) invoke(ctx context.Context, e *entry, args map[string]any) (string, error) {
	if err := e.schema.Validate(args); err != nil {
		return "", err
	}
	return e.handle(ctx, d.provider, args)
}

func (d *Dispatcher) recordError(ctx context.Context, err error) {
	if d.metrics == nil {
		return
	}
	code := errors.ErrCodeInternal
	if appErr, ok := errors.AsAppError(err); ok {
		code = appErr.Code
	}
	d.metrics.RecordError(ctx, string(code), "dispatcher")
}
