// Package observability wires OpenTelemetry tracing and metrics for tool
// calls and AssemblyAI requests.
//
// Export is off by default. When enabled, spans and metrics go to an OTLP
// HTTP collector; nothing is ever written to stdout.
//
//	telemetry:
//	  enabled: true
//	  endpoint: "localhost:4318"
//	  insecure: true
//
// Typical use goes through the Telemetry component:
//
//	tel := observability.NewTelemetry(&cfg.Telemetry)
//	_ = tel.Start(ctx)
//	defer tel.Stop(ctx)
//
//	oc := observability.NewOperationContext("assemblyai-mcp", "get_transcript", id, tel.Metrics())
//	ctx, span := oc.StartSpanForOperation(ctx, observability.SpanToolCall)
//	defer oc.EndOperation(ctx, span, "ok", nil)
package observability
