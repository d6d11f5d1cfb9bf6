// Package tools defines the tools the bridge advertises and dispatches
// calls to them.
//
// The set is fixed: transcribe_audio submits a job, get_transcript fetches
// the current state of one, and transcribe_realtime returns a placeholder.
// Each call is validated twice, first against the advertised JSON Schema
// and then against the typed argument struct, before a single
// transcription.Provider call is made. Results are returned as JSON text.
//
//	reg, err := tools.NewRegistry()
//	d := tools.NewDispatcher(reg, provider, tools.WithMetrics(m))
//	text, err := d.Call(ctx, tools.CallRequest{Name: "get_transcript", Arguments: args})
package tools
