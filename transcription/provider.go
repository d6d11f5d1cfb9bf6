package transcription

import (
	"context"

	"github.com/kbukum/assemblyai-mcp/provider"
)

// Provider is the interface that transcription backends must implement.
// Every method is a single call with no retry; failures are returned as-is.
type Provider interface {
	provider.Provider // embeds Name() and IsAvailable()

	// CreateJob submits audio for transcription and returns without waiting
	// for the job to finish.
	CreateJob(ctx context.Context, params JobParams) (*Job, error)

	// GetJob fetches the current record of a job. Every call goes to the
	// remote service; nothing is cached.
	GetJob(ctx context.Context, id string) (*Transcript, error)

	// CreateRealtimeSession requests a real-time streaming session.
	CreateRealtimeSession(ctx context.Context, params RealtimeParams) (*RealtimeSession, error)
}
