// Package transcriptiontest provides an in-memory transcription.Provider
// for tests.
package transcriptiontest

import (
	"context"
	"sync"

	"github.com/kbukum/assemblyai-mcp/transcription"
)

// Fake is a transcription.Provider whose behavior is set per test. Unset
// funcs return canned successes. All methods are safe for concurrent use.
type Fake struct {
	CreateJobFunc             func(ctx context.Context, params transcription.JobParams) (*transcription.Job, error)
	GetJobFunc                func(ctx context.Context, id string) (*transcription.Transcript, error)
	CreateRealtimeSessionFunc func(ctx context.Context, params transcription.RealtimeParams) (*transcription.RealtimeSession, error)

	mu            sync.Mutex
	createCalls   int
	getCalls      int
	realtimeCalls int
	lastJobParams *transcription.JobParams
	lastRealtime  *transcription.RealtimeParams
	requestedIDs  []string
}

var _ transcription.Provider = (*Fake)(nil)

// Name returns "fake".
func (f *Fake) Name() string { return "fake" }

// IsAvailable always returns true.
func (f *Fake) IsAvailable(context.Context) bool { return true }

// CreateJob records params and delegates to CreateJobFunc.
func (f *Fake) CreateJob(ctx context.Context, params transcription.JobParams) (*transcription.Job, error) {
	f.mu.Lock()
	f.createCalls++
	p := params
	f.lastJobParams = &p
	f.mu.Unlock()

	if f.CreateJobFunc != nil {
		return f.CreateJobFunc(ctx, params)
	}
	return &transcription.Job{ID: "fake-job", Status: transcription.StatusQueued}, nil
}

// GetJob records id and delegates to GetJobFunc.
func (f *Fake) GetJob(ctx context.Context, id string) (*transcription.Transcript, error) {
	f.mu.Lock()
	f.getCalls++
	f.requestedIDs = append(f.requestedIDs, id)
	f.mu.Unlock()

	if f.GetJobFunc != nil {
		return f.GetJobFunc(ctx, id)
	}
	return &transcription.Transcript{ID: id, Status: transcription.StatusCompleted}, nil
}

// CreateRealtimeSession records params and delegates to CreateRealtimeSessionFunc.
func (f *Fake) CreateRealtimeSession(ctx context.Context, params transcription.RealtimeParams) (*transcription.RealtimeSession, error) {
	f.mu.Lock()
	f.realtimeCalls++
	p := params
	f.lastRealtime = &p
	f.mu.Unlock()

	if f.CreateRealtimeSessionFunc != nil {
		return f.CreateRealtimeSessionFunc(ctx, params)
	}
	return transcription.NotImplementedSession(params), nil
}

// Calls returns the total number of adapter calls of any kind.
func (f *Fake) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.createCalls + f.getCalls + f.realtimeCalls
}

// CreateCalls returns the number of CreateJob calls.
func (f *Fake) CreateCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.createCalls
}

// GetCalls returns the number of GetJob calls.
func (f *Fake) GetCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.getCalls
}

// RealtimeCalls returns the number of CreateRealtimeSession calls.
func (f *Fake) RealtimeCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.realtimeCalls
}

// LastJobParams returns the params of the most recent CreateJob call.
func (f *Fake) LastJobParams() (transcription.JobParams, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.lastJobParams == nil {
		return transcription.JobParams{}, false
	}
	return *f.lastJobParams, true
}

// LastRealtimeParams returns the params of the most recent realtime call.
func (f *Fake) LastRealtimeParams() (transcription.RealtimeParams, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.lastRealtime == nil {
		return transcription.RealtimeParams{}, false
	}
	return *f.lastRealtime, true
}

// RequestedIDs returns the ids passed to GetJob, in call order.
func (f *Fake) RequestedIDs() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.requestedIDs...)
}
