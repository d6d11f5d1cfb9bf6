package assemblyai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/kbukum/assemblyai-mcp/component"
	"github.com/kbukum/assemblyai-mcp/httpclient"
	"github.com/kbukum/assemblyai-mcp/logger"
	"github.com/kbukum/assemblyai-mcp/observability"
	"github.com/kbukum/assemblyai-mcp/provider"
	"github.com/kbukum/assemblyai-mcp/transcription"
)

const transcriptPath = "/v2/transcript"

// Operation names used in errors, logs and spans.
const (
	opCreate = "create transcript"
	opGet    = "get transcript"
)

// Provider implements transcription.Provider against the AssemblyAI REST API.
// It holds no per-call state and is safe for concurrent use.
type Provider struct {
	cfg    Config
	client *httpclient.Adapter
	log    *logger.Logger
}

var _ transcription.Provider = (*Provider)(nil)

// NewProvider creates a new AssemblyAI provider. Options are passed to the
// underlying HTTP adapter.
func NewProvider(cfg Config, opts ...httpclient.Option) (*Provider, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	client, err := httpclient.New(cfg.httpConfig(), opts...)
	if err != nil {
		return nil, fmt.Errorf("assemblyai: %w", err)
	}
	return &Provider{
		cfg:    cfg,
		client: client,
		log:    logger.Get(client.Name()),
	}, nil
}

// Factory returns a provider.Factory that creates AssemblyAI providers from
// a generic config map with keys api_key, base_url and timeout.
func Factory(opts ...httpclient.Option) provider.Factory[transcription.Provider] {
	return func(cfg map[string]any) (transcription.Provider, error) {
		ac := Config{}
		if v, ok := cfg["api_key"].(string); ok {
			ac.APIKey = v
		}
		if v, ok := cfg["base_url"].(string); ok {
			ac.BaseURL = v
		}
		switch v := cfg["timeout"].(type) {
		case time.Duration:
			ac.Timeout = v
		case string:
			d, err := time.ParseDuration(v)
			if err != nil {
				return nil, fmt.Errorf("assemblyai: invalid timeout %q: %w", v, err)
			}
			ac.Timeout = d
		}
		return NewProvider(ac, opts...)
	}
}

// Name returns the provider name.
func (p *Provider) Name() string { return ProviderName }

// IsAvailable reports whether a credential is configured and the adapter
// can issue requests. It does not touch the network.
func (p *Provider) IsAvailable(ctx context.Context) bool {
	return p.cfg.APIKey != "" && p.client.IsAvailable(ctx)
}

// Close releases idle connections.
func (p *Provider) Close(ctx context.Context) error {
	return p.client.Close(ctx)
}

type createResponse struct {
	ID     string               `json:"id"`
	Status transcription.Status `json:"status"`
}

// CreateJob submits the audio URL and returns the new job's id and status.
func (p *Provider) CreateJob(ctx context.Context, params transcription.JobParams) (*transcription.Job, error) {
	if params.AudioURL == "" {
		return nil, errors.New("assemblyai: audio_url is required")
	}

	ctx, span := observability.StartChildSpan(ctx, observability.SpanRemoteCreate)
	defer span.End()
	start := time.Now()

	resp, err := httpclient.Post[createResponse](p.client, ctx, transcriptPath, params)
	if err != nil {
		apiErr := newAPIError(opCreate, err)
		observability.SetSpanError(ctx, apiErr)
		p.log.WithContext(ctx).Debug("remote call failed", logger.MergeWithError(logger.DurationFields(opCreate, time.Since(start)), apiErr))
		return nil, apiErr
	}

	job := &transcription.Job{ID: resp.Data.ID, Status: resp.Data.Status}
	observability.SetSpanAttribute(ctx, observability.AttrTranscriptID, job.ID)
	p.log.WithContext(ctx).Debug("transcript created", logger.Fields(
		logger.FieldTranscriptID, job.ID,
		logger.FieldStatus, string(job.Status),
		logger.FieldDuration, time.Since(start).Milliseconds(),
	))
	return job, nil
}

// GetJob fetches the current job record. The remote body is kept verbatim
// in Transcript.Raw.
func (p *Provider) GetJob(ctx context.Context, id string) (*transcription.Transcript, error) {
	if id == "" {
		return nil, errors.New("assemblyai: transcript id is required")
	}

	ctx, span := observability.StartChildSpan(ctx, observability.SpanRemoteGet)
	defer span.End()
	observability.SetSpanAttribute(ctx, observability.AttrTranscriptID, id)
	start := time.Now()

	resp, err := httpclient.Get[json.RawMessage](p.client, ctx, transcriptPath+"/"+url.PathEscape(id))
	if err != nil {
		apiErr := newAPIError(opGet, err)
		observability.SetSpanError(ctx, apiErr)
		p.log.WithContext(ctx).Debug("remote call failed", logger.MergeWithError(logger.DurationFields(opGet, time.Since(start)), apiErr))
		return nil, apiErr
	}
	if len(resp.Data) == 0 {
		return nil, &APIError{Op: opGet, StatusCode: resp.StatusCode, Message: "empty response body"}
	}

	t := &transcription.Transcript{}
	if err := json.Unmarshal(resp.Data, t); err != nil {
		return nil, &APIError{Op: opGet, StatusCode: resp.StatusCode, Message: "malformed transcript record", Err: err}
	}
	t.Raw = resp.Data

	p.log.WithContext(ctx).Debug("transcript fetched", logger.Fields(
		logger.FieldTranscriptID, id,
		logger.FieldStatus, string(t.Status),
		logger.FieldDuration, time.Since(start).Milliseconds(),
	))
	return t, nil
}

// CreateRealtimeSession does not open a session. Streaming is not
// implemented, so it returns the placeholder echoing params without any
// network call.
func (p *Provider) CreateRealtimeSession(_ context.Context, params transcription.RealtimeParams) (*transcription.RealtimeSession, error) {
	return transcription.NotImplementedSession(params), nil
}

// Describe returns the startup summary entry.
func (p *Provider) Describe() component.Description {
	return component.Description{
		Name:    "AssemblyAI",
		Type:    "transcription",
		Details: fmt.Sprintf("%s timeout=%s", p.cfg.BaseURL, p.cfg.timeoutLabel()),
	}
}
