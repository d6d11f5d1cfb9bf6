package tools

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"strings"

	"github.com/kbukum/assemblyai-mcp/errors"
	"github.com/kbukum/assemblyai-mcp/transcription"
)

// handlerFunc binds arguments, makes exactly one provider call and returns
// the text payload. Argument problems come back as invalid-params errors,
// provider failures as tool-execution errors.
type handlerFunc func(ctx context.Context, p transcription.Provider, args map[string]any) (string, error)

var errEmptyResponse = stderrors.New("transcription provider returned no result")

type createJobResult struct {
	TranscriptID string               `json:"transcript_id"`
	Status       transcription.Status `json:"status"`
}

func transcribeAudio(ctx context.Context, p transcription.Provider, args map[string]any) (string, error) {
	var a transcribeAudioArgs
	if err := bindArgs(args, &a); err != nil {
		return "", err
	}

	job, err := p.CreateJob(ctx, a.jobParams())
	if err != nil {
		return "", errors.ToolExecution(ToolTranscribeAudio, err)
	}
	if job == nil {
		return "", errors.ToolExecution(ToolTranscribeAudio, errEmptyResponse)
	}
	return encode(createJobResult{TranscriptID: job.ID, Status: job.Status}, false)
}

func getTranscript(ctx context.Context, p transcription.Provider, args map[string]any) (string, error) {
	var a getTranscriptArgs
	if err := bindArgs(args, &a); err != nil {
		return "", err
	}

	t, err := p.GetJob(ctx, a.TranscriptID)
	if err != nil {
		return "", errors.ToolExecution(ToolGetTranscript, err)
	}
	if t == nil {
		return "", errors.ToolExecution(ToolGetTranscript, errEmptyResponse)
	}

	record, err := t.Record()
	if err != nil {
		return "", errors.ToolExecution(ToolGetTranscript, err)
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, record, "", "  "); err != nil {
		return "", errors.ToolExecution(ToolGetTranscript, err)
	}
	return buf.String(), nil
}

func transcribeRealtime(ctx context.Context, p transcription.Provider, args map[string]any) (string, error) {
	var a transcribeRealtimeArgs
	if err := bindArgs(args, &a); err != nil {
		return "", err
	}

	session, err := p.CreateRealtimeSession(ctx, a.realtimeParams())
	if err != nil {
		return "", errors.ToolExecution(ToolTranscribeRealtime, err)
	}
	if session == nil {
		return "", errors.ToolExecution(ToolTranscribeRealtime, errEmptyResponse)
	}
	return encode(session, false)
}

// encode serializes v without HTML escaping, optionally indented.
func encode(v any, pretty bool) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(v); err != nil {
		return "", errors.Internal(err)
	}
	return strings.TrimRight(buf.String(), "\n"), nil
}
