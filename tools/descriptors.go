package tools

import (
	"github.com/kbukum/assemblyai-mcp/transcription"
)

// Tool names.
const (
	ToolTranscribeAudio    = "transcribe_audio"
	ToolGetTranscript      = "get_transcript"
	ToolTranscribeRealtime = "transcribe_realtime"
)

// Encodings accepted by transcribe_realtime.
const (
	EncodingPCMS16LE = "pcm_s16le"
	EncodingPCMMulaw = "pcm_mulaw"
	EncodingPCMAlaw  = "pcm_alaw"
)

// Encodings returns the accepted realtime encodings in advertised order.
func Encodings() []string {
	return []string{EncodingPCMS16LE, EncodingPCMMulaw, EncodingPCMAlaw}
}

// Schema is the subset of JSON Schema used to describe tool inputs.
type Schema struct {
	Type        string             `json:"type"`
	Description string             `json:"description,omitempty"`
	Properties  map[string]*Schema `json:"properties,omitempty"`
	Required    []string           `json:"required,omitempty"`
	Items       *Schema            `json:"items,omitempty"`
	Enum        []string           `json:"enum,omitempty"`
	Default     any                `json:"default,omitempty"`
	MinLength   *int               `json:"minLength,omitempty"`
}

// Descriptor is an advertised tool: its name, a human description and the
// JSON Schema of its arguments.
type Descriptor struct {
	Name        string
	Description string
	InputSchema *Schema
	// ReadOnly marks tools that never create remote state.
	ReadOnly bool
}

func nonEmpty() *int {
	n := 1
	return &n
}

func transcribeAudioDescriptor() Descriptor {
	return Descriptor{
		Name:        ToolTranscribeAudio,
		Description: "Submits an audio file (via URL) for transcription and optional analysis.",
		InputSchema: &Schema{
			Type: "object",
			Properties: map[string]*Schema{
				"audio_url": {
					Type:        "string",
					Description: "URL of the audio file to transcribe.",
					MinLength:   nonEmpty(),
				},
				"speaker_labels": {
					Type:        "boolean",
					Description: "Enable speaker diarization.",
					Default:     false,
				},
				"language_code": {
					Type:        "string",
					Description: `Language code of the audio (e.g., "en_us", "es"). See AssemblyAI docs for supported codes.`,
				},
				"enable_audio_intelligence": {
					Type:        "boolean",
					Description: "Enable Audio Intelligence features.",
					Default:     false,
				},
				"intelligence_features": {
					Type:        "array",
					Description: "Specific intelligence features to enable (if enable_audio_intelligence is true).",
					Items: &Schema{
						Type: "string",
						Enum: transcription.Features(),
					},
				},
			},
			Required: []string{"audio_url"},
		},
	}
}

func getTranscriptDescriptor() Descriptor {
	return Descriptor{
		Name:        ToolGetTranscript,
		Description: "Retrieves the status and results of a transcription job.",
		ReadOnly:    true,
		InputSchema: &Schema{
			Type: "object",
			Properties: map[string]*Schema{
				"transcript_id": {
					Type:        "string",
					Description: "The ID of the transcription job.",
					MinLength:   nonEmpty(),
				},
			},
			Required: []string{"transcript_id"},
		},
	}
}

func transcribeRealtimeDescriptor() Descriptor {
	return Descriptor{
		Name:        ToolTranscribeRealtime,
		Description: "Initiates a real-time transcription session (placeholder).",
		InputSchema: &Schema{
			Type: "object",
			Properties: map[string]*Schema{
				"sample_rate": {
					Type:        "number",
					Description: "Sample rate of the audio stream (e.g., 16000).",
				},
				"word_boost": {
					Type:        "array",
					Description: "Keywords to boost recognition accuracy.",
					Items:       &Schema{Type: "string"},
				},
				"encoding": {
					Type:        "string",
					Description: "Audio encoding format.",
					Enum:        Encodings(),
				},
			},
			Required: []string{"sample_rate"},
		},
	}
}
