package tools

import (
	"github.com/go-viper/mapstructure/v2"

	"github.com/kbukum/assemblyai-mcp/errors"
	"github.com/kbukum/assemblyai-mcp/transcription"
	"github.com/kbukum/assemblyai-mcp/validation"
)

type transcribeAudioArgs struct {
	AudioURL                string   `json:"audio_url" validate:"required"`
	SpeakerLabels           bool     `json:"speaker_labels"`
	LanguageCode            string   `json:"language_code"`
	EnableAudioIntelligence bool     `json:"enable_audio_intelligence"`
	IntelligenceFeatures    []string `json:"intelligence_features" validate:"dive,oneof=summarization sentiment_analysis topic_detection auto_highlights entity_detection pii_redaction"`
}

// jobParams maps the arguments onto a create-job request. Features only
// apply when audio intelligence is enabled.
func (a *transcribeAudioArgs) jobParams() transcription.JobParams {
	p := transcription.JobParams{
		AudioURL:      a.AudioURL,
		SpeakerLabels: a.SpeakerLabels,
		LanguageCode:  a.LanguageCode,
	}
	if a.EnableAudioIntelligence {
		transcription.ApplyFeatures(&p, a.IntelligenceFeatures)
	}
	return p
}

type getTranscriptArgs struct {
	TranscriptID string `json:"transcript_id" validate:"required"`
}

type transcribeRealtimeArgs struct {
	SampleRate float64  `json:"sample_rate" validate:"gt=0"`
	WordBoost  []string `json:"word_boost"`
	Encoding   string   `json:"encoding" validate:"omitempty,oneof=pcm_s16le pcm_mulaw pcm_alaw"`
}

func (a *transcribeRealtimeArgs) realtimeParams() transcription.RealtimeParams {
	return transcription.RealtimeParams{
		SampleRate: a.SampleRate,
		WordBoost:  a.WordBoost,
		Encoding:   a.Encoding,
	}
}

// bindArgs decodes the argument object into out and checks its struct tags.
func bindArgs(args map[string]any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName: "json",
		Result:  out,
	})
	if err != nil {
		return errors.Internal(err)
	}
	if err := dec.Decode(args); err != nil {
		return errors.InvalidParams("Invalid arguments: " + err.Error())
	}
	return validation.Validate(out)
}
