package transcription

import "encoding/json"

// Status is the lifecycle state of a remote transcription job. The values
// are owned by the remote service; these are the ones it documents.
type Status string

const (
	StatusQueued     Status = "queued"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusError      Status = "error"
)

// JobParams holds the parameters for submitting audio for transcription.
// The JSON form is the request body of the remote create call.
type JobParams struct {
	// AudioURL is the publicly reachable URL of the audio to transcribe.
	AudioURL string `json:"audio_url"`
	// SpeakerLabels enables speaker diarization.
	SpeakerLabels bool `json:"speaker_labels"`
	// LanguageCode is the audio language (e.g. "en_us"). Omitted when empty.
	LanguageCode string `json:"language_code,omitempty"`

	Summarization     bool `json:"summarization,omitempty"`
	SentimentAnalysis bool `json:"sentiment_analysis,omitempty"`
	// TopicDetection is sent under the remote API's name for the feature.
	TopicDetection  bool `json:"iab_categories,omitempty"`
	AutoHighlights  bool `json:"auto_highlights,omitempty"`
	EntityDetection bool `json:"entity_detection,omitempty"`

	RedactPII         bool     `json:"redact_pii,omitempty"`
	RedactPIIPolicies []string `json:"redact_pii_policies,omitempty"`
	RedactPIIAudio    bool     `json:"redact_pii_audio,omitempty"`
}

// Job is the acknowledgement of a submitted transcription job. It is
// returned immediately; the job itself completes asynchronously.
type Job struct {
	ID     string `json:"id"`
	Status Status `json:"status"`
}

// Transcript is a job record as currently known to the remote service.
type Transcript struct {
	ID     string `json:"id"`
	Status Status `json:"status"`
	Text   string `json:"text,omitempty"`
	Error  string `json:"error,omitempty"`

	// Raw is the verbatim record returned by the remote service, including
	// every intelligence-feature output. Empty when the provider has none.
	Raw json.RawMessage `json:"-"`
}

// Record returns the JSON form of the transcript: the remote record when
// one is held, otherwise the typed fields.
func (t *Transcript) Record() (json.RawMessage, error) {
	if len(t.Raw) > 0 {
		return t.Raw, nil
	}
	return json.Marshal(t)
}

// RealtimeParams holds the parameters for a real-time session request.
type RealtimeParams struct {
	SampleRate float64  `json:"sample_rate"`
	WordBoost  []string `json:"word_boost,omitempty"`
	Encoding   string   `json:"encoding,omitempty"`
}

// RealtimeSessionNotImplemented marks a placeholder session.
const RealtimeSessionNotImplemented = "not_implemented"

// RealtimeSession is the reply to a real-time session request. Providers
// without streaming support return Status "not_implemented" and no token, so
// callers can never mistake the placeholder for a live session.
type RealtimeSession struct {
	Status  string         `json:"status"`
	Message string         `json:"message"`
	Token   string         `json:"token,omitempty"`
	Params  RealtimeParams `json:"params"`
}

// NotImplementedSession builds the placeholder reply echoing params.
func NotImplementedSession(params RealtimeParams) *RealtimeSession {
	return &RealtimeSession{
		Status:  RealtimeSessionNotImplemented,
		Message: "Real-time transcription is not implemented; no session was created.",
		Params:  params,
	}
}

// IsPlaceholder reports whether the session is the not-implemented stub.
func (s *RealtimeSession) IsPlaceholder() bool {
	return s.Status == RealtimeSessionNotImplemented && s.Token == ""
}
