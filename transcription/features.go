package transcription

// Intelligence feature names accepted by ApplyFeatures.
const (
	FeatureSummarization     = "summarization"
	FeatureSentimentAnalysis = "sentiment_analysis"
	FeatureTopicDetection    = "topic_detection"
	FeatureAutoHighlights    = "auto_highlights"
	FeatureEntityDetection   = "entity_detection"
	FeaturePIIRedaction      = "pii_redaction"
)

var features = []string{
	FeatureSummarization,
	FeatureSentimentAnalysis,
	FeatureTopicDetection,
	FeatureAutoHighlights,
	FeatureEntityDetection,
	FeaturePIIRedaction,
}

var defaultPIIPolicies = []string{"person_name", "email_address", "phone_number"}

// Features returns every intelligence feature in advertised order.
func Features() []string {
	return append([]string(nil), features...)
}

// DefaultPIIPolicies returns the fixed redaction policy applied with
// pii_redaction.
func DefaultPIIPolicies() []string {
	return append([]string(nil), defaultPIIPolicies...)
}

// ApplyFeatures enables the named intelligence features on params.
// pii_redaction also sets the default policy list and audio redaction.
// Unknown names are ignored.
func ApplyFeatures(params *JobParams, features []string) {
	for _, f := range features {
		switch f {
		case FeatureSummarization:
			params.Summarization = true
		case FeatureSentimentAnalysis:
			params.SentimentAnalysis = true
		case FeatureTopicDetection:
			params.TopicDetection = true
		case FeatureAutoHighlights:
			params.AutoHighlights = true
		case FeatureEntityDetection:
			params.EntityDetection = true
		case FeaturePIIRedaction:
			params.RedactPII = true
			params.RedactPIIPolicies = DefaultPIIPolicies()
			params.RedactPIIAudio = true
		}
	}
}
