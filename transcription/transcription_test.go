package transcription

import (
	"encoding/json"
	"testing"
)

func TestApplyFeatures(t *testing.T) {
	tests := []struct {
		name     string
		features []string
		check    func(t *testing.T, p JobParams)
	}{
		{"none", nil, func(t *testing.T, p JobParams) {
			if p.Summarization || p.SentimentAnalysis || p.TopicDetection || p.AutoHighlights ||
				p.EntityDetection || p.RedactPII || p.RedactPIIAudio || p.RedactPIIPolicies != nil {
				t.Errorf("expected untouched params, got %+v", p)
			}
		}},
		{"summarization", []string{FeatureSummarization}, func(t *testing.T, p JobParams) {
			if !p.Summarization {
				t.Error("expected summarization enabled")
			}
		}},
		{"several", []string{FeatureSentimentAnalysis, FeatureTopicDetection, FeatureAutoHighlights, FeatureEntityDetection}, func(t *testing.T, p JobParams) {
			if !p.SentimentAnalysis || !p.TopicDetection || !p.AutoHighlights || !p.EntityDetection {
				t.Errorf("expected all four flags, got %+v", p)
			}
			if p.Summarization || p.RedactPII {
				t.Errorf("unexpected flags enabled: %+v", p)
			}
		}},
		{"pii redaction", []string{FeaturePIIRedaction}, func(t *testing.T, p JobParams) {
			if !p.RedactPII || !p.RedactPIIAudio {
				t.Errorf("expected redaction and audio redaction, got %+v", p)
			}
			if len(p.RedactPIIPolicies) != 3 || p.RedactPIIPolicies[0] != "person_name" {
				t.Errorf("unexpected default policies %v", p.RedactPIIPolicies)
			}
		}},
		{"unknown ignored", []string{"translation"}, func(t *testing.T, p JobParams) {
			if p.Summarization || p.RedactPII || p.TopicDetection {
				t.Errorf("unknown feature changed params: %+v", p)
			}
		}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := JobParams{AudioURL: "https://x/a.mp3"}
			ApplyFeatures(&p, tc.features)
			tc.check(t, p)
		})
	}
}

func TestApplyFeaturesCopiesDefaultPolicies(t *testing.T) {
	var p JobParams
	ApplyFeatures(&p, []string{FeaturePIIRedaction})
	p.RedactPIIPolicies[0] = "mutated"
	if DefaultPIIPolicies()[0] != "person_name" {
		t.Error("mutating params must not change the defaults")
	}
}

func TestFeatureListsAreCopies(t *testing.T) {
	list := Features()
	if len(list) != 6 || list[0] != FeatureSummarization || list[5] != FeaturePIIRedaction {
		t.Fatalf("unexpected feature order %v", list)
	}
	list[0] = "translation"
	if Features()[0] != FeatureSummarization {
		t.Error("mutating the returned list must not change the features")
	}

	policies := DefaultPIIPolicies()
	policies[1] = "mutated"
	if DefaultPIIPolicies()[1] != "email_address" {
		t.Error("mutating the returned policies must not change the defaults")
	}
}

func TestJobParamsJSON(t *testing.T) {
	data, err := json.Marshal(JobParams{AudioURL: "https://x/a.mp3"})
	if err != nil {
		t.Fatal(err)
	}
	var body map[string]any
	_ = json.Unmarshal(data, &body)

	if body["speaker_labels"] != false {
		t.Errorf("speaker_labels must always be sent, got %v", body)
	}
	if _, ok := body["language_code"]; ok {
		t.Errorf("language_code must be omitted when empty, got %v", body)
	}
	if len(body) != 2 {
		t.Errorf("expected only audio_url and speaker_labels, got %v", body)
	}

	p := JobParams{AudioURL: "u"}
	ApplyFeatures(&p, []string{FeatureTopicDetection})
	data, _ = json.Marshal(p)
	body = nil
	_ = json.Unmarshal(data, &body)
	if body["iab_categories"] != true {
		t.Errorf("topic detection should be sent as iab_categories, got %v", body)
	}
}

func TestTranscriptRecord(t *testing.T) {
	raw := json.RawMessage(`{"id":"abc","status":"completed","summary":"hi"}`)
	tr := &Transcript{ID: "abc", Status: StatusCompleted, Raw: raw}
	got, err := tr.Record()
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != string(raw) {
		t.Errorf("expected raw record, got %s", got)
	}

	typed := &Transcript{ID: "abc", Status: StatusQueued}
	got, err = typed.Record()
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != `{"id":"abc","status":"queued"}` {
		t.Errorf("unexpected typed record %s", got)
	}
}

func TestNotImplementedSession(t *testing.T) {
	params := RealtimeParams{SampleRate: 16000, WordBoost: []string{"AssemblyAI"}, Encoding: "pcm_s16le"}
	s := NotImplementedSession(params)
	if !s.IsPlaceholder() {
		t.Error("expected placeholder session")
	}
	if s.Params.SampleRate != 16000 || s.Params.Encoding != "pcm_s16le" {
		t.Errorf("expected params echoed, got %+v", s.Params)
	}

	live := &RealtimeSession{Status: "ready", Token: "tok"}
	if live.IsPlaceholder() {
		t.Error("a session with a token is not a placeholder")
	}
}
