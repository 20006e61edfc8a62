// ABOUTME: Tests for the LLM fallback classifier using a scripted fake completer
// ABOUTME: Verifies JSON parsing, fence stripping, and degradation to unknown
package core

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/voicedesk/voicedesk/internal/models"
)

type fakeCompleter struct {
	response   string
	err        error
	lastPrompt string
}

func (f *fakeCompleter) Complete(_ context.Context, prompt string, _ int, _ float32) (string, error) {
	f.lastPrompt = prompt
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func TestFallbackClassifyParsesJSON(t *testing.T) {
	fake := &fakeCompleter{response: `{"intent_type": "ticket_query", "confidence": 0.8, "entities": {"ticket_id": "IT-005"}, "reasoning": "asks about a ticket"}`}
	fc := NewFallbackClassifier(fake)

	intent := fc.Classify(context.Background(), "any movement on my open case?", nil)
	if intent.Category != models.IntentTicketQuery {
		t.Errorf("category = %s, want ticket_query", intent.Category)
	}
	if intent.Confidence != 0.8 {
		t.Errorf("confidence = %v, want 0.8", intent.Confidence)
	}
	if intent.Entities["ticket_id"] != "IT-005" {
		t.Errorf("entities = %v, want ticket_id IT-005", intent.Entities)
	}
}

func TestFallbackClassifyStripsCodeFences(t *testing.T) {
	fake := &fakeCompleter{response: "```json\n{\"intent_type\": \"knowledge_query\", \"confidence\": 0.7, \"entities\": {}, \"reasoning\": \"general question\"}\n```"}
	fc := NewFallbackClassifier(fake)

	intent := fc.Classify(context.Background(), "something about probes", nil)
	if intent.Category != models.IntentKnowledgeQuery {
		t.Errorf("category = %s, want knowledge_query", intent.Category)
	}
}

func TestFallbackClassifyDegradesToUnknown(t *testing.T) {
	tests := []struct {
		name     string
		response string
		err      error
	}{
		{"call error", "", errors.New("connection refused")},
		{"not json", "I think this is a ticket question.", nil},
		{"truncated json", `{"intent_type": "ticket_query", "confid`, nil},
		{"missing intent_type", `{"confidence": 0.9}`, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeCompleter{response: tt.response, err: tt.err}
			fc := NewFallbackClassifier(fake)

			intent := fc.Classify(context.Background(), "anything", nil)
			if intent.Category != models.IntentUnknown {
				t.Errorf("category = %s, want unknown", intent.Category)
			}
			if intent.Confidence != 0.0 {
				t.Errorf("confidence = %v, want 0.0", intent.Confidence)
			}
			if intent.Reasoning == "" {
				t.Error("degraded intent should carry a reasoning message")
			}
		})
	}
}

func TestFallbackClassifyClampsConfidence(t *testing.T) {
	fake := &fakeCompleter{response: `{"intent_type": "greeting", "confidence": 1.7, "entities": {}, "reasoning": "x"}`}
	fc := NewFallbackClassifier(fake)

	intent := fc.Classify(context.Background(), "hiya", nil)
	if intent.Confidence != 1.0 {
		t.Errorf("confidence = %v, want clamped to 1.0", intent.Confidence)
	}
}

func TestFallbackClassifyUnrecognizedCategory(t *testing.T) {
	fake := &fakeCompleter{response: `{"intent_type": "pizza_order", "confidence": 0.9, "entities": {}, "reasoning": "x"}`}
	fc := NewFallbackClassifier(fake)

	intent := fc.Classify(context.Background(), "anything", nil)
	if intent.Category != models.IntentUnknown {
		t.Errorf("category = %s, want unknown for unrecognized category", intent.Category)
	}
}

func TestFallbackPromptIncludesHistory(t *testing.T) {
	fake := &fakeCompleter{response: `{"intent_type": "followup", "confidence": 0.8, "entities": {}, "reasoning": "x"}`}
	fc := NewFallbackClassifier(fake)

	conv := models.NewConversationContext()
	conv.AddTurn(models.SpeakerUser, "status of IT-001?")
	conv.AddTurn(models.SpeakerAssistant, "IT-001 is Open.")

	fc.Classify(context.Background(), "and the other one?", conv)
	if !strings.Contains(fake.lastPrompt, "user: status of IT-001?") {
		t.Error("prompt should include recent user turns")
	}
	if !strings.Contains(fake.lastPrompt, "assistant: IT-001 is Open.") {
		t.Error("prompt should include recent assistant turns")
	}
	if !strings.Contains(fake.lastPrompt, "and the other one?") {
		t.Error("prompt should include the query")
	}
}

func TestFallbackStringifiesEntityValues(t *testing.T) {
	fake := &fakeCompleter{response: `{"intent_type": "ticket_query", "confidence": 0.8, "entities": {"count": 3, "nothing": null}, "reasoning": "x"}`}
	fc := NewFallbackClassifier(fake)

	intent := fc.Classify(context.Background(), "anything", nil)
	if intent.Entities["count"] != "3" {
		t.Errorf("count entity = %q, want \"3\"", intent.Entities["count"])
	}
	if _, present := intent.Entities["nothing"]; present {
		t.Error("null entity values should be dropped")
	}
}
