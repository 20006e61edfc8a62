// ABOUTME: LLM fallback classifier for queries the pattern tiers cannot place
// ABOUTME: Builds a context-aware prompt, parses strict JSON, and never returns an error
package core

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/voicedesk/voicedesk/internal/models"
)

// Completer is the LLM surface the fallback classifier needs.
type Completer interface {
	Complete(ctx context.Context, prompt string, maxTokens int, temperature float32) (string, error)
}

const (
	fallbackMaxTokens   = 300
	fallbackTemperature = 0.1
	fallbackHistory     = 3
)

// FallbackClassifier classifies via the LLM when pattern matching fails.
type FallbackClassifier struct {
	llm Completer
}

// NewFallbackClassifier creates a FallbackClassifier backed by the given LLM.
func NewFallbackClassifier(llm Completer) *FallbackClassifier {
	return &FallbackClassifier{llm: llm}
}

// Classify asks the LLM to categorize the query. It never fails: any call
// error, timeout, or malformed response degrades to an unknown intent with
// zero confidence so the caller can apply its fallback routing.
func (f *FallbackClassifier) Classify(ctx context.Context, query string, conv *models.ConversationContext) models.Intent {
	prompt := f.buildPrompt(query, conv)
	raw, err := f.llm.Complete(ctx, prompt, fallbackMaxTokens, fallbackTemperature)
	if err != nil {
		log.Printf("[FallbackClassifier] LLM call failed: %v", err)
		return models.UnknownIntent(fmt.Sprintf("llm classification failed: %v", err))
	}

	intent, err := parseIntentResponse(raw)
	if err != nil {
		log.Printf("[FallbackClassifier] unparseable LLM response: %v", err)
		return models.UnknownIntent(fmt.Sprintf("unparseable llm response: %v", err))
	}
	return intent
}

func (f *FallbackClassifier) buildPrompt(query string, conv *models.ConversationContext) string {
	var b strings.Builder
	b.WriteString("You classify customer support queries into exactly one intent category.\n\n")
	b.WriteString("Categories:\n")
	b.WriteString("- ticket_query: asking about a support ticket (status, details, assignment, resolution)\n")
	b.WriteString("- knowledge_query: asking a general or how-to question answerable from documentation\n")
	b.WriteString("- mixed_query: asking for both a ticket lookup and a general explanation\n")
	b.WriteString("- greeting: a greeting or pleasantry with no request\n")
	b.WriteString("- escalation: asking for a human, supervisor, or complaint handling\n")
	b.WriteString("- followup: a short continuation of the previous exchange (\"more details\", \"yes\")\n")
	b.WriteString("- unknown: none of the above\n\n")

	if conv != nil {
		turns := conv.RecentTurns(fallbackHistory)
		if len(turns) > 0 {
			b.WriteString("Recent conversation:\n")
			for _, t := range turns {
				fmt.Fprintf(&b, "%s: %s\n", t.Speaker, t.Content)
			}
			b.WriteString("\n")
		}
	}

	fmt.Fprintf(&b, "Query: %s\n\n", query)
	b.WriteString("Respond with ONLY a JSON object, no prose, no code fences:\n")
	b.WriteString(`{"intent_type": "<category>", "confidence": <0.0-1.0>, "entities": {}, "reasoning": "<one sentence>"}`)
	return b.String()
}

// intentResponse mirrors the JSON shape the prompt requests. Entities are
// decoded loosely since models sometimes emit numbers or nulls as values.
type intentResponse struct {
	IntentType string                 `json:"intent_type"`
	Confidence float64                `json:"confidence"`
	Entities   map[string]interface{} `json:"entities"`
	Reasoning  string                 `json:"reasoning"`
}

func parseIntentResponse(raw string) (models.Intent, error) {
	cleaned := stripCodeFences(raw)
	// Models occasionally wrap the object in prose despite instructions.
	// Take the outermost braces.
	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start < 0 || end <= start {
		return models.Intent{}, fmt.Errorf("no JSON object in response")
	}

	var resp intentResponse
	if err := json.Unmarshal([]byte(cleaned[start:end+1]), &resp); err != nil {
		return models.Intent{}, fmt.Errorf("decode intent JSON: %w", err)
	}
	if resp.IntentType == "" {
		return models.Intent{}, fmt.Errorf("missing intent_type")
	}

	entities := make(map[string]string, len(resp.Entities))
	for k, v := range resp.Entities {
		if v == nil {
			continue
		}
		entities[k] = fmt.Sprintf("%v", v)
	}

	confidence := resp.Confidence
	if confidence < 0 {
		confidence = 0
	} else if confidence > 1 {
		confidence = 1
	}

	return models.Intent{
		Category:   models.ParseIntentCategory(resp.IntentType),
		Confidence: confidence,
		Entities:   entities,
		Reasoning:  resp.Reasoning,
	}, nil
}

func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		if idx := strings.Index(s, "\n"); idx >= 0 {
			s = s[idx+1:]
		}
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	}
	return strings.TrimSpace(s)
}
