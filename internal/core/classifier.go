// ABOUTME: FastClassifier applies the pattern library to a query in fixed precedence order
// ABOUTME: Zero-latency rule matching; reports no-match so the caller can fall back to the LLM
package core

import (
	"strings"

	"github.com/voicedesk/voicedesk/internal/models"
)

// Rule-based confidence levels. A ticket match with an extracted ID is the
// most specific signal and scores highest.
const (
	greetingConfidence   = 0.95
	escalationConfidence = 0.90
	mixedConfidence      = 0.90
	ticketIDConfidence   = 0.95
	ticketConfidence     = 0.85
	knowledgeConfidence  = 0.85
	followupConfidence   = 0.90
)

// FastClassifier is the rule-based intent matcher. It holds only immutable
// pattern tables and is safe for unlimited concurrent use.
type FastClassifier struct{}

// NewFastClassifier creates a FastClassifier.
func NewFastClassifier() *FastClassifier {
	return &FastClassifier{}
}

// Classify runs the pattern tiers in Precedence order against the query.
// Reports ok=false when no tier matches (including empty input), signaling
// the caller to invoke the LLM fallback classifier.
func (c *FastClassifier) Classify(query string) (models.Intent, bool) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return models.Intent{}, false
	}

	if label, ok := matchPatterns(q, greetingPatterns); ok {
		return models.Intent{
			Category:   models.IntentGreeting,
			Confidence: greetingConfidence,
			Entities:   map[string]string{},
			Reasoning:  "matched greeting pattern: " + label,
		}, true
	}

	if label, ok := matchPatterns(q, escalationPatterns); ok {
		return models.Intent{
			Category:   models.IntentEscalation,
			Confidence: escalationConfidence,
			Entities:   map[string]string{},
			Reasoning:  "matched escalation pattern: " + label,
		}, true
	}

	ticketLabel, ticketMatched, ticketEntities := c.checkTicketPatterns(q)
	_, knowledgeMatched := matchPatterns(q, knowledgePatterns)

	// Mixed queries need an explicit dual-request phrase; plain co-occurrence
	// of ticket and knowledge language is not enough. This check runs before
	// the broader ticket/knowledge tiers so they cannot consume the query.
	if isExplicitMixed(q, ticketMatched, knowledgeMatched) {
		return models.Intent{
			Category:   models.IntentMixedQuery,
			Confidence: mixedConfidence,
			Entities:   ticketEntities,
			Reasoning:  "explicit dual-request indicators present",
		}, true
	}

	if ticketMatched {
		confidence := ticketConfidence
		if _, hasID := ticketEntities["ticket_id"]; hasID {
			confidence = ticketIDConfidence
		}
		return models.Intent{
			Category:   models.IntentTicketQuery,
			Confidence: confidence,
			Entities:   ticketEntities,
			Reasoning:  "matched ticket pattern: " + ticketLabel,
		}, true
	}

	if label, ok := matchPatterns(q, knowledgePatterns); ok {
		return models.Intent{
			Category:   models.IntentKnowledgeQuery,
			Confidence: knowledgeConfidence,
			Entities:   map[string]string{},
			Reasoning:  "matched knowledge pattern: " + label,
		}, true
	}

	// Follow-up patterns run last so that a query carrying both a follow-up
	// cue and concrete ticket/knowledge content resolves above.
	if label, ok := matchPatterns(q, followupPatterns); ok {
		return models.Intent{
			Category:   models.IntentFollowup,
			Confidence: followupConfidence,
			Entities:   map[string]string{"followup_type": label},
			Reasoning:  "matched follow-up pattern: " + label,
		}, true
	}

	return models.Intent{}, false
}

// checkTicketPatterns matches the ticket tier and extracts ID entities.
func (c *FastClassifier) checkTicketPatterns(query string) (string, bool, map[string]string) {
	entities := map[string]string{}
	if id, ok := ExtractTicketID(query); ok {
		entities["ticket_id"] = id
	}
	label, matched := matchPatterns(query, ticketPatterns)
	return label, matched, entities
}

// isExplicitMixed detects the small family of dual-request phrasings that
// ask for a ticket lookup and a background explanation in one turn.
func isExplicitMixed(q string, ticketMatched, knowledgeMatched bool) bool {
	containsAny := func(subs ...string) bool {
		for _, s := range subs {
			if strings.Contains(q, s) {
				return true
			}
		}
		return false
	}

	switch {
	case strings.Contains(q, "can you also") && containsAny("what is", "how to", "explain"):
		return true
	case strings.Contains(q, "and also") && ticketMatched && knowledgeMatched:
		return true
	case strings.Contains(q, "also tell me") && (ticketMatched || knowledgeMatched):
		return true
	case strings.Contains(q, "also explain") && (ticketMatched || knowledgeMatched):
		return true
	case strings.Contains(q, "ticket") && strings.Contains(q, "also") &&
		containsAny("explain", "tell me about", "what is a", "how does"):
		return true
	}
	return false
}

// IsFollowupCue reports whether the query matches a follow-up pattern,
// regardless of what the full classification would be. Used by the
// escalation policy and the knowledge agent to avoid escalating on
// continuation cues.
func IsFollowupCue(query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	_, ok := matchPatterns(q, followupPatterns)
	return ok
}
