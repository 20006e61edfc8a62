// ABOUTME: EscalationPolicy decides when a conversation should hand off to a human
// ABOUTME: Triggers on explicit requests, low combined confidence, and low-confidence streaks
package core

import (
	"strings"

	"github.com/voicedesk/voicedesk/internal/models"
)

// Default policy thresholds.
const (
	DefaultRoutingThreshold = 0.6
	DefaultStreakThreshold  = 0.7
	DefaultStreakWindow     = 3
)

// handoffPhrases in recent user turns signal a desire for a human even when
// the current turn classified as something else.
var handoffPhrases = []string{"human", "person", "escalate", "supervisor", "manager"}

// shortQueryWordLimit marks very short ambiguous queries that deserve a
// clarification prompt instead of a handoff.
const shortQueryWordLimit = 3

// EscalationPolicy evaluates post-routing escalation rules.
type EscalationPolicy struct {
	RoutingThreshold float64
	StreakThreshold  float64
	StreakWindow     int
}

// NewEscalationPolicy creates a policy with the default thresholds.
func NewEscalationPolicy() *EscalationPolicy {
	return &EscalationPolicy{
		RoutingThreshold: DefaultRoutingThreshold,
		StreakThreshold:  DefaultStreakThreshold,
		StreakWindow:     DefaultStreakWindow,
	}
}

// ShouldEscalate decides whether this turn ends in a human handoff.
// Explicit escalation intents always do. Follow-up cues never do; the user
// is continuing the conversation, not giving up on it. Beyond those, a
// handoff phrase in the two most recent turns, a streak of low-confidence
// turns, or low combined confidence on this turn each trigger escalation.
// Very short queries are exempt from the confidence rule so they produce a
// clarification prompt instead.
func (p *EscalationPolicy) ShouldEscalate(intent models.Intent, results []models.AgentResult, ctx *models.ConversationContext) bool {
	if intent.Category == models.IntentEscalation {
		return true
	}
	if intent.Category == models.IntentFollowup {
		return false
	}

	if ctx != nil {
		// A follow-up cue continues the conversation even when the
		// classifier placed it elsewhere ("who was it assigned to" lands
		// in the ticket tier). These turns get a clarification, not a
		// handoff.
		if last, ok := ctx.LastUserTurn(); ok && IsFollowupCue(last.Content) {
			return false
		}

		turns := ctx.RecentTurns(2)
		for _, turn := range turns {
			if turn.Speaker != models.SpeakerUser {
				continue
			}
			lower := strings.ToLower(turn.Content)
			for _, phrase := range handoffPhrases {
				if strings.Contains(lower, phrase) {
					return true
				}
			}
		}
		if ctx.HasLowConfidenceStreak(p.StreakThreshold, p.StreakWindow) {
			return true
		}
	}

	combined := p.combinedConfidence(intent, results)
	if combined < p.RoutingThreshold {
		if ctx != nil {
			if last, ok := ctx.LastUserTurn(); ok && isShortQuery(last.Content) {
				return false
			}
		}
		return true
	}
	for _, r := range results {
		if r.RequiresEscalation {
			return true
		}
	}
	return false
}

// combinedConfidence blends the classifier's confidence with the agents'
// result confidences. With no agent results the intent confidence stands
// alone.
func (p *EscalationPolicy) combinedConfidence(intent models.Intent, results []models.AgentResult) float64 {
	if len(results) == 0 {
		return intent.Confidence
	}
	sum := 0.0
	for _, r := range results {
		sum += r.Confidence
	}
	return (intent.Confidence + sum/float64(len(results))) / 2
}

func isShortQuery(query string) bool {
	return len(strings.Fields(strings.TrimSpace(query))) <= shortQueryWordLimit
}
