// ABOUTME: Conversation state: turns, confidence history, and the last-response snapshot
// ABOUTME: One ConversationContext per session; not safe for concurrent mutation
package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Speaker identifies who produced a conversation turn.
type Speaker string

const (
	SpeakerUser      Speaker = "user"
	SpeakerAssistant Speaker = "assistant"
)

// ConversationTurn is one utterance in a session.
type ConversationTurn struct {
	Content    string    `json:"content"`
	Speaker    Speaker   `json:"speaker"`
	Timestamp  time.Time `json:"timestamp"`
	Confidence float64   `json:"confidence,omitempty"`
}

// ResponseSnapshot preserves the agent results behind the last substantive
// answer, so follow-up questions can be answered without re-dispatching.
type ResponseSnapshot struct {
	AgentResults  []AgentResult `json:"agent_results"`
	OriginalQuery string        `json:"original_query"`
	Response      string        `json:"response"`
	Timestamp     time.Time     `json:"timestamp"`
}

// ConversationContext is the rolling state of one support session.
type ConversationContext struct {
	SessionID        string             `json:"session_id"`
	Turns            []ConversationTurn `json:"turns"`
	LastAgentUsed    string             `json:"last_agent_used,omitempty"`
	ConfidenceScores []float64          `json:"confidence_scores,omitempty"`
	LastResponse     *ResponseSnapshot  `json:"last_response,omitempty"`
}

// NewConversationContext creates a context with a unique session ID.
func NewConversationContext() *ConversationContext {
	return &ConversationContext{
		SessionID: fmt.Sprintf("sess_%d_%s", time.Now().Unix(), uuid.NewString()[:8]),
	}
}

// AddTurn appends an utterance with the current timestamp.
func (c *ConversationContext) AddTurn(speaker Speaker, content string) {
	c.Turns = append(c.Turns, ConversationTurn{
		Content:   content,
		Speaker:   speaker,
		Timestamp: time.Now(),
	})
}

// AddTurnWithConfidence appends an assistant utterance and records its
// confidence in the rolling score history.
func (c *ConversationContext) AddTurnWithConfidence(speaker Speaker, content string, confidence float64) {
	c.Turns = append(c.Turns, ConversationTurn{
		Content:    content,
		Speaker:    speaker,
		Timestamp:  time.Now(),
		Confidence: confidence,
	})
	c.ConfidenceScores = append(c.ConfidenceScores, confidence)
}

// RecentTurns returns up to n most recent turns, oldest first.
func (c *ConversationContext) RecentTurns(n int) []ConversationTurn {
	if n <= 0 || len(c.Turns) == 0 {
		return nil
	}
	if len(c.Turns) <= n {
		return c.Turns
	}
	return c.Turns[len(c.Turns)-n:]
}

// LastUserTurn returns the most recent user utterance.
func (c *ConversationContext) LastUserTurn() (ConversationTurn, bool) {
	for i := len(c.Turns) - 1; i >= 0; i-- {
		if c.Turns[i].Speaker == SpeakerUser {
			return c.Turns[i], true
		}
	}
	return ConversationTurn{}, false
}

// HasLowConfidenceStreak reports whether the last window scores are all
// below threshold. Requires a full window of history.
func (c *ConversationContext) HasLowConfidenceStreak(threshold float64, window int) bool {
	if window <= 0 || len(c.ConfidenceScores) < window {
		return false
	}
	for _, s := range c.ConfidenceScores[len(c.ConfidenceScores)-window:] {
		if s >= threshold {
			return false
		}
	}
	return true
}

// AverageConfidence is the mean of all recorded scores, zero when empty.
func (c *ConversationContext) AverageConfidence() float64 {
	if len(c.ConfidenceScores) == 0 {
		return 0
	}
	sum := 0.0
	for _, s := range c.ConfidenceScores {
		sum += s
	}
	return sum / float64(len(c.ConfidenceScores))
}
