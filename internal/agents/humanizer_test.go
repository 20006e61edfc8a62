// ABOUTME: Tests for response rendering
// ABOUTME: Checks ticket summaries, search listings, knowledge answers, and follow-ups
package agents

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/voicedesk/voicedesk/internal/models"
)

func specificTicketResult(found bool) models.AgentResult {
	res := models.AgentResult{
		AgentName: "ticket",
		Kind:      models.ResultSpecificTicket,
		Ticket:    &models.SpecificTicketResult{TicketID: "IT-001", Found: found},
	}
	if found {
		res.Ticket.Ticket = &models.TicketRecord{
			ID: "IT-001", Title: "VPN connection drops", Description: "VPN disconnects hourly",
			Category: "Network", Priority: "High", Status: "Open",
			AssignedTeam: "Engineering", ResolutionTime: "3 hours",
		}
	}
	return res
}

func TestComposeSpecificTicket(t *testing.T) {
	h := NewHumanizer()

	text := h.Compose([]models.AgentResult{specificTicketResult(true)})
	for _, want := range []string{"IT-001", "VPN connection drops", "Open", "High", "Engineering"} {
		if !strings.Contains(text, want) {
			t.Errorf("response %q missing %q", text, want)
		}
	}
}

func TestComposeTicketNotFound(t *testing.T) {
	h := NewHumanizer()

	text := h.Compose([]models.AgentResult{specificTicketResult(false)})
	if !strings.Contains(text, "IT-001") || !strings.Contains(text, "couldn't find") {
		t.Errorf("response %q should say IT-001 was not found", text)
	}
}

func TestComposeSearchListing(t *testing.T) {
	h := NewHumanizer()

	result := models.AgentResult{
		AgentName: "ticket",
		Kind:      models.ResultSearchSet,
		Search: &models.SearchResultsSet{
			Matches: []models.TicketMatch{
				{Ticket: models.TicketRecord{ID: "IT-003", Title: "Probe offline", Status: "Open", Priority: "Critical"}},
				{Ticket: models.TicketRecord{ID: "IT-001", Title: "VPN connection drops", Status: "Open", Priority: "High"}},
			},
			TotalFound: 2,
		},
	}

	text := h.Compose([]models.AgentResult{result})
	if !strings.Contains(text, "2 matching tickets") {
		t.Errorf("response %q missing count", text)
	}
	if !strings.Contains(text, "IT-003") || !strings.Contains(text, "IT-001") {
		t.Errorf("response %q missing ticket IDs", text)
	}
}

func TestComposeMixedJoinsBoth(t *testing.T) {
	h := NewHumanizer()

	knowledge := models.AgentResult{
		AgentName: "knowledge",
		Kind:      models.ResultKnowledge,
		Knowledge: &models.KnowledgeSearchResult{Chunks: []models.KnowledgeChunk{
			{ID: "kb-1", Content: "A probe is a lightweight monitoring agent.", Relevance: 0.9},
		}},
	}

	text := h.Compose([]models.AgentResult{specificTicketResult(true), knowledge})
	if !strings.Contains(text, "IT-001") || !strings.Contains(text, "monitoring agent") {
		t.Errorf("mixed response %q should include both parts", text)
	}
}

type stubCompleter struct {
	reply string
	err   error
	calls int
}

func (s *stubCompleter) Complete(_ context.Context, _ string, _ int, _ float32) (string, error) {
	s.calls++
	return s.reply, s.err
}

func TestComposeAnswerPolishesKnowledge(t *testing.T) {
	llm := &stubCompleter{reply: "A probe is a small monitoring agent you install on your network."}
	h := NewHumanizer().WithLLM(llm)

	knowledge := models.AgentResult{
		AgentName: "knowledge",
		Kind:      models.ResultKnowledge,
		Knowledge: &models.KnowledgeSearchResult{Chunks: []models.KnowledgeChunk{
			{ID: "kb-1", Content: "A probe is a lightweight monitoring agent.", Relevance: 0.9},
		}},
	}

	text := h.ComposeAnswer(context.Background(), "what is a probe?", []models.AgentResult{knowledge})
	if text != llm.reply {
		t.Errorf("ComposeAnswer = %q, want polished reply", text)
	}
	if llm.calls != 1 {
		t.Errorf("Complete called %d times, want 1", llm.calls)
	}
}

func TestComposeAnswerFallsBackOnLLMError(t *testing.T) {
	llm := &stubCompleter{err: errors.New("api down")}
	h := NewHumanizer().WithLLM(llm)

	knowledge := models.AgentResult{
		AgentName: "knowledge",
		Kind:      models.ResultKnowledge,
		Knowledge: &models.KnowledgeSearchResult{Chunks: []models.KnowledgeChunk{
			{ID: "kb-1", Content: "A probe is a lightweight monitoring agent.", Relevance: 0.9},
		}},
	}

	text := h.ComposeAnswer(context.Background(), "what is a probe?", []models.AgentResult{knowledge})
	if !strings.Contains(text, "monitoring agent") {
		t.Errorf("ComposeAnswer = %q, want the drafted chunk text on LLM failure", text)
	}
}

// Ticket templates never go through the LLM.
func TestComposeAnswerSkipsLLMForTickets(t *testing.T) {
	llm := &stubCompleter{reply: "should not be used"}
	h := NewHumanizer().WithLLM(llm)

	text := h.ComposeAnswer(context.Background(), "status of IT-001", []models.AgentResult{specificTicketResult(true)})
	if !strings.Contains(text, "IT-001") {
		t.Errorf("ComposeAnswer = %q, want template text", text)
	}
	if llm.calls != 0 {
		t.Errorf("Complete called %d times, want 0", llm.calls)
	}
}

func TestComposeAnswerWithoutLLM(t *testing.T) {
	h := NewHumanizer()

	knowledge := models.AgentResult{
		AgentName: "knowledge",
		Kind:      models.ResultKnowledge,
		Knowledge: &models.KnowledgeSearchResult{Chunks: []models.KnowledgeChunk{
			{ID: "kb-1", Content: "Passwords reset from the account settings page.", Relevance: 0.8},
		}},
	}

	text := h.ComposeAnswer(context.Background(), "how do I reset my password?", []models.AgentResult{knowledge})
	if !strings.Contains(text, "account settings") {
		t.Errorf("ComposeAnswer = %q, want raw chunk text without an LLM", text)
	}
}

func TestComposeEmptyClarifies(t *testing.T) {
	h := NewHumanizer()

	if text := h.Compose(nil); text != h.Clarification() {
		t.Errorf("empty compose = %q, want clarification", text)
	}
}

func TestFollowupFromSnapshot(t *testing.T) {
	h := NewHumanizer()
	snapshot := &models.ResponseSnapshot{
		AgentResults:  []models.AgentResult{specificTicketResult(true)},
		OriginalQuery: "status of IT-001?",
		Response:      "Ticket IT-001 is Open.",
	}

	tests := []struct {
		followupType string
		wantContains string
	}{
		{"contextual_team", "Engineering"},
		{"contextual_time", "3 hours"},
		{"more_details", "VPN disconnects hourly"},
	}

	for _, tt := range tests {
		t.Run(tt.followupType, func(t *testing.T) {
			text := h.Followup(snapshot, tt.followupType)
			if !strings.Contains(text, tt.wantContains) {
				t.Errorf("Followup(%s) = %q, missing %q", tt.followupType, text, tt.wantContains)
			}
		})
	}
}

func TestFollowupWithoutSnapshotClarifies(t *testing.T) {
	h := NewHumanizer()

	if text := h.Followup(nil, "more_details"); text != h.Clarification() {
		t.Errorf("Followup(nil) = %q, want clarification", text)
	}
}
