// ABOUTME: Tests for the session orchestrator with stub agents
// ABOUTME: Covers the full turn flow: classify, route, dispatch, escalate, snapshot
package session

import (
	"context"
	"strings"
	"testing"

	"github.com/voicedesk/voicedesk/internal/models"
)

type stubAgent struct {
	name   string
	result models.AgentResult
	called int
}

func (a *stubAgent) Name() string { return a.name }

func (a *stubAgent) Handle(_ context.Context, _ models.AgentTask, _ *models.ConversationContext) models.AgentResult {
	a.called++
	return a.result
}

type stubFallback struct {
	intent models.Intent
	called int
}

func (f *stubFallback) Classify(_ context.Context, _ string, _ *models.ConversationContext) models.Intent {
	f.called++
	return f.intent
}

func foundTicketResult() models.AgentResult {
	return models.AgentResult{
		AgentName:  "ticket",
		Kind:       models.ResultSpecificTicket,
		Confidence: 0.95,
		Ticket: &models.SpecificTicketResult{
			TicketID: "IT-001",
			Found:    true,
			Ticket: &models.TicketRecord{
				ID: "IT-001", Title: "VPN connection drops", Status: "Open",
				Priority: "High", AssignedTeam: "Engineering", ResolutionTime: "3 hours",
			},
		},
	}
}

func knowledgeResult() models.AgentResult {
	return models.AgentResult{
		AgentName:  "knowledge",
		Kind:       models.ResultKnowledge,
		Confidence: 0.88,
		Knowledge: &models.KnowledgeSearchResult{Chunks: []models.KnowledgeChunk{
			{ID: "kb-1", Content: "A probe is a lightweight monitoring agent.", Relevance: 0.88},
		}},
	}
}

func TestAskGreeting(t *testing.T) {
	s := New(nil, nil)

	reply := s.Ask(context.Background(), "Hello there")
	if reply.Intent.Category != models.IntentGreeting {
		t.Fatalf("intent = %s, want greeting", reply.Intent.Category)
	}
	if reply.Escalated {
		t.Error("greeting must not escalate")
	}
	if len(s.Context.Turns) != 2 {
		t.Errorf("context has %d turns, want user + assistant", len(s.Context.Turns))
	}
}

func TestAskTicketQuery(t *testing.T) {
	ticket := &stubAgent{name: "ticket", result: foundTicketResult()}
	s := New(nil, nil, ticket)

	reply := s.Ask(context.Background(), "What is the status of ticket IT-001?")
	if reply.Intent.Category != models.IntentTicketQuery {
		t.Fatalf("intent = %s, want ticket_query", reply.Intent.Category)
	}
	if ticket.called != 1 {
		t.Errorf("ticket agent called %d times, want 1", ticket.called)
	}
	if !strings.Contains(reply.Text, "IT-001") {
		t.Errorf("reply %q missing ticket ID", reply.Text)
	}
	if reply.Escalated {
		t.Error("confident lookup must not escalate")
	}
	if s.Context.LastResponse == nil {
		t.Fatal("snapshot not recorded")
	}
	if s.Context.LastAgentUsed != "ticket" {
		t.Errorf("LastAgentUsed = %q, want ticket", s.Context.LastAgentUsed)
	}
}

func TestAskMixedDispatchesBoth(t *testing.T) {
	ticket := &stubAgent{name: "ticket", result: foundTicketResult()}
	knowledge := &stubAgent{name: "knowledge", result: knowledgeResult()}
	s := New(nil, nil, ticket, knowledge)

	reply := s.Ask(context.Background(), "Check ticket IT-001 and also explain what a probe is")
	if reply.Intent.Category != models.IntentMixedQuery {
		t.Fatalf("intent = %s, want mixed_query", reply.Intent.Category)
	}
	if ticket.called != 1 || knowledge.called != 1 {
		t.Errorf("agent calls = ticket %d, knowledge %d, want 1 each", ticket.called, knowledge.called)
	}
	// Results keep task order: ticket first, knowledge second.
	if len(reply.Results) != 2 || reply.Results[0].AgentName != "ticket" || reply.Results[1].AgentName != "knowledge" {
		t.Errorf("results out of order: %+v", reply.Results)
	}
	if !strings.Contains(reply.Text, "IT-001") || !strings.Contains(reply.Text, "monitoring agent") {
		t.Errorf("mixed reply %q should include both answers", reply.Text)
	}
}

func TestAskEscalationIntent(t *testing.T) {
	ticket := &stubAgent{name: "ticket", result: foundTicketResult()}
	s := New(nil, nil, ticket)

	reply := s.Ask(context.Background(), "I want to speak to a human")
	if !reply.Escalated {
		t.Error("escalation intent must escalate")
	}
	if ticket.called != 0 {
		t.Error("escalation must not dispatch agents")
	}
}

func TestAskFollowupUsesSnapshot(t *testing.T) {
	ticket := &stubAgent{name: "ticket", result: foundTicketResult()}
	s := New(nil, nil, ticket)

	s.Ask(context.Background(), "What is the status of ticket IT-001?")
	reply := s.Ask(context.Background(), "give me more details")

	if reply.Intent.Category != models.IntentFollowup {
		t.Fatalf("intent = %s, want followup", reply.Intent.Category)
	}
	if ticket.called != 1 {
		t.Errorf("follow-up re-dispatched agents: called %d times, want 1", ticket.called)
	}
	if !strings.Contains(reply.Text, "IT-001") {
		t.Errorf("follow-up reply %q should come from the snapshot", reply.Text)
	}
}

func TestAskFollowupWithoutSnapshotClarifies(t *testing.T) {
	s := New(nil, nil)

	reply := s.Ask(context.Background(), "give me more details")
	if reply.Escalated {
		t.Error("clarification turn must not escalate")
	}
	if !strings.Contains(reply.Text, "Could you tell me") {
		t.Errorf("reply %q should ask for clarification", reply.Text)
	}
}

func TestAskFallsBackToLLM(t *testing.T) {
	fallback := &stubFallback{intent: models.Intent{
		Category:   models.IntentKnowledgeQuery,
		Confidence: 0.75,
		Entities:   map[string]string{},
	}}
	knowledge := &stubAgent{name: "knowledge", result: knowledgeResult()}
	s := New(fallback, nil, knowledge)

	reply := s.Ask(context.Background(), "erm the thingy isn't thinging")
	if fallback.called != 1 {
		t.Errorf("fallback called %d times, want 1", fallback.called)
	}
	if reply.Intent.Category != models.IntentKnowledgeQuery {
		t.Errorf("intent = %s, want knowledge_query from fallback", reply.Intent.Category)
	}
	if knowledge.called != 1 {
		t.Errorf("knowledge agent called %d times, want 1", knowledge.called)
	}
}

func TestAskUnknownRoutesToKnowledgeFallback(t *testing.T) {
	knowledge := &stubAgent{name: "knowledge", result: knowledgeResult()}
	s := New(nil, nil, knowledge)

	reply := s.Ask(context.Background(), "qwerty asdf zxcv uiop hjkl")
	if reply.Intent.Category != models.IntentUnknown {
		t.Fatalf("intent = %s, want unknown", reply.Intent.Category)
	}
	if knowledge.called != 1 {
		t.Errorf("knowledge fallback called %d times, want 1", knowledge.called)
	}
	if len(reply.Routing.Tasks) != 1 || reply.Routing.Tasks[0].Metadata["fallback"] != "true" {
		t.Errorf("routing = %+v, want knowledge fallback task", reply.Routing)
	}
}

func TestAskLowConfidenceEscalates(t *testing.T) {
	weak := models.AgentResult{AgentName: "ticket", Kind: models.ResultSearchSet, Confidence: 0.1,
		Search: &models.SearchResultsSet{}}
	ticket := &stubAgent{name: "ticket", result: weak}
	s := New(nil, nil, ticket)

	reply := s.Ask(context.Background(), "show me the tickets my team filed about the broken thing")
	if !reply.Escalated {
		t.Error("weak results on a long query must escalate")
	}
	if s.Context.LastResponse != nil {
		t.Error("escalated turns must not overwrite the snapshot")
	}
}

func TestConfidenceHistoryRecorded(t *testing.T) {
	ticket := &stubAgent{name: "ticket", result: foundTicketResult()}
	s := New(nil, nil, ticket)

	s.Ask(context.Background(), "What is the status of ticket IT-001?")
	if len(s.Context.ConfidenceScores) != 1 {
		t.Fatalf("ConfidenceScores = %v, want one entry", s.Context.ConfidenceScores)
	}
	if s.Context.ConfidenceScores[0] != 0.95 {
		t.Errorf("recorded confidence = %v, want 0.95", s.Context.ConfidenceScores[0])
	}
}
