// ABOUTME: Session orchestrator: classify, route, dispatch agents, and respond
// ABOUTME: Owns the conversation context and the per-turn escalation decision
package session

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/voicedesk/voicedesk/internal/agents"
	"github.com/voicedesk/voicedesk/internal/core"
	"github.com/voicedesk/voicedesk/internal/models"
)

// IntentFallback is the LLM classification surface the session uses when
// the rule-based classifier has no match.
type IntentFallback interface {
	Classify(ctx context.Context, query string, conv *models.ConversationContext) models.Intent
}

// Reply is the full outcome of one conversation turn.
type Reply struct {
	Text      string
	Intent    models.Intent
	Routing   models.RoutingDecision
	Results   []models.AgentResult
	Escalated bool
}

// Session drives one conversation end to end.
type Session struct {
	classifier *core.FastClassifier
	fallback   IntentFallback
	router     *core.Router
	policy     *core.EscalationPolicy
	humanizer  *agents.Humanizer
	agents     map[models.AgentType]agents.Agent

	Context *models.ConversationContext
}

// New creates a session with a fresh conversation context. The fallback may
// be nil; unmatched queries then classify as unknown.
func New(fallback IntentFallback, policy *core.EscalationPolicy, agentList ...agents.Agent) *Session {
	if policy == nil {
		policy = core.NewEscalationPolicy()
	}

	byType := make(map[models.AgentType]agents.Agent, len(agentList))
	for _, a := range agentList {
		byType[models.AgentType(a.Name())] = a
	}

	return &Session{
		classifier: core.NewFastClassifier(),
		fallback:   fallback,
		router:     core.NewRouter(),
		policy:     policy,
		humanizer:  agents.NewHumanizer(),
		agents:     byType,
		Context:    models.NewConversationContext(),
	}
}

// UseResponseLLM attaches a completion client that polishes knowledge
// answers into direct replies. Optional; templates are used without it.
func (s *Session) UseResponseLLM(llm core.Completer) {
	s.humanizer.WithLLM(llm)
}

// Ask processes one user query and returns the assistant's reply. The turn
// is recorded in the conversation context along with its confidence.
func (s *Session) Ask(ctx context.Context, query string) Reply {
	s.Context.AddTurn(models.SpeakerUser, query)

	intent := s.classify(ctx, query)
	log.Printf("[Session] %s classified as %s (%.2f)", s.Context.SessionID, intent.Category, intent.Confidence)

	// Conversational intents answer from templates or the last snapshot
	// without touching the agents.
	switch intent.Category {
	case models.IntentGreeting:
		return s.finish(Reply{Text: s.humanizer.Greeting(), Intent: intent})
	case models.IntentEscalation:
		return s.finish(Reply{Text: s.humanizer.Escalation(), Intent: intent, Escalated: true})
	case models.IntentFollowup:
		text := s.humanizer.Followup(s.Context.LastResponse, intent.Entities["followup_type"])
		return s.finish(Reply{Text: text, Intent: intent})
	}

	decision := s.router.Route(intent, query)
	results := s.dispatch(ctx, decision)

	reply := Reply{
		Intent:  intent,
		Routing: decision,
		Results: results,
	}

	if s.policy.ShouldEscalate(intent, results, s.Context) {
		reply.Escalated = true
		reply.Text = s.humanizer.Escalation()
	} else {
		reply.Text = s.humanizer.ComposeAnswer(ctx, query, results)
	}

	return s.finish(reply)
}

func (s *Session) classify(ctx context.Context, query string) models.Intent {
	if intent, ok := s.classifier.Classify(query); ok {
		return intent
	}
	if s.fallback == nil {
		return models.UnknownIntent("no pattern match and no fallback classifier")
	}
	return s.fallback.Classify(ctx, query, s.Context)
}

// dispatch runs the routed tasks, concurrently when there is more than one.
// Results keep task order regardless of completion order.
func (s *Session) dispatch(ctx context.Context, decision models.RoutingDecision) []models.AgentResult {
	if decision.Empty() {
		return nil
	}

	results := make([]models.AgentResult, len(decision.Tasks))

	if len(decision.Tasks) == 1 {
		results[0] = s.run(ctx, decision.Tasks[0])
		return results
	}

	var wg sync.WaitGroup
	for i, task := range decision.Tasks {
		wg.Add(1)
		go func(i int, task models.AgentTask) {
			defer wg.Done()
			results[i] = s.run(ctx, task)
		}(i, task)
	}
	wg.Wait()
	return results
}

func (s *Session) run(ctx context.Context, task models.AgentTask) models.AgentResult {
	agent, ok := s.agents[task.Agent]
	if !ok {
		return models.ErrorAgentResult(string(task.Agent), "no agent registered for "+string(task.Agent), 0)
	}
	return agent.Handle(ctx, task, s.Context)
}

// finish records the assistant turn, updates the snapshot, and returns the
// reply.
func (s *Session) finish(reply Reply) Reply {
	confidence := s.overallConfidence(reply)
	s.Context.AddTurnWithConfidence(models.SpeakerAssistant, reply.Text, confidence)

	if len(reply.Results) > 0 && !reply.Escalated {
		query := ""
		if turn, ok := s.Context.LastUserTurn(); ok {
			query = turn.Content
		}
		s.Context.LastResponse = &models.ResponseSnapshot{
			AgentResults:  reply.Results,
			OriginalQuery: query,
			Response:      reply.Text,
			Timestamp:     time.Now(),
		}
		if len(reply.Results) == 1 {
			s.Context.LastAgentUsed = reply.Results[0].AgentName
		}
	}
	return reply
}

// overallConfidence is the mean of the agent confidences, or the intent
// confidence for turns that dispatched no agents.
func (s *Session) overallConfidence(reply Reply) float64 {
	if len(reply.Results) == 0 {
		return reply.Intent.Confidence
	}
	sum := 0.0
	for _, r := range reply.Results {
		sum += r.Confidence
	}
	return sum / float64(len(reply.Results))
}
