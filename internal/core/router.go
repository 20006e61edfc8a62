// ABOUTME: Maps classified intents to the agent tasks that should handle them
// ABOUTME: Mixed queries fan out to both agents; conversational intents route to none
package core

import (
	"github.com/voicedesk/voicedesk/internal/models"
)

// Router turns an intent into a routing decision. Stateless.
type Router struct{}

// NewRouter creates a Router.
func NewRouter() *Router {
	return &Router{}
}

// Route maps an intent category to agent tasks. Conversational categories
// (greeting, escalation, follow-up) return an empty decision; the session
// layer answers those directly. Unknown intents get a low-priority knowledge
// fallback so the user still receives a best-effort answer.
func (r *Router) Route(intent models.Intent, query string) models.RoutingDecision {
	switch intent.Category {
	case models.IntentTicketQuery:
		return models.RoutingDecision{Tasks: []models.AgentTask{
			{Agent: models.AgentTicket, Query: query, Priority: 1},
		}}
	case models.IntentKnowledgeQuery:
		return models.RoutingDecision{Tasks: []models.AgentTask{
			{Agent: models.AgentKnowledge, Query: query, Priority: 1},
		}}
	case models.IntentMixedQuery:
		meta := map[string]string{"mixed": "true"}
		return models.RoutingDecision{Tasks: []models.AgentTask{
			{Agent: models.AgentTicket, Query: query, Priority: 1, Metadata: meta},
			{Agent: models.AgentKnowledge, Query: query, Priority: 1, Metadata: meta},
		}}
	case models.IntentGreeting, models.IntentEscalation, models.IntentFollowup:
		return models.RoutingDecision{}
	default:
		return models.RoutingDecision{Tasks: []models.AgentTask{
			{Agent: models.AgentKnowledge, Query: query, Priority: 2, Metadata: map[string]string{"fallback": "true"}},
		}}
	}
}
