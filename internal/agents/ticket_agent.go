// ABOUTME: Ticket agent: resolves ticket queries against the ticket store
// ABOUTME: Exact-ID lookups when possible, criteria search otherwise
package agents

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/voicedesk/voicedesk/internal/core"
	"github.com/voicedesk/voicedesk/internal/models"
	"github.com/voicedesk/voicedesk/internal/storage"
)

// Lookup confidence levels. An exact-ID hit is near certain; a miss still
// answered the question ("that ticket does not exist") but with very low
// confidence so the escalation policy can weigh it.
const (
	foundConfidence    = 0.95
	notFoundConfidence = 0.1

	// Structured filter matches carry this per-match score in the
	// confidence blend, standing in for a semantic similarity.
	structuredMatchScore = 0.85
	maxSearchConfidence  = 0.95
)

// TicketAgent serves ticket lookups and searches.
type TicketAgent struct {
	store *storage.Storage
}

// NewTicketAgent creates a TicketAgent over the given storage.
func NewTicketAgent(store *storage.Storage) *TicketAgent {
	return &TicketAgent{store: store}
}

// Name implements Agent.
func (a *TicketAgent) Name() string {
	return string(models.AgentTicket)
}

// Handle resolves the query to either a specific-ticket lookup or a
// criteria search.
func (a *TicketAgent) Handle(ctx context.Context, task models.AgentTask, conv *models.ConversationContext) models.AgentResult {
	start := time.Now()

	if err := ctx.Err(); err != nil {
		return models.ErrorAgentResult(a.Name(), fmt.Sprintf("ticket agent canceled: %v", err), time.Since(start))
	}

	criteria := core.ParseCriteria(task.Query, conv)

	if criteria.TicketID != "" {
		return a.lookup(criteria.TicketID, start)
	}
	return a.search(criteria, start)
}

func (a *TicketAgent) lookup(id string, start time.Time) models.AgentResult {
	ticket, err := a.store.Tickets.GetByID(id)
	if err != nil {
		log.Printf("[TicketAgent] lookup %s failed: %v", id, err)
		return models.ErrorAgentResult(a.Name(), fmt.Sprintf("ticket lookup failed: %v", err), time.Since(start))
	}

	result := models.AgentResult{
		AgentName:      a.Name(),
		Kind:           models.ResultSpecificTicket,
		Ticket:         &models.SpecificTicketResult{TicketID: id, Found: ticket != nil, Ticket: ticket},
		ProcessingTime: time.Since(start),
	}
	if ticket != nil {
		result.Confidence = foundConfidence
	} else {
		result.Confidence = notFoundConfidence
	}
	return result
}

func (a *TicketAgent) search(criteria models.SearchCriteria, start time.Time) models.AgentResult {
	tickets, err := a.store.Tickets.Search(criteria)
	if err != nil {
		log.Printf("[TicketAgent] search failed: %v", err)
		return models.ErrorAgentResult(a.Name(), fmt.Sprintf("ticket search failed: %v", err), time.Since(start))
	}

	matches := make([]models.TicketMatch, len(tickets))
	for i, t := range tickets {
		matches[i] = models.TicketMatch{Ticket: t, Source: "structured"}
	}

	return models.AgentResult{
		AgentName: a.Name(),
		Kind:      models.ResultSearchSet,
		Search: &models.SearchResultsSet{
			Matches:    matches,
			TotalFound: len(matches),
			Criteria:   criteria,
		},
		Confidence:     searchConfidence(matches),
		ProcessingTime: time.Since(start),
	}
}

// searchConfidence blends match quality with result count: 70% average
// match score, 30% how close the count comes to three results.
func searchConfidence(matches []models.TicketMatch) float64 {
	if len(matches) == 0 {
		return notFoundConfidence
	}

	sum := 0.0
	for _, m := range matches {
		score := m.SemanticScore
		if score == 0 {
			score = structuredMatchScore
		}
		sum += score
	}
	avg := sum / float64(len(matches))

	countFactor := float64(len(matches)) / 3.0
	if countFactor > 1 {
		countFactor = 1
	}

	confidence := 0.7*avg + 0.3*countFactor
	if confidence > maxSearchConfidence {
		confidence = maxSearchConfidence
	}
	return confidence
}
