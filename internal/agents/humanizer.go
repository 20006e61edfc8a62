// ABOUTME: Turns agent results into conversational response text
// ABOUTME: Template fast paths for greetings, escalations, follow-ups, and clarifications
package agents

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/voicedesk/voicedesk/internal/core"
	"github.com/voicedesk/voicedesk/internal/models"
)

// maxListedTickets bounds how many search hits a spoken response names.
const maxListedTickets = 5

// Polish calls stay short; the reply is read out over voice.
const (
	polishMaxTokens   = 120
	polishTemperature = 0.2
)

// Humanizer renders results as text a voice channel can read out. With an
// LLM attached, raw knowledge text is additionally rewritten into a direct
// answer; templates never go through the LLM.
type Humanizer struct {
	llm core.Completer
}

// NewHumanizer creates a Humanizer.
func NewHumanizer() *Humanizer {
	return &Humanizer{}
}

// WithLLM attaches a completion client used to polish knowledge answers.
func (h *Humanizer) WithLLM(llm core.Completer) *Humanizer {
	h.llm = llm
	return h
}

// Greeting is the canned reply for greeting intents.
func (h *Humanizer) Greeting() string {
	return "Hello! I can look up support tickets or answer questions from our knowledge base. What can I help you with?"
}

// Escalation is the canned reply when a turn hands off to a human.
func (h *Humanizer) Escalation() string {
	return "I'm connecting you with a human agent who can help you further. Please hold on."
}

// Clarification asks the user to restate an ambiguous or unanswerable query.
func (h *Humanizer) Clarification() string {
	return "I'm not sure I understood that. Could you tell me a bit more about what you need? For example, a ticket number or the topic you have a question about."
}

// Compose renders the agent results for one turn into a single response.
func (h *Humanizer) Compose(results []models.AgentResult) string {
	var parts []string
	for _, r := range results {
		if text := h.renderResult(r); text != "" {
			parts = append(parts, text)
		}
	}
	if len(parts) == 0 {
		return h.Clarification()
	}
	return strings.Join(parts, "\n\n")
}

// ComposeAnswer renders the results and, when a knowledge chunk is the
// source of the answer, rewrites it with the LLM so the reply addresses the
// query directly. The rendered draft stands on any LLM failure.
func (h *Humanizer) ComposeAnswer(ctx context.Context, query string, results []models.AgentResult) string {
	draft := h.Compose(results)
	if h.llm == nil {
		return draft
	}
	for _, r := range results {
		if r.Kind == models.ResultKnowledge && r.Knowledge != nil && len(r.Knowledge.Chunks) > 0 {
			return h.polish(ctx, query, draft)
		}
	}
	return draft
}

func (h *Humanizer) polish(ctx context.Context, query, draft string) string {
	prompt := fmt.Sprintf(`You are a helpful customer support assistant on a voice call.
Rewrite the reference material below as a short, direct spoken answer to the customer's question.
Keep every fact from the reference material. Do not invent details. Two sentences at most.

Customer question: %s

Reference material:
%s

Answer:`, query, draft)

	out, err := h.llm.Complete(ctx, prompt, polishMaxTokens, polishTemperature)
	if err != nil {
		log.Printf("[Humanizer] polish failed, using draft: %v", err)
		return draft
	}
	out = strings.TrimSpace(out)
	if out == "" {
		return draft
	}
	return out
}

// Followup answers a continuation question from the snapshot of the last
// substantive response. A missing snapshot turns into a clarification.
func (h *Humanizer) Followup(snapshot *models.ResponseSnapshot, followupType string) string {
	if snapshot == nil || len(snapshot.AgentResults) == 0 {
		return h.Clarification()
	}

	switch followupType {
	case "contextual_team":
		if t := snapshotTicket(snapshot); t != nil {
			if t.AssignedTeam == "" {
				return fmt.Sprintf("Ticket %s hasn't been assigned to a team yet.", t.ID)
			}
			return fmt.Sprintf("Ticket %s is assigned to the %s team.", t.ID, t.AssignedTeam)
		}
	case "contextual_time":
		if t := snapshotTicket(snapshot); t != nil {
			if t.ResolutionTime == "" {
				return fmt.Sprintf("Ticket %s doesn't have a recorded resolution time yet.", t.ID)
			}
			return fmt.Sprintf("Ticket %s was resolved in %s.", t.ID, t.ResolutionTime)
		}
	case "more_details":
		if t := snapshotTicket(snapshot); t != nil {
			return h.ticketDetails(t)
		}
	}

	// Default: re-present the previous results in full.
	return h.Compose(snapshot.AgentResults)
}

func (h *Humanizer) renderResult(r models.AgentResult) string {
	switch r.Kind {
	case models.ResultSpecificTicket:
		return h.renderSpecificTicket(r.Ticket)
	case models.ResultSearchSet:
		return h.renderSearchSet(r.Search)
	case models.ResultKnowledge:
		return h.renderKnowledge(r.Knowledge)
	case models.ResultError:
		return "I ran into a problem looking that up. Let me know if you'd like me to try again."
	default:
		return ""
	}
}

func (h *Humanizer) renderSpecificTicket(res *models.SpecificTicketResult) string {
	if res == nil {
		return ""
	}
	if !res.Found {
		return fmt.Sprintf("I couldn't find a ticket with ID %s. Could you double-check the number?", res.TicketID)
	}

	t := res.Ticket
	summary := fmt.Sprintf("Ticket %s: %s. Status: %s. Priority: %s.", t.ID, t.Title, t.Status, t.Priority)
	if t.AssignedTeam != "" {
		summary += fmt.Sprintf(" Assigned to the %s team.", t.AssignedTeam)
	}
	if t.Resolution != "" {
		summary += fmt.Sprintf(" Resolution: %s.", t.Resolution)
	}
	return summary
}

func (h *Humanizer) renderSearchSet(res *models.SearchResultsSet) string {
	if res == nil {
		return ""
	}
	if res.TotalFound == 0 {
		return "I didn't find any tickets matching that. Try different filters, or give me a ticket number."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "I found %d matching ticket", res.TotalFound)
	if res.TotalFound != 1 {
		b.WriteString("s")
	}
	b.WriteString(":")
	for i, m := range res.Matches {
		if i >= maxListedTickets {
			fmt.Fprintf(&b, "\n...and %d more.", res.TotalFound-maxListedTickets)
			break
		}
		fmt.Fprintf(&b, "\n- %s: %s (%s, %s)", m.Ticket.ID, m.Ticket.Title, m.Ticket.Status, m.Ticket.Priority)
	}
	return b.String()
}

func (h *Humanizer) renderKnowledge(res *models.KnowledgeSearchResult) string {
	if res == nil || len(res.Chunks) == 0 {
		return "I couldn't find anything on that in our knowledge base."
	}
	return res.Chunks[0].Content
}

func (h *Humanizer) ticketDetails(t *models.TicketRecord) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Here's the full detail on ticket %s: %s.", t.ID, t.Title)
	if t.Description != "" {
		fmt.Fprintf(&b, " %s.", strings.TrimSuffix(t.Description, "."))
	}
	fmt.Fprintf(&b, " Status: %s. Priority: %s.", t.Status, t.Priority)
	if t.Category != "" {
		fmt.Fprintf(&b, " Category: %s.", t.Category)
	}
	if t.AssignedTeam != "" {
		fmt.Fprintf(&b, " Assigned to the %s team.", t.AssignedTeam)
	}
	if t.Resolution != "" {
		fmt.Fprintf(&b, " Resolution: %s.", t.Resolution)
	}
	if t.ResolutionTime != "" {
		fmt.Fprintf(&b, " Resolved in %s.", t.ResolutionTime)
	}
	return b.String()
}

// snapshotTicket pulls the specific ticket out of the snapshot, if the last
// response was about one.
func snapshotTicket(snapshot *models.ResponseSnapshot) *models.TicketRecord {
	for _, r := range snapshot.AgentResults {
		if r.Kind == models.ResultSpecificTicket && r.Ticket != nil && r.Ticket.Found {
			return r.Ticket.Ticket
		}
	}
	return nil
}
