// ABOUTME: Parses natural-language queries into structured ticket search criteria
// ABOUTME: Extracts IDs, category/priority/status/team filters, and fallback keywords
package core

import (
	"regexp"
	"strings"

	"github.com/voicedesk/voicedesk/internal/models"
)

type vocabTerm struct {
	term      string
	canonical string
}

// Vocabulary terms recognized as filters, in match priority order. Values
// are stored in the canonical casing the ticket database uses.
var (
	categoryVocab = []vocabTerm{
		{"probe-setup", "Probe-Setup"},
		{"probe setup", "Probe-Setup"},
		{"credentials", "Credentials"},
		{"hardware", "Hardware"},
		{"software", "Software"},
		{"network", "Network"},
		{"security", "Security"},
		{"account", "Account"},
		{"billing", "Billing"},
	}
	priorityVocab = []vocabTerm{
		{"critical", "Critical"},
		{"urgent", "Urgent"},
		{"high", "High"},
		{"medium", "Medium"},
		{"low", "Low"},
	}
	statusVocab = []vocabTerm{
		{"in progress", "In Progress"},
		{"in-progress", "In Progress"},
		{"resolved", "Resolved"},
		{"pending", "Pending"},
		{"closed", "Closed"},
		{"open", "Open"},
	}
	teamVocab = []vocabTerm{
		{"engineering", "Engineering"},
		{"support", "Support"},
		{"billing", "Billing"},
		{"security", "Security"},
		{"sales", "Sales"},
	}
)

// listingPattern marks queries that want a result set rather than a single
// ticket ("show all open tickets", "find tickets about vpn").
var listingPattern = regexp.MustCompile(`\b(?:all|list|show|find|search|every|any)\b.*\btickets?\b|\btickets\b`)

// keywordStopwords are dropped before keyword extraction. They carry either
// no signal or signal already captured by the structured filters.
var keywordStopwords = map[string]bool{
	"the": true, "a": true, "an": true, "and": true, "or": true, "but": true,
	"in": true, "on": true, "at": true, "to": true, "for": true, "of": true,
	"with": true, "by": true, "about": true, "show": true, "find": true,
	"get": true, "ticket": true, "tickets": true, "all": true, "list": true,
	"search": true, "display": true, "every": true, "any": true,
}

var wordPattern = regexp.MustCompile(`[a-z0-9][a-z0-9_-]*`)

// ParseCriteria converts a ticket query into structured search criteria.
// A resolvable ticket ID (literal or contextual) produces an exact-ID
// lookup; otherwise vocabulary terms become filters and everything left
// over becomes keywords.
func ParseCriteria(query string, ctx *models.ConversationContext) models.SearchCriteria {
	q := strings.ToLower(strings.TrimSpace(query))
	criteria := models.SearchCriteria{}
	if q == "" {
		return criteria
	}

	// Listing phrasing wins over a contextual cue: "show all open tickets"
	// is a search even mid-conversation about a specific ticket.
	listing := listingPattern.MatchString(q) && !HasContextualReference(q)

	if !listing {
		if id, ok := ExtractTicketID(q); ok {
			criteria.TicketID = id
			return criteria
		}
		if HasContextualReference(q) {
			if id, ok := ResolveContextualTicket(ctx, q); ok {
				criteria.TicketID = id
				return criteria
			}
		}
	}

	consumed := map[string]bool{}
	for _, v := range categoryVocab {
		if containsTerm(q, v.term) {
			criteria.Category = v.canonical
			markConsumed(consumed, v.term)
			break
		}
	}
	for _, v := range priorityVocab {
		if containsTerm(q, v.term) {
			criteria.Priority = v.canonical
			markConsumed(consumed, v.term)
			break
		}
	}
	for _, v := range statusVocab {
		if containsTerm(q, v.term) {
			criteria.Status = v.canonical
			markConsumed(consumed, v.term)
			break
		}
	}
	for _, v := range teamVocab {
		if containsTerm(q, v.term) {
			// "billing" and "security" are both categories and teams; only
			// treat them as a team when the query talks about assignment.
			if (v.term == "billing" || v.term == "security") && !strings.Contains(q, "team") && !strings.Contains(q, "assigned") {
				continue
			}
			criteria.AssignedTeam = v.canonical
			markConsumed(consumed, v.term)
			break
		}
	}

	for _, word := range wordPattern.FindAllString(q, -1) {
		if len(word) <= 2 || keywordStopwords[word] || consumed[word] {
			continue
		}
		criteria.Keywords = append(criteria.Keywords, word)
	}
	return criteria
}

// containsTerm matches a vocabulary term on word boundaries so "low" does
// not match inside "slow".
func containsTerm(q, term string) bool {
	idx := 0
	for {
		i := strings.Index(q[idx:], term)
		if i < 0 {
			return false
		}
		start := idx + i
		end := start + len(term)
		beforeOK := start == 0 || !isWordByte(q[start-1])
		afterOK := end == len(q) || !isWordByte(q[end])
		if beforeOK && afterOK {
			return true
		}
		idx = start + 1
	}
}

func isWordByte(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= '0' && b <= '9' || b == '_'
}

// markConsumed records the individual words of a matched vocabulary term so
// keyword extraction does not duplicate them.
func markConsumed(consumed map[string]bool, term string) {
	for _, w := range strings.FieldsFunc(term, func(r rune) bool { return r == ' ' || r == '-' }) {
		consumed[w] = true
	}
}
