// ABOUTME: Resolves contextual ticket references ("that ticket", "it") against history
// ABOUTME: Scans recent conversation turns newest-first for a canonical ticket ID
package core

import (
	"regexp"

	"github.com/voicedesk/voicedesk/internal/models"
)

// resolverWindow bounds how far back the resolver looks. Older mentions are
// assumed stale.
const resolverWindow = 10

var contextualCuePatterns = []pattern{
	{regexp.MustCompile(`(?i)\b(?:that|this|the|my)\s+ticket\b`), "demonstrative_ticket"},
	{regexp.MustCompile(`(?i)\bit\b(?:\s|$|[?.!,])`), "pronoun_it"},
	{regexp.MustCompile(`(?i)\b(?:that|this)\s+(?:issue|problem|one)\b`), "demonstrative_issue"},
	{regexp.MustCompile(`(?i)\b(?:the\s+)?same\s+(?:ticket|issue|one)\b`), "same_reference"},
}

var historyTicketIDPattern = regexp.MustCompile(`(?i)\bIT-?\d{1,4}\b`)

// HasContextualReference reports whether the query refers to a ticket
// without naming it, e.g. "who is assigned to that ticket".
func HasContextualReference(query string) bool {
	_, ok := matchPatterns(query, contextualCuePatterns)
	return ok
}

// ResolveContextualTicket finds the most recently mentioned ticket ID in the
// conversation. Both user and assistant turns count, since the assistant's
// answers often carry the ID the user is now referring to. Returns the
// canonical IT-NNN form.
func ResolveContextualTicket(ctx *models.ConversationContext, query string) (string, bool) {
	if ctx == nil {
		return "", false
	}
	turns := ctx.RecentTurns(resolverWindow)
	for i := len(turns) - 1; i >= 0; i-- {
		if raw := historyTicketIDPattern.FindString(turns[i].Content); raw != "" {
			return NormalizeTicketID(raw), true
		}
	}
	return "", false
}
