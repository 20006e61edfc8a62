// ABOUTME: Ticket-ID extraction and canonical normalization to IT-NNN form
// ABOUTME: Shared by the fast classifier and the criteria parser; keep one copy
package core

import (
	"regexp"
	"strings"
)

// ticketIDPrefix is the canonical ticket prefix for this helpdesk.
const ticketIDPrefix = "IT"

// "IT 001" and "IT-001" forms take priority over generic patterns.
var itIDPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\bit\s+(\d+)\b`),
	regexp.MustCompile(`\bit-(\d+)\b`),
}

var genericIDPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b(?:ticket|id)\s*(?:id\s*)?(?:#\s*)?([a-z0-9][a-z0-9_-]*)`),
	regexp.MustCompile(`#(\d+)`),
	regexp.MustCompile(`\b(\d{3,})\b`),
	regexp.MustCompile(`\b(?:of|for)\s+(\d{1,4})\b`),
}

// idSkipWords are tokens the generic patterns may capture that are never IDs.
var idSkipWords = map[string]struct{}{
	"ticket": {}, "description": {}, "resolution": {}, "status": {},
	"for": {}, "of": {}, "my": {}, "that": {}, "particular": {},
	"number": {}, "similar": {}, "current": {}, "currently": {},
	"open": {}, "closed": {},
}

var digitRun = regexp.MustCompile(`\d+`)

// ExtractTicketID finds a ticket ID mention in a lower-cased query and
// returns it in canonical form. Reports false when no ID is present.
func ExtractTicketID(query string) (string, bool) {
	for _, re := range itIDPatterns {
		if m := re.FindStringSubmatch(query); m != nil {
			return ticketIDPrefix + "-" + padTicketNumber(m[1]), true
		}
	}

	for _, re := range genericIDPatterns {
		m := re.FindStringSubmatch(query)
		if m == nil {
			continue
		}
		raw := m[1]
		if _, skip := idSkipWords[raw]; skip {
			continue
		}
		// A candidate without digits is a stray word, not an ID.
		if !digitRun.MatchString(raw) {
			continue
		}
		return NormalizeTicketID(raw), true
	}

	return "", false
}

// NormalizeTicketID converts a raw ID token to the canonical IT-NNN form,
// zero-padding the numeric part to 3 digits. Already-canonical input is
// returned unchanged, so normalization is idempotent.
func NormalizeTicketID(raw string) string {
	id := strings.ToUpper(strings.TrimSpace(raw))

	if strings.HasPrefix(id, ticketIDPrefix+"-") {
		return id
	}

	if strings.HasPrefix(id, ticketIDPrefix) && len(id) > len(ticketIDPrefix) {
		rest := id[len(ticketIDPrefix):]
		if isDigits(rest) {
			return ticketIDPrefix + "-" + padTicketNumber(rest)
		}
	}

	if isDigits(id) {
		return ticketIDPrefix + "-" + padTicketNumber(id)
	}

	if num := digitRun.FindString(id); num != "" {
		return ticketIDPrefix + "-" + padTicketNumber(num)
	}

	return id
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func padTicketNumber(num string) string {
	for len(num) < 3 {
		num = "0" + num
	}
	return num
}
