// ABOUTME: Pattern library for the fast intent classifier
// ABOUTME: Ordered regex tiers per intent category; precedence is an explicit enumerated ordering
package core

import (
	"regexp"

	"github.com/voicedesk/voicedesk/internal/models"
)

// pattern pairs a compiled regex with the label recorded when it matches.
// Labels surface in Intent entities (e.g. followup_type) and reasoning.
type pattern struct {
	re    *regexp.Regexp
	label string
}

// Precedence is the fixed evaluation order of the classifier tiers. The
// first tier to match wins. Greeting deliberately outranks ticket/knowledge
// (observed behavior of the system this replaces); followup is last so
// queries carrying both a follow-up cue and concrete ticket/knowledge
// content resolve to the more specific category.
var Precedence = []models.IntentCategory{
	models.IntentGreeting,
	models.IntentEscalation,
	models.IntentMixedQuery,
	models.IntentTicketQuery,
	models.IntentKnowledgeQuery,
	models.IntentFollowup,
}

// All patterns match against lower-cased, trimmed input.

var greetingPatterns = []pattern{
	{regexp.MustCompile(`\b(?:hello|hi|hey)\b`), "greeting"},
	{regexp.MustCompile(`\bgood\s+(?:morning|afternoon|evening)\b`), "greeting"},
	{regexp.MustCompile(`\bhow\s+(?:are\s+you|do\s+you\s+do)\b`), "greeting"},
	{regexp.MustCompile(`\bthanks?\b`), "thanks"},
	{regexp.MustCompile(`\bthank\s+you\b`), "thanks"},
	{regexp.MustCompile(`\b(?:goodbye|see\s+you|have\s+a\s+good)\b`), "thanks"},
	{regexp.MustCompile(`\bappreciate\s+it\b`), "thanks"},
}

var escalationPatterns = []pattern{
	{regexp.MustCompile(`\b(?:escalate|human|agent|person|representative)\b`), "escalation"},
	{regexp.MustCompile(`\b(?:speak\s+to|talk\s+to|connect\s+me)\b`), "escalation"},
	{regexp.MustCompile(`\b(?:transfer|forward|hand\s+over)\b`), "escalation"},
}

var ticketPatterns = []pattern{
	// Direct ticket ID references
	{regexp.MustCompile(`\b(?:ticket|id)\s*(?:id\s*)?(?:#\s*)?[a-z0-9][a-z0-9_-]*`), "ticket_id"},
	{regexp.MustCompile(`\b(?:it-\d+|#\d+|\d{3,})\b`), "ticket_id"},

	// Status queries
	{regexp.MustCompile(`\b(?:status|state)\s+(?:of|for)?\s*(?:my\s+)?(?:ticket|id)\b`), "status"},
	{regexp.MustCompile(`\b(?:what|how)\s+(?:is\s+)?(?:the\s+)?status\b`), "status"},

	// Ticket information queries
	{regexp.MustCompile(`\b(?:description|details|info|information)\s+(?:of|for|about)\b`), "description"},
	{regexp.MustCompile(`\b(?:resolution|solution|fix)\s+(?:of|for|to)\b`), "resolution"},
	{regexp.MustCompile(`\b(?:show|get|find|lookup)\s+(?:me\s+)?(?:ticket|id)\b`), "lookup"},

	// Team assignment queries
	{regexp.MustCompile(`\b(?:who|which\s+team)\s+(?:was\s+)?(?:it\s+)?assigned\s+to\b`), "team_assignment"},
	{regexp.MustCompile(`\bassigned\s+(?:to|team)\b`), "team_assignment"},
	{regexp.MustCompile(`\b(?:resolution\s+time|how\s+long)\b`), "resolution_time"},

	// General ticket queries
	{regexp.MustCompile(`\b(?:my\s+)?(?:tickets?|issues?|problems?)\b`), "general_ticket"},
	{regexp.MustCompile(`\b(?:open|closed|pending|resolved)\s+tickets?\b`), "ticket_search"},
	{regexp.MustCompile(`\b(?:show|list|display|get)\s+(?:me\s+)?(?:all\s+)?(?:my\s+)?(?:high|low|medium|priority|urgent)?\s*(?:priority\s+)?tickets?\b`), "ticket_search"},
	{regexp.MustCompile(`\b(?:all|high|low|medium)\s+priority\s+tickets?\b`), "ticket_search"},
}

var knowledgePatterns = []pattern{
	// Direct questions
	{regexp.MustCompile(`\b(?:what|how|why|when|where)\s+(?:is|are|do|does|can|should)\b`), "question"},
	{regexp.MustCompile(`\bhow\s+(?:do\s+i|to|can\s+i)\b`), "how_to"},
	{regexp.MustCompile(`\bwhat\s+(?:is|are)\s+(?:a|an|the)?\s*\w+`), "definition"},

	// Documentation/help queries
	{regexp.MustCompile(`\b(?:help|guide|documentation|docs|manual)\b`), "help"},
	{regexp.MustCompile(`\b(?:explain|tell\s+me|show\s+me)\s+(?:about|how)\b`), "explanation"},

	// Product-specific terms
	{regexp.MustCompile(`\b(?:probe|superops|network|monitor|scan)\b`), "product_feature"},
	{regexp.MustCompile(`\b(?:install|setup|configure|add|create)\b`), "setup_help"},
}

var followupPatterns = []pattern{
	{regexp.MustCompile(`\b(?:yes|yeah|yep|sure|okay|ok)\b.*\b(?:show|list|display)\b`), "followup_show"},
	{regexp.MustCompile(`\b(?:please\s+)?(?:show|list|display)\s+(?:them|those|it)\b`), "followup_show"},
	{regexp.MustCompile(`\b(?:yes|yeah|yep|sure|okay|ok)\b.*\bplease\b`), "followup_confirm"},
	{regexp.MustCompile(`\b(?:go\s+ahead|continue|proceed)\b`), "followup_confirm"},

	// New question requests
	{regexp.MustCompile(`\b(?:i\s+have\s+)?(?:another|different|new)\s+question\b`), "new_question"},
	{regexp.MustCompile(`\b(?:next|different)\s+question\b`), "new_question"},

	// More-details requests are anchored to the whole string so that
	// "give me more details about ticket 005" stays a ticket query.
	{regexp.MustCompile(`^\s*(?:give\s+me\s+)?(?:more\s+)?(?:details|information)\s*$`), "more_details"},
	{regexp.MustCompile(`^\s*(?:tell\s+me\s+)?more\s*$`), "more_details"},
	{regexp.MustCompile(`^\s*(?:elaborate|expand|continue)\s*$`), "more_details"},
	{regexp.MustCompile(`\b(?:yes|yeah|yep|sure|okay|ok)\b.*\b(?:more|details|continue)\b`), "more_details"},

	// Contextual reference patterns
	{regexp.MustCompile(`\b(?:who|which\s+team)\s+(?:was\s+)?(?:it\s+)?assigned\b`), "contextual_team"},
	{regexp.MustCompile(`\bwhat\s+(?:was\s+)?(?:the\s+)?(?:resolution\s+time|time)\b`), "contextual_time"},
	{regexp.MustCompile(`\bthat\s+(?:particular\s+)?ticket\b`), "contextual_ticket"},
}

// matchPatterns returns the label of the first matching pattern, in order.
func matchPatterns(query string, patterns []pattern) (string, bool) {
	for _, p := range patterns {
		if p.re.MatchString(query) {
			return p.label, true
		}
	}
	return "", false
}
