// ABOUTME: Intent and IntentCategory types produced by the two-tier classifier
// ABOUTME: Category values match the wire strings the LLM fallback emits
package models

// IntentCategory is the classified purpose of a user query.
type IntentCategory string

const (
	IntentTicketQuery    IntentCategory = "ticket_query"
	IntentKnowledgeQuery IntentCategory = "knowledge_query"
	IntentMixedQuery     IntentCategory = "mixed_query"
	IntentGreeting       IntentCategory = "greeting"
	IntentEscalation     IntentCategory = "escalation"
	IntentFollowup       IntentCategory = "followup"
	IntentUnknown        IntentCategory = "unknown"
)

// ParseIntentCategory maps a raw category string to an IntentCategory.
// Unrecognized input becomes IntentUnknown rather than an error so that a
// hallucinated LLM category degrades gracefully.
func ParseIntentCategory(s string) IntentCategory {
	switch IntentCategory(s) {
	case IntentTicketQuery, IntentKnowledgeQuery, IntentMixedQuery,
		IntentGreeting, IntentEscalation, IntentFollowup, IntentUnknown:
		return IntentCategory(s)
	default:
		return IntentUnknown
	}
}

// Intent is a classified query with confidence and extracted entities.
type Intent struct {
	Category   IntentCategory    `json:"intent_type"`
	Confidence float64           `json:"confidence"`
	Entities   map[string]string `json:"entities,omitempty"`
	Reasoning  string            `json:"reasoning,omitempty"`
}

// TicketID returns the extracted ticket_id entity, if present.
func (i Intent) TicketID() (string, bool) {
	id, ok := i.Entities["ticket_id"]
	return id, ok && id != ""
}

// UnknownIntent builds the zero-confidence unknown intent used when
// classification fails outright.
func UnknownIntent(reasoning string) Intent {
	return Intent{
		Category:   IntentUnknown,
		Confidence: 0.0,
		Entities:   map[string]string{},
		Reasoning:  reasoning,
	}
}
