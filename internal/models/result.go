// ABOUTME: Agent result types: one tagged variant per result kind plus the AgentResult envelope
// ABOUTME: Replaces stringly-typed data dictionaries with explicit structs
package models

import "time"

// ResultKind discriminates the variant carried by an AgentResult.
type ResultKind string

const (
	ResultSpecificTicket ResultKind = "specific_ticket"
	ResultSearchSet      ResultKind = "search_results"
	ResultKnowledge      ResultKind = "knowledge"
	ResultError          ResultKind = "error"
)

// SpecificTicketResult is a direct lookup outcome for one ticket ID.
type SpecificTicketResult struct {
	TicketID string        `json:"ticket_id"`
	Found    bool          `json:"found"`
	Ticket   *TicketRecord `json:"ticket,omitempty"`
}

// TicketMatch is one ticket in a search result set, with optional
// semantic similarity when the match came from vector search.
type TicketMatch struct {
	Ticket        TicketRecord `json:"ticket"`
	SemanticScore float64      `json:"semantic_score,omitempty"`
	Source        string       `json:"source"` // "structured", "semantic", or "both"
}

// SearchResultsSet is the outcome of a criteria/keyword ticket search.
type SearchResultsSet struct {
	Matches    []TicketMatch  `json:"matches"`
	TotalFound int            `json:"total_found"`
	Criteria   SearchCriteria `json:"criteria"`
}

// KnowledgeChunk is one retrieved fragment from the knowledge base.
type KnowledgeChunk struct {
	ID        string            `json:"id"`
	Content   string            `json:"content"`
	Metadata  map[string]string `json:"metadata,omitempty"`
	Relevance float64           `json:"relevance"`
}

// KnowledgeSearchResult is the outcome of a semantic knowledge-base search.
type KnowledgeSearchResult struct {
	Chunks []KnowledgeChunk `json:"chunks"`
}

// ErrorResult carries an agent failure without propagating an exception.
type ErrorResult struct {
	Message string `json:"message"`
}

// AgentResult is the envelope every downstream agent returns. Exactly one
// variant pointer matching Kind is set.
type AgentResult struct {
	AgentName          string                 `json:"agent_name"`
	Kind               ResultKind             `json:"kind"`
	Ticket             *SpecificTicketResult  `json:"ticket_result,omitempty"`
	Search             *SearchResultsSet      `json:"search_result,omitempty"`
	Knowledge          *KnowledgeSearchResult `json:"knowledge_result,omitempty"`
	Err                *ErrorResult           `json:"error_result,omitempty"`
	Confidence         float64                `json:"confidence"`
	ProcessingTime     time.Duration          `json:"processing_time"`
	RequiresEscalation bool                   `json:"requires_escalation"`
	Metadata           map[string]string      `json:"metadata,omitempty"`
}

// ErrorAgentResult builds an error-kind result with zero confidence.
func ErrorAgentResult(agentName, message string, elapsed time.Duration) AgentResult {
	return AgentResult{
		AgentName:          agentName,
		Kind:               ResultError,
		Err:                &ErrorResult{Message: message},
		Confidence:         0.0,
		ProcessingTime:     elapsed,
		RequiresEscalation: true,
	}
}
