// ABOUTME: Routing decision types mapping a classified Intent to downstream agents
// ABOUTME: A decision holds zero, one, or two agent task descriptors and is discarded after dispatch
package models

// AgentType identifies a downstream retrieval agent
type AgentType string

const (
	AgentTicket    AgentType = "ticket"
	AgentKnowledge AgentType = "knowledge"
)

// AgentTask describes one unit of work for a downstream agent.
type AgentTask struct {
	Agent    AgentType         `json:"agent"`
	Query    string            `json:"query"`
	Priority int               `json:"priority"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// RoutingDecision is the ordered list of agent tasks selected for an Intent.
type RoutingDecision struct {
	Tasks []AgentTask `json:"tasks"`
}

// AgentNames returns the agent types in dispatch order, for logging and tests.
func (d RoutingDecision) AgentNames() []string {
	names := make([]string, 0, len(d.Tasks))
	for _, t := range d.Tasks {
		names = append(names, string(t.Agent))
	}
	return names
}

// Empty reports whether the decision dispatches no agents.
func (d RoutingDecision) Empty() bool {
	return len(d.Tasks) == 0
}
