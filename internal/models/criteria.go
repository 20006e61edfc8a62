// ABOUTME: SearchCriteria is the structured form of a natural-language ticket query
// ABOUTME: An exact TicketID short-circuits all other filters
package models

// SearchCriteria holds the filters parsed from a ticket query. A non-empty
// TicketID means an exact lookup; the remaining fields are ignored then.
type SearchCriteria struct {
	TicketID     string   `json:"ticket_id,omitempty"`
	Category     string   `json:"category,omitempty"`
	Priority     string   `json:"priority,omitempty"`
	Status       string   `json:"status,omitempty"`
	AssignedTeam string   `json:"assigned_team,omitempty"`
	Keywords     []string `json:"keywords,omitempty"`
}

// HasFilters reports whether any structured filter or keyword is set.
func (c SearchCriteria) HasFilters() bool {
	return c.TicketID != "" || c.Category != "" || c.Priority != "" ||
		c.Status != "" || c.AssignedTeam != "" || len(c.Keywords) > 0
}
