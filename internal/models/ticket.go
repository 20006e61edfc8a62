// ABOUTME: TicketRecord is the structured support ticket row served by the ticket store
// ABOUTME: Mirrors the tickets table columns one-to-one
package models

import "time"

// TicketRecord is one support ticket as stored in the ticket database.
type TicketRecord struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	Category       string    `json:"category"`
	Priority       string    `json:"priority"`
	Status         string    `json:"status"`
	Resolution     string    `json:"resolution,omitempty"`
	ResolutionTime string    `json:"resolution_time,omitempty"`
	AssignedTeam   string    `json:"assigned_team,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// PriorityRank orders priorities for result sorting (higher is more urgent).
func PriorityRank(priority string) int {
	switch priority {
	case "Critical":
		return 4
	case "High", "Urgent":
		return 3
	case "Medium":
		return 2
	case "Low":
		return 1
	default:
		return 0
	}
}
