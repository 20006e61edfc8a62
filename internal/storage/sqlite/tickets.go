// ABOUTME: Ticket persistence operations for SQLite
// ABOUTME: Exact-ID lookup plus dynamic criteria search with keyword matching
package sqlite

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/voicedesk/voicedesk/internal/models"
)

// searchLimit caps criteria search result sets.
const searchLimit = 20

// TicketStore handles ticket persistence
type TicketStore struct {
	db *DB
}

// NewTicketStore creates a new TicketStore
func NewTicketStore(db *DB) *TicketStore {
	return &TicketStore{db: db}
}

// Save inserts or updates a ticket
func (s *TicketStore) Save(t models.TicketRecord) error {
	if t.ID == "" {
		return fmt.Errorf("ticket ID is required")
	}

	now := time.Now()
	if t.CreatedAt.IsZero() {
		t.CreatedAt = now
	}

	_, err := s.db.Exec(`
		INSERT INTO tickets (id, title, description, category, priority, status,
			resolution, resolution_time, assigned_team, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			description = excluded.description,
			category = excluded.category,
			priority = excluded.priority,
			status = excluded.status,
			resolution = excluded.resolution,
			resolution_time = excluded.resolution_time,
			assigned_team = excluded.assigned_team,
			updated_at = excluded.updated_at
	`, t.ID, t.Title, t.Description, t.Category, t.Priority, t.Status,
		t.Resolution, t.ResolutionTime, t.AssignedTeam, t.CreatedAt, now)

	if err != nil {
		return fmt.Errorf("failed to save ticket %s: %w", t.ID, err)
	}
	return nil
}

// GetByID retrieves a ticket by its canonical ID. Returns nil, nil when the
// ticket does not exist.
func (s *TicketStore) GetByID(id string) (*models.TicketRecord, error) {
	var t models.TicketRecord

	err := s.db.QueryRow(`
		SELECT id, title, description, category, priority, status,
			resolution, resolution_time, assigned_team, created_at, updated_at
		FROM tickets
		WHERE id = ?
	`, id).Scan(&t.ID, &t.Title, &t.Description, &t.Category, &t.Priority, &t.Status,
		&t.Resolution, &t.ResolutionTime, &t.AssignedTeam, &t.CreatedAt, &t.UpdatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get ticket %s: %w", id, err)
	}
	return &t, nil
}

// Search finds tickets matching the criteria. Structured filters combine
// with AND; keywords match title or description with OR. Results order by
// priority rank then recency.
func (s *TicketStore) Search(criteria models.SearchCriteria) ([]models.TicketRecord, error) {
	var (
		where []string
		args  []interface{}
	)

	if criteria.TicketID != "" {
		where = append(where, "id = ?")
		args = append(args, criteria.TicketID)
	}
	if criteria.Category != "" {
		where = append(where, "category = ?")
		args = append(args, criteria.Category)
	}
	if criteria.Priority != "" {
		where = append(where, "priority = ?")
		args = append(args, criteria.Priority)
	}
	if criteria.Status != "" {
		where = append(where, "status = ?")
		args = append(args, criteria.Status)
	}
	if criteria.AssignedTeam != "" {
		where = append(where, "assigned_team = ?")
		args = append(args, criteria.AssignedTeam)
	}

	if len(criteria.Keywords) > 0 {
		var kw []string
		for _, k := range criteria.Keywords {
			kw = append(kw, "(title LIKE ? OR description LIKE ?)")
			like := "%" + k + "%"
			args = append(args, like, like)
		}
		where = append(where, "("+strings.Join(kw, " OR ")+")")
	}

	query := `
		SELECT id, title, description, category, priority, status,
			resolution, resolution_time, assigned_team, created_at, updated_at
		FROM tickets
	`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += `
		ORDER BY CASE priority
			WHEN 'Critical' THEN 4
			WHEN 'High' THEN 3
			WHEN 'Urgent' THEN 3
			WHEN 'Medium' THEN 2
			WHEN 'Low' THEN 1
			ELSE 0
		END DESC, updated_at DESC
		LIMIT ?
	`
	args = append(args, searchLimit)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("ticket search failed: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var tickets []models.TicketRecord
	for rows.Next() {
		var t models.TicketRecord
		if err := rows.Scan(&t.ID, &t.Title, &t.Description, &t.Category, &t.Priority, &t.Status,
			&t.Resolution, &t.ResolutionTime, &t.AssignedTeam, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		tickets = append(tickets, t)
	}
	return tickets, rows.Err()
}

// Count returns the number of stored tickets
func (s *TicketStore) Count() (int, error) {
	var n int
	err := s.db.QueryRow("SELECT COUNT(*) FROM tickets").Scan(&n)
	return n, err
}
