// ABOUTME: Storage facade bundling the ticket and knowledge stores
// ABOUTME: One SQLite database underneath; callers hold a single handle
package storage

import (
	"github.com/voicedesk/voicedesk/internal/storage/sqlite"
)

// Storage bundles the ticket and knowledge stores over one database.
type Storage struct {
	db        *sqlite.DB
	Tickets   *sqlite.TicketStore
	Knowledge *sqlite.KnowledgeStore
}

// New opens storage at the given path, or the default XDG path when empty.
func New(path string) (*Storage, error) {
	if path == "" {
		path = sqlite.DefaultDBPath()
	}
	db, err := sqlite.Open(path)
	if err != nil {
		return nil, err
	}
	return wrap(db), nil
}

// NewInMemory creates in-memory storage for testing.
func NewInMemory() (*Storage, error) {
	db, err := sqlite.OpenInMemory()
	if err != nil {
		return nil, err
	}
	return wrap(db), nil
}

func wrap(db *sqlite.DB) *Storage {
	return &Storage{
		db:        db,
		Tickets:   sqlite.NewTicketStore(db),
		Knowledge: sqlite.NewKnowledgeStore(db),
	}
}

// Path returns the underlying database path.
func (s *Storage) Path() string {
	return s.db.Path()
}

// Close closes the underlying database.
func (s *Storage) Close() error {
	return s.db.Close()
}
