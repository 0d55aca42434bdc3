package memory

import (
	"sync"

	"xianverse/internal/domain/cultivation"
)

// Store is the in-memory backing shared by the memory repositories. It keeps
// deep copies on both reads and writes so callers can never alias stored
// state.
type Store struct {
	mu     sync.RWMutex
	users  map[string]*cultivation.UserRecord
	events map[string][]cultivation.DomainEvent
}

func NewStore() *Store {
	return &Store{
		users:  make(map[string]*cultivation.UserRecord),
		events: make(map[string][]cultivation.DomainEvent),
	}
}

// SeedUser installs a record directly, bypassing version checks. Test and
// bootstrap helper.
func (s *Store) SeedUser(record *cultivation.UserRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[record.UserID] = record.Clone()
}
