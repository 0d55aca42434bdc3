package gormrepo

import (
	"context"
	"sort"
	"sync"

	"gorm.io/gorm"
)

// LockManager combines in-process keyed mutexes with a database transaction:
// the per-user critical section runs with the gorm tx stored in the context,
// so every repository call inside it joins the same transaction. Ids are
// deduplicated and locked in sorted order.
type LockManager struct {
	db *gorm.DB

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewLockManager(db *gorm.DB) *LockManager {
	return &LockManager{db: db, locks: make(map[string]*sync.Mutex)}
}

func (m *LockManager) lockFor(userID string) *sync.Mutex {
	m.mu.Lock()
	defer m.mu.Unlock()
	l, ok := m.locks[userID]
	if !ok {
		l = &sync.Mutex{}
		m.locks[userID] = l
	}
	return l
}

func (m *LockManager) RunLocked(ctx context.Context, userIDs []string, fn func(ctx context.Context) error) error {
	ids := make([]string, 0, len(userIDs))
	seen := make(map[string]bool, len(userIDs))
	for _, id := range userIDs {
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)

	held := make([]*sync.Mutex, 0, len(ids))
	for _, id := range ids {
		l := m.lockFor(id)
		l.Lock()
		held = append(held, l)
	}
	defer func() {
		for i := len(held) - 1; i >= 0; i-- {
			held[i].Unlock()
		}
	}()

	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(withTx(ctx, tx))
	})
}
