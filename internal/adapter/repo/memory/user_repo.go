package memory

import (
	"context"
	"sort"

	"xianverse/internal/app/ports"
	"xianverse/internal/domain/cultivation"
)

type UserRepo struct {
	store *Store
}

func NewUserRepo(store *Store) UserRepo {
	return UserRepo{store: store}
}

func (r UserRepo) GetByUserID(_ context.Context, userID string) (*cultivation.UserRecord, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	rec, ok := r.store.users[userID]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return rec.Clone(), nil
}

func (r UserRepo) SaveWithVersion(_ context.Context, record *cultivation.UserRecord, expectedVersion int64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	current, ok := r.store.users[record.UserID]
	if !ok {
		if expectedVersion != 0 {
			return ports.ErrConflict
		}
		r.store.users[record.UserID] = record.Clone()
		return nil
	}
	if current.Version != expectedVersion {
		return ports.ErrConflict
	}
	r.store.users[record.UserID] = record.Clone()
	return nil
}

func (r UserRepo) ListTop(_ context.Context, limit int) ([]*cultivation.UserRecord, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	all := make([]*cultivation.UserRecord, 0, len(r.store.users))
	for _, rec := range r.store.users {
		all = append(all, rec.Clone())
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].Level != all[j].Level {
			return all[i].Level > all[j].Level
		}
		if all[i].Experience != all[j].Experience {
			return all[i].Experience > all[j].Experience
		}
		return all[i].UserID < all[j].UserID
	})
	if limit > 0 && len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (r UserRepo) ListActive(_ context.Context) ([]*cultivation.UserRecord, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	var active []*cultivation.UserRecord
	for _, rec := range r.store.users {
		if rec.Activity != nil {
			active = append(active, rec.Clone())
		}
	}
	return active, nil
}
