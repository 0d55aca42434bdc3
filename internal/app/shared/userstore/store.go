package userstore

import (
	"context"
	"errors"

	"xianverse/internal/app/ports"
	"xianverse/internal/domain/cultivation"
)

// LoadOrCreate fetches the user's record, materializing a fresh one from the
// config template when none is stored yet. The fresh record is not persisted
// until its first mutation is saved.
func LoadOrCreate(ctx context.Context, users ports.UserRepository, userID string, cfg cultivation.Config) (*cultivation.UserRecord, error) {
	rec, err := users.GetByUserID(ctx, userID)
	if errors.Is(err, ports.ErrNotFound) {
		return cultivation.NewUserRecord(userID, cfg), nil
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// Save persists a record mutated by a domain resolver. Resolvers bump the
// version on their working copy, so the expected stored version is one less.
func Save(ctx context.Context, users ports.UserRepository, record *cultivation.UserRecord) error {
	return users.SaveWithVersion(ctx, record, record.Version-1)
}
