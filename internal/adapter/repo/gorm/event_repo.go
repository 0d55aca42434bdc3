package gormrepo

import (
	"context"
	"encoding/json"

	"gorm.io/gorm"

	"xianverse/internal/adapter/repo/gorm/model"
	"xianverse/internal/domain/cultivation"
)

type EventRepo struct {
	db *gorm.DB
}

func NewEventRepo(db *gorm.DB) EventRepo {
	return EventRepo{db: db}
}

func (r EventRepo) Append(ctx context.Context, userID string, events []cultivation.DomainEvent) error {
	if len(events) == 0 {
		return nil
	}
	rows := make([]model.DomainEvent, 0, len(events))
	for _, e := range events {
		b, _ := json.Marshal(e.Payload)
		rows = append(rows, model.DomainEvent{
			ID:         e.ID,
			UserID:     userID,
			Type:       e.Type,
			OccurredAt: e.OccurredAt,
			Payload:    b,
		})
	}
	return getDBFromCtx(ctx, r.db).Create(&rows).Error
}

// ListByUserID returns the newest events first. An empty history is a valid
// empty list, not an error.
func (r EventRepo) ListByUserID(ctx context.Context, userID string, limit int) ([]cultivation.DomainEvent, error) {
	var rows []model.DomainEvent
	query := getDBFromCtx(ctx, r.db).
		Where("user_id = ?", userID).
		Order("occurred_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]cultivation.DomainEvent, 0, len(rows))
	for _, row := range rows {
		var payload map[string]any
		if len(row.Payload) > 0 {
			_ = json.Unmarshal(row.Payload, &payload)
		}
		out = append(out, cultivation.DomainEvent{
			ID:         row.ID,
			Type:       row.Type,
			OccurredAt: row.OccurredAt,
			Payload:    payload,
		})
	}
	return out, nil
}
