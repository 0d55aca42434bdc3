package gormrepo

import (
	"context"
	"encoding/json"
	"errors"

	"gorm.io/gorm"

	"xianverse/internal/adapter/repo/gorm/model"
	"xianverse/internal/app/ports"
	"xianverse/internal/domain/cultivation"
)

type UserRepo struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) UserRepo {
	return UserRepo{db: db}
}

func (r UserRepo) GetByUserID(ctx context.Context, userID string) (*cultivation.UserRecord, error) {
	var m model.UserState
	if err := getDBFromCtx(ctx, r.db).Where("user_id = ?", userID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return toRecord(m)
}

func (r UserRepo) SaveWithVersion(ctx context.Context, record *cultivation.UserRecord, expectedVersion int64) error {
	db := getDBFromCtx(ctx, r.db)
	m, err := toModel(record)
	if err != nil {
		return err
	}
	if expectedVersion == 0 {
		if err := db.Create(&m).Error; err != nil {
			// Another writer created the row first; same contract as a
			// version mismatch on the update path.
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ports.ErrConflict
			}
			return err
		}
		return nil
	}

	res := db.Model(&model.UserState{}).
		Where("user_id = ? AND version = ?", record.UserID, expectedVersion).
		Updates(updateColumns(m))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ports.ErrConflict
	}
	return nil
}

func (r UserRepo) ListTop(ctx context.Context, limit int) ([]*cultivation.UserRecord, error) {
	var rows []model.UserState
	query := getDBFromCtx(ctx, r.db).
		Order("level DESC").
		Order("experience DESC").
		Order("user_id ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return toRecords(rows)
}

func (r UserRepo) ListActive(ctx context.Context) ([]*cultivation.UserRecord, error) {
	var rows []model.UserState
	if err := getDBFromCtx(ctx, r.db).Where("activity IS NOT NULL").Find(&rows).Error; err != nil {
		return nil, err
	}
	return toRecords(rows)
}

func toRecords(rows []model.UserState) ([]*cultivation.UserRecord, error) {
	out := make([]*cultivation.UserRecord, 0, len(rows))
	for _, row := range rows {
		rec, err := toRecord(row)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}

func toRecord(m model.UserState) (*cultivation.UserRecord, error) {
	rec := &cultivation.UserRecord{
		UserID:            m.UserID,
		Username:          m.Username,
		Started:           m.Started,
		Level:             int(m.Level),
		Experience:        int(m.Experience),
		ExperienceToLevel: int(m.ExperienceToLevel),
		Tier:              m.Tier,
		SpiritStones:      int(m.SpiritStones),
		Stats: cultivation.Stats{
			Attack:  int(m.Attack),
			Defense: int(m.Defense),
			HP:      int(m.Hp),
			MaxHP:   int(m.MaxHp),
		},
		BreakthroughBonus: m.BreakthroughBonus,
		DailyStreak:       int(m.DailyStreak),
		LastDailyAt:       m.LastDailyAt,
		Version:           m.Version,
		UpdatedAt:         m.UpdatedAt,
	}
	for _, col := range []struct {
		raw []byte
		dst any
	}{
		{m.Items, &rec.Items},
		{m.Consumables, &rec.Consumables},
		{m.Techniques, &rec.Techniques},
		{m.Equipment, &rec.Equipment},
		{m.Cooldowns, &rec.Cooldowns},
	} {
		if len(col.raw) == 0 {
			continue
		}
		if err := json.Unmarshal(col.raw, col.dst); err != nil {
			return nil, err
		}
	}
	if len(m.Activity) > 0 {
		var act cultivation.ActivityState
		if err := json.Unmarshal(m.Activity, &act); err != nil {
			return nil, err
		}
		rec.Activity = &act
	}
	return rec, nil
}

func toModel(rec *cultivation.UserRecord) (model.UserState, error) {
	m := model.UserState{
		UserID:            rec.UserID,
		Username:          rec.Username,
		Started:           rec.Started,
		Level:             int32(rec.Level),
		Experience:        int64(rec.Experience),
		ExperienceToLevel: int64(rec.ExperienceToLevel),
		Tier:              rec.Tier,
		SpiritStones:      int64(rec.SpiritStones),
		Attack:            int32(rec.Stats.Attack),
		Defense:           int32(rec.Stats.Defense),
		Hp:                int32(rec.Stats.HP),
		MaxHp:             int32(rec.Stats.MaxHP),
		BreakthroughBonus: rec.BreakthroughBonus,
		DailyStreak:       int32(rec.DailyStreak),
		LastDailyAt:       rec.LastDailyAt,
		Version:           rec.Version,
		UpdatedAt:         rec.UpdatedAt,
	}
	var err error
	if m.Items, err = marshalOrNil(rec.Items, len(rec.Items) > 0); err != nil {
		return m, err
	}
	if m.Consumables, err = marshalOrNil(rec.Consumables, len(rec.Consumables) > 0); err != nil {
		return m, err
	}
	if m.Techniques, err = marshalOrNil(rec.Techniques, len(rec.Techniques) > 0); err != nil {
		return m, err
	}
	if m.Equipment, err = marshalOrNil(rec.Equipment, len(rec.Equipment) > 0); err != nil {
		return m, err
	}
	if m.Cooldowns, err = marshalOrNil(rec.Cooldowns, len(rec.Cooldowns) > 0); err != nil {
		return m, err
	}
	if m.Activity, err = marshalOrNil(rec.Activity, rec.Activity != nil); err != nil {
		return m, err
	}
	return m, nil
}

// marshalOrNil keeps empty collections as SQL NULL so "activity IS NOT NULL"
// stays a usable filter.
func marshalOrNil(v any, present bool) ([]byte, error) {
	if !present {
		return nil, nil
	}
	return json.Marshal(v)
}

func updateColumns(m model.UserState) map[string]any {
	return map[string]any{
		"username":            m.Username,
		"started":             m.Started,
		"level":               m.Level,
		"experience":          m.Experience,
		"experience_to_level": m.ExperienceToLevel,
		"tier":                m.Tier,
		"spirit_stones":       m.SpiritStones,
		"attack":              m.Attack,
		"defense":             m.Defense,
		"hp":                  m.Hp,
		"max_hp":              m.MaxHp,
		"items":               m.Items,
		"consumables":         m.Consumables,
		"techniques":          m.Techniques,
		"equipment":           m.Equipment,
		"activity":            m.Activity,
		"cooldowns":           m.Cooldowns,
		"breakthrough_bonus":  m.BreakthroughBonus,
		"daily_streak":        m.DailyStreak,
		"last_daily_at":       m.LastDailyAt,
		"version":             m.Version,
		"updated_at":          m.UpdatedAt,
	}
}
