package model

import "time"

// UserState is the persisted form of the progression aggregate. Collection
// fields are stored as JSON text so the row stays a single read-modify-write
// unit guarded by the version column.
type UserState struct {
	UserID            string    `gorm:"primaryKey;column:user_id"`
	Username          string    `gorm:"column:username"`
	Started           bool      `gorm:"column:started"`
	Level             int32     `gorm:"column:level"`
	Experience        int64     `gorm:"column:experience"`
	ExperienceToLevel int64     `gorm:"column:experience_to_level"`
	Tier              string    `gorm:"column:tier"`
	SpiritStones      int64     `gorm:"column:spirit_stones"`
	Attack            int32     `gorm:"column:attack"`
	Defense           int32     `gorm:"column:defense"`
	Hp                int32     `gorm:"column:hp"`
	MaxHp             int32     `gorm:"column:max_hp"`
	Items             []byte    `gorm:"column:items;type:jsonb"`
	Consumables       []byte    `gorm:"column:consumables;type:jsonb"`
	Techniques        []byte    `gorm:"column:techniques;type:jsonb"`
	Equipment         []byte    `gorm:"column:equipment;type:jsonb"`
	Activity          []byte    `gorm:"column:activity;type:jsonb"`
	Cooldowns         []byte    `gorm:"column:cooldowns;type:jsonb"`
	BreakthroughBonus float64   `gorm:"column:breakthrough_bonus"`
	DailyStreak       int32     `gorm:"column:daily_streak"`
	LastDailyAt       int64     `gorm:"column:last_daily_at"`
	Version           int64     `gorm:"column:version"`
	UpdatedAt         time.Time `gorm:"column:updated_at"`
}

func (UserState) TableName() string { return "user_states" }

type DomainEvent struct {
	ID         string    `gorm:"primaryKey;column:id"`
	UserID     string    `gorm:"column:user_id;index"`
	Type       string    `gorm:"column:type"`
	OccurredAt time.Time `gorm:"column:occurred_at;index"`
	Payload    []byte    `gorm:"column:payload;type:jsonb"`
}

func (DomainEvent) TableName() string { return "domain_events" }
