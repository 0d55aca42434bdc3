package cultivation

import "time"

type Stats struct {
	Attack  int `json:"attack" yaml:"attack"`
	Defense int `json:"defense" yaml:"defense"`
	HP      int `json:"hp" yaml:"hp"`
	MaxHP   int `json:"max_hp" yaml:"max_hp"`
}

type EquipSlot string

const (
	SlotWeapon    EquipSlot = "weapon"
	SlotArmor     EquipSlot = "armor"
	SlotAccessory EquipSlot = "accessory"
)

type ActivityKind string

const (
	ActivityPractice ActivityKind = "practice"
	ActivityExplore  ActivityKind = "explore"
	ActivityMine     ActivityKind = "mine"
)

// ActivityState is the Active half of the per-user state machine. A nil
// pointer on the aggregate means Idle. RewardMultiplier is 0 for an
// unbounded practice session; its realized multiplier is derived from
// elapsed wall-clock time at collection.
type ActivityState struct {
	Kind             ActivityKind `json:"kind"`
	StartAt          time.Time    `json:"start_at"`
	EndAt            time.Time    `json:"end_at"`
	RewardMultiplier float64      `json:"reward_multiplier"`
}

// Cooldown keys tracked on the aggregate.
const (
	CooldownDuel         = "duel"
	CooldownSteal        = "steal"
	CooldownBreakthrough = "breakthrough"
	CooldownDaily        = "daily"
)

type UserRecord struct {
	UserID            string               `json:"user_id"`
	Username          string               `json:"username,omitempty"`
	Started           bool                 `json:"started"`
	Level             int                  `json:"level"`
	Experience        int                  `json:"experience"`
	ExperienceToLevel int                  `json:"experience_to_level"`
	Tier              string               `json:"tier"`
	SpiritStones      int                  `json:"spirit_stones"`
	Stats             Stats                `json:"stats"`
	Items             []string             `json:"items"`
	Consumables       map[string]int       `json:"consumables"`
	Techniques        []string             `json:"techniques"`
	Equipment         map[EquipSlot]string `json:"equipment"`
	Activity          *ActivityState       `json:"activity,omitempty"`
	Cooldowns         map[string]int64     `json:"cooldowns,omitempty"`
	BreakthroughBonus float64              `json:"breakthrough_bonus"`
	DailyStreak       int                  `json:"daily_streak"`
	LastDailyAt       int64                `json:"last_daily_at"`
	Version           int64                `json:"version"`
	UpdatedAt         time.Time            `json:"updated_at"`
}

type DomainEvent struct {
	ID         string         `json:"id,omitempty"`
	Type       string         `json:"type"`
	OccurredAt time.Time      `json:"occurred_at"`
	Payload    map[string]any `json:"payload"`
}

// ActivityOutcome is the payout payload returned by Collect.
type ActivityOutcome struct {
	Kind       ActivityKind `json:"kind"`
	Multiplier float64      `json:"multiplier"`

	ExpGain    int  `json:"exp_gain,omitempty"`
	StonesGain int  `json:"stones_gain,omitempty"`
	Critical   bool `json:"critical,omitempty"`

	Punishment      bool   `json:"punishment,omitempty"`
	PunishmentEvent string `json:"punishment_event,omitempty"`
	StonesLost      int    `json:"stones_lost,omitempty"`
	ExpLost         int    `json:"exp_lost,omitempty"`

	ExploreEvent     string   `json:"explore_event,omitempty"`
	ItemsGained      []string `json:"items_gained,omitempty"`
	Monster          string   `json:"monster,omitempty"`
	MonsterDefeated  bool     `json:"monster_defeated,omitempty"`
	Opportunity      string   `json:"opportunity,omitempty"`
	TechniqueLearned string   `json:"technique_learned,omitempty"`
}

// Exploration branch names.
const (
	ExploreTreasure    = "treasure"
	ExploreHerb        = "herb"
	ExploreMonster     = "monster"
	ExploreOpportunity = "opportunity"
)

type BreakthroughOutcome struct {
	Advanced    bool    `json:"advanced"`
	OldTier     string  `json:"old_tier"`
	NewTier     string  `json:"new_tier"`
	SuccessRate float64 `json:"success_rate"`
	ExpSpent    int     `json:"exp_spent,omitempty"`
	ExpLost     int     `json:"exp_lost,omitempty"`
	BonusAfter  float64 `json:"bonus_after"`
	AssistUsed  bool    `json:"assist_used,omitempty"`
}

type DuelOutcome struct {
	ActorPower  int     `json:"actor_power"`
	TargetPower int     `json:"target_power"`
	WinChance   float64 `json:"win_chance"`
	ActorWon    bool    `json:"actor_won"`
	ExpDelta    int     `json:"exp_delta"`
	LoserLoss   int     `json:"loser_loss"`
}

type StealOutcome struct {
	Succeeded   bool    `json:"succeeded"`
	SuccessRate float64 `json:"success_rate"`
	Amount      int     `json:"amount,omitempty"`
	Penalty     int     `json:"penalty,omitempty"`
}

type DailyOutcome struct {
	Streak     int `json:"streak"`
	StonesGain int `json:"stones_gain"`
	ExpGain    int `json:"exp_gain"`
}

// TierOutlook reports where a user stands relative to the next tier.
type TierOutlook struct {
	HasNext           bool          `json:"has_next"`
	NextTier          string        `json:"next_tier,omitempty"`
	ExpRequired       int           `json:"exp_required,omitempty"`
	CurrentExp        int           `json:"current_exp"`
	CanAdvance        bool          `json:"can_advance"`
	CooldownRemaining time.Duration `json:"-"`
	SuccessRate       float64       `json:"success_rate,omitempty"`
}
