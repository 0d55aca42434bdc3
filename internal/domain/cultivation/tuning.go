package cultivation

// Config carries every tunable number and catalog the resolvers read. It is
// built once at startup (defaults, optionally overlaid from YAML) and treated
// as immutable afterwards.
type Config struct {
	Practice     PracticeTuning     `yaml:"practice"`
	Explore      ExploreTuning      `yaml:"explore"`
	Mining       MiningTuning       `yaml:"mining"`
	Breakthrough BreakthroughTuning `yaml:"breakthrough"`
	Duel         DuelTuning         `yaml:"duel"`
	Steal        StealTuning        `yaml:"steal"`
	Daily        DailyTuning        `yaml:"daily"`
	Scheduler    SchedulerTuning    `yaml:"scheduler"`

	TierLadder        []TierRung         `yaml:"tier_ladder"`
	BreakthroughRates map[string]float64 `yaml:"breakthrough_rates"`
	HealthLimits      map[string]int     `yaml:"health_limits"`

	NewUser NewUserTuning `yaml:"new_user"`
}

// TierRung is one step of the progression ladder, lowest first.
type TierRung struct {
	Name        string `yaml:"name"`
	Level       int    `yaml:"level"`
	ExpRequired int    `yaml:"exp_required"`
}

type PracticeTuning struct {
	BaseExpPerHour   float64 `yaml:"base_exp_per_hour"`
	LevelFactor      float64 `yaml:"level_factor"`
	RandomRange      [2]int  `yaml:"random_range"`
	CriticalChance   float64 `yaml:"critical_chance"`
	CriticalMult     float64 `yaml:"critical_multiplier"`
	MinDurationHours float64 `yaml:"min_duration_hours"`
	MaxDurationHours float64 `yaml:"max_duration_hours"`
	MinCollect       float64 `yaml:"min_collect_hours"`
}

type MiningTuning struct {
	BaseStones       float64 `yaml:"base_stones"`
	LevelFactor      float64 `yaml:"level_factor"`
	RandomRange      [2]int  `yaml:"random_range"`
	CriticalChance   float64 `yaml:"critical_chance"`
	CriticalMult     float64 `yaml:"critical_multiplier"`
	MinStones        int     `yaml:"min_stones"`
	MinDurationHours float64 `yaml:"min_duration_hours"`
	MaxDurationHours float64 `yaml:"max_duration_hours"`
}

type ExploreTuning struct {
	MinDurationHours float64 `yaml:"min_duration_hours"`
	MaxDurationHours float64 `yaml:"max_duration_hours"`

	PunishmentChance     float64  `yaml:"punishment_chance"`
	PunishmentEvents     []string `yaml:"punishment_events"`
	StonesLossMultiplier [2]int   `yaml:"stones_loss_multiplier"`
	ExpLossMultiplier    [2]int   `yaml:"exp_loss_multiplier"`

	TreasureStonesPerLevel [2]int `yaml:"treasure_stones_per_level"`

	Herbs []string `yaml:"herbs"`

	Monsters           []string `yaml:"monsters"`
	MonsterLevelSpread int      `yaml:"monster_level_spread"`
	MonsterBaseChance  float64  `yaml:"monster_base_chance"`
	MonsterLevelWeight float64  `yaml:"monster_level_weight"`
	MonsterMinChance   float64  `yaml:"monster_min_chance"`
	MonsterMaxChance   float64  `yaml:"monster_max_chance"`
	MonsterExpPerLvl   [2]int   `yaml:"monster_exp_per_level"`
	MonsterStonesLvl   [2]int   `yaml:"monster_stones_per_level"`

	Opportunities     []string `yaml:"opportunities"`
	OpportunityExpLvl [2]int   `yaml:"opportunity_exp_per_level"`
	TechniqueChance   float64  `yaml:"technique_chance"`
	Techniques        []string `yaml:"techniques"`
}

type BreakthroughTuning struct {
	CooldownSeconds      int        `yaml:"cooldown_seconds"`
	ExpLossPercentRange  [2]float64 `yaml:"exp_loss_percent_range"`
	BonusIncreasePercent float64    `yaml:"bonus_increase_percent"`
	MaxSuccessRate       float64    `yaml:"max_success_rate"`
	AssistItem           string     `yaml:"assist_item"`
}

type DuelTuning struct {
	CooldownSeconds int     `yaml:"cooldown_seconds"`
	LevelMultiplier int     `yaml:"level_multiplier"`
	AttackWeight    int     `yaml:"attack_weight"`
	DefenseWeight   int     `yaml:"defense_weight"`
	BaseChance      float64 `yaml:"base_chance"`
	PowerDiffWeight float64 `yaml:"power_diff_weight"`
	MinChance       float64 `yaml:"min_chance"`
	MaxChance       float64 `yaml:"max_chance"`
	ExpRange        [2]int  `yaml:"exp_range"`
	LoserDivisor    int     `yaml:"loser_exp_divisor"`
}

type StealTuning struct {
	CooldownSeconds int        `yaml:"cooldown_seconds"`
	BaseSuccessRate float64    `yaml:"base_success_rate"`
	LevelBonusRate  float64    `yaml:"level_bonus_rate"`
	MaxSuccessRate  float64    `yaml:"max_success_rate"`
	StealPercent    [2]float64 `yaml:"steal_percent_range"`
	FailurePenalty  int        `yaml:"failure_penalty"`
}

type DailyTuning struct {
	BaseStones        int `yaml:"base_stones"`
	StreakBonusPerDay int `yaml:"streak_bonus_per_day"`
	MaxStreakBonus    int `yaml:"max_streak_bonus"`
	ExpPerLevel       int `yaml:"exp_per_level"`
}

type SchedulerTuning struct {
	GraceSeconds int `yaml:"grace_seconds"`
}

type NewUserTuning struct {
	Level        int    `yaml:"level"`
	Experience   int    `yaml:"experience"`
	MaxExp       int    `yaml:"max_exp"`
	Tier         string `yaml:"tier"`
	SpiritStones int    `yaml:"spirit_stones"`
	Stats        Stats  `yaml:"stats"`
}

// DefaultConfig returns the full built-in tuning. A YAML overlay starts from
// this value, so partial config files never leave a field zeroed.
func DefaultConfig() Config {
	return Config{
		Practice: PracticeTuning{
			BaseExpPerHour:   10,
			LevelFactor:      2,
			RandomRange:      [2]int{-5, 10},
			CriticalChance:   0.1,
			CriticalMult:     3,
			MinDurationHours: 0.1,
			MaxDurationHours: 6,
			MinCollect:       1.0 / 12, // 5 minutes
		},
		Mining: MiningTuning{
			BaseStones:       10,
			LevelFactor:      2,
			RandomRange:      [2]int{-5, 10},
			CriticalChance:   0.1,
			CriticalMult:     3,
			MinStones:        5,
			MinDurationHours: 0.1,
			MaxDurationHours: 6,
		},
		Explore: ExploreTuning{
			MinDurationHours: 0.1,
			MaxDurationHours: 6,

			PunishmentChance:     0.1,
			PunishmentEvents:     []string{"遭遇强敌袭击", "踩入陷阱", "中了毒雾"},
			StonesLossMultiplier: [2]int{5, 15},
			ExpLossMultiplier:    [2]int{2, 5},

			TreasureStonesPerLevel: [2]int{10, 30},

			Herbs: []string{"灵草", "灵芝", "仙参", "龙血草", "九转还魂草"},

			Monsters:           []string{"山猪", "赤焰狐", "黑风狼", "幽冥蛇", "雷霆鹰"},
			MonsterLevelSpread: 5,
			MonsterBaseChance:  0.5,
			MonsterLevelWeight: 0.1,
			MonsterMinChance:   0.1,
			MonsterMaxChance:   0.9,
			MonsterExpPerLvl:   [2]int{5, 10},
			MonsterStonesLvl:   [2]int{5, 15},

			Opportunities: []string{
				"发现了一处修炼宝地",
				"偶遇前辈指点",
				"得到一篇功法残卷",
				"悟道树下顿悟",
				"天降灵雨洗礼",
			},
			OpportunityExpLvl: [2]int{10, 20},
			TechniqueChance:   0.2,
			Techniques:        []string{"吐纳术", "御风术", "小周天功", "金刚不坏", "五行遁法", "太极剑法"},
		},
		Breakthrough: BreakthroughTuning{
			CooldownSeconds:      3600,
			ExpLossPercentRange:  [2]float64{0.01, 0.1},
			BonusIncreasePercent: 0.3,
			MaxSuccessRate:       0.95,
			AssistItem:           "渡厄丹",
		},
		Duel: DuelTuning{
			CooldownSeconds: 600,
			LevelMultiplier: 10,
			AttackWeight:    1,
			DefenseWeight:   1,
			BaseChance:      0.5,
			PowerDiffWeight: 0.3,
			MinChance:       0.1,
			MaxChance:       0.9,
			ExpRange:        [2]int{10, 30},
			LoserDivisor:    2,
		},
		Steal: StealTuning{
			CooldownSeconds: 600,
			BaseSuccessRate: 0.3,
			LevelBonusRate:  0.4,
			MaxSuccessRate:  0.7,
			StealPercent:    [2]float64{0.01, 0.2},
			FailurePenalty:  1000000,
		},
		Daily: DailyTuning{
			BaseStones:        50,
			StreakBonusPerDay: 10,
			MaxStreakBonus:    100,
			ExpPerLevel:       5,
		},
		Scheduler: SchedulerTuning{GraceSeconds: 5},

		TierLadder: []TierRung{
			{Name: "江湖好手", Level: 1, ExpRequired: 1000},
			{Name: "后天境", Level: 5, ExpRequired: 3000},
			{Name: "先天境", Level: 10, ExpRequired: 8000},
			{Name: "炼气境", Level: 20, ExpRequired: 20000},
			{Name: "筑基境", Level: 30, ExpRequired: 50000},
			{Name: "金丹境", Level: 40, ExpRequired: 120000},
			{Name: "元婴境", Level: 50, ExpRequired: 300000},
		},
		BreakthroughRates: map[string]float64{
			"江湖好手": 0.95,
			"后天境":  0.8,
			"先天境":  0.7,
			"炼气境":  0.6,
			"筑基境":  0.5,
			"金丹境":  0.4,
			"元婴境":  0.3,
		},
		HealthLimits: map[string]int{
			"江湖好手": 100,
			"后天境":  200,
			"先天境":  400,
			"炼气境":  800,
			"筑基境":  1600,
			"金丹境":  3200,
			"元婴境":  6400,
		},

		NewUser: NewUserTuning{
			Level:        1,
			Experience:   0,
			MaxExp:       1000,
			Tier:         "江湖好手",
			SpiritStones: 100,
			Stats:        Stats{Attack: 10, Defense: 10, HP: 100, MaxHP: 100},
		},
	}
}

// TierIndex returns the ladder position of name, or -1 when unknown.
func (c Config) TierIndex(name string) int {
	for i, r := range c.TierLadder {
		if r.Name == name {
			return i
		}
	}
	return -1
}

// NextTier returns the rung after the named tier and whether one exists.
func (c Config) NextTier(name string) (TierRung, bool) {
	i := c.TierIndex(name)
	if i < 0 || i+1 >= len(c.TierLadder) {
		return TierRung{}, false
	}
	return c.TierLadder[i+1], true
}

// BaseBreakthroughRate looks up the per-tier base success rate with a
// conservative fallback for tiers missing from the table.
func (c Config) BaseBreakthroughRate(tier string) float64 {
	if r, ok := c.BreakthroughRates[tier]; ok {
		return r
	}
	return 0.3
}

// HealthLimit returns the maxHP cap for a tier, falling back to the lowest
// rung's cap when the tier is missing from the table.
func (c Config) HealthLimit(tier string) int {
	if hp, ok := c.HealthLimits[tier]; ok {
		return hp
	}
	return c.NewUser.Stats.MaxHP
}

func (c Config) DurationBounds(kind ActivityKind) (min, max float64) {
	switch kind {
	case ActivityPractice:
		return c.Practice.MinDurationHours, c.Practice.MaxDurationHours
	case ActivityExplore:
		return c.Explore.MinDurationHours, c.Explore.MaxDurationHours
	case ActivityMine:
		return c.Mining.MinDurationHours, c.Mining.MaxDurationHours
	}
	return 0.1, 6
}
