package cultivation

import "time"

// NewUserRecord builds a fresh aggregate from the config template. The
// record starts unenrolled; Enroll flips Started and sets the display name.
func NewUserRecord(userID string, cfg Config) *UserRecord {
	return &UserRecord{
		UserID:            userID,
		Level:             cfg.NewUser.Level,
		Experience:        cfg.NewUser.Experience,
		ExperienceToLevel: cfg.NewUser.MaxExp,
		Tier:              cfg.NewUser.Tier,
		SpiritStones:      cfg.NewUser.SpiritStones,
		Stats:             cfg.NewUser.Stats,
		Consumables:       map[string]int{},
		Equipment:         map[EquipSlot]string{},
		Cooldowns:         map[string]int64{},
	}
}

// Clone deep-copies the aggregate so resolvers can mutate a working copy and
// leave the stored record untouched on failure.
func (u *UserRecord) Clone() *UserRecord {
	c := *u
	if u.Items != nil {
		c.Items = append([]string(nil), u.Items...)
	}
	if u.Techniques != nil {
		c.Techniques = append([]string(nil), u.Techniques...)
	}
	if u.Consumables != nil {
		c.Consumables = make(map[string]int, len(u.Consumables))
		for k, v := range u.Consumables {
			c.Consumables[k] = v
		}
	}
	if u.Equipment != nil {
		c.Equipment = make(map[EquipSlot]string, len(u.Equipment))
		for k, v := range u.Equipment {
			c.Equipment[k] = v
		}
	}
	if u.Cooldowns != nil {
		c.Cooldowns = make(map[string]int64, len(u.Cooldowns))
		for k, v := range u.Cooldowns {
			c.Cooldowns[k] = v
		}
	}
	if u.Activity != nil {
		act := *u.Activity
		c.Activity = &act
	}
	return &c
}

// Enroll marks the record as started and stores the display name. Starting
// twice is rejected.
func Enroll(u *UserRecord, username string, now time.Time) (*UserRecord, error) {
	if u.Started {
		return nil, ErrAlreadyStarted
	}
	next := u.Clone()
	next.Started = true
	next.Username = username
	next.touch(now)
	return next, nil
}

func (u *UserRecord) AddSpiritStones(n int) {
	if n <= 0 {
		return
	}
	u.SpiritStones += n
}

// RemoveSpiritStones debits up to n, clamping the balance at zero, and
// returns the amount actually removed.
func (u *UserRecord) RemoveSpiritStones(n int) int {
	if n <= 0 {
		return 0
	}
	if n > u.SpiritStones {
		n = u.SpiritStones
	}
	u.SpiritStones -= n
	return n
}

func (u *UserRecord) GainExperience(n int) {
	if n <= 0 {
		return
	}
	u.Experience += n
}

// LoseExperience removes up to n experience, clamped at zero, returning the
// amount actually lost.
func (u *UserRecord) LoseExperience(n int) int {
	if n <= 0 {
		return 0
	}
	if n > u.Experience {
		n = u.Experience
	}
	u.Experience -= n
	return n
}

func (u *UserRecord) AddItem(item string) {
	if item == "" {
		return
	}
	u.Items = append(u.Items, item)
}

// ConsumeConsumable decrements the named consumable, reporting false when
// none is owned.
func (u *UserRecord) ConsumeConsumable(name string) bool {
	if u.Consumables == nil || u.Consumables[name] <= 0 {
		return false
	}
	u.Consumables[name]--
	if u.Consumables[name] == 0 {
		delete(u.Consumables, name)
	}
	return true
}

func (u *UserRecord) AddConsumable(name string, count int) {
	if name == "" || count <= 0 {
		return
	}
	if u.Consumables == nil {
		u.Consumables = map[string]int{}
	}
	u.Consumables[name] += count
}

func (u *UserRecord) HasTechnique(name string) bool {
	for _, t := range u.Techniques {
		if t == name {
			return true
		}
	}
	return false
}

func (u *UserRecord) LearnTechnique(name string) bool {
	if name == "" || u.HasTechnique(name) {
		return false
	}
	u.Techniques = append(u.Techniques, name)
	return true
}

func (u *UserRecord) SetCooldown(key string, at time.Time) {
	if u.Cooldowns == nil {
		u.Cooldowns = map[string]int64{}
	}
	u.Cooldowns[key] = at.Unix()
}

// activityRunning reports whether an activity is still in progress. While one
// runs, no other activity, duel, steal, or breakthrough may start. An
// expired-but-uncollected activity no longer blocks anything.
func (u *UserRecord) activityRunning(now time.Time) bool {
	return u.Activity != nil && now.Before(u.Activity.EndAt)
}

// CooldownRemaining reports how long until the keyed action is available
// again. Zero means ready.
func (u *UserRecord) CooldownRemaining(key string, cooldown time.Duration, now time.Time) time.Duration {
	last, ok := u.Cooldowns[key]
	if !ok {
		return 0
	}
	readyAt := time.Unix(last, 0).Add(cooldown)
	if remaining := readyAt.Sub(now); remaining > 0 {
		return remaining
	}
	return 0
}

// Power is the duel strength score.
func (u *UserRecord) Power(cfg DuelTuning) int {
	return u.Level*cfg.LevelMultiplier + u.Stats.Attack*cfg.AttackWeight + u.Stats.Defense*cfg.DefenseWeight
}

func (u *UserRecord) touch(now time.Time) {
	u.Version++
	u.UpdatedAt = now
}
