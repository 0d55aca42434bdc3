package cultivation

import (
	"fmt"
	"math"
	"time"
)

func (c Config) breakthroughCooldown() time.Duration {
	return time.Duration(c.Breakthrough.CooldownSeconds) * time.Second
}

// SuccessRate is the effective breakthrough chance for the user's current
// tier, including the accumulated failure bonus.
func SuccessRate(u *UserRecord, cfg Config) float64 {
	rate := cfg.BaseBreakthroughRate(u.Tier) + u.BreakthroughBonus
	if rate > cfg.Breakthrough.MaxSuccessRate {
		rate = cfg.Breakthrough.MaxSuccessRate
	}
	return rate
}

// Outlook reports where the user stands relative to the next tier. The
// experience requirement is the current rung's, paid on advancement.
func Outlook(u *UserRecord, cfg Config, now time.Time) TierOutlook {
	next, ok := cfg.NextTier(u.Tier)
	if !ok {
		return TierOutlook{CurrentExp: u.Experience}
	}
	required := cfg.TierLadder[cfg.TierIndex(u.Tier)].ExpRequired
	remaining := u.CooldownRemaining(CooldownBreakthrough, cfg.breakthroughCooldown(), now)
	return TierOutlook{
		HasNext:           true,
		NextTier:          next.Name,
		ExpRequired:       required,
		CurrentExp:        u.Experience,
		CanAdvance:        u.Experience >= required && remaining == 0,
		CooldownRemaining: remaining,
		SuccessRate:       SuccessRate(u, cfg),
	}
}

// ResolveBreakthrough attempts a tier advance on a clone of u. assistItem
// names an optional consumable that shields the failure experience loss;
// empty means none. The breakthrough timestamp is recorded whether the
// attempt succeeds or fails.
func ResolveBreakthrough(u *UserRecord, cfg Config, assistItem string, rng Rand, now time.Time) (*UserRecord, BreakthroughOutcome, error) {
	next, ok := cfg.NextTier(u.Tier)
	if !ok {
		return nil, BreakthroughOutcome{}, fmt.Errorf("%w: %s", ErrAtMaxTier, u.Tier)
	}
	if u.activityRunning(now) {
		return nil, BreakthroughOutcome{}, fmt.Errorf("%w: %s", ErrAlreadyActive, KindLabel(u.Activity.Kind))
	}
	required := cfg.TierLadder[cfg.TierIndex(u.Tier)].ExpRequired
	if remaining := u.CooldownRemaining(CooldownBreakthrough, cfg.breakthroughCooldown(), now); remaining > 0 {
		return nil, BreakthroughOutcome{}, fmt.Errorf("%w: %s remaining", ErrOnCooldown, FormatRemaining(remaining))
	}
	if u.Experience < required {
		return nil, BreakthroughOutcome{}, fmt.Errorf("%w: current %d, required %d", ErrInsufficientExperience, u.Experience, required)
	}
	if assistItem != "" && assistItem != cfg.Breakthrough.AssistItem {
		return nil, BreakthroughOutcome{}, fmt.Errorf("%w: %s", ErrUnknownCatalogEntry, assistItem)
	}

	work := u.Clone()
	assistUsed := false
	if assistItem != "" {
		if !work.ConsumeConsumable(assistItem) {
			return nil, BreakthroughOutcome{}, fmt.Errorf("%w: %s", ErrItemNotOwned, assistItem)
		}
		assistUsed = true
	}

	rate := SuccessRate(u, cfg)
	out := BreakthroughOutcome{
		OldTier:     u.Tier,
		SuccessRate: rate,
		AssistUsed:  assistUsed,
	}

	if rng.Float64() < rate {
		out.Advanced = true
		out.NewTier = next.Name
		out.ExpSpent = required
		work.Tier = next.Name
		work.Level = next.Level
		work.Experience -= required
		work.BreakthroughBonus = 0
		work.ExperienceToLevel = next.ExpRequired
		newMax := cfg.HealthLimit(next.Name)
		work.Stats.HP += newMax - work.Stats.MaxHP
		work.Stats.MaxHP = newMax
		if work.Stats.HP > newMax {
			work.Stats.HP = newMax
		}
	} else {
		out.NewTier = u.Tier
		if !assistUsed {
			lossPct := uniformFloat(rng, cfg.Breakthrough.ExpLossPercentRange[0], cfg.Breakthrough.ExpLossPercentRange[1])
			out.ExpLost = work.LoseExperience(int(math.Floor(float64(work.Experience) * lossPct)))
		}
		work.BreakthroughBonus += cfg.BaseBreakthroughRate(u.Tier) * cfg.Breakthrough.BonusIncreasePercent
	}
	out.BonusAfter = work.BreakthroughBonus

	work.SetCooldown(CooldownBreakthrough, now)
	work.touch(now)
	return work, out, nil
}
