package cultivation

import (
	"fmt"
	"math"
	"time"
)

func (c Config) duelCooldown() time.Duration {
	return time.Duration(c.Duel.CooldownSeconds) * time.Second
}

func (c Config) stealCooldown() time.Duration {
	return time.Duration(c.Steal.CooldownSeconds) * time.Second
}

// DuelWinChance computes the actor's chance against a target from the two
// power scores. Equal powers land exactly on the base chance.
func DuelWinChance(actorPower, targetPower int, cfg DuelTuning) float64 {
	chance := cfg.BaseChance
	if maxPow := max(actorPower, targetPower); maxPow > 0 {
		chance += float64(actorPower-targetPower) / float64(maxPow) * cfg.PowerDiffWeight
	}
	return clampFloat(chance, cfg.MinChance, cfg.MaxChance)
}

// ResolveDuel settles a duel between clones of the two records. Only the
// actor takes the cooldown.
func ResolveDuel(actor, target *UserRecord, cfg Config, rng Rand, now time.Time) (*UserRecord, *UserRecord, DuelOutcome, error) {
	if actor.UserID == target.UserID {
		return nil, nil, DuelOutcome{}, fmt.Errorf("%w: cannot duel yourself", ErrInvalidTarget)
	}
	if actor.activityRunning(now) {
		return nil, nil, DuelOutcome{}, fmt.Errorf("%w: %s", ErrAlreadyActive, KindLabel(actor.Activity.Kind))
	}
	if remaining := actor.CooldownRemaining(CooldownDuel, cfg.duelCooldown(), now); remaining > 0 {
		return nil, nil, DuelOutcome{}, fmt.Errorf("%w: %s remaining", ErrOnCooldown, FormatRemaining(remaining))
	}

	a := actor.Clone()
	t := target.Clone()

	out := DuelOutcome{
		ActorPower:  a.Power(cfg.Duel),
		TargetPower: t.Power(cfg.Duel),
	}
	out.WinChance = DuelWinChance(out.ActorPower, out.TargetPower, cfg.Duel)

	delta := uniformInt(rng, cfg.Duel.ExpRange[0], cfg.Duel.ExpRange[1]) * max(a.Level, t.Level)
	out.ExpDelta = delta

	divisor := cfg.Duel.LoserDivisor
	if divisor <= 0 {
		divisor = 2
	}
	if rng.Float64() < out.WinChance {
		out.ActorWon = true
		a.GainExperience(delta)
		out.LoserLoss = t.LoseExperience(delta / divisor)
	} else {
		t.GainExperience(delta)
		out.LoserLoss = a.LoseExperience(delta / divisor)
	}

	a.SetCooldown(CooldownDuel, now)
	a.touch(now)
	t.touch(now)
	return a, t, out, nil
}

// StealSuccessRate grows with the actor's level up to the configured cap.
func StealSuccessRate(level int, cfg StealTuning) float64 {
	rate := cfg.BaseSuccessRate + float64(level)/100*cfg.LevelBonusRate
	if rate > cfg.MaxSuccessRate {
		rate = cfg.MaxSuccessRate
	}
	return rate
}

// ResolveSteal settles a steal attempt between clones of the two records.
// The cooldown is charged whether the attempt lands or not.
func ResolveSteal(actor, target *UserRecord, cfg Config, rng Rand, now time.Time) (*UserRecord, *UserRecord, StealOutcome, error) {
	if actor.UserID == target.UserID {
		return nil, nil, StealOutcome{}, fmt.Errorf("%w: cannot steal from yourself", ErrInvalidTarget)
	}
	if actor.activityRunning(now) {
		return nil, nil, StealOutcome{}, fmt.Errorf("%w: %s", ErrAlreadyActive, KindLabel(actor.Activity.Kind))
	}
	if remaining := actor.CooldownRemaining(CooldownSteal, cfg.stealCooldown(), now); remaining > 0 {
		return nil, nil, StealOutcome{}, fmt.Errorf("%w: %s remaining", ErrOnCooldown, FormatRemaining(remaining))
	}

	a := actor.Clone()
	t := target.Clone()

	out := StealOutcome{SuccessRate: StealSuccessRate(a.Level, cfg.Steal)}
	if rng.Float64() < out.SuccessRate {
		out.Succeeded = true
		pct := uniformFloat(rng, cfg.Steal.StealPercent[0], cfg.Steal.StealPercent[1])
		amount := int(math.Floor(float64(t.SpiritStones) * pct))
		out.Amount = t.RemoveSpiritStones(amount)
		a.AddSpiritStones(out.Amount)
		t.touch(now)
	} else {
		out.Penalty = a.RemoveSpiritStones(cfg.Steal.FailurePenalty)
	}

	a.SetCooldown(CooldownSteal, now)
	a.touch(now)
	return a, t, out, nil
}
