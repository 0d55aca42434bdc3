package cultivation

import "math"

// rewardParams is the shared payout formula input:
// value = floor(base*mult + level*levelFactor + U(randomRange)), optionally
// tripled on a critical roll, clamped to minValue.
type rewardParams struct {
	Base        float64
	LevelFactor float64
	RandomRange [2]int
	CritChance  float64
	CritMult    float64
	MinValue    int
}

func resolveReward(p rewardParams, level int, mult float64, rng Rand) (value int, critical bool) {
	raw := p.Base*mult + float64(level)*p.LevelFactor + float64(uniformInt(rng, p.RandomRange[0], p.RandomRange[1]))
	value = int(math.Floor(raw))
	if p.CritChance > 0 && rng.Float64() < p.CritChance {
		value = int(float64(value) * p.CritMult)
		critical = true
	}
	if value < p.MinValue {
		value = p.MinValue
	}
	return value, critical
}

// scaleByMult scales a payout by the session multiplier, keeping at least 1
// for positive inputs so long sessions never round a reward to nothing.
func scaleByMult(v int, mult float64) int {
	if v <= 0 {
		return 0
	}
	scaled := int(math.Floor(float64(v) * mult))
	if scaled < 1 {
		scaled = 1
	}
	return scaled
}

// resolvePractice applies a practice payout to u in place.
func resolvePractice(u *UserRecord, cfg Config, mult float64, rng Rand) ActivityOutcome {
	value, crit := resolveReward(rewardParams{
		Base:        cfg.Practice.BaseExpPerHour,
		LevelFactor: cfg.Practice.LevelFactor,
		RandomRange: cfg.Practice.RandomRange,
		CritChance:  cfg.Practice.CriticalChance,
		CritMult:    cfg.Practice.CriticalMult,
	}, u.Level, mult, rng)
	u.GainExperience(value)
	return ActivityOutcome{
		Kind:       ActivityPractice,
		Multiplier: mult,
		ExpGain:    value,
		Critical:   crit,
	}
}

// resolveMining applies a mining payout to u in place.
func resolveMining(u *UserRecord, cfg Config, mult float64, rng Rand) ActivityOutcome {
	value, crit := resolveReward(rewardParams{
		Base:        cfg.Mining.BaseStones,
		LevelFactor: cfg.Mining.LevelFactor,
		RandomRange: cfg.Mining.RandomRange,
		CritChance:  cfg.Mining.CriticalChance,
		CritMult:    cfg.Mining.CriticalMult,
		MinValue:    cfg.Mining.MinStones,
	}, u.Level, mult, rng)
	u.AddSpiritStones(value)
	return ActivityOutcome{
		Kind:       ActivityMine,
		Multiplier: mult,
		StonesGain: value,
		Critical:   crit,
	}
}

// resolveExplore rolls the punishment gate first, then one of the four event
// branches, mutating u in place.
func resolveExplore(u *UserRecord, cfg Config, mult float64, rng Rand) ActivityOutcome {
	out := ActivityOutcome{Kind: ActivityExplore, Multiplier: mult}
	ex := cfg.Explore

	if rng.Float64() < ex.PunishmentChance {
		out.Punishment = true
		out.PunishmentEvent = pickString(rng, ex.PunishmentEvents)
		stonesLoss := uniformInt(rng, u.Level*ex.StonesLossMultiplier[0], u.Level*ex.StonesLossMultiplier[1])
		expLoss := uniformInt(rng, u.Level*ex.ExpLossMultiplier[0], u.Level*ex.ExpLossMultiplier[1])
		out.StonesLost = u.RemoveSpiritStones(stonesLoss)
		out.ExpLost = u.LoseExperience(expLoss)
		return out
	}

	switch rng.Intn(4) {
	case 0:
		out.ExploreEvent = ExploreTreasure
		stones := scaleByMult(uniformInt(rng, u.Level*ex.TreasureStonesPerLevel[0], u.Level*ex.TreasureStonesPerLevel[1]), mult)
		u.AddSpiritStones(stones)
		out.StonesGain = stones
	case 1:
		out.ExploreEvent = ExploreHerb
		count := int(math.Round(mult)) + uniformInt(rng, 0, 2)
		if count < 1 {
			count = 1
		}
		if count > len(ex.Herbs) {
			count = len(ex.Herbs)
		}
		found := sampleStrings(rng, ex.Herbs, count)
		for _, h := range found {
			u.AddItem(h)
		}
		out.ItemsGained = found
	case 2:
		out.ExploreEvent = ExploreMonster
		out.Monster = pickString(rng, ex.Monsters)
		monsterLevel := uniformInt(rng, max(1, u.Level-ex.MonsterLevelSpread), u.Level+ex.MonsterLevelSpread)
		winChance := ex.MonsterBaseChance + float64(u.Level-monsterLevel)*ex.MonsterLevelWeight
		winChance = clampFloat(winChance, ex.MonsterMinChance, ex.MonsterMaxChance)
		if rng.Float64() < winChance {
			out.MonsterDefeated = true
			exp := scaleByMult(monsterLevel*uniformInt(rng, ex.MonsterExpPerLvl[0], ex.MonsterExpPerLvl[1]), mult)
			stones := scaleByMult(monsterLevel*uniformInt(rng, ex.MonsterStonesLvl[0], ex.MonsterStonesLvl[1]), mult)
			u.GainExperience(exp)
			u.AddSpiritStones(stones)
			out.ExpGain = exp
			out.StonesGain = stones
		}
	default:
		out.ExploreEvent = ExploreOpportunity
		out.Opportunity = pickString(rng, ex.Opportunities)
		exp := scaleByMult(u.Level*uniformInt(rng, ex.OpportunityExpLvl[0], ex.OpportunityExpLvl[1]), mult)
		u.GainExperience(exp)
		out.ExpGain = exp
		if rng.Float64() < clampFloat(ex.TechniqueChance*mult, 0, 1) {
			if t := pickUnlearned(rng, ex.Techniques, u); t != "" {
				u.LearnTechnique(t)
				out.TechniqueLearned = t
			}
		}
	}
	return out
}

func pickUnlearned(rng Rand, techniques []string, u *UserRecord) string {
	available := make([]string, 0, len(techniques))
	for _, t := range techniques {
		if !u.HasTechnique(t) {
			available = append(available, t)
		}
	}
	return pickString(rng, available)
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
