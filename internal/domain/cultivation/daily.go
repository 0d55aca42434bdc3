package cultivation

import (
	"fmt"
	"time"
)

func sameCalendarDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// ResolveDailyClaim grants the daily sign-in reward on a clone of u. The
// streak continues only when the previous claim was yesterday; any gap
// resets it to one. Claims dedupe on the calendar-day boundary, not on a
// rolling 24h window.
func ResolveDailyClaim(u *UserRecord, cfg Config, now time.Time) (*UserRecord, DailyOutcome, error) {
	// Day boundaries follow the caller clock's location.
	last := time.Unix(u.LastDailyAt, 0).In(now.Location())
	if u.LastDailyAt > 0 && sameCalendarDay(last, now) {
		return nil, DailyOutcome{}, fmt.Errorf("%w: already claimed today", ErrOnCooldown)
	}

	work := u.Clone()
	streak := 1
	if u.LastDailyAt > 0 && sameCalendarDay(last.AddDate(0, 0, 1), now) {
		streak = u.DailyStreak + 1
	}

	bonus := streak * cfg.Daily.StreakBonusPerDay
	if bonus > cfg.Daily.MaxStreakBonus {
		bonus = cfg.Daily.MaxStreakBonus
	}
	out := DailyOutcome{
		Streak:     streak,
		StonesGain: cfg.Daily.BaseStones + bonus,
		ExpGain:    u.Level * cfg.Daily.ExpPerLevel,
	}

	work.DailyStreak = streak
	work.LastDailyAt = now.Unix()
	work.AddSpiritStones(out.StonesGain)
	work.GainExperience(out.ExpGain)
	work.touch(now)
	return work, out, nil
}
