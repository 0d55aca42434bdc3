package cultivation

import (
	"fmt"
	"time"
)

// KindLabel maps an activity kind to its display name.
func KindLabel(kind ActivityKind) string {
	switch kind {
	case ActivityPractice:
		return "闭关修炼"
	case ActivityExplore:
		return "秘境探索"
	case ActivityMine:
		return "挖矿"
	}
	return string(kind)
}

// FormatRemaining renders a duration as "x小时y分钟z秒", dropping leading
// zero units.
func FormatRemaining(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d.Seconds())
	hours := total / 3600
	minutes := (total % 3600) / 60
	secs := total % 60
	switch {
	case hours > 0:
		return fmt.Sprintf("%d小时%d分钟%d秒", hours, minutes, secs)
	case minutes > 0:
		return fmt.Sprintf("%d分钟%d秒", minutes, secs)
	default:
		return fmt.Sprintf("%d秒", secs)
	}
}

// Begin starts an activity and returns the updated copy. A still-running
// activity rejects the request; an expired-but-uncollected one is silently
// superseded and its pending payout forfeited.
func Begin(u *UserRecord, kind ActivityKind, requestedHours float64, cfg Config, now time.Time) (*UserRecord, *ActivityState, error) {
	switch kind {
	case ActivityPractice, ActivityExplore, ActivityMine:
	default:
		return nil, nil, fmt.Errorf("%w: activity kind %q", ErrUnknownCatalogEntry, kind)
	}
	if u.activityRunning(now) {
		return nil, nil, fmt.Errorf("%w: %s", ErrAlreadyActive, KindLabel(u.Activity.Kind))
	}

	minH, maxH := cfg.DurationBounds(kind)
	unbounded := kind == ActivityPractice && requestedHours == 0
	hours := requestedHours
	if hours < minH {
		hours = minH
	}
	if hours > maxH {
		hours = maxH
	}
	if unbounded {
		hours = maxH
	}

	act := &ActivityState{
		Kind:    kind,
		StartAt: now,
		EndAt:   now.Add(time.Duration(hours * float64(time.Hour))),
	}
	if !unbounded {
		act.RewardMultiplier = hours
	}

	next := u.Clone()
	next.Activity = act
	next.touch(now)
	state := *act
	return next, &state, nil
}

// ActivityStatus is the read-only view of the state machine.
type ActivityStatus struct {
	Active    bool          `json:"active"`
	Ready     bool          `json:"ready"`
	Kind      ActivityKind  `json:"kind,omitempty"`
	EndAt     time.Time     `json:"end_at,omitempty"`
	Remaining time.Duration `json:"-"`
	Message   string        `json:"message"`
}

// StatusOf inspects the activity without mutating anything.
func StatusOf(u *UserRecord, now time.Time) ActivityStatus {
	if u.Activity == nil {
		return ActivityStatus{Message: "你当前没有进行中的状态"}
	}
	label := KindLabel(u.Activity.Kind)
	if !now.Before(u.Activity.EndAt) {
		return ActivityStatus{
			Active:  true,
			Ready:   true,
			Kind:    u.Activity.Kind,
			EndAt:   u.Activity.EndAt,
			Message: fmt.Sprintf("你的%s已经结束，可以收取奖励了", label),
		}
	}
	remaining := u.Activity.EndAt.Sub(now)
	return ActivityStatus{
		Active:    true,
		Kind:      u.Activity.Kind,
		EndAt:     u.Activity.EndAt,
		Remaining: remaining,
		Message:   fmt.Sprintf("你当前正处于%s状态，还需 %s 结束", label, FormatRemaining(remaining)),
	}
}

// Collect settles the running activity: it validates timing, resolves the
// payout on a clone, clears the activity, and returns the updated copy with
// the outcome. The stored record is untouched on error, which makes a second
// collect fail with ErrNoActivity only after the first one was persisted.
func Collect(u *UserRecord, cfg Config, rng Rand, now time.Time) (*UserRecord, ActivityOutcome, error) {
	if u.Activity == nil {
		return nil, ActivityOutcome{}, ErrNoActivity
	}
	act := u.Activity

	var mult float64
	if act.Kind == ActivityPractice {
		elapsed := now.Sub(act.StartAt)
		if elapsed.Hours() < cfg.Practice.MinCollect {
			return nil, ActivityOutcome{}, fmt.Errorf("%w: at least %s required", ErrTooShort, FormatRemaining(time.Duration(cfg.Practice.MinCollect*float64(time.Hour))))
		}
		// Realized multiplier is always wall-clock hours, capped at the
		// session's scheduled span.
		if elapsed > act.EndAt.Sub(act.StartAt) {
			elapsed = act.EndAt.Sub(act.StartAt)
		}
		mult = elapsed.Hours()
	} else {
		if now.Before(act.EndAt) {
			remaining := act.EndAt.Sub(now)
			return nil, ActivityOutcome{}, fmt.Errorf("%w: %s remaining", ErrNotYetDue, FormatRemaining(remaining))
		}
		mult = act.RewardMultiplier
	}

	next := u.Clone()
	next.Activity = nil

	var out ActivityOutcome
	switch act.Kind {
	case ActivityPractice:
		out = resolvePractice(next, cfg, mult, rng)
	case ActivityExplore:
		out = resolveExplore(next, cfg, mult, rng)
	case ActivityMine:
		out = resolveMining(next, cfg, mult, rng)
	}
	next.touch(now)
	return next, out, nil
}
