package cultivation

import (
	"errors"
	"testing"
	"time"
)

// scriptRand replays queued values, falling back to zero when exhausted so
// probability gates with threshold > 0 pass by default.
type scriptRand struct {
	floats []float64
	ints   []int
}

func (r *scriptRand) Float64() float64 {
	if len(r.floats) == 0 {
		return 0
	}
	v := r.floats[0]
	r.floats = r.floats[1:]
	return v
}

func (r *scriptRand) Intn(n int) int {
	if len(r.ints) == 0 {
		return 0
	}
	v := r.ints[0]
	r.ints = r.ints[1:]
	if v >= n {
		v = n - 1
	}
	return v
}

func testUser() *UserRecord {
	u := NewUserRecord("u1", DefaultConfig())
	u.Started = true
	u.Username = "张三"
	return u
}

func TestBegin_RejectsWhileActive(t *testing.T) {
	cfg := DefaultConfig()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	u := testUser()
	next, state, err := Begin(u, ActivityMine, 2, cfg, now)
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	if state.RewardMultiplier != 2 {
		t.Fatalf("multiplier = %v, want 2", state.RewardMultiplier)
	}
	if got := state.EndAt; !got.Equal(now.Add(2 * time.Hour)) {
		t.Fatalf("endAt = %s, want %s", got, now.Add(2*time.Hour))
	}

	if _, _, err := Begin(next, ActivityPractice, 1, cfg, now.Add(time.Hour)); !errors.Is(err, ErrAlreadyActive) {
		t.Fatalf("second begin err = %v, want ErrAlreadyActive", err)
	}
}

func TestBegin_SupersedesExpiredUncollected(t *testing.T) {
	cfg := DefaultConfig()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	u := testUser()
	next, _, err := Begin(u, ActivityMine, 1, cfg, now)
	if err != nil {
		t.Fatalf("begin: %v", err)
	}

	later := now.Add(90 * time.Minute)
	next2, state, err := Begin(next, ActivityExplore, 1, cfg, later)
	if err != nil {
		t.Fatalf("begin after expiry: %v", err)
	}
	if state.Kind != ActivityExplore {
		t.Fatalf("kind = %s, want explore", state.Kind)
	}
	if next2.Activity.Kind != ActivityExplore {
		t.Fatalf("stored kind = %s, want explore", next2.Activity.Kind)
	}
}

func TestBegin_ClampsDuration(t *testing.T) {
	cfg := DefaultConfig()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	_, state, err := Begin(testUser(), ActivityMine, 100, cfg, now)
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	if state.RewardMultiplier != cfg.Mining.MaxDurationHours {
		t.Fatalf("multiplier = %v, want clamp to %v", state.RewardMultiplier, cfg.Mining.MaxDurationHours)
	}
}

func TestBegin_UnboundedPractice(t *testing.T) {
	cfg := DefaultConfig()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	_, state, err := Begin(testUser(), ActivityPractice, 0, cfg, now)
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	if state.RewardMultiplier != 0 {
		t.Fatalf("multiplier = %v, want 0 for unbounded", state.RewardMultiplier)
	}
	if !state.EndAt.Equal(now.Add(time.Duration(cfg.Practice.MaxDurationHours * float64(time.Hour)))) {
		t.Fatalf("endAt = %s, want start+max", state.EndAt)
	}
}

func TestCollect_NoActivity(t *testing.T) {
	if _, _, err := Collect(testUser(), DefaultConfig(), &scriptRand{}, time.Now()); !errors.Is(err, ErrNoActivity) {
		t.Fatalf("err = %v, want ErrNoActivity", err)
	}
}

func TestCollect_NotYetDueForMining(t *testing.T) {
	cfg := DefaultConfig()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	next, _, err := Begin(testUser(), ActivityMine, 2, cfg, now)
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	if _, _, err := Collect(next, cfg, &scriptRand{}, now.Add(time.Hour)); !errors.Is(err, ErrNotYetDue) {
		t.Fatalf("err = %v, want ErrNotYetDue", err)
	}
}

func TestCollect_PracticeTooShort(t *testing.T) {
	cfg := DefaultConfig()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	next, _, err := Begin(testUser(), ActivityPractice, 0, cfg, now)
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	if _, _, err := Collect(next, cfg, &scriptRand{}, now.Add(3*time.Minute)); !errors.Is(err, ErrTooShort) {
		t.Fatalf("err = %v, want ErrTooShort", err)
	}
	if _, _, err := Collect(next, cfg, &scriptRand{}, now.Add(6*time.Minute)); err != nil {
		t.Fatalf("collect past floor: %v", err)
	}
}

func TestCollect_PracticeMultiplierIsElapsedHours(t *testing.T) {
	cfg := DefaultConfig()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	next, _, err := Begin(testUser(), ActivityPractice, 4, cfg, now)
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	// Collect after 2h of a 4h session: realized multiplier is 2.
	_, out, err := Collect(next, cfg, &scriptRand{}, now.Add(2*time.Hour))
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	if out.Multiplier != 2 {
		t.Fatalf("multiplier = %v, want 2", out.Multiplier)
	}
}

func TestCollect_ClearsActivityAndPaysOnce(t *testing.T) {
	cfg := DefaultConfig()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	next, _, err := Begin(testUser(), ActivityMine, 1, cfg, now)
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	settled, out, err := Collect(next, cfg, &scriptRand{floats: []float64{0.99}}, now.Add(time.Hour))
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	if settled.Activity != nil {
		t.Fatalf("activity not cleared after collect")
	}
	if out.StonesGain < cfg.Mining.MinStones {
		t.Fatalf("stones gain %d below floor %d", out.StonesGain, cfg.Mining.MinStones)
	}
	if settled.SpiritStones != next.SpiritStones+out.StonesGain {
		t.Fatalf("balance = %d, want %d", settled.SpiritStones, next.SpiritStones+out.StonesGain)
	}
	if _, _, err := Collect(settled, cfg, &scriptRand{}, now.Add(2*time.Hour)); !errors.Is(err, ErrNoActivity) {
		t.Fatalf("second collect err = %v, want ErrNoActivity", err)
	}
}

func TestStatusOf(t *testing.T) {
	cfg := DefaultConfig()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	idle := StatusOf(testUser(), now)
	if idle.Active || idle.Ready {
		t.Fatalf("idle status = %+v", idle)
	}

	next, _, err := Begin(testUser(), ActivityMine, 2, cfg, now)
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	running := StatusOf(next, now.Add(30*time.Minute))
	if !running.Active || running.Ready {
		t.Fatalf("running status = %+v", running)
	}
	if running.Remaining != 90*time.Minute {
		t.Fatalf("remaining = %s, want 90m", running.Remaining)
	}

	ready := StatusOf(next, now.Add(3*time.Hour))
	if !ready.Active || !ready.Ready {
		t.Fatalf("ready status = %+v", ready)
	}
}

func TestFormatRemaining(t *testing.T) {
	cases := []struct {
		d    time.Duration
		want string
	}{
		{2*time.Hour + 30*time.Minute + 15*time.Second, "2小时30分钟15秒"},
		{5*time.Minute + 3*time.Second, "5分钟3秒"},
		{42 * time.Second, "42秒"},
		{-time.Second, "0秒"},
	}
	for _, c := range cases {
		if got := FormatRemaining(c.d); got != c.want {
			t.Fatalf("FormatRemaining(%s) = %q, want %q", c.d, got, c.want)
		}
	}
}
