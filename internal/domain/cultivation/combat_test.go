package cultivation

import (
	"errors"
	"testing"
	"time"
)

func duelists() (*UserRecord, *UserRecord) {
	a := testUser()
	b := NewUserRecord("u2", DefaultConfig())
	b.Started = true
	b.Username = "李四"
	return a, b
}

func TestDuelWinChance_EqualPowerIsBase(t *testing.T) {
	cfg := DefaultConfig()
	if got := DuelWinChance(30, 30, cfg.Duel); got != cfg.Duel.BaseChance {
		t.Fatalf("equal-power chance = %v, want %v", got, cfg.Duel.BaseChance)
	}
}

func TestDuelWinChance_Clamped(t *testing.T) {
	// The default diff weight of 0.3 keeps the raw formula inside
	// [0.2, 0.8]; a weight of 1.0 pushes it past both clamp bounds.
	tuning := DefaultConfig().Duel
	tuning.PowerDiffWeight = 1.0
	if got := DuelWinChance(1000, 1, tuning); got != tuning.MaxChance {
		t.Fatalf("overwhelming chance = %v, want clamp %v", got, tuning.MaxChance)
	}
	if got := DuelWinChance(1, 1000, tuning); got != tuning.MinChance {
		t.Fatalf("hopeless chance = %v, want clamp %v", got, tuning.MinChance)
	}
}

func TestResolveDuel_ActorWins(t *testing.T) {
	cfg := DefaultConfig()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	a, b := duelists()
	a.Experience = 100
	b.Experience = 100
	b.Level = 3

	// Intn(21)=0 keeps the exp roll at its floor of 10; win roll passes.
	nextA, nextB, out, err := ResolveDuel(a, b, cfg, &scriptRand{ints: []int{0}, floats: []float64{0.01}}, now)
	if err != nil {
		t.Fatalf("duel: %v", err)
	}
	if !out.ActorWon {
		t.Fatalf("outcome = %+v, want actor win", out)
	}
	wantDelta := 10 * 3 // range floor times the higher level
	if out.ExpDelta != wantDelta {
		t.Fatalf("delta = %d, want %d", out.ExpDelta, wantDelta)
	}
	if nextA.Experience != 100+wantDelta {
		t.Fatalf("winner exp = %d, want %d", nextA.Experience, 100+wantDelta)
	}
	if nextB.Experience != 100-wantDelta/2 {
		t.Fatalf("loser exp = %d, want %d", nextB.Experience, 100-wantDelta/2)
	}
	if nextA.Cooldowns[CooldownDuel] != now.Unix() {
		t.Fatalf("actor cooldown not set")
	}
	if _, ok := nextB.Cooldowns[CooldownDuel]; ok {
		t.Fatalf("target should not take the cooldown")
	}
}

func TestResolveDuel_LoserExpFloorsAtZero(t *testing.T) {
	cfg := DefaultConfig()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	a, b := duelists()
	a.Experience = 3

	// Win roll fails; actor is the loser with almost no experience to give.
	nextA, _, out, err := ResolveDuel(a, b, cfg, &scriptRand{ints: []int{0}, floats: []float64{0.99}}, now)
	if err != nil {
		t.Fatalf("duel: %v", err)
	}
	if out.ActorWon {
		t.Fatalf("expected actor loss")
	}
	if nextA.Experience != 0 {
		t.Fatalf("loser exp = %d, want clamp at 0", nextA.Experience)
	}
	if out.LoserLoss != 3 {
		t.Fatalf("loser loss = %d, want bounded 3", out.LoserLoss)
	}
}

func TestResolveDuel_Guards(t *testing.T) {
	cfg := DefaultConfig()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	a, b := duelists()
	if _, _, _, err := ResolveDuel(a, a, cfg, &scriptRand{}, now); !errors.Is(err, ErrInvalidTarget) {
		t.Fatalf("self duel err = %v, want ErrInvalidTarget", err)
	}

	a.SetCooldown(CooldownDuel, now.Add(-time.Minute))
	if _, _, _, err := ResolveDuel(a, b, cfg, &scriptRand{}, now); !errors.Is(err, ErrOnCooldown) {
		t.Fatalf("cooldown err = %v, want ErrOnCooldown", err)
	}
}

func TestStealSuccessRate_Capped(t *testing.T) {
	cfg := DefaultConfig()
	if got := StealSuccessRate(1, cfg.Steal); got != 0.3+0.004 {
		t.Fatalf("level 1 rate = %v, want 0.304", got)
	}
	if got := StealSuccessRate(500, cfg.Steal); got != cfg.Steal.MaxSuccessRate {
		t.Fatalf("high level rate = %v, want cap %v", got, cfg.Steal.MaxSuccessRate)
	}
}

func TestResolveSteal_SuccessTransfersBoundedAmount(t *testing.T) {
	cfg := DefaultConfig()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	a, b := duelists()
	b.SpiritStones = 1000

	// Success roll passes; percent rolls the 20% ceiling.
	nextA, nextB, out, err := ResolveSteal(a, b, cfg, &scriptRand{floats: []float64{0.01, 1}}, now)
	if err != nil {
		t.Fatalf("steal: %v", err)
	}
	if !out.Succeeded {
		t.Fatalf("outcome = %+v, want success", out)
	}
	if out.Amount <= 0 || out.Amount > 200 {
		t.Fatalf("amount = %d, want within (0,200]", out.Amount)
	}
	if nextA.SpiritStones != a.SpiritStones+out.Amount {
		t.Fatalf("actor balance = %d", nextA.SpiritStones)
	}
	if nextB.SpiritStones != 1000-out.Amount {
		t.Fatalf("target balance = %d", nextB.SpiritStones)
	}
}

func TestResolveSteal_FailurePenaltyBoundedByBalance(t *testing.T) {
	cfg := DefaultConfig()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	a, b := duelists()
	a.SpiritStones = 80

	nextA, nextB, out, err := ResolveSteal(a, b, cfg, &scriptRand{floats: []float64{0.99}}, now)
	if err != nil {
		t.Fatalf("steal: %v", err)
	}
	if out.Succeeded {
		t.Fatalf("expected failure")
	}
	if out.Penalty != 80 || nextA.SpiritStones != 0 {
		t.Fatalf("penalty = %d, balance = %d, want 80 and 0", out.Penalty, nextA.SpiritStones)
	}
	if nextB.SpiritStones != b.SpiritStones {
		t.Fatalf("target balance changed on failed steal")
	}
	if nextA.Cooldowns[CooldownSteal] != now.Unix() {
		t.Fatalf("cooldown not set on failure")
	}
}

func TestResolveSteal_Guards(t *testing.T) {
	cfg := DefaultConfig()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	a, b := duelists()
	if _, _, _, err := ResolveSteal(a, a, cfg, &scriptRand{}, now); !errors.Is(err, ErrInvalidTarget) {
		t.Fatalf("self steal err = %v, want ErrInvalidTarget", err)
	}

	a.SetCooldown(CooldownSteal, now.Add(-time.Minute))
	if _, _, _, err := ResolveSteal(a, b, cfg, &scriptRand{}, now); !errors.Is(err, ErrOnCooldown) {
		t.Fatalf("cooldown err = %v, want ErrOnCooldown", err)
	}
}

func TestResolveDuel_RejectedWhileActorActivityRunning(t *testing.T) {
	cfg := DefaultConfig()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	a, b := duelists()
	a.Activity = &ActivityState{
		Kind:             ActivityPractice,
		StartAt:          now.Add(-time.Hour),
		EndAt:            now.Add(time.Hour),
		RewardMultiplier: 2,
	}

	if _, _, _, err := ResolveDuel(a, b, cfg, &scriptRand{}, now); !errors.Is(err, ErrAlreadyActive) {
		t.Fatalf("duel while practicing err = %v, want ErrAlreadyActive", err)
	}

	// Expiry unblocks without collecting.
	a.Activity.EndAt = now.Add(-time.Minute)
	if _, _, _, err := ResolveDuel(a, b, cfg, &scriptRand{ints: []int{0}, floats: []float64{0.01}}, now); err != nil {
		t.Fatalf("duel after expiry: %v", err)
	}
}

func TestResolveSteal_RejectedWhileActorActivityRunning(t *testing.T) {
	cfg := DefaultConfig()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	a, b := duelists()
	a.Activity = &ActivityState{
		Kind:             ActivityExplore,
		StartAt:          now.Add(-time.Hour),
		EndAt:            now.Add(time.Hour),
		RewardMultiplier: 2,
	}

	if _, _, _, err := ResolveSteal(a, b, cfg, &scriptRand{}, now); !errors.Is(err, ErrAlreadyActive) {
		t.Fatalf("steal while exploring err = %v, want ErrAlreadyActive", err)
	}
}
