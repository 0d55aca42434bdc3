package cultivation

import (
	"testing"
	"time"
)

func TestClone_Isolation(t *testing.T) {
	u := testUser()
	u.AddItem("灵草")
	u.AddConsumable("渡厄丹", 2)
	u.LearnTechnique("吐纳术")
	u.SetCooldown(CooldownDuel, time.Unix(1000, 0))
	u.Activity = &ActivityState{Kind: ActivityMine}

	c := u.Clone()
	c.AddItem("灵芝")
	c.Consumables["渡厄丹"] = 5
	c.LearnTechnique("御风术")
	c.Cooldowns[CooldownDuel] = 2000
	c.Activity.Kind = ActivityExplore

	if len(u.Items) != 1 || u.Consumables["渡厄丹"] != 2 || len(u.Techniques) != 1 {
		t.Fatalf("clone mutation leaked into original: %+v", u)
	}
	if u.Cooldowns[CooldownDuel] != 1000 || u.Activity.Kind != ActivityMine {
		t.Fatalf("clone mutation leaked into original: %+v", u)
	}
}

func TestSpiritStonesClampAtZero(t *testing.T) {
	u := testUser()
	u.SpiritStones = 30

	if got := u.RemoveSpiritStones(100); got != 30 {
		t.Fatalf("removed = %d, want bounded 30", got)
	}
	if u.SpiritStones != 0 {
		t.Fatalf("balance = %d, want 0", u.SpiritStones)
	}
	if got := u.RemoveSpiritStones(-5); got != 0 {
		t.Fatalf("negative debit removed %d", got)
	}
}

func TestConsumeConsumable(t *testing.T) {
	u := testUser()
	if u.ConsumeConsumable("渡厄丹") {
		t.Fatalf("consumed an item that is not owned")
	}
	u.AddConsumable("渡厄丹", 1)
	if !u.ConsumeConsumable("渡厄丹") {
		t.Fatalf("failed to consume owned item")
	}
	if _, ok := u.Consumables["渡厄丹"]; ok {
		t.Fatalf("zero-count consumable not removed")
	}
}

func TestCooldownRemaining(t *testing.T) {
	u := testUser()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	if got := u.CooldownRemaining(CooldownDuel, 10*time.Minute, now); got != 0 {
		t.Fatalf("remaining with no record = %s, want 0", got)
	}
	u.SetCooldown(CooldownDuel, now.Add(-4*time.Minute))
	if got := u.CooldownRemaining(CooldownDuel, 10*time.Minute, now); got != 6*time.Minute {
		t.Fatalf("remaining = %s, want 6m", got)
	}
	if got := u.CooldownRemaining(CooldownDuel, 3*time.Minute, now); got != 0 {
		t.Fatalf("expired remaining = %s, want 0", got)
	}
}
