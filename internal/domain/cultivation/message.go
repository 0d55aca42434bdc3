package cultivation

import (
	"fmt"
	"strings"
)

// OutcomeMessage renders an activity payout as the player-facing completion
// text, also used by the scheduler's notification push.
func OutcomeMessage(out ActivityOutcome) string {
	switch out.Kind {
	case ActivityPractice:
		if out.Critical {
			return fmt.Sprintf("闭关修炼结束，顿悟天机，获得 %d 点修为！", out.ExpGain)
		}
		return fmt.Sprintf("闭关修炼结束，获得 %d 点修为！", out.ExpGain)
	case ActivityMine:
		if out.Critical {
			return fmt.Sprintf("挖矿结束，挖到了罕见的灵石矿脉，获得 %d 灵石！", out.StonesGain)
		}
		return fmt.Sprintf("挖矿结束，获得 %d 灵石！", out.StonesGain)
	case ActivityExplore:
		return exploreMessage(out)
	}
	return ""
}

func exploreMessage(out ActivityOutcome) string {
	if out.Punishment {
		return fmt.Sprintf("你在秘境中%s，损失了 %d 灵石和 %d 点修为...", out.PunishmentEvent, out.StonesLost, out.ExpLost)
	}
	switch out.ExploreEvent {
	case ExploreTreasure:
		return fmt.Sprintf("你在秘境中发现了一处宝藏，获得了 %d 灵石！", out.StonesGain)
	case ExploreHerb:
		return fmt.Sprintf("你在秘境中发现了珍贵的草药：%s！", strings.Join(out.ItemsGained, "、"))
	case ExploreMonster:
		if out.MonsterDefeated {
			return fmt.Sprintf("你在秘境中遇到了%s，经过一番激战成功将其击败，获得 %d 点修为和 %d 灵石！", out.Monster, out.ExpGain, out.StonesGain)
		}
		return fmt.Sprintf("你在秘境中遇到了%s，不敌其强大的实力，被迫撤退...", out.Monster)
	case ExploreOpportunity:
		if out.TechniqueLearned != "" {
			return fmt.Sprintf("你在秘境中%s，获得 %d 点修为，并习得了%s！", out.Opportunity, out.ExpGain, out.TechniqueLearned)
		}
		return fmt.Sprintf("你在秘境中%s，获得 %d 点修为！", out.Opportunity, out.ExpGain)
	}
	return ""
}
