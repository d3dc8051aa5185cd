package game

import (
	"fmt"

	"go.uber.org/zap"
)

// mustIndex 座位号无效属于调用方的错误，直接 panic
func mustIndex(roster Roster, seat int) int {
	idx := roster.IndexOf(seat)
	if idx < 0 {
		panic(fmt.Sprintf("座位号 %d 不存在", seat))
	}

	return idx
}

// ToggleDeath 切换死亡状态，只重新计算依赖存活状态的信息（共情者）
func ToggleDeath(rng RandSource, roster Roster, seat int, unused []string, poisonedSeat int) Roster {
	idx := mustIndex(roster, seat)

	next := roster.Clone()
	next[idx].IsDead = !next[idx].IsDead

	for i, p := range next {
		if DependsOnLiveness(p) {
			next[i].SpecialInfo = GenerateInfo(rng, p, next, unused, IsDeceptive(p, poisonedSeat))
		}
	}

	return next
}

// TogglePoison 切换中毒目标，邪恶玩家不能被下毒
// 只重新计算中毒状态发生变化的玩家，返回新名单和新的中毒座位
func TogglePoison(rng RandSource, roster Roster, seat int, unused []string, poisonedSeat int) (Roster, int) {
	idx := mustIndex(roster, seat)

	if roster[idx].Role.Type.IsEvil() {
		return roster, poisonedSeat
	}

	nextPoisoned := seat
	if poisonedSeat == seat {
		nextPoisoned = 0
	}

	next := roster.Clone()
	for i, p := range next {
		if p.Number != seat && p.Number != poisonedSeat {
			continue
		}
		next[i].SpecialInfo = GenerateInfo(rng, p, next, unused, IsDeceptive(p, nextPoisoned))
	}

	return next, nextPoisoned
}

// ToggleDeath 在当前会话名单上切换死亡状态
func (gc *GameContext) ToggleDeath(seat int) Roster {
	gc.Roster = ToggleDeath(gc.Rand, gc.Roster, seat, gc.UnusedGoodRoles, gc.PoisonedSeat)
	gc.touch()

	zap.L().Debug(
		"切换死亡状态",
		zap.String("session_id", gc.SessionID),
		zap.Int("seat", seat),
	)

	return gc.Roster
}

// TogglePoison 在当前会话名单上切换中毒状态，邪恶玩家不受影响
func (gc *GameContext) TogglePoison(seat int) Roster {
	gc.Roster, gc.PoisonedSeat = TogglePoison(gc.Rand, gc.Roster, seat, gc.UnusedGoodRoles, gc.PoisonedSeat)
	gc.touch()

	zap.L().Debug(
		"切换中毒状态",
		zap.String("session_id", gc.SessionID),
		zap.Int("seat", seat),
		zap.Int("poisoned_seat", gc.PoisonedSeat),
	)

	return gc.Roster
}
