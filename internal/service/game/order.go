package game

import (
	"slices"
)

// 名单排序方式
type SortMode string

const (
	SORT_SEAT         SortMode = "seat"
	SORT_FIRST_NIGHT  SortMode = "firstNight"
	SORT_OTHER_NIGHTS SortMode = "otherNights"
)

func ParseSortMode(s string) (SortMode, error) {
	switch SortMode(s) {
	case "", SORT_SEAT:
		return SORT_SEAT, nil
	case SORT_FIRST_NIGHT:
		return SORT_FIRST_NIGHT, nil
	case SORT_OTHER_NIGHTS:
		return SORT_OTHER_NIGHTS, nil
	}

	return "", ErrInvalidSortMode
}

// 第一夜行动顺序，爪牙与恶魔按类型单独排在最前
var FIRST_NIGHT_ORDER = []string{
	ROLE_POISONER,
	ROLE_WASHERWOMAN,
	ROLE_LIBRARIAN,
	ROLE_INVESTIGATOR,
	ROLE_CHEF,
	ROLE_EMPATH,
	ROLE_FORTUNE_TELLER,
	ROLE_BUTLER,
	ROLE_SPY,
}

var OTHER_NIGHTS_ORDER = []string{
	ROLE_POISONER,
	ROLE_MONK,
	ROLE_SCARLET_WOMAN,
	ROLE_IMP,
	ROLE_RAVENKEEPER,
	ROLE_EMPATH,
	ROLE_FORTUNE_TELLER,
	ROLE_BUTLER,
	ROLE_UNDERTAKER,
	ROLE_SPY,
}

// SortRoster 返回排序后的新名单，不修改原名单
// 夜晚顺序按玩家实际生效的身份排序，酒鬼按他以为的角色被唤醒
func SortRoster(roster Roster, mode SortMode) (Roster, error) {
	sorted := roster.Clone()

	switch mode {
	case SORT_SEAT:
		slices.SortFunc(sorted, bySeat)
	case SORT_FIRST_NIGHT:
		slices.SortFunc(sorted, nightOrder(FIRST_NIGHT_ORDER, true))
	case SORT_OTHER_NIGHTS:
		slices.SortFunc(sorted, nightOrder(OTHER_NIGHTS_ORDER, false))
	default:
		return nil, ErrInvalidSortMode
	}

	return sorted, nil
}

func bySeat(a, b Player) int {
	return a.Number - b.Number
}

// typeRank 第一夜爪牙最先，其次恶魔，其余按列表
func typeRank(p Player) int {
	switch p.Role.Type {
	case TYPE_MINION:
		return 0
	case TYPE_DEMON:
		return 1
	}

	return 2
}

func nightOrder(order []string, typeFirst bool) func(a, b Player) int {
	// 不在列表中的角色排在最后
	position := func(p Player) int {
		idx := slices.Index(order, p.EffectiveRole().Name)
		if idx < 0 {
			return len(order)
		}

		return idx
	}

	return func(a, b Player) int {
		if typeFirst {
			if d := typeRank(a) - typeRank(b); d != 0 {
				return d
			}
		}

		if d := position(a) - position(b); d != 0 {
			return d
		}

		return bySeat(a, b)
	}
}
