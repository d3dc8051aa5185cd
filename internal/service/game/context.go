package game

import (
	"time"

	"go.uber.org/zap"
)

// GameContext 一位说书人的会话状态
// 排除角色跨局保留，名单每局整体重建
type GameContext struct {
	SessionID string
	Rand      RandSource
	Excluded  ExcludedSet

	Roster          Roster
	PoisonedSeat    int
	UnusedGoodRoles []string
	// 玩家视图中已经查看过身份的座位
	Viewed map[int]struct{}

	CreatedAt time.Time
	UpdatedAt time.Time
}

func NewGameContext(sessionID string, rng RandSource) *GameContext {
	if rng == nil {
		rng = NewRandSource()
	}

	now := time.Now()

	return &GameContext{
		SessionID: sessionID,
		Rand:      rng,
		Excluded:  NewExcludedSet(),
		Viewed:    make(map[int]struct{}),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// SetExcluded 切换某个角色是否从牌堆中排除
func (gc *GameContext) SetExcluded(name string, excluded bool) error {
	if _, ok := LookupRole(name); !ok {
		return ErrUnknownRole
	}

	if excluded {
		gc.Excluded[name] = struct{}{}
	} else {
		delete(gc.Excluded, name)
	}

	gc.touch()

	zap.L().Debug(
		"更新排除角色",
		zap.String("session_id", gc.SessionID),
		zap.String("role", name),
		zap.Bool("excluded", excluded),
	)

	return nil
}

// RequestSetup 创建新的一局，失败时保留原有名单不变
func (gc *GameContext) RequestSetup(counts PlayerCounts) (Roster, error) {
	result, err := Setup(gc.Rand, counts, gc.Excluded)
	if err != nil {
		return nil, err
	}

	gc.Roster = result.Roster
	gc.UnusedGoodRoles = result.UnusedGoodRoles
	gc.PoisonedSeat = 0
	gc.Viewed = make(map[int]struct{})
	gc.touch()

	zap.L().Info(
		"新的一局已创建",
		zap.String("session_id", gc.SessionID),
		zap.Int("players", len(gc.Roster)),
	)

	return gc.Roster, nil
}

// Sorted 返回排序后的名单视图
func (gc *GameContext) Sorted(mode SortMode) (Roster, error) {
	return SortRoster(gc.Roster, mode)
}

func (gc *GameContext) HasSeat(seat int) bool {
	return gc.Roster.HasSeat(seat)
}

func (gc *GameContext) touch() {
	gc.UpdatedAt = time.Now()
}
