package service

import (
	"time"

	"grimoire-be/internal/service/dto"
	"grimoire-be/internal/service/game"

	"go.uber.org/zap"
)

func isSessionExpired(ctx *game.GameContext, now time.Time, ttl time.Duration) bool {
	if ctx == nil {
		return true
	}

	return now.Sub(ctx.UpdatedAt) > ttl
}

func (s *session) checkSeat(seat int) error {
	if len(s.ctx.Roster) == 0 {
		return ErrNoRoster
	}

	if !s.ctx.HasSeat(seat) {
		return ErrSeatNotFound
	}

	return nil
}

// snapshot 按当前排序方式生成名单快照，调用方需持有会话锁
func (s *session) snapshot() dto.RosterSnapshot {
	sorted, err := s.ctx.Sorted(s.sortMode)
	if err != nil {
		// sortMode 只会被设置为合法值
		sorted = s.ctx.Roster.Clone()
	}

	viewed := make(map[int]bool)
	for _, seat := range s.ctx.ViewedSeats() {
		viewed[seat] = true
	}

	players := make([]dto.PlayerView, 0, len(sorted))
	for _, p := range sorted {
		players = append(players, dto.PlayerView{
			Player:      p,
			DisplayName: p.DisplayName(),
			TypeLabel:   p.Role.Type.Label(),
			IsPoisoned:  p.Number == s.ctx.PoisonedSeat,
			IsViewed:    viewed[p.Number],
		})
	}

	unused := s.ctx.UnusedGoodRoles
	if unused == nil {
		unused = make([]string, 0)
	}

	return dto.RosterSnapshot{
		SessionID:       s.ctx.SessionID,
		SortMode:        string(s.sortMode),
		Players:         players,
		PoisonedSeat:    s.ctx.PoisonedSeat,
		UnusedGoodRoles: unused,
		Tally:           s.ctx.Roster.Tally(),
	}
}

func (s *session) broadcastSnapshot() dto.RosterSnapshot {
	snapshot := s.snapshot()
	s.broadcast(dto.WrapResponse(dto.RESP_ROSTER, snapshot))
	return snapshot
}

func (s *session) broadcast(resp dto.ResponseWrapper) {
	for subID, ch := range s.subscribers {
		select {
		case ch <- resp:
			zap.L().Debug(
				"成功发送广播响应",
				zap.String("session_id", s.ctx.SessionID),
				zap.String("subscriber_id", subID),
				zap.String("response_type", resp.RespType),
			)
		default:
			zap.L().Warn(
				"发送广播响应失败：订阅者通道已满",
				zap.String("session_id", s.ctx.SessionID),
				zap.String("subscriber_id", subID),
			)
		}
	}
}

func (s *session) closeSubscribers() {
	for subID, ch := range s.subscribers {
		select {
		case ch <- dto.WrapResponse(dto.RESP_CLOSED, nil):
		default:
		}
		close(ch)
		delete(s.subscribers, subID)
	}
}

func roleEntries(excluded game.ExcludedSet) []dto.RoleEntry {
	roles := make([]dto.RoleEntry, 0)
	for _, r := range game.ListExcludable() {
		roles = append(roles, dto.RoleEntry{
			Category:      r.Category,
			CategoryLabel: r.Category.Label(),
			RoleName:      r.RoleName,
			Excluded:      excluded.Has(r.RoleName),
		})
	}

	return roles
}
