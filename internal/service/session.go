package service

import (
	"fmt"
	"sync"
	"time"

	"grimoire-be/internal/service/dto"
	"grimoire-be/internal/service/game"

	"go.uber.org/zap"
)

type SessionService struct {
	state *sessionServiceState

	newRand func() game.RandSource
}

type sessionServiceState struct {
	mu sync.RWMutex

	// 从会话 ID 到会话的映射
	sessions map[string]*session

	ttl         time.Duration
	cleanUpDone chan struct{}
}

// 一位说书人的会话，所有操作在 mu 下串行执行
type session struct {
	mu sync.Mutex

	ctx      *game.GameContext
	sortMode game.SortMode

	// 订阅者 ID 到推送通道
	subscribers map[string]chan dto.ResponseWrapper
}

// NewSessionService 创建会话服务，超过 ttl 未操作的会话会被定期清理
func NewSessionService(ttl, cleanupInterval time.Duration) *SessionService {
	state := &sessionServiceState{
		sessions:    make(map[string]*session),
		ttl:         ttl,
		cleanUpDone: make(chan struct{}),
	}

	// 启动一个 goroutine 定期清理过期的会话
	go startCleanupLoop(state, cleanupInterval)

	return &SessionService{
		state:   state,
		newRand: game.NewRandSource,
	}
}

func startCleanupLoop(state *sessionServiceState, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-state.cleanUpDone:
			return

		case now := <-ticker.C:
			state.evictExpired(now)
		}
	}
}

func (state *sessionServiceState) evictExpired(now time.Time) int {
	state.mu.Lock()
	defer state.mu.Unlock()

	evicted := 0
	for id, s := range state.sessions {
		s.mu.Lock()
		expired := isSessionExpired(s.ctx, now, state.ttl)
		if expired {
			zap.S().Infof("会话 %s 长时间未操作，开始清理", id)
			s.closeSubscribers()
		}
		s.mu.Unlock()

		if expired {
			delete(state.sessions, id)
			evicted++
		}
	}

	return evicted
}

func (ss *SessionService) Close() {
	close(ss.state.cleanUpDone)
}

func (ss *SessionService) CreateSession() dto.CreateSessionResponse {
	sessionID := game.GenID()

	s := &session{
		ctx:         game.NewGameContext(sessionID, ss.newRand()),
		sortMode:    game.SORT_SEAT,
		subscribers: make(map[string]chan dto.ResponseWrapper),
	}

	ss.state.mu.Lock()
	ss.state.sessions[sessionID] = s
	ss.state.mu.Unlock()

	zap.S().Infof("会话 %s 已创建", sessionID)

	return dto.CreateSessionResponse{SessionID: sessionID}
}

func (ss *SessionService) get(sessionID string) (*session, error) {
	ss.state.mu.RLock()
	defer ss.state.mu.RUnlock()

	s, ok := ss.state.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}

	return s, nil
}

// withSession 在会话锁内执行操作
func (ss *SessionService) withSession(sessionID string, fn func(s *session) error) error {
	s, err := ss.get(sessionID)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return fn(s)
}

func (ss *SessionService) Presets() []game.Preset {
	return game.PRESETS
}

// Setup 创建新的一局，配置无效时保留原来的名单
func (ss *SessionService) Setup(sessionID string, req dto.SetupRequest) (dto.RosterSnapshot, error) {
	counts := req.Counts
	if req.Preset != 0 {
		preset, ok := game.PresetFor(req.Preset)
		if !ok {
			return dto.RosterSnapshot{}, ErrInvalidPreset
		}
		counts = preset
	}

	var snapshot dto.RosterSnapshot

	err := ss.withSession(sessionID, func(s *session) error {
		if _, err := s.ctx.RequestSetup(counts); err != nil {
			zap.S().Debugf("会话 %s 创建游戏失败：%v", sessionID, err)
			return fmt.Errorf("创建游戏失败: %w", err)
		}

		snapshot = s.broadcastSnapshot()
		return nil
	})

	return snapshot, err
}

func (ss *SessionService) ToggleDeath(sessionID string, seat int) (dto.RosterSnapshot, error) {
	var snapshot dto.RosterSnapshot

	err := ss.withSession(sessionID, func(s *session) error {
		if err := s.checkSeat(seat); err != nil {
			return err
		}

		s.ctx.ToggleDeath(seat)
		snapshot = s.broadcastSnapshot()
		return nil
	})

	return snapshot, err
}

// TogglePoison 邪恶玩家不能被下毒，此时名单不变
func (ss *SessionService) TogglePoison(sessionID string, seat int) (dto.RosterSnapshot, error) {
	var snapshot dto.RosterSnapshot

	err := ss.withSession(sessionID, func(s *session) error {
		if err := s.checkSeat(seat); err != nil {
			return err
		}

		s.ctx.TogglePoison(seat)
		snapshot = s.broadcastSnapshot()
		return nil
	})

	return snapshot, err
}

// Roster 切换排序方式并返回名单，不修改座位数据
// mode 为空时沿用当前的排序方式
func (ss *SessionService) Roster(sessionID string, mode string) (dto.RosterSnapshot, error) {
	var sortMode game.SortMode
	if mode != "" {
		parsed, err := game.ParseSortMode(mode)
		if err != nil {
			return dto.RosterSnapshot{}, err
		}
		sortMode = parsed
	}

	var snapshot dto.RosterSnapshot

	err := ss.withSession(sessionID, func(s *session) error {
		if sortMode != "" {
			s.sortMode = sortMode
		}
		snapshot = s.snapshot()
		return nil
	})

	return snapshot, err
}

func (ss *SessionService) Roles(sessionID string) ([]dto.RoleEntry, error) {
	var roles []dto.RoleEntry

	err := ss.withSession(sessionID, func(s *session) error {
		roles = roleEntries(s.ctx.Excluded)
		return nil
	})

	return roles, err
}

func (ss *SessionService) SetExcluded(sessionID string, req dto.SetExcludedRequest) ([]dto.RoleEntry, error) {
	var roles []dto.RoleEntry

	err := ss.withSession(sessionID, func(s *session) error {
		if err := s.ctx.SetExcluded(req.RoleName, req.Excluded); err != nil {
			return err
		}

		roles = roleEntries(s.ctx.Excluded)
		s.broadcast(dto.WrapResponse(dto.RESP_ROLES, roles))
		return nil
	})

	return roles, err
}

// RevealSeat 玩家视图查看某个座位的身份，每局每个座位只能查看一次
func (ss *SessionService) RevealSeat(sessionID string, seat int) (game.SeatReveal, error) {
	var reveal game.SeatReveal

	err := ss.withSession(sessionID, func(s *session) error {
		if err := s.checkSeat(seat); err != nil {
			return err
		}

		r, err := s.ctx.RevealSeat(seat)
		if err != nil {
			return err
		}

		reveal = r
		s.broadcastSnapshot()
		return nil
	})

	return reveal, err
}

// Subscribe 订阅会话的状态推送，返回订阅 ID 和推送通道
func (ss *SessionService) Subscribe(sessionID string) (string, <-chan dto.ResponseWrapper, error) {
	subID := game.GenID()
	ch := make(chan dto.ResponseWrapper, 64)

	err := ss.withSession(sessionID, func(s *session) error {
		s.subscribers[subID] = ch

		// 新订阅者立即收到当前状态
		ch <- dto.WrapResponse(dto.RESP_ROSTER, s.snapshot())
		return nil
	})
	if err != nil {
		return "", nil, err
	}

	zap.S().Debugf("会话 %s 新增订阅者 %s", sessionID, subID)

	return subID, ch, nil
}

func (ss *SessionService) Unsubscribe(sessionID, subID string) {
	_ = ss.withSession(sessionID, func(s *session) error {
		if ch, ok := s.subscribers[subID]; ok {
			close(ch)
			delete(s.subscribers, subID)
		}
		return nil
	})
}

// HandleAction 处理 WebSocket 客户端发来的请求
// 状态变化会广播给所有订阅者，此时返回 nil
func (ss *SessionService) HandleAction(sessionID string, req dto.RequestWrapper) *dto.ResponseWrapper {
	var (
		resp *dto.ResponseWrapper
		err  error
	)

	switch req.ReqType {
	case dto.REQ_SNAPSHOT:
		resp, err = ss.rosterResp(sessionID, "")

	case dto.REQ_SORT:
		if sortReq := dto.TryUnwrapSortRequest(req); sortReq != nil {
			resp, err = ss.rosterResp(sessionID, sortReq.Mode)
		} else {
			err = ErrInvalidRequest
		}

	case dto.REQ_SETUP:
		if setupReq := dto.TryUnwrapSetupRequest(req); setupReq != nil {
			_, err = ss.Setup(sessionID, *setupReq)
		} else {
			err = ErrInvalidRequest
		}

	case dto.REQ_TOGGLE_DEATH:
		if seatReq := dto.TryUnwrapToggleDeathRequest(req); seatReq != nil {
			_, err = ss.ToggleDeath(sessionID, seatReq.Seat)
		} else {
			err = ErrInvalidRequest
		}

	case dto.REQ_TOGGLE_POISON:
		if seatReq := dto.TryUnwrapTogglePoisonRequest(req); seatReq != nil {
			_, err = ss.TogglePoison(sessionID, seatReq.Seat)
		} else {
			err = ErrInvalidRequest
		}

	case dto.REQ_SET_EXCLUDED:
		if excludedReq := dto.TryUnwrapSetExcludedRequest(req); excludedReq != nil {
			_, err = ss.SetExcluded(sessionID, *excludedReq)
		} else {
			err = ErrInvalidRequest
		}

	case dto.REQ_REVEAL_SEAT:
		if seatReq := dto.TryUnwrapRevealSeatRequest(req); seatReq != nil {
			var reveal game.SeatReveal
			reveal, err = ss.RevealSeat(sessionID, seatReq.Seat)
			if err == nil {
				r := dto.WrapResponse(dto.RESP_REVEAL, reveal)
				resp = &r
			}
		} else {
			err = ErrInvalidRequest
		}

	default:
		err = ErrInvalidRequest
	}

	if err != nil {
		zap.L().Debug(
			"处理请求失败",
			zap.String("session_id", sessionID),
			zap.String("request_type", req.ReqType),
			zap.Error(err),
		)
		r := dto.WrapErrResponse(err.Error())
		return &r
	}

	return resp
}

func (ss *SessionService) rosterResp(sessionID string, mode string) (*dto.ResponseWrapper, error) {
	snapshot, err := ss.Roster(sessionID, mode)
	if err != nil {
		return nil, err
	}

	resp := dto.WrapResponse(dto.RESP_ROSTER, snapshot)
	return &resp, nil
}
