package service

import (
	"encoding/json"
	"math/rand/v2"
	"testing"
	"time"

	"grimoire-be/internal/service/dto"
	"grimoire-be/internal/service/game"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) *SessionService {
	t.Helper()

	ss := NewSessionService(time.Hour, time.Hour)
	ss.newRand = func() game.RandSource {
		return rand.New(rand.NewPCG(1, 2))
	}
	t.Cleanup(ss.Close)

	return ss
}

func mustRaw(t *testing.T, v any) json.RawMessage {
	t.Helper()

	data, err := json.Marshal(v)
	require.NoError(t, err)
	return data
}

func TestSessionService_SetupWithPreset(t *testing.T) {
	ss := newTestService(t)
	id := ss.CreateSession().SessionID
	require.NotEmpty(t, id)

	snapshot, err := ss.Setup(id, dto.SetupRequest{Preset: 7})
	require.NoError(t, err)

	assert.Equal(t, id, snapshot.SessionID)
	assert.Equal(t, string(game.SORT_SEAT), snapshot.SortMode)
	require.Len(t, snapshot.Players, 7)
	for i, p := range snapshot.Players {
		assert.Equal(t, i+1, p.Number)
		assert.NotEmpty(t, p.TypeLabel)
	}
	require.Len(t, snapshot.Tally, 4)
	assert.Equal(t, 1, snapshot.Tally[3].Total)
}

func TestSessionService_SetupErrors(t *testing.T) {
	ss := newTestService(t)
	id := ss.CreateSession().SessionID

	_, err := ss.Setup(id, dto.SetupRequest{Counts: game.PlayerCounts{Townsfolk: 3, Minion: 6}})
	var insufficient *game.InsufficientRolesError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, game.TYPE_MINION, insufficient.Type)

	_, err = ss.Setup(id, dto.SetupRequest{Preset: 30})
	require.ErrorIs(t, err, ErrInvalidPreset)

	_, err = ss.Setup("missing", dto.SetupRequest{Preset: 5})
	require.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSessionService_SeatValidation(t *testing.T) {
	ss := newTestService(t)
	id := ss.CreateSession().SessionID

	_, err := ss.ToggleDeath(id, 1)
	require.ErrorIs(t, err, ErrNoRoster)

	_, err = ss.Setup(id, dto.SetupRequest{Preset: 5})
	require.NoError(t, err)

	_, err = ss.ToggleDeath(id, 6)
	require.ErrorIs(t, err, ErrSeatNotFound)

	_, err = ss.TogglePoison(id, 0)
	require.ErrorIs(t, err, ErrSeatNotFound)

	snapshot, err := ss.ToggleDeath(id, 3)
	require.NoError(t, err)
	assert.True(t, snapshot.Players[2].IsDead)
}

func TestSessionService_PoisonMarksSeat(t *testing.T) {
	ss := newTestService(t)
	id := ss.CreateSession().SessionID

	snapshot, err := ss.Setup(id, dto.SetupRequest{Preset: 8})
	require.NoError(t, err)

	var goodSeat, evilSeat int
	for _, p := range snapshot.Players {
		if p.Role.Type.IsGood() && goodSeat == 0 {
			goodSeat = p.Number
		}
		if p.Role.Type.IsEvil() && evilSeat == 0 {
			evilSeat = p.Number
		}
	}

	snapshot, err = ss.TogglePoison(id, evilSeat)
	require.NoError(t, err)
	assert.Zero(t, snapshot.PoisonedSeat)

	snapshot, err = ss.TogglePoison(id, goodSeat)
	require.NoError(t, err)
	assert.Equal(t, goodSeat, snapshot.PoisonedSeat)
	assert.True(t, snapshot.Players[goodSeat-1].IsPoisoned)
}

func TestSessionService_SortModePersists(t *testing.T) {
	ss := newTestService(t)
	id := ss.CreateSession().SessionID

	_, err := ss.Setup(id, dto.SetupRequest{Preset: 10})
	require.NoError(t, err)

	snapshot, err := ss.Roster(id, string(game.SORT_FIRST_NIGHT))
	require.NoError(t, err)
	assert.Equal(t, game.TYPE_MINION, snapshot.Players[0].Role.Type)

	snapshot, err = ss.Roster(id, "")
	require.NoError(t, err)
	assert.Equal(t, string(game.SORT_FIRST_NIGHT), snapshot.SortMode)

	_, err = ss.Roster(id, "random")
	require.ErrorIs(t, err, game.ErrInvalidSortMode)
}

func TestSessionService_Exclusions(t *testing.T) {
	ss := newTestService(t)
	id := ss.CreateSession().SessionID

	roles, err := ss.SetExcluded(id, dto.SetExcludedRequest{RoleName: game.ROLE_BARON, Excluded: true})
	require.NoError(t, err)
	assert.Len(t, roles, len(game.ListExcludable()))

	for _, r := range roles {
		assert.Equal(t, r.RoleName == game.ROLE_BARON, r.Excluded, r.RoleName)
	}

	_, err = ss.SetExcluded(id, dto.SetExcludedRequest{RoleName: "狼人", Excluded: true})
	require.ErrorIs(t, err, game.ErrUnknownRole)

	// 排除设置跨局保留
	for i := 0; i < 20; i++ {
		snapshot, err := ss.Setup(id, dto.SetupRequest{Preset: 15})
		require.NoError(t, err)
		for _, p := range snapshot.Players {
			assert.NotEqual(t, game.ROLE_BARON, p.Role.Name)
		}
	}
}

func TestSessionService_RevealSeat(t *testing.T) {
	ss := newTestService(t)
	id := ss.CreateSession().SessionID

	_, err := ss.Setup(id, dto.SetupRequest{Preset: 6})
	require.NoError(t, err)

	reveal, err := ss.RevealSeat(id, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, reveal.Number)
	assert.NotEmpty(t, reveal.RoleName)

	_, err = ss.RevealSeat(id, 2)
	require.ErrorIs(t, err, game.ErrSeatAlreadyViewed)

	snapshot, err := ss.Roster(id, "")
	require.NoError(t, err)
	assert.True(t, snapshot.Players[1].IsViewed)

	// 新的一局重置查看记录
	snapshot, err = ss.Setup(id, dto.SetupRequest{Preset: 6})
	require.NoError(t, err)
	assert.False(t, snapshot.Players[1].IsViewed)
}

func TestSessionService_SubscribeAndBroadcast(t *testing.T) {
	ss := newTestService(t)
	id := ss.CreateSession().SessionID

	subID, ch, err := ss.Subscribe(id)
	require.NoError(t, err)

	initial := <-ch
	assert.Equal(t, dto.RESP_ROSTER, initial.RespType)

	resp := ss.HandleAction(id, dto.RequestWrapper{
		ReqType: dto.REQ_SETUP,
		Data:    mustRaw(t, dto.SetupRequest{Preset: 9}),
	})
	assert.Nil(t, resp, "mutations are delivered by broadcast")

	pushed := <-ch
	require.Equal(t, dto.RESP_ROSTER, pushed.RespType)
	snapshot, ok := pushed.Data.(dto.RosterSnapshot)
	require.True(t, ok)
	assert.Len(t, snapshot.Players, 9)

	resp = ss.HandleAction(id, dto.RequestWrapper{
		ReqType: dto.REQ_TOGGLE_DEATH,
		Data:    mustRaw(t, dto.SeatRequest{Seat: 4}),
	})
	assert.Nil(t, resp)

	pushed = <-ch
	snapshot = pushed.Data.(dto.RosterSnapshot)
	assert.True(t, snapshot.Players[3].IsDead)

	ss.Unsubscribe(id, subID)
	_, open := <-ch
	assert.False(t, open)
}

func TestSessionService_HandleActionReplies(t *testing.T) {
	ss := newTestService(t)
	id := ss.CreateSession().SessionID

	resp := ss.HandleAction(id, dto.RequestWrapper{ReqType: "Vote"})
	require.NotNil(t, resp)
	assert.Equal(t, dto.RESP_ERROR, resp.RespType)
	assert.Equal(t, ErrInvalidRequest.Error(), resp.ErrMsg)

	resp = ss.HandleAction(id, dto.RequestWrapper{
		ReqType: dto.REQ_TOGGLE_POISON,
		Data:    json.RawMessage(`{"seat":`),
	})
	require.NotNil(t, resp)
	assert.Equal(t, dto.RESP_ERROR, resp.RespType)

	resp = ss.HandleAction(id, dto.RequestWrapper{
		ReqType: dto.REQ_SETUP,
		Data:    mustRaw(t, dto.SetupRequest{Preset: 5}),
	})
	assert.Nil(t, resp)

	resp = ss.HandleAction(id, dto.RequestWrapper{
		ReqType: dto.REQ_REVEAL_SEAT,
		Data:    mustRaw(t, dto.SeatRequest{Seat: 1}),
	})
	require.NotNil(t, resp)
	assert.Equal(t, dto.RESP_REVEAL, resp.RespType)

	resp = ss.HandleAction(id, dto.RequestWrapper{
		ReqType: dto.REQ_SORT,
		Data:    mustRaw(t, dto.SortRequest{Mode: string(game.SORT_OTHER_NIGHTS)}),
	})
	require.NotNil(t, resp)
	assert.Equal(t, dto.RESP_ROSTER, resp.RespType)

	resp = ss.HandleAction(id, dto.RequestWrapper{ReqType: dto.REQ_SNAPSHOT})
	require.NotNil(t, resp)
	assert.Equal(t, string(game.SORT_OTHER_NIGHTS), resp.Data.(dto.RosterSnapshot).SortMode)
}

func TestSessionService_EvictsIdleSessions(t *testing.T) {
	ss := newTestService(t)
	idle := ss.CreateSession().SessionID
	active := ss.CreateSession().SessionID

	_, ch, err := ss.Subscribe(idle)
	require.NoError(t, err)
	<-ch

	evicted := ss.state.evictExpired(time.Now().Add(2 * time.Hour))
	assert.Equal(t, 2, evicted)

	_, err = ss.Roles(idle)
	require.ErrorIs(t, err, ErrSessionNotFound)
	_, err = ss.Roles(active)
	require.ErrorIs(t, err, ErrSessionNotFound)

	closed := <-ch
	assert.Equal(t, dto.RESP_CLOSED, closed.RespType)
	_, open := <-ch
	assert.False(t, open)

	fresh := ss.CreateSession().SessionID
	assert.Zero(t, ss.state.evictExpired(time.Now()))
	_, err = ss.Roles(fresh)
	require.NoError(t, err)
}
