package dto

import "grimoire-be/internal/service/game"

type CreateSessionResponse struct {
	SessionID string `json:"session_id"`
}

// 创建新的一局
// Preset 不为 0 时按预设人数配置，忽略 Counts
type SetupRequest struct {
	Counts game.PlayerCounts `json:"counts"`
	Preset int               `json:"preset,omitempty"`
}

type SeatRequest struct {
	Seat int `json:"seat"`
}

type SortRequest struct {
	Mode string `json:"mode"`
}

type SetExcludedRequest struct {
	RoleName string `json:"role_name"`
	Excluded bool   `json:"excluded"`
}

// 说书人视图中的一行
type PlayerView struct {
	game.Player
	DisplayName string `json:"display_name"`
	TypeLabel   string `json:"type_label"`
	IsPoisoned  bool   `json:"is_poisoned"`
	IsViewed    bool   `json:"is_viewed"`
}

// 名单快照，每次状态变化后广播
type RosterSnapshot struct {
	SessionID       string           `json:"session_id"`
	SortMode        string           `json:"sort_mode"`
	Players         []PlayerView     `json:"players"`
	PoisonedSeat    int              `json:"poisoned_seat,omitempty"`
	UnusedGoodRoles []string         `json:"unused_good_roles"`
	Tally           []game.TypeTally `json:"tally"`
}

type RoleEntry struct {
	Category      game.RoleType `json:"category"`
	CategoryLabel string        `json:"category_label"`
	RoleName      string        `json:"role_name"`
	Excluded      bool          `json:"excluded"`
}
