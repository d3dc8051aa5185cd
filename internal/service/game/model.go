package game

import "fmt"

// 角色阵营类型
type RoleType string

const (
	TYPE_TOWNSFOLK RoleType = "townsfolk"
	TYPE_OUTSIDER  RoleType = "outsider"
	TYPE_MINION    RoleType = "minion"
	TYPE_DEMON     RoleType = "demon"
)

// 所有类型，按展示顺序
var ROLE_TYPES = []RoleType{TYPE_TOWNSFOLK, TYPE_OUTSIDER, TYPE_MINION, TYPE_DEMON}

var typeLabels = map[RoleType]string{
	TYPE_TOWNSFOLK: "村民",
	TYPE_OUTSIDER:  "外来者",
	TYPE_MINION:    "爪牙",
	TYPE_DEMON:     "恶魔",
}

// Label 返回类型的中文名称
func (t RoleType) Label() string {
	if label, ok := typeLabels[t]; ok {
		return label
	}

	return string(t)
}

// IsGood 村民和外来者属于善良阵营
func (t RoleType) IsGood() bool {
	return t == TYPE_TOWNSFOLK || t == TYPE_OUTSIDER
}

// IsEvil 爪牙和恶魔属于邪恶阵营
func (t RoleType) IsEvil() bool {
	return t == TYPE_MINION || t == TYPE_DEMON
}

// 角色由名称唯一标识
type Role struct {
	Name string   `json:"name"`
	Type RoleType `json:"type"`
}

type PlayerCounts struct {
	Townsfolk int `json:"townsfolk"`
	Outsider  int `json:"outsider"`
	Minion    int `json:"minion"`
	Demon     int `json:"demon"`
}

func (pc PlayerCounts) Get(t RoleType) int {
	switch t {
	case TYPE_TOWNSFOLK:
		return pc.Townsfolk
	case TYPE_OUTSIDER:
		return pc.Outsider
	case TYPE_MINION:
		return pc.Minion
	case TYPE_DEMON:
		return pc.Demon
	}

	return 0
}

func (pc PlayerCounts) Total() int {
	return pc.Townsfolk + pc.Outsider + pc.Minion + pc.Demon
}

// Normalize 恶魔数量固定为 1，不允许外部修改
func (pc PlayerCounts) Normalize() PlayerCounts {
	pc.Demon = 1
	return pc
}

// 座位上的玩家
type Player struct {
	// 座位号，从 1 开始连续编号，首尾相邻
	Number int  `json:"number"`
	Role   Role `json:"role"`
	IsDead bool `json:"is_dead"`
	// 仅酒鬼有值：酒鬼以为自己是的村民角色
	DrunkRole   *Role  `json:"drunk_role,omitempty"`
	SpecialInfo string `json:"special_info,omitempty"`
	IsPillar    bool   `json:"is_pillar,omitempty"`
}

// EffectiveRole 酒鬼按照他以为的角色获得信息和行动
func (p Player) EffectiveRole() Role {
	if p.DrunkRole != nil {
		return *p.DrunkRole
	}

	return p.Role
}

// DisplayName 说书人视图中的角色名
func (p Player) DisplayName() string {
	if p.DrunkRole != nil {
		return fmt.Sprintf("%s (以为是%s)", p.Role.Name, p.DrunkRole.Name)
	}

	return p.Role.Name
}

type Roster []Player

// Clone 浅拷贝玩家列表，Role 本身不可变，可以共享
func (r Roster) Clone() Roster {
	out := make(Roster, len(r))
	copy(out, r)
	return out
}

// IndexOf 返回座位号对应的下标，找不到时返回 -1
func (r Roster) IndexOf(seat int) int {
	for i, p := range r {
		if p.Number == seat {
			return i
		}
	}

	return -1
}

func (r Roster) HasSeat(seat int) bool {
	return r.IndexOf(seat) >= 0
}

// Names 当前名单中所有的真实角色名
func (r Roster) Names() map[string]struct{} {
	names := make(map[string]struct{}, len(r))
	for _, p := range r {
		names[p.Role.Name] = struct{}{}
	}

	return names
}

// RoleNamesOfType 名单中某个类型的角色名，按座位顺序
func (r Roster) RoleNamesOfType(t RoleType) []string {
	names := make([]string, 0)
	for _, p := range r {
		if p.Role.Type == t {
			names = append(names, p.Role.Name)
		}
	}

	return names
}

// 每个类型的存活数和总数
type TypeTally struct {
	Type  RoleType `json:"type"`
	Label string   `json:"label"`
	Alive int      `json:"alive"`
	Total int      `json:"total"`
}

func (r Roster) Tally() []TypeTally {
	tallies := make([]TypeTally, 0, len(ROLE_TYPES))
	for _, t := range ROLE_TYPES {
		tally := TypeTally{Type: t, Label: t.Label()}
		for _, p := range r {
			if p.Role.Type != t {
				continue
			}
			tally.Total++
			if !p.IsDead {
				tally.Alive++
			}
		}
		tallies = append(tallies, tally)
	}

	return tallies
}
