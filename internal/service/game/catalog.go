package game

import "slices"

// 暗流涌动剧本中使用的角色
const (
	ROLE_WASHERWOMAN    = "洗衣妇"
	ROLE_LIBRARIAN      = "图书管理员"
	ROLE_INVESTIGATOR   = "调查员"
	ROLE_CHEF           = "厨师"
	ROLE_EMPATH         = "共情者"
	ROLE_FORTUNE_TELLER = "占卜师"
	ROLE_UNDERTAKER     = "送葬者"
	ROLE_MONK           = "僧侣"
	ROLE_RAVENKEEPER    = "渡鸦"
	ROLE_VIRGIN         = "处女"
	ROLE_SLAYER         = "杀手"
	ROLE_SOLDIER        = "士兵"
	ROLE_MAYOR          = "市长"

	ROLE_BUTLER  = "管家"
	ROLE_DRUNK   = "酒鬼"
	ROLE_RECLUSE = "隐士"
	ROLE_SAINT   = "圣徒"

	ROLE_POISONER      = "投毒者"
	ROLE_SPY           = "间谍"
	ROLE_SCARLET_WOMAN = "猩红女郎"
	ROLE_BARON         = "男爵"

	ROLE_IMP = "小恶魔"
)

var TOWNSFOLK_ROLES = []string{
	ROLE_WASHERWOMAN,
	ROLE_LIBRARIAN,
	ROLE_INVESTIGATOR,
	ROLE_CHEF,
	ROLE_EMPATH,
	ROLE_FORTUNE_TELLER,
	ROLE_UNDERTAKER,
	ROLE_MONK,
	ROLE_RAVENKEEPER,
	ROLE_VIRGIN,
	ROLE_SLAYER,
	ROLE_SOLDIER,
	ROLE_MAYOR,
}

var OUTSIDER_ROLES = []string{
	ROLE_BUTLER,
	ROLE_DRUNK,
	ROLE_RECLUSE,
	ROLE_SAINT,
}

var MINION_ROLES = []string{
	ROLE_POISONER,
	ROLE_SPY,
	ROLE_SCARLET_WOMAN,
	ROLE_BARON,
}

// 本剧本恶魔固定为小恶魔
var DEMON_ROLES = []string{
	ROLE_IMP,
}

// CatalogRoles 返回某个类型下的全部角色名
func CatalogRoles(t RoleType) []string {
	switch t {
	case TYPE_TOWNSFOLK:
		return TOWNSFOLK_ROLES
	case TYPE_OUTSIDER:
		return OUTSIDER_ROLES
	case TYPE_MINION:
		return MINION_ROLES
	case TYPE_DEMON:
		return DEMON_ROLES
	}

	return nil
}

// LookupRole 根据角色名在目录中查找角色
func LookupRole(name string) (Role, bool) {
	for _, t := range ROLE_TYPES {
		if slices.Contains(CatalogRoles(t), name) {
			return Role{Name: name, Type: t}, true
		}
	}

	return Role{}, false
}

// 本局排除的角色，跨局保留，直到被显式切换
type ExcludedSet map[string]struct{}

func NewExcludedSet(names ...string) ExcludedSet {
	set := make(ExcludedSet, len(names))
	for _, name := range names {
		set[name] = struct{}{}
	}

	return set
}

func (es ExcludedSet) Has(name string) bool {
	_, ok := es[name]
	return ok
}

// Available 某个类型在排除后可用的角色名，保持目录顺序
func (es ExcludedSet) Available(t RoleType) []string {
	available := make([]string, 0, len(CatalogRoles(t)))
	for _, name := range CatalogRoles(t) {
		if !es.Has(name) {
			available = append(available, name)
		}
	}

	return available
}

// 可被排除的角色条目
type ExcludableRole struct {
	Category RoleType `json:"category"`
	RoleName string   `json:"role_name"`
}

func ListExcludable() []ExcludableRole {
	roles := make([]ExcludableRole, 0)
	for _, t := range ROLE_TYPES {
		for _, name := range CatalogRoles(t) {
			roles = append(roles, ExcludableRole{Category: t, RoleName: name})
		}
	}

	return roles
}

// 常用人数配置：总人数，村民，外来者，爪牙，恶魔
type Preset struct {
	Total  int          `json:"total"`
	Counts PlayerCounts `json:"counts"`
}

var PRESETS = []Preset{
	{5, PlayerCounts{3, 0, 1, 1}},
	{6, PlayerCounts{3, 1, 1, 1}},
	{7, PlayerCounts{5, 0, 1, 1}},
	{8, PlayerCounts{5, 1, 1, 1}},
	{9, PlayerCounts{5, 2, 1, 1}},
	{10, PlayerCounts{7, 0, 2, 1}},
	{11, PlayerCounts{7, 1, 2, 1}},
	{12, PlayerCounts{7, 2, 2, 1}},
	{13, PlayerCounts{9, 0, 3, 1}},
	{14, PlayerCounts{9, 1, 3, 1}},
	{15, PlayerCounts{9, 2, 3, 1}},
	{16, PlayerCounts{10, 2, 3, 1}},
	{17, PlayerCounts{11, 2, 3, 1}},
	{18, PlayerCounts{12, 2, 3, 1}},
}

// PresetFor 根据总人数查找预设配置
func PresetFor(total int) (PlayerCounts, bool) {
	for _, p := range PRESETS {
		if p.Total == total {
			return p.Counts, true
		}
	}

	return PlayerCounts{}, false
}
