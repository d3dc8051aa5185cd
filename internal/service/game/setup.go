package game

import (
	"slices"

	"go.uber.org/zap"
)

// 告诉恶魔的未使用善良角色数量
const UNUSED_GOOD_ROLE_COUNT = 3

// 男爵最多将多少个村民替换为外来者
const BARON_CONVERSIONS = 2

// ValidateCounts 检查请求的人数配置在排除角色之后是否可以满足
func ValidateCounts(counts PlayerCounts, excluded ExcludedSet) error {
	for _, t := range ROLE_TYPES {
		if counts.Get(t) < 0 {
			return ErrInvalidCounts
		}
	}

	for _, t := range []RoleType{TYPE_TOWNSFOLK, TYPE_OUTSIDER, TYPE_MINION} {
		available := len(excluded.Available(t))
		if available < counts.Get(t) {
			return &InsufficientRolesError{
				Type:      t,
				Requested: counts.Get(t),
				Available: available,
			}
		}
	}

	// 恶魔不从牌堆抽取，只要求固定的恶魔没有被排除
	if len(excluded.Available(TYPE_DEMON)) == 0 {
		return &InsufficientRolesError{
			Type:      TYPE_DEMON,
			Requested: 1,
			Available: 0,
		}
	}

	return nil
}

type SetupResult struct {
	Roster          Roster
	UnusedGoodRoles []string
}

// Setup 按人数配置随机分配角色和座位，并生成所有信息
// 配置无效时不产生任何名单
func Setup(rng RandSource, counts PlayerCounts, excluded ExcludedSet) (SetupResult, error) {
	counts = counts.Normalize()

	if err := ValidateCounts(counts, excluded); err != nil {
		return SetupResult{}, err
	}

	roles := drawRoles(rng, counts, excluded)
	roles = applyBaron(rng, roles, excluded)

	// 打乱后按顺序分配座位号，座位与阵营无关
	shuffle(rng, roles)

	roster := make(Roster, 0, len(roles))
	for i, role := range roles {
		roster = append(roster, Player{
			Number: i + 1,
			Role:   role,
		})
	}

	ResolveDrunk(rng, roster, excluded)
	markPillar(rng, roster)

	unused := UnusedGoodRoles(rng, roster, excluded)
	roster = GenerateAll(rng, roster, unused, 0)

	zap.L().Debug(
		"角色分配完成",
		zap.Int("players", len(roster)),
		zap.Strings("unused_good_roles", unused),
	)

	return SetupResult{
		Roster:          roster,
		UnusedGoodRoles: unused,
	}, nil
}

// drawRoles 每个类型无放回地等概率抽取，恶魔固定
func drawRoles(rng RandSource, counts PlayerCounts, excluded ExcludedSet) []Role {
	roles := make([]Role, 0, counts.Total())

	for _, t := range []RoleType{TYPE_TOWNSFOLK, TYPE_OUTSIDER, TYPE_MINION} {
		for _, name := range sample(rng, excluded.Available(t), counts.Get(t)) {
			roles = append(roles, Role{Name: name, Type: t})
		}
	}

	roles = append(roles, Role{Name: ROLE_IMP, Type: TYPE_DEMON})

	return roles
}

// applyBaron 男爵在场时，随机将至多两个村民替换为未使用的外来者，总人数不变
func applyBaron(rng RandSource, roles []Role, excluded ExcludedSet) []Role {
	hasBaron := slices.ContainsFunc(roles, func(r Role) bool {
		return r.Name == ROLE_BARON
	})
	if !hasBaron {
		return roles
	}

	used := make(map[string]struct{}, len(roles))
	townsfolkSlots := make([]int, 0)
	for i, r := range roles {
		used[r.Name] = struct{}{}
		if r.Type == TYPE_TOWNSFOLK {
			townsfolkSlots = append(townsfolkSlots, i)
		}
	}

	unusedOutsiders := make([]string, 0)
	for _, name := range excluded.Available(TYPE_OUTSIDER) {
		if _, ok := used[name]; !ok {
			unusedOutsiders = append(unusedOutsiders, name)
		}
	}

	k := min(BARON_CONVERSIONS, len(unusedOutsiders), len(townsfolkSlots))

	slots := sample(rng, townsfolkSlots, k)
	outsiders := sample(rng, unusedOutsiders, k)

	for i, slot := range slots {
		zap.L().Debug(
			"男爵在场，村民替换为外来者",
			zap.String("from", roles[slot].Name),
			zap.String("to", outsiders[i]),
		)
		roles[slot] = Role{Name: outsiders[i], Type: TYPE_OUTSIDER}
	}

	return roles
}

// ResolveDrunk 为酒鬼随机选一个未被使用的村民角色作为他以为的身份
func ResolveDrunk(rng RandSource, roster Roster, excluded ExcludedSet) {
	idx := slices.IndexFunc(roster, func(p Player) bool {
		return p.Role.Name == ROLE_DRUNK
	})
	if idx < 0 {
		return
	}

	used := roster.Names()
	candidates := make([]string, 0)
	for _, name := range TOWNSFOLK_ROLES {
		if _, ok := used[name]; ok {
			continue
		}
		if excluded.Has(name) || name == ROLE_DRUNK {
			continue
		}
		candidates = append(candidates, name)
	}

	name, ok := pick(rng, candidates)
	if !ok {
		zap.L().Warn("没有可用的村民角色分配给酒鬼", zap.Int("seat", roster[idx].Number))
		return
	}

	roster[idx].DrunkRole = &Role{Name: name, Type: TYPE_TOWNSFOLK}
}

// markPillar 在善良玩家中随机标记一位，没有善良玩家时跳过
func markPillar(rng RandSource, roster Roster) {
	good := make([]int, 0, len(roster))
	for i, p := range roster {
		if p.Role.Type.IsGood() {
			good = append(good, i)
		}
	}

	if idx, ok := pick(rng, good); ok {
		roster[idx].IsPillar = true
	}
}

// UnusedGoodRoles 从未出现在名单中的善良角色里随机抽取三个
// 酒鬼以为的角色也视为已使用
func UnusedGoodRoles(rng RandSource, roster Roster, excluded ExcludedSet) []string {
	used := roster.Names()
	for _, p := range roster {
		if p.DrunkRole != nil {
			used[p.DrunkRole.Name] = struct{}{}
		}
	}

	candidates := make([]string, 0)
	for _, name := range slices.Concat(TOWNSFOLK_ROLES, OUTSIDER_ROLES) {
		if _, ok := used[name]; ok {
			continue
		}
		if excluded.Has(name) || name == ROLE_DRUNK {
			continue
		}
		candidates = append(candidates, name)
	}

	return sample(rng, candidates, UNUSED_GOOD_ROLE_COUNT)
}
