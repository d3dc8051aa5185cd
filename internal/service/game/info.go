package game

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

const (
	INFO_NO_OUTSIDER = "没有外来者"
	INFO_NO_MINION   = "没有爪牙"
)

// 厨师假信息的权重分布，下标即相邻对数
var chefFalseWeights = []float64{0.3, 0.3, 0.3, 0.1}

type infoInput struct {
	rng    RandSource
	self   Player
	roster Roster
	unused []string
}

// 信息角色：真信息与假信息各自的生成方式
// dependsOnLiveness 为 true 时，玩家死亡状态变化需要重新计算
type infoVariant struct {
	truthful          func(in infoInput) string
	deceptive         func(in infoInput) string
	dependsOnLiveness bool
}

var infoVariants = map[string]infoVariant{
	ROLE_WASHERWOMAN: {
		truthful:  pairTruth(TYPE_TOWNSFOLK, ""),
		deceptive: pairFalse(TYPE_TOWNSFOLK),
	},
	ROLE_LIBRARIAN: {
		truthful:  pairTruth(TYPE_OUTSIDER, INFO_NO_OUTSIDER),
		deceptive: pairFalse(TYPE_OUTSIDER),
	},
	ROLE_INVESTIGATOR: {
		truthful:  pairTruth(TYPE_MINION, INFO_NO_MINION),
		deceptive: pairFalse(TYPE_MINION),
	},
	ROLE_CHEF: {
		truthful:  chefTruth,
		deceptive: chefFalse,
	},
	ROLE_EMPATH: {
		truthful:          empathTruth,
		deceptive:         empathFalse,
		dependsOnLiveness: true,
	},
	ROLE_IMP: {
		truthful:  demonTruth,
		deceptive: demonFalse,
	},
}

// IsInformational 该角色（按实际生效的身份）是否会获得信息
func IsInformational(p Player) bool {
	_, ok := infoVariants[p.EffectiveRole().Name]
	return ok
}

// DependsOnLiveness 该玩家的信息是否依赖其他玩家的存活状态
func DependsOnLiveness(p Player) bool {
	v, ok := infoVariants[p.EffectiveRole().Name]
	return ok && v.dependsOnLiveness
}

// IsDeceptive 中毒的玩家和酒鬼得到假信息
func IsDeceptive(p Player, poisonedSeat int) bool {
	if p.DrunkRole != nil {
		return true
	}

	return poisonedSeat != 0 && p.Number == poisonedSeat
}

// GenerateInfo 按玩家实际生效的身份生成信息，非信息角色返回空字符串
func GenerateInfo(rng RandSource, player Player, roster Roster, unused []string, deceptive bool) string {
	variant, ok := infoVariants[player.EffectiveRole().Name]
	if !ok {
		return ""
	}

	in := infoInput{
		rng:    rng,
		self:   player,
		roster: seatOrdered(roster),
		unused: unused,
	}

	if deceptive {
		return variant.deceptive(in)
	}

	return variant.truthful(in)
}

// GenerateAll 为名单中每个玩家重新生成信息，返回新的名单
func GenerateAll(rng RandSource, roster Roster, unused []string, poisonedSeat int) Roster {
	out := roster.Clone()
	for i, p := range out {
		out[i].SpecialInfo = GenerateInfo(rng, p, roster, unused, IsDeceptive(p, poisonedSeat))
	}

	return out
}

func seatOrdered(roster Roster) Roster {
	ordered := roster.Clone()
	slices.SortFunc(ordered, func(a, b Player) int {
		return a.Number - b.Number
	})

	return ordered
}

func othersExcept(roster Roster, seats ...int) []Player {
	others := make([]Player, 0, len(roster))
	for _, p := range roster {
		if !slices.Contains(seats, p.Number) {
			others = append(others, p)
		}
	}

	return others
}

func formatSeatClue(seats []int, roleName string) string {
	parts := make([]string, 0, len(seats))
	for _, s := range seats {
		parts = append(parts, strconv.Itoa(s))
	}

	return fmt.Sprintf("%s出%s", strings.Join(parts, "，"), roleName)
}

// pairTruth 从某类型的其他玩家中选出一位，再搭配一位任意玩家，顺序随机
func pairTruth(t RoleType, absence string) func(in infoInput) string {
	return func(in infoInput) string {
		targets := make([]Player, 0)
		for _, p := range othersExcept(in.roster, in.self.Number) {
			if p.Role.Type == t {
				targets = append(targets, p)
			}
		}

		target, ok := pick(in.rng, targets)
		if !ok {
			return absence
		}

		seats := []int{target.Number}
		if other, ok := pick(in.rng, othersExcept(in.roster, in.self.Number, target.Number)); ok {
			seats = append(seats, other.Number)
		}
		shuffle(in.rng, seats)

		return formatSeatClue(seats, target.Role.Name)
	}
}

// pairFalse 任意两位其他玩家，搭配场上存在的该类型角色名
// 场上没有该类型时退回到目录中的角色名
func pairFalse(t RoleType) func(in infoInput) string {
	return func(in infoInput) string {
		names := in.roster.RoleNamesOfType(t)
		if len(names) == 0 {
			names = CatalogRoles(t)
		}
		name, _ := pick(in.rng, names)

		chosen := sample(in.rng, othersExcept(in.roster, in.self.Number), 2)
		seats := make([]int, 0, len(chosen))
		for _, p := range chosen {
			seats = append(seats, p.Number)
		}

		return formatSeatClue(seats, name)
	}
}

func formatChef(count int) string {
	return fmt.Sprintf("邪恶玩家(隐士?)相邻数量：%d", count)
}

// 厨师眼中的邪恶玩家包括隐士
func isChefEvil(p Player) bool {
	return p.Role.Type.IsEvil() || p.Role.Name == ROLE_RECLUSE
}

func chefTruth(in infoInput) string {
	return formatChef(countEvilPairs(in.roster))
}

// countEvilPairs 统计首尾相连的座位中相邻邪恶玩家的对数
func countEvilPairs(ordered Roster) int {
	n := len(ordered)
	if n < 2 {
		return 0
	}

	pairs := 0
	for i := 0; i < n; i++ {
		// 两人局中 1-2 和 2-1 是同一对
		if n == 2 && i == 1 {
			break
		}
		if isChefEvil(ordered[i]) && isChefEvil(ordered[(i+1)%n]) {
			pairs++
		}
	}

	return pairs
}

func chefFalse(in infoInput) string {
	r := in.rng.Float64()
	for count, w := range chefFalseWeights {
		if r < w {
			return formatChef(count)
		}
		r -= w
	}

	return formatChef(len(chefFalseWeights) - 1)
}

// livingNeighbors 从座位向两侧各找最近的存活玩家，跳过死亡玩家
// left 为座位号递减方向，right 为座位号递增方向
func livingNeighbors(ordered Roster, seat int) (left, right *Player) {
	n := len(ordered)
	idx := ordered.IndexOf(seat)
	if idx < 0 {
		return nil, nil
	}

	for i := 1; i < n; i++ {
		p := ordered[(idx-i+n)%n]
		if !p.IsDead {
			left = &p
			break
		}
	}

	for i := 1; i < n; i++ {
		p := ordered[(idx+i)%n]
		if !p.IsDead {
			right = &p
			break
		}
	}

	return left, right
}

// empathCount 两侧邻居中邪恶玩家的数量，同一个玩家只计一次
func empathCount(left, right *Player) int {
	count := 0
	if left != nil && left.Role.Type.IsEvil() {
		count++
	}
	if right != nil && right.Role.Type.IsEvil() {
		if left == nil || left.Number != right.Number {
			count++
		}
	}

	return count
}

func seatLabel(p *Player) string {
	if p == nil {
		return "无"
	}

	return strconv.Itoa(p.Number)
}

func formatEmpath(left, right *Player, count int) string {
	return fmt.Sprintf("左边%s号和右边%s号中有%d个邪恶玩家", seatLabel(left), seatLabel(right), count)
}

func empathTruth(in infoInput) string {
	left, right := livingNeighbors(in.roster, in.self.Number)
	return formatEmpath(left, right, empathCount(left, right))
}

// empathFalse 邻居不变，数量从 0、1、2 中去掉真实值后等概率选取
func empathFalse(in infoInput) string {
	left, right := livingNeighbors(in.roster, in.self.Number)
	truth := empathCount(left, right)

	choices := make([]int, 0, 2)
	for _, c := range []int{0, 1, 2} {
		if c != truth {
			choices = append(choices, c)
		}
	}
	count, _ := pick(in.rng, choices)

	return formatEmpath(left, right, count)
}

func formatDemon(names []string) string {
	return "未使用善良角色：" + strings.Join(names, "，")
}

func demonTruth(in infoInput) string {
	return formatDemon(in.unused)
}

// demonFalse 同样的三个角色，顺序打乱
func demonFalse(in infoInput) string {
	names := slices.Clone(in.unused)
	shuffle(in.rng, names)
	return formatDemon(names)
}
