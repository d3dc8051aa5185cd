package game

import (
	"fmt"
	"math/rand/v2"
)

func newTestRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed+1))
}

// rosterOf 按座位顺序用角色名构造名单，座位号从 1 开始
func rosterOf(names ...string) Roster {
	roster := make(Roster, 0, len(names))
	for i, name := range names {
		role, ok := LookupRole(name)
		if !ok {
			panic(fmt.Sprintf("unknown role %q", name))
		}
		roster = append(roster, Player{Number: i + 1, Role: role})
	}

	return roster
}

func countType(roster Roster, t RoleType) int {
	n := 0
	for _, p := range roster {
		if p.Role.Type == t {
			n++
		}
	}

	return n
}
