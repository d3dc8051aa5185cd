package game

import "errors"

var ErrSeatAlreadyViewed = errors.New("该座位已经查看过身份")

// 玩家视图中看到的身份
// 酒鬼看到的是他以为的村民角色
type SeatReveal struct {
	Number    int      `json:"number"`
	RoleName  string   `json:"role_name"`
	RoleType  RoleType `json:"role_type"`
	TypeLabel string   `json:"type_label"`
}

func RevealFor(p Player) SeatReveal {
	role := p.EffectiveRole()
	return SeatReveal{
		Number:    p.Number,
		RoleName:  role.Name,
		RoleType:  role.Type,
		TypeLabel: role.Type.Label(),
	}
}

// RevealSeat 每个座位每局只能查看一次
func (gc *GameContext) RevealSeat(seat int) (SeatReveal, error) {
	idx := mustIndex(gc.Roster, seat)

	if _, ok := gc.Viewed[seat]; ok {
		return SeatReveal{}, ErrSeatAlreadyViewed
	}

	gc.Viewed[seat] = struct{}{}
	gc.touch()

	return RevealFor(gc.Roster[idx]), nil
}

// ViewedSeats 已查看的座位
func (gc *GameContext) ViewedSeats() []int {
	seats := make([]int, 0, len(gc.Viewed))
	for _, p := range gc.Roster {
		if _, ok := gc.Viewed[p.Number]; ok {
			seats = append(seats, p.Number)
		}
	}

	return seats
}
