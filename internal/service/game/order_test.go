package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seatsOf(roster Roster) []int {
	seats := make([]int, 0, len(roster))
	for _, p := range roster {
		seats = append(seats, p.Number)
	}

	return seats
}

func orderFixture() Roster {
	return rosterOf(
		ROLE_SOLDIER,     // 1
		ROLE_EMPATH,      // 2
		ROLE_BARON,       // 3
		ROLE_POISONER,    // 4
		ROLE_IMP,         // 5
		ROLE_WASHERWOMAN, // 6
		ROLE_MAYOR,       // 7
	)
}

func TestSortRoster_BySeat(t *testing.T) {
	roster := orderFixture()
	shuffled := Roster{roster[4], roster[0], roster[6], roster[2], roster[1], roster[5], roster[3]}

	sorted, err := SortRoster(shuffled, SORT_SEAT)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7}, seatsOf(sorted))
	assert.Equal(t, 5, shuffled[0].Number, "input must not be reordered")
}

func TestSortRoster_FirstNight(t *testing.T) {
	sorted, err := SortRoster(orderFixture(), SORT_FIRST_NIGHT)
	require.NoError(t, err)

	// 投毒者、男爵（爪牙），小恶魔，洗衣妇、共情者（列表顺序），其余按座位
	assert.Equal(t, []int{4, 3, 5, 6, 2, 1, 7}, seatsOf(sorted))
}

func TestSortRoster_OtherNights(t *testing.T) {
	sorted, err := SortRoster(orderFixture(), SORT_OTHER_NIGHTS)
	require.NoError(t, err)

	assert.Equal(t, []int{4, 5, 2, 1, 3, 6, 7}, seatsOf(sorted))
}

func TestSortRoster_DrunkWakesAsBelievedRole(t *testing.T) {
	roster := rosterOf(ROLE_SOLDIER, ROLE_DRUNK, ROLE_CHEF, ROLE_IMP)
	roster[1].DrunkRole = &Role{Name: ROLE_WASHERWOMAN, Type: TYPE_TOWNSFOLK}

	sorted, err := SortRoster(roster, SORT_FIRST_NIGHT)
	require.NoError(t, err)
	assert.Equal(t, []int{4, 2, 3, 1}, seatsOf(sorted))
}

func TestSortRoster_FirstNightTypePrecedence(t *testing.T) {
	rng := newTestRand(21)

	for _, preset := range PRESETS {
		for trial := 0; trial < 20; trial++ {
			result, err := Setup(rng, preset.Counts, NewExcludedSet())
			require.NoError(t, err)

			sorted, err := SortRoster(result.Roster, SORT_FIRST_NIGHT)
			require.NoError(t, err)
			require.Len(t, sorted, len(result.Roster))

			for i := range sorted {
				for j := i + 1; j < len(sorted); j++ {
					a, b := sorted[i].Role.Type, sorted[j].Role.Type
					assert.False(t, b == TYPE_MINION && a != TYPE_MINION, "minion after non-minion")
					if a != TYPE_MINION {
						assert.False(t, b == TYPE_DEMON && a != TYPE_DEMON, "demon after non-demon")
					}
				}
			}
		}
	}
}

func TestSortRoster_InvalidMode(t *testing.T) {
	_, err := SortRoster(orderFixture(), SortMode("byName"))
	require.ErrorIs(t, err, ErrInvalidSortMode)

	_, err = ParseSortMode("byName")
	require.ErrorIs(t, err, ErrInvalidSortMode)

	mode, err := ParseSortMode("")
	require.NoError(t, err)
	assert.Equal(t, SORT_SEAT, mode)
}
