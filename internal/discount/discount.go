// Package discount resolves the group's free-bottle reward from the
// total number of bottles ordered.
package discount

// tier maps a bottle-count threshold to the free bottles earned at or
// above it.
type tier struct {
	Threshold int
	Reward    int
}

// tiers is the volume schedule, ordered from highest threshold to
// lowest. The final 0 entry guarantees a match for every input, and the
// top entry means the reward saturates at 15.
var tiers = []tier{
	{60, 15},
	{54, 13},
	{48, 12},
	{42, 10},
	{36, 9},
	{30, 7},
	{24, 6},
	{18, 4},
	{12, 3},
	{6, 1},
	{0, 0},
}

// FreeBottles returns the free bottles earned by a group that ordered
// totalBottles in all: the reward of the highest tier whose threshold
// is reached. Negative input is treated as zero.
func FreeBottles(totalBottles int) int {
	for _, t := range tiers {
		if totalBottles >= t.Threshold {
			return t.Reward
		}
	}
	return 0
}
