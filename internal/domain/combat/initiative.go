package combat

import "sort"

// SortByInitiative orders combatants by initiative, highest first. The sort
// is stable, so ties keep their relative roster order.
func SortByInitiative(roster []*Combatant) {
	sort.SliceStable(roster, func(i, j int) bool {
		return roster[i].Initiative > roster[j].Initiative
	})
}
