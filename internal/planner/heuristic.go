package planner

// Heuristic counts the blocks whose slot in the state differs from their
// slot in the goal, including blocks present on one side only. Each such
// block needs at least one relocation, and the domain invariants guarantee
// every move costs at least 1, so the count is an admissible lower bound on
// the remaining cost. The heuristic only biases search order; it never
// rejects a state.
func Heuristic(state, goal State) int {
	statePlaced := state.Placements()
	goalPlaced := goal.Placements()

	misplaced := 0
	for block, slot := range statePlaced {
		if goalSlot, ok := goalPlaced[block]; !ok || goalSlot != slot {
			misplaced++
		}
	}
	for block := range goalPlaced {
		if _, ok := statePlaced[block]; !ok {
			misplaced++
		}
	}
	return misplaced
}
