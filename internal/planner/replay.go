package planner

import (
	"fmt"
)

// Replay applies a returned plan against a start state, re-validating every
// move and recomputing each step cost independently of the search. It
// returns the final state and the recomputed total. Used to verify that a
// plan's reported cost matches what its moves actually incur.
func Replay(d *Domain, start State, plan []PlanStep) (State, int, error) {
	state := start
	total := 0

	for i, step := range plan {
		if step.Action != "move" {
			return State{}, 0, fmt.Errorf("step %d: unknown action %q", i+1, step.Action)
		}

		occupant, err := state.Get(d, step.SourceLocation, step.SourcePosition)
		if err != nil {
			return State{}, 0, fmt.Errorf("step %d: %w", i+1, err)
		}
		if occupant != step.Block {
			return State{}, 0, fmt.Errorf("step %d: expected %q at %s:%d, found %q",
				i+1, step.Block, step.SourceLocation, step.SourcePosition, occupant)
		}

		dest, err := state.Get(d, step.DestLocation, step.DestPosition)
		if err != nil {
			return State{}, 0, fmt.Errorf("step %d: %w", i+1, err)
		}
		if dest != "" {
			return State{}, 0, fmt.Errorf("step %d: destination %s:%d not empty",
				i+1, step.DestLocation, step.DestPosition)
		}

		move := Move{
			From:  Slot{Location: step.SourceLocation, Position: step.SourcePosition},
			To:    Slot{Location: step.DestLocation, Position: step.DestPosition},
			Block: step.Block,
		}
		cost, err := d.MoveCost(move)
		if err != nil {
			return State{}, 0, fmt.Errorf("step %d: %w", i+1, err)
		}
		total += cost

		state, err = state.Set(d, step.SourceLocation, step.SourcePosition, "")
		if err != nil {
			return State{}, 0, fmt.Errorf("step %d: %w", i+1, err)
		}
		state, err = state.Set(d, step.DestLocation, step.DestPosition, step.Block)
		if err != nil {
			return State{}, 0, fmt.Errorf("step %d: %w", i+1, err)
		}
	}

	return state, total, nil
}

// VerifyResult replays a successful result against the scenario start and
// checks that the plan reaches the goal at exactly the reported cost.
func VerifyResult(d *Domain, sc *Scenario, res *Result) error {
	if !res.OK {
		return fmt.Errorf("cannot verify a failure result")
	}

	final, total, err := Replay(d, sc.Start, res.Plan)
	if err != nil {
		return err
	}
	if total != res.Cost {
		return fmt.Errorf("recomputed cost %d does not match reported cost %d", total, res.Cost)
	}
	if final.Key(d) != sc.Goal.Key(d) {
		return fmt.Errorf("plan does not reach the goal state")
	}
	return nil
}
