package planner

import (
	"github.com/slotworks/relocation-engine/internal/events"
)

// Solver runs budget-bounded A* over one domain. A Solver is stateless
// between calls; each Solve owns its frontier and closed set exclusively, so
// independent scenarios may be solved concurrently from separate goroutines.
type Solver struct {
	domain *Domain
}

func NewSolver(d *Domain) *Solver {
	return &Solver{domain: d}
}

// Solve searches for a minimum-cost plan within the scenario's default
// budget.
func (sv *Solver) Solve(sc *Scenario) (*Result, error) {
	return sv.SolveWithBudget(sc, sc.Budget)
}

// SolveWithBudget searches with an explicit budget ceiling. The budget is a
// hard per-path limit: a child whose path cost would exceed it is never
// enqueued. Frontier exhaustion is the ordinary "no plan within budget"
// outcome, reported as a failure result, never as an error. Errors are
// reserved for broken configuration (invalid coordinates, missing facts).
func (sv *Solver) SolveWithBudget(sc *Scenario, budget int) (*Result, error) {
	d := sv.domain
	goalKey := sc.Goal.Key(d)

	events.Emit("info", "search.started", "", map[string]interface{}{
		"scenario": sc.ID,
		"budget":   budget,
	})

	fr := newFrontier()
	fr.push(&node{
		state: sc.Start,
		key:   sc.Start.Key(d),
		g:     0,
		f:     Heuristic(sc.Start, sc.Goal),
	})

	// Best confirmed path cost per canonical state. A popped node is
	// dominated if the state was already expanded at equal or lower cost.
	closed := make(map[string]int)
	expanded := 0

	for !fr.isEmpty() {
		cur := fr.popMin()

		if cur.key == goalKey {
			events.Emit("info", "search.succeeded", "", map[string]interface{}{
				"scenario": sc.ID,
				"cost":     cur.g,
				"moves":    len(cur.path),
				"expanded": expanded,
			})
			return successResult(d, sc, budget, cur.g, cur.path), nil
		}

		if best, ok := closed[cur.key]; ok && best <= cur.g {
			continue
		}
		closed[cur.key] = cur.g
		expanded++

		succs, err := d.Successors(cur.state)
		if err != nil {
			return nil, err
		}
		for _, succ := range succs {
			g2 := cur.g + succ.Cost
			if g2 > budget {
				continue // hard ceiling, prune the child
			}

			path := make([]Move, len(cur.path), len(cur.path)+1)
			copy(path, cur.path)
			path = append(path, succ.Move)

			fr.push(&node{
				state: succ.State,
				key:   succ.State.Key(d),
				g:     g2,
				f:     g2 + Heuristic(succ.State, sc.Goal),
				path:  path,
			})
		}
	}

	events.Emit("info", "search.failed", "", map[string]interface{}{
		"scenario": sc.ID,
		"budget":   budget,
		"expanded": expanded,
	})
	return failureResult(d, sc, budget), nil
}
