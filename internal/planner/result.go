package planner

import "encoding/json"

// ReasonNoPlanWithinBudget is the stable failure code of the result
// contract. Budget exhaustion and frontier exhaustion are reported
// identically; the engine does not distinguish "budget too tight" from
// "goal unreachable".
const ReasonNoPlanWithinBudget = "no_plan_within_budget"

// PlanStep is one move of a returned plan in the wire format consumed by the
// rendering collaborator.
type PlanStep struct {
	Action         string `json:"action"`
	SourceLocation string `json:"sourceLocation"`
	SourcePosition int    `json:"sourcePosition"`
	DestLocation   string `json:"destLocation"`
	DestPosition   int    `json:"destPosition"`
	Block          string `json:"block"`
}

// Result is the outcome of one solve run. It marshals to exactly one of the
// two contract shapes: success carries cost and plan, failure carries the
// reason code. The flattened goal mapping is present either way.
type Result struct {
	OK       bool
	Scenario string
	Budget   int
	Cost     int
	Plan     []PlanStep
	Reason   string
	Goal     map[string]string
}

type successJSON struct {
	OK       bool              `json:"ok"`
	Scenario string            `json:"scenario"`
	Budget   int               `json:"budget"`
	Cost     int               `json:"cost"`
	Plan     []PlanStep        `json:"plan"`
	Goal     map[string]string `json:"goal"`
}

type failureJSON struct {
	OK       bool              `json:"ok"`
	Scenario string            `json:"scenario"`
	Budget   int               `json:"budget"`
	Reason   string            `json:"error"`
	Goal     map[string]string `json:"goal"`
}

// MarshalJSON emits the success or failure contract shape. Map keys are
// serialized in lexicographic order by encoding/json, which satisfies the
// deterministic-ordering requirement on the goal mapping.
func (r *Result) MarshalJSON() ([]byte, error) {
	if r.OK {
		plan := r.Plan
		if plan == nil {
			plan = []PlanStep{}
		}
		return json.Marshal(successJSON{
			OK:       true,
			Scenario: r.Scenario,
			Budget:   r.Budget,
			Cost:     r.Cost,
			Plan:     plan,
			Goal:     r.Goal,
		})
	}
	return json.Marshal(failureJSON{
		OK:       false,
		Scenario: r.Scenario,
		Budget:   r.Budget,
		Reason:   r.Reason,
		Goal:     r.Goal,
	})
}

// PlanFromMoves converts internal moves to wire plan steps, in traversal
// order.
func PlanFromMoves(moves []Move) []PlanStep {
	steps := make([]PlanStep, 0, len(moves))
	for _, m := range moves {
		steps = append(steps, PlanStep{
			Action:         "move",
			SourceLocation: m.From.Location,
			SourcePosition: m.From.Position,
			DestLocation:   m.To.Location,
			DestPosition:   m.To.Position,
			Block:          m.Block,
		})
	}
	return steps
}

func successResult(d *Domain, sc *Scenario, budget, cost int, moves []Move) *Result {
	return &Result{
		OK:       true,
		Scenario: sc.ID,
		Budget:   budget,
		Cost:     cost,
		Plan:     PlanFromMoves(moves),
		Goal:     sc.Goal.Flatten(d),
	}
}

func failureResult(d *Domain, sc *Scenario, budget int) *Result {
	return &Result{
		OK:       false,
		Scenario: sc.ID,
		Budget:   budget,
		Reason:   ReasonNoPlanWithinBudget,
		Goal:     sc.Goal.Flatten(d),
	}
}
