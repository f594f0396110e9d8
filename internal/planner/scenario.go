package planner

import (
	"fmt"
)

// Scenario is one named start/goal fixture with its default budget.
// Scenarios are defined once at startup and read-only thereafter.
type Scenario struct {
	ID     string
	Budget int
	Start  State
	Goal   State
}

// BuildState constructs a state from explicit placements and checks the
// state invariants: every coordinate is on the grid, every block has a
// configured weight, and no block appears in more than one slot.
func BuildState(d *Domain, placements map[Slot]string) (State, error) {
	s := NewState()
	seen := make(map[string]Slot)
	for slot, block := range placements {
		if block == "" {
			continue
		}
		if prev, dup := seen[block]; dup {
			return State{}, fmt.Errorf("block %q placed in both %s and %s", block, prev, slot)
		}
		seen[block] = slot

		if _, err := d.Weight(block); err != nil {
			return State{}, err
		}

		var err error
		s, err = s.Set(d, slot.Location, slot.Position, block)
		if err != nil {
			return State{}, err
		}
	}
	return s, nil
}

// NewScenario validates and assembles a scenario fixture.
func NewScenario(d *Domain, id string, budget int, start, goal map[Slot]string) (*Scenario, error) {
	if id == "" {
		return nil, fmt.Errorf("scenario: empty id")
	}
	if budget < 0 {
		return nil, fmt.Errorf("scenario %s: negative budget %d", id, budget)
	}

	startState, err := BuildState(d, start)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: start: %w", id, err)
	}
	goalState, err := BuildState(d, goal)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: goal: %w", id, err)
	}

	return &Scenario{
		ID:     id,
		Budget: budget,
		Start:  startState,
		Goal:   goalState,
	}, nil
}

// ScenarioSet is the read-only scenario registry built at startup.
type ScenarioSet struct {
	byID  map[string]*Scenario
	order []string
}

func NewScenarioSet(scenarios []*Scenario) (*ScenarioSet, error) {
	ss := &ScenarioSet{byID: make(map[string]*Scenario)}
	for _, sc := range scenarios {
		if _, dup := ss.byID[sc.ID]; dup {
			return nil, fmt.Errorf("duplicate scenario id %q", sc.ID)
		}
		ss.byID[sc.ID] = sc
		ss.order = append(ss.order, sc.ID)
	}
	return ss, nil
}

// Get returns the scenario with the given id.
func (ss *ScenarioSet) Get(id string) (*Scenario, bool) {
	sc, ok := ss.byID[id]
	return sc, ok
}

// IDs returns scenario ids in declaration order.
func (ss *ScenarioSet) IDs() []string {
	return append([]string{}, ss.order...)
}
