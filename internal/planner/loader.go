package planner

import (
	"fmt"

	"github.com/slotworks/relocation-engine/internal/config"
	"github.com/slotworks/relocation-engine/internal/events"
)

// DomainFromConfig builds the lookup tables from a loaded domain.yaml.
func DomainFromConfig(cfg *config.DomainConfig) (*Domain, error) {
	positions := make([]PositionSpec, 0, len(cfg.Positions))
	for _, p := range cfg.Positions {
		positions = append(positions, PositionSpec{ID: p.ID, Height: p.Height})
	}
	blocks := make([]BlockSpec, 0, len(cfg.Blocks))
	for _, b := range cfg.Blocks {
		blocks = append(blocks, BlockSpec{ID: b.ID, Weight: b.Weight})
	}
	distances := make([]DistanceSpec, 0, len(cfg.Distances))
	for _, dist := range cfg.Distances {
		distances = append(distances, DistanceSpec{From: dist.From, To: dist.To, Cost: dist.Cost})
	}

	d, err := NewDomain(cfg.Locations, positions, blocks, distances)
	if err != nil {
		return nil, err
	}

	events.Emit("info", "config.loaded", "", map[string]interface{}{
		"locations": len(cfg.Locations),
		"positions": len(cfg.Positions),
		"blocks":    len(cfg.Blocks),
	})
	return d, nil
}

// ScenariosFromConfig builds the scenario registry from a loaded
// scenarios.yaml, validating every placement against the domain.
func ScenariosFromConfig(d *Domain, cfg *config.ScenariosConfig) (*ScenarioSet, error) {
	var scenarios []*Scenario
	for _, sc := range cfg.Scenarios {
		start, err := placementsFromConfig(sc.Start)
		if err != nil {
			return nil, fmt.Errorf("scenario %s: start: %w", sc.ID, err)
		}
		goal, err := placementsFromConfig(sc.Goal)
		if err != nil {
			return nil, fmt.Errorf("scenario %s: goal: %w", sc.ID, err)
		}

		scenario, err := NewScenario(d, sc.ID, sc.Budget, start, goal)
		if err != nil {
			return nil, err
		}
		scenarios = append(scenarios, scenario)

		events.Emit("info", "scenario.loaded", "", map[string]interface{}{
			"scenario": sc.ID,
			"budget":   sc.Budget,
		})
	}
	return NewScenarioSet(scenarios)
}

func placementsFromConfig(slots map[string]map[int]string) (map[Slot]string, error) {
	out := make(map[Slot]string)
	for location, byPosition := range slots {
		for position, block := range byPosition {
			if block == "" {
				return nil, fmt.Errorf("empty block id at %s:%d", location, position)
			}
			out[Slot{Location: location, Position: position}] = block
		}
	}
	return out, nil
}
