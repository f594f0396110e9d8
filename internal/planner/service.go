package planner

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/slotworks/relocation-engine/internal/events"
	"github.com/slotworks/relocation-engine/internal/storage/postgres"
)

// ScenarioInfo is a summary of one configured scenario for listings.
type ScenarioInfo struct {
	ID            string `json:"id"`
	Budget        int    `json:"budget"`
	Blocks        int    `json:"blocks"`
	Misplaced     int    `json:"misplaced"`
	BestKnownCost *int   `json:"best_known_cost,omitempty"`
}

// Service ties the solver to the scenario registry and the optional
// collaborators (result storage, MQTT publishing). It is the single entry
// point both binaries and the MQTT request path use.
type Service struct {
	domain    *Domain
	scenarios *ScenarioSet
	solver    *Solver
	store     *postgres.Client
	publisher *ResultPublisher
}

func NewService(d *Domain, scenarios *ScenarioSet) *Service {
	return &Service{
		domain:    d,
		scenarios: scenarios,
		solver:    NewSolver(d),
	}
}

// SetStore attaches run persistence. Nil is tolerated everywhere.
func (s *Service) SetStore(store *postgres.Client) {
	s.store = store
}

// SetPublisher attaches MQTT result publishing.
func (s *Service) SetPublisher(p *ResultPublisher) {
	s.publisher = p
}

// Domain returns the service's lookup tables.
func (s *Service) Domain() *Domain {
	return s.domain
}

// Scenario returns a configured scenario by id.
func (s *Service) Scenario(id string) (*Scenario, bool) {
	return s.scenarios.Get(id)
}

// ScenarioIDs returns the configured scenario ids in declaration order.
func (s *Service) ScenarioIDs() []string {
	return s.scenarios.IDs()
}

// ScenarioInfos summarizes every configured scenario, annotated with the
// best stored cost when run storage is attached.
func (s *Service) ScenarioInfos() []ScenarioInfo {
	best, err := BestKnownCosts(s.store, DefaultHistoryLimit)
	if err != nil {
		events.Emit("warn", "system.error", "failed to load run history", map[string]interface{}{
			"error": err.Error(),
		})
		best = nil
	}

	var infos []ScenarioInfo
	for _, id := range s.scenarios.IDs() {
		sc, _ := s.scenarios.Get(id)
		info := ScenarioInfo{
			ID:        sc.ID,
			Budget:    sc.Budget,
			Blocks:    sc.Start.OccupiedCount(),
			Misplaced: Heuristic(sc.Start, sc.Goal),
		}
		if cost, ok := best[sc.ID]; ok {
			c := cost
			info.BestKnownCost = &c
		}
		infos = append(infos, info)
	}
	return infos
}

// Solve runs one scenario, with an optional budget override, and feeds the
// result to the attached collaborators. The returned error covers broken
// configuration and unknown scenarios only; "no plan within budget" is a
// regular failure result.
func (s *Service) Solve(scenarioID string, budgetOverride *int) (*Result, error) {
	sc, ok := s.scenarios.Get(scenarioID)
	if !ok {
		return nil, fmt.Errorf("unknown scenario: %s", scenarioID)
	}

	budget := sc.Budget
	if budgetOverride != nil {
		budget = *budgetOverride
	}

	res, err := s.solver.SolveWithBudget(sc, budget)
	if err != nil {
		return nil, err
	}

	if s.publisher != nil {
		if err := s.publisher.Publish(res); err != nil {
			events.Emit("warn", "system.error", "result publish failed", map[string]interface{}{
				"scenario": res.Scenario,
				"error":    err.Error(),
			})
		}
	}
	if s.store != nil {
		s.storeRun(res)
	}

	return res, nil
}

func (s *Service) storeRun(res *Result) {
	goalJSON, err := json.Marshal(res.Goal)
	if err != nil {
		return
	}

	var cost *int
	var reason *string
	var planJSON json.RawMessage
	if res.OK {
		c := res.Cost
		cost = &c
		planJSON, err = json.Marshal(res.Plan)
		if err != nil {
			return
		}
	} else {
		r := res.Reason
		reason = &r
	}

	if err := s.store.InsertRun(time.Now().UTC(), res.Scenario, res.Budget, res.OK, cost, reason, planJSON, goalJSON); err != nil {
		events.Emit("warn", "system.error", "run store failed", map[string]interface{}{
			"scenario": res.Scenario,
			"error":    err.Error(),
		})
		return
	}

	events.Emit("info", "run.stored", "", map[string]interface{}{
		"scenario": res.Scenario,
		"ok":       res.OK,
	})
}
