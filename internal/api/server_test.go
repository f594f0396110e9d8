package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/slotworks/relocation-engine/internal/planner"
)

// stubBackend implements SolveBackend with canned responses.
type stubBackend struct {
	infos     []planner.ScenarioInfo
	result    *planner.Result
	solveErr  error
	lastID    string
	lastOver  *int
	solveSeen int
}

func (s *stubBackend) ScenarioInfos() []planner.ScenarioInfo {
	return s.infos
}

func (s *stubBackend) Solve(scenarioID string, budgetOverride *int) (*planner.Result, error) {
	s.solveSeen++
	s.lastID = scenarioID
	s.lastOver = budgetOverride
	if s.solveErr != nil {
		return nil, s.solveErr
	}
	return s.result, nil
}

func TestHealthEndpoint(t *testing.T) {
	req := httptest.NewRequest("GET", "/healthz", nil)
	w := httptest.NewRecorder()

	healthHandler(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", w.Code)
	}

	var resp HealthResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Status != "ok" {
		t.Errorf("expected status 'ok', got '%s'", resp.Status)
	}
}

func TestScenariosEndpoint(t *testing.T) {
	budget := 30
	best := 11
	SetBackend(&stubBackend{infos: []planner.ScenarioInfo{
		{ID: "s1", Budget: budget, Blocks: 3, Misplaced: 2, BestKnownCost: &best},
	}})
	defer SetBackend(nil)

	req := httptest.NewRequest("GET", "/api/scenarios", nil)
	w := httptest.NewRecorder()

	scenariosHandler(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var infos []planner.ScenarioInfo
	if err := json.NewDecoder(w.Body).Decode(&infos); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(infos) != 1 || infos[0].ID != "s1" {
		t.Errorf("unexpected scenario list: %+v", infos)
	}
	if infos[0].BestKnownCost == nil || *infos[0].BestKnownCost != 11 {
		t.Errorf("expected best known cost 11, got %v", infos[0].BestKnownCost)
	}
}

func TestScenariosEndpoint_NoBackend(t *testing.T) {
	SetBackend(nil)

	req := httptest.NewRequest("GET", "/api/scenarios", nil)
	w := httptest.NewRecorder()

	scenariosHandler(w, req)

	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("expected status 503 without a backend, got %d", w.Code)
	}
}

func TestSolveEndpoint_Success(t *testing.T) {
	stub := &stubBackend{result: &planner.Result{
		OK:       true,
		Scenario: "s1",
		Budget:   30,
		Cost:     11,
		Plan:     []planner.PlanStep{},
		Goal:     map[string]string{"a:1": "a"},
	}}
	SetBackend(stub)
	defer SetBackend(nil)

	body := strings.NewReader(`{"scenario": "s1"}`)
	req := httptest.NewRequest("POST", "/api/solve", body)
	w := httptest.NewRecorder()

	solveHandler(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	if stub.lastID != "s1" || stub.lastOver != nil {
		t.Errorf("backend called with id=%q override=%v", stub.lastID, stub.lastOver)
	}

	var doc map[string]interface{}
	if err := json.NewDecoder(w.Body).Decode(&doc); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if doc["ok"] != true || doc["cost"] != float64(11) {
		t.Errorf("unexpected result document: %v", doc)
	}
}

func TestSolveEndpoint_BudgetOverride(t *testing.T) {
	stub := &stubBackend{result: &planner.Result{
		OK:       false,
		Scenario: "s3",
		Budget:   5,
		Reason:   planner.ReasonNoPlanWithinBudget,
		Goal:     map[string]string{},
	}}
	SetBackend(stub)
	defer SetBackend(nil)

	body := strings.NewReader(`{"scenario": "s3", "budget": 5}`)
	req := httptest.NewRequest("POST", "/api/solve", body)
	w := httptest.NewRecorder()

	solveHandler(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	if stub.lastOver == nil || *stub.lastOver != 5 {
		t.Errorf("expected budget override 5, got %v", stub.lastOver)
	}

	var doc map[string]interface{}
	if err := json.NewDecoder(w.Body).Decode(&doc); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if doc["ok"] != false || doc["error"] != planner.ReasonNoPlanWithinBudget {
		t.Errorf("unexpected result document: %v", doc)
	}
}

func TestSolveEndpoint_Validation(t *testing.T) {
	SetBackend(&stubBackend{})
	defer SetBackend(nil)

	cases := []struct {
		name   string
		method string
		body   string
		want   int
	}{
		{"method not allowed", "GET", "", http.StatusMethodNotAllowed},
		{"invalid json", "POST", "{not json", http.StatusBadRequest},
		{"missing scenario", "POST", `{}`, http.StatusBadRequest},
		{"negative budget", "POST", `{"scenario": "s1", "budget": -1}`, http.StatusBadRequest},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, "/api/solve", strings.NewReader(tc.body))
			w := httptest.NewRecorder()

			solveHandler(w, req)

			if w.Code != tc.want {
				t.Errorf("expected status %d, got %d", tc.want, w.Code)
			}
		})
	}
}

func TestSolveEndpoint_UnknownScenario(t *testing.T) {
	SetBackend(&stubBackend{solveErr: fmt.Errorf("unknown scenario: nope")})
	defer SetBackend(nil)

	body := strings.NewReader(`{"scenario": "nope"}`)
	req := httptest.NewRequest("POST", "/api/solve", body)
	w := httptest.NewRecorder()

	solveHandler(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", w.Code)
	}

	var resp ErrorResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Error == "" {
		t.Error("expected non-empty error message")
	}
}

func TestRunsEndpoint_NoStorage(t *testing.T) {
	req := httptest.NewRequest("GET", "/api/runs", nil)
	w := httptest.NewRecorder()

	runsHandler(w, req)

	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("expected status 503 without storage, got %d", w.Code)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	InitMetrics()
	SetEngineID("planner")
	RecordSolve(true)
	RecordSolve(false)

	req := httptest.NewRequest("GET", "/metrics", nil)
	w := httptest.NewRecorder()

	metricsHandler(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	body := w.Body.String()
	for _, metric := range []string{
		"planner_uptime_seconds",
		"planner_solves_total",
		"planner_solve_failures_total",
		"planner_events_total",
		"planner_ws_clients",
	} {
		if !strings.Contains(body, metric) {
			t.Errorf("metrics output missing %s", metric)
		}
	}
	if !strings.Contains(body, `engine="planner"`) {
		t.Error("metrics output missing engine label")
	}
}

func TestUIHandler(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()

	uiHandler(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("expected HTML content type, got %q", ct)
	}

	req = httptest.NewRequest("GET", "/does-not-exist", nil)
	w = httptest.NewRecorder()

	uiHandler(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected status 404 for unknown path, got %d", w.Code)
	}
}
