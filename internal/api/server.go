package api

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/slotworks/relocation-engine/internal/events"
	"github.com/slotworks/relocation-engine/internal/planner"
)

// SolveBackend is the engine surface the API exposes.
type SolveBackend interface {
	ScenarioInfos() []planner.ScenarioInfo
	Solve(scenarioID string, budgetOverride *int) (*planner.Result, error)
}

var backend SolveBackend

// SetBackend sets the engine used by the solve endpoints.
func SetBackend(b SolveBackend) {
	backend = b
}

type HealthResponse struct {
	Status    string `json:"status"`
	Service   string `json:"service"`
	Hostname  string `json:"hostname"`
	Timestamp string `json:"ts"`
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	host, _ := os.Hostname()
	resp := HealthResponse{
		Status:    "ok",
		Service:   "api",
		Hostname:  host,
		Timestamp: time.Now().UTC().Format(time.RFC3339Nano),
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

func eventsHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(events.Snapshot())
}

func scenariosHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if backend == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		_ = json.NewEncoder(w).Encode(ErrorResponse{Error: "engine not ready"})
		return
	}

	infos := backend.ScenarioInfos()
	if infos == nil {
		infos = []planner.ScenarioInfo{}
	}
	_ = json.NewEncoder(w).Encode(infos)
}

// SolveRequest is the body of POST /api/solve.
type SolveRequest struct {
	Scenario string `json:"scenario"`
	Budget   *int   `json:"budget,omitempty"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func solveHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		_ = json.NewEncoder(w).Encode(ErrorResponse{Error: "method not allowed"})
		return
	}

	var req SolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(ErrorResponse{Error: "invalid JSON"})
		return
	}

	if req.Scenario == "" {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(ErrorResponse{Error: "scenario required"})
		return
	}
	if req.Budget != nil && *req.Budget < 0 {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(ErrorResponse{Error: "budget must be >= 0"})
		return
	}

	if backend == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		_ = json.NewEncoder(w).Encode(ErrorResponse{Error: "engine not ready"})
		return
	}

	fields := map[string]interface{}{"scenario": req.Scenario}
	if req.Budget != nil {
		fields["budget"] = *req.Budget
	}
	events.Emit("info", "operator.solve", "", fields)

	res, err := backend.Solve(req.Scenario, req.Budget)
	if err != nil {
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(ErrorResponse{Error: err.Error()})
		return
	}

	RecordSolve(res.OK)
	_ = json.NewEncoder(w).Encode(res)
}

func runsHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	client := events.GetPostgresClient()
	if client == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		_ = json.NewEncoder(w).Encode(ErrorResponse{Error: "storage not configured"})
		return
	}

	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(ErrorResponse{Error: "invalid limit"})
			return
		}
		limit = n
	}

	runs, err := client.RecentRuns(limit)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(ErrorResponse{Error: "query failed"})
		return
	}
	_ = json.NewEncoder(w).Encode(runs)
}

// ListenAndServe starts the API server on the given port.
// It blocks until the server exits.
func ListenAndServe(port int) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", healthHandler)
	mux.HandleFunc("/metrics", metricsHandler)
	mux.HandleFunc("/", uiHandler)
	mux.HandleFunc("/api/scenarios", RequireAnyRole(scenariosHandler))
	mux.HandleFunc("/api/solve", RequireAnyRole(solveHandler))
	mux.HandleFunc("/api/runs", RequireAnyRole(runsHandler))
	mux.HandleFunc("/api/events", RequireAnyRole(eventsHandler))
	mux.HandleFunc("/ws/events", wsEventsHandler)

	addr := fmt.Sprintf(":%d", port)

	if IsTLSEnabled() {
		srv := &http.Server{
			Addr:      addr,
			Handler:   mux,
			TLSConfig: LoadTLSConfig(),
		}
		log.Printf("API listening on %s (TLS)\n", addr)
		return srv.ListenAndServeTLS("", "")
	}

	log.Printf("API listening on %s\n", addr)
	return http.ListenAndServe(addr, mux)
}

// Start starts the API server in a goroutine.
// Errors are logged but do not stop the caller.
func Start(port int) {
	go func() {
		if err := ListenAndServe(port); err != nil {
			log.Printf("api server error: %v", err)
		}
	}()
}
