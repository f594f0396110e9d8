package api

import (
	"fmt"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/slotworks/relocation-engine/internal/events"
	"github.com/slotworks/relocation-engine/internal/version"
)

var metricsState = &MetricsState{}

// MetricsState holds runtime metrics for the /metrics endpoint.
type MetricsState struct {
	mu            sync.RWMutex
	startTime     time.Time
	engineID      string
	solvesTotal   int64
	solveFailures int64
}

// readiness tracks collaborator connectivity for metrics and alerting.
var readiness = &readinessState{}

type readinessState struct {
	mu                sync.RWMutex
	engineReady       bool
	mqttConnected     bool
	postgresConnected bool
}

// InitMetrics initializes the metrics system. Must be called at startup.
func InitMetrics() {
	metricsState.mu.Lock()
	defer metricsState.mu.Unlock()
	metricsState.startTime = time.Now()
}

// SetEngineID sets the engine identifier for metrics labels.
func SetEngineID(id string) {
	metricsState.mu.Lock()
	defer metricsState.mu.Unlock()
	metricsState.engineID = id
}

// GetEngineID returns the current engine identifier.
func GetEngineID() string {
	metricsState.mu.RLock()
	defer metricsState.mu.RUnlock()
	return metricsState.engineID
}

// RecordSolve counts one solve run; failed plans (no plan within budget)
// count separately.
func RecordSolve(ok bool) {
	metricsState.mu.Lock()
	defer metricsState.mu.Unlock()
	metricsState.solvesTotal++
	if !ok {
		metricsState.solveFailures++
	}
}

// SetEngineReady marks the solver backend as wired up.
func SetEngineReady(ready bool) {
	readiness.mu.Lock()
	readiness.engineReady = ready
	readiness.mu.Unlock()
}

// SetMQTTConnected records broker connectivity and feeds the alerter.
func SetMQTTConnected(connected bool) {
	readiness.mu.Lock()
	readiness.mqttConnected = connected
	readiness.mu.Unlock()
	CheckAndAlertMQTT(connected)
}

// SetPostgresConnected records storage connectivity and feeds the alerter.
func SetPostgresConnected(connected bool) {
	readiness.mu.Lock()
	readiness.postgresConnected = connected
	readiness.mu.Unlock()
	CheckAndAlertPostgres(connected)
}

// metricsHandler returns Prometheus-compatible metrics in text format.
func metricsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	metricsState.mu.RLock()
	startTime := metricsState.startTime
	engineID := metricsState.engineID
	solvesTotal := metricsState.solvesTotal
	solveFailures := metricsState.solveFailures
	metricsState.mu.RUnlock()

	uptime := time.Since(startTime).Seconds()
	eventsTotal := events.TotalCount()

	readiness.mu.RLock()
	engineReady := readiness.engineReady
	mqttConnected := readiness.mqttConnected
	postgresConnected := readiness.postgresConnected
	readiness.mu.RUnlock()

	wsClients := events.SubscriberCount()

	boolVal := func(b bool) int {
		if b {
			return 1
		}
		return 0
	}

	hostname, _ := os.Hostname()
	if hostname == "" {
		hostname = "unknown"
	}

	w.Header().Set("Content-Type", "text/plain; version=0.0.4; charset=utf-8")

	writeMetric := func(name, mtype, help string, value interface{}, labels string) {
		fmt.Fprintf(w, "# HELP %s %s\n", name, help)
		fmt.Fprintf(w, "# TYPE %s %s\n", name, mtype)
		if labels != "" {
			fmt.Fprintf(w, "%s{%s} %v\n", name, labels, value)
		} else {
			fmt.Fprintf(w, "%s %v\n", name, value)
		}
	}

	labels := fmt.Sprintf(`engine="%s",instance="%s",version="%s"`, engineID, hostname, version.Version)

	writeMetric("planner_uptime_seconds", "gauge",
		"Number of seconds since the engine started", uptime, labels)

	writeMetric("planner_engine_ready", "gauge",
		"Whether the solver backend is wired up (1) or not (0)", boolVal(engineReady), labels)

	writeMetric("planner_solves_total", "counter",
		"Total number of solve runs since startup", solvesTotal, labels)

	writeMetric("planner_solve_failures_total", "counter",
		"Solve runs that found no plan within budget", solveFailures, labels)

	writeMetric("planner_events_total", "counter",
		"Total number of events emitted since startup", eventsTotal, labels)

	writeMetric("planner_mqtt_connected", "gauge",
		"Whether the MQTT broker is connected (1) or not (0)", boolVal(mqttConnected), labels)

	writeMetric("planner_postgres_connected", "gauge",
		"Whether PostgreSQL is connected (1) or not (0)", boolVal(postgresConnected), labels)

	writeMetric("planner_ws_clients", "gauge",
		"Number of active WebSocket client connections", wsClients, labels)
}
