package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/slotworks/relocation-engine/internal/config"
	"github.com/slotworks/relocation-engine/internal/events"
	"github.com/slotworks/relocation-engine/internal/mqtt"
	"github.com/slotworks/relocation-engine/internal/planner"
	"github.com/slotworks/relocation-engine/internal/storage/postgres"
)

type LogLine struct {
	Timestamp string                 `json:"ts"`
	Level     string                 `json:"level"`
	Event     string                 `json:"event"`
	Message   string                 `json:"msg,omitempty"`
	Fields    map[string]interface{} `json:"fields,omitempty"`
}

// Logs go to stderr; stdout carries only the result documents consumed by
// the rendering collaborator.
func logEvent(level, event, msg string, fields map[string]interface{}) {
	line := LogLine{
		Timestamp: time.Now().UTC().Format(time.RFC3339Nano),
		Level:     level,
		Event:     event,
		Message:   msg,
		Fields:    fields,
	}
	b, _ := json.Marshal(line)
	fmt.Fprintln(os.Stderr, string(b))
}

func fatal(msg string, err error) {
	logEvent("error", "system.error", msg, map[string]interface{}{
		"error": err.Error(),
	})
	os.Exit(1)
}

func main() {
	domainPath := flag.String("domain", "configs/domain.yaml", "path to domain.yaml")
	scenariosPath := flag.String("scenarios", "configs/scenarios.yaml", "path to scenarios.yaml")
	scenarioID := flag.String("scenario", "", "solve a single scenario (default: all)")
	budget := flag.Int("budget", -1, "budget override (default: scenario budget)")
	verify := flag.Bool("verify", false, "replay each returned plan and check its cost")
	publish := flag.Bool("publish", false, "publish results to the MQTT broker")
	store := flag.Bool("store", false, "persist runs and events to Postgres")
	flag.Parse()

	hostname, _ := os.Hostname()
	logEvent("info", "system.startup", "planner starting", map[string]interface{}{
		"service":  "planner",
		"hostname": hostname,
		"pid":      os.Getpid(),
	})

	domainCfg, err := config.LoadDomainConfig(*domainPath)
	if err != nil {
		fatal("failed to load domain.yaml", err)
	}
	domain, err := planner.DomainFromConfig(domainCfg)
	if err != nil {
		fatal("invalid domain configuration", err)
	}

	scenariosCfg, err := config.LoadScenariosConfig(*scenariosPath)
	if err != nil {
		fatal("failed to load scenarios.yaml", err)
	}
	scenarios, err := planner.ScenariosFromConfig(domain, scenariosCfg)
	if err != nil {
		fatal("invalid scenario configuration", err)
	}

	service := planner.NewService(domain, scenarios)

	if *store {
		client, err := postgres.New("planner")
		if err != nil {
			fatal("failed to connect to postgres", err)
		}
		defer client.Close()
		events.SetPostgresClient(client)
		service.SetStore(client)
	}

	var mqttClient *mqtt.Client
	if *publish {
		mqttClient = mqtt.NewClient("planner-" + hostname)
		if err := mqttClient.Connect(); err != nil {
			fatal("failed to connect to mqtt broker", err)
		}
		defer mqttClient.Disconnect()
		events.Emit("info", "mqtt.connected", "", map[string]interface{}{
			"broker": mqtt.BrokerURL(),
		})
		service.SetPublisher(planner.NewResultPublisher(mqttClient))
	}

	ids := service.ScenarioIDs()
	if *scenarioID != "" {
		ids = []string{*scenarioID}
	}

	var budgetOverride *int
	if *budget >= 0 {
		budgetOverride = budget
	}

	out := json.NewEncoder(os.Stdout)
	for _, id := range ids {
		res, err := service.Solve(id, budgetOverride)
		if err != nil {
			fatal("solve failed", err)
		}

		if *verify && res.OK {
			sc, _ := service.Scenario(id)
			if err := planner.VerifyResult(domain, sc, res); err != nil {
				fatal("plan verification failed", err)
			}
		}

		if err := out.Encode(res); err != nil {
			fatal("failed to write result", err)
		}
	}

	logEvent("info", "system.shutdown", "planner done", map[string]interface{}{
		"scenarios": len(ids),
	})
}
