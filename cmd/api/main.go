package main

import (
	"flag"
	"log"
	"os"

	"github.com/slotworks/relocation-engine/internal/api"
	"github.com/slotworks/relocation-engine/internal/config"
	"github.com/slotworks/relocation-engine/internal/events"
	"github.com/slotworks/relocation-engine/internal/mqtt"
	"github.com/slotworks/relocation-engine/internal/planner"
	"github.com/slotworks/relocation-engine/internal/storage/postgres"
)

func main() {
	domainPath := flag.String("domain", "configs/domain.yaml", "path to domain.yaml")
	scenariosPath := flag.String("scenarios", "configs/scenarios.yaml", "path to scenarios.yaml")
	port := flag.Int("port", 8080, "HTTP listen port")
	flag.Parse()

	domainCfg, err := config.LoadDomainConfig(*domainPath)
	if err != nil {
		log.Fatalf("failed to load domain.yaml: %v", err)
	}
	domain, err := planner.DomainFromConfig(domainCfg)
	if err != nil {
		log.Fatalf("invalid domain configuration: %v", err)
	}

	scenariosCfg, err := config.LoadScenariosConfig(*scenariosPath)
	if err != nil {
		log.Fatalf("failed to load scenarios.yaml: %v", err)
	}
	scenarios, err := planner.ScenariosFromConfig(domain, scenariosCfg)
	if err != nil {
		log.Fatalf("invalid scenario configuration: %v", err)
	}

	service := planner.NewService(domain, scenarios)

	api.InitAuth()
	api.InitTLS()
	api.InitMetrics()
	api.InitAlerts()
	api.SetEngineID("planner")

	// Storage is optional; the API degrades to in-memory events and no run
	// history when Postgres is unreachable.
	if client, err := postgres.New("planner"); err != nil {
		log.Printf("postgres unavailable, continuing without storage: %v", err)
		api.SetPostgresConnected(false)
	} else {
		defer client.Close()
		events.SetPostgresClient(client)
		service.SetStore(client)
		api.SetPostgresConnected(true)
	}

	// MQTT is optional as well: when the broker is reachable, results are
	// published and solve requests are accepted over it.
	hostname, _ := os.Hostname()
	mqttClient := mqtt.NewClient("planner-api-" + hostname)
	if mqttClient.StartWithRetry() {
		defer mqttClient.Disconnect()
		events.Emit("info", "mqtt.connected", "", map[string]interface{}{
			"broker": mqtt.BrokerURL(),
		})
		api.SetMQTTConnected(true)
		service.SetPublisher(planner.NewResultPublisher(mqttClient))

		subscriber := mqtt.NewRequestSubscriber(mqttClient, func(req mqtt.SolveRequest) {
			res, err := service.Solve(req.Scenario, req.Budget)
			if err != nil {
				events.Emit("warn", "system.error", "mqtt solve failed", map[string]interface{}{
					"scenario": req.Scenario,
					"error":    err.Error(),
				})
				return
			}
			api.RecordSolve(res.OK)
		})
		if err := subscriber.Start(); err != nil {
			log.Printf("mqtt request subscription failed: %v", err)
		}
	} else {
		api.SetMQTTConnected(false)
	}

	api.SetBackend(service)
	api.SetEngineReady(true)

	if err := api.ListenAndServe(*port); err != nil {
		log.Fatalf("api server failed: %v", err)
	}
}
