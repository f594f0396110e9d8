package planner

import (
	"encoding/json"
	"fmt"

	"github.com/slotworks/relocation-engine/internal/events"
	"github.com/slotworks/relocation-engine/internal/mqtt"
)

// ResultPublisher pushes solve results to the MQTT result topics for the
// rendering collaborator.
type ResultPublisher struct {
	client *mqtt.Client
}

func NewResultPublisher(client *mqtt.Client) *ResultPublisher {
	return &ResultPublisher{client: client}
}

// Publish sends the result to planner/results/<scenario> as a retained
// message, so a consumer attaching later still sees the latest outcome.
func (p *ResultPublisher) Publish(res *Result) error {
	payload, err := json.Marshal(res)
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}

	topic := mqtt.ResultTopicPrefix + res.Scenario
	if err := p.client.Publish(topic, payload, true); err != nil {
		return err
	}

	events.Emit("info", "plan.published", "", map[string]interface{}{
		"scenario": res.Scenario,
		"topic":    topic,
		"ok":       res.OK,
	})
	return nil
}
