package events

import "fmt"

var allowedEvents = map[string]struct{}{
	// configuration
	"config.loaded":   {},
	"scenario.loaded": {},

	// search
	"search.started":   {},
	"search.succeeded": {},
	"search.failed":    {},

	// interop
	"solve.requested": {},
	"plan.published":  {},
	"run.stored":      {},

	// operator
	"operator.solve": {},

	// mqtt
	"mqtt.connected":    {},
	"mqtt.disconnected": {},

	// system
	"system.startup":  {},
	"system.shutdown": {},
	"system.error":    {},
}

func Validate(event string) error {
	if _, ok := allowedEvents[event]; !ok {
		return fmt.Errorf("unknown event: %s", event)
	}
	return nil
}
