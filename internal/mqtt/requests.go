package mqtt

import (
	"encoding/json"
	"sync"

	paho "github.com/eclipse/paho.mqtt.golang"

	"github.com/slotworks/relocation-engine/internal/events"
)

const (
	// RequestTopic is where collaborators publish solve requests.
	RequestTopic = "planner/solve/request"

	// ResultTopicPrefix is the base topic for published results; the
	// scenario id is appended per result.
	ResultTopicPrefix = "planner/results/"
)

// SolveRequest is the payload accepted on the request topic. A nil Budget
// means "use the scenario's configured default".
type SolveRequest struct {
	Scenario string `json:"scenario"`
	Budget   *int   `json:"budget,omitempty"`
}

// RequestHandler processes one decoded solve request.
type RequestHandler func(req SolveRequest)

// RequestSubscriber listens for solve requests on the request topic and
// dispatches them to a handler. Subscription handling is idempotent across
// reconnects.
type RequestSubscriber struct {
	mu         sync.Mutex
	client     *Client
	handler    RequestHandler
	subscribed bool
}

// NewRequestSubscriber creates a subscriber; Start performs the actual
// subscription.
func NewRequestSubscriber(client *Client, handler RequestHandler) *RequestSubscriber {
	return &RequestSubscriber{
		client:  client,
		handler: handler,
	}
}

// Start subscribes to the request topic. Calling it again after a successful
// subscription is a no-op.
func (s *RequestSubscriber) Start() error {
	s.mu.Lock()
	if s.subscribed {
		s.mu.Unlock()
		return nil
	}
	s.mu.Unlock()

	if err := s.client.Subscribe(RequestTopic, s.onMessage); err != nil {
		return err
	}

	s.mu.Lock()
	s.subscribed = true
	s.mu.Unlock()
	return nil
}

func (s *RequestSubscriber) onMessage(_ paho.Client, msg paho.Message) {
	var req SolveRequest
	if err := json.Unmarshal(msg.Payload(), &req); err != nil {
		events.Emit("warn", "system.error", "malformed solve request", map[string]interface{}{
			"topic": msg.Topic(),
			"error": err.Error(),
		})
		return
	}
	if req.Scenario == "" {
		events.Emit("warn", "system.error", "solve request without scenario", map[string]interface{}{
			"topic": msg.Topic(),
		})
		return
	}

	fields := map[string]interface{}{"scenario": req.Scenario}
	if req.Budget != nil {
		fields["budget"] = *req.Budget
	}
	events.Emit("info", "solve.requested", "", fields)

	s.handler(req)
}
