package bridge

import (
	"encoding/json"

	"github.com/archboard/archboard/pkg/graph"
	"github.com/archboard/archboard/pkg/log"
	"github.com/archboard/archboard/pkg/simulator"
	"github.com/archboard/archboard/pkg/types"
	"github.com/rs/zerolog"
)

// MessageType discriminates inbound session messages
type MessageType string

const (
	MessageStarted MessageType = "started"
	MessageStopped MessageType = "stopped"
	MessageStatus  MessageType = "status"
	MessageMetric  MessageType = "metric"
	MessageEvent   MessageType = "event"
	MessageError   MessageType = "error"
)

// Message is the tagged union delivered once per inbound stream frame
type Message struct {
	Type      MessageType     `json:"type"`
	SessionID string          `json:"sessionId,omitempty"`
	Data      json.RawMessage `json:"data,omitempty"`
}

// StatusPayload carries a node status update
type StatusPayload struct {
	NodeID  string             `json:"nodeId"`
	Status  types.NodeState    `json:"status"`
	Metrics *types.NodeMetrics `json:"metrics,omitempty"`
}

// MetricPayload carries a metrics-only update for a node
type MetricPayload struct {
	NodeID  string            `json:"nodeId"`
	Metrics types.NodeMetrics `json:"metrics"`
}

// ErrorPayload carries a session-level error
type ErrorPayload struct {
	Message string `json:"message"`
}

// Dispatcher translates inbound session messages onto the graph store and
// simulation engine. A backend-driven simulation session feeds status and
// events through here instead of the engine's random draws; the graph,
// layout, and document layers are untouched by the difference.
type Dispatcher struct {
	graph  *graph.Store
	engine *simulator.Engine
	logger zerolog.Logger
}

// NewDispatcher creates a dispatcher over the store and engine
func NewDispatcher(g *graph.Store, engine *simulator.Engine) *Dispatcher {
	return &Dispatcher{
		graph:  g,
		engine: engine,
		logger: log.WithComponent("bridge"),
	}
}

// StartSimulation starts the engine on behalf of a session
func (d *Dispatcher) StartSimulation() {
	d.engine.Start()
}

// StopSimulation stops the engine on behalf of a session
func (d *Dispatcher) StopSimulation() {
	d.engine.Stop()
}

// Dispatch applies one inbound message. Malformed payloads and unknown
// node ids are absorbed; an unrecognized tag is logged and ignored, never
// fatal.
func (d *Dispatcher) Dispatch(msg Message) {
	switch msg.Type {
	case MessageStarted:
		d.engine.Start()

	case MessageStopped:
		d.engine.Stop()

	case MessageStatus:
		var p StatusPayload
		if err := json.Unmarshal(msg.Data, &p); err != nil {
			d.logger.Warn().Err(err).Msg("malformed status payload")
			return
		}
		d.graph.UpdateNodeStatus(p.NodeID, p.Status, p.Metrics)

	case MessageMetric:
		var p MetricPayload
		if err := json.Unmarshal(msg.Data, &p); err != nil {
			d.logger.Warn().Err(err).Msg("malformed metric payload")
			return
		}
		status, _ := d.graph.NodeStatus(p.NodeID)
		state := status.State
		if state == "" {
			state = types.NodeStateActive
		}
		m := p.Metrics
		d.graph.UpdateNodeStatus(p.NodeID, state, &m)

	case MessageEvent:
		var event types.SimulationEvent
		if err := json.Unmarshal(msg.Data, &event); err != nil {
			d.logger.Warn().Err(err).Msg("malformed event payload")
			return
		}
		d.engine.AddEvent(event)

	case MessageError:
		var p ErrorPayload
		if err := json.Unmarshal(msg.Data, &p); err != nil {
			d.logger.Warn().Err(err).Msg("malformed error payload")
			return
		}
		d.logger.Error().Str("session_id", msg.SessionID).Str("message", p.Message).Msg("session error")

	default:
		d.logger.Warn().Str("type", string(msg.Type)).Msg("unrecognized message type ignored")
	}
}
