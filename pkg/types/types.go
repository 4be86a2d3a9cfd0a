package types

import (
	"encoding/json"
	"time"
)

// NodeKind identifies the component type a diagram node represents
type NodeKind string

const (
	KindService      NodeKind = "generic-service"
	KindDatabase     NodeKind = "database"
	KindMessageQueue NodeKind = "message-queue"
	KindLoadBalancer NodeKind = "load-balancer"
	KindCache        NodeKind = "cache"
	KindAPIGateway   NodeKind = "api-gateway"
)

// Position is a 2D canvas coordinate
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// PropertyType tags how a property value is interpreted and edited
type PropertyType string

const (
	PropertyString   PropertyType = "string"
	PropertyNumber   PropertyType = "number"
	PropertyBoolean  PropertyType = "boolean"
	PropertySelect   PropertyType = "select"
	PropertyTextarea PropertyType = "textarea"
	PropertySlider   PropertyType = "slider"
	PropertyJSON     PropertyType = "json"
)

// ValueKind discriminates the variants of Value
type ValueKind int

const (
	ValueString ValueKind = iota
	ValueNumber
	ValueBool
)

// Value is a tagged string/number/boolean union. Property editors and the
// serializer switch on Kind so every variant is handled explicitly instead
// of type-asserting an untyped interface.
type Value struct {
	Kind ValueKind
	Str  string
	Num  float64
	Bool bool
}

// StringValue wraps a string in a Value
func StringValue(s string) Value { return Value{Kind: ValueString, Str: s} }

// NumberValue wraps a number in a Value
func NumberValue(n float64) Value { return Value{Kind: ValueNumber, Num: n} }

// BoolValue wraps a boolean in a Value
func BoolValue(b bool) Value { return Value{Kind: ValueBool, Bool: b} }

// ValueOf converts a decoded JSON scalar into a Value. Non-scalar input
// falls back to an empty string value.
func ValueOf(v any) Value {
	switch x := v.(type) {
	case string:
		return StringValue(x)
	case float64:
		return NumberValue(x)
	case int:
		return NumberValue(float64(x))
	case bool:
		return BoolValue(x)
	default:
		return StringValue("")
	}
}

// Any returns the untyped scalar for JSON encoding
func (v Value) Any() any {
	switch v.Kind {
	case ValueNumber:
		return v.Num
	case ValueBool:
		return v.Bool
	default:
		return v.Str
	}
}

// MarshalJSON encodes the underlying scalar, not the tagged struct
func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Any())
}

// UnmarshalJSON sniffs the scalar type from the raw JSON
func (v *Value) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*v = ValueOf(raw)
	return nil
}

// Property is one editable attribute of a diagram node
type Property struct {
	ID       string       `json:"id"`
	Name     string       `json:"name"`
	Type     PropertyType `json:"type"`
	Value    Value        `json:"value"`
	Min      float64      `json:"min,omitempty"`
	Max      float64      `json:"max,omitempty"`
	Step     float64      `json:"step,omitempty"`
	Options  []string     `json:"options,omitempty"`
	Required bool         `json:"required,omitempty"`
}

// DiagramNode represents a system component placed on the canvas
type DiagramNode struct {
	ID         string     `json:"id"`
	Kind       NodeKind   `json:"kind"`
	Label      string     `json:"label"`
	Position   Position   `json:"position"`
	Properties []Property `json:"properties"`

	// Transient UI state, never serialized into a design document
	Selected bool `json:"selected,omitempty"`
	Dragging bool `json:"dragging,omitempty"`
}

// Property returns the property with the given id, or nil
func (n *DiagramNode) Property(id string) *Property {
	for i := range n.Properties {
		if n.Properties[i].ID == id {
			return &n.Properties[i]
		}
	}
	return nil
}

// EdgeState represents the simulation status of a connection
type EdgeState string

const (
	EdgeStateIdle    EdgeState = "idle"
	EdgeStateActive  EdgeState = "active"
	EdgeStateError   EdgeState = "error"
	EdgeStateSuccess EdgeState = "success"
)

// EdgeData carries the simulation-visible fields of an edge
type EdgeData struct {
	Name       string    `json:"name,omitempty"`
	Status     EdgeState `json:"status"`
	Protocol   string    `json:"protocol"`
	Throughput float64   `json:"throughput"`
	Latency    float64   `json:"latency"`
	Bandwidth  float64   `json:"bandwidth,omitempty"`
	ErrorRate  float64   `json:"errorRate"`
}

// DiagramEdge is a directed connection between two diagram nodes
type DiagramEdge struct {
	ID           string   `json:"id"`
	Source       string   `json:"source"`
	Target       string   `json:"target"`
	SourceHandle string   `json:"sourceHandle,omitempty"`
	TargetHandle string   `json:"targetHandle,omitempty"`
	Data         EdgeData `json:"data"`
}

// NodeState represents the simulation status of a node
type NodeState string

const (
	NodeStateIdle    NodeState = "idle"
	NodeStateActive  NodeState = "active"
	NodeStateWarning NodeState = "warning"
	NodeStateError   NodeState = "error"
)

// NodeMetrics holds per-node runtime metrics written by the simulator
type NodeMetrics struct {
	CPU      float64 `json:"cpu"`
	Memory   float64 `json:"memory"`
	Requests float64 `json:"requests"`
	Latency  float64 `json:"latency"`
}

// LogLevel classifies a node log entry
type LogLevel string

const (
	LogInfo    LogLevel = "info"
	LogWarning LogLevel = "warning"
	LogError   LogLevel = "error"
)

// LogEntry is one line of a node's simulation log
type LogEntry struct {
	Timestamp time.Time `json:"timestamp"`
	Level     LogLevel  `json:"level"`
	Message   string    `json:"message"`
}

// NodeStatus is the simulation state of one node, keyed by node id and held
// apart from DiagramNode so simulation writes never contend with structural
// graph edits
type NodeStatus struct {
	State   NodeState    `json:"status"`
	Metrics *NodeMetrics `json:"metrics,omitempty"`
	Logs    []LogEntry   `json:"logs,omitempty"`
}

// EventType classifies a simulation event for the timeline
type EventType string

const (
	EventInfo    EventType = "info"
	EventWarning EventType = "warning"
	EventError   EventType = "error"
)

// SimulationEvent is a discrete timestamped occurrence on the simulation
// timeline. Time is simulated seconds, not wall clock.
type SimulationEvent struct {
	ID          string    `json:"id"`
	Time        float64   `json:"time"`
	Type        EventType `json:"type"`
	ComponentID string    `json:"componentId,omitempty"`
	Message     string    `json:"message"`
}

// Snapshot is a named point-in-time capture of the graph and simulation clock
type Snapshot struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	Nodes     []DiagramNode `json:"nodes"`
	Edges     []DiagramEdge `json:"edges"`
	Time      float64       `json:"time"`
	CreatedAt time.Time     `json:"created_at"`
}

// Viewport is the canvas pan/zoom state
type Viewport struct {
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Zoom float64 `json:"zoom"`
}

// DefaultViewport returns the origin viewport at 1x zoom
func DefaultViewport() Viewport {
	return Viewport{X: 0, Y: 0, Zoom: 1}
}

// Project is a named container for one design document
type Project struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description,omitempty"`
	LastModified int64  `json:"lastModified"` // epoch millis
}

// CanvasSize is the bounding extent of a serialized design
type CanvasSize struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// DocumentMetadata describes a serialized design document
type DocumentMetadata struct {
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
	CanvasSize CanvasSize `json:"canvas_size"`
}

// DocumentNode is the transport form of a node: position plus a flat data
// record keyed by property id
type DocumentNode struct {
	ID       string         `json:"id"`
	Type     NodeKind       `json:"type"`
	Position Position       `json:"position"`
	Data     map[string]any `json:"data"`
}

// DocumentEdge is the transport form of an edge
type DocumentEdge struct {
	ID           string         `json:"id"`
	Source       string         `json:"source"`
	Target       string         `json:"target"`
	SourceHandle string         `json:"sourceHandle,omitempty"`
	TargetHandle string         `json:"targetHandle,omitempty"`
	Data         map[string]any `json:"data"`
}

// Document is the versioned design document persisted as a project's design
// data and exchanged with the backend
type Document struct {
	Version  string           `json:"version"`
	Nodes    []DocumentNode   `json:"nodes"`
	Edges    []DocumentEdge   `json:"edges"`
	Viewport Viewport         `json:"viewport"`
	Metadata DocumentMetadata `json:"metadata"`
}
