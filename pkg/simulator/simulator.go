package simulator

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/archboard/archboard/pkg/events"
	"github.com/archboard/archboard/pkg/graph"
	"github.com/archboard/archboard/pkg/log"
	"github.com/archboard/archboard/pkg/metrics"
	"github.com/archboard/archboard/pkg/types"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	// DefaultSpeed is the simulation speed multiplier at startup
	DefaultSpeed = 1.0
	// DefaultDuration is the configured simulated length in seconds
	DefaultDuration = 300.0
	// MinSpeed and MaxSpeed bound the practical speed range
	MinSpeed = 0.1
	MaxSpeed = 5.0
)

// Source supplies uniform random numbers in [0, 1). The engine takes its
// randomness through this interface so tests can inject a fixed sequence.
type Source interface {
	Float64() float64
}

type timeSource struct{ rng *rand.Rand }

func (t *timeSource) Float64() float64 { return t.rng.Float64() }

// NewSource returns a time-seeded random source
func NewSource() Source {
	return &timeSource{rng: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// Engine is the mock simulation engine: a cancellable recurring tick loop
// that assigns weighted-random status and metrics to every node and edge,
// appends timestamped events for warning and error states, and advances a
// simulation clock bounded by the configured duration.
//
// The engine has two states, Stopped and Running. Start moves it to Running;
// Pause and Stop move it back. Stop additionally resets the clock to zero.
// Node status and logs written during a run persist until the next run
// overwrites them or the project is switched.
type Engine struct {
	store  *graph.Store
	broker *events.Broker
	rng    Source
	logger zerolog.Logger

	mu          sync.Mutex
	running     bool
	currentTime float64
	speed       float64
	duration    float64
	simEvents   []types.SimulationEvent
	snapshots   map[string]types.Snapshot
	stopCh      chan struct{}
}

// NewEngine creates a simulation engine over the given store. The broker
// may be nil. A nil source gets a time-seeded default.
func NewEngine(store *graph.Store, broker *events.Broker, src Source) *Engine {
	if src == nil {
		src = NewSource()
	}
	return &Engine{
		store:     store,
		broker:    broker,
		rng:       src,
		logger:    log.WithComponent("simulator"),
		speed:     DefaultSpeed,
		duration:  DefaultDuration,
		snapshots: make(map[string]types.Snapshot),
	}
}

// Start begins the tick loop. It is a no-op if the engine is already
// running.
func (e *Engine) Start() {
	e.mu.Lock()
	if e.running {
		e.mu.Unlock()
		return
	}
	e.running = true
	e.stopCh = make(chan struct{})
	stopCh := e.stopCh
	e.mu.Unlock()

	e.logger.Info().Float64("speed", e.Speed()).Float64("duration", e.Duration()).Msg("simulation started")
	e.publish(&events.Event{Type: events.EventSimulationStarted, Message: "simulation started"})
	metrics.SimulationRunning.Set(1)

	go e.run(stopCh)
}

// Pause stops the tick loop but leaves the clock where it is. The pending
// timer is cancelled before Pause returns; no tick fires afterwards.
func (e *Engine) Pause() {
	if !e.halt() {
		return
	}
	e.logger.Info().Float64("time", e.CurrentTime()).Msg("simulation paused")
	e.publish(&events.Event{Type: events.EventSimulationPaused, Message: "simulation paused"})
}

// Stop stops the tick loop and resets the clock to zero. Accumulated node
// status and logs are left in place until overwritten or the project is
// switched. The pending timer is cancelled before Stop returns.
func (e *Engine) Stop() {
	halted := e.halt()

	e.mu.Lock()
	e.currentTime = 0
	e.mu.Unlock()

	if halted {
		e.logger.Info().Msg("simulation stopped")
		e.publish(&events.Event{Type: events.EventSimulationStopped, Message: "simulation stopped"})
	}
}

// halt flips the engine to Stopped and cancels the loop. Returns false if
// the engine was not running.
func (e *Engine) halt() bool {
	e.mu.Lock()
	if !e.running {
		e.mu.Unlock()
		return false
	}
	e.running = false
	close(e.stopCh)
	e.stopCh = nil
	e.mu.Unlock()

	metrics.SimulationRunning.Set(0)
	return true
}

// Running reports whether the tick loop is active
func (e *Engine) Running() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.running
}

// CurrentTime returns elapsed simulated seconds
func (e *Engine) CurrentTime() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.currentTime
}

// Speed returns the current speed multiplier
func (e *Engine) Speed() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.speed
}

// SetSpeed changes the speed multiplier, clamped to [MinSpeed, MaxSpeed].
// A running loop picks the new interval up on its next cycle.
func (e *Engine) SetSpeed(speed float64) {
	if speed < MinSpeed {
		speed = MinSpeed
	}
	if speed > MaxSpeed {
		speed = MaxSpeed
	}
	e.mu.Lock()
	e.speed = speed
	e.mu.Unlock()
}

// Duration returns the configured total simulated length in seconds
func (e *Engine) Duration() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.duration
}

// SetDuration changes the configured simulated length
func (e *Engine) SetDuration(seconds float64) {
	if seconds <= 0 {
		return
	}
	e.mu.Lock()
	e.duration = seconds
	e.mu.Unlock()
}

// Progress returns currentTime/duration in [0, 1]
func (e *Engine) Progress() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.duration <= 0 {
		return 0
	}
	p := e.currentTime / e.duration
	if p > 1 {
		p = 1
	}
	return p
}

// Events returns a copy of the accumulated simulation events
func (e *Engine) Events() []types.SimulationEvent {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]types.SimulationEvent, len(e.simEvents))
	copy(out, e.simEvents)
	return out
}

// AddEvent appends an externally produced event to the timeline. This is
// the entry point a backend-driven session uses instead of the engine's
// random draws. A missing id is generated.
func (e *Engine) AddEvent(event types.SimulationEvent) {
	if event.ID == "" {
		event.ID = uuid.New().String()
	}
	e.mu.Lock()
	e.simEvents = append(e.simEvents, event)
	e.mu.Unlock()

	metrics.SimulationEventsTotal.WithLabelValues(string(event.Type)).Inc()
	e.publish(&events.Event{
		Type:        events.EventSimulationEvent,
		ComponentID: event.ComponentID,
		Message:     event.Message,
		Metadata:    map[string]string{"event_type": string(event.Type)},
	})
}

// Reset discards events and snapshots and resets the clock and speed.
// Called on project switch; the loop must already be stopped.
func (e *Engine) Reset() {
	e.halt()
	e.mu.Lock()
	e.currentTime = 0
	e.speed = DefaultSpeed
	e.duration = DefaultDuration
	e.simEvents = nil
	e.snapshots = make(map[string]types.Snapshot)
	e.mu.Unlock()
}

// run fires ticks at 1000/speed milliseconds until the stop channel
// closes. Higher speed means more frequent ticks, not bigger steps; each
// tick advances the clock by speed seconds, so simulated time passes at
// speed x real time.
func (e *Engine) run(stopCh chan struct{}) {
	for {
		interval := time.Duration(float64(time.Second) / e.Speed())
		timer := time.NewTimer(interval)
		select {
		case <-timer.C:
			e.Tick()
		case <-stopCh:
			timer.Stop()
			return
		}
	}
}

// Tick performs one simulation step: advance the clock, assign weighted
// random status and metrics to every node, derive status for every edge,
// and record events for warning and error states. Once the clock reaches
// the configured duration it freezes there; the engine stays Running but
// further ticks stop mutating state.
func (e *Engine) Tick() {
	timer := metrics.NewTimer()
	defer func() {
		timer.ObserveDuration(metrics.SimulationTickDuration)
		metrics.SimulationTicksTotal.Inc()
	}()

	e.mu.Lock()
	if !e.running {
		e.mu.Unlock()
		return
	}
	if e.currentTime >= e.duration {
		e.mu.Unlock()
		return
	}
	e.currentTime += e.speed
	if e.currentTime > e.duration {
		e.currentTime = e.duration
	}
	now := e.currentTime
	e.mu.Unlock()

	for _, node := range e.store.Nodes() {
		e.tickNode(node, now)
	}
	e.tickEdges()

	e.publish(&events.Event{
		Type:     events.EventSimulationTick,
		Metadata: map[string]string{"time": fmt.Sprintf("%.1f", now)},
	})
}

// tickNode draws a status and fresh metrics for one node. A fault in one
// node's computation must not stop the rest of the tick.
func (e *Engine) tickNode(node types.DiagramNode, now float64) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error().Str("node_id", node.ID).Interface("panic", r).Msg("node tick failed")
		}
	}()

	state := DrawNodeState(e.rng.Float64())
	m := RandomMetrics(e.rng)
	e.store.UpdateNodeStatus(node.ID, state, m)
	e.store.AppendNodeLog(node.ID, types.LogEntry{
		Timestamp: time.Now(),
		Level:     logLevelFor(state),
		Message:   fmt.Sprintf("status changed to %s", state),
	})

	if state == types.NodeStateWarning || state == types.NodeStateError {
		eventType := types.EventWarning
		if state == types.NodeStateError {
			eventType = types.EventError
		}
		e.AddEvent(types.SimulationEvent{
			Time:        now,
			Type:        eventType,
			ComponentID: node.ID,
			Message:     fmt.Sprintf("%s reported %s", nodeName(node), state),
		})
	}
}

// tickEdges draws a status for every edge and derives its traffic fields
func (e *Engine) tickEdges() {
	e.store.UpdateEdges(func(edges []types.DiagramEdge) []types.DiagramEdge {
		for i := range edges {
			state := DrawEdgeState(e.rng.Float64())
			edges[i].Data.Status = state
			edges[i].Data.Throughput = 0
			edges[i].Data.ErrorRate = 0
			if state == types.EdgeStateActive {
				edges[i].Data.Throughput = 100 + e.rng.Float64()*900
			}
			edges[i].Data.Latency = 5 + e.rng.Float64()*95
			if state == types.EdgeStateError {
				edges[i].Data.ErrorRate = 1 + e.rng.Float64()*9
			}
			if edges[i].Data.Protocol == "" {
				edges[i].Data.Protocol = graph.DefaultProtocol
			}
		}
		return edges
	})
}

// DrawNodeState maps a uniform random number to a node status via fixed
// cumulative weights: active 60%, idle 25%, warning 10%, error 5%.
func DrawNodeState(f float64) types.NodeState {
	switch {
	case f < 0.60:
		return types.NodeStateActive
	case f < 0.85:
		return types.NodeStateIdle
	case f < 0.95:
		return types.NodeStateWarning
	default:
		return types.NodeStateError
	}
}

// DrawEdgeState maps a uniform random number to an edge status via fixed
// cumulative weights: active 70%, idle 20%, success 8%, error 2%.
func DrawEdgeState(f float64) types.EdgeState {
	switch {
	case f < 0.70:
		return types.EdgeStateActive
	case f < 0.90:
		return types.EdgeStateIdle
	case f < 0.98:
		return types.EdgeStateSuccess
	default:
		return types.EdgeStateError
	}
}

// RandomMetrics draws fresh node metrics, each from an independent bounded
// uniform range: cpu 10-90%, memory 20-80%, requests 0-1000/s, latency
// 5-200ms.
func RandomMetrics(src Source) *types.NodeMetrics {
	return &types.NodeMetrics{
		CPU:      10 + src.Float64()*80,
		Memory:   20 + src.Float64()*60,
		Requests: src.Float64() * 1000,
		Latency:  5 + src.Float64()*195,
	}
}

func logLevelFor(state types.NodeState) types.LogLevel {
	switch state {
	case types.NodeStateWarning:
		return types.LogWarning
	case types.NodeStateError:
		return types.LogError
	default:
		return types.LogInfo
	}
}

// nodeName reports the node's display name: its "name" property value if
// present, else its id
func nodeName(node types.DiagramNode) string {
	if p := node.Property("name"); p != nil && p.Value.Kind == types.ValueString && p.Value.Str != "" {
		return p.Value.Str
	}
	return node.ID
}

func (e *Engine) publish(event *events.Event) {
	if e.broker != nil {
		e.broker.Publish(event)
	}
}
