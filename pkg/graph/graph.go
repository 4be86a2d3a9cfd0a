package graph

import (
	"fmt"
	"sync"

	"github.com/archboard/archboard/pkg/events"
	"github.com/archboard/archboard/pkg/properties"
	"github.com/archboard/archboard/pkg/types"
	"github.com/google/uuid"
)

// DefaultProtocol is assigned to new edges until the user picks another
const DefaultProtocol = "HTTP"

// Store is the canonical in-memory diagram state: nodes, edges, selection,
// viewport, and per-node simulation status. Every structural change goes
// through its mutation API so invariants (cascade delete, selection
// exclusivity) are enforced in one place. All methods are safe for
// concurrent use.
//
// Mutations that name an unknown node or edge id are silent no-ops. The
// primary caller is interactive event handling where races (deleting a node
// whose property is mid-edit) are expected and must not surface as errors.
type Store struct {
	mu       sync.RWMutex
	nodes    []types.DiagramNode
	edges    []types.DiagramEdge
	viewport types.Viewport

	// Single selection, for the property panel. Kept separate from the
	// per-node Selected flag used for multi-select layout operations.
	selectedNodeID string
	selectedEdgeID string

	statuses map[string]*types.NodeStatus

	broker *events.Broker
}

// NewStore creates an empty store. The broker may be nil, in which case no
// events are published.
func NewStore(broker *events.Broker) *Store {
	return &Store{
		viewport: types.DefaultViewport(),
		statuses: make(map[string]*types.NodeStatus),
		broker:   broker,
	}
}

func (s *Store) publish(event *events.Event) {
	if s.broker != nil {
		s.broker.Publish(event)
	}
}

// Nodes returns a copy of the current node list
func (s *Store) Nodes() []types.DiagramNode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyNodes(s.nodes)
}

// Edges returns a copy of the current edge list
func (s *Store) Edges() []types.DiagramEdge {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]types.DiagramEdge, len(s.edges))
	copy(out, s.edges)
	return out
}

// Viewport returns the current viewport
func (s *Store) Viewport() types.Viewport {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.viewport
}

// SetViewport replaces the viewport
func (s *Store) SetViewport(v types.Viewport) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.viewport = v
}

// SetNodes replaces the node list wholesale. Edges referencing nodes that no
// longer exist are dropped, and stale selection is cleared.
func (s *Store) SetNodes(nodes []types.DiagramNode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nodes = copyNodes(nodes)
	s.pruneEdgesLocked()
	if s.selectedNodeID != "" && s.findNodeLocked(s.selectedNodeID) < 0 {
		s.selectedNodeID = ""
	}
}

// UpdateNodes applies an updater function to the node list. The updater
// receives a copy and its return value becomes the new list.
func (s *Store) UpdateNodes(fn func([]types.DiagramNode) []types.DiagramNode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nodes = copyNodes(fn(copyNodes(s.nodes)))
	s.pruneEdgesLocked()
	if s.selectedNodeID != "" && s.findNodeLocked(s.selectedNodeID) < 0 {
		s.selectedNodeID = ""
	}
}

// SetEdges replaces the edge list wholesale. Edges with unknown endpoints
// are dropped.
func (s *Store) SetEdges(edges []types.DiagramEdge) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.edges = make([]types.DiagramEdge, 0, len(edges))
	for _, e := range edges {
		if s.findNodeLocked(e.Source) >= 0 && s.findNodeLocked(e.Target) >= 0 {
			s.edges = append(s.edges, e)
		}
	}
	if s.selectedEdgeID != "" && s.findEdgeLocked(s.selectedEdgeID) < 0 {
		s.selectedEdgeID = ""
	}
}

// UpdateEdges applies an updater function to the edge list
func (s *Store) UpdateEdges(fn func([]types.DiagramEdge) []types.DiagramEdge) {
	s.mu.Lock()
	defer s.mu.Unlock()
	current := make([]types.DiagramEdge, len(s.edges))
	copy(current, s.edges)
	s.edges = fn(current)
}

// AddNode creates a node of the given kind at the given position with the
// kind's default property set. This is the palette drop path.
func (s *Store) AddNode(kind types.NodeKind, pos types.Position) types.DiagramNode {
	node := types.DiagramNode{
		ID:         uuid.New().String(),
		Kind:       kind,
		Position:   pos,
		Properties: properties.Defaults(kind),
	}
	if p := node.Property("name"); p != nil {
		node.Label = p.Value.Str
	}

	s.mu.Lock()
	s.nodes = append(s.nodes, node)
	s.mu.Unlock()

	s.publish(&events.Event{
		Type:        events.EventNodeAdded,
		ComponentID: node.ID,
		Message:     fmt.Sprintf("node %q added", node.Label),
		Metadata:    map[string]string{"kind": string(kind)},
	})
	return node
}

// Connect creates an edge between two existing nodes with a generated id,
// idle status, and the default protocol. It is a no-op returning false if
// either endpoint is unknown; the rendering layer normally validates
// endpoints, but the store does not trust that.
func (s *Store) Connect(source, target, sourceHandle, targetHandle string) (types.DiagramEdge, bool) {
	s.mu.Lock()
	if s.findNodeLocked(source) < 0 || s.findNodeLocked(target) < 0 {
		s.mu.Unlock()
		return types.DiagramEdge{}, false
	}
	edge := types.DiagramEdge{
		ID:           uuid.New().String(),
		Source:       source,
		Target:       target,
		SourceHandle: sourceHandle,
		TargetHandle: targetHandle,
		Data: types.EdgeData{
			Status:   types.EdgeStateIdle,
			Protocol: DefaultProtocol,
		},
	}
	s.edges = append(s.edges, edge)
	s.mu.Unlock()

	s.publish(&events.Event{
		Type:        events.EventEdgeAdded,
		ComponentID: edge.ID,
		Message:     fmt.Sprintf("edge %s -> %s", source, target),
	})
	return edge, true
}

// SelectNode marks a node as the single active selection, clearing any edge
// selection. An empty id clears both.
func (s *Store) SelectNode(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selectedEdgeID = ""
	if id == "" || s.findNodeLocked(id) < 0 {
		s.selectedNodeID = ""
		return
	}
	s.selectedNodeID = id
}

// SelectEdge marks an edge as the single active selection, clearing any node
// selection. An empty id clears both.
func (s *Store) SelectEdge(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selectedNodeID = ""
	if id == "" || s.findEdgeLocked(id) < 0 {
		s.selectedEdgeID = ""
		return
	}
	s.selectedEdgeID = id
}

// SelectedNodeID returns the id of the node selected for the property
// panel, or empty
func (s *Store) SelectedNodeID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selectedNodeID
}

// SelectedEdgeID returns the id of the selected edge, or empty
func (s *Store) SelectedEdgeID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selectedEdgeID
}

// SetMultiSelection sets the per-node Selected flag for exactly the given
// ids. This is the selection the layout operations act on.
func (s *Store) SetMultiSelection(ids []string) {
	wanted := make(map[string]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.nodes {
		s.nodes[i].Selected = wanted[s.nodes[i].ID]
	}
}

// MultiSelection returns the ids of nodes with the Selected flag set
func (s *Store) MultiSelection() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var ids []string
	for i := range s.nodes {
		if s.nodes[i].Selected {
			ids = append(ids, s.nodes[i].ID)
		}
	}
	return ids
}

// UpdateNodeProperty replaces the value of one property on one node. Unknown
// node or property ids are silent no-ops; no other property is touched.
func (s *Store) UpdateNodeProperty(nodeID, propertyID string, value types.Value) {
	s.mu.Lock()
	i := s.findNodeLocked(nodeID)
	if i < 0 {
		s.mu.Unlock()
		return
	}
	node := &s.nodes[i]
	updated := false
	for j := range node.Properties {
		if node.Properties[j].ID == propertyID {
			node.Properties[j].Value = value
			updated = true
			break
		}
	}
	if updated && propertyID == "name" && value.Kind == types.ValueString {
		node.Label = value.Str
	}
	s.mu.Unlock()

	if updated {
		s.publish(&events.Event{
			Type:        events.EventNodeUpdated,
			ComponentID: nodeID,
			Metadata:    map[string]string{"property": propertyID},
		})
	}
}

// UpdateNodePosition moves a node. Unknown ids are silent no-ops.
func (s *Store) UpdateNodePosition(nodeID string, pos types.Position) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.findNodeLocked(nodeID); i >= 0 {
		s.nodes[i].Position = pos
	}
}

// ApplyPositions moves every node named in the map to its new position.
// Used by the layout engine to commit computed positions in one write.
func (s *Store) ApplyPositions(positions map[string]types.Position) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.nodes {
		if pos, ok := positions[s.nodes[i].ID]; ok {
			s.nodes[i].Position = pos
		}
	}
}

// DeleteNode removes a node and cascade-deletes every edge referencing it
// as source or target. Unknown ids are silent no-ops.
func (s *Store) DeleteNode(id string) {
	s.mu.Lock()
	i := s.findNodeLocked(id)
	if i < 0 {
		s.mu.Unlock()
		return
	}
	label := s.nodes[i].Label
	s.nodes = append(s.nodes[:i], s.nodes[i+1:]...)

	kept := s.edges[:0]
	for _, e := range s.edges {
		if e.Source != id && e.Target != id {
			kept = append(kept, e)
		}
	}
	s.edges = kept

	delete(s.statuses, id)
	if s.selectedNodeID == id {
		s.selectedNodeID = ""
	}
	if s.selectedEdgeID != "" && s.findEdgeLocked(s.selectedEdgeID) < 0 {
		s.selectedEdgeID = ""
	}
	s.mu.Unlock()

	s.publish(&events.Event{
		Type:        events.EventNodeDeleted,
		ComponentID: id,
		Message:     fmt.Sprintf("node %q deleted", label),
	})
}

// DeleteEdge removes an edge. Unknown ids are silent no-ops.
func (s *Store) DeleteEdge(id string) {
	s.mu.Lock()
	i := s.findEdgeLocked(id)
	if i < 0 {
		s.mu.Unlock()
		return
	}
	s.edges = append(s.edges[:i], s.edges[i+1:]...)
	if s.selectedEdgeID == id {
		s.selectedEdgeID = ""
	}
	s.mu.Unlock()

	s.publish(&events.Event{Type: events.EventEdgeDeleted, ComponentID: id})
}

// UpdateNodeStatus sets a node's simulation state and metrics. Unknown node
// ids are silent no-ops. Existing logs are preserved.
func (s *Store) UpdateNodeStatus(nodeID string, state types.NodeState, metrics *types.NodeMetrics) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.findNodeLocked(nodeID) < 0 {
		return
	}
	st, ok := s.statuses[nodeID]
	if !ok {
		st = &types.NodeStatus{}
		s.statuses[nodeID] = st
	}
	st.State = state
	st.Metrics = metrics
}

// AppendNodeLog appends one log entry to a node's simulation log
func (s *Store) AppendNodeLog(nodeID string, entry types.LogEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.findNodeLocked(nodeID) < 0 {
		return
	}
	st, ok := s.statuses[nodeID]
	if !ok {
		st = &types.NodeStatus{}
		s.statuses[nodeID] = st
	}
	st.Logs = append(st.Logs, entry)
}

// NodeStatus returns a copy of a node's simulation status, or false if the
// node has none
func (s *Store) NodeStatus(nodeID string) (types.NodeStatus, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st, ok := s.statuses[nodeID]
	if !ok {
		return types.NodeStatus{}, false
	}
	out := types.NodeStatus{State: st.State}
	if st.Metrics != nil {
		m := *st.Metrics
		out.Metrics = &m
	}
	out.Logs = append(out.Logs, st.Logs...)
	return out, true
}

// NodeStatuses returns a copy of the full status map
func (s *Store) NodeStatuses() map[string]types.NodeStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]types.NodeStatus, len(s.statuses))
	for id, st := range s.statuses {
		cp := types.NodeStatus{State: st.State}
		if st.Metrics != nil {
			m := *st.Metrics
			cp.Metrics = &m
		}
		cp.Logs = append(cp.Logs, st.Logs...)
		out[id] = cp
	}
	return out
}

// ClearNodeStatuses discards all simulation status and logs
func (s *Store) ClearNodeStatuses() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.statuses = make(map[string]*types.NodeStatus)
}

// Reset discards the entire graph: nodes, edges, selection, statuses, and
// viewport. Called on project switch.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nodes = nil
	s.edges = nil
	s.selectedNodeID = ""
	s.selectedEdgeID = ""
	s.statuses = make(map[string]*types.NodeStatus)
	s.viewport = types.DefaultViewport()
}

// findNodeLocked returns the index of a node by id, or -1. Caller holds mu.
func (s *Store) findNodeLocked(id string) int {
	for i := range s.nodes {
		if s.nodes[i].ID == id {
			return i
		}
	}
	return -1
}

// findEdgeLocked returns the index of an edge by id, or -1. Caller holds mu.
func (s *Store) findEdgeLocked(id string) int {
	for i := range s.edges {
		if s.edges[i].ID == id {
			return i
		}
	}
	return -1
}

// pruneEdgesLocked drops edges whose endpoints no longer exist. Caller
// holds mu.
func (s *Store) pruneEdgesLocked() {
	kept := s.edges[:0]
	for _, e := range s.edges {
		if s.findNodeLocked(e.Source) >= 0 && s.findNodeLocked(e.Target) >= 0 {
			kept = append(kept, e)
		}
	}
	s.edges = kept
}

func copyNodes(nodes []types.DiagramNode) []types.DiagramNode {
	out := make([]types.DiagramNode, len(nodes))
	copy(out, nodes)
	for i := range out {
		props := make([]types.Property, len(out[i].Properties))
		copy(props, out[i].Properties)
		out[i].Properties = props
	}
	return out
}
