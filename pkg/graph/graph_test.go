package graph

import (
	"testing"

	"github.com/archboard/archboard/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func twoNodeStore() *Store {
	s := NewStore(nil)
	s.SetNodes([]types.DiagramNode{
		{ID: "a", Kind: types.KindDatabase, Position: types.Position{X: 0, Y: 0}},
		{ID: "b", Kind: types.KindService, Position: types.Position{X: 300, Y: 0}},
	})
	return s
}

// TestConnectAndCascadeDelete covers the connect gesture followed by an
// endpoint deletion: the edge must be created with defaults and then
// cascade-deleted together with its source node.
func TestConnectAndCascadeDelete(t *testing.T) {
	s := twoNodeStore()

	edge, ok := s.Connect("a", "b", "", "")
	require.True(t, ok)
	assert.NotEmpty(t, edge.ID)
	assert.Equal(t, "a", edge.Source)
	assert.Equal(t, "b", edge.Target)
	assert.Equal(t, types.EdgeStateIdle, edge.Data.Status)
	assert.Equal(t, "HTTP", edge.Data.Protocol)
	require.Len(t, s.Edges(), 1)

	s.DeleteNode("a")

	assert.Empty(t, s.Edges(), "deleting an endpoint must cascade-delete its edges")
	nodes := s.Nodes()
	require.Len(t, nodes, 1)
	assert.Equal(t, "b", nodes[0].ID)
}

func TestConnectUnknownEndpoint(t *testing.T) {
	tests := []struct {
		name   string
		source string
		target string
	}{
		{name: "unknown source", source: "ghost", target: "b"},
		{name: "unknown target", source: "a", target: "ghost"},
		{name: "both unknown", source: "x", target: "y"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := twoNodeStore()
			_, ok := s.Connect(tt.source, tt.target, "", "")
			assert.False(t, ok)
			assert.Empty(t, s.Edges())
		})
	}
}

func TestDeleteUnknownIDsAreNoOps(t *testing.T) {
	s := twoNodeStore()
	s.DeleteNode("ghost")
	s.DeleteEdge("ghost")
	assert.Len(t, s.Nodes(), 2)
}

func TestSelectionMutualExclusion(t *testing.T) {
	s := twoNodeStore()
	edge, ok := s.Connect("a", "b", "", "")
	require.True(t, ok)

	s.SelectNode("a")
	assert.Equal(t, "a", s.SelectedNodeID())
	assert.Empty(t, s.SelectedEdgeID())

	s.SelectEdge(edge.ID)
	assert.Empty(t, s.SelectedNodeID(), "selecting an edge clears node selection")
	assert.Equal(t, edge.ID, s.SelectedEdgeID())

	s.SelectNode("")
	assert.Empty(t, s.SelectedNodeID())
	assert.Empty(t, s.SelectedEdgeID())
}

func TestSelectionClearedOnDelete(t *testing.T) {
	s := twoNodeStore()
	s.SelectNode("a")
	s.DeleteNode("a")
	assert.Empty(t, s.SelectedNodeID())
}

func TestUpdateNodeProperty(t *testing.T) {
	s := NewStore(nil)
	node := s.AddNode(types.KindService, types.Position{X: 10, Y: 10})

	s.UpdateNodeProperty(node.ID, "cpu", types.NumberValue(4))

	got := s.Nodes()[0]
	p := got.Property("cpu")
	require.NotNil(t, p)
	assert.Equal(t, 4.0, p.Value.Num)

	// Unknown node and property ids are silent no-ops
	s.UpdateNodeProperty("ghost", "cpu", types.NumberValue(8))
	s.UpdateNodeProperty(node.ID, "ghost", types.NumberValue(8))
	assert.Equal(t, 4.0, s.Nodes()[0].Property("cpu").Value.Num)
}

// TestPropertyUniquenessAfterUpdates verifies the operation only rewrites
// values, never grows the property list
func TestPropertyUniquenessAfterUpdates(t *testing.T) {
	s := NewStore(nil)
	node := s.AddNode(types.KindDatabase, types.Position{})
	before := len(s.Nodes()[0].Properties)

	for i := 0; i < 10; i++ {
		s.UpdateNodeProperty(node.ID, "engine", types.StringValue("mysql"))
		s.UpdateNodeProperty(node.ID, "storage", types.NumberValue(float64(i)))
	}

	props := s.Nodes()[0].Properties
	assert.Len(t, props, before)
	seen := make(map[string]bool)
	for _, p := range props {
		assert.False(t, seen[p.ID], "duplicate property id %s", p.ID)
		seen[p.ID] = true
	}
}

func TestUpdateNamePropertySyncsLabel(t *testing.T) {
	s := NewStore(nil)
	node := s.AddNode(types.KindCache, types.Position{})
	s.UpdateNodeProperty(node.ID, "name", types.StringValue("session-cache"))
	assert.Equal(t, "session-cache", s.Nodes()[0].Label)
}

func TestSetNodesPrunesDanglingEdges(t *testing.T) {
	s := twoNodeStore()
	_, ok := s.Connect("a", "b", "", "")
	require.True(t, ok)

	// Replace the node list without "a"; the edge endpoint vanishes
	s.SetNodes([]types.DiagramNode{{ID: "b", Kind: types.KindService}})
	assert.Empty(t, s.Edges())
}

func TestMultiSelection(t *testing.T) {
	s := twoNodeStore()
	s.SetMultiSelection([]string{"a", "b"})
	assert.ElementsMatch(t, []string{"a", "b"}, s.MultiSelection())

	s.SetMultiSelection([]string{"b"})
	assert.Equal(t, []string{"b"}, s.MultiSelection())

	// Multi-selection is independent of the single property-panel selection
	s.SelectNode("a")
	assert.Equal(t, []string{"b"}, s.MultiSelection())
}

func TestNodeStatusLifecycle(t *testing.T) {
	s := twoNodeStore()

	s.UpdateNodeStatus("a", types.NodeStateActive, &types.NodeMetrics{CPU: 42})
	s.AppendNodeLog("a", types.LogEntry{Level: types.LogInfo, Message: "status changed to active"})

	status, ok := s.NodeStatus("a")
	require.True(t, ok)
	assert.Equal(t, types.NodeStateActive, status.State)
	require.NotNil(t, status.Metrics)
	assert.Equal(t, 42.0, status.Metrics.CPU)
	assert.Len(t, status.Logs, 1)

	// Unknown node ids are absorbed
	s.UpdateNodeStatus("ghost", types.NodeStateError, nil)
	_, ok = s.NodeStatus("ghost")
	assert.False(t, ok)

	// Status follows the node out on delete
	s.DeleteNode("a")
	_, ok = s.NodeStatus("a")
	assert.False(t, ok)
}

func TestApplyPositions(t *testing.T) {
	s := twoNodeStore()
	s.ApplyPositions(map[string]types.Position{
		"a":     {X: 100, Y: 200},
		"ghost": {X: 1, Y: 1},
	})

	nodes := s.Nodes()
	assert.Equal(t, types.Position{X: 100, Y: 200}, nodes[0].Position)
	assert.Equal(t, types.Position{X: 300, Y: 0}, nodes[1].Position)
}

func TestReset(t *testing.T) {
	s := twoNodeStore()
	_, _ = s.Connect("a", "b", "", "")
	s.SelectNode("a")
	s.UpdateNodeStatus("a", types.NodeStateError, nil)

	s.Reset()

	assert.Empty(t, s.Nodes())
	assert.Empty(t, s.Edges())
	assert.Empty(t, s.SelectedNodeID())
	assert.Empty(t, s.NodeStatuses())
	assert.Equal(t, types.DefaultViewport(), s.Viewport())
}

func TestReadsReturnCopies(t *testing.T) {
	s := NewStore(nil)
	s.AddNode(types.KindService, types.Position{})

	nodes := s.Nodes()
	nodes[0].Properties[0].Value = types.StringValue("mutated")

	assert.NotEqual(t, "mutated", s.Nodes()[0].Properties[0].Value.Str,
		"external mutation of a read result must not leak into the store")
}
