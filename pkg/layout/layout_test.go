package layout

import (
	"testing"

	"github.com/archboard/archboard/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func nodesAt(positions ...types.Position) []types.DiagramNode {
	nodes := make([]types.DiagramNode, len(positions))
	for i, p := range positions {
		nodes[i] = types.DiagramNode{ID: string(rune('a' + i)), Position: p}
	}
	return nodes
}

func TestAutoLayoutGrid(t *testing.T) {
	nodes := nodesAt(
		types.Position{X: 999, Y: 999},
		types.Position{X: 1, Y: 1},
		types.Position{X: 0, Y: 0},
		types.Position{X: 5, Y: 5},
		types.Position{X: 7, Y: 7},
	)

	positions := AutoLayout(nodes)
	require.Len(t, positions, 5)

	// Row-major, 4 columns, 250x150 pitch from the origin offset
	assert.Equal(t, types.Position{X: 50, Y: 50}, positions["a"])
	assert.Equal(t, types.Position{X: 300, Y: 50}, positions["b"])
	assert.Equal(t, types.Position{X: 550, Y: 50}, positions["c"])
	assert.Equal(t, types.Position{X: 800, Y: 50}, positions["d"])
	assert.Equal(t, types.Position{X: 50, Y: 200}, positions["e"], "fifth node wraps to the second row")
}

// TestAutoLayoutIdempotent verifies that re-running the layout on an
// unchanged node list yields identical positions
func TestAutoLayoutIdempotent(t *testing.T) {
	nodes := nodesAt(
		types.Position{X: 13, Y: 37},
		types.Position{X: 2, Y: 900},
		types.Position{X: 400, Y: 0},
	)

	first := AutoLayout(nodes)
	for id, pos := range first {
		for i := range nodes {
			if nodes[i].ID == id {
				nodes[i].Position = pos
			}
		}
	}
	second := AutoLayout(nodes)

	assert.Equal(t, first, second)
}

func TestAlign(t *testing.T) {
	tests := []struct {
		name     string
		edge     AlignEdge
		expected map[string]types.Position
	}{
		{
			name: "left snaps to min x",
			edge: AlignLeft,
			expected: map[string]types.Position{
				"a": {X: 10, Y: 0},
				"b": {X: 10, Y: 100},
			},
		},
		{
			name: "right snaps to max right edge",
			edge: AlignRight,
			expected: map[string]types.Position{
				"a": {X: 50, Y: 0},
				"b": {X: 50, Y: 100},
			},
		},
		{
			name: "top snaps to min y",
			edge: AlignTop,
			expected: map[string]types.Position{
				"a": {X: 10, Y: 0},
				"b": {X: 50, Y: 0},
			},
		},
		{
			name: "bottom snaps to max bottom edge",
			edge: AlignBottom,
			expected: map[string]types.Position{
				"a": {X: 10, Y: 100},
				"b": {X: 50, Y: 100},
			},
		},
		{
			name: "center snaps to mean center",
			edge: AlignCenter,
			expected: map[string]types.Position{
				"a": {X: 30, Y: 0},
				"b": {X: 30, Y: 100},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nodes := nodesAt(
				types.Position{X: 10, Y: 0},
				types.Position{X: 50, Y: 100},
				types.Position{X: 777, Y: 777}, // not selected, must stay put
			)
			positions := Align(nodes, []string{"a", "b"}, tt.edge)
			assert.Equal(t, tt.expected, positions)
			_, touched := positions["c"]
			assert.False(t, touched)
		})
	}
}

// TestAlignSingleSelectionNoOp verifies the no-op boundary: fewer than two
// selected nodes leaves every position unchanged
func TestAlignSingleSelectionNoOp(t *testing.T) {
	nodes := nodesAt(types.Position{X: 10, Y: 20}, types.Position{X: 30, Y: 40})

	assert.Empty(t, Align(nodes, []string{"a"}, AlignLeft))
	assert.Empty(t, Align(nodes, nil, AlignLeft))
}

func TestDistributeHorizontal(t *testing.T) {
	nodes := nodesAt(
		types.Position{X: 0, Y: 5},
		types.Position{X: 10, Y: 6},
		types.Position{X: 300, Y: 7},
	)

	positions := Distribute(nodes, []string{"a", "b", "c"}, Horizontal)
	require.Len(t, positions, 3)

	// First and last hold; the interior node lands at the midpoint
	assert.Equal(t, types.Position{X: 0, Y: 5}, positions["a"])
	assert.Equal(t, types.Position{X: 150, Y: 6}, positions["b"])
	assert.Equal(t, types.Position{X: 300, Y: 7}, positions["c"])
}

func TestDistributeVertical(t *testing.T) {
	nodes := nodesAt(
		types.Position{X: 1, Y: 400},
		types.Position{X: 2, Y: 0},
		types.Position{X: 3, Y: 390},
		types.Position{X: 4, Y: 100},
	)

	positions := Distribute(nodes, []string{"a", "b", "c", "d"}, Vertical)
	require.Len(t, positions, 4)

	// Ordered by y: b(0), d(100), c(390), a(400) -> spaced at 0, 133.33, 266.67, 400
	assert.InDelta(t, 0, positions["b"].Y, 0.01)
	assert.InDelta(t, 400.0/3, positions["d"].Y, 0.01)
	assert.InDelta(t, 800.0/3, positions["c"].Y, 0.01)
	assert.InDelta(t, 400, positions["a"].Y, 0.01)
}

func TestDistributeNoOpBoundary(t *testing.T) {
	nodes := nodesAt(types.Position{X: 0, Y: 0}, types.Position{X: 100, Y: 0})
	assert.Empty(t, Distribute(nodes, []string{"a", "b"}, Horizontal))
	assert.Empty(t, Distribute(nodes, []string{"a"}, Vertical))
}
