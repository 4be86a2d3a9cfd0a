package layout

import (
	"sort"

	"github.com/archboard/archboard/pkg/types"
)

// Grid layout geometry: nodes are arranged row-major into fixed columns at
// a constant pitch from a fixed origin.
const (
	GridColumns = 4
	CellWidth   = 250
	CellHeight  = 150
	OriginX     = 50
	OriginY     = 50
)

// Rendered node sizes are owned by the rendering layer; when none is known
// these assumed dimensions are used for right/bottom/center alignment.
const (
	DefaultNodeWidth  = 200
	DefaultNodeHeight = 100
)

// AlignEdge selects the reference edge or axis for Align
type AlignEdge string

const (
	AlignLeft   AlignEdge = "left"
	AlignRight  AlignEdge = "right"
	AlignTop    AlignEdge = "top"
	AlignBottom AlignEdge = "bottom"
	AlignCenter AlignEdge = "center"
)

// Axis selects the direction for Distribute
type Axis string

const (
	Horizontal Axis = "horizontal"
	Vertical   Axis = "vertical"
)

// AutoLayout computes grid positions for every node, row-major in node-list
// order. It is deterministic and idempotent: the result depends only on the
// order and count of the input, so re-running it on an unchanged list yields
// identical positions.
func AutoLayout(nodes []types.DiagramNode) map[string]types.Position {
	positions := make(map[string]types.Position, len(nodes))
	for i, n := range nodes {
		positions[n.ID] = types.Position{
			X: OriginX + float64(i%GridColumns)*CellWidth,
			Y: OriginY + float64(i/GridColumns)*CellHeight,
		}
	}
	return positions
}

// Align snaps the selected nodes to a shared reference coordinate: min x
// for left, max right edge for right, min y for top, max bottom edge for
// bottom, mean horizontal center for center. Returns new positions for the
// selected nodes only; with fewer than two selected it returns an empty map.
func Align(nodes []types.DiagramNode, selectedIDs []string, edge AlignEdge) map[string]types.Position {
	selected := pick(nodes, selectedIDs)
	positions := make(map[string]types.Position)
	if len(selected) < 2 {
		return positions
	}

	switch edge {
	case AlignLeft:
		ref := selected[0].Position.X
		for _, n := range selected[1:] {
			if n.Position.X < ref {
				ref = n.Position.X
			}
		}
		for _, n := range selected {
			positions[n.ID] = types.Position{X: ref, Y: n.Position.Y}
		}
	case AlignRight:
		ref := selected[0].Position.X + DefaultNodeWidth
		for _, n := range selected[1:] {
			if r := n.Position.X + DefaultNodeWidth; r > ref {
				ref = r
			}
		}
		for _, n := range selected {
			positions[n.ID] = types.Position{X: ref - DefaultNodeWidth, Y: n.Position.Y}
		}
	case AlignTop:
		ref := selected[0].Position.Y
		for _, n := range selected[1:] {
			if n.Position.Y < ref {
				ref = n.Position.Y
			}
		}
		for _, n := range selected {
			positions[n.ID] = types.Position{X: n.Position.X, Y: ref}
		}
	case AlignBottom:
		ref := selected[0].Position.Y + DefaultNodeHeight
		for _, n := range selected[1:] {
			if b := n.Position.Y + DefaultNodeHeight; b > ref {
				ref = b
			}
		}
		for _, n := range selected {
			positions[n.ID] = types.Position{X: n.Position.X, Y: ref - DefaultNodeHeight}
		}
	case AlignCenter:
		var sum float64
		for _, n := range selected {
			sum += n.Position.X + DefaultNodeWidth/2
		}
		ref := sum / float64(len(selected))
		for _, n := range selected {
			positions[n.ID] = types.Position{X: ref - DefaultNodeWidth/2, Y: n.Position.Y}
		}
	}
	return positions
}

// Distribute orders the selected nodes along the axis, holds the first and
// last in place, and spaces the interior nodes at equal intervals between
// them. Returns new positions for the selected nodes only; with fewer than
// three selected it returns an empty map.
func Distribute(nodes []types.DiagramNode, selectedIDs []string, axis Axis) map[string]types.Position {
	selected := pick(nodes, selectedIDs)
	positions := make(map[string]types.Position)
	if len(selected) < 3 {
		return positions
	}

	sort.SliceStable(selected, func(i, j int) bool {
		if axis == Horizontal {
			return selected[i].Position.X < selected[j].Position.X
		}
		return selected[i].Position.Y < selected[j].Position.Y
	})

	first := selected[0].Position
	last := selected[len(selected)-1].Position
	n := float64(len(selected) - 1)

	for i, node := range selected {
		pos := node.Position
		t := float64(i)
		if axis == Horizontal {
			pos.X = first.X + (last.X-first.X)*t/n
		} else {
			pos.Y = first.Y + (last.Y-first.Y)*t/n
		}
		positions[node.ID] = pos
	}
	return positions
}

// pick returns the nodes whose ids are in selectedIDs, preserving node-list
// order
func pick(nodes []types.DiagramNode, selectedIDs []string) []types.DiagramNode {
	wanted := make(map[string]bool, len(selectedIDs))
	for _, id := range selectedIDs {
		wanted[id] = true
	}
	var out []types.DiagramNode
	for _, n := range nodes {
		if wanted[n.ID] {
			out = append(out, n)
		}
	}
	return out
}
