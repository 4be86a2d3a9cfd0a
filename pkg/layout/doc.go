/*
Package layout computes node positions for auto-layout, alignment, and
distribution of diagram elements.

All functions are pure: they take the current node list and return a map of
node id to new position, leaving the input untouched. Callers commit the
result through the graph store's ApplyPositions. Nothing here remembers why
a node is where it is; every call fully recomputes target positions from
current positions.

# Operations

AutoLayout arranges all nodes into a 4-column grid, row-major in list
order, at a 250x150 pitch from a fixed origin. Running it twice without an
intervening mutation yields identical positions.

Align snaps the multi-selected nodes to a shared edge (left, right, top,
bottom) or to their mean horizontal center. It is a no-op with fewer than
two selected nodes.

Distribute spaces the multi-selected nodes evenly along an axis, holding
the first and last fixed. It is a no-op with fewer than three selected
nodes.

# Node Size

The rendering layer owns real node dimensions. Right, bottom, and center
alignment assume DefaultNodeWidth x DefaultNodeHeight (200x100 units) when
computing far edges, which matches the default component card size in the
canvas renderer.
*/
package layout
