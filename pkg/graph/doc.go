/*
Package graph provides the canonical in-memory store for the diagram state.

The Store is the single source of truth for nodes, edges, selection,
viewport, and per-node simulation status. Every other component reads and
writes through its mutation API; nothing mutates the underlying slices
directly, so the structural invariants are enforced in exactly one place.

# Invariants

  - Cascade delete: deleting a node removes every edge referencing it as
    source or target, in the same call
  - Edge endpoints always reference live nodes; SetNodes and SetEdges prune
    edges whose endpoints disappeared
  - Node and edge selection are mutually exclusive; selecting one clears
    the other
  - Property ids stay unique per node: UpdateNodeProperty rewrites values,
    never appends or removes entries

# Failure Semantics

All mutation operations are total: an unknown node or edge id is absorbed
as a silent no-op rather than an error. The primary caller is interactive
event handling, where races such as deleting a node whose property is being
edited in the same instant are expected and must not crash anything.

# Two Selections

The store models two distinct selection concepts on purpose:

  - SelectNode / SelectedNodeID: the single node whose properties are shown
    in the property panel
  - SetMultiSelection / the per-node Selected flag: the set of nodes the
    layout operations (align, distribute) act on

Unifying them would make it impossible to align three nodes while editing a
fourth.

# Reads After Writes

Every read method returns the state as of the last completed mutation;
there is no asynchronous gap between a mutation returning and its effect
being visible. Reads return copies, so callers can hold results across
later mutations.

# Events

When constructed with a broker, the store publishes node.added,
node.updated, node.deleted, edge.added, and edge.deleted events. Pass a nil
broker to disable publishing (useful in tests).
*/
package graph
