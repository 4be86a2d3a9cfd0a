/*
Package types defines the core data structures shared across all Archboard packages.

This package contains the domain model for the diagram engine: nodes, edges,
properties, simulation status, events, snapshots, projects, and the versioned
design document exchanged with the persistence layer. It has no dependencies
on other Archboard packages and serves as the foundation of the type system.

# Core Types

Diagram structure:
  - DiagramNode: A system component on the canvas (service, database, queue,
    load balancer, cache, gateway), identified by NodeKind
  - DiagramEdge: A directed connection between two nodes, carrying EdgeData
    (status, protocol, throughput, latency, error rate)
  - Property: One editable attribute of a node, with a PropertyType tag and
    a tagged Value union (string, number, or boolean)
  - Viewport: Canvas pan and zoom state

Simulation state:
  - NodeStatus: Per-node simulation state (status, metrics, logs), keyed by
    node id and held apart from the structural node so simulation writes stay
    independent of graph edits
  - SimulationEvent: A discrete timestamped event on the simulation timeline
  - Snapshot: A named capture of nodes, edges, and simulated time

Persistence:
  - Project: A named container for one design
  - Document: The versioned transport document {version, nodes, edges,
    viewport, metadata} persisted as a project's design data

# Type Enumerations

NodeKind: generic-service, database, message-queue, load-balancer, cache,
api-gateway

NodeState: idle, active, warning, error

EdgeState: idle, active, error, success

PropertyType: string, number, boolean, select, textarea, slider, json

# Design Principles

String-based enums: NodeKind, NodeState, EdgeState, and PropertyType are
string types so they JSON-encode to their wire representation directly.

Tagged values: Property values are a tagged Value union rather than an
untyped interface so consumers switch exhaustively on ValueKind. Value
marshals to the bare JSON scalar, so documents stay flat.

Transient state: Selected and Dragging on DiagramNode are UI-session state
and are stripped by the serializer; they never appear in a stored document.

# Usage

	node := types.DiagramNode{
		ID:       uuid.New().String(),
		Kind:     types.KindDatabase,
		Label:    "Orders DB",
		Position: types.Position{X: 250, Y: 150},
	}

	edge := types.DiagramEdge{
		ID:     uuid.New().String(),
		Source: "a",
		Target: "b",
		Data:   types.EdgeData{Status: types.EdgeStateIdle, Protocol: "HTTP"},
	}

# See Also

  - pkg/graph for the canonical store that owns these values
  - pkg/document for serialization to and from Document
  - pkg/simulator for how NodeStatus and SimulationEvent are produced
*/
package types
