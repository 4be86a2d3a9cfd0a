/*
Package document converts the in-memory diagram graph to and from the
versioned transport document persisted as a project's design data.

# Document Shape

	{
	  "version": "1.1.0",
	  "nodes": [{"id", "type", "position", "data": {name, description, ...}}],
	  "edges": [{"id", "source", "target", "data": {status, protocol, ...}}],
	  "viewport": {"x", "y", "zoom"},
	  "metadata": {"created_at", "updated_at", "canvas_size"}
	}

On output a node's property list is flattened to a data record keyed by
property id (falling back to the property name when the id is absent), and
transient selection and drag flags are stripped: a stored document never
encodes "currently selected". Edge data gets defaults injected for name,
protocol, latency, and bandwidth. The canvas size is the bounding box of
node positions plus a fixed margin, floored at 800x600.

# Format Sniffing

Deserialize treats a document with a version field as current-format and
passes nodes, edges, and viewport through with defaults for any missing
field. A document with no version field is a legacy untagged design:
nodes and edges are accepted if array-typed and default to empty
otherwise. Presence of the version field is the full compatibility
contract; there is no further schema negotiation.

# Validation

Validate checks structural well-formedness only — nodes and edges, if
present, must be arrays whose elements carry id/position and
id/source/target respectively. All violations are collected into one
Result rather than stopping at the first, so a caller can display the
complete list. Validation never throws; a malformed document is a value,
not an exception.

Effective property values survive a round trip: deserializing a serialized
graph reproduces the same node ids, edge ids, positions, and property
values, with properties rebuilt by overlaying stored values onto the
kind's defaults from pkg/properties.
*/
package document
