package document

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/archboard/archboard/pkg/properties"
	"github.com/archboard/archboard/pkg/types"
)

// Version is the current design document format version
const Version = "1.1.0"

// Canvas size is derived from the bounding box of all node positions plus a
// fixed margin, floored at a minimum size.
const (
	canvasMargin    = 100.0
	minCanvasWidth  = 800.0
	minCanvasHeight = 600.0
)

// Defaults injected into edge data fields that are absent on output
const (
	defaultEdgeName      = "Connection"
	defaultEdgeProtocol  = "HTTP"
	defaultEdgeLatency   = 10.0
	defaultEdgeBandwidth = 100.0
)

// Serialize converts the in-memory graph to a versioned transport document.
// Node property lists are reduced to flat records keyed by property id, and
// transient selection/drag flags are never encoded. Edge data gets defaults
// injected for name, protocol, latency, and bandwidth when absent.
func Serialize(nodes []types.DiagramNode, edges []types.DiagramEdge, viewport types.Viewport) *types.Document {
	now := time.Now()
	doc := &types.Document{
		Version:  Version,
		Nodes:    make([]types.DocumentNode, 0, len(nodes)),
		Edges:    make([]types.DocumentEdge, 0, len(edges)),
		Viewport: viewport,
		Metadata: types.DocumentMetadata{
			CreatedAt:  now,
			UpdatedAt:  now,
			CanvasSize: canvasSize(nodes),
		},
	}

	for _, n := range nodes {
		data := properties.ToRecord(n.Properties)
		if _, ok := data["name"]; !ok {
			data["name"] = n.Label
		}
		if _, ok := data["description"]; !ok {
			data["description"] = ""
		}
		doc.Nodes = append(doc.Nodes, types.DocumentNode{
			ID:       n.ID,
			Type:     n.Kind,
			Position: n.Position,
			Data:     data,
		})
	}

	for _, e := range edges {
		doc.Edges = append(doc.Edges, types.DocumentEdge{
			ID:           e.ID,
			Source:       e.Source,
			Target:       e.Target,
			SourceHandle: e.SourceHandle,
			TargetHandle: e.TargetHandle,
			Data:         edgeRecord(e.Data),
		})
	}

	return doc
}

// edgeRecord flattens edge data, injecting defaults for absent fields
func edgeRecord(d types.EdgeData) map[string]any {
	name := d.Name
	if name == "" {
		name = defaultEdgeName
	}
	protocol := d.Protocol
	if protocol == "" {
		protocol = defaultEdgeProtocol
	}
	latency := d.Latency
	if latency == 0 {
		latency = defaultEdgeLatency
	}
	bandwidth := d.Bandwidth
	if bandwidth == 0 {
		bandwidth = defaultEdgeBandwidth
	}
	status := d.Status
	if status == "" {
		status = types.EdgeStateIdle
	}
	return map[string]any{
		"name":       name,
		"status":     string(status),
		"protocol":   protocol,
		"throughput": d.Throughput,
		"latency":    latency,
		"bandwidth":  bandwidth,
		"errorRate":  d.ErrorRate,
	}
}

// canvasSize computes the true bounding box of all node positions plus
// margin, floored at the minimum canvas size. Min and max both feed the
// extent so negative coordinates and clusters far from the origin measure
// the same as an origin-anchored layout.
func canvasSize(nodes []types.DiagramNode) types.CanvasSize {
	var minX, minY, maxX, maxY float64
	for i, n := range nodes {
		if i == 0 || n.Position.X < minX {
			minX = n.Position.X
		}
		if i == 0 || n.Position.X > maxX {
			maxX = n.Position.X
		}
		if i == 0 || n.Position.Y < minY {
			minY = n.Position.Y
		}
		if i == 0 || n.Position.Y > maxY {
			maxY = n.Position.Y
		}
	}
	size := types.CanvasSize{Width: maxX - minX + canvasMargin, Height: maxY - minY + canvasMargin}
	if size.Width < minCanvasWidth {
		size.Width = minCanvasWidth
	}
	if size.Height < minCanvasHeight {
		size.Height = minCanvasHeight
	}
	return size
}

// Parse decodes raw design data into the generic form Deserialize and
// Validate operate on
func Parse(data []byte) (map[string]any, error) {
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse design data: %w", err)
	}
	return doc, nil
}

// Deserialize converts a parsed document back into graph form. A nil
// document yields an empty graph with the default viewport. A document with
// a version field is treated as current-format; without one it is treated
// as a legacy untagged format and nodes/edges are accepted only if they are
// arrays. Presence of the version field is the entire compatibility
// contract.
func Deserialize(doc map[string]any) (nodes []types.DiagramNode, edges []types.DiagramEdge, viewport types.Viewport) {
	viewport = types.DefaultViewport()
	if doc == nil {
		return nil, nil, viewport
	}

	// Same field handling either way; the version check only decides whether
	// we expect the document to be well-formed.
	rawNodes, _ := doc["nodes"].([]any)
	rawEdges, _ := doc["edges"].([]any)

	for _, raw := range rawNodes {
		m, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		nodes = append(nodes, deserializeNode(m))
	}
	for _, raw := range rawEdges {
		m, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		edges = append(edges, deserializeEdge(m))
	}

	if vp, ok := doc["viewport"].(map[string]any); ok {
		viewport = types.Viewport{
			X:    number(vp["x"], 0),
			Y:    number(vp["y"], 0),
			Zoom: number(vp["zoom"], 1),
		}
	}
	return nodes, edges, viewport
}

func deserializeNode(m map[string]any) types.DiagramNode {
	kind, _ := m["type"].(string)
	node := types.DiagramNode{
		ID:   str(m["id"]),
		Kind: types.NodeKind(kind),
	}
	if pos, ok := m["position"].(map[string]any); ok {
		node.Position = types.Position{X: number(pos["x"], 0), Y: number(pos["y"], 0)}
	}
	data, _ := m["data"].(map[string]any)
	node.Properties = properties.FromRecord(node.Kind, data)
	if p := node.Property("name"); p != nil {
		node.Label = p.Value.Str
	}
	return node
}

func deserializeEdge(m map[string]any) types.DiagramEdge {
	edge := types.DiagramEdge{
		ID:           str(m["id"]),
		Source:       str(m["source"]),
		Target:       str(m["target"]),
		SourceHandle: str(m["sourceHandle"]),
		TargetHandle: str(m["targetHandle"]),
	}
	data, _ := m["data"].(map[string]any)
	edge.Data = types.EdgeData{
		Name:       str(data["name"]),
		Status:     types.EdgeState(strDefault(data["status"], string(types.EdgeStateIdle))),
		Protocol:   strDefault(data["protocol"], defaultEdgeProtocol),
		Throughput: number(data["throughput"], 0),
		Latency:    number(data["latency"], 0),
		Bandwidth:  number(data["bandwidth"], 0),
		ErrorRate:  number(data["errorRate"], 0),
	}
	return edge
}

func str(v any) string {
	s, _ := v.(string)
	return s
}

func strDefault(v any, def string) string {
	if s, ok := v.(string); ok && s != "" {
		return s
	}
	return def
}

func number(v any, def float64) float64 {
	switch x := v.(type) {
	case float64:
		return x
	case int:
		return float64(x)
	default:
		return def
	}
}
