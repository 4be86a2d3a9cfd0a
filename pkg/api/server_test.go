package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/archboard/archboard/pkg/graph"
	"github.com/archboard/archboard/pkg/project"
	"github.com/archboard/archboard/pkg/simulator"
	"github.com/archboard/archboard/pkg/storage"
	"github.com/archboard/archboard/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) (*httptest.Server, *graph.Store) {
	t.Helper()
	store, err := storage.NewBoltStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	g := graph.NewStore(nil)
	engine := simulator.NewEngine(g, nil, nil)
	t.Cleanup(engine.Stop)
	projects := project.NewManager(store, g, engine, nil)

	srv := NewServer(g, engine, projects, nil)
	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)
	return ts, g
}

func doJSON(t *testing.T, method, url string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

func TestHealth(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]any
	decode(t, resp, &body)
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, false, body["running"])
}

func TestNodeAndEdgeEndpoints(t *testing.T) {
	ts, _ := newTestServer(t)

	resp := doJSON(t, http.MethodPost, ts.URL+"/api/nodes", map[string]any{
		"kind":     "database",
		"position": map[string]float64{"x": 100, "y": 50},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var db types.DiagramNode
	decode(t, resp, &db)
	assert.Equal(t, types.KindDatabase, db.Kind)
	assert.NotEmpty(t, db.ID)
	assert.Equal(t, "Database", db.Label)

	resp = doJSON(t, http.MethodPost, ts.URL+"/api/nodes", map[string]any{
		"kind":     "generic-service",
		"position": map[string]float64{"x": 400, "y": 50},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var svc types.DiagramNode
	decode(t, resp, &svc)

	resp = doJSON(t, http.MethodPost, ts.URL+"/api/edges", map[string]any{
		"source": svc.ID,
		"target": db.ID,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var edge types.DiagramEdge
	decode(t, resp, &edge)
	assert.Equal(t, types.EdgeStateIdle, edge.Data.Status)
	assert.Equal(t, "HTTP", edge.Data.Protocol)

	// connecting to a missing endpoint is reported, not an error
	resp = doJSON(t, http.MethodPost, ts.URL+"/api/edges", map[string]any{
		"source": svc.ID,
		"target": "ghost",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var created map[string]any
	decode(t, resp, &created)
	assert.Equal(t, false, created["created"])

	// cascade delete through the API
	resp = doJSON(t, http.MethodDelete, ts.URL+"/api/nodes/"+db.ID, nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()

	resp, err := http.Get(ts.URL + "/api/edges")
	require.NoError(t, err)
	var edges []types.DiagramEdge
	decode(t, resp, &edges)
	assert.Empty(t, edges)
}

func TestUpdatePropertyEndpoint(t *testing.T) {
	ts, g := newTestServer(t)
	node := g.AddNode(types.KindCache, types.Position{})

	resp := doJSON(t, http.MethodPatch, ts.URL+"/api/nodes/"+node.ID+"/properties/name", map[string]any{
		"value": "session-cache",
	})
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()

	nodes := g.Nodes()
	require.Len(t, nodes, 1)
	assert.Equal(t, "session-cache", nodes[0].Label)
	assert.Equal(t, "session-cache", nodes[0].Property("name").Value.Str)
}

func TestProjectLifecycleEndpoints(t *testing.T) {
	ts, g := newTestServer(t)

	// save with no open project conflicts
	resp := doJSON(t, http.MethodPost, ts.URL+"/api/projects/current/save", nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, http.MethodPost, ts.URL+"/api/projects", map[string]string{
		"name": "inventory",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var p types.Project
	decode(t, resp, &p)

	resp = doJSON(t, http.MethodPost, ts.URL+"/api/projects/"+p.ID+"/open", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	g.AddNode(types.KindService, types.Position{X: 5, Y: 5})
	resp = doJSON(t, http.MethodPost, ts.URL+"/api/projects/current/save", nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()

	resp, err := http.Get(ts.URL + "/api/projects")
	require.NoError(t, err)
	var projects []types.Project
	decode(t, resp, &projects)
	require.Len(t, projects, 1)
	assert.Equal(t, "inventory", projects[0].Name)

	resp = doJSON(t, http.MethodPost, ts.URL+"/api/projects/missing/open", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestProjectCreateRequiresName(t *testing.T) {
	ts, _ := newTestServer(t)

	resp := doJSON(t, http.MethodPost, ts.URL+"/api/projects", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestDesignEndpoints(t *testing.T) {
	ts, g := newTestServer(t)
	g.AddNode(types.KindService, types.Position{X: 1, Y: 2})

	resp, err := http.Get(ts.URL + "/api/design")
	require.NoError(t, err)
	var doc map[string]any
	decode(t, resp, &doc)
	assert.Equal(t, "1.1.0", doc["version"])

	// a structurally broken document is rejected and the graph untouched
	resp = doJSON(t, http.MethodPut, ts.URL+"/api/design", map[string]any{
		"nodes": []any{map[string]any{"position": map[string]float64{"x": 0, "y": 0}}},
	})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	var result map[string]any
	decode(t, resp, &result)
	assert.Equal(t, false, result["isValid"])
	assert.Len(t, g.Nodes(), 1)

	// a sound document replaces the graph
	resp = doJSON(t, http.MethodPut, ts.URL+"/api/design", map[string]any{
		"version": "1.1.0",
		"nodes": []any{
			map[string]any{"id": "a", "type": "cache", "position": map[string]float64{"x": 9, "y": 9}},
			map[string]any{"id": "b", "type": "database", "position": map[string]float64{"x": 300, "y": 9}},
		},
		"edges": []any{
			map[string]any{"id": "e", "source": "a", "target": "b"},
		},
	})
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()
	assert.Len(t, g.Nodes(), 2)
	assert.Len(t, g.Edges(), 1)

	resp = doJSON(t, http.MethodPost, ts.URL+"/api/design/validate", map[string]any{
		"nodes": "nope",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &result)
	assert.Equal(t, false, result["isValid"])
}

func TestSelectionEndpoints(t *testing.T) {
	ts, g := newTestServer(t)
	a := g.AddNode(types.KindService, types.Position{})
	b := g.AddNode(types.KindDatabase, types.Position{X: 300})
	edge, ok := g.Connect(a.ID, b.ID, "", "")
	require.True(t, ok)

	resp := doJSON(t, http.MethodPut, ts.URL+"/api/selection", map[string]any{
		"ids": []string{a.ID, b.ID},
	})
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()

	var selection struct {
		NodeID string   `json:"nodeId"`
		EdgeID string   `json:"edgeId"`
		Multi  []string `json:"multi"`
	}
	resp, err := http.Get(ts.URL + "/api/selection")
	require.NoError(t, err)
	decode(t, resp, &selection)
	assert.ElementsMatch(t, []string{a.ID, b.ID}, selection.Multi)

	resp = doJSON(t, http.MethodPost, ts.URL+"/api/selection/node", map[string]string{"id": a.ID})
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, http.MethodPost, ts.URL+"/api/selection/edge", map[string]string{"id": edge.ID})
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()

	// selecting the edge cleared the node selection; multi-select is untouched
	resp, err = http.Get(ts.URL + "/api/selection")
	require.NoError(t, err)
	decode(t, resp, &selection)
	assert.Empty(t, selection.NodeID)
	assert.Equal(t, edge.ID, selection.EdgeID)
	assert.ElementsMatch(t, []string{a.ID, b.ID}, selection.Multi)
}

// TestLayoutEndpoints drives selection and layout purely over HTTP: the
// align and distribute operations must act on the selection set through the
// selection route
func TestLayoutEndpoints(t *testing.T) {
	ts, g := newTestServer(t)
	a := g.AddNode(types.KindService, types.Position{X: 500, Y: 500})
	b := g.AddNode(types.KindDatabase, types.Position{X: 10, Y: 10})
	c := g.AddNode(types.KindCache, types.Position{X: 40, Y: 900})

	resp := doJSON(t, http.MethodPost, ts.URL+"/api/layout/auto", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var positions map[string]types.Position
	decode(t, resp, &positions)
	assert.Len(t, positions, 3)
	assert.Equal(t, types.Position{X: 50, Y: 50}, positions[a.ID])

	// without a selection, align moves nothing
	resp = doJSON(t, http.MethodPost, ts.URL+"/api/layout/align", map[string]string{"edge": "top"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	positions = nil // json decode merges into a non-nil map; reset so Empty sees the response
	decode(t, resp, &positions)
	assert.Empty(t, positions)

	resp = doJSON(t, http.MethodPut, ts.URL+"/api/selection", map[string]any{
		"ids": []string{a.ID, b.ID, c.ID},
	})
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, http.MethodPost, ts.URL+"/api/layout/align", map[string]string{"edge": "top"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &positions)
	require.Len(t, positions, 3)
	assert.Equal(t, positions[a.ID].Y, positions[b.ID].Y)
	assert.Equal(t, positions[a.ID].Y, positions[c.ID].Y)

	// aligned positions were applied to the store
	for _, n := range g.Nodes() {
		assert.Equal(t, positions[n.ID], n.Position)
	}

	// crowd b toward a so distribute has something to even out
	g.UpdateNodePosition(b.ID, types.Position{X: 90, Y: positions[b.ID].Y})

	resp = doJSON(t, http.MethodPost, ts.URL+"/api/layout/distribute", map[string]string{"axis": "horizontal"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &positions)
	require.Len(t, positions, 3)
	gap1 := positions[b.ID].X - positions[a.ID].X
	gap2 := positions[c.ID].X - positions[b.ID].X
	assert.InDelta(t, gap1, gap2, 0.01, "interior node lands at equal spacing")
}

func TestSimulationEndpoints(t *testing.T) {
	ts, g := newTestServer(t)
	g.AddNode(types.KindService, types.Position{})

	resp := doJSON(t, http.MethodPut, ts.URL+"/api/simulation/speed", map[string]float64{"speed": 99})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var speed map[string]float64
	decode(t, resp, &speed)
	assert.Equal(t, simulator.MaxSpeed, speed["speed"], "speed is clamped")

	resp = doJSON(t, http.MethodPut, ts.URL+"/api/simulation/duration", map[string]float64{"duration": 120})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, http.MethodPost, ts.URL+"/api/simulation/start", nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()

	var state map[string]any
	resp, err := http.Get(ts.URL + "/api/simulation")
	require.NoError(t, err)
	decode(t, resp, &state)
	assert.Equal(t, true, state["isRunning"])
	assert.Equal(t, 120.0, state["duration"])

	resp = doJSON(t, http.MethodPost, ts.URL+"/api/simulation/stop", nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()

	resp, err = http.Get(ts.URL + "/api/simulation")
	require.NoError(t, err)
	decode(t, resp, &state)
	assert.Equal(t, false, state["isRunning"])
	assert.Equal(t, 0.0, state["currentTime"])
}

// Node status accumulated by a run survives stop; the DELETE route is the
// explicit clear
func TestClearNodeStatusesEndpoint(t *testing.T) {
	ts, g := newTestServer(t)
	node := g.AddNode(types.KindService, types.Position{})
	g.UpdateNodeStatus(node.ID, types.NodeStateWarning, &types.NodeMetrics{CPU: 70})

	var statuses map[string]types.NodeStatus
	resp, err := http.Get(ts.URL + "/api/simulation/status")
	require.NoError(t, err)
	decode(t, resp, &statuses)
	require.Len(t, statuses, 1)

	resp = doJSON(t, http.MethodDelete, ts.URL+"/api/simulation/status", nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()

	resp, err = http.Get(ts.URL + "/api/simulation/status")
	require.NoError(t, err)
	statuses = nil // json decode merges into a non-nil map; reset so Empty sees the response
	decode(t, resp, &statuses)
	assert.Empty(t, statuses)

	nodes := g.Nodes()
	require.Len(t, nodes, 1, "clearing status leaves the diagram untouched")
}

func TestSnapshotEndpoints(t *testing.T) {
	ts, g := newTestServer(t)

	// snapshot without an open project conflicts
	resp := doJSON(t, http.MethodPost, ts.URL+"/api/snapshots", map[string]string{"name": "early"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, http.MethodPost, ts.URL+"/api/projects", map[string]string{"name": "snapped"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var p types.Project
	decode(t, resp, &p)
	resp = doJSON(t, http.MethodPost, ts.URL+"/api/projects/"+p.ID+"/open", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	node := g.AddNode(types.KindCache, types.Position{X: 7, Y: 7})

	resp = doJSON(t, http.MethodPost, ts.URL+"/api/snapshots", map[string]string{"name": "baseline"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var snap types.Snapshot
	decode(t, resp, &snap)
	assert.Equal(t, "baseline", snap.Name)

	g.DeleteNode(node.ID)
	require.Empty(t, g.Nodes())

	resp = doJSON(t, http.MethodPost, ts.URL+"/api/snapshots/"+snap.ID+"/restore", nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()
	assert.Len(t, g.Nodes(), 1)

	resp = doJSON(t, http.MethodPost, ts.URL+"/api/snapshots/missing/restore", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}
