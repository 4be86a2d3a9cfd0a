package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/archboard/archboard/pkg/document"
	"github.com/archboard/archboard/pkg/layout"
	"github.com/archboard/archboard/pkg/types"
	"github.com/go-chi/chi/v5"
)

func (s *Server) handleListProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := s.projects.List()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if projects == nil {
		projects = []*types.Project{}
	}
	writeJSON(w, http.StatusOK, projects)
}

func (s *Server) handleCreateProject(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, fmt.Errorf("name is required"))
		return
	}
	p, err := s.projects.Create(req.Name, req.Description)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (s *Server) handleDeleteProject(w http.ResponseWriter, r *http.Request) {
	if err := s.projects.Delete(chi.URLParam(r, "id")); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleOpenProject(w http.ResponseWriter, r *http.Request) {
	if err := s.projects.Open(chi.URLParam(r, "id")); err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}
	writeJSON(w, http.StatusOK, s.projects.Current())
}

func (s *Server) handleSaveDesign(w http.ResponseWriter, r *http.Request) {
	if err := s.projects.Save(); err != nil {
		writeError(w, http.StatusConflict, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleGetDesign(w http.ResponseWriter, r *http.Request) {
	doc := document.Serialize(s.graph.Nodes(), s.graph.Edges(), s.graph.Viewport())
	writeJSON(w, http.StatusOK, doc)
}

// handlePutDesign validates an incoming design document and, if
// structurally sound, replaces the in-memory graph with it
func (s *Server) handlePutDesign(w http.ResponseWriter, r *http.Request) {
	var raw map[string]any
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	result := document.Validate(raw)
	if !result.IsValid {
		writeJSON(w, http.StatusUnprocessableEntity, result)
		return
	}
	nodes, edges, viewport := document.Deserialize(raw)
	s.graph.SetNodes(nodes)
	s.graph.SetEdges(edges)
	s.graph.SetViewport(viewport)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleValidateDesign(w http.ResponseWriter, r *http.Request) {
	var raw map[string]any
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, document.Validate(raw))
}

func (s *Server) handleListNodes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.graph.Nodes())
}

func (s *Server) handleAddNode(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Kind     types.NodeKind `json:"kind"`
		Position types.Position `json:"position"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	node := s.graph.AddNode(req.Kind, req.Position)
	writeJSON(w, http.StatusCreated, node)
}

func (s *Server) handleDeleteNode(w http.ResponseWriter, r *http.Request) {
	s.graph.DeleteNode(chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleUpdateProperty(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Value any `json:"value"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	s.graph.UpdateNodeProperty(chi.URLParam(r, "id"), chi.URLParam(r, "propertyID"), types.ValueOf(req.Value))
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListEdges(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.graph.Edges())
}

func (s *Server) handleConnect(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Source       string `json:"source"`
		Target       string `json:"target"`
		SourceHandle string `json:"sourceHandle"`
		TargetHandle string `json:"targetHandle"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	edge, ok := s.graph.Connect(req.Source, req.Target, req.SourceHandle, req.TargetHandle)
	if !ok {
		// Unknown endpoints are a no-op, not an error; report what happened
		writeJSON(w, http.StatusOK, map[string]any{"created": false})
		return
	}
	writeJSON(w, http.StatusCreated, edge)
}

func (s *Server) handleDeleteEdge(w http.ResponseWriter, r *http.Request) {
	s.graph.DeleteEdge(chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleGetSelection(w http.ResponseWriter, r *http.Request) {
	multi := s.graph.MultiSelection()
	if multi == nil {
		multi = []string{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"nodeId": s.graph.SelectedNodeID(),
		"edgeId": s.graph.SelectedEdgeID(),
		"multi":  multi,
	})
}

// handleSetSelection replaces the multi-selection the layout operations act
// on with exactly the given node ids
func (s *Server) handleSetSelection(w http.ResponseWriter, r *http.Request) {
	var req struct {
		IDs []string `json:"ids"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	s.graph.SetMultiSelection(req.IDs)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSelectNode(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	s.graph.SelectNode(req.ID)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSelectEdge(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	s.graph.SelectEdge(req.ID)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleAutoLayout(w http.ResponseWriter, r *http.Request) {
	positions := layout.AutoLayout(s.graph.Nodes())
	s.graph.ApplyPositions(positions)
	writeJSON(w, http.StatusOK, positions)
}

func (s *Server) handleAlign(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Edge layout.AlignEdge `json:"edge"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	positions := layout.Align(s.graph.Nodes(), s.graph.MultiSelection(), req.Edge)
	s.graph.ApplyPositions(positions)
	writeJSON(w, http.StatusOK, positions)
}

func (s *Server) handleDistribute(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Axis layout.Axis `json:"axis"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	positions := layout.Distribute(s.graph.Nodes(), s.graph.MultiSelection(), req.Axis)
	s.graph.ApplyPositions(positions)
	writeJSON(w, http.StatusOK, positions)
}

func (s *Server) handleSimulationState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"isRunning":   s.engine.Running(),
		"currentTime": s.engine.CurrentTime(),
		"speed":       s.engine.Speed(),
		"duration":    s.engine.Duration(),
		"progress":    s.engine.Progress(),
	})
}

func (s *Server) handleSimulationStart(w http.ResponseWriter, r *http.Request) {
	s.dispatcher.StartSimulation()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSimulationPause(w http.ResponseWriter, r *http.Request) {
	s.engine.Pause()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSimulationStop(w http.ResponseWriter, r *http.Request) {
	s.dispatcher.StopSimulation()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSetSpeed(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Speed float64 `json:"speed"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	s.engine.SetSpeed(req.Speed)
	writeJSON(w, http.StatusOK, map[string]float64{"speed": s.engine.Speed()})
}

func (s *Server) handleSetDuration(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Duration float64 `json:"duration"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	s.engine.SetDuration(req.Duration)
	writeJSON(w, http.StatusOK, map[string]float64{"duration": s.engine.Duration()})
}

func (s *Server) handleSimulationEvents(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.engine.Events())
}

func (s *Server) handleNodeStatuses(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.graph.NodeStatuses())
}

// handleClearNodeStatuses discards accumulated node status and logs without
// touching the diagram. Stop leaves them in place; this is the explicit
// "clear results" gesture.
func (s *Server) handleClearNodeStatuses(w http.ResponseWriter, r *http.Request) {
	s.graph.ClearNodeStatuses()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListSnapshots(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.engine.Snapshots())
}

func (s *Server) handleTakeSnapshot(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	snap, err := s.projects.PersistSnapshot(req.Name)
	if err != nil {
		writeError(w, http.StatusConflict, err)
		return
	}
	writeJSON(w, http.StatusCreated, snap)
}

func (s *Server) handleRestoreSnapshot(w http.ResponseWriter, r *http.Request) {
	if !s.engine.RestoreSnapshot(chi.URLParam(r, "id")) {
		writeError(w, http.StatusNotFound, fmt.Errorf("snapshot not found"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
