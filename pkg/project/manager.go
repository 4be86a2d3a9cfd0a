package project

import (
	"fmt"
	"sync"
	"time"

	"github.com/archboard/archboard/pkg/document"
	"github.com/archboard/archboard/pkg/events"
	"github.com/archboard/archboard/pkg/graph"
	"github.com/archboard/archboard/pkg/log"
	"github.com/archboard/archboard/pkg/metrics"
	"github.com/archboard/archboard/pkg/simulator"
	"github.com/archboard/archboard/pkg/storage"
	"github.com/archboard/archboard/pkg/types"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Manager owns the current project and coordinates switching between
// projects: exactly one project is current at a time, and switching
// discards the in-memory graph and simulation state of the previous one.
// There is no diffing or merging across a switch.
type Manager struct {
	store  storage.Store
	graph  *graph.Store
	engine *simulator.Engine
	broker *events.Broker
	logger zerolog.Logger

	mu      sync.Mutex
	current *types.Project
}

// NewManager creates a project manager
func NewManager(store storage.Store, g *graph.Store, engine *simulator.Engine, broker *events.Broker) *Manager {
	return &Manager{
		store:  store,
		graph:  g,
		engine: engine,
		broker: broker,
		logger: log.WithComponent("project"),
	}
}

// Create stores a new empty project. It does not open it.
func (m *Manager) Create(name, description string) (*types.Project, error) {
	project := &types.Project{
		ID:           uuid.New().String(),
		Name:         name,
		Description:  description,
		LastModified: time.Now().UnixMilli(),
	}
	if err := m.store.CreateProject(project); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}
	m.logger.Info().Str("project_id", project.ID).Str("name", name).Msg("project created")
	m.countProjects()
	return project, nil
}

func (m *Manager) countProjects() {
	if projects, err := m.store.ListProjects(); err == nil {
		metrics.ProjectsTotal.Set(float64(len(projects)))
	}
}

// List returns all stored projects
func (m *Manager) List() ([]*types.Project, error) {
	return m.store.ListProjects()
}

// Current returns the currently open project, or nil
func (m *Manager) Current() *types.Project {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

// Open makes the given project current. Any running simulation is stopped
// and its timer cancelled, the previous project's graph, events, and
// snapshots are discarded, and the stored design (if any) is loaded into
// the graph.
func (m *Manager) Open(id string) error {
	project, err := m.store.GetProject(id)
	if err != nil {
		return err
	}

	// Tear down the previous project's state before anything of the new
	// one becomes visible.
	m.engine.Reset()
	m.graph.Reset()

	if doc, err := m.store.GetDesign(id); err == nil {
		raw, err := encodeGeneric(doc)
		if err != nil {
			return fmt.Errorf("failed to decode stored design: %w", err)
		}
		nodes, edges, viewport := document.Deserialize(raw)
		m.graph.SetNodes(nodes)
		m.graph.SetEdges(edges)
		m.graph.SetViewport(viewport)
	}

	m.mu.Lock()
	m.current = project
	m.mu.Unlock()

	m.logger.Info().Str("project_id", id).Str("name", project.Name).Msg("project opened")
	if m.broker != nil {
		m.broker.Publish(&events.Event{
			Type:     events.EventProjectSwitched,
			Message:  project.Name,
			Metadata: map[string]string{"project_id": id},
		})
	}
	return nil
}

// Save serializes the current graph and persists it as the current
// project's design
func (m *Manager) Save() error {
	m.mu.Lock()
	current := m.current
	m.mu.Unlock()
	if current == nil {
		return fmt.Errorf("no project is open")
	}

	doc := document.Serialize(m.graph.Nodes(), m.graph.Edges(), m.graph.Viewport())
	if err := m.store.SaveDesign(current.ID, doc); err != nil {
		return fmt.Errorf("failed to save design: %w", err)
	}

	current.LastModified = time.Now().UnixMilli()
	if err := m.store.UpdateProject(current); err != nil {
		return fmt.Errorf("failed to update project: %w", err)
	}

	m.logger.Info().Str("project_id", current.ID).Int("nodes", len(doc.Nodes)).Int("edges", len(doc.Edges)).Msg("design saved")
	if m.broker != nil {
		m.broker.Publish(&events.Event{
			Type:     events.EventDesignSaved,
			Metadata: map[string]string{"project_id": current.ID},
		})
	}
	return nil
}

// Delete removes a project and its stored design and snapshots. Deleting
// the current project closes it first.
func (m *Manager) Delete(id string) error {
	m.mu.Lock()
	isCurrent := m.current != nil && m.current.ID == id
	m.mu.Unlock()

	if isCurrent {
		m.engine.Reset()
		m.graph.Reset()
		m.mu.Lock()
		m.current = nil
		m.mu.Unlock()
	}
	if err := m.store.DeleteProject(id); err != nil {
		return err
	}
	m.countProjects()
	return nil
}

// PersistSnapshot captures a named snapshot through the engine and writes
// it to storage under the current project
func (m *Manager) PersistSnapshot(name string) (*types.Snapshot, error) {
	m.mu.Lock()
	current := m.current
	m.mu.Unlock()
	if current == nil {
		return nil, fmt.Errorf("no project is open")
	}

	snap := m.engine.TakeSnapshot(name)
	if err := m.store.SaveSnapshot(current.ID, &snap); err != nil {
		return nil, fmt.Errorf("failed to persist snapshot: %w", err)
	}
	return &snap, nil
}
