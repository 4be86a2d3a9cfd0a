package simulator

import (
	"sort"
	"time"

	"github.com/archboard/archboard/pkg/events"
	"github.com/archboard/archboard/pkg/types"
	"github.com/google/uuid"
)

// TakeSnapshot captures the current graph and simulation clock under the
// given name. Snapshots accumulate until the project is switched; they are
// never auto-pruned.
func (e *Engine) TakeSnapshot(name string) types.Snapshot {
	snap := types.Snapshot{
		ID:        uuid.New().String(),
		Name:      name,
		Nodes:     e.store.Nodes(),
		Edges:     e.store.Edges(),
		Time:      e.CurrentTime(),
		CreatedAt: time.Now(),
	}

	e.mu.Lock()
	e.snapshots[snap.ID] = snap
	e.mu.Unlock()

	e.publish(&events.Event{
		Type:     events.EventSnapshotTaken,
		Message:  name,
		Metadata: map[string]string{"snapshot_id": snap.ID},
	})
	return snap
}

// RestoreSnapshot replaces the graph and simulation clock with a stored
// snapshot. Returns false if the id is unknown.
func (e *Engine) RestoreSnapshot(id string) bool {
	e.mu.Lock()
	snap, ok := e.snapshots[id]
	e.mu.Unlock()
	if !ok {
		return false
	}

	e.store.SetNodes(snap.Nodes)
	e.store.SetEdges(snap.Edges)

	e.mu.Lock()
	e.currentTime = snap.Time
	e.mu.Unlock()

	e.publish(&events.Event{
		Type:     events.EventSnapshotRestored,
		Message:  snap.Name,
		Metadata: map[string]string{"snapshot_id": snap.ID},
	})
	return true
}

// Snapshot returns a stored snapshot by id
func (e *Engine) Snapshot(id string) (types.Snapshot, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	snap, ok := e.snapshots[id]
	return snap, ok
}

// Snapshots lists stored snapshots ordered by creation time
func (e *Engine) Snapshots() []types.Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]types.Snapshot, 0, len(e.snapshots))
	for _, s := range e.snapshots {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}
