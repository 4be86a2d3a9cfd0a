package storage

import (
	"github.com/archboard/archboard/pkg/types"
)

// Store defines the interface for project and design persistence
type Store interface {
	// Projects
	CreateProject(project *types.Project) error
	GetProject(id string) (*types.Project, error)
	GetProjectByName(name string) (*types.Project, error)
	ListProjects() ([]*types.Project, error)
	UpdateProject(project *types.Project) error
	DeleteProject(id string) error

	// Designs (one document per project)
	SaveDesign(projectID string, doc *types.Document) error
	GetDesign(projectID string) (*types.Document, error)

	// Snapshots
	SaveSnapshot(projectID string, snapshot *types.Snapshot) error
	ListSnapshots(projectID string) ([]*types.Snapshot, error)
	DeleteSnapshots(projectID string) error

	// Utility
	Close() error
}
