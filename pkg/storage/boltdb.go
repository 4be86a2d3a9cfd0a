package storage

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/archboard/archboard/pkg/types"
	bolt "go.etcd.io/bbolt"
)

var (
	// Bucket names
	bucketProjects  = []byte("projects")
	bucketDesigns   = []byte("designs")
	bucketSnapshots = []byte("snapshots")
)

// BoltStore implements Store interface using BoltDB
type BoltStore struct {
	db *bolt.DB
}

// NewBoltStore creates a new BoltDB-backed store
func NewBoltStore(dataDir string) (*BoltStore, error) {
	dbPath := filepath.Join(dataDir, "archboard.db")

	db, err := bolt.Open(dbPath, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Create buckets
	err = db.Update(func(tx *bolt.Tx) error {
		buckets := [][]byte{
			bucketProjects,
			bucketDesigns,
			bucketSnapshots,
		}

		for _, bucket := range buckets {
			if _, err := tx.CreateBucketIfNotExists(bucket); err != nil {
				return fmt.Errorf("failed to create bucket %s: %w", bucket, err)
			}
		}
		return nil
	})

	if err != nil {
		db.Close()
		return nil, err
	}

	return &BoltStore{db: db}, nil
}

// Close closes the database
func (s *BoltStore) Close() error {
	return s.db.Close()
}

// Project operations
func (s *BoltStore) CreateProject(project *types.Project) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketProjects)
		data, err := json.Marshal(project)
		if err != nil {
			return err
		}
		return b.Put([]byte(project.ID), data)
	})
}

func (s *BoltStore) GetProject(id string) (*types.Project, error) {
	var project types.Project
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketProjects)
		data := b.Get([]byte(id))
		if data == nil {
			return fmt.Errorf("project not found: %s", id)
		}
		return json.Unmarshal(data, &project)
	})
	if err != nil {
		return nil, err
	}
	return &project, nil
}

func (s *BoltStore) GetProjectByName(name string) (*types.Project, error) {
	var found *types.Project
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketProjects)
		return b.ForEach(func(k, v []byte) error {
			var project types.Project
			if err := json.Unmarshal(v, &project); err != nil {
				return err
			}
			if project.Name == name {
				found = &project
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	if found == nil {
		return nil, fmt.Errorf("project not found: %s", name)
	}
	return found, nil
}

func (s *BoltStore) ListProjects() ([]*types.Project, error) {
	var projects []*types.Project
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketProjects)
		return b.ForEach(func(k, v []byte) error {
			var project types.Project
			if err := json.Unmarshal(v, &project); err != nil {
				return err
			}
			projects = append(projects, &project)
			return nil
		})
	})
	return projects, err
}

func (s *BoltStore) UpdateProject(project *types.Project) error {
	return s.CreateProject(project) // Same as create (upsert)
}

// DeleteProject removes a project along with its design and snapshots
func (s *BoltStore) DeleteProject(id string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		if err := tx.Bucket(bucketProjects).Delete([]byte(id)); err != nil {
			return err
		}
		if err := tx.Bucket(bucketDesigns).Delete([]byte(id)); err != nil {
			return err
		}
		return deleteSnapshotsTx(tx, id)
	})
}

// Design operations
func (s *BoltStore) SaveDesign(projectID string, doc *types.Document) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketDesigns)
		data, err := json.Marshal(doc)
		if err != nil {
			return err
		}
		return b.Put([]byte(projectID), data)
	})
}

func (s *BoltStore) GetDesign(projectID string) (*types.Document, error) {
	var doc types.Document
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketDesigns)
		data := b.Get([]byte(projectID))
		if data == nil {
			return fmt.Errorf("design not found for project: %s", projectID)
		}
		return json.Unmarshal(data, &doc)
	})
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// Snapshot operations. Keys are "<projectID>/<snapshotID>" so one bucket
// holds all projects' snapshots with prefix scans per project.
func (s *BoltStore) SaveSnapshot(projectID string, snapshot *types.Snapshot) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketSnapshots)
		data, err := json.Marshal(snapshot)
		if err != nil {
			return err
		}
		return b.Put(snapshotKey(projectID, snapshot.ID), data)
	})
}

func (s *BoltStore) ListSnapshots(projectID string) ([]*types.Snapshot, error) {
	var snapshots []*types.Snapshot
	prefix := []byte(projectID + "/")
	err := s.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket(bucketSnapshots).Cursor()
		for k, v := c.Seek(prefix); k != nil && strings.HasPrefix(string(k), string(prefix)); k, v = c.Next() {
			var snapshot types.Snapshot
			if err := json.Unmarshal(v, &snapshot); err != nil {
				return err
			}
			snapshots = append(snapshots, &snapshot)
		}
		return nil
	})
	return snapshots, err
}

func (s *BoltStore) DeleteSnapshots(projectID string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return deleteSnapshotsTx(tx, projectID)
	})
}

func deleteSnapshotsTx(tx *bolt.Tx, projectID string) error {
	b := tx.Bucket(bucketSnapshots)
	prefix := []byte(projectID + "/")
	c := b.Cursor()
	var keys [][]byte
	for k, _ := c.Seek(prefix); k != nil && strings.HasPrefix(string(k), string(prefix)); k, _ = c.Next() {
		keys = append(keys, append([]byte(nil), k...))
	}
	for _, k := range keys {
		if err := b.Delete(k); err != nil {
			return err
		}
	}
	return nil
}

func snapshotKey(projectID, snapshotID string) []byte {
	return []byte(projectID + "/" + snapshotID)
}
