/*
Package storage provides persistent storage for projects, designs, and
snapshots using an embedded BoltDB database.

The Store interface abstracts persistence; BoltStore is the production
implementation. All values are JSON-encoded, one bucket per entity:

  - projects: Project records keyed by project id
  - designs: one versioned design Document per project, keyed by project id
  - snapshots: Snapshot records keyed by "<project id>/<snapshot id>"

Deleting a project removes its design and snapshots in the same
transaction, so storage never holds a design for a project that no longer
exists.

This store is process-local persistence for the studio. Synchronizing
designs with a remote backend is a transport concern outside this package;
the document format it persists is exactly the transport document from
pkg/document.

# Usage

	store, err := storage.NewBoltStore("/var/lib/archboard")
	if err != nil {
		return err
	}
	defer store.Close()

	err = store.CreateProject(&types.Project{
		ID:   uuid.New().String(),
		Name: "checkout-flow",
	})
*/
package storage
