/*
Package project manages the lifecycle of the current project.

Exactly one project is open at a time. Opening a project tears the previous
one down completely: the simulation engine is reset (cancelling any running
tick loop and discarding events and snapshots), the graph store is cleared,
and the newly opened project's stored design, if one exists, is
deserialized into the graph. There is deliberately no diffing or merging
across a switch.

Save serializes the live graph through pkg/document and persists it as the
project's design, bumping the project's last-modified time.

The manager also bridges snapshots to storage: PersistSnapshot captures a
named snapshot through the simulation engine and writes it under the
current project so it survives a restart.
*/
package project
