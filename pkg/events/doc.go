/*
Package events provides an in-memory event broker for Archboard's pub/sub messaging.

The events package implements a lightweight event bus for broadcasting diagram
and simulation events to interested subscribers. It supports asynchronous event
delivery with per-subscriber buffering, enabling loose coupling between the
graph store, the simulator, and the API's streaming clients.

# Architecture

Non-blocking pub/sub with buffered channels:

	Publisher → Event Channel (buffer: 100)
	     ↓
	Broadcast Loop
	     ↓
	Subscriber Channels (buffer: 50 each)

A single broadcast goroutine fans each event out to every subscriber. A
subscriber whose buffer is full is skipped rather than blocking the broker,
trading guaranteed delivery for throughput.

# Event Types Catalog

Graph events:
  - node.added, node.updated, node.deleted
  - edge.added, edge.deleted

Project events:
  - project.switched, design.saved

Simulation events:
  - simulation.started, simulation.paused, simulation.stopped
  - simulation.tick (one per engine tick)
  - simulation.event (a warning/error surfaced on the timeline)
  - snapshot.taken, snapshot.restored

# Usage

Creating and starting a broker:

	broker := events.NewBroker()
	broker.Start()
	defer broker.Stop()

Subscribing:

	sub := broker.Subscribe()
	defer broker.Unsubscribe(sub)

	go func() {
		for event := range sub {
			fmt.Printf("%s: %s\n", event.Type, event.Message)
		}
	}()

Publishing:

	broker.Publish(&events.Event{
		Type:        events.EventNodeAdded,
		ComponentID: node.ID,
		Message:     "node added to canvas",
	})

# Integration Points

  - pkg/graph publishes structural change events
  - pkg/simulator publishes lifecycle and tick events
  - pkg/project publishes project.switched and design.saved
  - pkg/api streams events to websocket clients

# Limitations

In-memory only, best-effort delivery, no replay. Subscribers needing history
should read the simulator's event list instead of reconstructing it from the
broker.
*/
package events
