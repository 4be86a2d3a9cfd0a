/*
Package api exposes the diagram engine over REST and websocket.

The server is the boundary the studio frontend (and any other client)
talks to. REST routes cover projects, the design document, structural
graph mutations, layout operations, simulation control, and snapshots.
Two websocket routes carry the streaming traffic: /ws/events fans the
internal event broker out to clients, and /ws/session accepts the inbound
tagged-message stream a backend-driven simulation uses in place of the
local mock engine.

# Routes

	GET    /healthz
	GET    /metrics

	GET    /api/projects                    list projects
	POST   /api/projects                    create project
	DELETE /api/projects/{id}               delete project
	POST   /api/projects/{id}/open          open (switch to) project
	POST   /api/projects/current/save       persist current design

	GET    /api/design                      serialize current graph
	PUT    /api/design                      validate + replace graph
	POST   /api/design/validate             validation only

	GET    /api/nodes                       list nodes
	POST   /api/nodes                       add node (palette drop)
	DELETE /api/nodes/{id}                  delete node (cascades edges)
	PATCH  /api/nodes/{id}/properties/{pid} update one property value

	GET    /api/edges                       list edges
	POST   /api/edges                       connect two nodes
	DELETE /api/edges/{id}                  delete edge

	GET    /api/selection                   current selection state
	PUT    /api/selection                   set multi-selection node ids
	POST   /api/selection/node              select one node (property panel)
	POST   /api/selection/edge              select one edge

	POST   /api/layout/auto                 grid auto-layout, all nodes
	POST   /api/layout/align                align multi-selected nodes
	POST   /api/layout/distribute           distribute multi-selected nodes

	GET    /api/simulation                  clock/speed/duration/progress
	POST   /api/simulation/start|pause|stop
	PUT    /api/simulation/speed|duration
	GET    /api/simulation/events           timeline events
	GET    /api/simulation/status           per-node status map
	DELETE /api/simulation/status           clear accumulated status/logs

	GET    /api/snapshots                   list snapshots
	POST   /api/snapshots                   take + persist snapshot
	POST   /api/snapshots/{id}/restore      restore snapshot

	GET    /ws/events                       outbound event stream
	GET    /ws/session                      inbound simulation session

Mutations on unknown ids follow the store's silent no-op semantics: the
HTTP layer reports success and the model simply does not change. Only
malformed requests and storage failures produce error responses.
*/
package api
