/*
Package bridge translates inbound simulation-session messages onto the
graph store and simulation engine.

A real backend-driven simulation streams tagged messages over a session
channel instead of letting the local engine draw random statuses. The
bridge is the narrow layer that makes the two interchangeable: the graph
model, property layer, layout engine, and document codec behave
identically whichever side is producing status.

# Message Contract

Each inbound frame is one Message with a type discriminator:

	{"type": "status", "sessionId": "...", "data": {...}}

Handled tags: started, stopped, status, metric, event, error. An
unrecognized tag is logged and ignored; it is never fatal, so a newer
backend can introduce tags without breaking older clients. Malformed
payloads are likewise absorbed with a warning.

The two mutation entry points a backend session exercises are the graph
store's UpdateNodeStatus and the engine's AddEvent — exactly the writes
the local mock engine performs each tick.

# Sessions

Session wraps one gorilla/websocket connection in a ReadJSON loop feeding
the dispatcher, stamping a generated session id on frames that omit one.
The loop ends when the connection closes; the dispatcher itself is
stateless across sessions.
*/
package bridge
