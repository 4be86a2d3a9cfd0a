/*
Package simulator implements the mock simulation engine that animates a
diagram with randomized status and metrics.

The Engine is a state machine with two states, Stopped and Running, driven
by a cancellable recurring timer. While Running, a tick fires every
1000/speed milliseconds; each tick advances the simulation clock by speed
seconds, assigns a weighted-random status and fresh metrics to every node,
derives a status and traffic numbers for every edge, and records a
timeline event for every warning or error.

# Scaling Law

Speed scales the tick frequency, not the step size. At speed 1 a tick
fires once per real second and advances the clock by one simulated second;
at speed 5 ticks fire five times per second, each still advancing the
clock by the speed value. Simulated time therefore passes at speed times
real time.

# Status Weights

Per node, a uniform draw maps through fixed cumulative weights:
active 60%, idle 25%, warning 10%, error 5%.

Per edge, independently: active 70%, idle 20%, success 8%, error 2%.
Throughput is nonzero only for active edges and error rate nonzero only
for error edges. An edge's protocol is preserved, defaulting to HTTP.

Elements are independent: a node's error does not influence its edges'
distribution. This is bounded demo behavior, not a discrete-event
simulation with causality.

# Determinism

All randomness flows through the Source interface. Production uses a
time-seeded source; tests inject a fixed sequence and drive Tick directly,
making the per-tick computation fully deterministic. DrawNodeState,
DrawEdgeState, and RandomMetrics are exported pure functions for exactly
this reason.

# Lifecycle

Start launches the loop. Pause halts it leaving the clock intact; Stop
halts it and resets the clock to zero. Both cancel the pending timer
before returning, so no tick fires after either call — a leaked timer
mutating a torn-down graph is the one real concurrency hazard here. Node
status and logs persist across Stop until the next run overwrites them or
Reset discards everything on project switch.

When the clock reaches the configured duration it freezes there. The
engine stays Running and the timer keeps firing, but ticks stop mutating
state; an explicit Stop ends the run.

# Snapshots

TakeSnapshot captures nodes, edges, and the clock under a name;
RestoreSnapshot swaps a capture back in for scrub-and-restore. Snapshots
live until project switch and are never auto-pruned.
*/
package simulator
