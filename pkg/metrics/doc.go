/*
Package metrics provides Prometheus instrumentation for Archboard.

All metrics are package-level variables registered in init, following the
client_golang convention. The package also provides a Timer helper for
histogram observations and a Collector that periodically publishes diagram
gauges from the graph store.

# Metric Catalog

Diagram:
  - archboard_diagram_nodes_total{kind}: nodes on the canvas by component kind
  - archboard_diagram_edges_total: edges on the canvas
  - archboard_projects_total: stored projects

Simulation:
  - archboard_simulation_running: 1 while the tick loop is active
  - archboard_simulation_ticks_total: ticks executed
  - archboard_simulation_events_total{type}: timeline events by type
  - archboard_simulation_tick_duration_seconds: tick latency histogram

API:
  - archboard_api_requests_total{method,status}
  - archboard_api_request_duration_seconds{method}
  - archboard_stream_clients_total: connected websocket clients

# Usage

Timing an operation:

	timer := metrics.NewTimer()
	defer timer.ObserveDuration(metrics.SimulationTickDuration)

Serving metrics:

	mux.Handle("/metrics", metrics.Handler())

Running the collector:

	collector := metrics.NewCollector(store)
	collector.Start()
	defer collector.Stop()
*/
package metrics
