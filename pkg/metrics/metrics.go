package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Diagram metrics
	DiagramNodesTotal = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "archboard_diagram_nodes_total",
			Help: "Number of diagram nodes by component kind",
		},
		[]string{"kind"},
	)

	DiagramEdgesTotal = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "archboard_diagram_edges_total",
			Help: "Number of diagram edges",
		},
	)

	ProjectsTotal = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "archboard_projects_total",
			Help: "Number of stored projects",
		},
	)

	// Simulation metrics
	SimulationRunning = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "archboard_simulation_running",
			Help: "Whether the simulation loop is active (1 = running)",
		},
	)

	SimulationTicksTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "archboard_simulation_ticks_total",
			Help: "Total number of simulation ticks executed",
		},
	)

	SimulationEventsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "archboard_simulation_events_total",
			Help: "Total number of simulation events by type",
		},
		[]string{"type"},
	)

	SimulationTickDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "archboard_simulation_tick_duration_seconds",
			Help:    "Simulation tick duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	// API metrics
	APIRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "archboard_api_requests_total",
			Help: "Total number of API requests by method and status",
		},
		[]string{"method", "status"},
	)

	APIRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "archboard_api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method"},
	)

	StreamClientsTotal = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "archboard_stream_clients_total",
			Help: "Number of connected websocket stream clients",
		},
	)
)

func init() {
	// Register all metrics
	prometheus.MustRegister(DiagramNodesTotal)
	prometheus.MustRegister(DiagramEdgesTotal)
	prometheus.MustRegister(ProjectsTotal)
	prometheus.MustRegister(SimulationRunning)
	prometheus.MustRegister(SimulationTicksTotal)
	prometheus.MustRegister(SimulationEventsTotal)
	prometheus.MustRegister(SimulationTickDuration)
	prometheus.MustRegister(APIRequestsTotal)
	prometheus.MustRegister(APIRequestDuration)
	prometheus.MustRegister(StreamClientsTotal)
}

// Handler returns the Prometheus HTTP handler
func Handler() http.Handler {
	return promhttp.Handler()
}
