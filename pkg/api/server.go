package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/archboard/archboard/pkg/bridge"
	"github.com/archboard/archboard/pkg/events"
	"github.com/archboard/archboard/pkg/graph"
	"github.com/archboard/archboard/pkg/log"
	"github.com/archboard/archboard/pkg/metrics"
	"github.com/archboard/archboard/pkg/project"
	"github.com/archboard/archboard/pkg/simulator"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

// Server exposes the diagram engine over REST and websocket
type Server struct {
	graph      *graph.Store
	engine     *simulator.Engine
	projects   *project.Manager
	broker     *events.Broker
	dispatcher *bridge.Dispatcher
	logger     zerolog.Logger
	http       *http.Server
}

// NewServer creates an API server over the engine's components
func NewServer(g *graph.Store, engine *simulator.Engine, projects *project.Manager, broker *events.Broker) *Server {
	return &Server{
		graph:      g,
		engine:     engine,
		projects:   projects,
		broker:     broker,
		dispatcher: bridge.NewDispatcher(g, engine),
		logger:     log.WithComponent("api"),
	}
}

// Router builds the HTTP route tree
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.instrument)

	r.Get("/healthz", s.handleHealth)
	r.Handle("/metrics", metrics.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Route("/projects", func(r chi.Router) {
			r.Get("/", s.handleListProjects)
			r.Post("/", s.handleCreateProject)
			r.Delete("/{id}", s.handleDeleteProject)
			r.Post("/{id}/open", s.handleOpenProject)
			r.Post("/current/save", s.handleSaveDesign)
		})

		r.Route("/design", func(r chi.Router) {
			r.Get("/", s.handleGetDesign)
			r.Put("/", s.handlePutDesign)
			r.Post("/validate", s.handleValidateDesign)
		})

		r.Route("/nodes", func(r chi.Router) {
			r.Get("/", s.handleListNodes)
			r.Post("/", s.handleAddNode)
			r.Delete("/{id}", s.handleDeleteNode)
			r.Patch("/{id}/properties/{propertyID}", s.handleUpdateProperty)
		})

		r.Route("/edges", func(r chi.Router) {
			r.Get("/", s.handleListEdges)
			r.Post("/", s.handleConnect)
			r.Delete("/{id}", s.handleDeleteEdge)
		})

		r.Route("/selection", func(r chi.Router) {
			r.Get("/", s.handleGetSelection)
			r.Put("/", s.handleSetSelection)
			r.Post("/node", s.handleSelectNode)
			r.Post("/edge", s.handleSelectEdge)
		})

		r.Route("/layout", func(r chi.Router) {
			r.Post("/auto", s.handleAutoLayout)
			r.Post("/align", s.handleAlign)
			r.Post("/distribute", s.handleDistribute)
		})

		r.Route("/simulation", func(r chi.Router) {
			r.Get("/", s.handleSimulationState)
			r.Post("/start", s.handleSimulationStart)
			r.Post("/pause", s.handleSimulationPause)
			r.Post("/stop", s.handleSimulationStop)
			r.Put("/speed", s.handleSetSpeed)
			r.Put("/duration", s.handleSetDuration)
			r.Get("/events", s.handleSimulationEvents)
			r.Get("/status", s.handleNodeStatuses)
			r.Delete("/status", s.handleClearNodeStatuses)
		})

		r.Route("/snapshots", func(r chi.Router) {
			r.Get("/", s.handleListSnapshots)
			r.Post("/", s.handleTakeSnapshot)
			r.Post("/{id}/restore", s.handleRestoreSnapshot)
		})
	})

	r.Get("/ws/events", s.handleEventStream)
	r.Get("/ws/session", s.handleSession)

	return r
}

// Start begins serving on addr. Blocks until the listener fails or Stop is
// called.
func (s *Server) Start(addr string) error {
	s.http = &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.logger.Info().Str("addr", addr).Msg("API listening")
	err := s.http.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Stop gracefully shuts the server down
func (s *Server) Stop(ctx context.Context) error {
	if s.http == nil {
		return nil
	}
	return s.http.Shutdown(ctx)
}

// instrument records request counts and latency per route
func (s *Server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		timer := metrics.NewTimer()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		metrics.APIRequestsTotal.WithLabelValues(r.Method, http.StatusText(ww.Status())).Inc()
		timer.ObserveDurationVec(metrics.APIRequestDuration, r.Method)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "healthy",
		"running": s.engine.Running(),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
