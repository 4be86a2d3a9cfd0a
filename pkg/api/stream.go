package api

import (
	"net/http"
	"time"

	"github.com/archboard/archboard/pkg/bridge"
	"github.com/archboard/archboard/pkg/metrics"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// The studio frontend is served from a different origin in
		// development; TLS termination and origin policy live in the
		// deployment's proxy.
		return true
	},
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
}

// streamEvent is the outbound wire form of a broker event
type streamEvent struct {
	Type        string            `json:"type"`
	Timestamp   time.Time         `json:"timestamp"`
	ComponentID string            `json:"componentId,omitempty"`
	Message     string            `json:"message,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// handleEventStream upgrades to websocket and fans broker events out to
// the client until it disconnects
func (s *Server) handleEventStream(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to upgrade event stream")
		return
	}
	defer conn.Close()

	metrics.StreamClientsTotal.Inc()
	defer metrics.StreamClientsTotal.Dec()

	sub := s.broker.Subscribe()
	defer s.broker.Unsubscribe(sub)

	// Reads are discarded but the loop notices the close frame
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case event, ok := <-sub:
			if !ok {
				return
			}
			out := streamEvent{
				Type:        string(event.Type),
				Timestamp:   event.Timestamp,
				ComponentID: event.ComponentID,
				Message:     event.Message,
				Metadata:    event.Metadata,
			}
			if err := conn.WriteJSON(out); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}

// handleSession upgrades to websocket and runs an inbound bridge session,
// the channel a backend-driven simulation feeds status and events through
func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to upgrade session")
		return
	}
	defer conn.Close()

	session := bridge.NewSession(conn, s.dispatcher)

	// Tell the client its session id before the first frame
	if err := conn.WriteJSON(map[string]string{"action": "session_created", "sessionId": session.ID}); err != nil {
		return
	}

	session.Run()
}
