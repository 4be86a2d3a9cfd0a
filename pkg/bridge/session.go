package bridge

import (
	"github.com/archboard/archboard/pkg/log"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Session reads inbound messages from one websocket connection and feeds
// them through a dispatcher until the connection closes
type Session struct {
	ID         string
	conn       *websocket.Conn
	dispatcher *Dispatcher
}

// NewSession wraps an upgraded websocket connection
func NewSession(conn *websocket.Conn, dispatcher *Dispatcher) *Session {
	return &Session{
		ID:         uuid.New().String(),
		conn:       conn,
		dispatcher: dispatcher,
	}
}

// Run loops over inbound frames until read error or close. Each frame is
// one Message; the session id is stamped on messages that omit one.
func (s *Session) Run() {
	logger := log.WithSessionID(s.ID)
	logger.Info().Msg("session connected")

	for {
		var msg Message
		if err := s.conn.ReadJSON(&msg); err != nil {
			logger.Info().Err(err).Msg("session disconnected")
			return
		}
		if msg.SessionID == "" {
			msg.SessionID = s.ID
		}
		s.dispatcher.Dispatch(msg)
	}
}
