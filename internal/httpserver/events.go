package httpserver

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/abhisek/konnektoren/internal/event"
)

// broadcastEvent is the event bus handler feeding every stream client.
func (s *Server) broadcastEvent(e event.Event) {
	data, err := event.Marshal(e)
	if err != nil {
		s.logger.Warn().Err(err).Str("event", e.String()).Msg("encode event")
		return
	}
	s.broadcast(data)
}

func (s *Server) broadcast(data []byte) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for ch := range s.clients {
		select {
		case ch <- data:
		default:
			// Client too slow, skip
		}
	}
}

func (s *Server) addClient() chan []byte {
	ch := make(chan []byte, clientBuffer)
	s.mu.Lock()
	s.clients[ch] = struct{}{}
	s.mu.Unlock()
	return ch
}

func (s *Server) removeClient(ch chan []byte) {
	s.mu.Lock()
	delete(s.clients, ch)
	s.mu.Unlock()
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	// Register before the handshake completes so no event published after
	// the client connected is missed.
	ch := s.addClient()
	defer s.removeClient(ch)

	if websocket.IsWebSocketUpgrade(r) {
		s.streamWebSocket(w, r, ch)
		return
	}
	s.streamSSE(w, r, ch)
}

func (s *Server) streamWebSocket(w http.ResponseWriter, r *http.Request, ch <-chan []byte) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already replied with an HTTP error.
		s.logger.Debug().Err(err).Msg("websocket upgrade")
		return
	}
	defer conn.Close()

	// The client never sends anything; reading detects when it goes away.
	gone := make(chan struct{})
	go func() {
		defer close(gone)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-s.closed:
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
				time.Now().Add(writeWait))
			return
		case <-gone:
			return
		case data := <-ch:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		}
	}
}

func (s *Server) streamSSE(w http.ResponseWriter, r *http.Request, ch <-chan []byte) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming not supported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-s.closed:
			return
		case data := <-ch:
			fmt.Fprintf(w, "event: game\ndata: %s\n\n", data)
			flusher.Flush()
		}
	}
}
