// Package httpserver exposes a game controller over HTTP.
//
// Routes:
//   - GET  /health        liveness probe
//   - GET  /state         current game state
//   - GET  /achievements  statistics and unlocked achievements
//   - POST /commands      publish a command (?sync=true executes it directly)
//   - GET  /events        event stream (websocket, or SSE for plain requests)
package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/abhisek/konnektoren/internal/achievement"
	"github.com/abhisek/konnektoren/internal/controller"
	"github.com/abhisek/konnektoren/internal/event"
)

const (
	requestTimeout  = 10 * time.Second
	maxCommandBytes = 64 << 10
	clientBuffer    = 32
	writeWait       = 5 * time.Second
)

// Server bundles the router, the controller it drives and the connected
// event stream clients.
type Server struct {
	r            *chi.Mux
	ctrl         controller.Controller
	achievements *achievement.Evaluator
	logger       zerolog.Logger
	upgrader     websocket.Upgrader

	mu      sync.RWMutex
	clients map[chan []byte]struct{}

	closeOnce sync.Once
	closed    chan struct{}
}

// New constructs a Server, installs middleware and registers routes. The
// server subscribes to the controller's event bus for the event stream.
func New(ctrl controller.Controller, achievements *achievement.Evaluator, logger zerolog.Logger) *Server {
	s := &Server{
		r:            chi.NewRouter(),
		ctrl:         ctrl,
		achievements: achievements,
		logger:       logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		clients: make(map[chan []byte]struct{}),
		closed:  make(chan struct{}),
	}

	ctrl.EventBus().Subscribe(event.TypeGame, s.broadcastEvent)
	ctrl.EventBus().Subscribe(event.TypeChallenge, s.broadcastEvent)

	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(requestLogger(logger))
	s.r.Use(chimw.Recoverer)

	s.r.Group(func(r chi.Router) {
		r.Use(chimw.Timeout(requestTimeout))
		r.Use(jsonContentType)

		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"ok":true}`))
		})
		r.Get("/state", s.handleState)
		r.Get("/achievements", s.handleAchievements)
		r.Post("/commands", s.handleCommand)
	})

	// Streams are long lived and stay outside the timeout group.
	s.r.Get("/events", s.handleEvents)

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found", "path": r.URL.Path})
	})

	return s
}

// Handler returns the router.
func (s *Server) Handler() http.Handler { return s.r }

// ListenAndServe serves on addr until ctx is cancelled, then shuts down and
// disconnects event stream clients.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", addr).Msg("http server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		s.Close()
		return err
	case <-ctx.Done():
	}

	s.Close()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Close disconnects all event stream clients.
func (s *Server) Close() {
	s.closeOnce.Do(func() { close(s.closed) })
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.ctrl.Snapshot())
}

type achievementsResponse struct {
	Statistics achievement.Statistics   `json:"statistics"`
	Achieved   []achievement.Definition `json:"achieved"`
}

func (s *Server) handleAchievements(w http.ResponseWriter, r *http.Request) {
	g := s.ctrl.Snapshot().Game
	achieved, err := s.achievements.Evaluate(g)
	if err != nil {
		s.logger.Error().Err(err).Msg("evaluate achievements")
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if achieved == nil {
		achieved = []achievement.Definition{}
	}
	writeJSON(w, http.StatusOK, achievementsResponse{
		Statistics: achievement.ComputeStatistics(g),
		Achieved:   achieved,
	})
}

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// requestLogger logs one line per request once the handler returns.
func requestLogger(logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			defer func() {
				logger.Info().
					Str("request_id", chimw.GetReqID(r.Context())).
					Str("method", r.Method).
					Str("path", r.URL.Path).
					Int("status", ww.Status()).
					Int("bytes", ww.BytesWritten()).
					Dur("duration", time.Since(start)).
					Msg("http request")
			}()
			next.ServeHTTP(ww, r)
		})
	}
}

// ----------------------------- helpers -------------------------------------

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
