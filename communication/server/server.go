package server

import (
	"context"
	"encoding/json"
	"errors"
	"filler/communication"
	"filler/engine"
	"filler/gamemaster"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

const (
	idlePingInterval = 30 * time.Second
	maxMessageSize   = 1 << 20
	shutdownTimeout  = 5 * time.Second
)

// Server accepts websocket connections and runs one game session per connection.
type Server struct {
	router   *chi.Mux
	engine   *engine.Engine
	delay    time.Duration
	upgrader websocket.Upgrader
}

func New(e *engine.Engine, delay time.Duration) *Server {
	s := &Server{
		router: chi.NewRouter(),
		engine: e,
		delay:  delay,
		upgrader: websocket.Upgrader{
			// The browser client is opened from disk, any origin is accepted.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}

	s.router.Use(chimw.RequestID)
	s.router.Use(chimw.RealIP)
	s.router.Use(chimw.Recoverer)

	s.router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	s.router.Get("/", s.serveWS)
	s.router.Get("/ws", s.serveWS)
	return s
}

func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		// Open websocket connections close with the base context.
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Msgf("listening on %s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("failed to serve on %s: %w", addr, err)
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to serve on %s: %w", addr, err)
	}
	return nil
}

func (s *Server) serveWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}
	conn.SetReadLimit(maxMessageSize)

	id := chimw.GetReqID(r.Context())
	logger := log.With().Str("conn", id).Logger()
	logger.Info().Msgf("client connected from %s", r.RemoteAddr)

	c := &client{send: make(chan []byte, 16), gone: make(chan struct{})}
	go func() {
		defer close(c.gone)
		defer conn.Close()
		if err := writeWithHeartbeat(conn, c.send); err != nil {
			logger.Debug().Err(err).Msg("write failed")
		}
	}()
	go func() {
		select {
		case <-r.Context().Done():
			conn.Close()
		case <-c.gone:
		}
	}()

	session := gamemaster.NewSession(s.engine, s.delay, c.deliver)
	defer func() {
		session.Close()
		close(c.send)
		logger.Info().Msg("client disconnected")
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Warn().Err(err).Msg("read failed")
			}
			return
		}
		handle(session, c, data)
	}
}

// handle runs one request. A request that cannot be parsed or applied is answered with
// an error response and goes no further.
func handle(session *gamemaster.Session, c *client, data []byte) {
	req, err := communication.DecodeMessage(data)
	if err != nil {
		log.Warn().Err(err).Msg("rejecting request")
		c.deliver(gamemaster.Update{Kind: gamemaster.Failed, Err: err})
		return
	}

	switch req.Action {
	case communication.ActionPlayerMove:
		err = session.PlayerMove(req.State, req.Move)
	case communication.ActionAIMove:
		err = session.AIMove(req.State)
	}
	if err != nil {
		log.Warn().Err(err).Msgf("%s failed", req.Action)
		c.deliver(gamemaster.Update{Kind: gamemaster.Failed, Err: err})
	}
}

type client struct {
	send chan []byte
	gone chan struct{} // Closed when the writer stops
}

func (c *client) deliver(u gamemaster.Update) {
	data, err := json.Marshal(communication.NewResponse(u))
	if err != nil {
		log.Error().Err(err).Msg("failed to encode response")
		return
	}
	select {
	case c.send <- data:
	case <-c.gone:
	}
}

func writeWithHeartbeat(conn *websocket.Conn, send <-chan []byte) error {
	ticker := time.NewTicker(idlePingInterval)
	defer ticker.Stop()
	lastWrite := time.Now()
	ping, _ := json.Marshal(communication.Response{Type: communication.TypePing})

	for {
		select {
		case msg, ok := <-send:
			if !ok {
				_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return nil
			}
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return err
			}
			lastWrite = time.Now()
		case <-ticker.C:
			if time.Since(lastWrite) < idlePingInterval {
				continue
			}
			if err := conn.WriteMessage(websocket.TextMessage, ping); err != nil {
				return err
			}
			lastWrite = time.Now()
		}
	}
}
