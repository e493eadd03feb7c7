package live

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/gamedaysuits/GDS-AI-Draft-Benchmark/internal/feed"
	"github.com/gamedaysuits/GDS-AI-Draft-Benchmark/internal/model"
)

const (
	// writeTimeout bounds every write to a client connection.
	writeTimeout = 5 * time.Second

	// pingPeriod is how often idle clients get a keepalive ping.
	pingPeriod = 30 * time.Second

	// recentLimit is how many events are kept for late joiners and /state.
	recentLimit = 256

	// sendBuffer must exceed recentLimit so a replay always fits in a fresh
	// client's queue.
	sendBuffer = 512
)

// Server hosts the live draft view: an HTML chat page on /, an event
// stream on /ws, and a JSON snapshot on /state.
type Server struct {
	logger *slog.Logger
	addr   string
	input  *feed.Buffer[model.DraftEvent]

	upgrader websocket.Upgrader
	httpSrv  *http.Server
	ln       net.Listener

	// mu guards clients and recent. Sends on a client channel only happen
	// with mu held, which makes closing those channels under mu safe.
	mu      sync.Mutex
	clients map[*client]struct{}
	recent  []model.DraftEvent
	total   int64

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

type client struct {
	conn *websocket.Conn
	send chan model.DraftEvent
}

// stateSnapshot is the /state response body.
type stateSnapshot struct {
	Clients int                `json:"clients"`
	Events  int64              `json:"events"`
	Recent  []model.DraftEvent `json:"recent"`
}

// New creates a live view server listening on addr once started.
func New(addr string, input *feed.Buffer[model.DraftEvent], logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		logger: logger,
		addr:   addr,
		input:  input,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		clients: make(map[*client]struct{}),
	}
}

// Start binds the listener and begins serving and broadcasting.
func (s *Server) Start(ctx context.Context) error {
	s.ctx, s.cancel = context.WithCancel(ctx)

	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("listen live view: %w", err)
	}
	s.ln = ln

	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/ws", s.handleWS)
	mux.HandleFunc("/state", s.handleState)
	s.httpSrv = &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		if err := s.httpSrv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("live view server failed", "error", err)
		}
	}()

	s.wg.Add(1)
	go s.consumeLoop()

	s.logger.Info("live view started", "url", "http://"+s.Addr()+"/")
	return nil
}

// Stop shuts the HTTP server down, disconnects every client, and waits for
// the loops to finish.
func (s *Server) Stop(ctx context.Context) error {
	if s.cancel != nil {
		s.cancel()
	}
	if s.httpSrv != nil {
		if err := s.httpSrv.Shutdown(ctx); err != nil {
			s.logger.Warn("live view shutdown", "error", err)
		}
	}

	// Shutdown does not touch hijacked WebSocket connections; closing the
	// send channels makes each writeLoop say goodbye and close its conn.
	s.mu.Lock()
	for c := range s.clients {
		delete(s.clients, c)
		close(c.send)
	}
	s.mu.Unlock()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		s.logger.Warn("live view stop timed out")
	}
	return nil
}

// Addr returns the bound address, useful when the configured port is 0.
func (s *Server) Addr() string {
	if s.ln != nil {
		return s.ln.Addr().String()
	}
	return s.addr
}

// ClientCount returns the number of connected viewers.
func (s *Server) ClientCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.clients)
}

func (s *Server) consumeLoop() {
	defer s.wg.Done()

	for {
		ev, ok := s.input.Receive(s.ctx)
		if !ok {
			return
		}
		s.broadcast(ev)
	}
}

// broadcast records the event and fans it out. Clients that cannot keep up
// are dropped rather than allowed to stall the draft.
func (s *Server) broadcast(ev model.DraftEvent) {
	if ev.Kind == model.EventPlan {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.total++
	s.recent = append(s.recent, ev)
	if len(s.recent) > recentLimit {
		s.recent = s.recent[len(s.recent)-recentLimit:]
	}

	for c := range s.clients {
		select {
		case c.send <- ev:
		default:
			delete(s.clients, c)
			close(c.send)
			s.logger.Warn("dropping slow live view client")
		}
	}
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, indexHTML)
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	if s.ctx == nil || s.ctx.Err() != nil {
		http.Error(w, "shutting down", http.StatusServiceUnavailable)
		return
	}
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "error", err)
		return
	}

	c := &client{
		conn: conn,
		send: make(chan model.DraftEvent, sendBuffer),
	}

	// Queue the replay before the client is visible to broadcast, so a new
	// viewer sees history and live events in order.
	s.mu.Lock()
	for _, ev := range s.recent {
		c.send <- ev
	}
	s.clients[c] = struct{}{}
	s.mu.Unlock()

	s.wg.Add(2)
	go s.writeLoop(c)
	go s.readLoop(c)
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	snap := stateSnapshot{
		Clients: len(s.clients),
		Events:  s.total,
		Recent:  append([]model.DraftEvent(nil), s.recent...),
	}
	s.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(snap); err != nil {
		s.logger.Warn("state encode failed", "error", err)
	}
}

func (s *Server) writeLoop(c *client) {
	defer s.wg.Done()
	defer c.conn.Close()

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case ev, ok := <-c.send:
			if !ok {
				deadline := time.Now().Add(writeTimeout)
				c.conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), deadline)
				return
			}
			c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := c.conn.WriteJSON(ev); err != nil {
				s.unregister(c)
				return
			}
		case <-ticker.C:
			deadline := time.Now().Add(writeTimeout)
			if err := c.conn.WriteControl(websocket.PingMessage, []byte("keepalive"), deadline); err != nil {
				s.unregister(c)
				return
			}
		}
	}
}

// readLoop discards inbound frames; its job is noticing the peer go away.
func (s *Server) readLoop(c *client) {
	defer s.wg.Done()
	defer s.unregister(c)

	c.conn.SetReadLimit(512)
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (s *Server) unregister(c *client) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.clients[c]; ok {
		delete(s.clients, c)
		close(c.send)
	}
}
