// Package observer streams board snapshots to spectators over WebSocket.
package observer

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/tui-factory/internal/games/factory/core"
)

// SnapshotSchema is the JSON schema of every message the server sends.
//
//go:embed schema/snapshot.schema.json
var SnapshotSchema []byte

const (
	clientBuffer = 8
	writeTimeout = 5 * time.Second
)

// Server fans published snapshots out to connected spectators. Publish never
// blocks: a client whose buffer is full misses that frame.
type Server struct {
	// AllowRemote accepts non-loopback clients.
	AllowRemote bool

	log      *log.Logger
	upgrader websocket.Upgrader
	nextID   atomic.Uint64

	mu      sync.RWMutex
	latest  []byte
	clients map[uint64]chan []byte
}

// NewServer creates a server with no snapshot yet. A nil logger discards.
func NewServer(logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Server{
		log: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4 * 1024,
			WriteBufferSize: 64 * 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		clients: make(map[uint64]chan []byte),
	}
}

// Publish stores snap as the latest state and sends it to every client.
func (s *Server) Publish(snap core.Snapshot) error {
	b, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("observer: encode snapshot: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.latest = b
	for id, ch := range s.clients {
		select {
		case ch <- b:
		default:
			s.log.Debug("dropping frame for slow spectator", "client", id, "tick", snap.Tick)
		}
	}
	return nil
}

// Clients returns the number of connected spectators.
func (s *Server) Clients() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients)
}

// Handler routes /ws and /snapshot.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.WSHandler())
	mux.HandleFunc("/snapshot", s.SnapshotHandler())
	return mux
}

// SnapshotHandler serves the latest snapshot as JSON.
func (s *Server) SnapshotHandler() http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			rw.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		if !s.allowed(r) {
			http.Error(rw, "forbidden", http.StatusForbidden)
			return
		}

		s.mu.RLock()
		b := s.latest
		s.mu.RUnlock()
		if b == nil {
			http.Error(rw, "no snapshot yet", http.StatusServiceUnavailable)
			return
		}
		rw.Header().Set("Content-Type", "application/json")
		_, _ = rw.Write(b)
	}
}

// WSHandler upgrades the connection, sends the latest snapshot and then
// every published one until the client goes away.
func (s *Server) WSHandler() http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		if !s.allowed(r) {
			http.Error(rw, "forbidden", http.StatusForbidden)
			return
		}

		conn, err := s.upgrader.Upgrade(rw, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		id := s.nextID.Add(1)
		out := s.join(id)
		defer s.leave(id)
		s.log.Info("spectator connected", "client", id, "remote", r.RemoteAddr)

		ctx, cancel := context.WithCancel(r.Context())
		defer cancel()

		// Spectators only listen; reading detects the close.
		go func() {
			defer cancel()
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()

		for {
			select {
			case <-ctx.Done():
				s.log.Info("spectator disconnected", "client", id)
				return
			case b := <-out:
				_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
				if err := conn.WriteMessage(websocket.TextMessage, b); err != nil {
					s.log.Debug("spectator write failed", "client", id, "err", err)
					return
				}
			}
		}
	}
}

func (s *Server) join(id uint64) chan []byte {
	ch := make(chan []byte, clientBuffer)
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.latest != nil {
		ch <- s.latest
	}
	s.clients[id] = ch
	return ch
}

func (s *Server) leave(id uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.clients, id)
}

// ListenAndServe serves until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("observer listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("observer: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) allowed(r *http.Request) bool {
	return s.AllowRemote || isLoopbackRemote(r.RemoteAddr)
}

func isLoopbackRemote(remoteAddr string) bool {
	host := remoteAddr
	if h, _, err := net.SplitHostPort(remoteAddr); err == nil {
		host = h
	}
	host = strings.TrimPrefix(host, "[")
	host = strings.TrimSuffix(host, "]")
	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}
