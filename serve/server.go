package serve

import (
	"context"
	"net"
	"net/http"
	"sync"

	"golang.org/x/net/netutil"
)

// Server wraps http.Server with the Config's timeouts, an optional cap on
// concurrent connections, and graceful shutdown.
type Server struct {
	cfg        Config
	httpServer *http.Server

	mu   sync.Mutex
	addr net.Addr
}

// NewServer returns a server that dispatches requests to handler. It
// returns an error when the configuration is invalid.
func NewServer(cfg Config, handler http.Handler) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Server{
		cfg: cfg,
		httpServer: &http.Server{
			Handler:      handler,
			ReadTimeout:  cfg.ReadTimeout.Std(),
			WriteTimeout: cfg.WriteTimeout.Std(),
			IdleTimeout:  cfg.IdleTimeout.Std(),
		},
	}, nil
}

// ListenAndServe listens on the configured address and serves requests
// until Shutdown is called or the listener fails. When MaxConnections is
// set, the listener accepts at most that many simultaneous connections.
// Like http.Server, it returns http.ErrServerClosed after Shutdown.
func (s *Server) ListenAndServe() error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.addr = ln.Addr()
	s.mu.Unlock()

	if s.cfg.MaxConnections > 0 {
		ln = netutil.LimitListener(ln, s.cfg.MaxConnections)
	}

	return s.httpServer.Serve(ln)
}

// Addr returns the listener's address once ListenAndServe has bound it,
// or nil. Useful when the configured address picks an ephemeral port.
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.addr
}

// Shutdown gracefully shuts the server down, waiting for in-flight
// requests up to the configured ShutdownTimeout (or until ctx is done,
// whichever comes first).
func (s *Server) Shutdown(ctx context.Context) error {
	if t := s.cfg.ShutdownTimeout.Std(); t > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t)
		defer cancel()
	}

	return s.httpServer.Shutdown(ctx)
}
