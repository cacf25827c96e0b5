package http

import (
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Server binds and serves a handler. Binding happens synchronously in Listen
// so callers see port conflicts and permission errors directly.
type Server struct {
	*http.Server
	log   zerolog.Logger
	errCh chan<- error

	mu   sync.Mutex
	addr net.Addr
}

const DefaultReadHeaderTimeout = 10 * time.Second

func NewServer(cfg ServerConfig, handler http.Handler, log zerolog.Logger, errCh chan<- error) *Server {
	readHeaderTimeout := DefaultReadHeaderTimeout
	if cfg.ReadHeaderTimeoutSec > 0 {
		readHeaderTimeout = time.Duration(cfg.ReadHeaderTimeoutSec) * time.Second
	}
	return &Server{
		Server: &http.Server{
			Handler:           handler,
			ReadHeaderTimeout: readHeaderTimeout,
		},
		log:   log,
		errCh: errCh,
	}
}

// Listen binds to port on all interfaces, calls onReady once bound and
// serves in the background. Unexpected serve failures are sent on the
// error channel.
func (s *Server) Listen(port int, onReady func()) error {
	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.addr = ln.Addr()
	s.mu.Unlock()

	if onReady != nil {
		onReady()
	}
	go s.serve(ln)
	return nil
}

func (s *Server) serve(ln net.Listener) {
	err := s.Serve(ln)
	if err != http.ErrServerClosed {
		s.log.Error().Caller().Err(err).Msg("server stopped unexpectedly")
		if s.errCh != nil {
			s.errCh <- err
		}
	} else {
		s.log.Info().Msg("server stopped")
	}
}

// Port returns the bound port, or 0 before Listen succeeds.
func (s *Server) Port() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if tcp, ok := s.addr.(*net.TCPAddr); ok {
		return tcp.Port
	}
	return 0
}
