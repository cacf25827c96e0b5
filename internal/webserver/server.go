package webserver

import (
	"context"
	"os"
	"sync"
	"time"

	"github.com/quibbble/go-cirrus/pkg/http"
	"github.com/quibbble/go-cirrus/pkg/logger"
	"github.com/quibbble/go-cirrus/pkg/middleware"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/unrolled/render"
)

const healthPath = "/health"

type Server struct {
	cfg      Config
	log      zerolog.Logger
	router   *StaticRouter
	server   *http.Server
	site     *StaticSiteServer
	errCh    chan error
	shutdown sync.Once
}

// NewServer wires the router, HTTP listener and static site together. The
// port is bound before NewServer returns.
func NewServer(cfg Config, log zerolog.Logger) (*Server, error) {
	return newServer(cfg, log, afero.NewOsFs())
}

func newServer(cfg Config, log zerolog.Logger, fs afero.Fs) (*Server, error) {
	errCh := make(chan error, 1)
	r := NewRouter(cfg.Router, fs)
	r.Use(middleware.RequestLogger(log, healthPath))
	r.Get(healthPath, NewHandler(render.New()).Health)

	server := http.NewServer(cfg.Server, r, log, errCh)
	site, err := New(r, server, cfg.WebServer, Deps{
		Log: logger.NewAdapter(log),
		Fs:  fs,
	})
	if err != nil {
		return nil, err
	}
	return &Server{
		cfg:    cfg,
		log:    log,
		router: r,
		server: server,
		site:   site,
		errCh:  errCh,
	}, nil
}

// Start blocks until the server fails or is shut down.
func (s *Server) Start() {
	for err := range s.errCh {
		if err != nil {
			s.log.Error().Caller().Err(err).Msg("fatal error")
			s.Shutdown(true)
		}
	}
}

func (s *Server) Port() int {
	return s.server.Port()
}

func (s *Server) Shutdown(errored bool) {
	s.shutdown.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		s.log.Info().Msg("attempting graceful shutdown")
		graceful := make(chan bool)
		go func(graceful <-chan bool) {
			select {
			case <-ctx.Done():
				if ctx.Err() == context.DeadlineExceeded {
					s.log.Panic().Msg("timeout so shutdown ungracefully")
				}
			case <-graceful:
			}
		}(graceful)
		if err := s.server.Shutdown(ctx); err != nil {
			s.log.Error().Caller().Err(err).Msg("failed to shutdown server gracefully")
		}
		close(s.errCh)
		close(graceful)
		if errored {
			s.log.Info().Msg("shutdown gracefully but error detected")
			os.Exit(1)
		}
	})
}
