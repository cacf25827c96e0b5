package webserver

import (
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/afero"
	"github.com/unrolled/render"
)

// RateLimitWindow is the window PerMinuteRateLimit is counted over.
const RateLimitWindow = time.Minute

// Deps carries the optional collaborators of a StaticSiteServer. Nil
// fields fall back to a no-op logger, per-IP rate limiting and the host
// filesystem.
type Deps struct {
	Log     Logger
	Limiter LimiterFactory
	Fs      afero.Fs
}

func (d Deps) withDefaults() Deps {
	if d.Log == nil {
		d.Log = nopLogger{}
	}
	if d.Limiter == nil {
		d.Limiter = IPLimiter
	}
	if d.Fs == nil {
		d.Fs = afero.NewOsFs()
	}
	return d
}

// StaticSiteServer serves a static site with a homepage resolved from a
// handful of candidate locations.
type StaticSiteServer struct {
	opts       Options
	mounts     []Mount
	candidates []string
	fs         afero.Fs
	log        Logger
	render     *render.Render
}

// New binds listener to the configured port, mounts the static
// directories on router in precedence order, registers the homepage
// handler and, when configured, the rate limiter. Bind errors are returned
// as is and leave router untouched.
func New(router Router, listener Listener, opts Options, deps Deps) (*StaticSiteServer, error) {
	deps = deps.withDefaults()
	deps.Log.Debug("Starting WebServer with config: %+v", opts)

	opts = opts.WithDefaults()
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	candidates, err := CandidatePaths(opts.Root, opts.HomepageFile)
	if err != nil {
		return nil, err
	}
	s := &StaticSiteServer{
		opts:       opts,
		mounts:     MountTable(opts.Root),
		candidates: candidates,
		fs:         deps.Fs,
		log:        deps.Log,
		render:     render.New(),
	}

	port := opts.Port
	if err := listener.Listen(port, func() {
		s.log.Info(fmt.Sprintf("Http server listening on port %d", port))
	}); err != nil {
		return nil, err
	}

	for _, m := range s.mounts {
		router.MountStatic(m.Prefix, m.Dir)
	}
	router.Get("/", s.ServeHomepage)
	if opts.PerMinuteRateLimit > 0 {
		router.Use(deps.Limiter(opts.PerMinuteRateLimit, RateLimitWindow))
	}
	return s, nil
}

func (s *StaticSiteServer) Options() Options {
	return s.opts
}

func (s *StaticSiteServer) Mounts() []Mount {
	return append([]Mount(nil), s.mounts...)
}

func (s *StaticSiteServer) Candidates() []string {
	return append([]string(nil), s.candidates...)
}

// ServeHomepage sends the first candidate that exists as a regular file.
// Existence is checked on every request.
func (s *StaticSiteServer) ServeHomepage(w http.ResponseWriter, r *http.Request) {
	for _, p := range s.candidates {
		fi, err := s.fs.Stat(p)
		if err != nil || fi.IsDir() {
			continue
		}
		f, err := s.fs.Open(p)
		if err != nil {
			s.log.Error(fmt.Sprintf("failed to open %s: %v", p, err))
			s.writeText(w, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
			return
		}
		defer f.Close()
		http.ServeContent(w, r, fi.Name(), fi.ModTime(), f)
		return
	}

	msg := "Unable to locate file " + s.opts.HomepageFile
	s.log.Error(msg)
	s.writeText(w, http.StatusNotFound, msg)
}

func (s *StaticSiteServer) writeText(w http.ResponseWriter, status int, body string) {
	if err := s.render.Text(w, status, body); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
	}
}
