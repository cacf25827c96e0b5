package webserver

import (
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/cors"
	chttp "github.com/quibbble/go-cirrus/pkg/http"
	"github.com/spf13/afero"
	"github.com/urfave/negroni"
)

type route struct {
	pattern string
	handler http.HandlerFunc
}

// StaticRouter implements Router on top of chi. Requests pass through the
// global middleware, then each static mount in registration order, and
// reach the registered routes only when no mount had the file.
//
// Registration may happen while the router is already serving: every
// change rebuilds the chain and swaps it in atomically.
type StaticRouter struct {
	cfg chttp.RouterConfig
	fs  afero.Fs

	mu          sync.Mutex
	mounts      []Mount
	routes      []route
	middlewares []func(http.Handler) http.Handler

	handler atomic.Value // http.Handler
}

func NewRouter(cfg chttp.RouterConfig, fs afero.Fs) *StaticRouter {
	r := &StaticRouter{cfg: cfg, fs: fs}
	r.rebuild()
	return r
}

func (r *StaticRouter) MountStatic(prefix, dir string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.mounts = append(r.mounts, Mount{Prefix: prefix, Dir: dir})
	r.rebuild()
}

func (r *StaticRouter) Get(pattern string, h http.HandlerFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.routes = append(r.routes, route{pattern: pattern, handler: h})
	r.rebuild()
}

func (r *StaticRouter) Use(middlewares ...func(http.Handler) http.Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.middlewares = append(r.middlewares, middlewares...)
	r.rebuild()
}

func (r *StaticRouter) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.handler.Load().(http.Handler).ServeHTTP(w, req)
}

func (r *StaticRouter) rebuild() {
	mux := chi.NewRouter()
	mux.Use(middleware.RequestID)
	if r.cfg.TrustProxy {
		mux.Use(middleware.RealIP)
	}
	mux.Use(middleware.Recoverer)
	if !r.cfg.DisableCors {
		mux.Use(cors.Handler(cors.Options{
			AllowedOrigins:   r.cfg.AllowedOrigins,
			AllowedMethods:   r.cfg.AllowedMethods,
			AllowedHeaders:   r.cfg.AllowedHeaders,
			AllowCredentials: true,
		}))
	}
	mux.Use(r.middlewares...)

	// Timeout covers registered routes only; static downloads are unbounded.
	routes := chi.NewRouter()
	if r.cfg.TimeoutSec > 0 {
		routes.Use(middleware.Timeout(time.Duration(r.cfg.TimeoutSec) * time.Second))
	}
	for _, rt := range r.routes {
		h := negroni.New(negroni.WrapFunc(rt.handler)).ServeHTTP
		routes.Get(rt.pattern, h)
		routes.Head(rt.pattern, h)
	}

	n := negroni.New()
	for _, m := range r.mounts {
		n.Use(staticHandler(r.fs, m))
	}
	n.UseHandler(routes)

	mux.Handle("/", n)
	mux.Handle("/*", n)
	r.handler.Store(http.Handler(mux))
}

// staticHandler serves m.Dir under m.Prefix and hands the request to the
// next handler when the file is missing.
func staticHandler(fs afero.Fs, m Mount) *negroni.Static {
	s := negroni.NewStatic(afero.NewHttpFs(fs).Dir(m.Dir))
	if prefix := strings.TrimRight(m.Prefix, "/"); prefix != "" {
		s.Prefix = prefix
	}
	return s
}
