package webserver

import (
	"net/http"
	"time"

	"github.com/go-chi/httprate"
)

// Router is the part of an application router the site server needs.
type Router interface {
	MountStatic(prefix, dir string)
	Get(pattern string, h http.HandlerFunc)
	Use(middlewares ...func(http.Handler) http.Handler)
}

// Listener binds a port. onReady runs once the port is bound.
type Listener interface {
	Listen(port int, onReady func()) error
}

// Logger receives the server's startup and homepage lookup events.
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string)
	Error(msg string)
}

// LimiterFactory builds a middleware allowing at most requests per window
// for each client.
type LimiterFactory func(requests int, window time.Duration) func(http.Handler) http.Handler

// IPLimiter counts requests per client IP and answers 429 once the window
// is exhausted.
func IPLimiter(requests int, window time.Duration) func(http.Handler) http.Handler {
	return httprate.LimitByIP(requests, window)
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Info(string)                  {}
func (nopLogger) Error(string)                 {}
