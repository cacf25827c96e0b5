package logger

import "github.com/rs/zerolog"

// Adapter exposes a zerolog.Logger through the small debug/info/error
// surface the web server depends on.
type Adapter struct {
	log zerolog.Logger
}

func NewAdapter(log zerolog.Logger) *Adapter {
	return &Adapter{log: log}
}

func (a *Adapter) Debug(msg string, args ...interface{}) {
	a.log.Debug().Msgf(msg, args...)
}

func (a *Adapter) Info(msg string) {
	a.log.Info().Msg(msg)
}

func (a *Adapter) Error(msg string) {
	a.log.Error().Msg(msg)
}
