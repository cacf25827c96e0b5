package logger

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

type Config struct {
	Level string
}

func NewLogger(cfg Config, environment string) (zerolog.Logger, error) {
	return newLogger(os.Stdout, cfg, environment)
}

func newLogger(out io.Writer, cfg Config, environment string) (zerolog.Logger, error) {
	level := cfg.Level
	if level == "" {
		level = zerolog.InfoLevel.String()
	}
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Logger{}, err
	}
	logger := zerolog.New(out).Level(lvl).With().Timestamp().Logger()
	if environment == "local" {
		logger = logger.Output(zerolog.ConsoleWriter{
			Out: os.Stderr,
		})
	}
	return logger, nil
}
