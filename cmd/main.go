package main

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/quibbble/go-cirrus/internal/webserver"
	"github.com/quibbble/go-cirrus/pkg/config"
	"github.com/quibbble/go-cirrus/pkg/logger"
	"github.com/spf13/pflag"
)

const service = "cirrus"

func main() {
	flags := pflag.NewFlagSet(service, pflag.ExitOnError)
	flags.Int("port", webserver.DefaultPort, "http port to listen on")
	flags.String("root", webserver.DefaultRoot, "directory the site is served from")
	flags.String("homepage", webserver.DefaultHomepageFile, "file served at /")
	flags.Int("rate-limit", 0, "max requests per client per minute, 0 disables limiting")
	flags.String("log-level", "info", "log level")
	flags.String("env", "production", "environment, local enables console logging")
	for name, key := range map[string]string{
		"port":       "webserver.port",
		"root":       "webserver.root",
		"homepage":   "webserver.homepagefile",
		"rate-limit": "webserver.perminuteratelimit",
		"log-level":  "log.level",
		"env":        "environment",
	} {
		if err := flags.SetAnnotation(name, config.FlagKeyAnnotation, []string{key}); err != nil {
			panic(err)
		}
	}
	_ = flags.Parse(os.Args[1:])

	cfg := webserver.Config{}
	if err := config.NewConfig(service, strings.ToUpper(service), &cfg, webserver.Defaults(), flags); err != nil {
		panic(err)
	}

	log, err := logger.NewLogger(cfg.Log, cfg.Environment)
	if err != nil {
		panic(err)
	}

	log.Info().Msgf("%s service is starting with config %+v", service, cfg.Str())
	s, err := webserver.NewServer(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to start server")
	}
	go s.Start()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)
	signal.Notify(stop, syscall.SIGTERM)

	stopped := <-stop
	log.Info().Msg(fmt.Sprintf("%s signal received", stopped.String()))
	s.Shutdown(false)

	log.Info().Msgf("%s service has stopped", service)
}
