package webserver

import (
	"fmt"

	"github.com/quibbble/go-cirrus/pkg/http"
	"github.com/quibbble/go-cirrus/pkg/logger"
)

const (
	DefaultPort         = 80
	DefaultRoot         = "."
	DefaultHomepageFile = "player.html"
)

var (
	ErrInvalidPort      = fmt.Errorf("port must be between 1 and 65535")
	ErrInvalidRateLimit = fmt.Errorf("per minute rate limit must not be negative")
)

type Config struct {
	Environment string
	Log         logger.Config
	Router      http.RouterConfig
	Server      http.ServerConfig
	WebServer   Options
}

func (c Config) Str() string {
	return fmt.Sprintf("%+v", c)
}

// Defaults seeds every config key so environment variables can override
// keys that are absent from the config file.
func Defaults() map[string]interface{} {
	return map[string]interface{}{
		"environment":                  "production",
		"log.level":                    "info",
		"router.timeoutsec":            60,
		"router.trustproxy":            false,
		"server.readheadertimeoutsec":  10,
		"router.disablecors":           true,
		"router.allowedorigins":        []string{},
		"router.allowedmethods":        []string{"GET", "HEAD", "OPTIONS"},
		"router.allowedheaders":        []string{},
		"webserver.port":               DefaultPort,
		"webserver.root":               DefaultRoot,
		"webserver.homepagefile":       DefaultHomepageFile,
		"webserver.perminuteratelimit": 0,
	}
}

// Options configures a StaticSiteServer. Zero values select the defaults;
// a zero PerMinuteRateLimit disables rate limiting.
type Options struct {
	Port               int
	Root               string
	HomepageFile       string
	PerMinuteRateLimit int
}

func (o Options) WithDefaults() Options {
	if o.Port == 0 {
		o.Port = DefaultPort
	}
	if o.Root == "" {
		o.Root = DefaultRoot
	}
	if o.HomepageFile == "" {
		o.HomepageFile = DefaultHomepageFile
	}
	return o
}

func (o Options) Validate() error {
	if o.Port < 0 || o.Port > 65535 {
		return fmt.Errorf("%w: %d", ErrInvalidPort, o.Port)
	}
	if o.PerMinuteRateLimit < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidRateLimit, o.PerMinuteRateLimit)
	}
	return nil
}
