package config

import (
	"testing"
	"time"

	"github.com/spf13/pflag"
	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"
	"gotest.tools/v3/fs"
)

type testConfig struct {
	Environment string
	Site        struct {
		Port    int
		Root    string
		Origins []string
		Timeout time.Duration
	}
}

var testDefaults = map[string]interface{}{
	"environment":  "local",
	"site.port":    80,
	"site.root":    ".",
	"site.origins": []string{},
	"site.timeout": "5s",
}

func TestLoadDefaultsWithoutFile(t *testing.T) {
	dir := fs.NewDir(t, "config")

	var cfg testConfig
	err := load(newViper("cirrus", "CIRRUSTEST", dir.Path()), &cfg, testDefaults, nil)
	assert.NilError(t, err)
	assert.Check(t, is.Equal(cfg.Environment, "local"))
	assert.Check(t, is.Equal(cfg.Site.Port, 80))
	assert.Check(t, is.Equal(cfg.Site.Root, "."))
	assert.Check(t, is.Equal(cfg.Site.Timeout, 5*time.Second))
}

func TestLoadFileThenEnvThenFlags(t *testing.T) {
	dir := fs.NewDir(t, "config", fs.WithFile("cirrus.yaml", `
environment: production
site:
  port: 8080
  root: /srv/www
  origins: https://a.example,https://b.example
`))
	t.Setenv("CIRRUSTEST_SITE_ROOT", "/srv/env")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Int("port", 0, "")
	assert.NilError(t, flags.SetAnnotation("port", FlagKeyAnnotation, []string{"site.port"}))
	assert.NilError(t, flags.Parse([]string{"--port", "9090"}))

	var cfg testConfig
	err := load(newViper("cirrus", "CIRRUSTEST", dir.Path()), &cfg, testDefaults, flags)
	assert.NilError(t, err)
	assert.Check(t, is.Equal(cfg.Environment, "production"))
	assert.Check(t, is.Equal(cfg.Site.Port, 9090))
	assert.Check(t, is.Equal(cfg.Site.Root, "/srv/env"))
	assert.Check(t, is.DeepEqual(cfg.Site.Origins, []string{"https://a.example", "https://b.example"}))
}

func TestLoadUnsetFlagKeepsFileValue(t *testing.T) {
	dir := fs.NewDir(t, "config", fs.WithFile("cirrus.yaml", "site:\n  port: 8080\n"))

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Int("port", 0, "")
	assert.NilError(t, flags.SetAnnotation("port", FlagKeyAnnotation, []string{"site.port"}))
	assert.NilError(t, flags.Parse(nil))

	var cfg testConfig
	err := load(newViper("cirrus", "CIRRUSTEST", dir.Path()), &cfg, testDefaults, flags)
	assert.NilError(t, err)
	assert.Check(t, is.Equal(cfg.Site.Port, 8080))
}

func TestLoadBrokenFile(t *testing.T) {
	dir := fs.NewDir(t, "config", fs.WithFile("cirrus.yaml", "site: [port"))

	var cfg testConfig
	err := load(newViper("cirrus", "CIRRUSTEST", dir.Path()), &cfg, testDefaults, nil)
	assert.Check(t, err != nil)
}
