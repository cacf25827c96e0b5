package config

import (
	"errors"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// FlagKeyAnnotation names the pflag annotation holding the config key a
// flag overrides. Flags without it bind to a key equal to their name.
const FlagKeyAnnotation = "config-key"

// NewConfig loads cfg from <fileName>.yaml (searched in configs/ and the
// working directory), environment variables starting with prefix and any
// flags that were set on the command line, in increasing order of
// precedence. A missing config file is not an error.
func NewConfig(fileName, prefix string, cfg interface{}, defaults map[string]interface{}, flags *pflag.FlagSet) error {
	return load(newViper(fileName, prefix, "configs", "."), cfg, defaults, flags)
}

func newViper(fileName, prefix string, paths ...string) *viper.Viper {
	v := viper.New()
	v.SetConfigName(fileName)
	for _, p := range paths {
		v.AddConfigPath(p)
	}
	v.SetConfigType("yaml")
	v.SetEnvPrefix(prefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func load(v *viper.Viper, cfg interface{}, defaults map[string]interface{}, flags *pflag.FlagSet) error {
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	if flags != nil {
		var bindErr error
		flags.VisitAll(func(f *pflag.Flag) {
			key := f.Name
			if keys, ok := f.Annotations[FlagKeyAnnotation]; ok && len(keys) > 0 {
				key = keys[0]
			}
			if err := v.BindPFlag(key, f); err != nil && bindErr == nil {
				bindErr = err
			}
		})
		if bindErr != nil {
			return bindErr
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return err
		}
	}
	return v.Unmarshal(cfg, viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	)))
}
