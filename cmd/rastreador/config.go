package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/zqzqsb/rastreador/internal/logging"
	"github.com/zqzqsb/rastreador/pkg/catalog"
	"github.com/zqzqsb/rastreador/ptracer"
	"github.com/zqzqsb/rastreador/report"
)

const (
	envPrefix      = "RASTREADOR"
	configFileName = ".rastreador"
)

// config keys, shared with the flag names
const (
	keyVerbose   = "verbose"
	keyStep      = "step"
	keyNames     = "names"
	keyFormat    = "format"
	keyOutput    = "output"
	keyLogLevel  = "log-level"
	keyLogFormat = "log-format"
)

type config struct {
	Verbose   bool
	Step      bool
	Names     string
	Format    string
	Output    string
	LogLevel  string
	LogFormat string
}

// loadConfig merges flags, RASTREADOR_* environment variables and the
// config file. An explicit path must exist; the default file is optional.
func loadConfig(v *viper.Viper, path string) (config, error) {
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return config{}, fmt.Errorf("read config file %s: %w", path, err)
		}
	} else {
		v.SetConfigName(configFileName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return config{}, fmt.Errorf("read config file: %w", err)
			}
		}
	}

	return config{
		Verbose:   v.GetBool(keyVerbose),
		Step:      v.GetBool(keyStep),
		Names:     v.GetString(keyNames),
		Format:    v.GetString(keyFormat),
		Output:    v.GetString(keyOutput),
		LogLevel:  v.GetString(keyLogLevel),
		LogFormat: v.GetString(keyLogFormat),
	}, nil
}

// Validate rejects settings the flag parser cannot catch on its own, such as
// verbose and step mode both coming from the environment.
func (c config) Validate() error {
	if c.Verbose && c.Step {
		return errors.New("verbose and step mode are mutually exclusive")
	}
	if _, err := catalog.New(catalog.Mode(c.Names)); err != nil {
		return err
	}
	if _, err := report.ParseFormat(c.Format); err != nil {
		return err
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	switch c.LogFormat {
	case "", "console", "json":
	default:
		return fmt.Errorf("unknown log format %q", c.LogFormat)
	}
	return nil
}

func (c config) verbosity() ptracer.Verbosity {
	switch {
	case c.Step:
		return ptracer.TraceAndStep
	case c.Verbose:
		return ptracer.Trace
	default:
		return ptracer.Silent
	}
}

func (c config) logging() logging.Options {
	return logging.Options{Level: c.LogLevel, JSON: c.LogFormat == "json"}
}
