package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zqzqsb/rastreador/ptracer"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config
		wantErr string
	}{
		{name: "defaults", cfg: config{}},
		{name: "verbose", cfg: config{Verbose: true, Names: "full", Format: "yaml", LogFormat: "json"}},
		{name: "verbose and step", cfg: config{Verbose: true, Step: true}, wantErr: "mutually exclusive"},
		{name: "unknown names", cfg: config{Names: "x32"}, wantErr: "x32"},
		{name: "unknown format", cfg: config{Format: "csv"}, wantErr: "csv"},
		{name: "unknown log level", cfg: config{LogLevel: "trace"}, wantErr: "trace"},
		{name: "unknown log format", cfg: config{LogFormat: "logfmt"}, wantErr: "logfmt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestConfigVerbosity(t *testing.T) {
	assert.Equal(t, ptracer.Silent, config{}.verbosity())
	assert.Equal(t, ptracer.Trace, config{Verbose: true}.verbosity())
	assert.Equal(t, ptracer.TraceAndStep, config{Step: true}.verbosity())
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rastreador.yaml")
	require.NoError(t, os.WriteFile(path, []byte("format: json\nnames: full\n"), 0o644))
	t.Setenv("RASTREADOR_LOG_LEVEL", "debug")

	v := viper.New()
	cmd := newRootCmd(v)
	require.NoError(t, cmd.Flags().Parse([]string{"--verbose"}))

	cfg, err := loadConfig(v, path)
	require.NoError(t, err)
	assert.True(t, cfg.Verbose)
	assert.Equal(t, "json", cfg.Format)
	assert.Equal(t, "full", cfg.Names)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "console", cfg.LogFormat)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := loadConfig(viper.New(), filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadConfigStepFromEnv(t *testing.T) {
	t.Setenv("RASTREADOR_STEP", "true")

	v := viper.New()
	cmd := newRootCmd(v)
	require.NoError(t, cmd.Flags().Parse([]string{"-v"}))

	cfg, err := loadConfig(v, "")
	require.NoError(t, err)
	assert.Error(t, cfg.Validate())
}
