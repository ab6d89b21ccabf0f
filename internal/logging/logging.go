// Package logging builds the logger shared by the command and the tracer.
package logging

import (
	"fmt"
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// DefaultLevel keeps stdout for the trace and the report
const DefaultLevel = "warn"

// Options configures New
type Options struct {
	// Level is one of debug, info, warn, error; DefaultLevel if empty
	Level string
	// JSON switches from console to JSON encoding
	JSON bool
}

// New returns a logger writing to w, normally stderr
func New(opts Options, w io.Writer) (*zap.SugaredLogger, error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, err
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	var encoder zapcore.Encoder
	if opts.JSON {
		encoder = zapcore.NewJSONEncoder(encCfg)
	} else {
		encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
		encoder = zapcore.NewConsoleEncoder(encCfg)
	}

	sink := zapcore.Lock(zapcore.AddSync(w))
	core := zapcore.NewCore(encoder, sink, level)
	return zap.New(core, zap.ErrorOutput(sink)).Sugar(), nil
}

// ParseLevel validates a level name, empty meaning DefaultLevel
func ParseLevel(s string) (zapcore.Level, error) {
	if s == "" {
		s = DefaultLevel
	}
	switch s {
	case "debug":
		return zapcore.DebugLevel, nil
	case "info":
		return zapcore.InfoLevel, nil
	case "warn":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	default:
		return zapcore.InfoLevel, fmt.Errorf("unknown log level %q", s)
	}
}
