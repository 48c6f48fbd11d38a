// Package logging builds the command line logger on top of golog.
package logging

import (
	"github.com/edaniels/golog"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options select the logger flavour.
type Options struct {
	Name    string
	Verbose bool
	// JSON switches from the colored console encoder to one JSON object per
	// line.
	JSON bool
	// OutputPaths default to stderr so generated text on stdout stays clean.
	OutputPaths []string
}

// Config returns the zap config for opts.
func Config(opts Options) zap.Config {
	cfg := golog.NewDevelopmentLoggerConfig()
	if opts.Verbose {
		cfg = golog.NewDebugLoggerConfig()
	}
	cfg.OutputPaths = []string{"stderr"}
	if len(opts.OutputPaths) > 0 {
		cfg.OutputPaths = opts.OutputPaths
	}
	if opts.JSON {
		cfg.Encoding = "json"
		cfg.EncoderConfig.EncodeLevel = zapcore.LowercaseLevelEncoder
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}
	return cfg
}

// New builds a logger and installs it as the golog global. The returned
// function restores the previous global.
func New(opts Options) (golog.Logger, func(), error) {
	l, err := Config(opts).Build()
	if err != nil {
		return nil, nil, err
	}
	logger := l.Sugar()
	if opts.Name != "" {
		logger = logger.Named(opts.Name)
	}
	restore := golog.ReplaceGloabl(logger)
	return logger, func() {
		//nolint:errcheck
		logger.Sync()
		restore()
	}, nil
}
