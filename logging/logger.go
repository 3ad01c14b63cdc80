// Package logging builds the server's zap logger from LOG_LEVEL and
// LOG_FORMAT.
package logging

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	FormatJSON    = "json"
	FormatConsole = "console"
)

// Options selects the logger's level, encoding and destination.
type Options struct {
	Level   string
	Format  string
	Service string
	// Output defaults to stdout.
	Output []string
}

// New builds a logger. Every entry carries the service name and host.
// An unknown format is an error; an unknown level falls back to info.
func New(opts Options) (*zap.Logger, error) {
	var cfg zap.Config
	switch strings.ToLower(strings.TrimSpace(opts.Format)) {
	case FormatConsole:
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	case FormatJSON, "":
		cfg = zap.NewProductionConfig()
		cfg.Sampling = nil
		cfg.EncoderConfig.TimeKey = "timestamp"
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	default:
		return nil, fmt.Errorf("unknown log format %q", opts.Format)
	}

	cfg.Level = zap.NewAtomicLevelAt(ParseLevel(opts.Level))
	cfg.OutputPaths = []string{"stdout"}
	if len(opts.Output) > 0 {
		cfg.OutputPaths = opts.Output
	}
	cfg.ErrorOutputPaths = []string{"stderr"}

	cfg.InitialFields = map[string]interface{}{}
	if opts.Service != "" {
		cfg.InitialFields["service_name"] = opts.Service
	}
	if host, err := os.Hostname(); err == nil && host != "" {
		cfg.InitialFields["hostname"] = host
	}
	return cfg.Build()
}

// ParseLevel maps a level name to a zap level, falling back to info.
func ParseLevel(level string) zapcore.Level {
	l, err := zapcore.ParseLevel(strings.TrimSpace(level))
	if err != nil {
		return zapcore.InfoLevel
	}
	return l
}
