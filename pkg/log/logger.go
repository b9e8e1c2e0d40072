// Package log wires a process-wide zerolog logger. Init is safe to call
// more than once; only the first call configures the sinks.
package log

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/pkgerrors"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	logger zerolog.Logger
	once   sync.Once
)

type LoggerConfig struct {
	console  bool
	fileName string
	logLevel int
}

type LoggerOption func(*LoggerConfig)

// WithConsoleLogger adds a human-readable writer on stdout.
func WithConsoleLogger() LoggerOption {
	return func(c *LoggerConfig) {
		c.console = true
	}
}

// WithFileLogger adds a size-rotated JSON log file.
func WithFileLogger(fileName string) LoggerOption {
	return func(c *LoggerConfig) {
		c.fileName = fileName
	}
}

func WithLogLevel(logLevel int) LoggerOption {
	return func(c *LoggerConfig) {
		c.logLevel = logLevel
	}
}

// Init configures the shared logger. Every event carries the service name
// so gateway logs can be told apart once aggregated.
func Init(serviceName string, opts ...LoggerOption) {
	once.Do(func() {
		zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
		zerolog.TimeFieldFormat = time.RFC3339Nano

		cfg := LoggerConfig{logLevel: int(zerolog.InfoLevel)}
		for _, opt := range opts {
			opt(&cfg)
		}

		sinks := make([]io.Writer, 0, 2)
		if cfg.console {
			sinks = append(sinks, zerolog.ConsoleWriter{
				Out:        os.Stdout,
				TimeFormat: time.RFC3339,
			})
		}
		if cfg.fileName != "" {
			sinks = append(sinks, &lumberjack.Logger{
				Filename:   cfg.fileName,
				MaxSize:    10,
				MaxBackups: 5,
				MaxAge:     28,
				Compress:   true,
			})
		}
		if len(sinks) == 0 {
			sinks = append(sinks, os.Stdout)
		}

		logger = zerolog.New(zerolog.MultiLevelWriter(sinks...)).
			Level(zerolog.Level(cfg.logLevel)).
			With().
			Timestamp().
			Str("service", serviceName).
			Logger()
	})
}

// GetLogger returns the logger configured by Init. Calling it before Init
// yields a disabled zero-value logger.
func GetLogger() zerolog.Logger {
	return logger
}
