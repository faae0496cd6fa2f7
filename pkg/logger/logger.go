package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config holds logger configuration
type Config struct {
	Level      string
	Pretty     bool
	TimeFormat string
	Output     io.Writer
}

// Setup configures the global zerolog logger used across the service.
func Setup(cfg *Config) {
	if cfg == nil {
		cfg = &Config{Level: "info", Pretty: true}
	}
	if cfg.Output == nil {
		cfg.Output = os.Stdout
	}
	if cfg.TimeFormat == "" {
		cfg.TimeFormat = time.RFC3339
	}

	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}

	out := cfg.Output
	if cfg.Pretty {
		out = zerolog.ConsoleWriter{
			Out:        cfg.Output,
			TimeFormat: cfg.TimeFormat,
		}
	}

	log.Logger = zerolog.New(out).
		Level(level).
		With().
		Timestamp().
		Caller().
		Logger()
}
