// Package logger configures the global zerolog logger.
package logger

import (
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Config holds logger configuration.
type Config struct {
	Level    string // zerolog level name; empty means info
	FilePath string // path to the rotated log file; empty disables file output
	Console  bool   // also log human-readable lines to stderr
}

// Init wires the global zerolog logger to a rotated file and, optionally,
// the console. Console output is off by default so it never interferes
// with tabular command output.
func Init(cfg Config) error {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	var writers []io.Writer
	if cfg.FilePath != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.FilePath), 0755); err != nil {
			return err
		}
		writers = append(writers, &lumberjack.Logger{
			Filename:   cfg.FilePath,
			MaxSize:    10, // megabytes
			MaxAge:     7,  // days
			MaxBackups: 5,
		})
	}
	if cfg.Console {
		writers = append(writers, zerolog.ConsoleWriter{Out: os.Stderr})
	}
	if len(writers) == 0 {
		log.Logger = zerolog.Nop()
		return nil
	}

	log.Logger = zerolog.New(zerolog.MultiLevelWriter(writers...)).With().Timestamp().Logger()
	return nil
}
