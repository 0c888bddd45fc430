// Package logging builds the application logger.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/xvierd/pomo-cli/internal/config"
)

// New returns a logfmt logger writing to a size-rotated file at path.
// The returned closer releases the file; an unknown level falls back to info.
func New(cfg config.LogConfig, path string) (*log.Logger, io.Closer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	writer := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    positiveOr(cfg.MaxSizeMB, 5),
		MaxBackups: positiveOr(cfg.MaxBackups, 3),
		MaxAge:     28,
		Compress:   true,
	}

	return NewWithWriter(writer, cfg.Level), writer, nil
}

// NewWithWriter returns a logfmt logger writing to w at the named level.
func NewWithWriter(w io.Writer, level string) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Level:           ParseLevel(level),
		ReportTimestamp: true,
		Formatter:       log.LogfmtFormatter,
		Prefix:          "pomo",
	})
}

// ParseLevel maps a level name to a log level, defaulting to info.
func ParseLevel(level string) log.Level {
	lvl, err := log.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}

func positiveOr(v, fallback int) int {
	if v > 0 {
		return v
	}
	return fallback
}
