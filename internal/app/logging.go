package app

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/natefinch/lumberjack.v2"
)

// LoggerConfig configures the session logger.
type LoggerConfig struct {
	// Level is the minimum level, one of debug, info, warn, error.
	Level string
	// File is the log file path. Ignored when Output is set.
	File string
	// MaxSizeMB is the size at which the file is rotated.
	MaxSizeMB int
	// MaxBackups is how many rotated files are kept.
	MaxBackups int
	// Output overrides the rotating file. Used by tests.
	Output io.Writer
}

// Logger is a slog logger whose level can change at runtime.
type Logger struct {
	*slog.Logger

	level     *slog.LevelVar
	closer    io.Closer
	sessionID string
}

// ParseLogLevel parses a level name.
func ParseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
}

// NewLogger creates a JSON logger writing to a rotating file. Every record
// carries the session ID.
func NewLogger(cfg LoggerConfig) (*Logger, error) {
	lvl, err := ParseLogLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	level := new(slog.LevelVar)
	level.Set(lvl)

	out := cfg.Output
	var closer io.Closer
	if out == nil {
		if cfg.File == "" {
			return nil, fmt.Errorf("log file path is empty")
		}
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
			return nil, fmt.Errorf("creating log directory: %w", err)
		}
		lj := &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     7,
			Compress:   true,
		}
		out = lj
		closer = lj
	}

	sessionID := uuid.NewString()
	handler := slog.NewJSONHandler(out, &slog.HandlerOptions{Level: level})

	return &Logger{
		Logger:    slog.New(handler).With("session", sessionID),
		level:     level,
		closer:    closer,
		sessionID: sessionID,
	}, nil
}

// NopLogger returns a logger that discards everything.
func NopLogger() *Logger {
	l, _ := NewLogger(LoggerConfig{Output: io.Discard})
	return l
}

// SessionID returns the ID attached to every record.
func (l *Logger) SessionID() string {
	return l.sessionID
}

// Level returns the current minimum level.
func (l *Logger) Level() slog.Level {
	return l.level.Level()
}

// SetLevel changes the minimum level by name.
func (l *Logger) SetLevel(name string) error {
	lvl, err := ParseLogLevel(name)
	if err != nil {
		return err
	}
	l.level.Set(lvl)
	return nil
}

// WithComponent returns a logger tagged with a component name.
func (l *Logger) WithComponent(component string) *slog.Logger {
	return l.Logger.With("component", component)
}

// Close flushes and closes the log file.
func (l *Logger) Close() error {
	if l.closer == nil {
		return nil
	}
	return l.closer.Close()
}
