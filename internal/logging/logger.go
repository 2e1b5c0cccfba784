package logging

import (
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/pkgerrors"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Config holds logger configuration
type Config struct {
	Level   string
	LogFile string
	NoColor bool

	// Console receives human readable output, os.Stderr when nil
	Console io.Writer
}

// NewLogger creates a new zerolog logger with dual output (console + file).
// The console shows the configured level, the file always records debug.
func NewLogger(cfg Config) *zerolog.Logger {
	// Enable stack trace marshaling
	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack

	// Determine log level
	level := parseLevel(cfg.Level)

	out := cfg.Console
	if out == nil {
		out = os.Stderr
	}

	// Console writer (colored output for TTY)
	consoleWriter := zerolog.ConsoleWriter{
		Out:        newProgressSafeWriter(out),
		TimeFormat: "15:04:05",
		NoColor:    cfg.NoColor,
	}

	writers := []io.Writer{&levelFilter{w: consoleWriter, min: level}}
	loggerLevel := level

	// File logger if path provided
	if cfg.LogFile != "" {
		// Ensure directory exists
		dir := filepath.Dir(cfg.LogFile)
		if err := os.MkdirAll(dir, 0755); err == nil {
			fileWriter := &lumberjack.Logger{
				Filename:   cfg.LogFile,
				MaxSize:    10, // MB
				MaxBackups: 3,
				MaxAge:     28, // days
				Compress:   true,
			}
			writers = append(writers, &levelFilter{w: fileWriter, min: zerolog.DebugLevel})
			if loggerLevel > zerolog.DebugLevel {
				loggerLevel = zerolog.DebugLevel
			}
		}
	}

	// Create multi-writer
	multi := zerolog.MultiLevelWriter(writers...)

	// Create logger
	logger := zerolog.New(multi).
		Level(loggerLevel).
		With().
		Timestamp().
		Logger()

	return &logger
}

// Component returns a child logger tagged with the component name
func Component(log *zerolog.Logger, name string) *zerolog.Logger {
	if log == nil {
		nop := zerolog.Nop()
		return &nop
	}
	child := log.With().Str("component", name).Logger()
	return &child
}

// parseLevel converts string level to zerolog.Level
func parseLevel(level string) zerolog.Level {
	switch level {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "fatal":
		return zerolog.FatalLevel
	case "panic":
		return zerolog.PanicLevel
	default:
		return zerolog.InfoLevel
	}
}

// levelFilter drops events below min
type levelFilter struct {
	w   io.Writer
	min zerolog.Level
}

func (f *levelFilter) Write(p []byte) (int, error) {
	return f.w.Write(p)
}

func (f *levelFilter) WriteLevel(level zerolog.Level, p []byte) (int, error) {
	if level < f.min {
		return len(p), nil
	}
	return f.w.Write(p)
}

// progressSafeWriter serializes console writes and clears the current
// terminal line first, so log lines do not run into a progress bar
type progressSafeWriter struct {
	mu  sync.Mutex
	out io.Writer
}

const clearLine = "\r\x1b[K"

func newProgressSafeWriter(out io.Writer) *progressSafeWriter {
	return &progressSafeWriter{out: out}
}

func (w *progressSafeWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if _, err := io.WriteString(w.out, clearLine); err != nil {
		return 0, err
	}
	return w.out.Write(p)
}

// NewTestLogger creates a logger for testing that writes to a buffer
func NewTestLogger(w io.Writer) *zerolog.Logger {
	logger := zerolog.New(w).With().Timestamp().Logger()
	return &logger
}
