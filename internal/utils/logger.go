package utils

import (
	"io"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
)

// Logger is a wrapper around zerolog.Logger
type Logger struct {
	zerolog.Logger
}

// LoggerOptions contains options for creating a logger
type LoggerOptions struct {
	Level   string
	Format  string // "pretty", "json" or "auto"
	Output  io.Writer
	Verbose bool
}

// NewLogger creates a new logger with the given options
func NewLogger(opts LoggerOptions) *Logger {
	var output io.Writer = os.Stderr
	if opts.Output != nil {
		output = opts.Output
	}

	// Set up pretty or JSON output
	if resolveFormat(opts.Format, output) == "pretty" {
		output = zerolog.ConsoleWriter{
			Out:        output,
			TimeFormat: time.RFC3339,
		}
	}

	// Parse log level
	level := parseLogLevel(opts.Level)
	if opts.Verbose {
		level = zerolog.DebugLevel
	}

	// Create logger
	logger := zerolog.New(output).
		Level(level).
		With().
		Timestamp().
		Logger()

	return &Logger{Logger: logger}
}

// NewDefaultLogger creates a logger with default settings
func NewDefaultLogger() *Logger {
	return NewLogger(LoggerOptions{
		Level:  "info",
		Format: "auto",
	})
}

// NewVerboseLogger creates a verbose logger
func NewVerboseLogger() *Logger {
	return NewLogger(LoggerOptions{
		Level:   "debug",
		Format:  "auto",
		Verbose: true,
	})
}

// NewNopLogger creates a logger that discards everything
func NewNopLogger() *Logger {
	return &Logger{Logger: zerolog.Nop()}
}

// resolveFormat picks pretty output for terminals when format is "auto"
func resolveFormat(format string, output io.Writer) string {
	switch format {
	case "pretty", "json":
		return format
	case "auto", "":
		if f, ok := output.(*os.File); ok && isTerminal(f) {
			return "pretty"
		}
		return "json"
	default:
		return "pretty"
	}
}

// isTerminal reports whether f is attached to a terminal
func isTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// IsTerminal reports whether stderr is attached to a terminal
func IsTerminal() bool {
	return isTerminal(os.Stderr)
}

// parseLogLevel parses a log level string
func parseLogLevel(level string) zerolog.Level {
	switch level {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// WithComponent returns a logger with a component field
func (l *Logger) WithComponent(component string) *Logger {
	return &Logger{
		Logger: l.Logger.With().Str("component", component).Logger(),
	}
}

// WithManifest returns a logger with a manifest field
func (l *Logger) WithManifest(path string) *Logger {
	return &Logger{
		Logger: l.Logger.With().Str("manifest", path).Logger(),
	}
}

// WithAsset returns a logger with asset name and type fields
func (l *Logger) WithAsset(name, assetType string) *Logger {
	return &Logger{
		Logger: l.Logger.With().Str("asset", name).Str("type", assetType).Logger(),
	}
}

// WithRunID returns a logger tagged with a build run identifier
func (l *Logger) WithRunID(id string) *Logger {
	return &Logger{
		Logger: l.Logger.With().Str("run_id", id).Logger(),
	}
}

// SetGlobalLevel sets the global log level
func SetGlobalLevel(level string) {
	zerolog.SetGlobalLevel(parseLogLevel(level))
}
