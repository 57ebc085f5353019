package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Options configures SetupLogger.
type Options struct {
	// Verbosity is the -v count. It wins over Level when non-zero.
	Verbosity int
	// Level is a zerolog level name used when Verbosity is zero.
	Level string
	// LogFile receives a copy of every entry. Empty disables file logging.
	LogFile string
	// Console defaults to os.Stderr.
	Console *os.File
}

// SetupLogger configures the global logger. Entries go to the console and,
// when opts.LogFile is set, to that file as JSON.
func SetupLogger(opts Options) {
	zerolog.SetGlobalLevel(resolveLevel(opts.Verbosity, opts.Level))

	console := opts.Console
	if console == nil {
		console = os.Stderr
	}
	consoleWriter := zerolog.ConsoleWriter{
		Out:        console,
		TimeFormat: time.Kitchen,
		NoColor:    !colorCapable(console),
	}

	writers := []io.Writer{consoleWriter}

	var fileErr error
	if opts.LogFile != "" {
		var f *os.File
		f, fileErr = setupLogFile(opts.LogFile)
		if fileErr == nil {
			writers = append(writers, f)
		}
	}

	log.Logger = zerolog.New(io.MultiWriter(writers...)).With().Timestamp().Logger()

	if fileErr != nil {
		log.Warn().Err(fileErr).Str("path", opts.LogFile).Msg("Failed to create log file, logging to console only")
	}

	// Add caller information for debug and trace levels
	if opts.Verbosity >= 2 {
		log.Logger = log.Logger.With().Caller().Logger()
	}

	log.Debug().
		Int("verbosity", opts.Verbosity).
		Str("level", zerolog.GlobalLevel().String()).
		Str("logFile", opts.LogFile).
		Msg("Logger initialized")
}

// SetLevel changes the global level after setup, for example once the
// configured level is known.
func SetLevel(verbosity int, name string) {
	zerolog.SetGlobalLevel(resolveLevel(verbosity, name))
}

func resolveLevel(verbosity int, name string) zerolog.Level {
	switch {
	case verbosity <= 0:
		if name != "" {
			if lvl, err := zerolog.ParseLevel(name); err == nil && lvl != zerolog.NoLevel {
				return lvl
			}
		}
		return zerolog.WarnLevel
	case verbosity == 1:
		return zerolog.InfoLevel
	case verbosity == 2:
		return zerolog.DebugLevel
	default:
		return zerolog.TraceLevel
	}
}

func colorCapable(f *os.File) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd()) {
		return false
	}
	return termenv.NewOutput(f).ColorProfile() != termenv.Ascii
}

// GetLogger returns a contextualized logger with the given name
func GetLogger(name string) zerolog.Logger {
	return log.With().Str("component", name).Logger()
}

// setupLogFile creates the log file and its parent directories
func setupLogFile(logPath string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	return file, nil
}

// LogOperationStart logs the start of an operation and returns a function to log its completion
func LogOperationStart(logger zerolog.Logger, operation string) func() {
	start := time.Now()
	logger.Debug().
		Str("operation", operation).
		Msg("Operation started")

	return func() {
		logger.Debug().
			Str("operation", operation).
			Dur("duration", time.Since(start)).
			Msg("Operation completed")
	}
}
