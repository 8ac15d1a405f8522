package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/arthur-debert/tuckfix/pkg/paths"
	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Options controls logger setup.
type Options struct {
	// Verbosity: 0 = info, 1 = debug, 2+ = trace
	Verbosity int

	// Color enables colored level prefixes on the console
	Color bool

	// Console is where human-readable output goes; defaults to stderr
	Console io.Writer

	// LogFile overrides the JSON log file location. Empty means the
	// default under the XDG state directory; "-" disables the file.
	LogFile string
}

// SetupLogger configures the global logger based on verbosity level
// It sets up dual output to both console and a log file
func SetupLogger(opts Options) {
	switch opts.Verbosity {
	case 0:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case 1:
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.TraceLevel)
	}

	console := opts.Console
	if console == nil {
		console = os.Stderr
	}

	writers := []io.Writer{NewConsoleWriter(console, opts.Color)}

	logFile := opts.LogFile
	if logFile == "" {
		logFile = getLogFilePath()
	}

	var fileErr error
	if logFile != "-" {
		var handle *os.File
		handle, fileErr = setupLogFile(logFile)
		if fileErr == nil {
			writers = append(writers, handle)
		}
	}

	multi := io.MultiWriter(writers...)
	log.Logger = zerolog.New(multi).With().Timestamp().Logger()

	if fileErr != nil {
		log.Warn().Err(fileErr).Str("path", logFile).Msg("Failed to create log file, logging to console only")
	}

	if opts.Verbosity >= 1 {
		log.Logger = log.Logger.With().Caller().Logger()
	}

	log.Debug().Int("verbosity", opts.Verbosity).Str("logFile", logFile).Msg("Logger initialized")
}

// levelPrefixes mirrors the bracketed markers users of the tuckr helper
// script are used to.
var levelPrefixes = map[zerolog.Level]struct {
	text  string
	attrs []color.Attribute
}{
	zerolog.TraceLevel: {"[*]", []color.Attribute{color.FgCyan}},
	zerolog.DebugLevel: {"[*]", []color.Attribute{color.FgCyan}},
	zerolog.InfoLevel:  {"[+]", []color.Attribute{color.FgGreen}},
	zerolog.WarnLevel:  {"[!]", []color.Attribute{color.FgYellow}},
	zerolog.ErrorLevel: {"[-]", []color.Attribute{color.FgRed}},
	zerolog.FatalLevel: {"[!!!]", []color.Attribute{color.FgRed}},
	zerolog.PanicLevel: {"[!!!]", []color.Attribute{color.FgRed}},
}

// NewConsoleWriter returns the human-readable console writer: a level
// prefix, the message, then key=value fields. Timestamps go to the log
// file only.
func NewConsoleWriter(out io.Writer, useColor bool) zerolog.ConsoleWriter {
	return zerolog.ConsoleWriter{
		Out:           out,
		NoColor:       !useColor,
		PartsOrder:    []string{zerolog.LevelFieldName, zerolog.CallerFieldName, zerolog.MessageFieldName},
		FieldsExclude: []string{zerolog.TimestampFieldName, "component"},
		FormatLevel:   levelFormatter(useColor),
	}
}

func levelFormatter(useColor bool) zerolog.Formatter {
	return func(i interface{}) string {
		name, _ := i.(string)
		level, err := zerolog.ParseLevel(name)
		prefix, ok := levelPrefixes[level]
		if err != nil || !ok {
			return "[?]"
		}

		c := color.New(append(prefix.attrs, color.Bold)...)
		if useColor {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		return c.Sprint(prefix.text)
	}
}

// GetLogger returns a contextualized logger with the given name
func GetLogger(name string) zerolog.Logger {
	return log.With().Str("component", name).Logger()
}

// getLogFilePath returns the path to the log file
// It respects XDG_STATE_HOME if set, otherwise uses ~/.local/state/tuckfix/
func getLogFilePath() string {
	p, err := paths.New()
	if err != nil {
		return paths.LogFileName
	}
	return p.LogFilePath()
}

// setupLogFile creates the log file and its parent directories
func setupLogFile(logPath string) (*os.File, error) {
	logDir := filepath.Dir(logPath)
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	return file, nil
}

// LogCommand logs a command execution with its arguments
func LogCommand(logger zerolog.Logger, cmd string, args []string) {
	logger.Debug().
		Str("command", cmd).
		Strs("args", args).
		Msg("Executing command")
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
