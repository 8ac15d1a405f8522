package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupLogger(t *testing.T) {
	tests := []struct {
		name      string
		verbosity int
		wantLevel zerolog.Level
	}{
		{"default is info", 0, zerolog.InfoLevel},
		{"one flag is debug", 1, zerolog.DebugLevel},
		{"two flags is trace", 2, zerolog.TraceLevel},
		{"more flags stay trace", 5, zerolog.TraceLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tempDir := t.TempDir()
			t.Setenv("XDG_STATE_HOME", tempDir)
			t.Setenv("TUCKFIX_STATE_DIR", "")

			var console bytes.Buffer
			SetupLogger(Options{Verbosity: tt.verbosity, Console: &console})

			assert.Equal(t, tt.wantLevel, zerolog.GlobalLevel())

			logPath := filepath.Join(tempDir, "tuckfix", "tuckfix.log")
			_, err := os.Stat(logPath)
			assert.NoError(t, err, "log file should be created")
		})
	}
}

func TestSetupLogger_FileDisabled(t *testing.T) {
	tempDir := t.TempDir()
	t.Setenv("XDG_STATE_HOME", tempDir)
	t.Setenv("TUCKFIX_STATE_DIR", "")

	var console bytes.Buffer
	SetupLogger(Options{Console: &console, LogFile: "-"})
	log.Info().Msg("hello")

	assert.Contains(t, console.String(), "[+] hello")
	_, err := os.Stat(filepath.Join(tempDir, "tuckfix", "tuckfix.log"))
	assert.True(t, os.IsNotExist(err))
}

func TestSetupLogger_FileReceivesJSON(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "nested", "run.log")

	var console bytes.Buffer
	SetupLogger(Options{Console: &console, LogFile: logPath})
	logger := GetLogger("backup")
	logger.Info().Str("from", "/home/u/.config/nvim").Msg("Renamed")

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"component":"backup"`)
	assert.Contains(t, string(data), `"from":"/home/u/.config/nvim"`)
	assert.NotContains(t, console.String(), "component=")
}

// traceGlobally lifts the global level so debug output is not filtered by
// whatever an earlier SetupLogger call left behind.
func traceGlobally(t *testing.T) {
	t.Helper()
	prev := zerolog.GlobalLevel()
	zerolog.SetGlobalLevel(zerolog.TraceLevel)
	t.Cleanup(func() { zerolog.SetGlobalLevel(prev) })
}

func TestConsoleWriter_LevelPrefixes(t *testing.T) {
	traceGlobally(t)
	tests := []struct {
		level  zerolog.Level
		prefix string
	}{
		{zerolog.DebugLevel, "[*]"},
		{zerolog.InfoLevel, "[+]"},
		{zerolog.WarnLevel, "[!]"},
		{zerolog.ErrorLevel, "[-]"},
	}

	for _, tt := range tests {
		t.Run(tt.level.String(), func(t *testing.T) {
			var buf bytes.Buffer
			logger := zerolog.New(NewConsoleWriter(&buf, false)).Level(zerolog.TraceLevel)
			logger.WithLevel(tt.level).Msg("message")

			assert.True(t, strings.HasPrefix(buf.String(), tt.prefix+" message"), buf.String())
		})
	}
}

func TestConsoleWriter_Color(t *testing.T) {
	var plain, colored bytes.Buffer
	plainLogger := zerolog.New(NewConsoleWriter(&plain, false))
	plainLogger.Warn().Msg("x")
	coloredLogger := zerolog.New(NewConsoleWriter(&colored, true))
	coloredLogger.Warn().Msg("x")

	assert.NotContains(t, plain.String(), "\x1b[")
	assert.Contains(t, colored.String(), "\x1b[")
}

func TestLogCommand(t *testing.T) {
	traceGlobally(t)
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)

	LogCommand(logger, "tuckr", []string{"add", "nvim"})

	output := buf.String()
	assert.Contains(t, output, "tuckr")
	assert.Contains(t, output, "nvim")
	assert.Contains(t, output, "Executing command")
}

func TestLogOperationStart(t *testing.T) {
	traceGlobally(t)
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)

	done := LogOperationStart(logger, "resolve")
	done()

	output := buf.String()
	assert.Contains(t, output, "Operation started")
	assert.Contains(t, output, "Operation completed")
	assert.Contains(t, output, "duration")
}
