package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupLogger_Levels(t *testing.T) {
	tests := []struct {
		name      string
		verbosity int
		level     string
		wantLevel zerolog.Level
	}{
		{"default warn level", 0, "", zerolog.WarnLevel},
		{"configured level", 0, "error", zerolog.ErrorLevel},
		{"unknown configured level", 0, "chatty", zerolog.WarnLevel},
		{"info level", 1, "error", zerolog.InfoLevel},
		{"debug level", 2, "", zerolog.DebugLevel},
		{"trace level", 3, "", zerolog.TraceLevel},
		{"high verbosity defaults to trace", 5, "", zerolog.TraceLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logFile := filepath.Join(t.TempDir(), "state", "cmdmail.log")

			SetupLogger(Options{Verbosity: tt.verbosity, Level: tt.level, LogFile: logFile})

			assert.Equal(t, tt.wantLevel, zerolog.GlobalLevel())
			_, err := os.Stat(logFile)
			assert.NoError(t, err, "log file should be created")
		})
	}
}

func TestSetupLogger_WithoutFile(t *testing.T) {
	SetupLogger(Options{})
	assert.Equal(t, zerolog.WarnLevel, zerolog.GlobalLevel())
}

func TestGetLogger_AddsComponent(t *testing.T) {
	var buf bytes.Buffer
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	log.Logger = zerolog.New(&buf)

	logger := GetLogger("report")
	logger.Info().Msg("rendered")

	assert.Contains(t, buf.String(), `"component":"report"`)
	assert.Contains(t, buf.String(), "rendered")
}

func TestLogOperationStart(t *testing.T) {
	var buf bytes.Buffer
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	logger := zerolog.New(&buf)

	done := LogOperationStart(logger, "send")
	done()

	out := buf.String()
	require.Contains(t, out, "Operation started")
	assert.Contains(t, out, "Operation completed")
	assert.Contains(t, out, `"operation":"send"`)
}

func TestSetLevel(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.WarnLevel)

	SetLevel(0, "debug")
	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())

	SetLevel(1, "debug")
	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
}
