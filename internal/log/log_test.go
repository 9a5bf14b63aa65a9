package log_test

import (
	"bytes"
	"strings"
	"testing"

	"bennypowers.dev/sass2ts/internal/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogLevels(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(nil)
	defer log.SetLevel(log.GetLevel())

	tests := []struct {
		level   log.Level
		present []string
		absent  []string
	}{
		{log.LevelInfo, []string{"info message", "warn message", "error message"}, []string{"debug message"}},
		{log.LevelError, []string{"error message"}, []string{"debug message", "info message", "warn message"}},
		{log.LevelDebug, []string{"debug message", "info message", "warn message", "error message"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.level.String(), func(t *testing.T) {
			buf.Reset()
			log.SetLevel(tt.level)

			log.Debug("debug message")
			log.Info("info message")
			log.Warn("warn message")
			log.Error("error message")

			output := buf.String()
			for _, s := range tt.present {
				assert.Contains(t, output, s)
			}
			for _, s := range tt.absent {
				assert.NotContains(t, output, s)
			}
		})
	}
}

func TestLogFormat(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(nil)
	defer log.SetLevel(log.GetLevel())
	log.SetLevel(log.LevelDebug)

	t.Run("level, logger name and message", func(t *testing.T) {
		buf.Reset()
		log.Warn("dropped %d declarations", 2)
		assert.Equal(t, "WARN sass2ts dropped 2 declarations\n", buf.String())
	})

	t.Run("one line per message", func(t *testing.T) {
		buf.Reset()
		log.Info("message 1")
		log.Info("message 2")

		lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
		require.Len(t, lines, 2)
		assert.Contains(t, lines[0], "message 1")
		assert.Contains(t, lines[1], "message 2")
	})

	t.Run("named loggers share the output", func(t *testing.T) {
		buf.Reset()
		log.Named("parser").Debug("skipped token")
		assert.Equal(t, "DEBUG sass2ts.parser skipped token\n", buf.String())
	})
}

func TestParseLevel(t *testing.T) {
	l, err := log.ParseLevel("WARN")
	require.NoError(t, err)
	assert.Equal(t, log.LevelWarn, l)

	_, err = log.ParseLevel("loud")
	assert.Error(t, err)
}

func TestGetLevel(t *testing.T) {
	original := log.GetLevel()
	defer log.SetLevel(original)

	log.SetLevel(log.LevelDebug)
	assert.Equal(t, log.LevelDebug, log.GetLevel())

	log.SetLevel(log.LevelError)
	assert.Equal(t, log.LevelError, log.GetLevel())
}
