package logger

import (
	"context"
	"log/slog"
	"testing"

	"github.com/phrazzld/quizgen/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupWithWriter(t *testing.T) {
	original := slog.Default()
	t.Cleanup(func() { slog.SetDefault(original) })

	testCases := []struct {
		name       string
		level      string
		debugShown bool
		infoShown  bool
	}{
		{name: "debug level", level: "debug", debugShown: true, infoShown: true},
		{name: "info level", level: "info", debugShown: false, infoShown: true},
		{name: "error level", level: "ERROR", debugShown: false, infoShown: false},
		{name: "invalid level falls back to info", level: "loud", debugShown: false, infoShown: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			buf := &TestLogBuffer{}
			logger, err := SetupWithWriter(config.ServerConfig{LogLevel: tc.level}, buf)
			require.NoError(t, err)
			require.NotNil(t, logger)

			logger.Debug("debug message")
			logger.Info("info message")

			assert.Equal(t, tc.debugShown, contains(buf, "debug message"))
			assert.Equal(t, tc.infoShown, contains(buf, "info message"))
			assert.Same(t, logger, slog.Default())
		})
	}
}

func TestContextLogger(t *testing.T) {
	t.Parallel()

	logger, buf := NewTestLogger()
	ctx := WithLogger(context.Background(), logger.With("document_id", 7))

	FromContext(ctx).Info("hello")

	entries, err := buf.GetLogEntries()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "hello", entries[0]["msg"])
	assert.Equal(t, float64(7), entries[0]["document_id"])
}

func TestFromContextOrDefault(t *testing.T) {
	t.Parallel()

	fallback, _ := NewTestLogger()

	assert.Same(t, fallback, FromContextOrDefault(context.Background(), fallback))
	assert.NotNil(t, FromContextOrDefault(context.Background(), nil))
}

func contains(buf *TestLogBuffer, s string) bool {
	entries, err := buf.GetLogEntries()
	if err != nil {
		return false
	}
	for _, e := range entries {
		if e["msg"] == s {
			return true
		}
	}
	return false
}
