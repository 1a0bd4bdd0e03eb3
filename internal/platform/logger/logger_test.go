package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danbfiorotto/brunatorellidelivery-sub002/internal/config"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		level slog.Level
		ok    bool
	}{
		{"debug", slog.LevelDebug, true},
		{"INFO", slog.LevelInfo, true},
		{" warn ", slog.LevelWarn, true},
		{"error", slog.LevelError, true},
		{"verbose", slog.LevelInfo, false},
		{"", slog.LevelInfo, false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			level, ok := ParseLevel(tt.input)
			assert.Equal(t, tt.level, level)
			assert.Equal(t, tt.ok, ok)
		})
	}
}

// Not parallel: SetupWithWriter replaces the slog default.
func TestSetupWithWriter(t *testing.T) {
	original := slog.Default()
	t.Cleanup(func() { slog.SetDefault(original) })

	var buf bytes.Buffer
	logger := SetupWithWriter(config.ServerConfig{LogLevel: "warn"}, &buf)

	logger.Info("hidden")
	logger.Warn("shown", "patient_id", "p-1")

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &entry))
	assert.Equal(t, "shown", entry["msg"])
	assert.Equal(t, "WARN", entry["level"])
	assert.Equal(t, "p-1", entry["patient_id"])
	assert.Same(t, logger, slog.Default())
}

func TestContextLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	custom := slog.New(slog.NewJSONHandler(&buf, nil))
	fallback := slog.New(slog.NewJSONHandler(&bytes.Buffer{}, nil))

	ctx := WithLogger(context.Background(), custom)
	assert.Same(t, custom, FromContext(ctx))
	assert.Same(t, custom, FromContextOrDefault(ctx, fallback))

	assert.Same(t, fallback, FromContextOrDefault(context.Background(), fallback))
	//nolint:staticcheck // a nil context must not panic
	assert.Same(t, fallback, FromContextOrDefault(nil, fallback))
	assert.NotNil(t, FromContext(context.Background()))
}
