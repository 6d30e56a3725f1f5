package logger_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/hue/internal/adapters/logger"
)

func newPretty(t *testing.T, level slog.Level) (*logger.PrettyHandler, *bytes.Buffer) {
	t.Helper()
	t.Setenv("NO_COLOR", "1")

	buf := &bytes.Buffer{}
	return logger.NewPrettyHandler(buf, &slog.HandlerOptions{Level: level}), buf
}

func TestPrettyHandler_Levels(t *testing.T) {
	tests := []struct {
		name       string
		level      slog.Level
		msg        string
		goldenName string
	}{
		{"info", slog.LevelInfo, "config studio loaded", "handler_info"},
		{"warn", slog.LevelWarn, "config name mismatch", "handler_warn"},
		{"error", slog.LevelError, "shader rejected", "handler_error"},
		{"debug filtered", slog.LevelDebug, "cache miss", "handler_debug_filtered"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, buf := newPretty(t, slog.LevelInfo)
			slog.New(h).Log(t.Context(), tt.level, tt.msg)

			g := goldie.New(t)
			g.Assert(t, tt.goldenName, buf.Bytes())
		})
	}
}

func TestPrettyHandler_DebugEnabled(t *testing.T) {
	h, buf := newPretty(t, slog.LevelDebug)
	slog.New(h).Debug("cache miss", "key", "a1b2")

	g := goldie.New(t)
	g.Assert(t, "handler_debug", buf.Bytes())
}

func TestPrettyHandler_Attrs(t *testing.T) {
	tests := []struct {
		name       string
		setup      func(h slog.Handler) slog.Handler
		args       []any
		goldenName string
	}{
		{
			name:       "record attrs",
			setup:      func(h slog.Handler) slog.Handler { return h },
			args:       []any{"viewer", "main", "cache_hit", true},
			goldenName: "handler_record_attrs",
		},
		{
			name: "handler attrs first",
			setup: func(h slog.Handler) slog.Handler {
				return h.WithAttrs([]slog.Attr{slog.String("config", "studio")})
			},
			args:       []any{"view", "Film"},
			goldenName: "handler_attrs_combined",
		},
		{
			name: "nested groups",
			setup: func(h slog.Handler) slog.Handler {
				return h.WithGroup("pipeline").WithGroup("main")
			},
			args:       []any{"stages", 2},
			goldenName: "handler_group_nested",
		},
		{
			name:       "group attribute",
			setup:      func(h slog.Handler) slog.Handler { return h },
			args:       []any{slog.Group("grade", slog.Float64("saturation", 1.2))},
			goldenName: "handler_attrs_group",
		},
		{
			name:       "empty group name",
			setup:      func(h slog.Handler) slog.Handler { return h.WithGroup("") },
			args:       []any{"key", "val"},
			goldenName: "handler_group_empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, buf := newPretty(t, slog.LevelInfo)
			slog.New(tt.setup(h)).Info("message", tt.args...)

			g := goldie.New(t)
			g.Assert(t, tt.goldenName, buf.Bytes())
		})
	}
}

func TestPrettyHandler_Enabled(t *testing.T) {
	h := logger.NewPrettyHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelWarn})

	assert.False(t, h.Enabled(t.Context(), slog.LevelInfo))
	assert.True(t, h.Enabled(t.Context(), slog.LevelWarn))
	assert.True(t, h.Enabled(t.Context(), slog.LevelError))
}

func TestPrettyHandler_NilWriter(t *testing.T) {
	require.NotPanics(t, func() {
		_ = logger.NewPrettyHandler(nil, nil)
	})
}

func TestPrettyHandler_WriteError(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	h := logger.NewPrettyHandler(brokenWriter{}, nil)
	require.NotPanics(t, func() {
		slog.New(h).Info("lost")
	})
}

type brokenWriter struct{}

func (brokenWriter) Write([]byte) (int, error) {
	return 0, assert.AnError
}
