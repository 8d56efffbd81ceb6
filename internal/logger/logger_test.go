package logger

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_JSONWriter(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: slog.LevelInfo, Format: "json", Writer: &buf})

	log.Info("discovery finished", "count", 4)

	assert.Contains(t, buf.String(), "discovery finished")
	assert.Contains(t, buf.String(), "\"level\":\"INFO\"")
	assert.Contains(t, buf.String(), "\"count\":4")
}

func TestNew_FormatAutoDetection(t *testing.T) {
	tests := []struct {
		name        string
		environment string
		wantJSON    bool
	}{
		{"production uses json", "production", true},
		{"development uses pretty", "development", false},
		{"staging uses pretty", "staging", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			log := New(Config{Level: slog.LevelInfo, Environment: tt.environment, Writer: &buf})
			log.Info("hello")

			if tt.wantJSON {
				assert.Contains(t, buf.String(), "\"msg\":\"hello\"")
			} else {
				assert.Contains(t, buf.String(), "INF")
				assert.NotContains(t, buf.String(), "\"msg\"")
			}
		})
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"DEBUG":   slog.LevelDebug,
		"info":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"bogus":   slog.LevelInfo,
		"":        slog.LevelInfo,
	}

	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), "input %q", in)
	}
}

func TestPrettyHandler_Enabled(t *testing.T) {
	h := NewPrettyHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelWarn})

	assert.False(t, h.Enabled(context.Background(), slog.LevelInfo))
	assert.True(t, h.Enabled(context.Background(), slog.LevelWarn))
	assert.True(t, h.Enabled(context.Background(), slog.LevelError))
}

func TestPrettyHandler_Handle(t *testing.T) {
	var buf bytes.Buffer
	h := NewPrettyHandler(&buf, nil)

	r := slog.NewRecord(time.Now(), slog.LevelError, "store write failed", 0)
	r.AddAttrs(slog.String("key", "signal_saved_searches"))
	require.NoError(t, h.Handle(context.Background(), r))

	out := buf.String()
	assert.Contains(t, out, "ERR")
	assert.Contains(t, out, "store write failed")
	assert.Contains(t, out, "key=signal_saved_searches")
}

func TestPrettyHandler_WithAttrsAndGroup(t *testing.T) {
	var buf bytes.Buffer
	h := NewPrettyHandler(&buf, nil).
		WithAttrs([]slog.Attr{slog.String("component", "discovery")}).
		WithGroup("req")

	r := slog.NewRecord(time.Now(), slog.LevelInfo, "analyze", 0)
	r.AddAttrs(slog.Int("generation", 3))
	require.NoError(t, h.Handle(context.Background(), r))

	assert.Contains(t, buf.String(), "component=discovery")
	assert.Contains(t, buf.String(), "req.generation=3")
}

func TestFormatValue(t *testing.T) {
	assert.Equal(t, "1.5s", formatValue(slog.DurationValue(1500*time.Millisecond)))
	assert.Equal(t, "42", formatValue(slog.IntValue(42)))
	ts := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, "2024-06-01T12:00:00Z", formatValue(slog.TimeValue(ts)))
}

func TestOrDiscard(t *testing.T) {
	assert.NotNil(t, OrDiscard(nil))

	l := slog.Default()
	assert.Same(t, l, OrDiscard(l))
}

func TestLogger_WithError(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: slog.LevelInfo, Format: "json", Writer: &buf})

	log.WithError(errors.New("quota exceeded")).Error("persist failed")

	assert.Contains(t, buf.String(), "\"error\":\"quota exceeded\"")
}

func TestLogger_WithField(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: slog.LevelInfo, Format: "json", Writer: &buf})

	log.WithField("query", "crm").Info("logged")

	assert.Contains(t, buf.String(), "\"query\":\"crm\"")
}
