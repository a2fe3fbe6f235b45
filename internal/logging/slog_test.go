package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"
)

func TestNew_LevelFiltersRecords(t *testing.T) {
	var buf bytes.Buffer
	log := New("warn", &buf)
	ctx := context.Background()

	log.Debug(ctx, "geocode miss", "address", "nowhere")
	log.Info(ctx, "trip added")
	log.Warn(ctx, "geocoder unavailable", "status", 503)
	log.Error(ctx, "storage failed", "key", "trips")

	out := buf.String()
	assert.NotContains(t, out, "geocode miss")
	assert.NotContains(t, out, "trip added")
	assert.Contains(t, out, "level=WARN")
	assert.Contains(t, out, "status=503")
	assert.Contains(t, out, "level=ERROR")
	assert.Contains(t, out, "key=trips")
}

func TestWith_AddsAttributes(t *testing.T) {
	var buf bytes.Buffer
	log := New("debug", &buf)

	child := log.With("component", "mapview", "run", "r1")
	child.Debug(context.Background(), "aggregated", "markers", 2)

	out := buf.String()
	for _, s := range []string{"level=DEBUG", "msg=aggregated", "component=mapview", "run=r1", "markers=2"} {
		require.True(t, strings.Contains(out, s), "expected %q in %s", s, out)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{" INFO ", slog.LevelInfo},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"verbose", slog.LevelInfo},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseLevel(tt.in), tt.in)
	}
}

func TestDiscard_DoesNotPanic(t *testing.T) {
	log := Discard()
	ctx := context.TODO()
	log.Debug(ctx, "x")
	log.Info(ctx, "x")
	log.Warn(ctx, "x")
	log.Error(ctx, "x")
	log.With("a", 1).Info(ctx, "y")
}

func TestLog_AddsTraceIDs(t *testing.T) {
	var buf bytes.Buffer
	log := New("info", &buf)

	sc := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    trace.TraceID{0x01, 0x02},
		SpanID:     trace.SpanID{0x03},
		TraceFlags: trace.FlagsSampled,
	})
	ctx := trace.ContextWithSpanContext(context.Background(), sc)

	log.Info(ctx, "traced")
	log.Info(context.Background(), "untraced")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "trace_id="+sc.TraceID().String())
	assert.Contains(t, lines[0], "span_id="+sc.SpanID().String())
	assert.NotContains(t, lines[1], "trace_id")
}
