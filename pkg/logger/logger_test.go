package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"
)

// logLine runs fn against a fresh logger and decodes the single line it wrote.
func logLine(t *testing.T, ctx context.Context, fn func(*slog.Logger)) map[string]any {
	t.Helper()
	var buf bytes.Buffer
	l := WithContext(ctx, NewWithWriter("devconnector", "info", &buf))
	fn(l)

	var out map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	return out
}

func spanContext(t *testing.T, traceHex, spanHex string) context.Context {
	t.Helper()
	traceID, err := trace.TraceIDFromHex(traceHex)
	require.NoError(t, err)
	spanID, err := trace.SpanIDFromHex(spanHex)
	require.NoError(t, err)

	sc := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: trace.FlagsSampled,
	})
	return trace.ContextWithSpanContext(context.Background(), sc)
}

func TestNew_ServiceAttribute(t *testing.T) {
	out := logLine(t, context.Background(), func(l *slog.Logger) { l.Info("up") })
	assert.Equal(t, "devconnector", out["service"])
	assert.Equal(t, "up", out["msg"])
}

func TestNewWithWriter_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter("devconnector", "warn", &buf)

	l.Info("filtered out")
	assert.Zero(t, buf.Len())

	l.Warn("kept")
	assert.NotZero(t, buf.Len())
}

func TestNewWithWriter_UnknownLevelDefaultsToInfo(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter("devconnector", "chatty", &buf)

	l.Debug("filtered out")
	assert.Zero(t, buf.Len())

	l.Info("kept")
	assert.NotZero(t, buf.Len())
}

func TestWithContext_CorrelationID(t *testing.T) {
	ctx := WithCorrelationID(context.Background(), "req-123")
	out := logLine(t, ctx, func(l *slog.Logger) { l.Info("hello") })
	assert.Equal(t, "req-123", out["correlation_id"])
}

func TestWithContext_UserID(t *testing.T) {
	ctx := WithUserID(context.Background(), "user-789")
	out := logLine(t, ctx, func(l *slog.Logger) { l.Info("hello") })
	assert.Equal(t, "user-789", out["user_id"])
}

func TestWithContext_EmptyContextAddsNothing(t *testing.T) {
	out := logLine(t, context.Background(), func(l *slog.Logger) { l.Info("bare") })
	assert.NotContains(t, out, "correlation_id")
	assert.NotContains(t, out, "user_id")
	assert.NotContains(t, out, "trace_id")
	assert.NotContains(t, out, "span_id")
}

func TestWithContext_TraceIDs(t *testing.T) {
	ctx := spanContext(t, "4bf92f3577b34da6a3ce929d0e0e4736", "00f067aa0ba902b7")
	out := logLine(t, ctx, func(l *slog.Logger) { l.Info("traced") })
	assert.Equal(t, "4bf92f3577b34da6a3ce929d0e0e4736", out["trace_id"])
	assert.Equal(t, "00f067aa0ba902b7", out["span_id"])
}

func TestWithContext_AllIdentities(t *testing.T) {
	ctx := spanContext(t, "abcdef1234567890abcdef1234567890", "1234567890abcdef")
	ctx = WithCorrelationID(ctx, "corr-all")
	ctx = WithUserID(ctx, "user-all")

	out := logLine(t, ctx, func(l *slog.Logger) { l.Info("all") })
	assert.Equal(t, "corr-all", out["correlation_id"])
	assert.Equal(t, "user-all", out["user_id"])
	assert.Equal(t, "abcdef1234567890abcdef1234567890", out["trace_id"])
	assert.Equal(t, "1234567890abcdef", out["span_id"])
}

func TestFromContext_RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter("devconnector", "info", &buf)

	ctx := NewContext(context.Background(), l)
	assert.Same(t, l, FromContext(ctx))
}

func TestFromContext_FallsBackToDefault(t *testing.T) {
	assert.NotNil(t, FromContext(context.Background()))
}
