package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNewLogger_NotNil verifies that NewLogger returns a non-nil *Logger.
func TestNewLogger_NotNil(t *testing.T) {
	l := NewLogger("test", io.Discard)
	require.NotNil(t, l)
}

// TestNewLogger_RoleField verifies that every log entry contains the "role" field.
func TestNewLogger_RoleField(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger("test-role", &buf)

	l.Info().Msg("hello")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "test-role", entry["role"])
}

// TestNewLogger_ContainsTimestamp verifies that log entries contain a timestamp field.
func TestNewLogger_ContainsTimestamp(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger("ts-role", &buf)

	l.Info().Msg("ts check")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	_, hasTime := entry["time"]
	assert.True(t, hasTime, "expected 'time' field in log entry")
}

// TestNewLogger_CallerFieldName verifies that the caller field is named "func".
func TestNewLogger_CallerFieldName(t *testing.T) {
	NewLogger("caller-role", io.Discard)
	assert.Equal(t, "func", zerolog.CallerFieldName)
}

func TestNewLogger_GlobalLevelIsDebug(t *testing.T) {
	NewLogger("level-role", io.Discard)
	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())
}

// TestNop_DiscardsOutput verifies that a Nop logger produces no output.
func TestNop_DiscardsOutput(t *testing.T) {
	var buf bytes.Buffer
	l := Nop()
	l.Logger = l.Output(&buf)

	l.Info().Msg("should be discarded")

	assert.Empty(t, buf.String(), "Nop logger should produce no output")
}

// TestGetChildLogger_InheritsFields verifies that the child logger inherits
// context fields (e.g. "role") from the parent.
func TestGetChildLogger_InheritsFields(t *testing.T) {
	var buf bytes.Buffer
	parent := NewLogger("inherited-role", &buf)

	child := parent.GetChildLogger()
	assert.NotSame(t, parent, child)
	child.Info().Msg("child message")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "inherited-role", entry["role"])
}

// ── WithOperation ─────────────────────────────────────────────────────────────

func TestWithOperation_TagsLoggerAndContext(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger("client", &buf)

	ctx, opLog := l.WithOperation(context.Background(), "upload", "op-123")
	require.NotNil(t, opLog)

	FromContext(ctx).Info().Msg("from context")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "upload", entry["op"])
	assert.Equal(t, "op-123", entry["op_id"])
	assert.Equal(t, "client", entry["role"])
}

// ── FromContext ───────────────────────────────────────────────────────────────

// TestFromContext_NotNil verifies that FromContext never returns nil, even
// when no logger has been explicitly attached to the context.
func TestFromContext_NotNil(t *testing.T) {
	l := FromContext(context.Background())
	require.NotNil(t, l)
}

func TestFromContext_ReturnsAttachedLogger(t *testing.T) {
	var buf bytes.Buffer
	zl := zerolog.New(&buf).With().Str("ctx-key", "ctx-value").Logger()
	ctx := zl.WithContext(context.Background())

	l := FromContext(ctx)
	require.NotNil(t, l)

	l.Info().Msg("from context")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "ctx-value", entry["ctx-key"])
}
