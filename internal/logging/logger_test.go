package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewLogger(t *testing.T) {
	cfg := NewDefaultConfig()

	logger, err := NewLogger(cfg)
	require.NoError(t, err)
	require.NotNil(t, logger)

	assert.NotNil(t, logger.zap)
}

func TestNewLogger_InvalidConfig(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Format = "xml"

	_, err := NewLogger(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid config")
}

func TestNewLogger_WritesToConfiguredOutput(t *testing.T) {
	var buf bytes.Buffer
	cfg := NewDefaultConfig()
	cfg.Format = "json"
	cfg.Level = zapcore.InfoLevel
	cfg.Output = &buf

	logger, err := NewLogger(cfg)
	require.NoError(t, err)

	ctx := WithRunID(context.Background(), "run-1")
	logger.Info(ctx, "learnings persisted", zap.Int("count", 2))
	logger.Debug(ctx, "filtered out")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "learnings persisted", entry["msg"])
	assert.Equal(t, "run-1", entry["run.id"])
	assert.Equal(t, "autoreflect", entry["service"])
	assert.EqualValues(t, 2, entry["count"])
}

func TestLogger_ContextAwareMethods(t *testing.T) {
	core, observed := observer.New(TraceLevel)
	logger := &Logger{zap: zap.New(core)}

	ctx := WithSessionID(context.Background(), "sess-42")

	tests := []struct {
		name    string
		logFunc func()
		level   zapcore.Level
		message string
	}{
		{"trace", func() { logger.Trace(ctx, "trace message") }, TraceLevel, "trace message"},
		{"debug", func() { logger.Debug(ctx, "debug message") }, zapcore.DebugLevel, "debug message"},
		{"info", func() { logger.Info(ctx, "info message") }, zapcore.InfoLevel, "info message"},
		{"warn", func() { logger.Warn(ctx, "warn message") }, zapcore.WarnLevel, "warn message"},
		{"error", func() { logger.Error(ctx, "error message") }, zapcore.ErrorLevel, "error message"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			observed.TakeAll()
			tt.logFunc()

			entries := observed.All()
			require.Len(t, entries, 1)
			assert.Equal(t, tt.level, entries[0].Level)
			assert.Equal(t, tt.message, entries[0].Message)
			assert.Equal(t, "sess-42", entries[0].ContextMap()["session.id"])
		})
	}
}

func TestLogger_TraceSkippedWhenDisabled(t *testing.T) {
	core, observed := observer.New(zapcore.InfoLevel)
	logger := &Logger{zap: zap.New(core)}

	logger.Trace(context.Background(), "hidden")
	assert.Empty(t, observed.All())
}

func TestLogger_With(t *testing.T) {
	core, observed := observer.New(zapcore.InfoLevel)
	logger := &Logger{zap: zap.New(core)}

	child := logger.With(zap.String("path", "/tmp/x"))
	child.Info(WithRunID(context.Background(), "run-3"), "appended")

	entries := observed.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "/tmp/x", entries[0].ContextMap()["path"])
	assert.Equal(t, "run-3", entries[0].ContextMap()["run.id"])
}

func TestParseLevel(t *testing.T) {
	l, err := ParseLevel(" TRACE ")
	require.NoError(t, err)
	assert.Equal(t, TraceLevel, l)

	l, err = ParseLevel("Error")
	require.NoError(t, err)
	assert.Equal(t, zapcore.ErrorLevel, l)

	_, err = ParseLevel("loud")
	assert.Error(t, err)
}

func TestNewConfig(t *testing.T) {
	tests := []struct {
		name    string
		level   string
		format  string
		want    zapcore.Level
		wantErr bool
	}{
		{name: "defaults", want: zapcore.WarnLevel},
		{name: "debug json", level: "debug", format: "json", want: zapcore.DebugLevel},
		{name: "trace", level: "trace", want: TraceLevel},
		{name: "bad level", level: "loud", wantErr: true},
		{name: "bad format", format: "xml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := NewConfig(tt.level, tt.format)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg.Level)
		})
	}
}

func TestContext_IDs(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, ContextFields(ctx))

	assert.Equal(t, ctx, WithSessionID(ctx, ""))

	long := make([]byte, 300)
	for i := range long {
		long[i] = 'a'
	}
	ctx = WithSessionID(ctx, string(long))
	assert.Len(t, SessionIDFromContext(ctx), maxIDLen)

	ctx = WithRunID(ctx, "run-7")
	assert.Equal(t, "run-7", RunIDFromContext(ctx))
	assert.Len(t, ContextFields(ctx), 2)
}

func TestFromContext(t *testing.T) {
	assert.NotNil(t, FromContext(context.Background()))

	logger := NewTestLogger()
	ctx := WithLogger(context.Background(), logger.Logger)
	FromContext(ctx).Warn(ctx, "from context")
	logger.AssertLogged(t, zapcore.WarnLevel, "from context")
}

func TestTestLogger_Assertions(t *testing.T) {
	logger := NewTestLogger()
	ctx := context.Background()

	logger.Info(ctx, "stored", zap.Int("count", 3), zap.String("path", "LEARNINGS.md"))

	logger.AssertLogged(t, zapcore.InfoLevel, "stored")
	logger.AssertNotLogged(t, zapcore.ErrorLevel, "stored")
	logger.AssertField(t, "stored", "path", "LEARNINGS.md")
	logger.AssertField(t, "stored", "count", int64(3))

	logger.Reset()
	assert.Empty(t, logger.All())
}
