package logging

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestLogger_WritesKeyValueFields(t *testing.T) {
	core, logs := observer.New(LevelDebug)
	logger := FromZap(zap.New(core)).With("component", "sync")

	logger.InfoContext(context.Background(), "contests synced", "live_count", 2, "error", errors.New("boom"))

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "contests synced", entries[0].Message)

	fields := entries[0].ContextMap()
	assert.Equal(t, "sync", fields["component"])
	assert.EqualValues(t, 2, fields["live_count"])
	assert.Equal(t, "boom", fields["error"])
}

func TestLogger_RespectsLevel(t *testing.T) {
	core, logs := observer.New(LevelWarn)
	logger := FromZap(zap.New(core))

	logger.Info("ignored")
	logger.Warn("kept")

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "kept", logs.All()[0].Message)
}

func TestSetMirror_ReceivesRecordsWithScopedFields(t *testing.T) {
	core, _ := observer.New(LevelInfo)
	logger := FromZap(zap.New(core)).With("component", "cricapi")

	var (
		mu       sync.Mutex
		messages []string
		args     []any
	)
	SetMirror(func(_ context.Context, _ Level, msg string, kv ...any) {
		mu.Lock()
		defer mu.Unlock()
		messages = append(messages, msg)
		args = append(args, kv...)
	})
	t.Cleanup(func() { SetMirror(nil) })

	logger.Warn("fallback endpoint used", "endpoint", "/matches")
	logger.Debug("below level")

	mu.Lock()
	defer mu.Unlock()
	require.Equal(t, []string{"fallback endpoint used"}, messages)
	assert.Equal(t, []any{"component", "cricapi", "endpoint", "/matches"}, args)
}

func TestNilLoggerFallsBackToDefault(t *testing.T) {
	var logger *Logger
	assert.NotPanics(t, func() {
		logger.Info("no logger configured")
	})
}
