package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestFromContextAddsRequestAndUser(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	SetLogger(zap.New(core).Sugar())
	t.Cleanup(func() { SetLogger(nil) })

	ctx := WithUserID(WithRequestID(context.Background(), "req-1"), 42)
	CtxInfo(ctx, "recipe created", "recipe_id", 7)

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "req-1", fields["request_id"])
	assert.EqualValues(t, 42, fields["user_id"])
	assert.EqualValues(t, 7, fields["recipe_id"])
}

func TestGetLoggerFallsBackToNop(t *testing.T) {
	SetLogger(nil)
	assert.NotPanics(t, func() { Info("no init") })
}

func TestNewRespectsLevel(t *testing.T) {
	l, err := New(Config{Env: "production", Level: "warn"})
	require.NoError(t, err)
	assert.False(t, l.Core().Enabled(zap.InfoLevel))
	assert.True(t, l.Core().Enabled(zap.WarnLevel))
}
