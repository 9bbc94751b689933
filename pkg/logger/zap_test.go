package logger_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Gunvolt24/purchase-order/pkg/ctxmeta"
	"github.com/Gunvolt24/purchase-order/pkg/logger"
)

func TestZapLogger_AddsRequestIDField(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	l := logger.NewFromZap(zap.New(core))

	ctx := ctxmeta.WithRequestID(context.Background(), "req-7")
	l.Infof(ctx, "purchase order created po_id=%d", 6)
	l.Warnf(context.Background(), "plain")

	entries := logs.All()
	require.Len(t, entries, 2)

	require.Equal(t, "purchase order created po_id=6", entries[0].Message)
	require.Equal(t, "req-7", entries[0].ContextMap()["request_id"])

	require.Equal(t, zapcore.WarnLevel, entries[1].Level)
	require.NotContains(t, entries[1].ContextMap(), "request_id")
}

func TestNewZapLogger_Level(t *testing.T) {
	l, cleanup, err := logger.NewZapLogger(true, logger.WithLevel("warn"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = cleanup() })

	require.False(t, l.Base().Core().Enabled(zapcore.InfoLevel))
	require.True(t, l.Base().Core().Enabled(zapcore.WarnLevel))
}

func TestNewZapLogger_BadLevel(t *testing.T) {
	_, _, err := logger.NewZapLogger(false, logger.WithLevel("loud"))
	require.Error(t, err)
}
