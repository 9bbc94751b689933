package logger

import (
	"context"
	"fmt"
	"strings"

	"github.com/Gunvolt24/purchase-order/pkg/ctxmeta"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ZapLogger: реализация ports.Logger поверх zap.SugaredLogger.
// Метаданные контекста (request_id, trace_id, span_id) добавляются полями к каждой записи.
type ZapLogger struct {
	base   *zap.Logger
	sugar  *zap.SugaredLogger
	isProd bool
}

// Option: настройка zap.Config перед сборкой логгера.
type Option func(*zap.Config) error

// WithLevel: минимальный уровень ("debug", "info", "warn", "error"); пустая строка, дефолт режима.
func WithLevel(level string) Option {
	return func(cfg *zap.Config) error {
		level = strings.TrimSpace(level)
		if level == "" {
			return nil
		}
		lvl, err := zapcore.ParseLevel(level)
		if err != nil {
			return fmt.Errorf("logger level %q: %w", level, err)
		}
		cfg.Level = zap.NewAtomicLevelAt(lvl)
		return nil
	}
}

func NewZapLogger(isProd bool, opts ...Option) (*ZapLogger, func() error, error) {
	cfg := zap.NewDevelopmentConfig()
	if isProd {
		cfg = zap.NewProductionConfig()
	}
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return nil, nil, err
		}
	}

	logger, err := cfg.Build()
	if err != nil {
		return nil, nil, err
	}
	return wrap(logger, isProd)
}

// NewFromZap: обёртка над готовым *zap.Logger (тесты, zaptest/observer).
func NewFromZap(logger *zap.Logger) *ZapLogger {
	l, _, _ := wrap(logger, false)
	return l
}

func wrap(logger *zap.Logger, isProd bool) (*ZapLogger, func() error, error) {
	loggerWrap := &ZapLogger{
		base:   logger,
		sugar:  logger.Sugar(),
		isProd: isProd,
	}

	cleanup := func() error { return loggerWrap.base.Sync() }
	return loggerWrap, cleanup, nil
}

func (z *ZapLogger) Infof(ctx context.Context, format string, args ...any) {
	z.with(ctx).Infof(format, args...)
}
func (z *ZapLogger) Warnf(ctx context.Context, format string, args ...any) {
	z.with(ctx).Warnf(format, args...)
}
func (z *ZapLogger) Errorf(ctx context.Context, format string, args ...any) {
	z.with(ctx).Errorf(format, args...)
}

func (z *ZapLogger) with(ctx context.Context) *zap.SugaredLogger {
	if fields := ctxmeta.Fields(ctx); len(fields) > 0 {
		return z.sugar.With(fields...)
	}
	return z.sugar
}

func (z *ZapLogger) Base() *zap.Logger           { return z.base }
func (z *ZapLogger) Sugared() *zap.SugaredLogger { return z.sugar }
