package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/Gunvolt24/purchase-order/config"
	cachemem "github.com/Gunvolt24/purchase-order/internal/cache/memory"
	"github.com/Gunvolt24/purchase-order/internal/cache/rediscache"
	"github.com/Gunvolt24/purchase-order/internal/kafka"
	"github.com/Gunvolt24/purchase-order/internal/outbox"
	"github.com/Gunvolt24/purchase-order/internal/ports"
	"github.com/Gunvolt24/purchase-order/internal/repo/memory"
	"github.com/Gunvolt24/purchase-order/internal/repo/postgres"
	rest "github.com/Gunvolt24/purchase-order/internal/transport/http"
	"github.com/Gunvolt24/purchase-order/internal/usecase"
	"github.com/Gunvolt24/purchase-order/pkg/logger"
	"github.com/Gunvolt24/purchase-order/pkg/metrics"
	"github.com/Gunvolt24/purchase-order/pkg/telemetry"
	"github.com/Gunvolt24/purchase-order/pkg/validate"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// App: собранное приложение и его внешние интерфейсы (HTTP, consumer, relay).
type App struct {
	Logger          ports.Logger          // логгер
	HTTPServer      *http.Server          // HTTP-сервер API
	MetricsServer   *http.Server          // отдельный /metrics; при nil только на HTTPServer
	KafkaConsumer   ports.MessageConsumer // консьюмер заказов; при nil выключен
	OutboxRelay     ports.Worker          // публикация событий; при nil выключена
	gracefulTimeout time.Duration         // время ожидания завершения HTTP-сервера
}

// Cleanup: функция освобождения ресурсов.
type Cleanup func()

// applyGinMode: устанавливает режим Gin по строке;
// неизвестное значение → debug и предупреждение в лог.
func applyGinMode(ctx context.Context, mode string, log ports.Logger) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "release":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	case "", "debug":
		gin.SetMode(gin.DebugMode)
	default:
		gin.SetMode(gin.DebugMode)
		log.Warnf(ctx, "unknown GIN_MODE=%q, fallback to debug", mode)
	}
}

// storeSet: выбранное хранилище заказов и его outbox.
type storeSet struct {
	orders ports.OrderStore
	outbox ports.OutboxStore
	close  func()
}

// buildStore: memory (по умолчанию с образцами данных) или postgres (миграции, сид).
func buildStore(ctx context.Context, cfg *config.Config, log ports.Logger) (storeSet, error) {
	switch cfg.Store.Backend {
	case "postgres":
		if cfg.Postgres.MigrateOnStart {
			if err := postgres.Migrate(ctx, cfg.Postgres.DSN); err != nil {
				return storeSet{}, err
			}
		}
		pool, err := postgres.NewPool(ctx, postgres.PoolConfig{
			DSN:         cfg.Postgres.DSN,
			MaxConns:    cfg.Postgres.MaxConns,
			MinConns:    cfg.Postgres.MinConns,
			PingTimeout: cfg.Postgres.PingTimeout,
		})
		if err != nil {
			return storeSet{}, err
		}
		store := postgres.NewOrderStore(pool)
		if cfg.Store.Seed {
			if err := store.Seed(ctx, memory.SampleOrders(), memory.Catalog()); err != nil {
				pool.Close()
				return storeSet{}, fmt.Errorf("seed postgres: %w", err)
			}
		}
		log.Infof(ctx, "order store: postgres (max_conns=%d)", cfg.Postgres.MaxConns)
		return storeSet{orders: store, outbox: store, close: pool.Close}, nil

	default:
		store := memory.NewStore()
		if cfg.Store.Seed {
			store = memory.NewSeededStore()
		}
		log.Infof(ctx, "order store: memory (seeded=%t)", cfg.Store.Seed)
		return storeSet{orders: store, outbox: store, close: func() {}}, nil
	}
}

// buildCache: read-кэш по конфигурации; nil-интерфейс означает работу без кэша.
func buildCache(ctx context.Context, cfg *config.Config, log ports.Logger) (ports.OrderCache, func()) {
	switch cfg.Cache.Backend {
	case "redis":
		c := rediscache.NewOrderCache(cfg.Cache.RedisAddr, cfg.Cache.KeyPrefix, cfg.Cache.TTL)
		log.Infof(ctx, "order cache: redis addr=%s prefix=%s ttl=%s", cfg.Cache.RedisAddr, cfg.Cache.KeyPrefix, cfg.Cache.TTL)
		return c, func() {
			if err := c.Close(); err != nil {
				log.Warnf(ctx, "redis cache close: %v", err)
			}
		}
	case "none":
		log.Infof(ctx, "order cache: disabled")
		return nil, func() {}
	default:
		log.Infof(ctx, "order cache: memory capacity=%d ttl=%s", cfg.Cache.Capacity, cfg.Cache.TTL)
		return cachemem.NewLRUCacheTTL(cfg.Cache.Capacity, cfg.Cache.TTL), func() {}
	}
}

// Bootstrap: собирает зависимости и возвращает приложение, функцию очистки и ошибку.
func Bootstrap(ctx context.Context, cfg *config.Config) (*App, Cleanup, error) {
	// Логгер (dev/prod режим и уровень задаются конфигурацией).
	logg, cleanupLogger, err := logger.NewZapLogger(cfg.Logger.IsProd, logger.WithLevel(cfg.Logger.Level))
	if err != nil {
		return nil, func() {}, err
	}

	// Регистрация метрик (Prometheus).
	metrics.MustRegister()

	stores, err := buildStore(ctx, cfg, logg)
	if err != nil {
		if cErr := cleanupLogger(); cErr != nil {
			logg.Warnf(ctx, "cleanup logger: %v", cErr)
		}
		return nil, func() {}, err
	}

	// Трейсинг OTEL (при включённой конфигурации); по умолчанию no-op.
	shutdownTrace := func(context.Context) error { return nil }
	if cfg.Tracing.Enabled {
		setup, tErr := telemetry.SetupTracing(ctx, cfg.Tracing.ServiceName, cfg.Tracing.Endpoint, cfg.Tracing.SampleRatio)
		if tErr != nil {
			logg.Warnf(ctx, "failed to setup tracing: %v", tErr)
		} else {
			logg.Infof(ctx, "otel tracing enabled service=%s endpoint=%s sample=%.2f",
				cfg.Tracing.ServiceName, cfg.Tracing.Endpoint, cfg.Tracing.SampleRatio)
			shutdownTrace = setup
		}
	}

	// Сборка зависимостей доменного слоя.
	orderCache, closeCache := buildCache(ctx, cfg, logg)
	orderService := usecase.NewOrderService(stores.orders, orderCache, logg, validate.NewOrderValidator())

	// Прогрев кэша
	if n := cfg.Cache.WarmUpN; n > 0 {
		if err := orderService.WarmUpCache(ctx, n); err != nil {
			logg.Warnf(ctx, "warm-up cache failed: %v", err)
		}
	}

	// Режим Gin.
	applyGinMode(ctx, cfg.HTTP.GinMode, logg)

	// Имя сервиса для otelgin (только при включённом трейсинге).
	otelServiceName := ""
	if cfg.Tracing.Enabled {
		otelServiceName = cfg.Tracing.ServiceName
	}

	// Роутер и HTTP-сервер.
	httpHandler := rest.NewHandler(orderService, logg, cfg.HTTP.HandlerTimeout)
	router := rest.NewRouter(httpHandler, otelServiceName)

	httpSrv := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           router,
		ReadTimeout:       cfg.HTTP.ReadTimeout,
		WriteTimeout:      cfg.HTTP.WriteTimeout,
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
		IdleTimeout:       cfg.HTTP.IdleTimeout,
	}

	app := &App{
		Logger:          logg,
		HTTPServer:      httpSrv,
		gracefulTimeout: cfg.HTTP.GracefulTimeout,
	}

	// Отдельный listener для Prometheus, если адрес отличается от API.
	if addr := strings.TrimSpace(cfg.Metrics.Addr); addr != "" && addr != cfg.HTTP.Addr {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		app.MetricsServer = &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout}
	}

	// Консьюмер Kafka: асинхронный приём заказов тем же конвейером.
	var consumer *kafka.Consumer
	if cfg.Kafka.ConsumerEnabled {
		kafkaCfg := kafka.ConsumerConfig{
			Brokers:        cfg.Kafka.Brokers,
			GroupID:        cfg.Kafka.GroupID,
			Topic:          cfg.Kafka.Topic,
			StartOffset:    cfg.Kafka.StartOffset,
			ProcessTimeout: cfg.Kafka.ProcessTimeout,
			RetryInitial:   cfg.Kafka.RetryInitial,
			RetryMax:       cfg.Kafka.RetryMax,
		}
		consumer = kafka.NewConsumer(&kafkaCfg, orderService, logg)
		app.KafkaConsumer = consumer
	}

	// Outbox relay: события побочных записей → топик событий.
	var producer *kafka.Producer
	if cfg.Kafka.RelayEnabled {
		producer = kafka.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.EventsTopic)
		app.OutboxRelay = outbox.NewRelay(stores.outbox, producer, logg, outbox.Config{
			PollInterval: cfg.Outbox.PollInterval,
			BatchSize:    cfg.Outbox.BatchSize,
		})
	}

	// Очистка ресурсов (в обратном порядке).
	cleanup := func() {
		if terr := shutdownTrace(context.Background()); terr != nil {
			logg.Warnf(ctx, "shutdown tracing: %v", terr)
		}
		if consumer != nil {
			if err := consumer.Close(); err != nil {
				logg.Warnf(ctx, "kafka consumer close error: %v", err)
			}
		}
		if producer != nil {
			if err := producer.Close(); err != nil {
				logg.Warnf(ctx, "kafka producer close error: %v", err)
			}
		}
		closeCache()
		stores.close()
		if cerr := cleanupLogger(); cerr != nil {
			logg.Warnf(ctx, "cleanup logger: %v", cerr)
		}
	}

	return app, cleanup, nil
}

// Run: запускает HTTP-сервер и фоновые компоненты; ждёт отмены контекста или ошибки и останавливает их.
func (a *App) Run(ctx context.Context) error {
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	errCh := make(chan error, 4)
	var wg sync.WaitGroup

	// Запуск консьюмера.
	if a.KafkaConsumer != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			a.Logger.Infof(ctx, "kafka consumer starting")
			if err := a.KafkaConsumer.Run(runCtx); err != nil {
				errCh <- fmt.Errorf("kafka consumer: %w", err)
			}
		}()
	}

	// Запуск outbox relay.
	if a.OutboxRelay != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			a.Logger.Infof(ctx, "outbox relay starting")
			if err := a.OutboxRelay.Run(runCtx); err != nil {
				errCh <- fmt.Errorf("outbox relay: %w", err)
			}
		}()
	}

	// Запуск HTTP-серверов.
	servers := []*http.Server{a.HTTPServer}
	if a.MetricsServer != nil {
		servers = append(servers, a.MetricsServer)
	}
	for _, srv := range servers {
		srv := srv
		go func() {
			a.Logger.Infof(ctx, "http server starting (addr=%s)", srv.Addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
		}()
	}

	// Ожидание сигнала остановки или фоновой ошибки.
	select {
	case <-ctx.Done():
		a.Logger.Infof(ctx, "shutdown requested, starting graceful shutdown")
	case err := <-errCh:
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			a.Logger.Infof(ctx, "background component stopped: %v", err)
		} else {
			a.Logger.Warnf(ctx, "background error: %v", err)
		}
	}

	gt := a.gracefulTimeout
	if gt <= 0 {
		gt = 5 * time.Second
	}

	// Корректная остановка HTTP: сначала перестаём принимать новые заказы.
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), gt)
	defer cancelShutdown()

	for _, srv := range servers {
		if err := srv.Shutdown(shutdownCtx); err != nil {
			a.Logger.Warnf(ctx, "http server %s shutdown failed: %v", srv.Addr, err)
		} else {
			a.Logger.Infof(ctx, "http server %s stopped gracefully", srv.Addr)
		}
	}

	// Остановка фоновых компонентов и ожидание их выхода.
	cancel()
	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-shutdownCtx.Done():
		a.Logger.Warnf(ctx, "background components did not stop within %s", gt)
	}

	if a.KafkaConsumer != nil {
		if err := a.KafkaConsumer.Close(); err != nil {
			a.Logger.Warnf(ctx, "kafka consumer close error: %v", err)
		}
	}

	a.Logger.Infof(ctx, "service stopped")
	return nil
}
