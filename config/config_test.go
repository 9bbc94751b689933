package config_test

import (
	"slices"
	"testing"
	"time"

	cfg "github.com/Gunvolt24/purchase-order/config"
)

// TestLoadWithPrefix_Defaults: проверка наличия значений по умолчанию.
func TestLoadWithPrefix_Defaults(t *testing.T) {
	t.Parallel()

	c, err := cfg.LoadWithPrefix("PO_TEST_DEFAULTS")
	if err != nil {
		t.Fatalf("LoadWithPrefix error: %v", err)
	}

	// HTTP
	if c.HTTP.Addr != ":8080" {
		t.Fatalf("HTTP.Addr: want :8080, got %q", c.HTTP.Addr)
	}
	if c.HTTP.GinMode != "debug" {
		t.Fatalf("HTTP.GinMode: want debug, got %q", c.HTTP.GinMode)
	}
	if c.HTTP.ReadTimeout != 10*time.Second || c.HTTP.WriteTimeout != 10*time.Second {
		t.Fatalf("HTTP timeouts wrong: %+v", c.HTTP)
	}
	if c.HTTP.ReadHeaderTimeout != 5*time.Second || c.HTTP.IdleTimeout != 60*time.Second {
		t.Fatalf("HTTP header/idle timeouts wrong: %+v", c.HTTP)
	}
	if c.HTTP.HandlerTimeout != 3*time.Second || c.HTTP.GracefulTimeout != 10*time.Second {
		t.Fatalf("HTTP handler/graceful timeouts wrong: %+v", c.HTTP)
	}

	// Metrics
	if c.Metrics.Addr != ":2112" {
		t.Fatalf("Metrics.Addr: want :2112, got %q", c.Metrics.Addr)
	}

	// Tracing
	if c.Tracing.Enabled {
		t.Fatalf("Tracing.Enabled: want false, got true")
	}
	if c.Tracing.ServiceName != "purchase-order-api" || c.Tracing.Endpoint != "jaeger:4318" || c.Tracing.SampleRatio != 1 {
		t.Fatalf("Tracing defaults wrong: %+v", c.Tracing)
	}

	// Store / Postgres
	if c.Store.Backend != "memory" || !c.Store.Seed {
		t.Fatalf("Store defaults wrong: %+v", c.Store)
	}
	if c.Postgres.DSN == "" || c.Postgres.MaxConns != 10 || !c.Postgres.MigrateOnStart || c.Postgres.PingTimeout != 5*time.Second {
		t.Fatalf("Postgres defaults wrong: %+v", c.Postgres)
	}

	// Kafka
	if !slices.Equal(c.Kafka.Brokers, []string{"kafka:9092"}) {
		t.Fatalf("Kafka.Brokers: want [kafka:9092], got %v", c.Kafka.Brokers)
	}
	if c.Kafka.Topic != "purchase-orders" || c.Kafka.GroupID != "purchase-order-api" || c.Kafka.StartOffset != "last" {
		t.Fatalf("Kafka defaults wrong: %+v", c.Kafka)
	}
	if c.Kafka.ProcessTimeout != 5*time.Second || c.Kafka.RetryInitial != 1*time.Second || c.Kafka.RetryMax != 30*time.Second {
		t.Fatalf("Kafka timeouts wrong: %+v", c.Kafka)
	}
	if c.Kafka.EventsTopic != "purchase-order-events" || c.Kafka.ConsumerEnabled || c.Kafka.RelayEnabled {
		t.Fatalf("Kafka events/flags wrong: %+v", c.Kafka)
	}

	// Outbox
	if c.Outbox.PollInterval != time.Second || c.Outbox.BatchSize != 100 {
		t.Fatalf("Outbox defaults wrong: %+v", c.Outbox)
	}

	// Cache
	if c.Cache.Backend != "memory" || c.Cache.Capacity != 1000 || c.Cache.TTL != 10*time.Minute || c.Cache.WarmUpN != 100 ||
		c.Cache.KeyPrefix != "purchase-order" {
		t.Fatalf("Cache defaults wrong: %+v", c.Cache)
	}

	// Logger
	if c.Logger.IsProd || c.Logger.Level != "" {
		t.Fatalf("Logger defaults wrong: %+v", c.Logger)
	}
}

// Меняем окружение.
func TestLoadWithPrefix_Overrides(t *testing.T) {
	const p = "PO_TEST_OVR"

	// HTTP
	t.Setenv(p+"_HTTP_ADDR", ":9999")
	t.Setenv(p+"_HTTP_GIN_MODE", "release")
	t.Setenv(p+"_HTTP_READ_TIMEOUT", "2s")
	t.Setenv(p+"_HTTP_WRITE_TIMEOUT", "3s")
	t.Setenv(p+"_HTTP_READ_HEADER_TIMEOUT", "1s")
	t.Setenv(p+"_HTTP_IDLE_TIMEOUT", "15s")
	t.Setenv(p+"_HTTP_HANDLER_TIMEOUT", "4500ms")
	t.Setenv(p+"_HTTP_GRACEFUL_TIMEOUT", "20s")

	// Metrics
	t.Setenv(p+"_METRICS_ADDR", ":9998")

	// Tracing
	t.Setenv(p+"_TRACING_OTEL_ENABLED", "true")
	t.Setenv(p+"_TRACING_OTEL_SERVICE_NAME", "svc")
	t.Setenv(p+"_TRACING_OTEL_ENDPOINT", "collector:4318")
	t.Setenv(p+"_TRACING_OTEL_SAMPLE_RATIO", "0.25")

	// Store / Postgres
	t.Setenv(p+"_STORE_BACKEND", "Postgres")
	t.Setenv(p+"_STORE_SEED", "false")
	t.Setenv(p+"_POSTGRES_DSN", "postgres://u:p@h:5432/db?sslmode=disable")
	t.Setenv(p+"_POSTGRES_MAX_CONNS", "42")
	t.Setenv(p+"_POSTGRES_MIGRATE_ON_START", "false")

	// Kafka
	t.Setenv(p+"_KAFKA_BROKERS", "k1:9092,k2:9093")
	t.Setenv(p+"_KAFKA_TOPIC", "po-test")
	t.Setenv(p+"_KAFKA_GROUP_ID", "g-test")
	t.Setenv(p+"_KAFKA_START_OFFSET", "first")
	t.Setenv(p+"_KAFKA_PROCESS_TIMEOUT", "7s")
	t.Setenv(p+"_KAFKA_RETRY_INITIAL", "250ms")
	t.Setenv(p+"_KAFKA_RETRY_MAX", "2m")
	t.Setenv(p+"_KAFKA_EVENTS_TOPIC", "po-events-test")
	t.Setenv(p+"_KAFKA_CONSUMER_ENABLED", "true")
	t.Setenv(p+"_KAFKA_RELAY_ENABLED", "true")

	// Outbox
	t.Setenv(p+"_OUTBOX_POLL_INTERVAL", "250ms")
	t.Setenv(p+"_OUTBOX_BATCH_SIZE", "10")

	// Cache
	t.Setenv(p+"_CACHE_BACKEND", "redis")
	t.Setenv(p+"_CACHE_CAPACITY", "777")
	t.Setenv(p+"_CACHE_TTL", "30m")
	t.Setenv(p+"_CACHE_WARMUP_N", "5")
	t.Setenv(p+"_CACHE_REDIS_ADDR", "cache:6380")
	t.Setenv(p+"_CACHE_KEY_PREFIX", " po-staging ")

	// Logger
	t.Setenv(p+"_LOGGER_IS_PROD", "true")
	t.Setenv(p+"_LOGGER_LEVEL", "warn")

	c, err := cfg.LoadWithPrefix(p)
	if err != nil {
		t.Fatalf("LoadWithPrefix error: %v", err)
	}

	// Проверки
	if c.HTTP.Addr != ":9999" || c.HTTP.GinMode != "release" {
		t.Fatalf("HTTP overrides wrong: %+v", c.HTTP)
	}
	if c.HTTP.ReadTimeout != 2*time.Second || c.HTTP.WriteTimeout != 3*time.Second ||
		c.HTTP.ReadHeaderTimeout != 1*time.Second || c.HTTP.IdleTimeout != 15*time.Second ||
		c.HTTP.HandlerTimeout != 4500*time.Millisecond || c.HTTP.GracefulTimeout != 20*time.Second {
		t.Fatalf("HTTP timeouts override wrong: %+v", c.HTTP)
	}
	if c.Metrics.Addr != ":9998" {
		t.Fatalf("Metrics.Addr override wrong: %q", c.Metrics.Addr)
	}
	if !c.Tracing.Enabled || c.Tracing.ServiceName != "svc" || c.Tracing.Endpoint != "collector:4318" || c.Tracing.SampleRatio != 0.25 {
		t.Fatalf("Tracing overrides wrong: %+v", c.Tracing)
	}
	// имя бэкенда нормализуется к нижнему регистру
	if c.Store.Backend != "postgres" || c.Store.Seed {
		t.Fatalf("Store overrides wrong: %+v", c.Store)
	}
	if c.Postgres.DSN != "postgres://u:p@h:5432/db?sslmode=disable" || c.Postgres.MaxConns != 42 || c.Postgres.MigrateOnStart {
		t.Fatalf("Postgres overrides wrong: %+v", c.Postgres)
	}
	if !slices.Equal(c.Kafka.Brokers, []string{"k1:9092", "k2:9093"}) ||
		c.Kafka.Topic != "po-test" || c.Kafka.GroupID != "g-test" || c.Kafka.StartOffset != "first" {
		t.Fatalf("Kafka basic overrides wrong: %+v", c.Kafka)
	}
	if c.Kafka.ProcessTimeout != 7*time.Second || c.Kafka.RetryInitial != 250*time.Millisecond || c.Kafka.RetryMax != 2*time.Minute {
		t.Fatalf("Kafka timeouts override wrong: %+v", c.Kafka)
	}
	if c.Kafka.EventsTopic != "po-events-test" || !c.Kafka.ConsumerEnabled || !c.Kafka.RelayEnabled {
		t.Fatalf("Kafka events/flags override wrong: %+v", c.Kafka)
	}
	if c.Outbox.PollInterval != 250*time.Millisecond || c.Outbox.BatchSize != 10 {
		t.Fatalf("Outbox overrides wrong: %+v", c.Outbox)
	}
	if c.Cache.Backend != "redis" || c.Cache.Capacity != 777 || c.Cache.TTL != 30*time.Minute ||
		c.Cache.WarmUpN != 5 || c.Cache.RedisAddr != "cache:6380" ||
		c.Cache.KeyPrefix != "po-staging" {
		t.Fatalf("Cache overrides wrong: %+v", c.Cache)
	}
	if !c.Logger.IsProd || c.Logger.Level != "warn" {
		t.Fatalf("Logger overrides wrong: %+v", c.Logger)
	}
}

// Тоже меняем окружение, но с невалидным значением.
func TestLoadWithPrefix_InvalidValue_ReturnsError(t *testing.T) {
	const p = "PO_TEST_BAD"
	t.Setenv(p+"_HTTP_READ_TIMEOUT", "not-a-duration")

	if _, err := cfg.LoadWithPrefix(p); err == nil {
		t.Fatalf("expected error for invalid duration, got nil")
	}
}

func TestLoadWithPrefix_UnknownBackends(t *testing.T) {
	t.Run("store", func(t *testing.T) {
		const p = "PO_TEST_BAD_STORE"
		t.Setenv(p+"_STORE_BACKEND", "sqlite")
		if _, err := cfg.LoadWithPrefix(p); err == nil {
			t.Fatalf("expected error for unknown store backend")
		}
	})
	t.Run("cache", func(t *testing.T) {
		const p = "PO_TEST_BAD_CACHE"
		t.Setenv(p+"_CACHE_BACKEND", "memcached")
		if _, err := cfg.LoadWithPrefix(p); err == nil {
			t.Fatalf("expected error for unknown cache backend")
		}
	})
}

func TestLoadWithPrefix_RedisWithoutKeyPrefix(t *testing.T) {
	const p = "PO_TEST_NO_PREFIX"
	t.Setenv(p+"_CACHE_BACKEND", "redis")
	t.Setenv(p+"_CACHE_KEY_PREFIX", "  ")

	if _, err := cfg.LoadWithPrefix(p); err == nil {
		t.Fatalf("expected error for redis cache without key prefix")
	}

	// префикс не зависит от имени сервиса трейсинга
	t.Setenv(p+"_CACHE_KEY_PREFIX", "po")
	t.Setenv(p+"_TRACING_OTEL_SERVICE_NAME", "other-service")
	c, err := cfg.LoadWithPrefix(p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Cache.KeyPrefix != "po" {
		t.Fatalf("KeyPrefix: want po, got %q", c.Cache.KeyPrefix)
	}
}

func TestLoadWithPrefix_ConsumerWithoutBrokers(t *testing.T) {
	const p = "PO_TEST_NO_BROKERS"
	t.Setenv(p+"_KAFKA_BROKERS", "")
	t.Setenv(p+"_KAFKA_CONSUMER_ENABLED", "true")

	if _, err := cfg.LoadWithPrefix(p); err == nil {
		t.Fatalf("expected error for consumer without brokers")
	}
}
