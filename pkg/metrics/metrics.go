package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Конвейер заказов.
var (
	PurchaseOrders = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "purchase_orders_total",
			Help: "Purchase order submissions by outcome",
		},
		[]string{"outcome"}, // created|validation_failed|unprocessable
	)
	PurchaseOrderLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "purchase_order_lookups_total",
			Help: "Purchase order lookups by outcome",
		},
		[]string{"outcome"}, // found|not_found|failed
	)
)

var (
	KafkaMessagesConsumed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kafka_messages_consumed_total",
			Help: "Number of messages fetched from Kafka",
		},
		[]string{"topic"},
	)
	KafkaMessagesProcessed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kafka_messages_processed_total",
			Help: "Number of messages processed successfully",
		},
		[]string{"topic"},
	)
	KafkaMessagesFailed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kafka_messages_failed_total",
			Help: "Number of messages that ended in a non-created outcome",
		},
		[]string{"topic"},
	)
)

var (
	OutboxPublished = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "outbox_events_published_total",
			Help: "Order events published by the outbox relay",
		},
		[]string{"kind"},
	)
	OutboxFailed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "outbox_events_failed_total",
			Help: "Order events the outbox relay failed to publish",
		},
		[]string{"kind"},
	)
)

var (
	CacheOps = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_operations_total",
			Help: "Cache operations",
		},
		[]string{"op"}, // hit|miss|evicted|expired
	)
	CacheSize = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "cache_size",
			Help: "Number of items currently in cache",
		},
	)
)

var registerOnce sync.Once

// MustRegister: регистрация всех метрик в default registry; повторный вызов безопасен.
func MustRegister() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			PurchaseOrders, PurchaseOrderLookups,
			KafkaMessagesConsumed, KafkaMessagesProcessed, KafkaMessagesFailed,
			OutboxPublished, OutboxFailed,
			CacheOps, CacheSize,
		)
	})
}
