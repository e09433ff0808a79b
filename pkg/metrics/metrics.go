package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
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
			Help: "Number of messages failed to process",
		},
		[]string{"topic"},
	)
	KafkaMessagesPublished = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kafka_messages_published_total",
			Help: "Number of result messages written to Kafka",
		},
		[]string{"topic"},
	)
)

var (
	CacheOps = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "item_cache_operations_total",
			Help: "Item metadata cache operations",
		},
		[]string{"op"}, // hit|miss|evicted|expired
	)
	CacheSize = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "item_cache_size",
			Help: "Number of items currently in cache",
		},
	)
)

var (
	// FetchPages — страницы по исходу: data|empty|end|rate_limited|error.
	FetchPages = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fetch_pages_total",
			Help: "Order book pages requested, by outcome",
		},
		[]string{"kind", "outcome"},
	)
	RateLimitWaitSeconds = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "fetch_rate_limit_wait_seconds_total",
			Help: "Time spent sleeping on remote rate limits",
		},
	)
	OrdersStaged = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "orders_staged_total",
			Help: "Orders written to the staging store",
		},
		[]string{"kind"},
	)
	StoreOps = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "staging_store_operations_total",
			Help: "Chunk store operations by result",
		},
		[]string{"op", "result"}, // result: ok|error
	)
	ChunksSwept = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "staging_chunks_swept_total",
			Help: "Chunks removed by the expiry sweeper",
		},
	)
	OpportunitiesProduced = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "opportunities_produced_total",
			Help: "Opportunities returned after filtering, by status",
		},
		[]string{"status"},
	)
)

var registerOnce sync.Once

// MustRegister — регистрация всех метрик в глобальном реестре. Повторные вызовы безопасны.
func MustRegister() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			KafkaMessagesConsumed, KafkaMessagesProcessed, KafkaMessagesFailed, KafkaMessagesPublished,
			CacheOps, CacheSize,
			FetchPages, RateLimitWaitSeconds, OrdersStaged, StoreOps, ChunksSwept, OpportunitiesProduced,
		)
	})
}

// StoreResult — метка результата операции хранилища.
func StoreResult(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
