package config_test

import (
	"slices"
	"testing"
	"time"

	cfg "github.com/Gunvolt24/market_arb/config"
)

// TestLoadWithPrefix_Defaults — проверка наличия значений по умолчанию.
func TestLoadWithPrefix_Defaults(t *testing.T) {
	t.Parallel()

	c, err := cfg.LoadWithPrefix("ARB_TEST_DEFAULTS")
	if err != nil {
		t.Fatalf("LoadWithPrefix error: %v", err)
	}

	// HTTP
	if c.HTTP.Addr != ":8080" || c.HTTP.GinMode != "debug" {
		t.Fatalf("HTTP defaults wrong: %+v", c.HTTP)
	}
	if c.HTTP.ReadTimeout != 10*time.Second || c.HTTP.HandlerTimeout != 10*time.Minute || c.HTTP.GracefulTimeout != 15*time.Second {
		t.Fatalf("HTTP timeouts wrong: %+v", c.HTTP)
	}

	// Tracing
	if c.Tracing.Enabled || c.Tracing.ServiceName != "market-arb" || c.Tracing.SampleRatio != 1 {
		t.Fatalf("Tracing defaults wrong: %+v", c.Tracing)
	}

	// Kafka
	if c.Kafka.Enabled || !slices.Equal(c.Kafka.Brokers, []string{"kafka:9092"}) {
		t.Fatalf("Kafka defaults wrong: %+v", c.Kafka)
	}
	if c.Kafka.RequestTopic != "comparison-requests" || c.Kafka.ResultTopic != "comparison-results" || c.Kafka.StartOffset != "last" {
		t.Fatalf("Kafka topics wrong: %+v", c.Kafka)
	}

	// Cache
	if c.Cache.TTL != 24*time.Hour || c.Cache.PlaceholderTTL != 5*time.Minute {
		t.Fatalf("Cache defaults wrong: %+v", c.Cache)
	}

	// Store
	if c.Store.Backend != "memory" || c.Store.ChunkSize != 500 || c.Store.MaxAge != 24*time.Hour || c.Store.SweepInterval != time.Hour {
		t.Fatalf("Store defaults wrong: %+v", c.Store)
	}

	// ESI
	if c.ESI.RequestInterval != 150*time.Millisecond || c.ESI.MaxPages != 2000 || c.ESI.MaxEmptyPages != 5 {
		t.Fatalf("ESI defaults wrong: %+v", c.ESI)
	}
	if c.ESI.DefaultResetDelay != 60*time.Second || c.ESI.MaxRateLimitRetries != 10 || c.ESI.ErrorLimitFloor != 10 {
		t.Fatalf("ESI rate-limit defaults wrong: %+v", c.ESI)
	}

	// Enrich
	if c.Enrich.BatchSize != 50 || c.Enrich.BatchDelay != 150*time.Millisecond || c.Enrich.Workers != 8 {
		t.Fatalf("Enrich defaults wrong: %+v", c.Enrich)
	}

	// Logger
	if c.Logger.IsProd {
		t.Fatalf("Logger.IsProd: want false, got true")
	}
}

// Меняем окружение.
func TestLoadWithPrefix_Overrides(t *testing.T) {
	const p = "ARB_TEST_OVR"

	t.Setenv(p+"_HTTP_ADDR", ":9999")
	t.Setenv(p+"_HTTP_HANDLER_TIMEOUT", "4500ms")
	t.Setenv(p+"_TRACING_OTEL_ENABLED", "true")
	t.Setenv(p+"_TRACING_OTEL_SAMPLE_RATIO", "0.25")
	t.Setenv(p+"_POSTGRES_MAX_CONNS", "42")
	t.Setenv(p+"_KAFKA_ENABLED", "true")
	t.Setenv(p+"_KAFKA_BROKERS", "k1:9092,k2:9093")
	t.Setenv(p+"_KAFKA_REQUEST_TOPIC", "req")
	t.Setenv(p+"_STORE_BACKEND", "postgres")
	t.Setenv(p+"_STORE_CHUNK_SIZE", "250")
	t.Setenv(p+"_ESI_BASE_URL", "http://esi.local")
	t.Setenv(p+"_ESI_REQUEST_INTERVAL", "1s")
	t.Setenv(p+"_ENRICH_WORKERS", "2")
	t.Setenv(p+"_CACHE_PLACEHOLDER_TTL", "1m")
	t.Setenv(p+"_LOGGER_IS_PROD", "true")

	c, err := cfg.LoadWithPrefix(p)
	if err != nil {
		t.Fatalf("LoadWithPrefix error: %v", err)
	}

	if c.HTTP.Addr != ":9999" || c.HTTP.HandlerTimeout != 4500*time.Millisecond {
		t.Fatalf("HTTP overrides wrong: %+v", c.HTTP)
	}
	if !c.Tracing.Enabled || c.Tracing.SampleRatio != 0.25 || c.Postgres.MaxConns != 42 {
		t.Fatalf("Tracing/Postgres overrides wrong: %+v %+v", c.Tracing, c.Postgres)
	}
	if !c.Kafka.Enabled || !slices.Equal(c.Kafka.Brokers, []string{"k1:9092", "k2:9093"}) || c.Kafka.RequestTopic != "req" {
		t.Fatalf("Kafka overrides wrong: %+v", c.Kafka)
	}
	if c.Store.Backend != "postgres" || c.Store.ChunkSize != 250 {
		t.Fatalf("Store overrides wrong: %+v", c.Store)
	}
	if c.ESI.BaseURL != "http://esi.local" || c.ESI.RequestInterval != time.Second {
		t.Fatalf("ESI overrides wrong: %+v", c.ESI)
	}
	if c.Enrich.Workers != 2 || c.Cache.PlaceholderTTL != time.Minute || !c.Logger.IsProd {
		t.Fatalf("overrides wrong: %+v %+v %+v", c.Enrich, c.Cache, c.Logger)
	}
}

// Тоже меняем окружение — но с невалидным значением.
func TestLoadWithPrefix_InvalidValue_ReturnsError(t *testing.T) {
	const p = "ARB_TEST_BAD"
	t.Setenv(p+"_ESI_REQUEST_INTERVAL", "not-a-duration")

	if _, err := cfg.LoadWithPrefix(p); err == nil {
		t.Fatalf("expected error for invalid duration, got nil")
	}
}
