package metrics_test

import (
	"errors"
	"testing"

	"github.com/Gunvolt24/market_arb/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMustRegister_IsIdempotent(t *testing.T) {
	// Должно выполняться без паники даже при повторном вызове.
	metrics.MustRegister()
	metrics.MustRegister()
}

func TestKafkaCounters_Inc(t *testing.T) {
	metrics.MustRegister()

	beforeConsumed := testutil.ToFloat64(metrics.KafkaMessagesConsumed.WithLabelValues("requests"))
	beforePublished := testutil.ToFloat64(metrics.KafkaMessagesPublished.WithLabelValues("results"))

	metrics.KafkaMessagesConsumed.WithLabelValues("requests").Inc()
	metrics.KafkaMessagesPublished.WithLabelValues("results").Inc()

	if got := testutil.ToFloat64(metrics.KafkaMessagesConsumed.WithLabelValues("requests")); got != beforeConsumed+1 {
		t.Fatalf("KafkaMessagesConsumed: got=%v want=%v", got, beforeConsumed+1)
	}
	if got := testutil.ToFloat64(metrics.KafkaMessagesPublished.WithLabelValues("results")); got != beforePublished+1 {
		t.Fatalf("KafkaMessagesPublished: got=%v want=%v", got, beforePublished+1)
	}
}

func TestCacheOps_CountersByLabel(t *testing.T) {
	metrics.MustRegister()

	hitBefore := testutil.ToFloat64(metrics.CacheOps.WithLabelValues("hit"))
	missBefore := testutil.ToFloat64(metrics.CacheOps.WithLabelValues("miss"))

	metrics.CacheOps.WithLabelValues("hit").Inc()
	metrics.CacheOps.WithLabelValues("hit").Inc()

	if got := testutil.ToFloat64(metrics.CacheOps.WithLabelValues("hit")); got != hitBefore+2 {
		t.Fatalf("CacheOps(hit): got=%v want=%v", got, hitBefore+2)
	}
	if got := testutil.ToFloat64(metrics.CacheOps.WithLabelValues("miss")); got != missBefore {
		t.Fatalf("CacheOps(miss): got=%v want=%v", got, missBefore)
	}
}

func TestFetchPages_ByOutcome(t *testing.T) {
	metrics.MustRegister()

	before := testutil.ToFloat64(metrics.FetchPages.WithLabelValues("region", "data"))
	metrics.FetchPages.WithLabelValues("region", "data").Add(3)
	if got := testutil.ToFloat64(metrics.FetchPages.WithLabelValues("region", "data")); got != before+3 {
		t.Fatalf("FetchPages: got=%v want=%v", got, before+3)
	}
}

func TestStoreResult(t *testing.T) {
	if got := metrics.StoreResult(nil); got != "ok" {
		t.Fatalf("StoreResult(nil)=%q", got)
	}
	if got := metrics.StoreResult(errors.New("x")); got != "error" {
		t.Fatalf("StoreResult(err)=%q", got)
	}
}
