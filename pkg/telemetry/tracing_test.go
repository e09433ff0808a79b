package telemetry

import (
	"context"
	"testing"
)

func TestTracer_AlwaysUsable(t *testing.T) {
	ctx, span := Tracer("fetch").Start(context.Background(), "fetch.page")
	defer span.End()

	if ctx == nil || span == nil {
		t.Fatalf("tracer must always return a usable span")
	}
}

func TestClampRatio(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in, want float64
	}{
		{-0.5, 0},
		{0, 0},
		{0.25, 0.25},
		{1, 1},
		{2, 1},
	}
	for _, tt := range tests {
		if got := clampRatio(tt.in); got != tt.want {
			t.Fatalf("clampRatio(%v)=%v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestSetupTracing_ReturnsShutdown(t *testing.T) {
	shutdown, err := SetupTracing(context.Background(), "market-arb-test", "", 2)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if shutdown == nil {
		t.Fatalf("shutdown func must not be nil")
	}
	_ = shutdown(context.Background())
}
