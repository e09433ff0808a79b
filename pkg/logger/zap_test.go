package logger

import (
	"context"
	"testing"

	"github.com/Gunvolt24/market_arb/pkg/ctxmeta"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestZapLogger_AddsContextFields(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	l := NewFromZap(zap.New(core))

	ctx := ctxmeta.WithRequestID(context.Background(), "req-1")
	ctx = ctxmeta.WithSessionID(ctx, "sess-1")
	l.Warnf(ctx, "empty page limit reached after %d pages", 5)

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("want 1 entry, got %d", len(entries))
	}
	e := entries[0]
	if e.Level != zapcore.WarnLevel {
		t.Fatalf("level=%v, want warn", e.Level)
	}
	if e.Message != "empty page limit reached after 5 pages" {
		t.Fatalf("message=%q", e.Message)
	}
	fields := e.ContextMap()
	if fields["request_id"] != "req-1" || fields["session_id"] != "sess-1" {
		t.Fatalf("unexpected fields: %v", fields)
	}
}

func TestZapLogger_NoContextFields(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	l := NewFromZap(zap.New(core))

	l.Infof(context.Background(), "hello")
	if got := logs.All()[0].ContextMap(); len(got) != 0 {
		t.Fatalf("expected no fields, got %v", got)
	}
}
