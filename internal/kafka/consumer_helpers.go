package kafka

import (
	"context"
	"errors"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/Gunvolt24/market_arb/pkg/ctxmeta"
	"github.com/Gunvolt24/market_arb/pkg/metrics"
	"github.com/Gunvolt24/market_arb/pkg/validate"
)

// handleMessage — одна попытка обработки. true: оффсет можно коммитить
// (успех или невалидный запрос), false: временная ошибка, сообщение повторяется.
func (c *Consumer) handleMessage(ctx context.Context, topic string, msg *kafka.Message) bool {
	attemptCtx, cancel := context.WithTimeout(messageContext(ctx, msg), c.processTimeout)
	defer cancel()

	err := c.handler.HandleMessage(attemptCtx, msg.Value)
	if err == nil {
		metrics.KafkaMessagesProcessed.WithLabelValues(topic).Inc()
		return true
	}

	metrics.KafkaMessagesFailed.WithLabelValues(topic).Inc()
	if errors.Is(err, validate.ErrInvalidRequest) {
		c.log.Warnf(ctx, "invalid comparison request offset=%d key=%s: %v (skipped)", msg.Offset, msg.Key, err)
		return true
	}
	c.log.Warnf(ctx, "comparison request offset=%d failed: %v", msg.Offset, err)
	return false
}

// messageContext — request_id из заголовка сообщения для сквозных логов.
func messageContext(ctx context.Context, msg *kafka.Message) context.Context {
	for _, h := range msg.Headers {
		if h.Key == headerRequestID && len(h.Value) > 0 {
			return ctxmeta.WithRequestID(ctx, string(h.Value))
		}
	}
	return ctx
}

// commitSafely — ошибка коммита только логируется: сообщение придёт повторно после ребаланса.
func (c *Consumer) commitSafely(ctx context.Context, msg *kafka.Message) {
	if err := c.reader.CommitMessages(ctx, *msg); err != nil {
		c.log.Warnf(ctx, "commit failed offset=%d: %v", msg.Offset, err)
	}
}

// waitFor — пауза d; false, если ctx отменён раньше.
func waitFor(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// grow — удвоение задержки с потолком retryMax.
func (c *Consumer) grow(d time.Duration) time.Duration {
	return min(2*d, c.retryMax)
}

// jitter — equal jitter: d/2 + rand[0, d/2].
func (c *Consumer) jitter(d time.Duration) time.Duration {
	if d <= 0 {
		return 0
	}
	half := d / 2
	return half + time.Duration(c.jitterRand.Int63n(int64(d-half)+1))
}
