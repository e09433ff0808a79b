package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/Gunvolt24/market_arb/internal/domain"
	"github.com/Gunvolt24/market_arb/internal/ports"
	"github.com/Gunvolt24/market_arb/pkg/ctxmeta"
	"github.com/Gunvolt24/market_arb/pkg/metrics"
)

var _ ports.ResultPublisher = (*Publisher)(nil)

// writer — минимальный контракт над kafka.Writer.
type writer interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Publisher — публикация результатов сравнения; ключ сообщения — идентификатор сессии,
// поэтому результаты одной сессии попадают в одну партицию по порядку.
type Publisher struct {
	writer    writer
	topic     string
	log       ports.Logger
	closeOnce sync.Once
}

// NewPublisher — конструктор поверх kafka.Writer (хеш-балансировка по ключу, подтверждение лидера).
func NewPublisher(cfg *PublisherConfig, log ports.Logger) *Publisher {
	wt := cfg.WriteTimeout
	if wt <= 0 {
		wt = 10 * time.Second
	}
	w := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Topic:                  cfg.Topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		WriteTimeout:           wt,
		AllowAutoTopicCreation: true,
	}
	return &Publisher{writer: w, topic: cfg.Topic, log: log}
}

// Publish — сериализовать и отправить один результат.
func (p *Publisher) Publish(ctx context.Context, result domain.ComparisonResult) error {
	if result.Opportunities == nil {
		result.Opportunities = []domain.Opportunity{}
	}
	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}

	msg := kafka.Message{Key: []byte(result.SessionID), Value: payload}
	if rid, ok := ctxmeta.RequestIDFromContext(ctx); ok && rid != "" {
		msg.Headers = append(msg.Headers, kafka.Header{Key: headerRequestID, Value: []byte(rid)})
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("write result: %w", err)
	}
	metrics.KafkaMessagesPublished.WithLabelValues(p.topic).Inc()
	p.log.Infof(ctx, "result published topic=%s session=%s bytes=%d", p.topic, result.SessionID, len(payload))
	return nil
}

// Close — закрывает writer (с дожиданием отправки буфера).
func (p *Publisher) Close() (retErr error) {
	p.closeOnce.Do(func() {
		retErr = p.writer.Close()
	})
	return retErr
}
