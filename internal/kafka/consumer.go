package kafka

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/Gunvolt24/market_arb/internal/ports"
	"github.com/Gunvolt24/market_arb/pkg/metrics"
)

// Проверка, что Consumer удовлетворяет интерфейсу верхнего уровня (порт приложения).
var _ ports.MessageConsumer = (*Consumer)(nil)

// reader — минимальный контракт над источником (kafka.Reader),
// чтобы легко подменять его моками в тестах.
type reader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Config() kafka.ReaderConfig
	Close() error
}

// messageHandler — зависимость на бизнес-логику,
// которая разбирает запрос сравнения, выполняет его и публикует результат.
type messageHandler interface {
	HandleMessage(ctx context.Context, raw []byte) error
}

// Consumer — обёртка над kafka.Reader + зависимостями (usecase, logger).
type Consumer struct {
	reader         reader
	handler        messageHandler
	log            ports.Logger
	processTimeout time.Duration
	retryInitial   time.Duration
	retryMax       time.Duration
	jitterRand     *rand.Rand
	closeOnce      sync.Once
}

// NewConsumer — конструктор. readerConfig() настроен на ручной коммит оффсетов.
func NewConsumer(cfg *ConsumerConfig, handler messageHandler, log ports.Logger) *Consumer {
	reader := kafka.NewReader(cfg.ReaderConfig())

	// Параметры по умолчанию (если не заданы в конфиге).
	// Сравнение включает полную загрузку двух рынков, поэтому таймаут обработки большой.
	pt := cfg.ProcessTimeout
	if pt <= 0 {
		pt = 10 * time.Minute
	}

	rInit := cfg.RetryInitial
	if rInit <= 0 {
		rInit = 1 * time.Second
	}

	rMax := cfg.RetryMax
	if rMax <= 0 {
		rMax = 30 * time.Second
	}

	return &Consumer{
		reader:         reader,
		handler:        handler,
		log:            log,
		processTimeout: pt,
		retryInitial:   rInit,
		retryMax:       rMax,
		// jitterRand — источник случайности, чтобы рассинхронизировать экспоненциальный backoff.
		jitterRand: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Run — основной цикл:
//  1. читаем сообщение без авто-коммита;
//  2. успешная обработка или невалидный запрос → CommitMessages;
//  3. временная ошибка → повтор того же сообщения с backoff, пока не получится или не отменят ctx.
//
// Следующее сообщение не читается, пока текущее не закоммичено: коммит более позднего оффсета
// неявно подтвердил бы и необработанный запрос. При отмене ctx оффсет не коммитится (at-least-once).
func (c *Consumer) Run(ctx context.Context) error {
	rc := c.reader.Config()
	c.log.Infof(ctx, "kafka consumer started topic=%s group_id=%s brokers=%v", rc.Topic, rc.GroupID, rc.Brokers)

	retry := c.retryInitial
	for {
		msg, fetchErr := c.reader.FetchMessage(ctx)
		if fetchErr != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			sleep := c.jitter(retry)
			c.log.Warnf(ctx, "fetch failed: %v (will retry in %s)", fetchErr, sleep)
			if !waitFor(ctx, sleep) {
				return ctx.Err()
			}
			retry = c.grow(retry)
			continue
		}
		retry = c.retryInitial
		metrics.KafkaMessagesConsumed.WithLabelValues(rc.Topic).Inc()

		if !c.processUntilDone(ctx, rc.Topic, &msg) {
			return ctx.Err()
		}
		c.commitSafely(ctx, &msg)
	}
}

// processUntilDone — обработка одного сообщения с повторами временных ошибок.
// false — ctx отменён до успешной обработки, коммитить нельзя.
func (c *Consumer) processUntilDone(ctx context.Context, topic string, msg *kafka.Message) bool {
	backoff := c.retryInitial
	for attempt := 1; ; attempt++ {
		if c.handleMessage(ctx, topic, msg) {
			return true
		}
		sleep := c.jitter(backoff)
		c.log.Warnf(ctx, "offset=%d attempt %d failed, retrying in %s", msg.Offset, attempt, sleep)
		if !waitFor(ctx, sleep) {
			return false
		}
		backoff = c.grow(backoff)
	}
}

// Close - закрывает reader. Вызывается при остановке приложения.
func (c *Consumer) Close() (retErr error) {
	c.closeOnce.Do(func() {
		retErr = c.reader.Close()
	})
	return retErr
}
