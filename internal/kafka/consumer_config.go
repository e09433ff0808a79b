package kafka

import (
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
)

// headerRequestID — заголовок сообщения с идентификатором запроса.
const headerRequestID = "X-Request-ID"

// ConsumerConfig — параметры потребителя запросов сравнения.
type ConsumerConfig struct {
	Brokers     []string
	Topic       string
	GroupID     string
	StartOffset string

	ProcessTimeout time.Duration
	RetryInitial   time.Duration
	RetryMax       time.Duration
}

// Запросы сравнения — небольшие JSON-документы.
const (
	readerMaxBytes = 1 << 20
	readerMaxWait  = 500 * time.Millisecond
)

// ReaderConfig — конфигурация kafka.Reader с ручным коммитом оффсетов (CommitInterval = 0).
func (c *ConsumerConfig) ReaderConfig() kafka.ReaderConfig {
	return kafka.ReaderConfig{
		Brokers:        c.Brokers,
		GroupID:        c.GroupID,
		Topic:          c.Topic,
		MinBytes:       1,
		MaxBytes:       readerMaxBytes,
		MaxWait:        readerMaxWait,
		CommitInterval: 0,
		StartOffset:    parseStartOffset(c.StartOffset),
	}
}

// parseStartOffset — "first" читает группу с начала топика, всё остальное с конца.
func parseStartOffset(s string) int64 {
	if strings.EqualFold(strings.TrimSpace(s), "first") {
		return kafka.FirstOffset
	}
	return kafka.LastOffset
}

// PublisherConfig — параметры публикации результатов.
type PublisherConfig struct {
	Brokers      []string
	Topic        string
	WriteTimeout time.Duration
}
