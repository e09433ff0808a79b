package ports

import "context"

// MessageConsumer — фоновый источник запросов на сравнение.
// Run блокируется до отмены ctx или фатальной ошибки; Close идемпотентен.
type MessageConsumer interface {
	Run(ctx context.Context) error
	Close() error
}
