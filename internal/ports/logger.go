package ports

import "context"

// Logger — контракт логгера для всех слоёв. Реализация достаёт request_id/session/trace_id
// из ctx, поэтому в сообщения их передавать не нужно.
type Logger interface {
	Infof(ctx context.Context, format string, args ...any)
	Warnf(ctx context.Context, format string, args ...any)
	Errorf(ctx context.Context, format string, args ...any)
}
