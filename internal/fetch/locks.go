package fetch

import (
	"sync"

	"github.com/Gunvolt24/market_arb/internal/domain"
)

// keyLocks — неблокирующая взаимоисключающая блокировка по ключу локации.
type keyLocks struct {
	mu   sync.Mutex
	busy map[string]struct{}
}

func newKeyLocks() *keyLocks {
	return &keyLocks{busy: make(map[string]struct{})}
}

// acquire — занять ключ или вернуть AlreadyFetchingError; release идемпотентен.
func (l *keyLocks) acquire(key string) (func(), error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.busy[key]; ok {
		return nil, &domain.AlreadyFetchingError{Key: key}
	}
	l.busy[key] = struct{}{}

	var once sync.Once
	return func() {
		once.Do(func() {
			l.mu.Lock()
			delete(l.busy, key)
			l.mu.Unlock()
		})
	}, nil
}

func (l *keyLocks) held(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, ok := l.busy[key]
	return ok
}
