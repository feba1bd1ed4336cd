package lock

import (
	"context"
	"sync"
	"time"
)

type localLocker struct {
	mu   sync.Mutex
	held map[string]chan struct{}
	wait time.Duration
}

// NewLocal returns a Locker scoped to this process.
func NewLocal(wait time.Duration) Locker {
	if wait <= 0 {
		wait = DefaultWait
	}
	return &localLocker{held: make(map[string]chan struct{}), wait: wait}
}

func (l *localLocker) Acquire(ctx context.Context, key string) (func(), error) {
	ctx, cancel := context.WithTimeout(ctx, l.wait)
	defer cancel()

	for {
		l.mu.Lock()
		ch, busy := l.held[key]
		if !busy {
			done := make(chan struct{})
			l.held[key] = done
			l.mu.Unlock()

			var once sync.Once
			return func() {
				once.Do(func() {
					l.mu.Lock()
					delete(l.held, key)
					l.mu.Unlock()
					close(done)
				})
			}, nil
		}
		l.mu.Unlock()

		select {
		case <-ch:
		case <-ctx.Done():
			if ctx.Err() == context.DeadlineExceeded {
				return nil, ErrLockTimeout
			}
			return nil, ctx.Err()
		}
	}
}
