// Package lock serializes writes that must not interleave, such as the
// conflict check and insert of shifts for one staff member.
package lock

import (
	"context"
	"errors"
	"time"
)

var ErrLockTimeout = errors.New("timed out waiting for lock")

// Locker hands out exclusive leases keyed by string. The returned release
// func must be called exactly once.
type Locker interface {
	Acquire(ctx context.Context, key string) (release func(), err error)
}

const (
	DefaultTTL       = 10 * time.Second
	DefaultWait      = 5 * time.Second
	retryInterval    = 25 * time.Millisecond
	maxRetryInterval = 200 * time.Millisecond
)

func nextBackoff(d time.Duration) time.Duration {
	d *= 2
	if d > maxRetryInterval {
		return maxRetryInterval
	}
	return d
}
