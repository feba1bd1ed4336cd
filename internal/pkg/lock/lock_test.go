package lock

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exerciseMutualExclusion(t *testing.T, l Locker, key string) {
	t.Helper()
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		inside  int
		maxSeen int
	)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			release, err := l.Acquire(context.Background(), key)
			if !assert.NoError(t, err) {
				return
			}
			mu.Lock()
			inside++
			if inside > maxSeen {
				maxSeen = inside
			}
			mu.Unlock()

			time.Sleep(5 * time.Millisecond)

			mu.Lock()
			inside--
			mu.Unlock()
			release()
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, maxSeen)
}

func TestLocalLocker_MutualExclusion(t *testing.T) {
	exerciseMutualExclusion(t, NewLocal(2*time.Second), "staff:1")
}

func TestLocalLocker_IndependentKeys(t *testing.T) {
	l := NewLocal(time.Second)
	r1, err := l.Acquire(context.Background(), "staff:1")
	require.NoError(t, err)
	defer r1()

	r2, err := l.Acquire(context.Background(), "staff:2")
	require.NoError(t, err)
	r2()
}

func TestLocalLocker_Timeout(t *testing.T) {
	l := NewLocal(30 * time.Millisecond)
	release, err := l.Acquire(context.Background(), "staff:1")
	require.NoError(t, err)
	defer release()

	_, err = l.Acquire(context.Background(), "staff:1")
	assert.ErrorIs(t, err, ErrLockTimeout)
}

func TestLocalLocker_ReleaseIsIdempotent(t *testing.T) {
	l := NewLocal(time.Second)
	release, err := l.Acquire(context.Background(), "staff:1")
	require.NoError(t, err)
	release()
	release()

	again, err := l.Acquire(context.Background(), "staff:1")
	require.NoError(t, err)
	again()
}

func TestLocalLocker_CancelledContext(t *testing.T) {
	l := NewLocal(time.Second)
	release, err := l.Acquire(context.Background(), "staff:1")
	require.NoError(t, err)
	defer release()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = l.Acquire(ctx, "staff:1")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRedisLocker(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR not set")
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	defer client.Close()
	require.NoError(t, client.Ping(context.Background()).Err())

	l := NewRedis(client, "homestay-test", time.Second, 2*time.Second)
	exerciseMutualExclusion(t, l, "staff:redis")

	short := NewRedis(client, "homestay-test", time.Second, 50*time.Millisecond)
	release, err := short.Acquire(context.Background(), "staff:held")
	require.NoError(t, err)
	_, err = short.Acquire(context.Background(), "staff:held")
	assert.ErrorIs(t, err, ErrLockTimeout)
	release()
}
