package auth

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyedMutex(t *testing.T) {
	t.Parallel()

	t.Run("serializes one key", func(t *testing.T) {
		m := NewKeyedMutex()
		ctx := context.Background()

		var (
			wg      sync.WaitGroup
			mu      sync.Mutex
			inside  int
			maxSeen int
		)
		for range 10 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				unlock, err := m.Lock(ctx, "k")
				if !assert.NoError(t, err) {
					return
				}
				mu.Lock()
				inside++
				maxSeen = max(maxSeen, inside)
				mu.Unlock()

				time.Sleep(time.Millisecond)

				mu.Lock()
				inside--
				mu.Unlock()
				unlock()
			}()
		}
		wg.Wait()

		assert.Equal(t, 1, maxSeen)
		assert.Equal(t, 0, m.size())
	})

	t.Run("different keys do not block", func(t *testing.T) {
		m := NewKeyedMutex()
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()

		unlockA, err := m.Lock(ctx, "a")
		require.NoError(t, err)
		unlockB, err := m.Lock(ctx, "b")
		require.NoError(t, err)
		assert.Equal(t, 2, m.size())

		unlockA()
		unlockB()
		assert.Equal(t, 0, m.size())
	})

	t.Run("context cancel while waiting", func(t *testing.T) {
		m := NewKeyedMutex()
		unlock, err := m.Lock(context.Background(), "k")
		require.NoError(t, err)

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()
		_, err = m.Lock(ctx, "k")
		require.ErrorIs(t, err, context.DeadlineExceeded)

		unlock()
		assert.Equal(t, 0, m.size())
	})

	t.Run("unlock is idempotent", func(t *testing.T) {
		m := NewKeyedMutex()
		unlock, err := m.Lock(context.Background(), "k")
		require.NoError(t, err)

		unlock()
		unlock()
		assert.Equal(t, 0, m.size())

		unlock, err = m.Lock(context.Background(), "k")
		require.NoError(t, err)
		unlock()
	})
}
