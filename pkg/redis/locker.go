package redis

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// releaseScript deletes the key only if it still holds our token, so an
// expired lock taken over by someone else is left alone.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// Locker is a distributed per-key lock built on SET NX PX.
// It lets several service replicas serialize work on the same member email.
type Locker struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
	wait   time.Duration
	poll   time.Duration
	logger *slog.Logger
}

type LockerOption func(*Locker)

// WithLockTTL sets how long a held lock survives if its owner dies.
func WithLockTTL(d time.Duration) LockerOption {
	return func(l *Locker) {
		if d > 0 {
			l.ttl = d
		}
	}
}

// WithLockWait bounds how long Lock waits for a busy key.
func WithLockWait(d time.Duration) LockerOption {
	return func(l *Locker) {
		if d > 0 {
			l.wait = d
		}
	}
}

func WithLockPrefix(p string) LockerOption {
	return func(l *Locker) { l.prefix = p }
}

func WithLockLogger(log *slog.Logger) LockerOption {
	return func(l *Locker) {
		if log != nil {
			l.logger = log
		}
	}
}

func NewLocker(client redis.UniversalClient, opts ...LockerOption) *Locker {
	l := &Locker{
		client: client,
		prefix: "memberauth:lock:",
		ttl:    10 * time.Second,
		wait:   5 * time.Second,
		poll:   50 * time.Millisecond,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// NewLockerFromConfig applies the LockTTL and LockWait settings of cfg.
func NewLockerFromConfig(client redis.UniversalClient, cfg Config, opts ...LockerOption) *Locker {
	base := []LockerOption{WithLockTTL(cfg.LockTTL), WithLockWait(cfg.LockWait)}
	return NewLocker(client, append(base, opts...)...)
}

// Lock blocks until key is acquired, the wait budget runs out or ctx is done.
func (l *Locker) Lock(ctx context.Context, key string) (func(), error) {
	ctx, cancel := context.WithTimeout(ctx, l.wait)
	defer cancel()

	k := l.prefix + key
	token := uuid.NewString()

	for {
		ok, err := l.client.SetNX(ctx, k, token, l.ttl).Result()
		if err != nil {
			if ctx.Err() != nil {
				return nil, errors.Join(ErrLockNotAcquired, ctx.Err())
			}
			return nil, errors.Join(ErrLockFailed, err)
		}
		if ok {
			return l.unlockFunc(k, token), nil
		}

		select {
		case <-ctx.Done():
			return nil, errors.Join(ErrLockNotAcquired, ctx.Err())
		case <-time.After(l.poll):
		}
	}
}

func (l *Locker) unlockFunc(key, token string) func() {
	var once sync.Once
	return func() {
		once.Do(func() { l.release(key, token) })
	}
}

func (l *Locker) release(key, token string) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := releaseScript.Run(ctx, l.client, []string{key}, token).Err(); err != nil {
		l.logger.WarnContext(ctx, "release redis lock", "key", key, "error", err)
	}
}
