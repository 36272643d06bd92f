// Package redis provides helpers for connecting to Redis and a distributed
// per-key lock used by the member service.
//
// The package wraps the go-redis/v9 client and adds:
//
//   - Connect, which parses the connection URL and retries until the server
//     answers PING or the connect budget runs out.
//   - Locker, a per-key lock built on SET NX with a TTL. Replicas of the
//     service take it around registration and Kakao account linking so that
//     the check-then-insert on one email never interleaves.
//   - Healthcheck, which adapts a client to HTTP readiness probes.
//
// Configuration is described by the Config struct whose fields are read from
// REDIS_* variables via pkg/config. An empty REDIS_URL disables Redis and the
// service falls back to its in-process lock.
//
// # Usage
//
// Load configuration and connect:
//
//	cfg, err := config.Load[redis.Config]()
//	if err != nil {
//	    return err
//	}
//	if !cfg.Enabled() {
//	    return nil
//	}
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
// Serialize work on one key:
//
//	locker := redis.NewLockerFromConfig(client, cfg, redis.WithLockLogger(log))
//	unlock, err := locker.Lock(ctx, "user@example.com")
//	if err != nil {
//	    return err
//	}
//	defer unlock()
//
// Lock polls until the key is free, the LockWait budget runs out or ctx is
// done. Each acquisition stores a random token, and unlock deletes the key
// through a compare-and-delete script. A holder whose lock expired after
// LockTTL therefore cannot release a lock that another owner has since taken.
// The returned unlock func is safe to call more than once.
//
// Register a readiness check:
//
//	checks := map[string]httpserver.Check{"redis": redis.Healthcheck(client)}
//
// # Errors
//
// Sentinel errors wrap the underlying go-redis errors with errors.Join:
//
//   - ErrEmptyConnectionURL and ErrFailedToParseRedisConnString for bad config.
//   - ErrRedisNotReady when Connect gives up.
//   - ErrLockNotAcquired when the wait budget or ctx ends before the key is free.
//   - ErrLockFailed when Redis itself returns an error while locking.
//   - ErrHealthcheckFailed from Healthcheck.
//
// # See Also
//
//   - https://github.com/redis/go-redis for the underlying driver
//   - https://redis.io/docs/latest/develop/use/patterns/distributed-locks/ for the single-instance lock pattern
package redis
