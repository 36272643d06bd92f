package redis

import "time"

// Config is read from REDIS_* variables. An empty URL means Redis is not used.
type Config struct {
	ConnectionURL  string        `env:"REDIS_URL"`                              // redis://:password@localhost:6379/0
	RetryAttempts  int           `env:"REDIS_RETRY_ATTEMPTS" envDefault:"3"`    // connection attempts before giving up
	RetryInterval  time.Duration `env:"REDIS_RETRY_INTERVAL" envDefault:"2s"`   // pause between attempts
	ConnectTimeout time.Duration `env:"REDIS_CONNECT_TIMEOUT" envDefault:"15s"` // overall budget for Connect
	LockTTL        time.Duration `env:"REDIS_LOCK_TTL" envDefault:"10s"`        // expiry of a held member lock
	LockWait       time.Duration `env:"REDIS_LOCK_WAIT" envDefault:"5s"`        // how long Lock waits for a busy key
}

// Enabled reports whether a connection URL was configured.
func (c Config) Enabled() bool { return c.ConnectionURL != "" }
