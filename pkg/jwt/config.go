package jwt

import "time"

// Config holds the signer settings read from the environment.
type Config struct {
	Secret string        `env:"JWT_SECRET,required"`             // Secret is the HMAC key, at least 32 bytes.
	TTL    time.Duration `env:"JWT_TTL" envDefault:"24h"`        // TTL is the lifetime of issued tokens.
	Issuer string        `env:"JWT_ISSUER" envDefault:"giftshop"` // Issuer is written to and required in the "iss" claim.
}

// NewFromConfig creates a Signer from Config.
func NewFromConfig(cfg Config, opts ...Option) (*Signer, error) {
	base := []Option{WithTTL(cfg.TTL)}
	if cfg.Issuer != "" {
		base = append(base, WithIssuer(cfg.Issuer))
	}
	return NewFromString(cfg.Secret, append(base, opts...)...)
}
