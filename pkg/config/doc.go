// Package config loads typed configuration from environment variables.
//
// It wraps github.com/caarlos0/env/v11 for struct parsing and
// github.com/joho/godotenv for optional .env files. Every infrastructure
// package in this module owns a Config struct with env tags, and the binary
// loads each one with Load only when the component is enabled. A Postgres
// URL is therefore never required when the service runs on the in-memory
// store.
//
// # Usage
//
// Declare a struct with env tags:
//
//	type Config struct {
//	    Addr    string        `env:"HTTP_ADDR" envDefault:":8080"`
//	    Timeout time.Duration `env:"HTTP_READ_TIMEOUT" envDefault:"10s"`
//	    Secret  string        `env:"JWT_SECRET,required"`
//	}
//
// Load it:
//
//	cfg, err := config.Load[Config]()
//	if err != nil {
//	    return err
//	}
//
// During startup, when a missing value should stop the process:
//
//	logCfg := config.MustLoad[logger.Config]()
//
// Load additional dotenv files or a prefix:
//
//	cfg, err := config.Load[Config](
//	    config.WithEnvFiles(".env", ".env.local"),
//	    config.WithPrefix("MEMBERAUTH_"),
//	)
//
// Values already present in the process environment win over values from
// dotenv files. Without WithEnvFiles a .env file in the working directory is
// read once per process if it exists.
//
// # Testing
//
// WithEnvironment parses from a map instead of the process environment and
// skips dotenv files, so tests can run in parallel without t.Setenv:
//
//	cfg, err := config.Load[pg.Config](config.WithEnvironment(map[string]string{
//	    "PG_CONN_URL": "postgres://localhost/test",
//	}))
//
// # Errors
//
// Load wraps failures with errors.Join:
//
//   - ErrParsingConfig when a value is missing or cannot be converted.
//   - ErrLoadingEnvFile when an explicitly listed dotenv file cannot be read.
package config
