package config

import (
	"errors"
	"fmt"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var defaultEnvLoaded sync.Once

type options struct {
	files       []string
	environment map[string]string
	prefix      string
}

type Option func(*options)

// WithEnvFiles loads the given dotenv files before parsing. Variables that
// are already set in the process environment are not overridden.
func WithEnvFiles(files ...string) Option {
	return func(o *options) { o.files = append(o.files, files...) }
}

// WithEnvironment parses from env instead of the process environment.
// Dotenv files are not read in this mode.
func WithEnvironment(env map[string]string) Option {
	return func(o *options) { o.environment = env }
}

// WithPrefix prepends prefix to every variable name.
func WithPrefix(prefix string) Option {
	return func(o *options) { o.prefix = prefix }
}

// Load parses environment variables into a new T using its env struct tags.
//
// Unless WithEnvFiles or WithEnvironment is given, a .env file in the working
// directory is loaded once per process if it exists.
//
//	cfg, err := config.Load[pg.Config]()
func Load[T any](opts ...Option) (T, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	var cfg T
	if o.environment == nil {
		if err := loadEnvFiles(o.files); err != nil {
			return cfg, err
		}
	}

	if err := env.ParseWithOptions(&cfg, env.Options{
		Environment: o.environment,
		Prefix:      o.prefix,
	}); err != nil {
		return cfg, errors.Join(ErrParsingConfig, err)
	}
	return cfg, nil
}

// MustLoad is Load that panics on error. Use it only during startup.
func MustLoad[T any](opts ...Option) T {
	cfg, err := Load[T](opts...)
	if err != nil {
		panic(fmt.Sprintf("config: %T: %v", cfg, err))
	}
	return cfg
}

func loadEnvFiles(files []string) error {
	if len(files) == 0 {
		defaultEnvLoaded.Do(func() {
			// A missing .env is normal outside local development.
			_ = godotenv.Load()
		})
		return nil
	}
	if err := godotenv.Load(files...); err != nil {
		return errors.Join(ErrLoadingEnvFile, err)
	}
	return nil
}
