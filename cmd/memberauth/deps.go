package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/giftshop/memberauth/pkg/auth"
	"github.com/giftshop/memberauth/pkg/config"
	"github.com/giftshop/memberauth/pkg/httpserver"
	"github.com/giftshop/memberauth/pkg/logger"
	"github.com/giftshop/memberauth/pkg/mongo"
	"github.com/giftshop/memberauth/pkg/pg"
	"github.com/giftshop/memberauth/pkg/redis"
	"github.com/giftshop/memberauth/svc/member"
)

// dependencies are the infrastructure clients selected by configuration.
type dependencies struct {
	store   auth.MemberStore
	locker  auth.Locker
	checks  map[string]httpserver.Check
	closers []func()
}

func (d *dependencies) close() {
	for i := len(d.closers) - 1; i >= 0; i-- {
		d.closers[i]()
	}
}

func newDependencies(ctx context.Context, app AppConfig, log *slog.Logger) (*dependencies, error) {
	d := &dependencies{checks: make(map[string]httpserver.Check)}

	if err := d.openStore(ctx, app.Store, log); err != nil {
		d.close()
		return nil, err
	}
	if err := d.openLocker(ctx, log); err != nil {
		d.close()
		return nil, err
	}
	return d, nil
}

func (d *dependencies) openStore(ctx context.Context, kind string, log *slog.Logger) error {
	switch kind {
	case "memory", "":
		d.store = member.NewMemoryStore()
		log.WarnContext(ctx, "using in-memory member store, data is lost on restart")

	case "postgres":
		cfg, err := config.Load[pg.Config]()
		if err != nil {
			return err
		}
		pool, err := pg.Connect(ctx, cfg)
		if err != nil {
			return err
		}
		d.closers = append(d.closers, pool.Close)

		if cfg.AutoMigrate {
			if err := pg.Migrate(ctx, pool, member.Migrations, member.MigrationsDir, cfg, log); err != nil {
				return err
			}
		}
		d.store = member.NewPostgresStore(pool)
		d.checks["postgres"] = pg.Healthcheck(pool)

	case "mongo":
		cfg, err := config.Load[mongo.Config]()
		if err != nil {
			return err
		}
		client, err := mongo.Connect(ctx, cfg)
		if err != nil {
			return err
		}
		d.closers = append(d.closers, func() {
			if err := client.Disconnect(context.Background()); err != nil {
				log.Error("mongo disconnect failed", logger.Error(err))
			}
		})

		store := member.NewMongoStore(client.Database(cfg.Database))
		if err := store.EnsureIndexes(ctx); err != nil {
			return err
		}
		d.store = store
		d.checks["mongo"] = mongo.Healthcheck(client)

	default:
		return fmt.Errorf("unknown APP_STORE %q: want memory, postgres or mongo", kind)
	}

	log.InfoContext(ctx, "member store ready", slog.String("store", kind))
	return nil
}

// openLocker uses Redis when REDIS_URL is set so that replicas sharing a
// store serialize on the same keys. Otherwise the service keeps its
// in-process lock.
func (d *dependencies) openLocker(ctx context.Context, log *slog.Logger) error {
	cfg, err := config.Load[redis.Config]()
	if err != nil {
		return err
	}
	if !cfg.Enabled() {
		return nil
	}

	client, err := redis.Connect(ctx, cfg)
	if err != nil {
		return err
	}
	d.closers = append(d.closers, func() {
		if err := client.Close(); err != nil {
			log.Error("redis close failed", logger.Error(err))
		}
	})

	d.locker = redis.NewLockerFromConfig(client, cfg, redis.WithLockLogger(log))
	d.checks["redis"] = redis.Healthcheck(client)
	log.InfoContext(ctx, "redis member lock enabled")
	return nil
}
