// Package pg wires PostgreSQL through pgx/v5 and goose.
//
// The package adds:
//
//   - Connect, which builds a *pgxpool.Pool from Config and retries the
//     first ping.
//   - Migrate, which applies goose migrations from an fs.FS, typically an
//     embed.FS owned by the store that needs the schema. goose output goes to
//     the service's slog logger.
//   - Healthcheck, which adapts the pool to HTTP readiness probes.
//   - IsDuplicateKeyError and IsNotFoundError, which let stores translate
//     driver errors into domain errors without importing pgconn.
//
// Configuration is described by Config and read from PG_* variables.
//
// # Usage
//
// Connect and migrate:
//
//	cfg, err := config.Load[pg.Config]()
//	if err != nil {
//	    return err
//	}
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//	defer pool.Close()
//
//	if cfg.AutoMigrate {
//	    if err := pg.Migrate(ctx, pool, member.Migrations, member.MigrationsDir, cfg, log); err != nil {
//	        return err
//	    }
//	}
//
// Translate driver errors in a store:
//
//	if _, err := db.Exec(ctx, insertMemberQuery, args...); err != nil {
//	    if pg.IsDuplicateKeyError(err) {
//	        return nil, auth.ErrDuplicateEmail
//	    }
//	    return nil, err
//	}
//
// Register a readiness check:
//
//	checks := map[string]httpserver.Check{"postgres": pg.Healthcheck(pool)}
//
// Set PG_AUTO_MIGRATE=false when migrations run as a separate deploy step.
// The migration history table defaults to schema_migrations.
//
// # Errors
//
//   - ErrEmptyConnectionString and ErrFailedToParseDBConfig for bad config.
//   - ErrFailedToOpenDBConnection when the pool never answers a ping.
//   - ErrFailedToApplyMigrations from Migrate.
//   - ErrHealthcheckFailed from Healthcheck.
package pg
