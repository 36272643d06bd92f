// Package mongo connects to MongoDB with mongo-driver/v2.
//
// Connect builds a client from Config with pool limits and retries the
// initial ping. Healthcheck adapts the client to HTTP readiness probes.
// Collections and indexes belong to the stores that use them.
//
// # Usage
//
//	cfg, err := config.Load[mongo.Config]()
//	if err != nil {
//	    return err
//	}
//	client, err := mongo.Connect(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//	defer client.Disconnect(context.Background())
//
//	store := member.NewMongoStore(client.Database(cfg.Database))
//	if err := store.EnsureIndexes(ctx); err != nil {
//	    return err
//	}
//
//	checks := map[string]httpserver.Check{"mongo": mongo.Healthcheck(client)}
//
// # Errors
//
//   - ErrEmptyConnectionURL when MONGODB_URL is empty.
//   - ErrFailedToConnectToMongo when every attempt fails or ctx ends.
//   - ErrHealthcheckFailed from Healthcheck.
package mongo
