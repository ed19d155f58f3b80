// Package mongo manages the MongoDB connection shared by the document stores.
//
// Configuration comes from MONGODB_* environment variables. New retries the
// initial connection and fails fast with ErrFailedToConnectToMongo once the
// attempts are exhausted:
//
//	var cfg mongo.Config
//	config.MustLoad(&cfg)
//
//	db, err := mongo.NewWithDatabase(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer db.Client().Disconnect(context.Background())
//
// Stores that own indexes implement IndexEnsurer and are initialised together:
//
//	err = mongo.EnsureIndexes(ctx, userStore, allocationStore, sessionStore)
//
// Healthcheck returns a ping check for the readiness endpoint.
package mongo
