// Package redis connects to the Redis instance that backs the shared rate
// limit windows and the optional counter store.
//
//	var cfg redis.Config
//	config.MustLoad(&cfg)
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer client.Close()
//
// Connect fails with ErrRedisNotReady when the server does not answer within
// the configured attempts, and with ErrFailedToParseRedisConnString for a bad
// REDIS_URL. Healthcheck returns a ping check for the readiness endpoint.
package redis
