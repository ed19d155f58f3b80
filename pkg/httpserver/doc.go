// Package httpserver runs the portal's HTTP server with graceful shutdown.
//
//	var cfg httpserver.Config
//	config.MustLoad(&cfg)
//
//	srv := httpserver.NewFromConfig(cfg, httpserver.WithLogger(log))
//	if err := srv.Run(ctx, router); err != nil {
//		log.Error("server stopped", logger.Error(err))
//	}
//
// Run returns when ctx is cancelled or SIGINT/SIGTERM arrives, after
// in-flight requests finish or the shutdown timeout elapses.
//
// HealthCheckHandler serves JSON liveness/readiness checks over named
// dependency checks such as mongo.Healthcheck and redis.Healthcheck.
package httpserver
