// Package logger builds *slog.Logger instances with functional options,
// consistent attribute helpers and automatic injection of request-scoped
// values from context.Context.
//
// New picks a JSON or text handler and wraps it with LogHandlerDecorator,
// which runs every registered ContextExtractor before a record is written.
// The request ID and client IP packages ship extractors for this purpose.
//
// # Usage
//
//	var cfg logger.Config
//	config.MustLoad(&cfg)
//
//	log, err := logger.NewFromConfig(cfg,
//	    logger.WithContextExtractors(
//	        requestid.LoggerExtractor(),
//	        clientip.LoggerExtractor(),
//	    ),
//	)
//	if err != nil {
//	    panic(err)
//	}
//	logger.SetAsDefault(log)
//
//	log.InfoContext(ctx, "login succeeded", logger.UserID(u.ID))
//
// # Attributes
//
// Helpers such as Error, UserID and RequestID return an empty slog.Attr for
// nil input, so callers can pass them unconditionally:
//
//	log.Warn("allocation update rejected", logger.Error(err))
package logger
