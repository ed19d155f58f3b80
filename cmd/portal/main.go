// Command portal runs the benefits portal HTTP service.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dmitrymomot/benefitskit/modules/portal"
	"github.com/dmitrymomot/benefitskit/pkg/allocation"
	"github.com/dmitrymomot/benefitskit/pkg/clientip"
	"github.com/dmitrymomot/benefitskit/pkg/config"
	"github.com/dmitrymomot/benefitskit/pkg/cookie"
	"github.com/dmitrymomot/benefitskit/pkg/csrf"
	"github.com/dmitrymomot/benefitskit/pkg/httpserver"
	"github.com/dmitrymomot/benefitskit/pkg/logger"
	mongox "github.com/dmitrymomot/benefitskit/pkg/mongo"
	"github.com/dmitrymomot/benefitskit/pkg/ratelimit"
	redisx "github.com/dmitrymomot/benefitskit/pkg/redis"
	"github.com/dmitrymomot/benefitskit/pkg/requestid"
	"github.com/dmitrymomot/benefitskit/pkg/sequence"
	"github.com/dmitrymomot/benefitskit/pkg/session"
	"github.com/dmitrymomot/benefitskit/pkg/user"
)

// appConfig holds settings that belong to no single package.
type appConfig struct {
	// SequenceBackend selects where user id counters live: "mongo" or "redis".
	SequenceBackend string `env:"PORTAL_SEQUENCE_BACKEND" envDefault:"mongo"`
	// AdminUserName, when set, is granted the admin flag at startup.
	AdminUserName string        `env:"PORTAL_ADMIN_USERNAME"`
	HealthTimeout time.Duration `env:"PORTAL_HEALTH_TIMEOUT" envDefault:"3s"`
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		slog.Error("portal stopped", logger.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	var (
		appCfg     appConfig
		logCfg     logger.Config
		mongoCfg   mongox.Config
		redisCfg   redisx.Config
		cookieCfg  cookie.Config
		sessionCfg session.Config
		csrfCfg    csrf.Config
		limitCfg   ratelimit.Config
		ipCfg      clientip.Config
		httpCfg    httpserver.Config
	)
	for _, load := range []func() error{
		func() error { return config.Load(&appCfg) },
		func() error { return config.Load(&logCfg) },
		func() error { return config.Load(&mongoCfg) },
		func() error { return config.Load(&redisCfg) },
		func() error { return config.Load(&cookieCfg) },
		func() error { return config.Load(&sessionCfg) },
		func() error { return config.Load(&csrfCfg) },
		func() error { return config.Load(&limitCfg) },
		func() error { return config.Load(&ipCfg) },
		func() error { return config.Load(&httpCfg) },
	} {
		if err := load(); err != nil {
			return err
		}
	}

	log, err := logger.NewFromConfig(logCfg, logger.WithContextExtractors(
		requestid.LoggerExtractor(),
		clientip.LoggerExtractor(),
		session.LoggerExtractor(),
	))
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	logger.SetAsDefault(log)

	db, err := mongox.NewWithDatabase(ctx, mongoCfg)
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := db.Client().Disconnect(shutdownCtx); err != nil {
			log.Error("mongodb disconnect failed", logger.Error(err))
		}
	}()

	rdb, err := redisx.Connect(ctx, redisCfg)
	if err != nil {
		return err
	}
	defer func() { _ = rdb.Close() }()

	userStore := user.NewMongoStore(db)
	allocationStore := allocation.NewMongoStore(db)
	sessionStore := session.NewMongoStore(db, session.WithRetention(sessionCfg.IdleTimeout))
	if err := mongox.EnsureIndexes(ctx, userStore, allocationStore, sessionStore); err != nil {
		return err
	}

	var seq sequence.Generator
	switch appCfg.SequenceBackend {
	case "mongo":
		seq = sequence.NewMongoStore(db)
	case "redis":
		seq = sequence.NewRedisStore(rdb, sequence.DefaultRedisPrefix)
	default:
		return fmt.Errorf("unknown sequence backend %q", appCfg.SequenceBackend)
	}

	users := user.NewService(userStore, seq, user.WithLogger(log))
	allocations := allocation.NewService(allocationStore, users, allocation.WithLogger(log))

	if err := bootstrapAdmin(ctx, users, appCfg.AdminUserName); err != nil {
		return err
	}

	cookies, err := cookie.NewFromConfig(cookieCfg)
	if err != nil {
		return fmt.Errorf("cookie manager: %w", err)
	}

	sessions := session.NewFromConfig(sessionCfg,
		session.WithStore(sessionStore),
		session.WithCookieManager(cookies),
		session.WithAdminChecker(users),
		session.WithLogger(log),
		session.WithErrorHandler(portal.RenderError),
	)
	defer func() { _ = sessions.Close() }()

	limiters, err := ratelimit.NewFromConfig(limitCfg, ratelimit.NewRedisStore(rdb, limitCfg.RedisPrefix))
	if err != nil {
		return err
	}

	guard := csrf.NewFromConfig(csrfCfg, session.CSRFToken,
		csrf.WithErrorHandler(portal.RenderError),
		csrf.WithLogger(log),
	)

	module := portal.New(portal.Options{
		Users:       users,
		Allocations: allocations,
		Sessions:    sessions,
		Limiters:    limiters,
		CSRF:        guard,
		ClientIP:    clientip.NewFromConfig(ipCfg),
		HealthChecks: []httpserver.Check{
			{Name: "mongodb", Ping: mongox.Healthcheck(db.Client())},
			{Name: "redis", Ping: redisx.Healthcheck(rdb)},
		},
		HealthTimeout: appCfg.HealthTimeout,
		Logger:        log,
	})

	return httpserver.NewFromConfig(httpCfg, httpserver.WithLogger(log)).Run(ctx, module.Handle())
}

// bootstrapAdmin grants the admin flag to an existing account.
func bootstrapAdmin(ctx context.Context, users user.Service, userName string) error {
	if userName == "" {
		return nil
	}

	u, err := users.GetByUserName(ctx, userName)
	if errors.Is(err, user.ErrUserNotFound) {
		slog.WarnContext(ctx, "admin account not found", logger.UserName(userName))
		return nil
	}
	if err != nil {
		return fmt.Errorf("admin bootstrap: %w", err)
	}
	if u.IsAdmin {
		return nil
	}
	return users.SetAdmin(ctx, u.ID, true)
}
