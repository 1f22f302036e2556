package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/talentgate/jobboard/internal/api"
	"github.com/talentgate/jobboard/internal/api/handler"
	"github.com/talentgate/jobboard/internal/core/access"
	"github.com/talentgate/jobboard/internal/core/service"
	"github.com/talentgate/jobboard/internal/infrastructure/config"
	"github.com/talentgate/jobboard/internal/infrastructure/db/mongo"
	"github.com/talentgate/jobboard/internal/infrastructure/db/postgres"
	"github.com/talentgate/jobboard/internal/infrastructure/db/redis"
	"github.com/talentgate/jobboard/internal/infrastructure/queue"
	"github.com/talentgate/jobboard/internal/infrastructure/token"
	"github.com/talentgate/jobboard/pkg/logger"
)

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: "jobboard",
		Fields:  map[string]string{"env": cfg.Env},
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := postgres.Connect(ctx, postgres.Config{URL: cfg.Postgres.URL, MaxConns: cfg.Postgres.MaxConns})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("failed to apply schema")
	}

	mongoClient, auditDB, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to mongo")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = mongoClient.Disconnect(disconnectCtx)
	}()

	auditRepo := mongo.NewAuditRepository(auditDB)
	if err := auditRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to create audit indexes")
	}

	rdb, err := redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer rdb.Close()

	users := postgres.NewUserRepository(pool)
	jobs := postgres.NewJobRepository(pool)
	applications := postgres.NewApplicationRepository(pool)
	profiles := postgres.NewProfileRepository(pool)
	sessions := redis.NewSessionStore(rdb)
	tokens := token.NewJWTCodec(cfg.JWTSecret)

	auditor := queue.NewAuditDispatcher(cfg.Audit.Workers, auditRepo, logger.Component("audit"))
	auditor.Start(ctx)
	defer auditor.Stop()

	authz := access.NewAuthorizer(users, logger.Component("authz"))
	svcLog := logger.Component("service")

	e := api.NewRouter(api.Dependencies{
		Auth:         service.NewAuthService(users, sessions, tokens, cfg.Session.TTL, svcLog),
		Jobs:         service.NewJobService(jobs, authz, auditor, svcLog),
		Applications: service.NewApplicationService(applications, jobs, profiles, authz, auditor, svcLog),
		Profiles:     service.NewProfileService(users, profiles, authz, svcLog),
		Admin:        service.NewAdminService(users, sessions, authz, auditor, svcLog),
		Sessions:     service.NewSessionResolver(tokens, sessions),
		Roles:        users,
		Routes:       access.DefaultRoutes(),
		Health: map[string]handler.DependencyCheck{
			"postgres": pool.Ping,
			"mongo":    mongo.Check(mongoClient),
			"redis":    redis.Check(rdb),
		},
		SecureCookie: cfg.Session.SecureCookie,
		Logger:       log,
	})

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server failed")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("jobboard started")

	<-ctx.Done()
	log.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	log.Info().Msg("jobboard stopped")
}
