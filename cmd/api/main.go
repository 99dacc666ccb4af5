// @title                       taskhub API
// @version                     1.0
// @description                 Credential login, role-gated todos and pass-through calls to the user directory and fruit classifier.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Enter 'Bearer' [space] and then your valid token
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/apiintegration/taskhub/internal/api"
	"github.com/apiintegration/taskhub/internal/core/service"
	"github.com/apiintegration/taskhub/internal/infrastructure/config"
	mongodb "github.com/apiintegration/taskhub/internal/infrastructure/db/mongo"
	redisdb "github.com/apiintegration/taskhub/internal/infrastructure/db/redis"
	"github.com/apiintegration/taskhub/internal/infrastructure/http/handlers"
	"github.com/apiintegration/taskhub/internal/infrastructure/queue"
	"github.com/apiintegration/taskhub/internal/infrastructure/upstream"
	"github.com/apiintegration/taskhub/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		log := logger.Get()
		log.Fatal().Err(err).Msg("taskhub stopped")
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		// The logger is not configured yet; fall back to defaults so the
		// missing-secret error is still reported as JSON.
		logger.Init(logger.Options{Service: "taskhub"})
		return err
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "taskhub",
		Env:     cfg.Env,
	})

	tokens, err := service.NewTokenService(cfg.JWTSecret)
	if err != nil {
		return err
	}

	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return err
	}
	defer func() {
		dctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := mongoClient.Disconnect(dctx); err != nil {
			log.Warn().Err(err).Msg("mongo disconnect")
		}
	}()

	redisClient, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
	if err != nil {
		return err
	}
	defer redisClient.Close()

	users := mongodb.NewUserRepository(db)
	todos := mongodb.NewTodoRepository(db)
	if err := mongodb.EnsureIndexes(ctx, users, todos); err != nil {
		return err
	}

	dispatcher := queue.NewAuditDispatcher(cfg.Audit.Workers, mongodb.NewAuditRepository(db), logger.Component("audit"))
	dispatcher.Start(ctx)

	client := upstream.NewClient(upstream.Config{
		DirectoryURL:  cfg.Upstream.DirectoryURL,
		ClassifierURL: cfg.Upstream.ClassifierURL,
		Timeout:       cfg.Upstream.Timeout,
	})

	e := api.NewRouter(api.Dependencies{
		Auth:  service.NewAuthService(users, tokens, cfg.BcryptCost, logger.Component("auth")),
		Gate:  service.NewGate(tokens, logger.Component("gate")),
		Todos: service.NewTodoService(todos, dispatcher, logger.Component("todos")),
		Proxy: service.NewProxyService(client, redisdb.NewResponseCache(redisClient), cfg.Upstream.CacheTTL, logger.Component("proxy")),
		Readiness: map[string]handlers.Pinger{
			"mongodb": handlers.MongoPinger(mongoClient),
			"redis":   handlers.RedisPinger(redisClient),
		},
		Log: log,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           e,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	log.Info().Msg("shutdown complete")
	return nil
}
