package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	apiHttp "github.com/vibe-gaming/gatekeeper/internal/api/http"
	"github.com/vibe-gaming/gatekeeper/internal/cache"
	"github.com/vibe-gaming/gatekeeper/internal/config"
	"github.com/vibe-gaming/gatekeeper/internal/db"
	"github.com/vibe-gaming/gatekeeper/internal/queue/asynqserver"
	queueClient "github.com/vibe-gaming/gatekeeper/internal/queue/client"
	"github.com/vibe-gaming/gatekeeper/internal/ratelimit"
	"github.com/vibe-gaming/gatekeeper/internal/repository"
	"github.com/vibe-gaming/gatekeeper/internal/server"
	"github.com/vibe-gaming/gatekeeper/internal/service"
	"github.com/vibe-gaming/gatekeeper/pkg/auth"
	"github.com/vibe-gaming/gatekeeper/pkg/hash"
	"github.com/vibe-gaming/gatekeeper/pkg/logger"
	"github.com/vibe-gaming/gatekeeper/pkg/otp"
	"github.com/vibe-gaming/gatekeeper/pkg/validator"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

func main() {
	// Init cfg from environment variables
	cfg := config.MustLoad()

	// Dependencies
	logger.SetupLogger(cfg.Env, cfg.LogLevel)
	defer logger.Sync()

	logger.Info("starting gatekeeper api", zap.String("env", cfg.Env))
	logger.Debug("debug messages are enabled")

	// Init database
	dbMySQL, err := db.New(cfg.Database)
	if err != nil {
		logger.Fatal("mysql connect problem", zap.Error(err))
	}
	defer func() {
		if err := dbMySQL.Close(); err != nil {
			logger.Error("error when closing mysql", zap.Error(err))
		}
	}()
	logger.Info("mysql connection done")

	// Init redis
	redisClient, err := cache.NewRedis(cfg.Cache)
	if err != nil {
		logger.Fatal("redis connect problem", zap.Error(err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Error("error when closing redis", zap.Error(err))
		}
	}()
	logger.Info("redis connection done")

	limiter, err := ratelimit.New(cfg.RateLimit.Store, redisClient, cfg.RateLimit.Window)
	if err != nil {
		logger.Fatal("rate limiter creation failed", zap.Error(err))
	}

	asynqClient := asynq.NewClient(asynqserver.RedisOptions(cfg.Cache))
	defer func() {
		if err := asynqClient.Close(); err != nil {
			logger.Error("error when closing queue client", zap.Error(err))
		}
	}()

	tokenManager, err := auth.NewManager(cfg.Auth.JWT)
	if err != nil {
		logger.Fatal("auth manager creation err", zap.Error(err))
	}

	// Services, Repos & API Handlers
	repos := repository.NewRepositories(dbMySQL)
	services := service.NewServices(service.Deps{
		Config:       cfg,
		Hasher:       hash.NewBcryptHasher(cfg.Auth.BcryptCost),
		TokenManager: tokenManager,
		OtpGenerator: otp.NewGOTPGenerator(otp.CodeLength),
		Validator:    validator.New(),
		Limiter:      limiter,
		Notifier:     queueClient.NewNotifier(asynqClient, cfg.Queue.MaxRetry),
		Repos:        repos,
	})
	handlers := apiHttp.NewHandlers(services, tokenManager)

	// HTTP Server
	srv := server.NewServer(cfg.HttpServer, handlers.Init(cfg))
	go func() {
		if err := srv.Run(); !errors.Is(err, http.ErrServerClosed) {
			logger.Error("error occurred while running http server", zap.Error(err))
		}
	}()
	logger.Info("server started", zap.String("port", cfg.HttpServer.Port))

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	<-quit

	const timeout = 5 * time.Second

	ctx, shutdown := context.WithTimeout(context.Background(), timeout)
	defer shutdown()

	if err := srv.Stop(ctx); err != nil {
		logger.Error("failed to stop server", zap.Error(err))
	}

	logger.Info("app stopped")
}
