package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	apiHttp "github.com/accountly/backend/internal/api/http"
	"github.com/accountly/backend/internal/cache"
	"github.com/accountly/backend/internal/config"
	"github.com/accountly/backend/internal/db"
	"github.com/accountly/backend/internal/queue"
	"github.com/accountly/backend/internal/queue/asynqserver"
	"github.com/accountly/backend/internal/repository"
	"github.com/accountly/backend/internal/server"
	"github.com/accountly/backend/internal/service"
	"github.com/accountly/backend/internal/worker"
	"github.com/accountly/backend/pkg/auth"
	"github.com/accountly/backend/pkg/email/smtp"
	"github.com/accountly/backend/pkg/hash"
	"github.com/accountly/backend/pkg/logger"
	"github.com/accountly/backend/pkg/otp"

	"go.uber.org/zap"
)

func main() {
	// Init cfg from environment variables
	cfg := config.MustLoad()

	// Dependencies
	appLogger := logger.SetupLogger(cfg.Env)
	defer appLogger.Sync() //nolint:errcheck

	logger.Info("starting auth backend", zap.String("env", cfg.Env))
	logger.Debug("debug messages are enabled")

	// Init database
	dbMySQL, err := db.New(cfg.Database)
	if err != nil {
		logger.Error("mysql connect problem", zap.Error(err))
		os.Exit(1)
	}
	defer func() {
		if err := dbMySQL.Close(); err != nil {
			logger.Error("error when closing mysql", zap.Error(err))
		}
	}()
	logger.Info("mysql connection done")

	// Verify queue transport reachability before accepting traffic
	redisClient, err := cache.NewRedis(cfg.Cache)
	if err != nil {
		logger.Error("redis connect problem", zap.Error(err))
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Error("error when closing redis", zap.Error(err))
		}
	}()
	logger.Info("redis connection done")

	hasher := hash.NewBcryptHasher(0)

	tokenManager, err := auth.NewManager(cfg.Auth.JWT)
	if err != nil {
		logger.Error("auth manager creation err", zap.Error(err))
		return
	}

	otpGenerator := otp.NewRandomGenerator()

	emailSender, err := smtp.NewSMTPSender(cfg.SMTP.From, cfg.SMTP.Pass, cfg.SMTP.Host, cfg.SMTP.Port)
	if err != nil {
		logger.Error("smtp sender creation failed", zap.Error(err))
		return
	}

	// Email delivery pipeline: notifier enqueues, asynq workers send
	redisOpt := asynqserver.RedisOptions(cfg.Cache)
	notifier := queue.NewEmailNotifier(redisOpt)
	defer func() {
		if err := notifier.Close(); err != nil {
			logger.Error("error when closing queue client", zap.Error(err))
		}
	}()

	workers := worker.NewWorkers(worker.Deps{
		EmailProvider: emailSender,
		Config:        cfg,
	})

	queueServer, queueMux := asynqserver.New(cfg.Cache, workers)
	if err := queueServer.Start(queueMux); err != nil {
		logger.Error("queue server start failed", zap.Error(err))
		os.Exit(1)
	}
	logger.Info("queue server started")

	// Services, Repos & API Handlers
	repos := repository.NewRepositories(dbMySQL)
	services := service.NewServices(service.Deps{
		Config:       cfg,
		Hasher:       hasher,
		OtpGenerator: otpGenerator,
		Repos:        repos,
		Notifier:     notifier,
	})
	handlers := apiHttp.NewHandlers(services, tokenManager, cfg)

	// HTTP Server
	srv := server.NewServer(cfg, handlers.Init(cfg))
	go func() {
		if err := srv.Run(); !errors.Is(err, http.ErrServerClosed) {
			logger.Error("error occurred while running http server", zap.Error(err))
		}
	}()
	logger.Info("server started")

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

	queueServer.Shutdown()

	logger.Info("app stopped")
}
