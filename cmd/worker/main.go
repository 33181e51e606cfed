package main

import (
	"github.com/vibe-gaming/gatekeeper/internal/config"
	"github.com/vibe-gaming/gatekeeper/internal/queue/asynqserver"
	"github.com/vibe-gaming/gatekeeper/internal/worker"
	"github.com/vibe-gaming/gatekeeper/pkg/email"
	"github.com/vibe-gaming/gatekeeper/pkg/email/smtp"
	"github.com/vibe-gaming/gatekeeper/pkg/logger"

	"go.uber.org/zap"
)

func main() {
	cfg := config.MustLoad()

	logger.SetupLogger(cfg.Env, cfg.LogLevel)
	defer logger.Sync()

	logger.Info("starting gatekeeper worker", zap.String("env", cfg.Env))

	email.TemplatesDir = cfg.Email.TemplatesDir

	emailSender, err := smtp.NewSMTPSender(cfg.SMTP.From, cfg.SMTP.Pass, cfg.SMTP.Host, cfg.SMTP.Port)
	if err != nil {
		logger.Fatal("smtp sender creation failed", zap.Error(err))
	}

	workers := worker.NewWorkers(worker.Deps{
		EmailProvider: emailSender,
		Config:        cfg,
	})

	// Run blocks until SIGTERM or SIGINT and drains in-flight tasks.
	srv, mux := asynqserver.New(cfg, workers)
	if err := srv.Run(mux); err != nil {
		logger.Fatal("queue server stopped", zap.Error(err))
	}

	logger.Info("worker stopped")
}
