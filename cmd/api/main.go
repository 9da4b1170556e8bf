package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"go-timeclock/internal/app"
	"go-timeclock/internal/bootstrap"
	"go-timeclock/internal/config"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger, err := app.NewLogger(cfg)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	deps, err := app.NewDependencies(cfg, logger)
	if err != nil {
		logger.Fatal("connect dependencies failed", zap.Error(err))
	}
	defer deps.Close()

	a, err := app.BuildApp(ctx, deps)
	if err != nil {
		logger.Fatal("build app failed", zap.Error(err))
	}

	err = bootstrap.RunHTTPServer(ctx, a.Router, bootstrap.ServerConfig{
		Port:         cfg.Port,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}, deps.Audit)
	if err != nil {
		logger.Error("http server stopped", zap.Error(err))
	}
}
