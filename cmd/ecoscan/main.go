package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fekuna/ecoscan/config"
	"github.com/fekuna/ecoscan/internal/auth/usecase"
	"github.com/fekuna/ecoscan/internal/logger"
	"github.com/joho/godotenv"
)

func main() {
	// 1. Load Configuration
	_ = godotenv.Load() // Load .env file if it exists
	cfg := config.LoadEnv()

	// 2. Initialize Logger
	logConfig := &logger.ZapLoggerConfig{
		IsDevelopment:     false,
		Encoding:          cfg.Logger.Encoding,
		Level:             cfg.Logger.Level,
		DisableCaller:     cfg.Logger.DisableCaller,
		DisableStacktrace: cfg.Logger.DisableStacktrace,
		Filename:          cfg.Logger.Filename,
	}
	if cfg.Server.AppEnv == "development" {
		logConfig.IsDevelopment = true
		logConfig.Encoding = "console"
		logConfig.Level = "debug"
	}

	appLogger := logger.NewZapLogger(logConfig)
	defer appLogger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := newApp(cfg, appLogger, os.Stdin, os.Stdout)
	defer a.close()

	if err := newRootCmd(a).ExecuteContext(ctx); err != nil {
		var ue *usecase.UserError
		if errors.As(err, &ue) {
			fmt.Fprintln(os.Stderr, ue.Message)
		} else {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		a.close()
		os.Exit(1)
	}
}
