// Package main is the entry point for clamber.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/getsentry/sentry-go"
	"go.uber.org/zap"

	"github.com/Faultbox/clamber/internal/config"
	"github.com/Faultbox/clamber/internal/game"
	"github.com/Faultbox/clamber/internal/logger"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Parse CLI flags first
	config.ParseFlags()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		return 1
	}

	if path := config.WritePath(); path != "" {
		if err := cfg.SaveTo(path); err != nil {
			fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
			return 1
		}
		fmt.Printf("config written to %s\n", path)
		return 0
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		return 1
	}
	defer logger.Sync()

	if dsn := cfg.Logging.SentryDSN; dsn != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              dsn,
			AttachStacktrace: true,
		}); err != nil {
			logger.Warn("sentry disabled", zap.Error(err))
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}
	defer sentry.Recover()

	logger.Info("=== clamber ===",
		zap.String("profile", cfg.Character.Profile),
		zap.Bool("headless", cfg.Sim.Headless))
	logger.Sugar.Debugf("Config: %+v", cfg)

	// Create and run game
	g, err := game.New(cfg)
	if err != nil {
		logger.Error("failed to create game", zap.Error(err))
		return 1
	}
	defer g.Close()

	if err := g.Run(); err != nil {
		logger.Error("game error", zap.Error(err))
		return 1
	}

	logger.Info("game closed normally")
	return 0
}
