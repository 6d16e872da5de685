// Package main is the entry point for the Ironsight client.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/ironsight/internal/config"
	"github.com/Faultbox/ironsight/internal/game"
	"github.com/Faultbox/ironsight/internal/logger"
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== Ironsight ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	g, err := game.New(cfg, config.Path())
	if err != nil {
		logger.Error("failed to start", zap.Error(err))
		os.Exit(1)
	}
	defer g.Close()

	if err := g.Run(); err != nil {
		logger.Error("client error", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("client closed normally")
}
