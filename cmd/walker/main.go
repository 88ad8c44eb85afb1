// Package main is the entry point for the WikiWalk desktop walker.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/wikiwalk/internal/config"
	"github.com/Faultbox/wikiwalk/internal/game/desktop"
	"github.com/Faultbox/wikiwalk/internal/logger"
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

	logger.Info("=== WikiWalk ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	g, err := desktop.New(cfg)
	if err != nil {
		logger.Error("failed to create walker", zap.Error(err))
		os.Exit(1)
	}
	defer g.Close()

	if err := g.Run(); err != nil {
		logger.Error("walker error", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("walker closed normally")
}
