// Package main is the entry point for terrainbake, the headless TimeJump
// terrain baker.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/Faultbox/timejump/internal/bake"
	"github.com/Faultbox/timejump/internal/config"
	"github.com/Faultbox/timejump/internal/logger"
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
	if err := logger.InitWithFileConfig(cfg.Logging.Level, cfg.Logging.FileConfig(), true); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== TimeJump terrain bake ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		logger.Error("bake failed", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	b, err := bake.New(ctx, cfg)
	if err != nil {
		return err
	}
	defer b.Close()

	res, err := b.Run(ctx)
	if err != nil {
		return err
	}

	logger.Info("bake complete",
		zap.Int("vertices", res.Vertices),
		zap.Int("triangles", res.Triangles),
		zap.Int("trees", res.Trees),
		zap.Int("frames", res.Frames),
		zap.Float32("clock", res.FinalTime),
		zap.String("mesh", res.MeshPath),
		zap.String("manifest", res.ManifestPath))
	return nil
}
