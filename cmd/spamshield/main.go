package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mikey/spamshield/internal/config"
	"github.com/mikey/spamshield/internal/core"
	"github.com/mikey/spamshield/internal/di"
	"github.com/mikey/spamshield/internal/ports"
	"go.uber.org/zap"
)

func main() {
	configFile := flag.String("config", "", "Path to config.yaml (default: search standard locations)")
	flag.Parse()

	container, err := di.BuildContainerWithConfig(func() (*config.Config, error) {
		return config.Load(*configFile)
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to build dependency container: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	err = container.Invoke(func(logger *zap.Logger, emailFilter ports.EmailFilter, cacheRepo core.CacheRepository) error {
		return serve(ctx, logger, emailFilter, cacheRepo)
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "spamshield: %v\n", err)
		os.Exit(1)
	}
}

// serve runs the front end until ctx is cancelled, then releases it and
// the cache.
func serve(ctx context.Context, logger *zap.Logger, emailFilter ports.EmailFilter, cacheRepo core.CacheRepository) error {
	defer logger.Sync()

	if err := emailFilter.Start(); err != nil {
		return fmt.Errorf("failed to start filter: %w", err)
	}

	<-ctx.Done()
	logger.Info("Shutting down")

	if err := emailFilter.Stop(); err != nil {
		logger.Error("Failed to stop filter", zap.Error(err))
	}
	if stopper, ok := cacheRepo.(interface{ Stop() }); ok {
		stopper.Stop()
	}

	logger.Info("Shutdown complete")
	return nil
}
