package di

import (
	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/mikey/spamshield/internal/config"
	"github.com/mikey/spamshield/internal/core"
	"github.com/mikey/spamshield/internal/factory"
	"github.com/mikey/spamshield/internal/logging"
	"github.com/mikey/spamshield/internal/ports"
	"github.com/mikey/spamshield/internal/utils"
	"github.com/mikey/spamshield/internal/whitelist"
)

// BuildContainerWithConfig creates the server's dependency injection
// container around the given config provider
func BuildContainerWithConfig(newConfig func() (*config.Config, error)) (*dig.Container, error) {
	container := dig.New()

	// Register configuration
	if err := container.Provide(newConfig); err != nil {
		return nil, err
	}

	// Register logger
	if err := container.Provide(logging.InitLogger); err != nil {
		return nil, err
	}

	if err := provideCommon(container); err != nil {
		return nil, err
	}

	// Register cache repository
	if err := container.Provide(factory.NewCacheFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(func(f *factory.CacheFactory) (core.CacheRepository, error) {
		return f.CreateCacheRepository()
	}); err != nil {
		return nil, err
	}

	// Register service options
	if err := container.Provide(func(cfg *config.Config, f *factory.CacheFactory) (core.ServiceOptions, error) {
		ttl, err := f.GetCacheTTL()
		if err != nil {
			return core.ServiceOptions{}, err
		}
		return core.ServiceOptions{
			CacheEnabled: f.IsCacheEnabled(),
			CacheTTL:     ttl,
			Threshold:    cfg.GetSpam().Threshold,
		}, nil
	}); err != nil {
		return nil, err
	}

	if err := provideService(container); err != nil {
		return nil, err
	}

	return container, nil
}

// provideCommon registers the pieces shared by the server and the CLI
func provideCommon(container *dig.Container) error {
	// Register text processor
	if err := container.Provide(utils.NewTextProcessor); err != nil {
		return err
	}

	// Register classifier
	if err := container.Provide(factory.NewClassifierFactory); err != nil {
		return err
	}
	if err := container.Provide(func(f *factory.ClassifierFactory) (core.Classifier, error) {
		return f.CreateClassifier()
	}); err != nil {
		return err
	}

	// Register whitelist checker
	return container.Provide(func(cfg *config.Config, logger *zap.Logger) *whitelist.Checker {
		return whitelist.NewChecker(cfg.GetSpam().WhitelistedDomains, logger)
	})
}

// provideService registers the spam service and the configured front end
func provideService(container *dig.Container) error {
	// Register spam filter service
	if err := container.Provide(core.NewSpamFilterService); err != nil {
		return err
	}

	// Register email filter
	if err := container.Provide(factory.NewFilterFactory); err != nil {
		return err
	}
	return container.Provide(func(f *factory.FilterFactory) (ports.EmailFilter, error) {
		return f.CreateEmailFilter()
	})
}
