package factory

import (
	"fmt"

	"github.com/mikey/spamshield/internal/adapters/filter"
	"github.com/mikey/spamshield/internal/config"
	"github.com/mikey/spamshield/internal/core"
	"github.com/mikey/spamshield/internal/ports"
	"github.com/mikey/spamshield/internal/utils"
	"go.uber.org/zap"
)

// FilterFactory creates front ends based on configuration
type FilterFactory struct {
	cfg           *config.Config
	logger        *zap.Logger
	spamService   *core.SpamFilterService
	textProcessor *utils.TextProcessor
}

// NewFilterFactory creates a new filter factory
func NewFilterFactory(
	cfg *config.Config,
	logger *zap.Logger,
	spamService *core.SpamFilterService,
	textProcessor *utils.TextProcessor,
) *FilterFactory {
	return &FilterFactory{
		cfg:           cfg,
		logger:        logger,
		spamService:   spamService,
		textProcessor: textProcessor,
	}
}

// CreateEmailFilter creates a front end based on the configuration
func (f *FilterFactory) CreateEmailFilter() (ports.EmailFilter, error) {
	serverCfg := f.cfg.GetServer()

	switch serverCfg.FilterType {
	case "http":
		delay, err := f.cfg.GetDuration("server.result_delay")
		if err != nil {
			return nil, err
		}
		return filter.NewHTTPFilter(
			f.spamService,
			f.logger,
			f.textProcessor,
			serverCfg.ListenAddress,
			delay,
			serverCfg.MaxBodySize,
			serverCfg.SpamHeader,
			serverCfg.ScoreHeader,
		)
	case "cli":
		return filter.NewCliFilter(
			f.spamService,
			f.logger,
			f.textProcessor,
			f.cfg.GetBool("cli.verbose"),
			f.cfg.GetBool("cli.json"),
		)
	default:
		return nil, fmt.Errorf("unsupported filter type: %s", serverCfg.FilterType)
	}
}
