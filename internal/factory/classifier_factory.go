package factory

import (
	"fmt"

	"github.com/mikey/spamshield/internal/adapters/heuristic"
	"github.com/mikey/spamshield/internal/config"
	"github.com/mikey/spamshield/internal/core"
	"go.uber.org/zap"
)

// ClassifierFactory creates classifiers
type ClassifierFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewClassifierFactory creates a new classifier factory
func NewClassifierFactory(cfg *config.Config, logger *zap.Logger) *ClassifierFactory {
	return &ClassifierFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateClassifier creates a classifier based on the configuration
func (f *ClassifierFactory) CreateClassifier() (core.Classifier, error) {
	classifierCfg := f.cfg.GetClassifier()

	switch classifierCfg.Type {
	case "heuristic":
		classifier, err := heuristic.NewFactory(f.cfg, f.logger).CreateClassifier()
		if err != nil {
			return nil, err
		}
		return classifier, nil
	default:
		return nil, fmt.Errorf("unsupported classifier type: %s", classifierCfg.Type)
	}
}
