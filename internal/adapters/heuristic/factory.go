package heuristic

import (
	"fmt"

	"github.com/mikey/spamshield/internal/config"
	"go.uber.org/zap"
)

// Factory creates heuristic classifiers from configuration
type Factory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewFactory creates a new factory for Classifier instances
func NewFactory(cfg *config.Config, logger *zap.Logger) *Factory {
	return &Factory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateClassifier builds a Classifier from the classifier and spam sections
func (f *Factory) CreateClassifier() (*Classifier, error) {
	spamCfg := f.cfg.GetSpam()
	if spamCfg.Threshold <= 0 || spamCfg.Threshold > MaxScore {
		return nil, fmt.Errorf("spam threshold must be between 1 and %d, got %d", MaxScore, spamCfg.Threshold)
	}

	classifierCfg := f.cfg.GetClassifier()
	rules := DefaultRules(classifierCfg.ExtraKeywords...)

	f.logger.Info("Heuristic classifier ready",
		zap.Int("rules", len(rules)),
		zap.Int("threshold", spamCfg.Threshold),
		zap.Strings("extra_keywords", classifierCfg.ExtraKeywords))

	return NewClassifier(rules, spamCfg.Threshold, f.logger.Named("classifier")), nil
}
