package heuristic

import (
	"github.com/mikey/spamshield/internal/core"
	"go.uber.org/zap"
)

const (
	// DefaultThreshold is the score at or above which an email is spam
	DefaultThreshold = 30
	// MaxScore is the ceiling applied to the accumulated score
	MaxScore = 100
)

// Classifier scores emails against a fixed rule table
type Classifier struct {
	rules     []Rule
	threshold int
	logger    *zap.Logger
}

// NewClassifier creates a classifier over rules. A nil logger disables
// per-rule debug logging.
func NewClassifier(rules []Rule, threshold int, logger *zap.Logger) *Classifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Classifier{
		rules:     rules,
		threshold: threshold,
		logger:    logger,
	}
}

var defaultClassifier = NewClassifier(DefaultRules(), DefaultThreshold, nil)

// Classify scores an email with the built-in rules and threshold
func Classify(sender, subject, body string) core.Verdict {
	return defaultClassifier.Classify(sender, subject, body)
}

// Rules returns a copy of the classifier's rule table
func (c *Classifier) Rules() []Rule {
	return append([]Rule(nil), c.rules...)
}

// Classify evaluates every rule once and accumulates the verdict
func (c *Classifier) Classify(sender, subject, body string) core.Verdict {
	msg := newMessage(sender, subject, body)

	total := 0
	var reasons []string
	for _, rule := range c.rules {
		if !rule.Match(msg) {
			continue
		}
		total += rule.Weight
		reasons = append(reasons, rule.Reason)
		c.logger.Debug("Rule matched", zap.String("rule", rule.Name), zap.Int("weight", rule.Weight))
	}

	if len(reasons) == 0 {
		reasons = append([]string(nil), CleanReasons...)
	}

	return core.Verdict{
		IsSpam:  total >= c.threshold,
		Score:   clamp(total, 0, MaxScore),
		Reasons: reasons,
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
