package filter

import (
	"github.com/mikey/spamshield/internal/adapters/heuristic"
	"github.com/mikey/spamshield/internal/core"
	"github.com/mikey/spamshield/internal/whitelist"
	"go.uber.org/zap"
)

func newTestService() *core.SpamFilterService {
	return core.NewSpamFilterService(
		heuristic.NewClassifier(heuristic.DefaultRules(), heuristic.DefaultThreshold, nil),
		nil,
		whitelist.NewChecker(nil, nil),
		zap.NewNop(),
		core.ServiceOptions{Threshold: heuristic.DefaultThreshold},
	)
}
