package whitelist

import (
	"strings"

	"go.uber.org/zap"
)

// Checker tells whether a sender's domain is on the allow-list
type Checker struct {
	domains map[string]struct{}
	logger  *zap.Logger
}

// NewChecker creates a new whitelist checker. Domains are trimmed and
// lower-cased; blank entries are dropped.
func NewChecker(domains []string, logger *zap.Logger) *Checker {
	if logger == nil {
		logger = zap.NewNop()
	}

	normalized := make(map[string]struct{}, len(domains))
	names := make([]string, 0, len(domains))
	for _, domain := range domains {
		d := strings.ToLower(strings.TrimSpace(domain))
		if d == "" {
			continue
		}
		if _, dup := normalized[d]; !dup {
			names = append(names, d)
		}
		normalized[d] = struct{}{}
	}

	if len(names) > 0 {
		logger.Info("Initialized whitelist checker", zap.Strings("domains", names))
	}

	return &Checker{
		domains: normalized,
		logger:  logger,
	}
}

// Len returns the number of distinct whitelisted domains
func (c *Checker) Len() int {
	return len(c.domains)
}

// IsWhitelisted checks if the sender's domain is in the whitelist. Senders
// without exactly one @ never match.
func (c *Checker) IsWhitelisted(from string) bool {
	if len(c.domains) == 0 {
		return false
	}

	parts := strings.Split(strings.TrimSpace(from), "@")
	if len(parts) != 2 || parts[0] == "" {
		return false
	}
	domain := strings.ToLower(parts[1])

	if _, ok := c.domains[domain]; !ok {
		return false
	}
	c.logger.Debug("Domain is whitelisted",
		zap.String("domain", domain),
		zap.String("email", from))
	return true
}
