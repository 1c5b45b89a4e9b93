package core

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mikey/spamshield/internal/whitelist"
	"go.uber.org/zap"
)

// ServiceOptions holds the tunables of SpamFilterService
type ServiceOptions struct {
	CacheEnabled bool
	CacheTTL     time.Duration
	Threshold    int
}

// SpamFilterService is the core service for spam detection
type SpamFilterService struct {
	classifier Classifier
	cache      CacheRepository
	allowList  *whitelist.Checker
	logger     *zap.Logger
	opts       ServiceOptions
	now        func() time.Time
}

// NewSpamFilterService creates a new spam filter service. cache may be nil
// when opts.CacheEnabled is false.
func NewSpamFilterService(
	classifier Classifier,
	cache CacheRepository,
	allowList *whitelist.Checker,
	logger *zap.Logger,
	opts ServiceOptions,
) *SpamFilterService {
	return &SpamFilterService{
		classifier: classifier,
		cache:      cache,
		allowList:  allowList,
		logger:     logger,
		opts:       opts,
		now:        time.Now,
	}
}

// CacheKey returns the memoisation key for an email. Every input takes
// part in the key so cached verdicts stay identical to fresh ones.
func CacheKey(email *Email) string {
	h := sha256.New()
	for _, part := range []string{email.From, email.Subject, email.Body} {
		h.Write([]byte(part))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}

// SenderDomain returns the lower-cased domain of an address, or "unknown"
func SenderDomain(from string) string {
	if parts := strings.Split(from, "@"); len(parts) == 2 && parts[1] != "" {
		return strings.ToLower(parts[1])
	}
	return "unknown"
}

// AnalyzeEmail checks if an email is spam
func (s *SpamFilterService) AnalyzeEmail(ctx context.Context, email *Email) (*SpamAnalysisResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if s.allowList != nil && s.allowList.IsWhitelisted(email.From) {
		s.logger.Info("Skipping spam check for whitelisted domain",
			zap.String("sender", email.From),
			zap.String("action", "whitelist_bypass"))

		return s.result(Verdict{
			IsSpam:  false,
			Score:   0,
			Reasons: []string{"Sender domain is whitelisted"},
		}, SourceWhitelist), nil
	}

	key := CacheKey(email)
	if s.opts.CacheEnabled && s.cache != nil {
		if entry, err := s.cache.Get(ctx, key); err == nil {
			s.logger.Debug("Cache hit", zap.String("sender", email.From))
			return s.result(entry.Verdict, SourceCache), nil
		}
	}

	verdict := s.classifier.Classify(email.From, email.Subject, email.Body)

	if s.opts.CacheEnabled && s.cache != nil {
		now := s.now()
		entry := &CacheEntry{
			Key:       key,
			Verdict:   verdict,
			LastSeen:  now,
			ExpiresAt: now.Add(s.opts.CacheTTL),
		}
		if err := s.cache.Set(ctx, entry); err != nil {
			s.logger.Error("Failed to update cache", zap.Error(err))
		}
	}

	s.logger.Debug("Classified email",
		zap.String("sender", email.From),
		zap.String("sender_domain", SenderDomain(email.From)),
		zap.Bool("is_spam", verdict.IsSpam),
		zap.Int("score", verdict.Score))

	return s.result(verdict, SourceHeuristic), nil
}

// IsSpam determines if a result is spam based on the configured threshold
func (s *SpamFilterService) IsSpam(result *SpamAnalysisResult) bool {
	return result.Score >= s.opts.Threshold
}

func (s *SpamFilterService) result(v Verdict, source string) *SpamAnalysisResult {
	reasons := make([]string, len(v.Reasons))
	copy(reasons, v.Reasons)
	v.Reasons = reasons

	return &SpamAnalysisResult{
		Verdict:      v,
		AnalyzedAt:   s.now(),
		Source:       source,
		ProcessingID: uuid.NewString(),
	}
}
