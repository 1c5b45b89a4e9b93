package core

import (
	"time"
)

// Result sources reported in SpamAnalysisResult.Source
const (
	SourceHeuristic = "heuristic"
	SourceCache     = "cache"
	SourceWhitelist = "whitelist"
)

// Email represents the three pieces of an email a user pastes in for checking
type Email struct {
	From    string `json:"sender"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// Verdict is the outcome of classifying a single email
type Verdict struct {
	IsSpam  bool     `json:"is_spam"`
	Score   int      `json:"score"`
	Reasons []string `json:"reasons"`
}

// Headline returns the one-line summary shown above the reasons
func (v Verdict) Headline() string {
	if v.IsSpam {
		return "Likely SPAM"
	}
	return "Appears Legitimate"
}

// Warning returns the advice shown for spam verdicts, or an empty string
func (v Verdict) Warning() string {
	if !v.IsSpam {
		return ""
	}
	return "Do not click any links, download attachments, or share personal information. " +
		"Mark this email as spam and delete it immediately."
}

// SpamAnalysisResult represents the result of running an email through the service
type SpamAnalysisResult struct {
	Verdict
	AnalyzedAt   time.Time `json:"analyzed_at"`
	Source       string    `json:"source"`
	ProcessingID string    `json:"processing_id"`
}

// CacheEntry is a memoised verdict for one exact (sender, subject, body) triple
type CacheEntry struct {
	Key       string
	Verdict   Verdict
	LastSeen  time.Time
	ExpiresAt time.Time
}
