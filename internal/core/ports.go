package core

import (
	"context"
)

// Classifier scores an email. Implementations must be pure: the same
// inputs always produce the same Verdict.
type Classifier interface {
	Classify(sender, subject, body string) Verdict
}

// CacheRepository defines the interface for memoising verdicts
type CacheRepository interface {
	// Get retrieves an unexpired entry by key
	Get(ctx context.Context, key string) (*CacheEntry, error)

	// Set stores an entry
	Set(ctx context.Context, entry *CacheEntry) error

	// Delete removes an entry
	Delete(ctx context.Context, key string) error

	// Cleanup removes expired entries
	Cleanup(ctx context.Context) error
}
