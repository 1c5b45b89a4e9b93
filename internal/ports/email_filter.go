package ports

import (
	"context"

	"github.com/mikey/spamshield/internal/core"
)

// EmailFilter is a front end that accepts emails from users and reports verdicts
type EmailFilter interface {
	// ProcessEmail analyzes one email and returns the result
	ProcessEmail(ctx context.Context, email *core.Email) (*core.SpamAnalysisResult, error)

	// Start starts the front end
	Start() error

	// Stop stops the front end
	Stop() error
}
