package filter

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/mikey/spamshield/internal/core"
	"github.com/mikey/spamshield/internal/form"
	"github.com/mikey/spamshield/internal/utils"
	"go.uber.org/zap"
)

const previewRunes = 500

// CliFilter implements a command-line interface for spam detection
type CliFilter struct {
	service       *core.SpamFilterService
	logger        *zap.Logger
	textProcessor *utils.TextProcessor
	verbose       bool
	jsonOutput    bool
	out           io.Writer
}

// NewCliFilter creates a new CLI filter writing to stdout
func NewCliFilter(
	service *core.SpamFilterService,
	logger *zap.Logger,
	textProcessor *utils.TextProcessor,
	verbose bool,
	jsonOutput bool,
) (*CliFilter, error) {
	return &CliFilter{
		service:       service,
		logger:        logger,
		textProcessor: textProcessor,
		verbose:       verbose,
		jsonOutput:    jsonOutput,
		out:           os.Stdout,
	}, nil
}

// SetOutput redirects the report
func (f *CliFilter) SetOutput(w io.Writer) {
	f.out = w
}

// ProcessEmail analyzes an email and prints the report
func (f *CliFilter) ProcessEmail(ctx context.Context, email *core.Email) (*core.SpamAnalysisResult, error) {
	f.logger.Debug("Processing email", zap.String("sender", email.From))

	fm := form.New(f.service, 0)
	fm.Sender = f.textProcessor.SanitizeUTF8(email.From)
	fm.Subject = f.textProcessor.SanitizeUTF8(email.Subject)
	fm.Body = f.textProcessor.SanitizeUTF8(email.Body)

	startTime := time.Now()
	result, err := fm.Submit(ctx)
	if err != nil {
		f.logger.Error("Failed to analyze email", zap.Error(err))
		return nil, err
	}
	duration := time.Since(startTime)

	if f.jsonOutput {
		enc := json.NewEncoder(f.out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			return nil, fmt.Errorf("failed to encode result: %w", err)
		}
		return result, nil
	}

	fmt.Fprintf(f.out, "\n=== Email Summary ===\n")
	fmt.Fprintf(f.out, "From: %s\n", fm.Sender)
	fmt.Fprintf(f.out, "Subject: %s\n", fm.Subject)
	fmt.Fprintf(f.out, "Body length: %d bytes\n", len(fm.Body))
	if f.verbose {
		fmt.Fprintf(f.out, "\nBody preview:\n%s\n", f.textProcessor.Preview(fm.Body, previewRunes))
	}

	fmt.Fprintf(f.out, "\n=== Results ===\n")
	fmt.Fprintf(f.out, "%s\n", result.Headline())
	fmt.Fprintf(f.out, "Spam confidence score: %d%%\n", result.Score)
	fmt.Fprintf(f.out, "Analysis details:\n")
	for _, reason := range result.Reasons {
		fmt.Fprintf(f.out, "  - %s\n", reason)
	}
	if warning := result.Warning(); warning != "" {
		fmt.Fprintf(f.out, "\nWarning: %s\n", warning)
	}
	if f.verbose {
		fmt.Fprintf(f.out, "\nSource: %s\n", result.Source)
		fmt.Fprintf(f.out, "Processing time: %v\n", duration)
	}

	return result, nil
}

// Start is a no-op for the CLI filter
func (f *CliFilter) Start() error {
	return nil
}

// Stop is a no-op for the CLI filter
func (f *CliFilter) Stop() error {
	return nil
}
