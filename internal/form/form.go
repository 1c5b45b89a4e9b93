// Package form holds the state behind the "paste an email" form: the three
// editable fields, whether a result is on screen, and the submit and reset
// actions. A Form is used by one caller at a time.
package form

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode"

	"github.com/mikey/spamshield/internal/core"
)

// ErrEmptyBody is returned by Submit when there is no content to analyze
var ErrEmptyBody = errors.New("email body is empty")

// Analyzer runs one analysis. *core.SpamFilterService satisfies it.
type Analyzer interface {
	AnalyzeEmail(ctx context.Context, email *core.Email) (*core.SpamAnalysisResult, error)
}

// Form is the state of one email check
type Form struct {
	Sender  string
	Subject string
	Body    string

	analyzer  Analyzer
	delay     time.Duration
	analyzing bool
	result    *core.SpamAnalysisResult
}

// New creates an empty form. delay is the pause before a result is shown;
// zero shows it immediately.
func New(analyzer Analyzer, delay time.Duration) *Form {
	return &Form{
		analyzer: analyzer,
		delay:    delay,
	}
}

// CanSubmit reports whether Submit would run an analysis
func (f *Form) CanSubmit() bool {
	return !f.analyzing && !isBlank(f.Body)
}

// Analyzing reports whether a submission is in progress
func (f *Form) Analyzing() bool {
	return f.analyzing
}

// HasResult reports whether a verdict is on display
func (f *Form) HasResult() bool {
	return f.result != nil
}

// Result returns the displayed result, or nil
func (f *Form) Result() *core.SpamAnalysisResult {
	return f.result
}

// Submit analyzes the current fields. A blank body is rejected with
// ErrEmptyBody and leaves the form untouched. If ctx ends during the delay
// nothing is stored and the context error is returned.
func (f *Form) Submit(ctx context.Context) (*core.SpamAnalysisResult, error) {
	if isBlank(f.Body) {
		return nil, ErrEmptyBody
	}

	f.analyzing = true
	defer func() { f.analyzing = false }()

	if f.delay > 0 {
		timer := time.NewTimer(f.delay)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		}
	}

	result, err := f.analyzer.AnalyzeEmail(ctx, &core.Email{
		From:    f.Sender,
		Subject: f.Subject,
		Body:    f.Body,
	})
	if err != nil {
		return nil, err
	}

	f.result = result
	return result, nil
}

// isBlank reports whether s holds only whitespace, counting U+FEFF as space
func isBlank(s string) bool {
	return strings.TrimFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || r == '\uFEFF'
	}) == ""
}

// Reset clears every field and discards the stored result
func (f *Form) Reset() {
	f.Sender = ""
	f.Subject = ""
	f.Body = ""
	f.result = nil
}
