package utils

import (
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"
)

// TruncationMarker is appended to previews that were cut short
const TruncationMarker = "..."

// TextProcessor cleans up text submitted by users before it is scored
type TextProcessor struct {
	logger *zap.Logger
}

// NewTextProcessor creates a new TextProcessor
func NewTextProcessor(logger *zap.Logger) *TextProcessor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TextProcessor{
		logger: logger,
	}
}

// Cap cuts text to at most maxSize bytes without splitting a UTF-8
// sequence. A non-positive maxSize disables the limit.
func (tp *TextProcessor) Cap(text string, maxSize int) string {
	if maxSize <= 0 || len(text) <= maxSize {
		return text
	}

	capped := text[:maxSize]
	for len(capped) > 0 && !utf8.ValidString(capped) {
		capped = capped[:len(capped)-1]
	}

	tp.logger.Debug("Text capped",
		zap.Int("original_size", len(text)),
		zap.Int("capped_size", len(capped)),
		zap.Int("max_size", maxSize))

	return capped
}

// Preview returns at most maxRunes characters of text, marking the cut
func (tp *TextProcessor) Preview(text string, maxRunes int) string {
	if maxRunes <= 0 || utf8.RuneCountInString(text) <= maxRunes {
		return text
	}
	runes := []rune(text)
	return string(runes[:maxRunes]) + TruncationMarker
}

// SanitizeUTF8 drops invalid UTF-8 bytes and normalises CRLF line endings
// coming from HTML forms.
func (tp *TextProcessor) SanitizeUTF8(text string) string {
	clean := text
	if !utf8.ValidString(clean) {
		clean = strings.ToValidUTF8(clean, "")
		tp.logger.Debug("Text sanitized",
			zap.Int("original_size", len(text)),
			zap.Int("sanitized_size", len(clean)))
	}
	return strings.ReplaceAll(clean, "\r\n", "\n")
}

// ProcessText sanitizes then caps text in one operation
func (tp *TextProcessor) ProcessText(text string, maxSize int) string {
	return tp.Cap(tp.SanitizeUTF8(text), maxSize)
}
