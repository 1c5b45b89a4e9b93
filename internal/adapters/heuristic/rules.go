package heuristic

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Message is the prepared view of an email that rules match against.
// Lower-cased copies are computed once per classification.
type Message struct {
	Sender       string
	Subject      string
	Body         string
	SubjectLower string
	BodyLower    string
	BodyLength   int
}

func newMessage(sender, subject, body string) *Message {
	return &Message{
		Sender:       sender,
		Subject:      subject,
		Body:         body,
		SubjectLower: strings.ToLower(subject),
		BodyLower:    strings.ToLower(body),
		BodyLength:   utf8.RuneCountInString(body),
	}
}

// Rule is one independent check. When Match holds, Weight is added to the
// score and Reason is appended to the verdict.
type Rule struct {
	Name   string
	Weight int
	Reason string
	Match  func(m *Message) bool
}

// KeywordWeight is the score added for each distinct keyword found
const KeywordWeight = 15

// DefaultKeywords are the phrases that mark an email as suspicious
var DefaultKeywords = []string{
	"congratulations",
	"winner",
	"claim",
	"prize",
	"urgent",
	"act now",
	"limited time",
	"click here",
	"verify account",
	"suspended",
	"confirm",
	"free money",
	"inheritance",
	"nigerian prince",
	"bitcoin",
	"cryptocurrency",
	"weight loss",
	"viagra",
	"casino",
	"loan approved",
}

// CleanReasons are reported, in order, when no rule fires
var CleanReasons = []string{
	"No suspicious patterns detected",
	"Sender format appears legitimate",
	"Content structure is normal",
}

// senderPattern accepts local@domain.tld with no whitespace and a single @.
// Go's \s is ASCII only, so vertical tab, Unicode spaces and the BOM are
// listed explicitly.
var senderPattern = regexp.MustCompile(`^[^@\s\x{0B}\p{Z}\x{FEFF}]+@[^@\s\x{0B}\p{Z}\x{FEFF}]+\.[^@\s\x{0B}\p{Z}\x{FEFF}]+$`)

// KeywordRule builds the rule for a single keyword. The keyword is matched
// against the lower-cased subject and body.
func KeywordRule(keyword string) Rule {
	kw := strings.ToLower(keyword)
	return Rule{
		Name:   "keyword:" + kw,
		Weight: KeywordWeight,
		Reason: fmt.Sprintf("Contains suspicious keyword: \"%s\"", kw),
		Match: func(m *Message) bool {
			return strings.Contains(m.BodyLower, kw) || strings.Contains(m.SubjectLower, kw)
		},
	}
}

// PatternRules are the structural checks evaluated after the keywords
var PatternRules = []Rule{
	{
		Name:   "fake_reply",
		Weight: 10,
		Reason: "Fake reply/forward indicator",
		Match: func(m *Message) bool {
			if !strings.Contains(m.SubjectLower, "re:") && !strings.Contains(m.SubjectLower, "fwd:") {
				return false
			}
			return !strings.Contains(m.BodyLower, "wrote:") && !strings.Contains(m.BodyLower, "forwarded")
		},
	},
	{
		Name:   "exclamation_marks",
		Weight: 10,
		Reason: "Excessive use of exclamation marks",
		Match: func(m *Message) bool {
			return strings.Count(m.BodyLower, "!") > 3
		},
	},
	{
		Name:   "all_caps",
		Weight: 15,
		Reason: "Entire message in CAPS",
		Match: func(m *Message) bool {
			return m.BodyLength > 20 && strings.ToUpper(m.Body) == m.Body
		},
	},
	{
		Name:   "dollar_signs",
		Weight: 10,
		Reason: "Multiple dollar signs detected",
		Match: func(m *Message) bool {
			return strings.Contains(m.BodyLower, "$$$") || strings.Count(m.BodyLower, "$") > 5
		},
	},
	{
		Name:   "invalid_sender",
		Weight: 20,
		Reason: "Invalid email format",
		Match: func(m *Message) bool {
			return m.Sender != "" && !senderPattern.MatchString(m.Sender)
		},
	},
	{
		Name:   "many_links",
		Weight: 15,
		Reason: "Multiple links detected",
		Match: func(m *Message) bool {
			return strings.Count(m.BodyLower, "http") > 3
		},
	},
	{
		Name:   "short_with_links",
		Weight: 20,
		Reason: "Very short message with links",
		Match: func(m *Message) bool {
			return m.BodyLength < 20 && strings.Contains(m.BodyLower, "http")
		},
	},
}

// DefaultRules returns the keyword rules followed by the pattern rules,
// with extra keywords appended to the built-in list. Blank and duplicate
// keywords are skipped.
func DefaultRules(extraKeywords ...string) []Rule {
	seen := make(map[string]bool, len(DefaultKeywords)+len(extraKeywords))
	rules := make([]Rule, 0, len(DefaultKeywords)+len(extraKeywords)+len(PatternRules))

	for _, kw := range append(append([]string{}, DefaultKeywords...), extraKeywords...) {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw == "" || seen[kw] {
			continue
		}
		seen[kw] = true
		rules = append(rules, KeywordRule(kw))
	}

	return append(rules, PatternRules...)
}
