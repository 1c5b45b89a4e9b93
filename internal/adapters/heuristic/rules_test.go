package heuristic

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultRules_Order(t *testing.T) {
	rules := DefaultRules()

	assert.Len(t, rules, len(DefaultKeywords)+len(PatternRules))
	assert.Equal(t, "keyword:congratulations", rules[0].Name)
	assert.Equal(t, "keyword:loan approved", rules[len(DefaultKeywords)-1].Name)
	assert.Equal(t, "fake_reply", rules[len(DefaultKeywords)].Name)
	assert.Equal(t, "short_with_links", rules[len(rules)-1].Name)
}

func TestDefaultRules_ExtraKeywords(t *testing.T) {
	rules := DefaultRules("Gift Card", "winner", "  ", "gift card")

	assert.Len(t, rules, len(DefaultKeywords)+1+len(PatternRules))
	assert.Equal(t, "keyword:gift card", rules[len(DefaultKeywords)].Name)

	c := NewClassifier(rules, DefaultThreshold, nil)
	v := c.Classify("", "Your GIFT CARD is waiting", "Please read the attached note today.")
	assert.Equal(t, []string{`Contains suspicious keyword: "gift card"`}, v.Reasons)
}

func TestKeywordRule(t *testing.T) {
	rule := KeywordRule("Act Now")

	assert.Equal(t, KeywordWeight, rule.Weight)
	assert.Equal(t, `Contains suspicious keyword: "act now"`, rule.Reason)
	assert.True(t, rule.Match(newMessage("", "ACT NOW", "")))
	assert.True(t, rule.Match(newMessage("", "", "please act now")))
	assert.False(t, rule.Match(newMessage("", "act", "now")))
}

func TestSenderPattern(t *testing.T) {
	tests := []struct {
		sender string
		valid  bool
	}{
		{"alice@example.com", true},
		{"a@b.co", true},
		{"first.last+tag@mail.example.org", true},
		{"a@b.c.d", true},
		{"a@b", false},
		{"@example.com", false},
		{"alice@", false},
		{"alice@@example.com", false},
		{"al\u00a0ice@example.com", false},
		{" alice@example.com", false},
		{"alice@example.", false},
		{"alice@.com", false},
		{"al ice@example.com", false},
		{"al\vice@example.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.sender, func(t *testing.T) {
			assert.Equal(t, tt.valid, senderPattern.MatchString(tt.sender))
		})
	}
}

func TestNewMessage_LengthInRunes(t *testing.T) {
	m := newMessage("", "", "héllo wörld")
	assert.Equal(t, 11, m.BodyLength)
	assert.Equal(t, "héllo wörld", m.BodyLower)
}
