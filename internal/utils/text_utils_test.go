package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTextProcessor_Cap(t *testing.T) {
	tp := NewTextProcessor(nil)

	assert.Equal(t, "hello", tp.Cap("hello", 0))
	assert.Equal(t, "hello", tp.Cap("hello", 10))
	assert.Equal(t, "hel", tp.Cap("hello", 3))
	// é is two bytes; cutting inside it drops the partial sequence
	assert.Equal(t, "h", tp.Cap("héllo", 2))
	assert.Equal(t, "hé", tp.Cap("héllo", 3))
}

func TestTextProcessor_Preview(t *testing.T) {
	tp := NewTextProcessor(nil)

	assert.Equal(t, "short", tp.Preview("short", 10))
	assert.Equal(t, "hé"+TruncationMarker, tp.Preview("héllo", 2))
	assert.Equal(t, "whole", tp.Preview("whole", 0))
}

func TestTextProcessor_SanitizeUTF8(t *testing.T) {
	tp := NewTextProcessor(nil)

	assert.Equal(t, "ab\nc", tp.SanitizeUTF8("a\xffb\r\nc"))
	assert.Equal(t, "plain text", tp.SanitizeUTF8("plain text"))
}

func TestTextProcessor_ProcessText(t *testing.T) {
	tp := NewTextProcessor(nil)

	assert.Equal(t, "ab\n", tp.ProcessText("a\xffb\r\ncdef", 3))
}
