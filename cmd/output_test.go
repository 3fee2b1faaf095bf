package main

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "aaaaaaa...", truncate(strings.Repeat("a", 20), 10))

	// Multibyte input is cut on rune boundaries, never mid-character.
	got := truncate(strings.Repeat("é", 20), 10)
	assert.Equal(t, strings.Repeat("é", 7)+"...", got)
	assert.True(t, utf8.ValidString(got))

	// Rune count, not byte count, decides whether to cut at all.
	long := strings.Repeat("日", 10)
	assert.Equal(t, long, truncate(long, 10))
}

func TestFormatCount(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "1,234,567", formatCount(1234567))
	assert.Equal(t, "0", formatCount(0))
}
