package chunker

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitBoundaries(t *testing.T) {
	text := strings.Repeat("a", 2500)

	chunks := Split(text, 1000, 100)

	require.Len(t, chunks, 3)
	assert.Len(t, chunks[0], 1000) // [0,1000)
	assert.Len(t, chunks[1], 1000) // [900,1900)
	assert.Len(t, chunks[2], 700)  // [1800,2500)
}

func TestSplitBoundaryContent(t *testing.T) {
	// Distinct runes so we can check the exact window offsets, not just lengths.
	var b strings.Builder
	for i := 0; i < 2500; i++ {
		b.WriteRune(rune('0' + i%10))
	}
	text := b.String()
	runes := []rune(text)

	chunks := Split(text, 1000, 100)

	require.Len(t, chunks, 3)
	assert.Equal(t, string(runes[0:1000]), chunks[0])
	assert.Equal(t, string(runes[900:1900]), chunks[1])
	assert.Equal(t, string(runes[1800:2500]), chunks[2])
}

func TestSplitDeterministic(t *testing.T) {
	text := strings.Repeat("lorem ipsum dolor sit amet ", 200)

	first := Split(text, 1000, 100)
	second := Split(text, 1000, 100)

	assert.Equal(t, first, second)
}

func TestSplitShortText(t *testing.T) {
	chunks := Split("short", 1000, 100)

	require.Len(t, chunks, 1)
	assert.Equal(t, "short", chunks[0])
}

func TestSplitExactWindow(t *testing.T) {
	chunks := Split(strings.Repeat("x", 1000), 1000, 100)

	require.Len(t, chunks, 1)
	assert.Len(t, chunks[0], 1000)
}

func TestSplitEmpty(t *testing.T) {
	assert.Nil(t, Split("", 1000, 100))
}

func TestSplitNoOverlap(t *testing.T) {
	chunks := Split(strings.Repeat("x", 250), 100, 0)

	require.Len(t, chunks, 3)
	assert.Len(t, chunks[0], 100)
	assert.Len(t, chunks[1], 100)
	assert.Len(t, chunks[2], 50)
}

func TestSplitCountsRunesNotBytes(t *testing.T) {
	// 10 three-byte runes; a byte-based window would cut mid-rune.
	text := strings.Repeat("日", 10)

	chunks := Split(text, 4, 1)

	require.Len(t, chunks, 3)
	assert.Equal(t, "日日日日", chunks[0])
	assert.Equal(t, "日日日日", chunks[1])
	assert.Equal(t, "日日日日", chunks[2])
}

func TestJoinPreservesEmptySections(t *testing.T) {
	assert.Equal(t, "page one\n\npage three", Join([]string{"page one", "", "page three"}))
}
