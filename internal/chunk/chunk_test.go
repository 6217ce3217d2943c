package chunk

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sentence builds a sentence of exactly n characters ending in a period.
func sentence(n int) string {
	return strings.Repeat("x", n-1) + "."
}

func TestSplitIntoChunks_ShortTextPassedThrough(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{name: "single sentence", text: "I want to help run club events."},
		{name: "multiple sentences", text: "One. Two! Three? Four."},
		{name: "no boundary punctuation", text: "just a fragment without an ending"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chunks := SplitIntoChunks(tt.text, MaxChunkLen)
			assert.Equal(t, []string{tt.text}, chunks)
		})
	}
}

func TestSplitIntoChunks_SentenceAlignedPacking(t *testing.T) {
	// 30 sentences of 100 chars each. Nine fit per 1000-char chunk
	// (9*100 + 8 joining spaces = 908).
	sentences := make([]string, 30)
	for i := range sentences {
		sentences[i] = sentence(100)
	}
	text := strings.Join(sentences, " ")

	chunks := SplitIntoChunks(text, MaxChunkLen)
	require.Len(t, chunks, 4)

	for i, c := range chunks {
		assert.LessOrEqual(t, len(c), MaxChunkLen, "chunk %d over limit", i)
	}

	// No sentence was broken: rejoining the chunks reconstructs the text.
	assert.Equal(t, text, strings.Join(chunks, " "))
}

func TestSplitIntoChunks_CappedAtSixChunks(t *testing.T) {
	sentences := make([]string, 100)
	for i := range sentences {
		sentences[i] = sentence(100)
	}
	text := strings.Join(sentences, " ")

	chunks := SplitIntoChunks(text, MaxChunkLen)
	require.Len(t, chunks, MaxChunks)

	// Dropped content aside, what remains is a prefix of the input.
	assert.True(t, strings.HasPrefix(text, strings.Join(chunks, " ")))
}

func TestSplitIntoChunks_OversizedSentenceKeptWhole(t *testing.T) {
	long := strings.Repeat("a", 1500)

	t.Run("alone", func(t *testing.T) {
		chunks := SplitIntoChunks(long, MaxChunkLen)
		require.Len(t, chunks, 1)
		assert.Equal(t, long, chunks[0])
	})

	t.Run("after a short sentence", func(t *testing.T) {
		chunks := SplitIntoChunks("Short. "+long, MaxChunkLen)
		require.Len(t, chunks, 2)
		assert.Equal(t, "Short.", chunks[0])
		assert.Equal(t, long, chunks[1])
	})
}

func TestSplitIntoChunks_BoundaryPunctuationVariants(t *testing.T) {
	text := "Really?! Yes. Sure thing!"
	chunks := SplitIntoChunks(text, MaxChunkLen)
	assert.Equal(t, []string{text}, chunks)
}

func TestProcessField(t *testing.T) {
	longText := strings.Join([]string{
		sentence(400), sentence(400), sentence(400), sentence(400),
	}, " ")
	require.Greater(t, len(longText), MaxChunkLen)

	tests := []struct {
		name      string
		text      string
		maxChunks int
		want      int
	}{
		{name: "empty text yields nothing", text: "", maxChunks: 2, want: 0},
		{name: "short text passed through", text: "I use Figma.", maxChunks: 2, want: 1},
		{name: "long text capped at maxChunks", text: longText, maxChunks: 2, want: 2},
		{name: "long text under cap", text: longText, maxChunks: 6, want: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ProcessField(tt.text, tt.maxChunks)
			assert.Len(t, got, tt.want)
		})
	}
}

func TestProcessField_ShortTextUnmodified(t *testing.T) {
	// Text at or under the limit is never rechunked, so irregular spacing
	// survives untouched.
	text := "First.  Double  spaced."
	got := ProcessField(text, 2)
	assert.Equal(t, []string{text}, got)
}
