// Package chunk splits over-long free-text answers into bounded,
// sentence-aligned fragments for a destination with strict per-field
// length limits.
package chunk

const (
	// MaxChunkLen is the nominal upper bound on a single chunk. A lone
	// sentence longer than this is kept whole rather than split mid-sentence.
	MaxChunkLen = 1000

	// MaxChunks caps the number of chunks produced for any field. Content
	// past the cap is dropped, matching the downstream message's
	// field-count ceiling.
	MaxChunks = 6
)

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\f', '\v':
		return true
	}
	return false
}

// splitSentences breaks text at sentence boundaries: a '.', '!' or '?'
// followed by whitespace ends a sentence. The boundary punctuation stays
// with the preceding sentence and the separating whitespace is consumed.
func splitSentences(text string) []string {
	var sentences []string
	start := 0
	i := 0
	for i < len(text) {
		c := text[i]
		if (c == '.' || c == '!' || c == '?') && i+1 < len(text) && isSpace(text[i+1]) {
			sentences = append(sentences, text[start:i+1])
			i++
			for i < len(text) && isSpace(text[i]) {
				i++
			}
			start = i
			continue
		}
		i++
	}
	if start < len(text) {
		sentences = append(sentences, text[start:])
	}
	return sentences
}

// SplitIntoChunks greedily packs whole sentences into chunks of at most
// maxLen characters, joining sentences with a single space. At most
// MaxChunks chunks are returned; later content is silently dropped.
func SplitIntoChunks(text string, maxLen int) []string {
	var chunks []string
	var current string

	for _, sentence := range splitSentences(text) {
		if len(current)+len(sentence) <= maxLen {
			if current == "" {
				current = sentence
			} else {
				current += " " + sentence
			}
		} else {
			if current != "" {
				chunks = append(chunks, current)
			}
			current = sentence
		}
	}
	if current != "" {
		chunks = append(chunks, current)
	}

	if len(chunks) > MaxChunks {
		chunks = chunks[:MaxChunks]
	}
	return chunks
}

// ProcessField prepares a free-text answer for display. Empty text yields
// no chunks, text within MaxChunkLen is passed through untouched, and
// anything longer is chunked and capped at maxChunks.
func ProcessField(text string, maxChunks int) []string {
	if text == "" {
		return nil
	}
	if len(text) <= MaxChunkLen {
		return []string{text}
	}
	chunks := SplitIntoChunks(text, MaxChunkLen)
	if len(chunks) > maxChunks {
		chunks = chunks[:maxChunks]
	}
	return chunks
}
