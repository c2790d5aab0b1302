package generation

import (
	"fmt"
	"unicode/utf8"
)

// DefaultChunkSize is the number of characters sent to the model per request.
const DefaultChunkSize = 1100

// Split cuts text into contiguous, non-overlapping chunks of at most maxLen
// characters (Unicode code points). Every chunk except possibly the last has
// exactly maxLen characters and concatenating the chunks reproduces text.
// Empty text yields no chunks.
func Split(text string, maxLen int) ([]string, error) {
	if maxLen <= 0 {
		return nil, fmt.Errorf("%w: chunk size must be positive, got %d", ErrInvalidConfig, maxLen)
	}

	if text == "" {
		return []string{}, nil
	}

	chunks := make([]string, 0, utf8.RuneCountInString(text)/maxLen+1)
	start, count := 0, 0
	for i := range text {
		if count == maxLen {
			chunks = append(chunks, text[start:i])
			start, count = i, 0
		}
		count++
	}
	chunks = append(chunks, text[start:])

	return chunks, nil
}

// prefix returns the first n characters of s.
func prefix(s string, n int) string {
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}
