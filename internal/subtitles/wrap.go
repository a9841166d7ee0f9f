package subtitles

import (
	"strings"
	"unicode/utf8"
)

// WrapLines packs words greedily into at most maxLines lines of maxChars runes.
//
// Wrapping stops as soon as a line would be opened past maxLines; the word
// that triggered it and everything after it are dropped. Callers that cannot
// lose text must size maxChars*maxLines to fit the block. A single word longer
// than maxChars still occupies its own line. When no line forms at all the
// first maxChars runes of text are returned.
func WrapLines(text string, maxChars, maxLines int) []string {
	words := strings.Fields(text)
	var lines []string
	var current []string
	currentLen := 0

	for _, word := range words {
		wordLen := utf8.RuneCountInString(word)
		sep := 0
		if len(current) > 0 {
			sep = 1
		}
		if currentLen+wordLen+sep <= maxChars {
			current = append(current, word)
			currentLen += wordLen + sep
			continue
		}
		if len(current) > 0 {
			lines = append(lines, strings.Join(current, " "))
		}
		current = []string{word}
		currentLen = wordLen
		if len(lines) >= maxLines {
			break
		}
	}

	if len(current) > 0 && len(lines) < maxLines {
		lines = append(lines, strings.Join(current, " "))
	}
	if len(lines) == 0 {
		return []string{truncateRunes(text, maxChars)}
	}
	return lines
}

func truncateRunes(text string, n int) string {
	if n <= 0 {
		return ""
	}
	count := 0
	for i := range text {
		if count == n {
			return text[:i]
		}
		count++
	}
	return text
}
