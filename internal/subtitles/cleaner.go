package subtitles

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	excessNewlines = regexp.MustCompile(`\n{3,}`)
	repeatedSpaces = regexp.MustCompile(` {2,}`)
)

// CleanText collapses blank-line runs to a single paragraph break, squeezes
// repeated spaces and trims every line.
func CleanText(text string) string {
	text = excessNewlines.ReplaceAllString(text, "\n\n")
	text = repeatedSpaces.ReplaceAllString(text, " ")
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimFunc(line, unicode.IsSpace)
	}
	return strings.Join(lines, "\n")
}
