package subtitles

import (
	"fmt"
	"strings"
)

// FormatSRT renders cues as SubRip with 1-based indices.
func FormatSRT(cues []Cue) string {
	parts := make([]string, 0, len(cues))
	for i, cue := range cues {
		parts = append(parts, fmt.Sprintf("%d\n%s --> %s\n%s\n", i+1, TimestampSRT(cue.Start), TimestampSRT(cue.End), cue.Text))
	}
	return strings.Join(parts, "\n")
}
