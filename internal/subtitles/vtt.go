package subtitles

import (
	"fmt"
	"strings"
)

const vttHeader = "WEBVTT\n"

// FormatVTT renders cues as WebVTT without cue identifiers.
func FormatVTT(cues []Cue) string {
	parts := make([]string, 0, len(cues)+1)
	parts = append(parts, vttHeader)
	for _, cue := range cues {
		parts = append(parts, fmt.Sprintf("%s --> %s\n%s\n", TimestampVTT(cue.Start), TimestampVTT(cue.End), cue.Text))
	}
	return strings.Join(parts, "\n")
}
