package subtitles

import (
	"fmt"
	"strings"
)

// assHeader carries the single static style every dialogue line references.
const assHeader = `[Script Info]
Title: Torio Tools Scribe
ScriptType: v4.00+
Collisions: Normal
PlayDepth: 0

[V4+ Styles]
Format: Name, Fontname, Fontsize, PrimaryColour, SecondaryColour, OutlineColour, BackColour, Bold, Italic, Underline, StrikeOut, ScaleX, ScaleY, Spacing, Angle, BorderStyle, Outline, Shadow, Alignment, MarginL, MarginR, MarginV, Encoding
Style: Default,Arial,48,&H00FFFFFF,&H000000FF,&H00000000,&H80000000,-1,0,0,0,100,100,0,0,1,2,1,2,20,20,20,1

[Events]
Format: Layer, Start, End, Style, Name, MarginL, MarginR, MarginV, Effect, Text
`

// FormatASS renders cues as Advanced SubStation Alpha dialogue events.
// Line breaks inside a cue become the literal \N escape.
func FormatASS(cues []Cue) string {
	parts := make([]string, 0, len(cues)+1)
	parts = append(parts, assHeader)
	for _, cue := range cues {
		text := strings.ReplaceAll(cue.Text, "\n", `\N`)
		parts = append(parts, fmt.Sprintf("Dialogue: 0,%s,%s,Default,,0,0,0,,%s", TimestampASS(cue.Start), TimestampASS(cue.End), text))
	}
	return strings.Join(parts, "\n")
}
