package subtitles

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// AdaptSpeechSegments turns recognizer segments into cues. Blank segments
// are dropped, text is wrapped, and each duration is clamped on its own.
// Recognizer boundaries are trusted: overlapping input stays overlapping.
func AdaptSpeechSegments(segments []SpeechSegment, s SpeechSettings) []Cue {
	cues := make([]Cue, 0, len(segments))
	for _, seg := range segments {
		text := strings.TrimFunc(seg.Text, unicode.IsSpace)
		if text == "" {
			continue
		}
		start, end := seg.Start, seg.End
		if duration := end - start; duration < s.MinDuration {
			end = start + s.MinDuration
		} else if duration > s.MaxDuration {
			end = start + s.MaxDuration
		}
		cues = append(cues, Cue{
			Text:      strings.Join(WrapLines(text, s.MaxCharsPerLine, s.MaxLines), "\n"),
			RawText:   text,
			Start:     start,
			End:       end,
			CharCount: utf8.RuneCountInString(text),
		})
	}
	return cues
}
