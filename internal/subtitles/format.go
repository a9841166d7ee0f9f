package subtitles

import (
	"errors"
	"fmt"
	"strings"
)

// Format names an output rendering.
type Format string

const (
	SRT  Format = "srt"
	VTT  Format = "vtt"
	ASS  Format = "ass"
	JSON Format = "json"
	TXT  Format = "txt"
)

// ErrUnknownFormat is returned by Render for a Format outside the known set.
var ErrUnknownFormat = errors.New("unknown subtitle format")

// Formats lists every supported output format in display order.
func Formats() []Format {
	return []Format{SRT, VTT, ASS, JSON, TXT}
}

// Valid reports whether f is one of the supported formats.
func (f Format) Valid() bool {
	switch f {
	case SRT, VTT, ASS, JSON, TXT:
		return true
	}
	return false
}

// Extension returns the file extension, including the dot.
func (f Format) Extension() string {
	if !f.Valid() {
		return ".srt"
	}
	return "." + string(f)
}

// ParseFormat resolves a user-supplied format name. Unrecognised or empty
// names fall back to SRT.
func ParseFormat(name string) Format {
	f := Format(strings.ToLower(strings.TrimSpace(name)))
	if !f.Valid() {
		return SRT
	}
	return f
}

// Render dispatches cues to the formatter for f.
func Render(f Format, cues []Cue) (string, error) {
	switch f {
	case SRT:
		return FormatSRT(cues), nil
	case VTT:
		return FormatVTT(cues), nil
	case ASS:
		return FormatASS(cues), nil
	case JSON:
		return FormatJSON(cues)
	case TXT:
		return FormatTranscript(cues), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, string(f))
	}
}

// FormatTranscript joins cue texts with newlines.
func FormatTranscript(cues []Cue) string {
	texts := make([]string, len(cues))
	for i, cue := range cues {
		texts[i] = cue.Text
	}
	return strings.Join(texts, "\n")
}
