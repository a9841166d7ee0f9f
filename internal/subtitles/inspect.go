package subtitles

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/asticode/go-astisub"

	"scribe/internal/services"
)

// Summary describes a parsed subtitle file.
type Summary struct {
	Format         Format
	CueCount       int
	FirstStart     time.Duration
	LastEnd        time.Duration
	MaxLinesPerCue int
	// Overlaps counts cues that start before the previous cue ends.
	Overlaps int
}

// Inspect parses SRT, WebVTT or ASS content and summarizes its cues.
func Inspect(r io.Reader, f Format) (Summary, error) {
	var (
		subs *astisub.Subtitles
		err  error
	)
	switch f {
	case SRT:
		subs, err = astisub.ReadFromSRT(r)
	case VTT:
		subs, err = astisub.ReadFromWebVTT(r)
	case ASS:
		subs, err = astisub.ReadFromSSA(r)
	default:
		return Summary{}, services.Wrap(services.ErrValidation, "inspect", "parse", fmt.Sprintf("format %q cannot be inspected", f), nil)
	}
	if err != nil {
		return Summary{}, services.Wrap(services.ErrValidation, "inspect", "parse", string(f), err)
	}
	return summarize(f, subs), nil
}

// InspectFile opens path and inspects it using its extension to pick the parser.
func InspectFile(path string) (Summary, error) {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	if ext == "ssa" {
		ext = string(ASS)
	}
	f := Format(ext)
	if f != SRT && f != VTT && f != ASS {
		return Summary{}, services.Wrap(services.ErrValidation, "inspect", "detect format", fmt.Sprintf("unsupported extension %q", filepath.Ext(path)), nil)
	}
	subs, err := astisub.OpenFile(path)
	if err != nil {
		return Summary{}, services.Wrap(services.ErrValidation, "inspect", "open", path, err)
	}
	return summarize(f, subs), nil
}

func summarize(f Format, subs *astisub.Subtitles) Summary {
	summary := Summary{Format: f, CueCount: len(subs.Items)}
	var prevEnd time.Duration
	for i, item := range subs.Items {
		if i == 0 {
			summary.FirstStart = item.StartAt
		} else if item.StartAt < prevEnd {
			summary.Overlaps++
		}
		if item.EndAt > summary.LastEnd {
			summary.LastEnd = item.EndAt
		}
		summary.MaxLinesPerCue = max(summary.MaxLinesPerCue, len(item.Lines))
		prevEnd = item.EndAt
	}
	return summary
}
