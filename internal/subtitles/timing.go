package subtitles

import "strings"

// SynthesizeTiming assigns reading-speed based start and end times to cues
// laid out back to back from startTime with s.Gap() between them.
func SynthesizeTiming(cues []Cue, s Settings, startTime float64) []Cue {
	minDuration := s.MinDuration()
	maxDuration := s.MaxDuration()
	gap := s.Gap()

	timed := make([]Cue, len(cues))
	current := startTime
	for i, cue := range cues {
		byCPS := float64(cue.CharCount) / s.MaxCPS
		byWPM := float64(len(strings.Fields(cue.RawText))) / s.WordsPerMinute * 60
		duration := max(minDuration, min(max(byCPS, byWPM), maxDuration))

		cue.Start = current
		cue.End = current + duration
		timed[i] = cue
		current += duration + gap
	}
	return timed
}

// NormalizeTiming pushes any cue that starts earlier than the previous end
// plus gap forward to that point, extending its end to keep at least
// minDuration. The input is not modified. Running it twice is a no-op.
func NormalizeTiming(cues []Cue, gap, minDuration float64) []Cue {
	normalized := make([]Cue, 0, len(cues))
	for _, cue := range cues {
		if n := len(normalized); n > 0 {
			earliest := normalized[n-1].End + gap
			if cue.Start < earliest {
				cue.Start = earliest
				cue.End = max(cue.Start+minDuration, cue.End)
			}
		}
		normalized = append(normalized, cue)
	}
	return normalized
}
