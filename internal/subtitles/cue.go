package subtitles

// Cue is one timed subtitle block.
type Cue struct {
	// Text is the display text, wrapped into newline-delimited lines.
	Text string
	// RawText is the unwrapped block the timing was computed from.
	RawText   string
	Start     float64
	End       float64
	CharCount int
}

// Duration returns End - Start in seconds.
func (c Cue) Duration() float64 { return c.End - c.Start }

// SpeechSegment is one recognizer-produced span of speech, times in seconds.
type SpeechSegment struct {
	Text  string  `json:"text"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// Result is the outcome of one engine run.
type Result struct {
	Subtitles        string
	Duration         float64
	SegmentCount     int
	DetectedLanguage string
	Cues             []Cue
}
