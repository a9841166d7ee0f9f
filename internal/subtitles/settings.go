package subtitles

import (
	"fmt"

	"scribe/internal/services"
)

// Text-mode defaults. Durations are in milliseconds to match the request form.
const (
	DefaultMaxCharsPerLine = 42
	DefaultMaxLinesPerCue  = 2
	DefaultMaxCharsPerCue  = 84
	DefaultMinDurationMS   = 1000
	DefaultMaxDurationMS   = 7000
	DefaultGapMS           = 150
	DefaultMaxCPS          = 17
	DefaultWordsPerMinute  = 150
)

// Speech-mode defaults, in seconds.
const (
	DefaultSpeechMinDuration = 1.5
	DefaultSpeechMaxDuration = 7.0
)

// Settings holds the text-mode segmentation and pacing knobs.
type Settings struct {
	MaxCharsPerLine int
	MaxLinesPerCue  int
	MaxCharsPerCue  int
	MinDurationMS   int
	MaxDurationMS   int
	GapMS           int
	MaxCPS          float64
	WordsPerMinute  float64
}

// Option overrides a single Settings field.
type Option func(*Settings)

// DefaultSettings returns the text-mode defaults with any overrides applied.
func DefaultSettings(opts ...Option) Settings {
	s := Settings{
		MaxCharsPerLine: DefaultMaxCharsPerLine,
		MaxLinesPerCue:  DefaultMaxLinesPerCue,
		MaxCharsPerCue:  DefaultMaxCharsPerCue,
		MinDurationMS:   DefaultMinDurationMS,
		MaxDurationMS:   DefaultMaxDurationMS,
		GapMS:           DefaultGapMS,
		MaxCPS:          DefaultMaxCPS,
		WordsPerMinute:  DefaultWordsPerMinute,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&s)
		}
	}
	return s
}

func WithMaxCharsPerLine(n int) Option { return func(s *Settings) { s.MaxCharsPerLine = n } }

func WithMaxLinesPerCue(n int) Option { return func(s *Settings) { s.MaxLinesPerCue = n } }

func WithMaxCharsPerCue(n int) Option { return func(s *Settings) { s.MaxCharsPerCue = n } }

// WithDurations sets the minimum and maximum cue duration in milliseconds.
func WithDurations(minMS, maxMS int) Option {
	return func(s *Settings) {
		s.MinDurationMS = minMS
		s.MaxDurationMS = maxMS
	}
}

func WithGapMS(ms int) Option { return func(s *Settings) { s.GapMS = ms } }

// WithReadingSpeed sets the characters-per-second ceiling and words-per-minute rate.
func WithReadingSpeed(maxCPS, wpm float64) Option {
	return func(s *Settings) {
		s.MaxCPS = maxCPS
		s.WordsPerMinute = wpm
	}
}

// MinDuration returns the minimum cue duration in seconds.
func (s Settings) MinDuration() float64 { return float64(s.MinDurationMS) / 1000 }

// MaxDuration returns the maximum cue duration in seconds.
func (s Settings) MaxDuration() float64 { return float64(s.MaxDurationMS) / 1000 }

// Gap returns the minimum gap between cues in seconds.
func (s Settings) Gap() float64 { return float64(s.GapMS) / 1000 }

// Validate rejects settings that would make segmentation or pacing meaningless.
func (s Settings) Validate() error {
	switch {
	case s.MaxCharsPerLine <= 0:
		return invalidSetting("max_chars_per_line must be positive")
	case s.MaxLinesPerCue <= 0:
		return invalidSetting("max_lines_per_cue must be positive")
	case s.MaxCharsPerCue <= 0:
		return invalidSetting("max_chars_per_cue must be positive")
	case s.MinDurationMS <= 0:
		return invalidSetting("min_duration_ms must be positive")
	case s.MaxDurationMS < s.MinDurationMS:
		return invalidSetting(fmt.Sprintf("max_duration_ms (%d) must be >= min_duration_ms (%d)", s.MaxDurationMS, s.MinDurationMS))
	case s.GapMS < 0:
		return invalidSetting("gap_ms must be >= 0")
	case s.MaxCPS <= 0:
		return invalidSetting("max_cps must be positive")
	case s.WordsPerMinute <= 0:
		return invalidSetting("words_per_minute must be positive")
	}
	return nil
}

// SpeechSettings holds the speech-mode wrapping and duration clamp.
type SpeechSettings struct {
	MaxCharsPerLine int
	MaxLines        int
	MinDuration     float64
	MaxDuration     float64
}

// DefaultSpeechSettings returns the speech-mode defaults.
func DefaultSpeechSettings() SpeechSettings {
	return SpeechSettings{
		MaxCharsPerLine: DefaultMaxCharsPerLine,
		MaxLines:        DefaultMaxLinesPerCue,
		MinDuration:     DefaultSpeechMinDuration,
		MaxDuration:     DefaultSpeechMaxDuration,
	}
}

func (s SpeechSettings) Validate() error {
	switch {
	case s.MaxCharsPerLine <= 0:
		return invalidSetting("max_chars_per_line must be positive")
	case s.MaxLines <= 0:
		return invalidSetting("max_lines must be positive")
	case s.MinDuration <= 0:
		return invalidSetting("min_duration must be positive")
	case s.MaxDuration < s.MinDuration:
		return invalidSetting(fmt.Sprintf("max_duration (%g) must be >= min_duration (%g)", s.MaxDuration, s.MinDuration))
	}
	return nil
}

func invalidSetting(message string) error {
	return services.Wrap(services.ErrConfiguration, "settings", "validate", message, nil)
}
