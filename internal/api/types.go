package api

import (
	"scribe/internal/deps"
	"scribe/internal/language"
	"scribe/internal/subtitles"
)

// GenerateFromTextRequest is the body of POST /generate-from-text. Omitted
// knobs fall back to the configured text settings.
type GenerateFromTextRequest struct {
	Text            string   `json:"text" binding:"required,not_blank"`
	Format          string   `json:"format" binding:"omitempty,subtitle_format"`
	MaxCharsPerLine *int     `json:"max_chars_per_line" binding:"omitempty,min=1"`
	MaxLines        *int     `json:"max_lines" binding:"omitempty,min=1"`
	MaxCharsPerCue  *int     `json:"max_chars_per_cue" binding:"omitempty,min=1"`
	MinDuration     *float64 `json:"min_duration" binding:"omitempty,gt=0"`
	MaxDuration     *float64 `json:"max_duration" binding:"omitempty,gt=0"`
	Gap             *float64 `json:"gap" binding:"omitempty,min=0"`
	MaxCPS          *float64 `json:"max_cps" binding:"omitempty,gt=0"`
	WPM             *float64 `json:"wpm" binding:"omitempty,gt=0"`
	StartTime       float64  `json:"start_time" binding:"min=0"`
}

// settings overlays the request knobs on base. Seconds convert to whole
// milliseconds by truncation.
func (r GenerateFromTextRequest) settings(base subtitles.Settings) subtitles.Settings {
	s := base
	if r.MaxCharsPerLine != nil {
		s.MaxCharsPerLine = *r.MaxCharsPerLine
	}
	if r.MaxLines != nil {
		s.MaxLinesPerCue = *r.MaxLines
	}
	if r.MaxCharsPerCue != nil {
		s.MaxCharsPerCue = *r.MaxCharsPerCue
	}
	if r.MinDuration != nil {
		s.MinDurationMS = int(*r.MinDuration * 1000)
	}
	if r.MaxDuration != nil {
		s.MaxDurationMS = int(*r.MaxDuration * 1000)
	}
	if r.Gap != nil {
		s.GapMS = int(*r.Gap * 1000)
	}
	if r.MaxCPS != nil {
		s.MaxCPS = *r.MaxCPS
	}
	if r.WPM != nil {
		s.WordsPerMinute = *r.WPM
	}
	return s
}

// TranscribeRequest is the body of POST /transcribe.
type TranscribeRequest struct {
	FilePath        string   `json:"file_path" binding:"required,not_blank"`
	Language        string   `json:"language" binding:"omitempty,language_code"`
	Format          string   `json:"format" binding:"omitempty,subtitle_format"`
	MaxCharsPerLine *int     `json:"max_chars_per_line" binding:"omitempty,min=1"`
	MaxLines        *int     `json:"max_lines" binding:"omitempty,min=1"`
	MinDuration     *float64 `json:"min_duration" binding:"omitempty,gt=0"`
	MaxDuration     *float64 `json:"max_duration" binding:"omitempty,gt=0"`
}

func (r TranscribeRequest) settings(base subtitles.SpeechSettings) subtitles.SpeechSettings {
	s := base
	if r.MaxCharsPerLine != nil {
		s.MaxCharsPerLine = *r.MaxCharsPerLine
	}
	if r.MaxLines != nil {
		s.MaxLines = *r.MaxLines
	}
	if r.MinDuration != nil {
		s.MinDuration = *r.MinDuration
	}
	if r.MaxDuration != nil {
		s.MaxDuration = *r.MaxDuration
	}
	return s
}

// SubtitlesResponse is the success body of both generation routes.
type SubtitlesResponse struct {
	Success      bool    `json:"success"`
	Subtitles    string  `json:"subtitles"`
	Duration     float64 `json:"duration"`
	SegmentCount int     `json:"segment_count"`
	Language     string  `json:"language"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// StatusResponse is the body of GET /status.
type StatusResponse struct {
	Ready        bool          `json:"ready"`
	Model        string        `json:"model,omitempty"`
	Version      string        `json:"version"`
	Detail       string        `json:"detail,omitempty"`
	Dependencies []deps.Status `json:"dependencies,omitempty"`
}

// LanguagesResponse is the body of GET /languages.
type LanguagesResponse struct {
	Languages []language.Language `json:"languages"`
}
