package whisperx

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"scribe/internal/subtitles"
)

// Word is a word-level timestamp from WhisperX alignment.
type Word struct {
	Word  string  `json:"word"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// Segment is one recognized utterance. Times are seconds.
type Segment struct {
	Text  string  `json:"text"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Words []Word  `json:"words"`
}

// Transcript is the parsed WhisperX result for one audio file.
type Transcript struct {
	Segments []Segment `json:"segments"`
	// Language is the language WhisperX used or detected.
	Language string `json:"language"`
}

// SpeechSegments converts the transcript for the subtitle engine.
func (t Transcript) SpeechSegments() []subtitles.SpeechSegment {
	out := make([]subtitles.SpeechSegment, len(t.Segments))
	for i, seg := range t.Segments {
		out[i] = subtitles.SpeechSegment{Text: seg.Text, Start: seg.Start, End: seg.End}
	}
	return out
}

// LoadTranscript reads a WhisperX JSON output file.
func LoadTranscript(jsonPath string) (Transcript, error) {
	data, err := os.ReadFile(jsonPath)
	if err != nil {
		return Transcript{}, err
	}
	var transcript Transcript
	if err := json.Unmarshal(data, &transcript); err != nil {
		return Transcript{}, fmt.Errorf("parse whisperx json: %w", err)
	}
	transcript.Language = strings.TrimSpace(transcript.Language)
	return transcript, nil
}
