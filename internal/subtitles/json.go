package subtitles

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

type jsonDocument struct {
	Segments []jsonSegment `json:"segments"`
}

type jsonSegment struct {
	ID    int         `json:"id"`
	Start json.Number `json:"start"`
	End   json.Number `json:"end"`
	Text  string      `json:"text"`
}

// FormatJSON renders cues as {"segments": [...]} with 2-space indentation.
// Times are rounded to milliseconds half-to-even and printed in their
// shortest decimal form; text is emitted without HTML or ASCII escaping.
func FormatJSON(cues []Cue) (string, error) {
	doc := jsonDocument{Segments: make([]jsonSegment, 0, len(cues))}
	for i, cue := range cues {
		doc.Segments = append(doc.Segments, jsonSegment{
			ID:    i + 1,
			Start: roundMillis(cue.Start),
			End:   roundMillis(cue.End),
			Text:  cue.Text,
		})
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return "", err
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

// roundMillis keeps at least one fractional digit so whole seconds read as 2.0.
func roundMillis(v float64) json.Number {
	s := strconv.FormatFloat(v, 'f', 3, 64)
	s = strings.TrimRight(s, "0")
	if strings.HasSuffix(s, ".") {
		s += "0"
	}
	return json.Number(s)
}
