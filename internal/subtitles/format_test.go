package subtitles

import (
	"errors"
	"strings"
	"testing"
)

func TestTimestamps(t *testing.T) {
	tests := []struct {
		seconds float64
		srt     string
		vtt     string
		ass     string
	}{
		{seconds: 0, srt: "00:00:00,000", vtt: "00:00:00.000", ass: "0:00:00.00"},
		{seconds: 0.25, srt: "00:00:00,250", vtt: "00:00:00.250", ass: "0:00:00.25"},
		{seconds: 3661.5, srt: "01:01:01,500", vtt: "01:01:01.500", ass: "1:01:01.50"},
		{seconds: 36000, srt: "10:00:00,000", vtt: "10:00:00.000", ass: "10:00:00.00"},
		{seconds: -3, srt: "00:00:00,000", vtt: "00:00:00.000", ass: "0:00:00.00"},
	}
	for _, tt := range tests {
		if got := TimestampSRT(tt.seconds); got != tt.srt {
			t.Errorf("TimestampSRT(%v) = %q, want %q", tt.seconds, got, tt.srt)
		}
		if got := TimestampVTT(tt.seconds); got != tt.vtt {
			t.Errorf("TimestampVTT(%v) = %q, want %q", tt.seconds, got, tt.vtt)
		}
		if got := TimestampASS(tt.seconds); got != tt.ass {
			t.Errorf("TimestampASS(%v) = %q, want %q", tt.seconds, got, tt.ass)
		}
	}
}

func TestTimestampTruncatesFraction(t *testing.T) {
	// 2.4 mod 1 is just below 0.4 in binary.
	if got := TimestampSRT(2.4); got != "00:00:02,399" {
		t.Fatalf("TimestampSRT(2.4) = %q", got)
	}
}

func TestFormatSRT(t *testing.T) {
	cues := []Cue{
		{Text: "Hello", Start: 3661.5, End: 3663.25},
		{Text: "two\nlines", Start: 4000, End: 4001},
	}
	want := "1\n01:01:01,500 --> 01:01:03,250\nHello\n\n2\n01:06:40,000 --> 01:06:41,000\ntwo\nlines\n"
	if got := FormatSRT(cues); got != want {
		t.Fatalf("FormatSRT =\n%q\nwant\n%q", got, want)
	}
	if got := FormatSRT(nil); got != "" {
		t.Fatalf("expected empty SRT, got %q", got)
	}
}

func TestFormatVTT(t *testing.T) {
	cues := []Cue{{Text: "A", Start: 0, End: 1.5}}
	want := "WEBVTT\n\n00:00:00.000 --> 00:00:01.500\nA\n"
	if got := FormatVTT(cues); got != want {
		t.Fatalf("FormatVTT = %q, want %q", got, want)
	}
	if got := FormatVTT(nil); got != "WEBVTT\n" {
		t.Fatalf("expected header only, got %q", got)
	}
}

func TestFormatASSUsesLiteralLineBreak(t *testing.T) {
	cues := []Cue{{Text: "line one\nline two", Start: 0, End: 1.5}}
	got := FormatASS(cues)
	wantHeader := "[Script Info]\n" +
		"Title: Torio Tools Scribe\n" +
		"ScriptType: v4.00+\n" +
		"Collisions: Normal\n" +
		"PlayDepth: 0\n" +
		"\n" +
		"[V4+ Styles]\n" +
		"Format: Name, Fontname, Fontsize, PrimaryColour, SecondaryColour, OutlineColour, BackColour, Bold, Italic, Underline, StrikeOut, ScaleX, ScaleY, Spacing, Angle, BorderStyle, Outline, Shadow, Alignment, MarginL, MarginR, MarginV, Encoding\n" +
		"Style: Default,Arial,48,&H00FFFFFF,&H000000FF,&H00000000,&H80000000,-1,0,0,0,100,100,0,0,1,2,1,2,20,20,20,1\n" +
		"\n" +
		"[Events]\n" +
		"Format: Layer, Start, End, Style, Name, MarginL, MarginR, MarginV, Effect, Text\n"
	if !strings.HasPrefix(got, wantHeader) {
		t.Fatalf("unexpected header: %q", got)
	}
	wantTail := "Format: Layer, Start, End, Style, Name, MarginL, MarginR, MarginV, Effect, Text\n\n" +
		`Dialogue: 0,0:00:00.00,0:00:01.50,Default,,0,0,0,,line one\Nline two`
	if !strings.HasSuffix(got, wantTail) {
		t.Fatalf("unexpected dialogue section: %q", got)
	}
	dialogue := got[strings.Index(got, "Dialogue:"):]
	if strings.Contains(dialogue, "\n") {
		t.Fatalf("dialogue line contains a real newline: %q", dialogue)
	}
	if !strings.Contains(got, "Style: Default,Arial,48,&H00FFFFFF,&H000000FF,&H00000000,&H80000000,-1,0,0,0,100,100,0,0,1,2,1,2,20,20,20,1\n") {
		t.Fatal("style record missing")
	}
}

func TestFormatJSON(t *testing.T) {
	cues := []Cue{
		{Text: "Olá <b>&", Start: 0, End: 1.2345},
		{Text: "dois", Start: 0.0625, End: 0.1875},
		{Text: "três", Start: 2, End: 2.4},
	}
	got, err := FormatJSON(cues)
	if err != nil {
		t.Fatalf("FormatJSON returned error: %v", err)
	}
	want := `{
  "segments": [
    {
      "id": 1,
      "start": 0.0,
      "end": 1.234,
      "text": "Olá <b>&"
    },
    {
      "id": 2,
      "start": 0.062,
      "end": 0.188,
      "text": "dois"
    },
    {
      "id": 3,
      "start": 2.0,
      "end": 2.4,
      "text": "três"
    }
  ]
}`
	if got != want {
		t.Fatalf("FormatJSON =\n%s\nwant\n%s", got, want)
	}
}

func TestFormatJSONEmpty(t *testing.T) {
	got, err := FormatJSON(nil)
	if err != nil {
		t.Fatalf("FormatJSON returned error: %v", err)
	}
	if got != "{\n  \"segments\": []\n}" {
		t.Fatalf("unexpected empty document %q", got)
	}
}

func TestFormatTranscript(t *testing.T) {
	cues := []Cue{{Text: "a\nb"}, {Text: "c"}}
	if got := FormatTranscript(cues); got != "a\nb\nc" {
		t.Fatalf("FormatTranscript = %q", got)
	}
}

func TestParseFormat(t *testing.T) {
	tests := map[string]Format{
		"srt":   SRT,
		" VTT ": VTT,
		"ass":   ASS,
		"json":  JSON,
		"txt":   TXT,
		"docx":  SRT,
		"":      SRT,
	}
	for in, want := range tests {
		if got := ParseFormat(in); got != want {
			t.Errorf("ParseFormat(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestFormatJSONEscapesLineSeparators(t *testing.T) {
	got, err := FormatJSON([]Cue{{Text: "um\u2028dois\u2029três", Start: 0, End: 1}})
	if err != nil {
		t.Fatalf("FormatJSON returned error: %v", err)
	}
	if !strings.Contains(got, `"text": "um\u2028dois\u2029três"`) {
		t.Fatalf("expected escaped separators, got %q", got)
	}
	if strings.ContainsAny(got, "\u2028\u2029") {
		t.Fatalf("raw line separator leaked into output: %q", got)
	}
}

func TestRenderRejectsUnknownFormat(t *testing.T) {
	_, err := Render(Format("docx"), nil)
	if !errors.Is(err, ErrUnknownFormat) {
		t.Fatalf("expected ErrUnknownFormat, got %v", err)
	}
}

func TestRenderDispatches(t *testing.T) {
	cues := []Cue{{Text: "x", Start: 0, End: 1}}
	for _, f := range Formats() {
		out, err := Render(f, cues)
		if err != nil {
			t.Fatalf("Render(%s) returned error: %v", f, err)
		}
		if !strings.Contains(out, "x") {
			t.Fatalf("Render(%s) missing text: %q", f, out)
		}
	}
}
