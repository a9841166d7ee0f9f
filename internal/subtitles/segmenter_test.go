package subtitles

import (
	"reflect"
	"strings"
	"testing"
	"unicode/utf8"
)

func TestSplitSentences(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{in: "Hello world. This is a test.", want: []string{"Hello world.", "This is a test."}},
		{in: "Dr. Silva chegou. ótimo dia! Érico veio?", want: []string{"Dr.", "Silva chegou. ótimo dia!", "Érico veio?"}},
		{in: "Wait...  Next one", want: []string{"Wait...", "Next one"}},
		{in: "Line end.\nNew line", want: []string{"Line end.", "New line"}},
		{in: "No split.here", want: []string{"No split.here"}},
		{in: "Trailing space. ", want: []string{"Trailing space. "}},
	}
	for _, tt := range tests {
		if got := SplitSentences(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Fatalf("SplitSentences(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSegmentPacksSentences(t *testing.T) {
	cues := Segment("Hello world. This is a test.", DefaultSettings())
	if len(cues) != 1 {
		t.Fatalf("expected 1 cue, got %d", len(cues))
	}
	cue := cues[0]
	if cue.RawText != "Hello world. This is a test." {
		t.Fatalf("unexpected raw text %q", cue.RawText)
	}
	if cue.Text != cue.RawText {
		t.Fatalf("expected single wrapped line, got %q", cue.Text)
	}
	if cue.CharCount != 28 {
		t.Fatalf("expected 28 chars, got %d", cue.CharCount)
	}
}

func TestSegmentStartsNewCueWhenSentenceDoesNotFit(t *testing.T) {
	s := DefaultSettings(WithMaxCharsPerCue(20))
	cues := Segment("First one here. Second one here. Third.", s)
	var raw []string
	for _, c := range cues {
		raw = append(raw, c.RawText)
	}
	want := []string{"First one here.", "Second one here.", "Third."}
	if !reflect.DeepEqual(raw, want) {
		t.Fatalf("unexpected blocks %q, want %q", raw, want)
	}
}

func TestSegmentRespectsParagraphs(t *testing.T) {
	cues := Segment("First paragraph.\n\nSecond paragraph.\n\n   \n\nThird.", DefaultSettings())
	if len(cues) != 3 {
		t.Fatalf("expected one cue per paragraph, got %d", len(cues))
	}
}

func TestSegmentSplitsLongSentence(t *testing.T) {
	words := make([]string, 20)
	for i := range words {
		words[i] = "abcdefghi"
	}
	sentence := strings.Join(words, " ") + "."
	if utf8.RuneCountInString(sentence) != 200 {
		t.Fatalf("fixture length = %d", utf8.RuneCountInString(sentence))
	}

	cues := Segment(sentence, DefaultSettings())
	if len(cues) != 3 {
		t.Fatalf("expected 3 cues, got %d", len(cues))
	}
	wantWords := []int{8, 8, 4}
	for i, cue := range cues {
		if cue.CharCount > 84 {
			t.Fatalf("cue %d has %d chars", i, cue.CharCount)
		}
		if n := len(strings.Fields(cue.RawText)); n != wantWords[i] {
			t.Fatalf("cue %d has %d words, want %d", i, n, wantWords[i])
		}
		if strings.Count(cue.Text, "\n") > 1 {
			t.Fatalf("cue %d wrapped to more than 2 lines: %q", i, cue.Text)
		}
	}
}

func TestSegmentFlushesBeforeLongSentence(t *testing.T) {
	long := "Word " + strings.Repeat("word ", 20) + "end."
	cues := Segment("Short one. "+long, DefaultSettings())
	if len(cues) < 2 {
		t.Fatalf("expected at least 2 cues, got %d", len(cues))
	}
	if cues[0].RawText != "Short one." {
		t.Fatalf("expected pending block flushed first, got %q", cues[0].RawText)
	}
}
