package subtitles

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Segment splits cleaned text into untimed cues no longer than
// s.MaxCharsPerCue runes, packing whole sentences where possible.
func Segment(text string, s Settings) []Cue {
	var cues []Cue
	maxChars := s.MaxCharsPerCue

	for _, paragraph := range strings.Split(text, "\n\n") {
		paragraph = strings.TrimFunc(paragraph, unicode.IsSpace)
		if paragraph == "" {
			continue
		}

		var current []string
		currentLen := 0
		flush := func() {
			if len(current) > 0 {
				cues = append(cues, newCue(strings.Join(current, " "), s))
			}
		}

		for _, sentence := range SplitSentences(paragraph) {
			sentence = strings.TrimFunc(sentence, unicode.IsSpace)
			if sentence == "" {
				continue
			}
			sentenceLen := utf8.RuneCountInString(sentence)

			switch {
			case sentenceLen > maxChars:
				flush()
				current, currentLen = nil, 0
				cues = append(cues, splitLongSentence(sentence, s)...)
			case currentLen+sentenceLen+1 > maxChars:
				flush()
				current = []string{sentence}
				currentLen = sentenceLen
			default:
				current = append(current, sentence)
				currentLen += sentenceLen + 1
			}
		}
		flush()
	}
	return cues
}

// splitLongSentence word-packs a sentence that cannot fit in one cue. The
// running length counts a separator for every appended word, including the
// first word of the first block.
func splitLongSentence(sentence string, s Settings) []Cue {
	var cues []Cue
	var current []string
	currentLen := 0

	for _, word := range strings.Fields(sentence) {
		wordLen := utf8.RuneCountInString(word)
		if currentLen+wordLen+1 > s.MaxCharsPerCue {
			if len(current) > 0 {
				cues = append(cues, newCue(strings.Join(current, " "), s))
			}
			current = []string{word}
			currentLen = wordLen
			continue
		}
		current = append(current, word)
		currentLen += wordLen + 1
	}
	if len(current) > 0 {
		cues = append(cues, newCue(strings.Join(current, " "), s))
	}
	return cues
}

func newCue(block string, s Settings) Cue {
	return Cue{
		Text:      strings.Join(WrapLines(block, s.MaxCharsPerLine, s.MaxLinesPerCue), "\n"),
		RawText:   block,
		CharCount: utf8.RuneCountInString(block),
	}
}

// SplitSentences breaks a paragraph at whitespace that follows '.', '!' or '?'
// and precedes an uppercase Latin letter (including common Portuguese
// accented capitals). The whitespace itself is discarded. Abbreviations,
// lowercase sentence starts and non-Latin scripts are not recognised.
func SplitSentences(text string) []string {
	var sentences []string
	start := 0
	i := 0
	for i < len(text) {
		r, size := utf8.DecodeRuneInString(text[i:])
		if r != '.' && r != '!' && r != '?' {
			i += size
			continue
		}
		wsStart := i + size
		wsEnd := wsStart
		for wsEnd < len(text) {
			ws, wsSize := utf8.DecodeRuneInString(text[wsEnd:])
			if !unicode.IsSpace(ws) {
				break
			}
			wsEnd += wsSize
		}
		if wsEnd == wsStart || wsEnd == len(text) {
			i = wsStart
			continue
		}
		next, _ := utf8.DecodeRuneInString(text[wsEnd:])
		if !isSentenceInitial(next) {
			i = wsEnd
			continue
		}
		sentences = append(sentences, text[start:wsStart])
		start = wsEnd
		i = wsEnd
	}
	return append(sentences, text[start:])
}

func isSentenceInitial(r rune) bool {
	if r >= 'A' && r <= 'Z' {
		return true
	}
	return strings.ContainsRune("ÁÀÂÃÉÊÍÓÔÕÚÇ", r)
}
