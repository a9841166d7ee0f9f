package language

import (
	"strings"

	textlang "golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// Auto asks the recognizer to detect the spoken language.
const Auto = "auto"

type entry struct {
	code2 string   // ISO 639-1 (2-letter)
	code3 string   // ISO 639-2 primary (3-letter)
	alt3  string   // ISO 639-2 alternate (e.g. "fre" vs "fra")
	words []string // Full word forms (e.g. "english")
}

var languages = []entry{
	{"pt", "por", "", []string{"portuguese", "português"}},
	{"en", "eng", "", []string{"english"}},
	{"es", "spa", "", []string{"spanish", "español"}},
	{"fr", "fra", "fre", []string{"french", "français"}},
	{"de", "deu", "ger", []string{"german", "deutsch"}},
	{"it", "ita", "", []string{"italian", "italiano"}},
	{"ja", "jpn", "", []string{"japanese"}},
	{"ko", "kor", "", []string{"korean"}},
	{"zh", "zho", "chi", []string{"chinese"}},
}

// Tags used for display names. Portuguese is presented as the Brazilian variant.
var displayTags = map[string]textlang.Tag{
	"pt": textlang.BrazilianPortuguese,
}

// aliases maps every 2-letter code, 3-letter code and word form to its entry.
var aliases = func() map[string]*entry {
	m := make(map[string]*entry, len(languages)*5)
	for i := range languages {
		e := &languages[i]
		for _, alias := range append([]string{e.code2, e.code3, e.alt3}, e.words...) {
			if alias != "" {
				m[alias] = e
			}
		}
	}
	return m
}()

// Language describes one selectable transcription language.
type Language struct {
	Code   string `json:"code"`
	Name   string `json:"name"`
	Native string `json:"native"`
}

// Supported lists the languages a caller may request, auto-detection first.
func Supported() []Language {
	out := make([]Language, 0, len(languages)+1)
	out = append(out, Language{Code: Auto, Name: "Auto-detect", Native: "Auto-detect"})
	for _, e := range languages {
		tag := tagFor(e.code2)
		out = append(out, Language{
			Code:   e.code2,
			Name:   display.English.Languages().Name(tag),
			Native: display.Self.Name(tag),
		})
	}
	return out
}

// IsSupported reports whether code is Auto or resolves to a supported language.
func IsSupported(code string) bool {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == Auto {
		return true
	}
	return lookup(code) != nil
}

// lookup resolves aliases first, then falls back to the base language of a
// BCP 47 tag such as "pt-BR".
func lookup(code string) *entry {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" {
		return nil
	}
	if e, ok := aliases[code]; ok {
		return e
	}
	tag, err := textlang.Parse(code)
	if err != nil {
		return nil
	}
	base, _ := tag.Base()
	return aliases[base.String()]
}

func tagFor(code2 string) textlang.Tag {
	if tag, ok := displayTags[code2]; ok {
		return tag
	}
	return textlang.Make(code2)
}

// ToISO2 converts any recognized language code, BCP 47 tag or word to
// ISO 639-1. Unknown 2-letter codes pass through; anything else yields "".
func ToISO2(code string) string {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" {
		return ""
	}
	if e := lookup(code); e != nil {
		return e.code2
	}
	if len(code) == 2 {
		return code
	}
	return ""
}

// RecognizerArg returns the language argument for the recognizer. Auto and
// empty input yield "" so the recognizer detects the language itself.
func RecognizerArg(code string) string {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" || code == Auto {
		return ""
	}
	return ToISO2(code)
}

// DisplayName returns a human-readable English name for code.
// Returns "Unknown" for empty input, or the uppercased code for unrecognized input.
func DisplayName(code string) string {
	trimmed := strings.TrimSpace(code)
	if trimmed == "" {
		return "Unknown"
	}
	if strings.EqualFold(trimmed, Auto) {
		return "Auto-detect"
	}
	if e := lookup(trimmed); e != nil {
		return display.English.Languages().Name(tagFor(e.code2))
	}
	return strings.ToUpper(trimmed)
}
