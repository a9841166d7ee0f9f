package language

import "testing"

func TestToISO2(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		// 2-letter codes pass through
		{"pt", "pt"},
		{"EN", "en"},
		// 3-letter codes convert
		{"por", "pt"},
		{"fre", "fr"},
		{"ger", "de"},
		{"chi", "zh"},
		// Word forms
		{"Portuguese", "pt"},
		{"español", "es"},
		// Region tags
		{"pt-BR", "pt"},
		{"en-US", "en"},
		// Unknown 2-letter passes through
		{"xy", "xy"},
		// Unknown 3-letter returns empty
		{"xyz", ""},
		{"", ""},
		{" ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if result := ToISO2(tt.input); result != tt.expected {
				t.Errorf("ToISO2(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestSupported(t *testing.T) {
	langs := Supported()
	want := []string{"auto", "pt", "en", "es", "fr", "de", "it", "ja", "ko", "zh"}
	if len(langs) != len(want) {
		t.Fatalf("expected %d languages, got %d", len(want), len(langs))
	}
	for i, code := range want {
		if langs[i].Code != code {
			t.Fatalf("position %d: got %q want %q", i, langs[i].Code, code)
		}
		if langs[i].Name == "" || langs[i].Native == "" {
			t.Fatalf("language %q missing names: %+v", code, langs[i])
		}
	}
	if langs[2].Name != "English" {
		t.Fatalf("unexpected English name %q", langs[2].Name)
	}
}

func TestIsSupported(t *testing.T) {
	for _, code := range []string{"auto", "AUTO", "pt", "ja", "eng", "pt-BR"} {
		if !IsSupported(code) {
			t.Errorf("expected %q supported", code)
		}
	}
	for _, code := range []string{"", "ru", "xx"} {
		if IsSupported(code) {
			t.Errorf("expected %q unsupported", code)
		}
	}
}

func TestRecognizerArg(t *testing.T) {
	tests := map[string]string{
		"auto":       "",
		"":           "",
		"pt":         "pt",
		"Portuguese": "pt",
		"jpn":        "ja",
	}
	for in, want := range tests {
		if got := RecognizerArg(in); got != want {
			t.Errorf("RecognizerArg(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestDisplayName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"en", "English"},
		{"ja", "Japanese"},
		{"auto", "Auto-detect"},
		{"", "Unknown"},
		{"xx", "XX"},
	}
	for _, tt := range tests {
		if got := DisplayName(tt.input); got != tt.expected {
			t.Errorf("DisplayName(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}
