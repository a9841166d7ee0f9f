package main

import (
	"encoding/json"
	"testing"

	"scribe/internal/language"
)

func TestLanguagesJSON(t *testing.T) {
	out, _, err := runCLI(t, []string{"languages", "--json"}, "", "")
	if err != nil {
		t.Fatalf("languages: %v", err)
	}
	var payload struct {
		Languages []language.Language `json:"languages"`
	}
	if err := json.Unmarshal([]byte(out), &payload); err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}
	if len(payload.Languages) != len(language.Supported()) {
		t.Fatalf("expected %d languages, got %d", len(language.Supported()), len(payload.Languages))
	}
	if payload.Languages[0].Code != language.Auto {
		t.Fatalf("expected auto first, got %q", payload.Languages[0].Code)
	}
}

func TestLanguagesTable(t *testing.T) {
	out, _, err := runCLI(t, []string{"languages"}, "", "")
	if err != nil {
		t.Fatalf("languages: %v", err)
	}
	requireContains(t, out, "Code")
	requireContains(t, out, "pt")
}
