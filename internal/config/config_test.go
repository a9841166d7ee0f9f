package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pelletier/go-toml/v2"

	"scribe/internal/config"
	"scribe/internal/services"
	"scribe/internal/subtitles"
)

func TestLoadDefaultConfigExpandsPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Setenv("XDG_CACHE_HOME", "")
	t.Setenv("HF_TOKEN", "")
	t.Chdir(t.TempDir())

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved != filepath.Join(tempHome, ".config", "scribe", "config.toml") {
		t.Fatalf("unexpected resolved path %q", resolved)
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantLogDir := filepath.Join(tempHome, ".local", "share", "scribe", "logs")
	if cfg.Paths.LogDir != wantLogDir {
		t.Fatalf("unexpected log dir: got %q want %q", cfg.Paths.LogDir, wantLogDir)
	}
	if cfg.Paths.WorkDir != filepath.Join(tempHome, ".cache", "scribe", "work") {
		t.Fatalf("unexpected work dir: %q", cfg.Paths.WorkDir)
	}
	if cfg.Server.Bind != "127.0.0.1:5123" {
		t.Fatalf("unexpected bind: %q", cfg.Server.Bind)
	}
	if cfg.Transcription.Model != "base" || cfg.Transcription.Language != "pt" {
		t.Fatalf("unexpected transcription defaults: %+v", cfg.Transcription)
	}
	if cfg.Transcription.VADMethod != "silero" {
		t.Fatalf("expected silero VAD, got %q", cfg.Transcription.VADMethod)
	}
	if cfg.Text.Format != "srt" || cfg.Speech.Format != "srt" {
		t.Fatalf("expected srt default formats, got %q/%q", cfg.Text.Format, cfg.Speech.Format)
	}
	if cfg.TextSettings() != subtitles.DefaultSettings() {
		t.Fatalf("text settings drifted from engine defaults: %+v", cfg.TextSettings())
	}
	if cfg.SpeechSettings() != subtitles.DefaultSpeechSettings() {
		t.Fatalf("speech settings drifted from engine defaults: %+v", cfg.SpeechSettings())
	}
	if cfg.TranscriptionTimeout() != 5*time.Minute {
		t.Fatalf("unexpected transcription timeout %v", cfg.TranscriptionTimeout())
	}

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories failed: %v", err)
	}
	for _, dir := range []string{cfg.Paths.WorkDir, cfg.Paths.LogDir, filepath.Dir(cfg.Paths.LockPath)} {
		info, err := os.Stat(dir)
		if err != nil {
			t.Fatalf("expected directory %q to exist: %v", dir, err)
		}
		if !info.IsDir() {
			t.Fatalf("expected %q to be directory", dir)
		}
	}
}

func TestLoadProjectFileFallback(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	project := t.TempDir()
	t.Chdir(project)
	if err := os.WriteFile("scribe.toml", []byte("[server]\nbind = \"0.0.0.0:8080\"\n"), 0o644); err != nil {
		t.Fatalf("write project config: %v", err)
	}

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || filepath.Base(resolved) != "scribe.toml" {
		t.Fatalf("expected project config, got %q (exists=%v)", resolved, exists)
	}
	if cfg.Server.Bind != "0.0.0.0:8080" {
		t.Fatalf("expected bind override, got %q", cfg.Server.Bind)
	}
}

func TestLoadCustomPath(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "scribe.toml")

	type payload struct {
		Text struct {
			Format         string `toml:"format"`
			MaxCharsPerCue int    `toml:"max_chars_per_cue"`
			GapMS          int    `toml:"gap_ms"`
		} `toml:"text"`
		Speech struct {
			MinDuration float64 `toml:"min_duration"`
		} `toml:"speech"`
		Transcription struct {
			Language        string   `toml:"language"`
			VideoExtensions []string `toml:"video_extensions"`
		} `toml:"transcription"`
	}
	custom := payload{}
	custom.Text.Format = "VTT"
	custom.Text.MaxCharsPerCue = 60
	custom.Text.GapMS = 200
	custom.Speech.MinDuration = 1.0
	custom.Transcription.Language = "EN"
	custom.Transcription.VideoExtensions = []string{"MP4", ".mkv", "mp4"}
	data, err := toml.Marshal(custom)
	if err != nil {
		t.Fatalf("marshal custom config: %v", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		t.Fatalf("write custom config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected exists to be true")
	}
	if resolved != configPath {
		t.Fatalf("unexpected resolved path: got %q want %q", resolved, configPath)
	}
	if cfg.Text.Format != "vtt" {
		t.Fatalf("expected normalized format vtt, got %q", cfg.Text.Format)
	}
	settings := cfg.TextSettings()
	if settings.MaxCharsPerCue != 60 || settings.GapMS != 200 {
		t.Fatalf("unexpected text settings %+v", settings)
	}
	if settings.MaxCharsPerLine != subtitles.DefaultMaxCharsPerLine {
		t.Fatalf("expected untouched fields to keep defaults, got %+v", settings)
	}
	if cfg.SpeechSettings().MinDuration != 1.0 {
		t.Fatalf("unexpected speech min duration %v", cfg.SpeechSettings().MinDuration)
	}
	if cfg.Transcription.Language != "en" {
		t.Fatalf("expected lowercased language, got %q", cfg.Transcription.Language)
	}
	if got := strings.Join(cfg.Transcription.VideoExtensions, ","); got != ".mp4,.mkv" {
		t.Fatalf("unexpected video extensions %q", got)
	}
	if !cfg.IsVideo("/tmp/clip.MKV") || cfg.IsVideo("/tmp/voice.wav") {
		t.Fatal("IsVideo did not honour configured extensions")
	}
}

func TestUnknownFormatFallsBackToSRT(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "scribe.toml")
	if err := os.WriteFile(configPath, []byte("[speech]\nformat = \"docx\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, _, _, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Speech.Format != "srt" {
		t.Fatalf("expected srt fallback, got %q", cfg.Speech.Format)
	}
}

func TestEnvVarOverridesHFToken(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "scribe.toml")
	if err := os.WriteFile(configPath, []byte("[transcription]\nhf_token = \"file-hf\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("HF_TOKEN", "env-hf")

	cfg, _, _, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Transcription.HFToken != "env-hf" {
		t.Fatalf("expected HF token from env, got %q", cfg.Transcription.HFToken)
	}
}

func TestCreateSample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "sample.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample failed: %v", err)
	}

	contents, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}

	var cfg config.Config
	if err := toml.Unmarshal(contents, &cfg); err != nil {
		t.Fatalf("unmarshal sample: %v", err)
	}
	if !strings.Contains(cfg.Paths.WorkDir, "scribe") {
		t.Fatalf("expected work dir to contain scribe, got %q", cfg.Paths.WorkDir)
	}
	if cfg.Server.Bind != "127.0.0.1:5123" {
		t.Fatalf("unexpected sample bind %q", cfg.Server.Bind)
	}

	// The sample must load cleanly through the full pipeline.
	t.Setenv("HF_TOKEN", "")
	if _, _, _, err := config.Load(path); err != nil {
		t.Fatalf("sample config failed validation: %v", err)
	}
}

func TestValidateDetectsInvalidValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{name: "bind without port", mutate: func(c *config.Config) { c.Server.Bind = "localhost" }},
		{name: "request timeout", mutate: func(c *config.Config) { c.Server.RequestTimeout = 0 }},
		{name: "max lines", mutate: func(c *config.Config) { c.Text.MaxLinesPerCue = 0 }},
		{name: "duration order", mutate: func(c *config.Config) { c.Text.MaxDurationMS = 10 }},
		{name: "speech clamp", mutate: func(c *config.Config) { c.Speech.MaxDuration = 0.5 }},
		{name: "transcription timeout", mutate: func(c *config.Config) { c.Transcription.TimeoutSeconds = 0 }},
		{name: "vad method", mutate: func(c *config.Config) { c.Transcription.VADMethod = "webrtc" }},
		{name: "pyannote without token", mutate: func(c *config.Config) { c.Transcription.VADMethod = "pyannote" }},
		{name: "language", mutate: func(c *config.Config) { c.Transcription.Language = "xx" }},
		{name: "log level", mutate: func(c *config.Config) { c.Logging.Level = "trace" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}

	cfg := config.Default()
	cfg.Text.MaxCPS = 0
	if err := cfg.Validate(); !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected engine settings error to carry ErrConfiguration, got %v", err)
	}
	defaults := config.Default()
	if err := defaults.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
}
