package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"scribe/internal/config"
)

// ConfigOption adjusts the config built by NewConfig.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t    testing.TB
	base string
	cfg  config.Config
}

// NewConfig returns the default config with every path under a fresh temp
// directory and the API bound to an ephemeral port. Directories exist on return.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	b := &configBuilder{t: t, base: t.TempDir(), cfg: config.Default()}
	b.cfg.Paths = config.Paths{
		WorkDir:  filepath.Join(b.base, "work"),
		LogDir:   filepath.Join(b.base, "logs"),
		LockPath: filepath.Join(b.base, "transcribe.lock"),
	}
	b.cfg.Server.Bind = "127.0.0.1:0"
	for _, opt := range opts {
		opt(b)
	}

	if err := b.cfg.EnsureDirectories(); err != nil {
		t.Fatalf("ensure directories: %v", err)
	}
	return &b.cfg
}

// WithLanguage sets the default transcription language.
func WithLanguage(code string) ConfigOption {
	return func(b *configBuilder) { b.cfg.Transcription.Language = code }
}

// WithFormat sets the default output format for both pipelines.
func WithFormat(format string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Text.Format = format
		b.cfg.Speech.Format = format
	}
}

// WithStubbedBinaries writes no-op executables (ffmpeg, ffprobe and uvx when
// names is empty) into a bin directory that becomes the whole PATH, and
// clears the configured ffmpeg so lookup goes through PATH.
func WithStubbedBinaries(names ...string) ConfigOption {
	return func(b *configBuilder) {
		if len(names) == 0 {
			names = []string{"ffmpeg", "ffprobe", "uvx"}
		}
		bin := filepath.Join(b.base, "bin")
		for _, name := range names {
			WriteFile(b.t, filepath.Join(bin, name), "#!/bin/sh\nexit 0\n")
			if err := os.Chmod(filepath.Join(bin, name), 0o755); err != nil {
				b.t.Fatalf("chmod stub %s: %v", name, err)
			}
		}
		if err := os.MkdirAll(bin, 0o755); err != nil {
			b.t.Fatalf("mkdir bin dir: %v", err)
		}
		b.t.Setenv("PATH", bin)
		b.cfg.Transcription.FFmpegBinary = ""
	}
}
