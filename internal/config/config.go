package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"scribe/internal/subtitles"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains working directories and the recognizer lock file.
type Paths struct {
	WorkDir  string `toml:"work_dir"`
	LogDir   string `toml:"log_dir"`
	LockPath string `toml:"lock_path"`
}

// Server contains HTTP API settings.
type Server struct {
	Bind           string   `toml:"bind"`
	CORSOrigins    []string `toml:"cors_origins"`
	RequestTimeout int      `toml:"request_timeout"`
	ReleaseMode    bool     `toml:"release_mode"`
}

// Text contains text-mode segmentation and pacing defaults. Durations are
// milliseconds.
type Text struct {
	Format          string  `toml:"format"`
	MaxCharsPerLine int     `toml:"max_chars_per_line"`
	MaxLinesPerCue  int     `toml:"max_lines_per_cue"`
	MaxCharsPerCue  int     `toml:"max_chars_per_cue"`
	MinDurationMS   int     `toml:"min_duration_ms"`
	MaxDurationMS   int     `toml:"max_duration_ms"`
	GapMS           int     `toml:"gap_ms"`
	MaxCPS          float64 `toml:"max_cps"`
	WordsPerMinute  float64 `toml:"words_per_minute"`
}

// Speech contains speech-mode wrapping and clamp defaults. Durations are seconds.
type Speech struct {
	Format          string  `toml:"format"`
	MaxCharsPerLine int     `toml:"max_chars_per_line"`
	MaxLines        int     `toml:"max_lines"`
	MinDuration     float64 `toml:"min_duration"`
	MaxDuration     float64 `toml:"max_duration"`
}

// Transcription contains WhisperX and ffmpeg settings.
type Transcription struct {
	Model           string   `toml:"model"`
	Language        string   `toml:"language"`
	CUDAEnabled     bool     `toml:"cuda_enabled"`
	VADMethod       string   `toml:"vad_method"`
	HFToken         string   `toml:"hf_token"`
	FFmpegBinary    string   `toml:"ffmpeg_binary"`
	TimeoutSeconds  int      `toml:"timeout_seconds"`
	VideoExtensions []string `toml:"video_extensions"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for Scribe.
//
// Configuration sections by subsystem:
//   - Paths: scratch directory, log directory, recognizer lock
//   - Server: HTTP API bind address, CORS and timeouts
//   - Text: defaults for subtitles generated from prose
//   - Speech: defaults for subtitles generated from recognizer segments
//   - Transcription: WhisperX model, language and ffmpeg lookup
//   - Logging: log format and level
type Config struct {
	Paths         Paths         `toml:"paths"`
	Server        Server        `toml:"server"`
	Text          Text          `toml:"text"`
	Speech        Speech        `toml:"speech"`
	Transcription Transcription `toml:"transcription"`
	Logging       Logging       `toml:"logging"`
}

// DefaultConfigPath returns the expanded ~/.config/scribe/config.toml.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Load reads the TOML file at path over the defaults, then normalizes and
// validates the result. With an empty path the default location is tried,
// then ./scribe.toml. It returns the config, the path it resolved and
// whether that file existed; a missing file yields defaults.
func Load(path string) (*Config, string, bool, error) {
	resolved, exists, err := locateConfig(path)
	if err != nil {
		return nil, "", false, err
	}

	cfg := Default()
	if exists {
		if err := decodeFile(resolved, &cfg); err != nil {
			return nil, "", false, err
		}
	}
	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}
	return &cfg, resolved, exists, nil
}

func decodeFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("open config: %w", err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}
	return nil
}

// locateConfig resolves which file Load reads. An explicit path is used
// even when missing so callers can report it.
func locateConfig(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		exists, err := isFile(expanded)
		return expanded, exists, err
	}

	home, err := expandPath(defaultConfigPath)
	if err != nil {
		return "", false, err
	}
	local, err := filepath.Abs(projectConfigName)
	if err != nil {
		return "", false, err
	}
	for _, candidate := range []string{home, local} {
		if ok, _ := isFile(candidate); ok {
			return candidate, true, nil
		}
	}
	return home, false, nil
}

func isFile(path string) (bool, error) {
	info, err := os.Stat(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	case err != nil:
		return false, fmt.Errorf("stat config: %w", err)
	}
	return !info.IsDir(), nil
}

// EnsureDirectories creates the work and log directories plus the lock file's parent.
func (c *Config) EnsureDirectories() error {
	dirs := []string{c.Paths.WorkDir, c.Paths.LogDir, filepath.Dir(c.Paths.LockPath)}
	for _, dir := range dirs {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// TextSettings converts the [text] section into engine settings.
func (c *Config) TextSettings() subtitles.Settings {
	return subtitles.Settings{
		MaxCharsPerLine: c.Text.MaxCharsPerLine,
		MaxLinesPerCue:  c.Text.MaxLinesPerCue,
		MaxCharsPerCue:  c.Text.MaxCharsPerCue,
		MinDurationMS:   c.Text.MinDurationMS,
		MaxDurationMS:   c.Text.MaxDurationMS,
		GapMS:           c.Text.GapMS,
		MaxCPS:          c.Text.MaxCPS,
		WordsPerMinute:  c.Text.WordsPerMinute,
	}
}

// SpeechSettings converts the [speech] section into engine settings.
func (c *Config) SpeechSettings() subtitles.SpeechSettings {
	return subtitles.SpeechSettings{
		MaxCharsPerLine: c.Speech.MaxCharsPerLine,
		MaxLines:        c.Speech.MaxLines,
		MinDuration:     c.Speech.MinDuration,
		MaxDuration:     c.Speech.MaxDuration,
	}
}

// TranscriptionTimeout returns the per-tool timeout for ffmpeg and WhisperX.
func (c *Config) TranscriptionTimeout() time.Duration {
	return time.Duration(c.Transcription.TimeoutSeconds) * time.Second
}

// RequestTimeout returns the HTTP handler deadline.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.Server.RequestTimeout) * time.Second
}

// FFprobeBinary returns the ffprobe executable that sits beside the resolved ffmpeg.
func (c *Config) FFprobeBinary() string {
	ffmpeg := strings.TrimSpace(c.Transcription.FFmpegBinary)
	if ffmpeg == "" || !strings.ContainsRune(ffmpeg, filepath.Separator) {
		return "ffprobe"
	}
	return filepath.Join(filepath.Dir(ffmpeg), strings.Replace(filepath.Base(ffmpeg), "ffmpeg", "ffprobe", 1))
}

// IsVideo reports whether path has one of the configured video extensions.
func (c *Config) IsVideo(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, candidate := range c.Transcription.VideoExtensions {
		if ext == candidate {
			return true
		}
	}
	return false
}

// ExpandPath resolves a leading "~" and returns an absolute, cleaned path.
// Empty input stays empty.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return "", nil
	}
	if pathValue == "~" || strings.HasPrefix(pathValue, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		pathValue = home + strings.TrimPrefix(pathValue, "~")
	}
	absolute, err := filepath.Abs(pathValue)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", pathValue, err)
	}
	return absolute, nil
}

func defaultCacheDir() string {
	if base, ok := os.LookupEnv("XDG_CACHE_HOME"); ok && strings.TrimSpace(base) != "" {
		return filepath.Join(base, "scribe")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "~/.cache/scribe"
	}
	return filepath.Join(home, ".cache", "scribe")
}

// CreateSample writes the commented sample configuration to path,
// creating parent directories.
func CreateSample(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
