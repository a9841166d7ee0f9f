package config

import (
	"path/filepath"

	"scribe/internal/subtitles"
)

const (
	defaultConfigPath      = "~/.config/scribe/config.toml"
	projectConfigName      = "scribe.toml"
	defaultLogDir          = "~/.local/share/scribe/logs"
	defaultBind            = "127.0.0.1:5123"
	defaultRequestTimeout  = 900
	defaultFormat          = "srt"
	defaultModel           = "base"
	defaultLanguage        = "pt"
	defaultVADMethod       = "silero"
	defaultTimeoutSeconds  = 300
	defaultLogFormat       = "console"
	defaultLogLevel        = "info"
	defaultLockFileName    = "transcribe.lock"
	defaultWorkDirName     = "work"
	defaultCORSAllowOrigin = "*"
)

var defaultVideoExtensions = []string{".mp4", ".mov", ".mkv", ".avi", ".webm", ".flv", ".wmv"}

// Default returns a Config populated with repository defaults.
func Default() Config {
	text := subtitles.DefaultSettings()
	speech := subtitles.DefaultSpeechSettings()
	cache := defaultCacheDir()
	return Config{
		Paths: Paths{
			WorkDir:  filepath.Join(cache, defaultWorkDirName),
			LogDir:   defaultLogDir,
			LockPath: filepath.Join(cache, defaultLockFileName),
		},
		Server: Server{
			Bind:           defaultBind,
			CORSOrigins:    []string{defaultCORSAllowOrigin},
			RequestTimeout: defaultRequestTimeout,
			ReleaseMode:    true,
		},
		Text: Text{
			Format:          defaultFormat,
			MaxCharsPerLine: text.MaxCharsPerLine,
			MaxLinesPerCue:  text.MaxLinesPerCue,
			MaxCharsPerCue:  text.MaxCharsPerCue,
			MinDurationMS:   text.MinDurationMS,
			MaxDurationMS:   text.MaxDurationMS,
			GapMS:           text.GapMS,
			MaxCPS:          text.MaxCPS,
			WordsPerMinute:  text.WordsPerMinute,
		},
		Speech: Speech{
			Format:          defaultFormat,
			MaxCharsPerLine: speech.MaxCharsPerLine,
			MaxLines:        speech.MaxLines,
			MinDuration:     speech.MinDuration,
			MaxDuration:     speech.MaxDuration,
		},
		Transcription: Transcription{
			Model:           defaultModel,
			Language:        defaultLanguage,
			VADMethod:       defaultVADMethod,
			TimeoutSeconds:  defaultTimeoutSeconds,
			VideoExtensions: append([]string(nil), defaultVideoExtensions...),
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
