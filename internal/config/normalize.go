package config

import (
	"fmt"
	"os"
	"strings"

	"scribe/internal/subtitles"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeServer()
	c.normalizeFormats()
	if err := c.normalizeTranscription(); err != nil {
		return err
	}
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.WorkDir) == "" {
		c.Paths.WorkDir = Default().Paths.WorkDir
	}
	if c.Paths.WorkDir, err = expandPath(c.Paths.WorkDir); err != nil {
		return fmt.Errorf("paths.work_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LockPath) == "" {
		c.Paths.LockPath = Default().Paths.LockPath
	}
	if c.Paths.LockPath, err = expandPath(c.Paths.LockPath); err != nil {
		return fmt.Errorf("paths.lock_path: %w", err)
	}
	return nil
}

func (c *Config) normalizeServer() {
	c.Server.Bind = strings.TrimSpace(c.Server.Bind)
	if c.Server.Bind == "" {
		c.Server.Bind = defaultBind
	}
	origins := make([]string, 0, len(c.Server.CORSOrigins))
	for _, origin := range c.Server.CORSOrigins {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	c.Server.CORSOrigins = origins
}

func (c *Config) normalizeFormats() {
	c.Text.Format = string(subtitles.ParseFormat(c.Text.Format))
	c.Speech.Format = string(subtitles.ParseFormat(c.Speech.Format))
}

func (c *Config) normalizeTranscription() error {
	c.Transcription.Model = strings.TrimSpace(c.Transcription.Model)
	if c.Transcription.Model == "" {
		c.Transcription.Model = defaultModel
	}
	c.Transcription.Language = strings.ToLower(strings.TrimSpace(c.Transcription.Language))
	if c.Transcription.Language == "" {
		c.Transcription.Language = defaultLanguage
	}
	c.Transcription.VADMethod = strings.ToLower(strings.TrimSpace(c.Transcription.VADMethod))
	if c.Transcription.VADMethod == "" {
		c.Transcription.VADMethod = defaultVADMethod
	}
	c.Transcription.HFToken = strings.TrimSpace(c.Transcription.HFToken)
	if value, ok := os.LookupEnv("HF_TOKEN"); ok && strings.TrimSpace(value) != "" {
		c.Transcription.HFToken = strings.TrimSpace(value)
	}

	ffmpeg := strings.TrimSpace(c.Transcription.FFmpegBinary)
	if strings.ContainsAny(ffmpeg, `/\`) || strings.HasPrefix(ffmpeg, "~") {
		expanded, err := expandPath(ffmpeg)
		if err != nil {
			return fmt.Errorf("transcription.ffmpeg_binary: %w", err)
		}
		ffmpeg = expanded
	}
	c.Transcription.FFmpegBinary = ffmpeg

	if len(c.Transcription.VideoExtensions) == 0 {
		c.Transcription.VideoExtensions = append([]string(nil), defaultVideoExtensions...)
	} else {
		exts := make([]string, 0, len(c.Transcription.VideoExtensions))
		seen := make(map[string]struct{}, len(c.Transcription.VideoExtensions))
		for _, ext := range c.Transcription.VideoExtensions {
			normalized := strings.ToLower(strings.TrimSpace(ext))
			if normalized == "" {
				continue
			}
			if !strings.HasPrefix(normalized, ".") {
				normalized = "." + normalized
			}
			if _, exists := seen[normalized]; exists {
				continue
			}
			seen[normalized] = struct{}{}
			exts = append(exts, normalized)
		}
		c.Transcription.VideoExtensions = exts
	}
	return nil
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
