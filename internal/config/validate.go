package config

import (
	"errors"
	"fmt"
	"net"
	"strings"

	"scribe/internal/language"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.TextSettings().Validate(); err != nil {
		return fmt.Errorf("text: %w", err)
	}
	if err := c.SpeechSettings().Validate(); err != nil {
		return fmt.Errorf("speech: %w", err)
	}
	if err := c.validateTranscription(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateServer() error {
	if _, _, err := net.SplitHostPort(c.Server.Bind); err != nil {
		return fmt.Errorf("server.bind %q must be host:port: %w", c.Server.Bind, err)
	}
	if c.Server.RequestTimeout <= 0 {
		return errors.New("server.request_timeout must be positive (seconds)")
	}
	return nil
}

func (c *Config) validateTranscription() error {
	if c.Transcription.TimeoutSeconds <= 0 {
		return errors.New("transcription.timeout_seconds must be positive")
	}
	switch c.Transcription.VADMethod {
	case "silero", "pyannote":
	default:
		return fmt.Errorf("transcription.vad_method must be silero or pyannote, got %q", c.Transcription.VADMethod)
	}
	if c.Transcription.VADMethod == "pyannote" && strings.TrimSpace(c.Transcription.HFToken) == "" {
		return errors.New("transcription.hf_token must be set when transcription.vad_method is pyannote (or set HF_TOKEN)")
	}
	if !language.IsSupported(c.Transcription.Language) {
		return fmt.Errorf("transcription.language %q is not supported", c.Transcription.Language)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
		return nil
	default:
		return fmt.Errorf("logging.level %q must be one of debug, info, warn, error", c.Logging.Level)
	}
}
