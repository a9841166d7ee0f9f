package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"scribe/internal/config"
	"scribe/internal/deps"
	"scribe/internal/logging"
	"scribe/internal/services"
	"scribe/internal/subtitles"
	"scribe/internal/transcription"
)

type commandContext struct {
	configFlag   *string
	logLevelFlag *string

	configOnce   sync.Once
	config       *config.Config
	configPath   string
	configExists bool
	configErr    error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error
}

func newCommandContext(configFlag, logLevelFlag *string) *commandContext {
	return &commandContext{
		configFlag:   configFlag,
		logLevelFlag: logLevelFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, resolved, exists, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if c.logLevelFlag != nil && strings.TrimSpace(*c.logLevelFlag) != "" {
			cfg.Logging.Level = strings.ToLower(strings.TrimSpace(*c.logLevelFlag))
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
		c.configPath = resolved
		c.configExists = exists
	})
	return c.config, c.configErr
}

func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.loggerErr = err
			return
		}
		logger, err := logging.NewFromConfig(cfg)
		if err != nil {
			c.loggerErr = fmt.Errorf("init logger: %w", err)
			return
		}
		c.logger = logger
	})
	return c.logger, c.loggerErr
}

func (c *commandContext) engine(logger *slog.Logger) *subtitles.Engine {
	return subtitles.NewEngine(subtitles.WithLogger(logging.NewComponentLogger(logger, "engine")))
}

// transcriber builds the WhisperX-backed speech pipeline with the resolved
// ffmpeg binary.
func (c *commandContext) transcriber(cfg *config.Config, logger *slog.Logger) *transcription.Service {
	ffmpeg := deps.ResolveFFmpegPath(cfg.Transcription.FFmpegBinary)
	return transcription.NewWhisperX(cfg, ffmpeg, c.engine(logger), transcription.WithLogger(logger))
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

// runContext tags the command's context with a fresh correlation id.
func runContext(cmd *cobra.Command) context.Context {
	return services.WithRequestID(cmd.Context(), uuid.NewString())
}
