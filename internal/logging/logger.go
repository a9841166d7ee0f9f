package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"scribe/internal/config"
)

// LogFileName is the file written inside the configured log directory.
const LogFileName = "scribe.log"

// Options describes logger construction parameters. OutputPaths accepts
// "stdout", "stderr" or file paths; duplicates are ignored.
type Options struct {
	Level       string
	Format      string
	OutputPaths []string
	Development bool
}

// New builds a console or JSON logger. Debug level and Development both add
// source locations to every line.
func New(opts Options) (*slog.Logger, error) {
	level := new(slog.LevelVar)
	level.Set(parseLevel(opts.Level))
	withSource := opts.Development || level.Level() <= slog.LevelDebug

	format := strings.ToLower(strings.TrimSpace(opts.Format))
	if format != "" && format != "console" && format != "json" {
		return nil, fmt.Errorf("log format: unsupported value %q", opts.Format)
	}

	out, err := openOutputs(opts.OutputPaths)
	if err != nil {
		return nil, err
	}
	if format == "json" {
		return slog.New(newJSONHandler(out, level, withSource)), nil
	}
	return slog.New(newConsoleHandler(out, level, withSource)), nil
}

// NewFromConfig logs to stderr plus LogFileName under cfg.Paths.LogDir.
// Stdout stays free for subtitles piped out of the CLI.
func NewFromConfig(cfg *config.Config) (*slog.Logger, error) {
	opts := Options{Level: "info", Format: "console", OutputPaths: []string{"stderr"}}
	if cfg == nil {
		return New(opts)
	}
	opts.Level = cfg.Logging.Level
	opts.Format = cfg.Logging.Format
	if dir := strings.TrimSpace(cfg.Paths.LogDir); dir != "" {
		opts.OutputPaths = append(opts.OutputPaths, filepath.Join(dir, LogFileName))
	}
	return New(opts)
}

func parseLevel(level string) slog.Level {
	levels := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
	}
	if parsed, ok := levels[strings.ToLower(strings.TrimSpace(level))]; ok {
		return parsed
	}
	return slog.LevelInfo
}

func openOutputs(paths []string) (io.Writer, error) {
	var writers []io.Writer
	var seen []string
	for _, raw := range paths {
		target := strings.TrimSpace(raw)
		if target == "" || slices.Contains(seen, target) {
			continue
		}
		seen = append(seen, target)

		switch target {
		case "stdout":
			writers = append(writers, os.Stdout)
		case "stderr":
			writers = append(writers, os.Stderr)
		default:
			file, err := openLogFile(target)
			if err != nil {
				return nil, err
			}
			writers = append(writers, file)
		}
	}

	switch len(writers) {
	case 0:
		return os.Stderr, nil
	case 1:
		return writers[0], nil
	}
	return io.MultiWriter(writers...), nil
}

func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("ensure log directory: %w", err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o664)
	if err != nil {
		return nil, fmt.Errorf("open log file %s: %w", path, err)
	}
	return file, nil
}
