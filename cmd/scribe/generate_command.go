package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"scribe/internal/subtitles"
)

type textFlags struct {
	format          string
	startTime       float64
	maxCharsPerLine int
	maxLines        int
	maxCharsPerCue  int
	minDurationMS   int
	maxDurationMS   int
	gapMS           int
	maxCPS          float64
	wpm             float64
}

func (f *textFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVarP(&f.format, "format", "f", "", "Output format: srt, vtt, ass, json or txt (default from config)")
	flags.Float64Var(&f.startTime, "start-time", 0, "Start time of the first cue in seconds")
	flags.IntVar(&f.maxCharsPerLine, "max-chars-per-line", 0, "Maximum characters per subtitle line")
	flags.IntVar(&f.maxLines, "max-lines", 0, "Maximum lines per cue")
	flags.IntVar(&f.maxCharsPerCue, "max-chars-per-cue", 0, "Maximum characters per cue")
	flags.IntVar(&f.minDurationMS, "min-duration-ms", 0, "Minimum cue duration in milliseconds")
	flags.IntVar(&f.maxDurationMS, "max-duration-ms", 0, "Maximum cue duration in milliseconds")
	flags.IntVar(&f.gapMS, "gap-ms", 0, "Gap between cues in milliseconds")
	flags.Float64Var(&f.maxCPS, "max-cps", 0, "Reading speed in characters per second")
	flags.Float64Var(&f.wpm, "wpm", 0, "Reading speed in words per minute")
}

// apply overlays explicitly set flags on base.
func (f *textFlags) apply(cmd *cobra.Command, base subtitles.Settings) subtitles.Settings {
	changed := cmd.Flags().Changed
	s := base
	if changed("max-chars-per-line") {
		s.MaxCharsPerLine = f.maxCharsPerLine
	}
	if changed("max-lines") {
		s.MaxLinesPerCue = f.maxLines
	}
	if changed("max-chars-per-cue") {
		s.MaxCharsPerCue = f.maxCharsPerCue
	}
	if changed("min-duration-ms") {
		s.MinDurationMS = f.minDurationMS
	}
	if changed("max-duration-ms") {
		s.MaxDurationMS = f.maxDurationMS
	}
	if changed("gap-ms") {
		s.GapMS = f.gapMS
	}
	if changed("max-cps") {
		s.MaxCPS = f.maxCPS
	}
	if changed("wpm") {
		s.WordsPerMinute = f.wpm
	}
	return s
}

func newGenerateCommand(ctx *commandContext) *cobra.Command {
	var flags textFlags
	var outputPath string
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "generate [text-file]",
		Short: "Generate subtitles from prose (reads stdin when no file or '-')",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			text, err := readTextInput(cmd, args)
			if err != nil {
				return err
			}

			format := cfg.Text.Format
			if strings.TrimSpace(flags.format) != "" {
				format = flags.format
			}
			resolved, err := parseFormatFlag(format)
			if err != nil {
				return err
			}

			result, err := ctx.engine(logger).FromText(runContext(cmd), subtitles.TextRequest{
				Text:      text,
				Format:    resolved,
				Settings:  flags.apply(cmd, cfg.TextSettings()),
				StartTime: flags.startTime,
			})
			if err != nil {
				return err
			}
			return emitResult(cmd, outputPath, jsonOutput, result)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Write subtitles to this file instead of stdout")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the result envelope as JSON")
	return cmd
}

func readTextInput(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("read text file: %w", err)
	}
	return string(data), nil
}

// parseFormatFlag rejects unknown names instead of silently using SRT.
func parseFormatFlag(name string) (subtitles.Format, error) {
	f := subtitles.Format(strings.ToLower(strings.TrimSpace(name)))
	if !f.Valid() {
		return "", fmt.Errorf("unsupported format %q (choose one of %s)", name, joinFormats())
	}
	return f, nil
}

func joinFormats() string {
	formats := subtitles.Formats()
	names := make([]string, len(formats))
	for i, f := range formats {
		names[i] = string(f)
	}
	return strings.Join(names, ", ")
}

// emitResult writes subtitles to outputPath when set and prints either the
// JSON envelope or, without a file, the subtitles themselves.
func emitResult(cmd *cobra.Command, outputPath string, jsonOutput bool, result subtitles.Result) error {
	if strings.TrimSpace(outputPath) != "" {
		if err := writeSubtitles(cmd, outputPath, result); err != nil {
			return err
		}
	}
	if jsonOutput {
		return writeJSON(cmd, newResultView(result, outputPath))
	}
	if strings.TrimSpace(outputPath) == "" {
		return writeSubtitles(cmd, "", result)
	}
	return nil
}

// writeSubtitles writes to path, or stdout when path is empty. Files end
// with a newline; stdout output is printed as-is followed by one newline.
func writeSubtitles(cmd *cobra.Command, path string, result subtitles.Result) error {
	if strings.TrimSpace(path) == "" {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), result.Subtitles)
		return err
	}
	content := result.Subtitles
	if !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write subtitles: %w", err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %d cues (%.3fs) to %s\n", result.SegmentCount, result.Duration, path)
	return nil
}
