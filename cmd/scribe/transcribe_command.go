package main

import (
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"scribe/internal/subtitles"
	"scribe/internal/transcription"
)

func newTranscribeCommand(ctx *commandContext) *cobra.Command {
	var (
		languageFlag    string
		formatFlag      string
		outputPath      string
		toStdout        bool
		jsonOutput      bool
		maxCharsPerLine int
		maxLines        int
		minDuration     float64
		maxDuration     float64
	)

	cmd := &cobra.Command{
		Use:   "transcribe <media-file>",
		Short: "Transcribe an audio or video file into subtitles with WhisperX",
		Long: "Transcribe runs WhisperX on a local media file. Video containers are " +
			"converted to mono 16kHz WAV with ffmpeg first. By default the subtitles " +
			"are written next to the media file using the format's extension.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			format := cfg.Speech.Format
			if strings.TrimSpace(formatFlag) != "" {
				format = formatFlag
			}
			resolved, err := parseFormatFlag(format)
			if err != nil {
				return err
			}

			settings := cfg.SpeechSettings()
			changed := cmd.Flags().Changed
			if changed("max-chars-per-line") {
				settings.MaxCharsPerLine = maxCharsPerLine
			}
			if changed("max-lines") {
				settings.MaxLines = maxLines
			}
			if changed("min-duration") {
				settings.MinDuration = minDuration
			}
			if changed("max-duration") {
				settings.MaxDuration = maxDuration
			}

			result, err := ctx.transcriber(cfg, logger).Transcribe(runContext(cmd), transcription.Request{
				MediaPath: args[0],
				Language:  languageFlag,
				Format:    resolved,
				Settings:  settings,
			})
			if err != nil {
				return err
			}

			target := outputPath
			if target == "" && !toStdout {
				target = defaultOutputPath(args[0], resolved)
			}
			return emitResult(cmd, target, jsonOutput, result)
		},
	}

	cmd.Flags().StringVarP(&languageFlag, "language", "l", "", "Spoken language code or 'auto' (default from config)")
	cmd.Flags().StringVarP(&formatFlag, "format", "f", "", "Output format: srt, vtt, ass, json or txt (default from config)")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Destination file (default: next to the media file)")
	cmd.Flags().BoolVar(&toStdout, "stdout", false, "Print subtitles instead of writing a file")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the result envelope as JSON")
	cmd.Flags().IntVar(&maxCharsPerLine, "max-chars-per-line", 0, "Maximum characters per subtitle line")
	cmd.Flags().IntVar(&maxLines, "max-lines", 0, "Maximum lines per cue")
	cmd.Flags().Float64Var(&minDuration, "min-duration", 0, "Minimum cue duration in seconds")
	cmd.Flags().Float64Var(&maxDuration, "max-duration", 0, "Maximum cue duration in seconds")
	return cmd
}

func defaultOutputPath(mediaPath string, format subtitles.Format) string {
	base := strings.TrimSuffix(mediaPath, filepath.Ext(mediaPath))
	return base + format.Extension()
}
