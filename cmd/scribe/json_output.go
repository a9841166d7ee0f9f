package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"scribe/internal/subtitles"
)

// writeJSON encodes v as indented JSON to the command's stdout.
func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// resultView mirrors the HTTP response envelope for --json output.
type resultView struct {
	Subtitles    string  `json:"subtitles"`
	Duration     float64 `json:"duration"`
	SegmentCount int     `json:"segment_count"`
	Language     string  `json:"language"`
	OutputPath   string  `json:"output_path,omitempty"`
}

func newResultView(result subtitles.Result, outputPath string) resultView {
	return resultView{
		Subtitles:    result.Subtitles,
		Duration:     result.Duration,
		SegmentCount: result.SegmentCount,
		Language:     result.DetectedLanguage,
		OutputPath:   outputPath,
	}
}
