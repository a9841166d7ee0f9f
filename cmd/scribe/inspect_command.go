package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"scribe/internal/subtitles"
)

type inspectView struct {
	Path           string  `json:"path"`
	Format         string  `json:"format"`
	Cues           int     `json:"cues"`
	FirstStart     float64 `json:"first_start"`
	LastEnd        float64 `json:"last_end"`
	MaxLinesPerCue int     `json:"max_lines_per_cue"`
	Overlaps       int     `json:"overlaps"`
}

func newInspectCommand() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:         "inspect <subtitle-file>",
		Short:       "Parse an SRT, VTT or ASS file and summarize its cues",
		Args:        cobra.ExactArgs(1),
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			summary, err := subtitles.InspectFile(args[0])
			if err != nil {
				return err
			}
			view := inspectView{
				Path:           args[0],
				Format:         string(summary.Format),
				Cues:           summary.CueCount,
				FirstStart:     summary.FirstStart.Seconds(),
				LastEnd:        summary.LastEnd.Seconds(),
				MaxLinesPerCue: summary.MaxLinesPerCue,
				Overlaps:       summary.Overlaps,
			}
			if jsonOutput {
				return writeJSON(cmd, view)
			}
			rows := [][]string{
				{"Format", view.Format},
				{"Cues", strconv.Itoa(view.Cues)},
				{"First cue", formatClock(summary.FirstStart)},
				{"Last cue end", formatClock(summary.LastEnd)},
				{"Max lines per cue", strconv.Itoa(view.MaxLinesPerCue)},
				{"Overlapping cues", strconv.Itoa(view.Overlaps)},
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderKeyValueTable(rows))
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}

func formatClock(d time.Duration) string {
	return subtitles.TimestampSRT(d.Seconds())
}
