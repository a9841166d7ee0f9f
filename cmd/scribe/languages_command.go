package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"scribe/internal/language"
)

func newLanguagesCommand() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:         "languages",
		Short:       "List supported transcription languages",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			langs := language.Supported()
			if jsonOutput {
				return writeJSON(cmd, map[string]any{"languages": langs})
			}
			rows := make([][]string, 0, len(langs))
			for _, l := range langs {
				rows = append(rows, []string{l.Code, l.Name, l.Native})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Code", "Name", "Native"}, rows, nil))
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}
