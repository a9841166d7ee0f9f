package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"scribe/internal/config"
	"scribe/internal/language"
	"scribe/internal/preflight"
)

type statusView struct {
	ConfigPath string             `json:"config_path"`
	Model      string             `json:"model"`
	Language   string             `json:"language"`
	Device     string             `json:"device"`
	Bind       string             `json:"bind"`
	Ready      bool               `json:"ready"`
	Checks     []preflight.Result `json:"checks"`
}

func newStatusCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show configuration and dependency status",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			checks := preflight.RunAll(cfg)
			view := statusView{
				ConfigPath: ctx.configPath,
				Model:      cfg.Transcription.Model,
				Language:   cfg.Transcription.Language,
				Device:     deviceLabel(cfg),
				Bind:       cfg.Server.Bind,
				Ready:      preflight.AllPassed(checks),
				Checks:     checks,
			}
			if jsonOutput {
				return writeJSON(cmd, view)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, strings.Join(renderStatus(view, shouldColorize(out)), "\n"))
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}

func deviceLabel(cfg *config.Config) string {
	if cfg.Transcription.CUDAEnabled {
		return "cuda"
	}
	return "cpu"
}

func renderStatus(view statusView, colorize bool) []string {
	lines := renderSectionHeader("Scribe", colorize)
	configPath := view.ConfigPath
	if configPath == "" {
		configPath = "defaults"
	}
	lines = append(lines,
		renderStatusLine("Config", statusInfo, configPath, colorize),
		renderStatusLine("API bind", statusInfo, view.Bind, colorize),
		renderStatusLine("Model", statusInfo, fmt.Sprintf("%s (%s)", view.Model, view.Device), colorize),
		renderStatusLine("Language", statusInfo, fmt.Sprintf("%s [%s]", language.DisplayName(view.Language), view.Language), colorize),
		"",
	)
	lines = append(lines, renderSectionHeader("Checks", colorize)...)
	for _, check := range view.Checks {
		kind := statusOK
		switch {
		case !check.Passed:
			kind = statusError
		case check.Warn:
			kind = statusWarn
		}
		lines = append(lines, renderStatusLine(check.Name, kind, check.Detail, colorize))
	}
	overall := renderStatusLine("Transcription", statusOK, "ready", colorize)
	if !view.Ready {
		overall = renderStatusLine("Transcription", statusError, "not ready; fix the failing checks above", colorize)
	}
	return append(lines, "", overall)
}
