package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"scribe/internal/config"
)

func newConfigCommand(ctx *commandContext) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Create or check the configuration file",
	}
	configCmd.AddCommand(newConfigInitCommand(), newConfigValidateCommand(ctx))
	return configCmd
}

func newConfigInitCommand() *cobra.Command {
	var targetPath string
	var overwrite bool

	cmd := &cobra.Command{
		Use:         "init",
		Short:       "Write the sample configuration file",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := initTarget(targetPath)
			if err != nil {
				return err
			}
			if !overwrite {
				_, statErr := os.Stat(target)
				if statErr == nil {
					return fmt.Errorf("%s already exists; pass --overwrite to replace it", target)
				}
				if !errors.Is(statErr, fs.ErrNotExist) {
					return fmt.Errorf("check config path: %w", statErr)
				}
			}
			if err := config.CreateSample(target); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote sample configuration to %s\nNext: run `scribe status` to check ffmpeg and uvx.\n", target)
			return nil
		},
	}

	cmd.Flags().StringVarP(&targetPath, "path", "p", "", "Where to write the file (default ~/.config/scribe/config.toml)")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Replace an existing file")
	return cmd
}

func initTarget(flagValue string) (string, error) {
	if flagValue = strings.TrimSpace(flagValue); flagValue != "" {
		return config.ExpandPath(flagValue)
	}
	return config.DefaultConfigPath()
}

func newConfigValidateCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Load the configuration and report the resolved paths",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			source := ctx.configPath
			if !ctx.configExists {
				source += " (not found; defaults were used)"
			}
			rows := [][]string{
				{"Config path", source},
				{"Work directory", cfg.Paths.WorkDir},
				{"Log directory", cfg.Paths.LogDir},
				{"Lock file", cfg.Paths.LockPath},
			}
			out := cmd.OutOrStdout()
			for _, row := range rows {
				fmt.Fprintf(out, "%s: %s\n", row[0], row[1])
			}
			fmt.Fprintln(out, "Configuration valid")
			return nil
		},
	}
}
