package main

import (
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"scribe/internal/api"
	"scribe/internal/logging"
)

func newServeCommand(ctx *commandContext) *cobra.Command {
	var bindFlag string
	var noTranscribe bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if strings.TrimSpace(bindFlag) != "" {
				cfg.Server.Bind = strings.TrimSpace(bindFlag)
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			var transcriber api.Transcriber
			if !noTranscribe {
				svc := ctx.transcriber(cfg, logger)
				if readyErr := svc.Ready(); readyErr != nil {
					logging.WarnWithContext(logger, "recognizer unavailable", "recognizer_unavailable",
						logging.Error(readyErr),
						logging.String(logging.FieldErrorHint, "install uv so uvx can launch WhisperX"),
						logging.String(logging.FieldImpact, "/transcribe answers 503 until the recognizer is installed"),
					)
				}
				transcriber = svc
			}

			server := api.NewServer(cfg, ctx.engine(logger), transcriber,
				api.WithLogger(logger),
				api.WithVersion(version),
			)

			signalCtx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()
			return server.ListenAndServe(signalCtx)
		},
	}

	cmd.Flags().StringVar(&bindFlag, "bind", "", "Listen address (default from server.bind)")
	cmd.Flags().BoolVar(&noTranscribe, "no-transcribe", false, "Serve text generation only")
	return cmd
}
