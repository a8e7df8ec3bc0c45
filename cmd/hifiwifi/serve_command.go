package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"hifiwifi/internal/daemon"
	"hifiwifi/internal/logging"
	"hifiwifi/internal/preflight"
	"hifiwifi/internal/services"
)

func newServeCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API in the foreground",
		RunE: func(cmd *cobra.Command, args []string) error {
			signalCtx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := logging.NewFromConfig(cfg)
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}
			logger.Info("configuration loaded", logging.String("config_path", ctx.configPath))

			svc, client, err := ctx.newService(logger)
			if err != nil {
				return err
			}
			if err := cfg.EnsureDirectories(); err != nil {
				return fmt.Errorf("ensure directories: %w", err)
			}
			for _, result := range preflight.Failed(preflight.RunAll(signalCtx, cfg, client)) {
				logging.WarnWithContext(logger, "preflight check failed", "preflight_failed",
					logging.String("check", result.Name),
					logging.String("detail", result.Detail),
					logging.String(logging.FieldImpact, "requests needing the model will return error envelopes"),
				)
			}

			d, err := daemon.New(cfg, svc, logger)
			if err != nil {
				return err
			}
			if err := d.Start(signalCtx); err != nil {
				logging.ErrorWithContext(logger, "daemon start failed", "daemon_start_failed",
					logging.Error(err),
					logging.String(logging.FieldErrorHint, services.Hint(err)),
				)
				return err
			}
			defer d.Stop()

			<-signalCtx.Done()
			logger.Info("shutdown requested")
			return nil
		},
	}
}
