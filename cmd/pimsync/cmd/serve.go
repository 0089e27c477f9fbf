package cmd

import (
	"os/signal"
	"syscall"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	"github.com/pimsync/pimsync/pkg/errors"
	"github.com/pimsync/pimsync/pkg/logging"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run reconciliation passes on a schedule",
	Long: `serve runs a reconciliation pass on the configured cron schedule until
interrupted. A pass that is still running when the next tick fires is left
alone; the tick is skipped.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		engine, closer, err := buildEngine()
		if err != nil {
			return err
		}
		defer closer()

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		scheduler := cron.New()
		_, err = scheduler.AddFunc(cfg.Schedule, func() {
			res, err := engine.Sync(ctx)
			if err != nil {
				if errors.IsBusy(err) {
					logging.Debug().Msg("Previous pass still running, skipping tick")
					return
				}
				logging.Error().Err(err).Msg("Scheduled pass failed")
				return
			}
			if err := res.Err(); err != nil {
				logging.Warn().Err(err).Msg("Scheduled pass completed with failures")
			}
		})
		if err != nil {
			return errors.NewConfigError("schedule", cfg.Schedule, err)
		}

		logging.Info().Str("schedule", cfg.Schedule).Msg("Scheduler started")
		scheduler.Start()
		<-ctx.Done()

		stopCtx := scheduler.Stop()
		<-stopCtx.Done()
		logging.Info().Msg("Scheduler stopped")
		return nil
	},
}
