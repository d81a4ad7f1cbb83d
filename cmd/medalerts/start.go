package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/amishk599/medalerts/internal/scheduler"
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the daemon",
	Long:  "Runs immediately and then every schedule.interval; blocks until SIGINT/SIGTERM.",
	RunE:  runStart,
}

func init() {
	rootCmd.AddCommand(startCmd)
}

func runStart(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		fatal(logger, "failed to load config", err)
	}

	logger.Info("config loaded",
		"interval", cfg.Schedule.Interval.String(),
		"search_terms", len(cfg.SearchTerms),
		"priority_metro", cfg.PriorityMetro.Name,
		"secondary_metros", len(cfg.SecondaryMetros),
		"store", cfg.Store.Type,
		"notification", cfg.Notification.Type,
	)

	// Fail on missing credentials now rather than at the first tick.
	if _, err := setupSearcher(cfg, logger); err != nil {
		fatal(logger, "failed to set up provider", err)
	}
	if _, err := setupNotifier(cfg, logger); err != nil {
		fatal(logger, "failed to set up notifier", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	job := func(ctx context.Context) error {
		// Each tick gets its own run_id.
		return runPipeline(ctx, cfg, modeSend, setupLogger(debug))
	}
	sched := scheduler.NewScheduler(job, cfg.Schedule.Interval, logger)
	if err := sched.Run(ctx); err != nil {
		fatal(logger, "scheduler error", err)
	}

	logger.Info("goodbye")
	return nil
}
