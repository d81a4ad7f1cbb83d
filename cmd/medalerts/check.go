package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Collect once, print the digest, persist nothing",
	Long:  "Like run --dry-run but against an empty in-memory seen-set: every listing counts as new and nothing is written to the store.",
	RunE:  runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		fatal(logger, "failed to load config", err)
	}

	logger.Info("check mode: seen-set will not be read or written")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := runPipeline(ctx, cfg, modeCheck, logger); err != nil {
		fatal(logger, "check failed", err)
	}
	logger.Info("check complete")
	return nil
}
