package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/amishk599/medalerts/internal/store"
)

var prune time.Duration

var seenCmd = &cobra.Command{
	Use:   "seen",
	Short: "Show the seen-set",
	Long:  "Prints how many listings have been reported and when the last run saved. With --prune (sqlite store only) fingerprints first seen before the window are forgotten so reposts are reported again.",
	RunE:  runSeen,
}

func init() {
	seenCmd.Flags().DurationVar(&prune, "prune", 0, "forget fingerprints first seen longer ago than this, e.g. 2160h (sqlite only)")
	rootCmd.AddCommand(seenCmd)
}

func runSeen(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		fatal(logger, "failed to load config", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	st, closeStore, err := openStore(ctx, cfg)
	defer closeStore()
	if err != nil {
		fatal(logger, "failed to open seen-set", err)
	}

	if prune > 0 {
		sq, ok := st.(*store.SQLiteStore)
		if !ok {
			return fmt.Errorf("--prune needs store.type sqlite, have %q", cfg.Store.Type)
		}
		n, err := sq.Cleanup(ctx, prune)
		if err != nil {
			fatal(logger, "prune failed", err)
		}
		logger.Info("pruned seen-set", "removed", n, "older_than", prune.String())
	}

	set, err := st.Load(ctx)
	if err != nil {
		fatal(logger, "failed to load seen-set", err)
	}

	lastRun := "never"
	if set.LastRun != nil {
		lastRun = fmt.Sprintf("%s (%s)", humanize.Time(*set.LastRun), set.LastRun.Local().Format(time.DateTime))
	}
	fmt.Fprintf(os.Stdout, "Store:    %s\n", cfg.Store.Type)
	fmt.Fprintf(os.Stdout, "Seen:     %s listings\n", humanize.Comma(int64(set.Len())))
	fmt.Fprintf(os.Stdout, "Last run: %s\n", lastRun)
	return nil
}
