package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/amishk599/medalerts/internal/config"
	"github.com/amishk599/medalerts/internal/digest"
	"github.com/amishk599/medalerts/internal/model"
	"github.com/amishk599/medalerts/internal/pipeline"
	"github.com/amishk599/medalerts/internal/seen"
)

var dryRun bool

const deliveryTimeout = 2 * time.Minute

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Collect new listings once and send the digest",
	Long:  "One run: query today's rotated terms, skip listings already reported, and deliver the digest. With --dry-run the digest is printed and written to the HTML preview instead of sent; the seen-set is still updated.",
	RunE:  runRun,
}

func init() {
	runCmd.Flags().BoolVar(&dryRun, "dry-run", false, "collect and print the digest, write the HTML preview, do not send")
	rootCmd.AddCommand(runCmd)
}

// runMode selects what happens to the seen-set and the digest. modeSend
// persists and notifies, modeDryRun persists and previews, modeCheck previews
// against an in-memory seen-set.
type runMode int

const (
	modeSend runMode = iota
	modeDryRun
	modeCheck
)

func runRun(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		fatal(logger, "failed to load config", err)
	}

	mode := modeSend
	if dryRun {
		mode = modeDryRun
		logger.Info("dry-run mode: digest will be printed, not sent")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := runPipeline(ctx, cfg, mode, logger); err != nil {
		fatal(logger, "run failed", err)
	}
	return nil
}

// runPipeline performs one complete run. Everything that can fail on missing
// configuration is built before the first query.
func runPipeline(ctx context.Context, cfg *config.Config, mode runMode, logger *slog.Logger) error {
	searcher, err := setupSearcher(cfg, logger)
	if err != nil {
		return err
	}

	var n model.Notifier
	if mode == modeSend {
		if n, err = setupNotifier(cfg, logger); err != nil {
			return err
		}
	}

	var st seen.Store = seen.NewMemoryStore()
	if mode != modeCheck {
		fileStore, closeStore, err := openStore(ctx, cfg)
		defer closeStore()
		if err != nil {
			return fmt.Errorf("open seen-set: %w", err)
		}
		st = fileStore
	}

	orch := setupOrchestrator(cfg, searcher, st, logger)
	queries := pipeline.PlanQueries(queryPlan(cfg), time.Now().UTC())
	logger.Info("starting run", "queries", len(queries), "priority_metro", cfg.PriorityMetro.Name)

	d, runErr := orch.Run(ctx, queries)
	if d == nil {
		return runErr
	}
	if runErr != nil {
		// The digest is still delivered; the error surfaces after.
		logger.Error("failed to save seen-set", "error", runErr)
	}

	if d.Total() == 0 {
		logger.Info("No new jobs found. Skipping", "filtered", d.Filtered)
		return runErr
	}

	r := setupRenderer(cfg, logger)
	if mode != modeSend {
		if err := preview(r, d, cfg.Digest.PreviewPath, logger); err != nil {
			return err
		}
		return runErr
	}

	msg, err := r.Message(d)
	if err != nil {
		return fmt.Errorf("render digest: %w", err)
	}
	// The seen-set already holds these listings, so delivery must not be cut
	// short by a signal that arrives after the save.
	sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), deliveryTimeout)
	defer cancel()
	if err := n.Notify(sendCtx, msg); err != nil {
		return fmt.Errorf("notify: %w", err)
	}
	logger.Info("digest sent", "listings", d.Total(), "subject", msg.Subject)
	return runErr
}

// preview prints the console table and writes the HTML body to path.
func preview(r *digest.Renderer, d *model.Digest, path string, logger *slog.Logger) error {
	logger.Info("would send digest", "listings", d.Total())
	r.WriteConsole(os.Stdout, d)

	html, err := r.HTML(d)
	if err != nil {
		return fmt.Errorf("render preview: %w", err)
	}
	if err := os.WriteFile(path, []byte(html), 0o644); err != nil {
		return fmt.Errorf("write preview: %w", err)
	}
	logger.Info("email preview written", "path", path)
	return nil
}
