package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/amishk599/medalerts/internal/audit"
	"github.com/amishk599/medalerts/internal/config"
	"github.com/amishk599/medalerts/internal/model"
	"github.com/amishk599/medalerts/internal/pipeline"
	"github.com/amishk599/medalerts/internal/scheduler"
	"github.com/amishk599/medalerts/internal/seen"
)

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Inspect filter decisions interactively (TUI)",
	Long:  "Pick a metro, search it with today's first rotated term, and browse every fetched listing next to the ones the filter accepts, with score, bucket, and rejection reason. Nothing is persisted.",
	RunE:  runAuditCmd,
}

func init() {
	rootCmd.AddCommand(auditCmd)
}

func runAuditCmd(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		fatal(logger, "failed to load config", err)
	}

	// Any log output once the TUI owns the terminal corrupts the display.
	silentLogger := slog.New(slog.NewTextHandler(io.Discard, nil))
	searcher, err := setupSearcher(cfg, silentLogger)
	if err != nil {
		fatal(logger, "failed to set up provider", err)
	}

	set := loadSeenReadOnly(cfg, logger)
	orch := setupOrchestrator(cfg, searcher, seen.NewMemoryStore(), silentLogger)
	runAudit(cfg, searcher, orch, set)
	return nil
}

// loadSeenReadOnly loads the seen-set so the audit can mark listings a run
// would skip. Failures are reported and the audit continues without it.
func loadSeenReadOnly(cfg *config.Config, logger *slog.Logger) *seen.Set {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	st, closeStore, err := openStore(ctx, cfg)
	defer closeStore()
	if err != nil {
		logger.Warn("seen-set unavailable, audit will not mark seen listings", "error", err)
		return nil
	}
	set, err := st.Load(ctx)
	if err != nil {
		logger.Warn("seen-set unreadable, audit will not mark seen listings", "error", err)
		return nil
	}
	return set
}

// auditChoices lists the priority metro then the secondary metros, each with
// the first term it would be queried with today.
func auditChoices(cfg *config.Config, day time.Time) []audit.MetroChoice {
	terms := scheduler.PickTerms(cfg.SearchTerms, 1, day)
	if len(terms) == 0 {
		return nil
	}
	choices := []audit.MetroChoice{{Name: cfg.PriorityMetro.Name, Term: terms[0], Priority: true}}
	for _, m := range cfg.SecondaryMetros {
		choices = append(choices, audit.MetroChoice{Name: m, Term: terms[0]})
	}
	return choices
}

func runAudit(cfg *config.Config, searcher model.Searcher, orch *pipeline.Orchestrator, set *seen.Set) {
	choices := auditChoices(cfg, time.Now().UTC())
	if len(choices) == 0 {
		fmt.Println("No search terms in config.")
		return
	}

	for {
		choice, err := audit.RunMetroPicker(choices)
		if err != nil {
			fmt.Printf("Picker error: %v\n", err)
			return
		}
		if choice < 0 {
			return
		}
		c := choices[choice]

		listings, err := audit.RunLoader(fmt.Sprintf("%q in %s", c.Term, c.Name), func(ctx context.Context) ([]model.Listing, error) {
			return searcher.Search(ctx, c.Term, c.Name, cfg.MaxResultsPerQuery)
		})
		if err != nil {
			fmt.Printf("Error searching: %v\n", err)
			continue
		}

		all, accepted := audit.BuildEntries(orch, listings, c.Name, set)
		wantQuit, err := audit.RunAuditTUI(c.Name, all, accepted)
		if err != nil {
			fmt.Printf("TUI error: %v\n", err)
		}
		if wantQuit {
			return
		}
	}
}
