package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/amishk599/medalerts/internal/pipeline"
)

var termsDay string

var termsCmd = &cobra.Command{
	Use:   "terms",
	Short: "Show the queries a run would issue today",
	Long:  "Prints the rotated (term, metro) queries for today, or for --day (YYYY-MM-DD).",
	RunE:  runTerms,
}

func init() {
	termsCmd.Flags().StringVar(&termsDay, "day", "", "date to plan for, YYYY-MM-DD (default: today, UTC)")
	rootCmd.AddCommand(termsCmd)
}

func runTerms(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	day := time.Now().UTC()
	if termsDay != "" {
		if day, err = time.Parse(time.DateOnly, termsDay); err != nil {
			return fmt.Errorf("parse --day: %w", err)
		}
	}

	queries := pipeline.PlanQueries(queryPlan(cfg), day)
	fmt.Printf("Queries for %s (day %d of year)\n\n", day.Format(time.DateOnly), day.YearDay())
	fmt.Printf("%-25s %s\n", "Metro", "Term")
	fmt.Println("─────────────────────────────────────────────────────")
	for _, q := range queries {
		fmt.Printf("%-25s %s\n", q.Metro, q.Term)
	}
	fmt.Printf("\nTotal: %d queries\n", len(queries))
	return nil
}
