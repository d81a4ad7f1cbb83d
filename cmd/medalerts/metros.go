package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/amishk599/medalerts/internal/config"
	"github.com/amishk599/medalerts/internal/metro"
)

var metrosCmd = &cobra.Command{
	Use:   "metros",
	Short: "List the metro catalog",
	Long:  "Prints the metro catalog in match order with each metro's location aliases and whether it is queried.",
	RunE:  runMetros,
}

func init() {
	rootCmd.AddCommand(metrosCmd)
}

func runMetros(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	resolver := metro.NewResolver(metroCatalog(cfg))
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("240"))).
		Headers("METRO", "QUERIED", "ALIASES").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")).Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})

	for _, m := range resolver.Catalog() {
		t.Row(m.Name, queriedAs(cfg, m.Name), strings.Join(m.Aliases, ", "))
	}
	fmt.Println(t)
	fmt.Printf("\nLocations matching none of these fall back to the queried metro when remote, else %q.\n", "Other")
	return nil
}

func queriedAs(cfg *config.Config, name string) string {
	if name == cfg.PriorityMetro.Name {
		return "priority"
	}
	for _, m := range cfg.SecondaryMetros {
		if m == name {
			return "secondary"
		}
	}
	return ""
}
