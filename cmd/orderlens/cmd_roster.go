package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"orderlens/internal/csvio"
	"orderlens/internal/kpi"
	"orderlens/internal/model"
	"orderlens/internal/report"
	"orderlens/internal/roster"
	"orderlens/internal/shiftjoin"
)

var rosterFile string

var rosterCmd = &cobra.Command{
	Use:   "roster",
	Short: "join orders against the work roster",
	RunE: func(cmd *cobra.Command, args []string) error {
		if rosterFile == "" {
			rosterFile = filepath.Join(cfg.Paths.CleanDir, "roster.csv")
		}
		factsPath := filepath.Join(cfg.Paths.DerivedDir, "fact_orders.csv")
		if err := csvio.RequireFile(factsPath, "run `orderlens star` first"); err != nil {
			return err
		}
		if err := csvio.RequireFile(rosterFile, "export the work roster as CSV"); err != nil {
			return err
		}

		var facts []model.FactOrder
		if err := csvio.ReadRecords(factsPath, &facts); err != nil {
			return err
		}
		intervals, err := roster.Load(rosterFile, logger)
		if err != nil {
			return err
		}

		enriched := shiftjoin.Attach(facts, intervals)

		out := filepath.Join(cfg.Paths.DerivedDir, "orders_enriched_roster.csv")
		if err := csvio.WriteRecords(out, &enriched); err != nil {
			return err
		}
		reportPath := filepath.Join(cfg.Paths.ReportsDir, "work_roster_insights.md")
		if err := report.Roster(reportPath, kpi.RosterSummary(enriched)); err != nil {
			return err
		}

		fmt.Printf("joined %d orders against %d roster intervals -> %s\ninsights -> %s\n",
			len(enriched), len(intervals), out, reportPath)
		return nil
	},
}

func init() {
	rosterCmd.Flags().StringVar(&rosterFile, "roster", "", "roster CSV (default <clean_dir>/roster.csv)")
	rootCmd.AddCommand(rosterCmd)
}
