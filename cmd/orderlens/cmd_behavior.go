package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"orderlens/internal/csvio"
	"orderlens/internal/kpi"
	"orderlens/internal/model"
	"orderlens/internal/report"
)

var behaviorCmd = &cobra.Command{
	Use:   "behavior",
	Short: "compute ordering-habit metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		factsPath := filepath.Join(cfg.Paths.DerivedDir, "fact_orders.csv")
		if err := csvio.RequireFile(factsPath, "run `orderlens star` first"); err != nil {
			return err
		}
		var facts []model.FactOrder
		if err := csvio.ReadRecords(factsPath, &facts); err != nil {
			return err
		}

		metrics := kpi.Behavior(facts)

		out := filepath.Join(cfg.Paths.KPIDir, "behavior_metrics.csv")
		if err := csvio.WriteRecords(out, &metrics); err != nil {
			return err
		}
		reportPath := filepath.Join(cfg.Paths.ReportsDir, "behavior_insights.md")
		if err := report.Behavior(reportPath, metrics); err != nil {
			return err
		}

		fmt.Printf("behavior metrics -> %s\ninsights -> %s\n", out, reportPath)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(behaviorCmd)
}
