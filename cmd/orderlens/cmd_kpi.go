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

var kpiCmd = &cobra.Command{
	Use:   "kpi",
	Short: "compute daily and monthly order KPIs",
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := cfg.Paths.DerivedDir
		factsPath := filepath.Join(dir, "fact_orders.csv")
		if err := csvio.RequireFile(factsPath, "run `orderlens star` first"); err != nil {
			return err
		}
		var facts []model.FactOrder
		if err := csvio.ReadRecords(factsPath, &facts); err != nil {
			return err
		}

		daily := kpi.Daily(facts)
		monthly := kpi.Monthly(facts)

		dailyPath := filepath.Join(cfg.Paths.KPIDir, "kpi_orders_daily.csv")
		if err := csvio.WriteRecords(dailyPath, &daily); err != nil {
			return err
		}
		monthlyPath := filepath.Join(cfg.Paths.KPIDir, "kpi_orders_monthly.csv")
		if err := csvio.WriteRecords(monthlyPath, &monthly); err != nil {
			return err
		}

		// Dimensions are optional for the report; surrogate keys are shown
		// bare when a dimension file is absent.
		var platforms []model.DimPlatform
		_ = csvio.ReadRecords(filepath.Join(dir, "dim_platform.csv"), &platforms)
		var restaurants []model.DimRestaurant
		_ = csvio.ReadRecords(filepath.Join(dir, "dim_restaurant.csv"), &restaurants)

		reportPath := filepath.Join(cfg.Paths.ReportsDir, "insights_summary.md")
		if err := report.Insights(reportPath, kpi.Summarize(facts), platforms, restaurants); err != nil {
			return err
		}

		fmt.Printf("kpis: %d daily rows -> %s, %d monthly rows -> %s\ninsights -> %s\n",
			len(daily), dailyPath, len(monthly), monthlyPath, reportPath)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(kpiCmd)
}
