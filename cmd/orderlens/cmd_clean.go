package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"orderlens/internal/audit"
	"orderlens/internal/csvio"
	"orderlens/internal/ingest"
	"orderlens/internal/report"
	"orderlens/internal/sanitize"
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "ingest raw exports and sanitize delivery timestamps",
	RunE: func(cmd *cobra.Command, args []string) error {
		aud := audit.NewRegistry()

		orders, err := ingest.Load(cfg.Clean, cfg.Paths.RawDir, aud, logger)
		if err != nil {
			return err
		}
		rowsIn := len(orders)

		san := sanitize.Orders(orders, cfg.Clean.OutlierQuantile, aud)
		logger.Info("sanitized delivery timestamps",
			zap.Int("rule_flagged", san.RuleFlagged),
			zap.Int("outlier_flagged", san.OutlierFlagged))

		out := filepath.Join(cfg.Paths.CleanDir, "orders_clean.csv")
		if err := csvio.WriteRecords(out, &orders); err != nil {
			return err
		}
		aud.RowsWritten.Add(float64(len(orders)))

		lines, err := aud.Snapshot()
		if err != nil {
			return fmt.Errorf("gather audit counters: %w", err)
		}
		reportPath := filepath.Join(cfg.Paths.ReportsDir, "data_quality_report.md")
		if err := report.Quality(reportPath, rowsIn, len(orders),
			ingest.MissingRates(orders), san, lines); err != nil {
			return err
		}

		fmt.Printf("cleaned %d orders -> %s\nquality report -> %s\n", len(orders), out, reportPath)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(cleanCmd)
}
