package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"orderlens/internal/csvio"
	"orderlens/internal/finance"
	"orderlens/internal/model"
)

var financeCmd = &cobra.Command{
	Use:   "finance",
	Short: "annotate orders with the payday/rent calendar",
	RunE: func(cmd *cobra.Command, args []string) error {
		in := filepath.Join(cfg.Paths.DerivedDir, "orders_enriched_roster.csv")
		if err := csvio.RequireFile(in, "run `orderlens roster` first"); err != nil {
			return err
		}
		var rows []model.EnrichedOrder
		if err := csvio.ReadRecords(in, &rows); err != nil {
			return err
		}

		annotated := finance.Annotate(rows, cfg.Finance)

		out := filepath.Join(cfg.Paths.DerivedDir, "orders_finance_context.csv")
		if err := csvio.WriteRecords(out, &annotated); err != nil {
			return err
		}
		fmt.Printf("annotated %d orders with finance context -> %s\n", len(annotated), out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(financeCmd)
}
