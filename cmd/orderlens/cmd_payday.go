package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"orderlens/internal/csvio"
	"orderlens/internal/kpi"
	"orderlens/internal/model"
)

var paydayCmd = &cobra.Command{
	Use:   "payday",
	Short: "summarize spending against the payday/rent calendar",
	RunE: func(cmd *cobra.Command, args []string) error {
		in := filepath.Join(cfg.Paths.DerivedDir, "orders_finance_context.csv")
		if err := csvio.RequireFile(in, "run `orderlens finance` first"); err != nil {
			return err
		}
		var rows []model.FinanceOrder
		if err := csvio.ReadRecords(in, &rows); err != nil {
			return err
		}

		keys := []struct {
			column string
			key    func(model.FinanceOrder) (int, bool)
		}{
			{"is_payday", kpi.ByPayday},
			{"days_since_payday", kpi.ByCycleDay},
			{"is_near_rent_due", kpi.ByNearRent},
			{"day_of_month", kpi.ByMonthDay},
		}
		values := []struct {
			name  string
			value func(model.FinanceOrder) csvio.Float
		}{
			{"total_paid", kpi.TotalPaidOf},
			{"food_cost", kpi.FoodCostOf},
		}

		for _, k := range keys {
			for _, v := range values {
				sum := kpi.GroupBy(rows, k.column, k.key, v.value)
				out := filepath.Join(cfg.Paths.KPIDir,
					fmt.Sprintf("kpi_%s_%s.csv", k.column, v.name))
				if err := csvio.WriteTable(out, sum.Headers(), sum.Records()); err != nil {
					return err
				}
				fmt.Printf("%s (%d groups)\n", out, len(sum.Rows))
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(paydayCmd)
}
