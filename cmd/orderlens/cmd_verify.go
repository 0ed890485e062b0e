package main

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"orderlens/internal/csvio"
	"orderlens/internal/model"
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "sanity-check the fact table",
	RunE: func(cmd *cobra.Command, args []string) error {
		in := filepath.Join(cfg.Paths.DerivedDir, "fact_orders.csv")
		if err := csvio.RequireFile(in, "run `orderlens star` first"); err != nil {
			return err
		}
		var facts []model.FactOrder
		if err := csvio.ReadRecords(in, &facts); err != nil {
			return err
		}
		if len(facts) == 0 {
			return fmt.Errorf("%s: fact table is empty", in)
		}

		var timed int
		months := map[string]int{}
		for _, f := range facts {
			if f.OrderedTime.Valid {
				timed++
				months[f.OrderedTime.Time.Format("2006-01")]++
			}
		}

		fmt.Printf("fact_orders: %d rows, %d with ordered_time (%.1f%%)\n",
			len(facts), timed, 100*float64(timed)/float64(len(facts)))
		keys := make([]string, 0, len(months))
		for m := range months {
			keys = append(keys, m)
		}
		sort.Strings(keys)
		for _, m := range keys {
			fmt.Printf("  %s: %d orders\n", m, months[m])
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(verifyCmd)
}
