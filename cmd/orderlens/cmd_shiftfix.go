package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"orderlens/internal/csvio"
	"orderlens/internal/model"
	"orderlens/internal/shiftjoin"
)

var shiftfixCmd = &cobra.Command{
	Use:   "shiftfix",
	Short: "re-derive shift windows from canonical per-type hours",
	RunE: func(cmd *cobra.Command, args []string) error {
		in := filepath.Join(cfg.Paths.DerivedDir, "orders_roster_nlp.csv")
		if err := csvio.RequireFile(in, "run `orderlens nlpjoin` first"); err != nil {
			return err
		}
		var rows []model.OrderRosterNLP
		if err := csvio.ReadRecords(in, &rows); err != nil {
			return err
		}

		fixed := make([]model.OrderRosterNLPFixed, 0, len(rows))
		for _, r := range rows {
			fr := model.OrderRosterNLPFixed{OrderRosterNLP: r}
			fr.ShiftTypeNorm = fr.ShiftType
			if r.OrderedTime.Valid {
				ft := shiftjoin.Fixed(r.OrderedTime.Time, string(r.ShiftType), cfg.Shifts.Windows)
				fr.ShiftTypeNorm = ft.Type
				fr.ShiftStartFixed = ft.Start
				fr.ShiftEndFixed = ft.End
				fr.MinsAfterShiftEndFixed = ft.MinsAfterEnd
				fr.MinsFromShiftStartFixed = ft.MinsFromStart
				fr.IsAfterShiftFixed = ft.IsAfterEnd
			}
			fixed = append(fixed, fr)
		}

		out := filepath.Join(cfg.Paths.DerivedDir, "orders_roster_nlp_fixed.csv")
		if err := csvio.WriteRecords(out, &fixed); err != nil {
			return err
		}
		fmt.Printf("re-derived shift windows for %d orders -> %s\n", len(fixed), out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(shiftfixCmd)
}
