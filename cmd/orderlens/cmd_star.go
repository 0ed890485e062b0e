package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"orderlens/internal/csvio"
	"orderlens/internal/model"
	"orderlens/internal/star"
)

var starCmd = &cobra.Command{
	Use:   "star",
	Short: "build the star schema from the cleaned orders",
	RunE: func(cmd *cobra.Command, args []string) error {
		in := filepath.Join(cfg.Paths.CleanDir, "orders_clean.csv")
		if err := csvio.RequireFile(in, "run `orderlens clean` first"); err != nil {
			return err
		}
		var orders []model.Order
		if err := csvio.ReadRecords(in, &orders); err != nil {
			return err
		}

		schema := star.Build(orders, cfg.Clean.PlatformLabels)

		dir := cfg.Paths.DerivedDir
		for _, w := range []struct {
			name string
			data interface{}
		}{
			{"dim_platform.csv", &schema.Platforms},
			{"dim_date.csv", &schema.Dates},
			{"dim_restaurant.csv", &schema.Restaurants},
			{"fact_orders.csv", &schema.Facts},
		} {
			if err := csvio.WriteRecords(filepath.Join(dir, w.name), w.data); err != nil {
				return err
			}
		}

		fmt.Printf("star schema -> %s (%d facts, %d platforms, %d restaurants, %d dates)\n",
			dir, len(schema.Facts), len(schema.Platforms), len(schema.Restaurants), len(schema.Dates))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(starCmd)
}
