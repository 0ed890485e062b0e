package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"orderlens/internal/csvio"
	"orderlens/internal/kpi"
	"orderlens/internal/menu"
	"orderlens/internal/model"
)

var nlpjoinCmd = &cobra.Command{
	Use:   "nlpjoin",
	Short: "attach restaurant menu profiles to the roster-enriched orders",
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := cfg.Paths.DerivedDir
		ordersPath := filepath.Join(dir, "orders_enriched_roster.csv")
		if err := csvio.RequireFile(ordersPath, "run `orderlens roster` first"); err != nil {
			return err
		}
		profilePath := filepath.Join(dir, "restaurant_profile.csv")
		if err := csvio.RequireFile(profilePath, "run `orderlens menu` first"); err != nil {
			return err
		}

		var orders []model.EnrichedOrder
		if err := csvio.ReadRecords(ordersPath, &orders); err != nil {
			return err
		}
		var restaurants []model.DimRestaurant
		if err := csvio.ReadRecords(filepath.Join(dir, "dim_restaurant.csv"), &restaurants); err != nil {
			return err
		}
		var profiles []model.RestaurantProfile
		if err := csvio.ReadRecords(profilePath, &profiles); err != nil {
			return err
		}

		joined := menu.JoinProfiles(orders, restaurants, profiles)

		out := filepath.Join(dir, "orders_roster_nlp.csv")
		if err := csvio.WriteRecords(out, &joined); err != nil {
			return err
		}
		prefs := kpi.WorkdayFoodPrefs(joined)
		prefsPath := filepath.Join(cfg.Paths.KPIDir, "kpi_workday_foodprefs.csv")
		if err := csvio.WriteRecords(prefsPath, &prefs); err != nil {
			return err
		}

		fmt.Printf("joined %d orders with menu profiles -> %s\nworkday preference split -> %s\n",
			len(joined), out, prefsPath)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(nlpjoinCmd)
}
