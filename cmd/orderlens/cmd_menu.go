package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"orderlens/internal/csvio"
	"orderlens/internal/menu"
)

var menuFile string

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "tag menu items with keyword flags and profile restaurants",
	RunE: func(cmd *cobra.Command, args []string) error {
		if menuFile == "" {
			menuFile = filepath.Join(cfg.Paths.CleanDir, "menu_items.csv")
		}
		if err := csvio.RequireFile(menuFile, "export the scraped menus as CSV"); err != nil {
			return err
		}

		features, err := menu.Load(menuFile, cfg.Menu.Keywords)
		if err != nil {
			return err
		}
		profiles := menu.Profiles(features)

		featPath := filepath.Join(cfg.Paths.DerivedDir, "menu_features.csv")
		if err := csvio.WriteRecords(featPath, &features); err != nil {
			return err
		}
		profPath := filepath.Join(cfg.Paths.DerivedDir, "restaurant_profile.csv")
		if err := csvio.WriteRecords(profPath, &profiles); err != nil {
			return err
		}

		fmt.Printf("tagged %d menu items across %d restaurants -> %s, %s\n",
			len(features), len(profiles), featPath, profPath)
		return nil
	},
}

func init() {
	menuCmd.Flags().StringVar(&menuFile, "menu", "", "menu CSV (default <clean_dir>/menu_items.csv)")
	rootCmd.AddCommand(menuCmd)
}
