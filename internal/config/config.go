// Package config holds all pipeline configuration. Lookup tables that
// drive component behavior (platform labels, menu keywords, canonical
// shift windows, payday/rent calendar) live here and are passed into the
// components that use them.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Paths   Paths   `yaml:"paths"`
	Clean   Clean   `yaml:"clean"`
	Menu    Menu    `yaml:"menu"`
	Shifts  Shifts  `yaml:"shifts"`
	Finance Finance `yaml:"finance"`
}

// Paths are the fixed stage input/output locations, all relative to the
// working directory.
type Paths struct {
	RawDir     string `yaml:"raw_dir"`
	CleanDir   string `yaml:"clean_dir"`
	DerivedDir string `yaml:"derived_dir"`
	KPIDir     string `yaml:"kpi_dir"`
	ReportsDir string `yaml:"reports_dir"`
}

// Clean configures ingestion and the delivery-time sanitizer.
type Clean struct {
	// RawFiles lists the per-platform export files expected under RawDir.
	// A missing file is fatal.
	RawFiles []string `yaml:"raw_files"`
	// PlatformLabels maps normalized platform strings to display labels.
	PlatformLabels map[string]string `yaml:"platform_labels"`
	// OutlierQuantile is the per-run delivery-minutes cap quantile.
	OutlierQuantile float64 `yaml:"outlier_quantile"`
}

// Menu configures keyword tagging. Labels are the fixed profile columns;
// the word lists matched against item text are configurable.
type Menu struct {
	Keywords map[string][]string `yaml:"keywords"`
}

// Window is a canonical duty window in whole hours; End at or before Start
// means the window crosses midnight.
type Window struct {
	StartHour int `yaml:"start_hour"`
	EndHour   int `yaml:"end_hour"`
}

// Shifts maps canonical shift types to their standard windows, used by the
// shiftfix stage to re-derive timing from shift type alone.
type Shifts struct {
	Windows map[string]Window `yaml:"windows"`
}

// Finance configures the payday/rent calendar. PaydayWeekday counts from
// Monday=0, matching the weekday columns the pipeline writes.
type Finance struct {
	PaydayWeekday   int `yaml:"payday_weekday"`
	RentDueDay      int `yaml:"rent_due_day"`
	NearRentFromDay int `yaml:"near_rent_from_day"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Paths: Paths{
			RawDir:     "data/raw",
			CleanDir:   "data/clean",
			DerivedDir: "data/derived",
			KPIDir:     "data/derived/kpi",
			ReportsDir: "reports",
		},
		Clean: Clean{
			RawFiles: []string{"deliveroo.csv", "hungry panda.csv"},
			PlatformLabels: map[string]string{
				"deliveroo":    "Deliveroo",
				"hungry panda": "HungryPanda",
				"hungrypanda":  "HungryPanda",
			},
			OutlierQuantile: 0.995,
		},
		Menu: Menu{
			Keywords: map[string][]string{
				"spicy":   {"spicy", "chilli", "chili", "hot"},
				"noodles": {"noodle", "ramen", "udon"},
				"rice":    {"rice"},
				"fried":   {"fried", "crispy", "tempura"},
				"soup":    {"soup", "broth"},
				"vegan":   {"vegan", "vegetarian", "tofu", "plant"},
			},
		},
		Shifts: Shifts{
			Windows: map[string]Window{
				"morning": {StartHour: 7, EndHour: 15},
				"evening": {StartHour: 15, EndHour: 23},
				"night":   {StartHour: 23, EndHour: 7},
			},
		},
		Finance: Finance{
			PaydayWeekday:   4, // Friday
			RentDueDay:      30,
			NearRentFromDay: 27,
		},
	}
}

// Load reads path over the defaults. A missing file is not an error when
// path is the default location; an explicitly requested file must exist.
func Load(path string, explicit bool) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.Clean.OutlierQuantile <= 0 || cfg.Clean.OutlierQuantile > 1 {
		return cfg, fmt.Errorf("config %s: outlier_quantile must be in (0, 1], got %v", path, cfg.Clean.OutlierQuantile)
	}
	return cfg, nil
}
