// Package menu derives keyword features from the menu-item export and
// rolls them up into per-restaurant profiles.
package menu

import (
	"fmt"
	"sort"
	"strings"

	"orderlens/internal/csvio"
	"orderlens/internal/model"
)

// Load reads the Latin-1 menu export and tags every item. The restaurant
// and item_name columns are mandatory; tags and price are optional.
func Load(path string, keywords map[string][]string) ([]model.MenuFeature, error) {
	t, err := csvio.ReadTableLatin1(path)
	if err != nil {
		return nil, err
	}
	restCol, err := t.MustColumn("restaurant")
	if err != nil {
		return nil, fmt.Errorf("menu restaurant: %w", err)
	}
	itemCol, err := t.MustColumn("item_name")
	if err != nil {
		return nil, fmt.Errorf("menu item_name: %w", err)
	}
	tagsCol, _ := t.Column("tags")
	priceCol, _ := t.Column("price")

	out := make([]model.MenuFeature, 0, len(t.Rows))
	for _, row := range t.Rows {
		name := strings.TrimSpace(t.Get(row, itemCol))
		text := strings.ToLower(name + " " + t.Get(row, tagsCol))
		out = append(out, model.MenuFeature{
			Restaurant: strings.TrimSpace(t.Get(row, restCol)),
			ItemName:   name,
			ItemPrice:  csvio.ParseFloat(t.Get(row, priceCol)),
			Spicy:      flag(text, keywords["spicy"]),
			Noodles:    flag(text, keywords["noodles"]),
			Rice:       flag(text, keywords["rice"]),
			Fried:      flag(text, keywords["fried"]),
			Soup:       flag(text, keywords["soup"]),
			Vegan:      flag(text, keywords["vegan"]),
		})
	}
	return out, nil
}

func flag(text string, words []string) csvio.Bool01 {
	for _, w := range words {
		if w != "" && strings.Contains(text, strings.ToLower(w)) {
			return csvio.NewBool01(true)
		}
	}
	return csvio.NewBool01(false)
}

// Profiles aggregates item features into one row per restaurant: the share
// of items carrying each keyword and the average item price over items
// that had one.
func Profiles(features []model.MenuFeature) []model.RestaurantProfile {
	type acc struct {
		items                                    int
		spicy, noodles, rice, fried, soup, vegan int
		priceSum                                 float64
		priced                                   int
	}
	byRestaurant := map[string]*acc{}
	for _, f := range features {
		a := byRestaurant[f.Restaurant]
		if a == nil {
			a = &acc{}
			byRestaurant[f.Restaurant] = a
		}
		a.items++
		a.spicy += b2i(f.Spicy)
		a.noodles += b2i(f.Noodles)
		a.rice += b2i(f.Rice)
		a.fried += b2i(f.Fried)
		a.soup += b2i(f.Soup)
		a.vegan += b2i(f.Vegan)
		if f.ItemPrice.Valid {
			a.priceSum += f.ItemPrice.Value
			a.priced++
		}
	}

	names := make([]string, 0, len(byRestaurant))
	for name := range byRestaurant {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]model.RestaurantProfile, 0, len(names))
	for _, name := range names {
		a := byRestaurant[name]
		p := model.RestaurantProfile{
			Restaurant:   name,
			SpicyRatio:   ratio(a.spicy, a.items),
			NoodlesRatio: ratio(a.noodles, a.items),
			RiceRatio:    ratio(a.rice, a.items),
			FriedRatio:   ratio(a.fried, a.items),
			SoupRatio:    ratio(a.soup, a.items),
			VeganRatio:   ratio(a.vegan, a.items),
		}
		if a.priced > 0 {
			p.AvgItemPrice = csvio.NewFloat(a.priceSum / float64(a.priced))
		}
		out = append(out, p)
	}
	return out
}

func b2i(b csvio.Bool01) int {
	if b.Valid && b.Value {
		return 1
	}
	return 0
}

func ratio(hits, total int) csvio.Float {
	if total == 0 {
		return csvio.Float{}
	}
	return csvio.NewFloat(float64(hits) / float64(total))
}
