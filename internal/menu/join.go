package menu

import (
	"strings"

	"orderlens/internal/model"
)

func nameKey(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

// JoinProfiles resolves each enriched order's restaurant surrogate key back
// to a name and attaches that restaurant's menu profile. Orders whose
// restaurant has no scraped menu keep null ratios.
func JoinProfiles(orders []model.EnrichedOrder, restaurants []model.DimRestaurant,
	profiles []model.RestaurantProfile) []model.OrderRosterNLP {

	names := map[int]string{}
	for _, r := range restaurants {
		names[r.RestaurantID] = r.Restaurant
	}
	byName := map[string]model.RestaurantProfile{}
	for _, p := range profiles {
		byName[nameKey(p.Restaurant)] = p
	}

	out := make([]model.OrderRosterNLP, 0, len(orders))
	for _, o := range orders {
		row := model.OrderRosterNLP{EnrichedOrder: o}
		if o.RestaurantID.Valid {
			row.Restaurant = names[o.RestaurantID.Value]
		}
		if p, ok := byName[nameKey(row.Restaurant)]; ok {
			row.SpicyRatio = p.SpicyRatio
			row.NoodlesRatio = p.NoodlesRatio
			row.RiceRatio = p.RiceRatio
			row.FriedRatio = p.FriedRatio
			row.SoupRatio = p.SoupRatio
			row.VeganRatio = p.VeganRatio
			row.AvgItemPrice = p.AvgItemPrice
		}
		out = append(out, row)
	}
	return out
}
