package kpi

import (
	"fmt"
	"sort"

	"orderlens/internal/csvio"
	"orderlens/internal/model"
)

// Metric is one behavior_metrics.csv row.
type Metric struct {
	Name  string      `csv:"metric"`
	Value csvio.Float `csv:"value"`
}

// Behavior computes ordering-habit metrics over the fact table: cadence,
// meal-time shares, repurchase gaps per restaurant and value-for-money
// ratios.
func Behavior(facts []model.FactOrder) []Metric {
	weeks := map[string]map[string]bool{}
	var dinner, lateNight, timed int

	type visit struct {
		restaurant int
		atUnix     int64
	}
	var visits []visit

	var costPerItem, feesRatio, minsPerCurrency []float64

	for _, f := range facts {
		if f.OrderedTime.Valid {
			timed++
			at := f.OrderedTime.Time
			y, w := at.ISOWeek()
			key := fmt.Sprintf("%04d-W%02d", y, w)
			if weeks[key] == nil {
				weeks[key] = map[string]bool{}
			}
			weeks[key][orderKey(f)] = true
			if isDinner(at.Hour()) {
				dinner++
			}
			if isLateNight(at.Hour()) {
				lateNight++
			}
			if f.RestaurantID.Valid {
				visits = append(visits, visit{restaurant: f.RestaurantID.Value, atUnix: at.Unix()})
			}
		}
		if f.FoodCost.Valid && f.ItemsCount.Valid && f.ItemsCount.Value > 0 {
			costPerItem = append(costPerItem, f.FoodCost.Value/f.ItemsCount.Value)
		}
		if f.FeesRatio.Valid {
			feesRatio = append(feesRatio, f.FeesRatio.Value)
		}
		if f.DeliveryMinutes.Valid && f.TotalPaid.Valid && f.TotalPaid.Value > 0 {
			minsPerCurrency = append(minsPerCurrency, f.DeliveryMinutes.Value/f.TotalPaid.Value)
		}
	}

	var perWeek []float64
	for _, ids := range weeks {
		perWeek = append(perWeek, float64(len(ids)))
	}

	// repurchase gap: consecutive orders at the same restaurant, in days
	sort.Slice(visits, func(i, j int) bool {
		if visits[i].restaurant != visits[j].restaurant {
			return visits[i].restaurant < visits[j].restaurant
		}
		return visits[i].atUnix < visits[j].atUnix
	})
	var gaps []float64
	for i := 1; i < len(visits); i++ {
		if visits[i].restaurant != visits[i-1].restaurant {
			continue
		}
		gaps = append(gaps, float64(visits[i].atUnix-visits[i-1].atUnix)/86400.0)
	}

	return []Metric{
		{Name: "avg_orders_per_week", Value: mean(perWeek)},
		{Name: "dinner_share", Value: share(dinner, timed)},
		{Name: "late_night_share", Value: share(lateNight, timed)},
		{Name: "avg_repurchase_gap_days", Value: mean(gaps)},
		{Name: "avg_cost_per_item", Value: mean(costPerItem)},
		{Name: "avg_fees_ratio", Value: mean(feesRatio)},
		{Name: "avg_mins_per_currency", Value: mean(minsPerCurrency)},
	}
}
