package kpi

import (
	"sort"

	"orderlens/internal/csvio"
	"orderlens/internal/model"
)

// WorkdayPrefs is one kpi_workday_foodprefs.csv row: the mean menu-profile
// ratios of the restaurants ordered from, split by workday flag.
type WorkdayPrefs struct {
	IsWorkday    csvio.Bool01 `csv:"is_workday"`
	SpicyRatio   csvio.Float  `csv:"spicy_ratio"`
	NoodlesRatio csvio.Float  `csv:"noodles_ratio"`
	RiceRatio    csvio.Float  `csv:"rice_ratio"`
	FriedRatio   csvio.Float  `csv:"fried_ratio"`
	SoupRatio    csvio.Float  `csv:"soup_ratio"`
	VeganRatio   csvio.Float  `csv:"vegan_ratio"`
}

// WorkdayFoodPrefs averages each profile ratio within the workday and
// non-workday groups.
func WorkdayFoodPrefs(rows []model.OrderRosterNLP) []WorkdayPrefs {
	type acc struct{ spicy, noodles, rice, fried, soup, vegan []float64 }
	groups := map[bool]*acc{}
	for _, r := range rows {
		if !r.IsWorkday.Valid {
			continue
		}
		a := groups[r.IsWorkday.Value]
		if a == nil {
			a = &acc{}
			groups[r.IsWorkday.Value] = a
		}
		collect(&a.spicy, r.SpicyRatio)
		collect(&a.noodles, r.NoodlesRatio)
		collect(&a.rice, r.RiceRatio)
		collect(&a.fried, r.FriedRatio)
		collect(&a.soup, r.SoupRatio)
		collect(&a.vegan, r.VeganRatio)
	}

	var out []WorkdayPrefs
	for _, workday := range []bool{false, true} {
		a := groups[workday]
		if a == nil {
			continue
		}
		out = append(out, WorkdayPrefs{
			IsWorkday:    csvio.NewBool01(workday),
			SpicyRatio:   mean(a.spicy),
			NoodlesRatio: mean(a.noodles),
			RiceRatio:    mean(a.rice),
			FriedRatio:   mean(a.fried),
			SoupRatio:    mean(a.soup),
			VeganRatio:   mean(a.vegan),
		})
	}
	return out
}

func collect(dst *[]float64, f csvio.Float) {
	if f.Valid {
		*dst = append(*dst, f.Value)
	}
}

// RosterInsights backs the work-roster insight report.
type RosterInsights struct {
	TotalOrders     int
	WorkdayShare    csvio.Float
	AfterShiftCount int
	MedianMinsAfter csvio.Float
	P90MinsAfter    csvio.Float
	ByShiftType     []ShiftTypeSummary
}

type ShiftTypeSummary struct {
	Type           model.ShiftType
	Orders         int
	AvgSpend       csvio.Float
	MedianDelivery csvio.Float
}

// RosterSummary aggregates the enriched orders: workday share, after-shift
// behavior and a per-shift-type breakdown ordered by volume.
func RosterSummary(rows []model.EnrichedOrder) RosterInsights {
	ins := RosterInsights{TotalOrders: len(rows)}

	var workdays int
	var after []float64
	type acc struct {
		orders   int
		spend    []float64
		delivery []float64
	}
	byType := map[model.ShiftType]*acc{}

	for _, r := range rows {
		if r.IsWorkday.Valid && r.IsWorkday.Value {
			workdays++
		}
		if r.MinsAfterShiftEnd.Valid && r.MinsAfterShiftEnd.Value >= 0 {
			after = append(after, r.MinsAfterShiftEnd.Value)
		}
		if r.ShiftType == "" {
			continue
		}
		a := byType[r.ShiftType]
		if a == nil {
			a = &acc{}
			byType[r.ShiftType] = a
		}
		a.orders++
		if r.TotalPaid.Valid {
			a.spend = append(a.spend, r.TotalPaid.Value)
		}
		if r.DeliveryMinutes.Valid {
			a.delivery = append(a.delivery, r.DeliveryMinutes.Value)
		}
	}

	ins.WorkdayShare = share(workdays, len(rows))
	ins.AfterShiftCount = len(after)
	ins.MedianMinsAfter = median(after)
	ins.P90MinsAfter = quantile(after, 0.90)

	for st, a := range byType {
		ins.ByShiftType = append(ins.ByShiftType, ShiftTypeSummary{
			Type:           st,
			Orders:         a.orders,
			AvgSpend:       mean(a.spend),
			MedianDelivery: median(a.delivery),
		})
	}
	sort.Slice(ins.ByShiftType, func(i, j int) bool {
		if ins.ByShiftType[i].Orders != ins.ByShiftType[j].Orders {
			return ins.ByShiftType[i].Orders > ins.ByShiftType[j].Orders
		}
		return ins.ByShiftType[i].Type < ins.ByShiftType[j].Type
	})
	return ins
}
