// Package kpi computes the analyst-facing aggregates: daily and monthly
// order KPIs, behavior metrics, payday/rent summaries and the workday
// food-preference split. Time features are re-derived from the ordered
// instant so the stage does not depend on derived columns being present.
package kpi

import (
	"fmt"
	"sort"

	"orderlens/internal/csvio"
	"orderlens/internal/model"
	"orderlens/internal/star"
)

// Hour buckets used by shares.
func isLateNight(hour int) bool { return hour >= 22 || hour <= 5 }
func isDinner(hour int) bool    { return hour >= 18 && hour <= 21 }

// DailyKPI is one kpi_orders_daily.csv row.
type DailyKPI struct {
	Date           csvio.Date  `csv:"date"`
	Orders         int         `csv:"orders_cnt"`
	TotalSpend     csvio.Float `csv:"total_spend"`
	AOV            csvio.Float `csv:"aov"`
	MedianDelivery csvio.Float `csv:"median_delivery"`
	P90Delivery    csvio.Float `csv:"p90_delivery"`
	AvgFeesRatio   csvio.Float `csv:"avg_fees_ratio"`
	LateNightShare csvio.Float `csv:"late_night_share"`
	WeekendShare   csvio.Float `csv:"weekend_share"`
}

// MonthlyKPI is one kpi_orders_monthly.csv row.
type MonthlyKPI struct {
	Month          string      `csv:"month"`
	Orders         int         `csv:"orders_cnt"`
	TotalSpend     csvio.Float `csv:"total_spend"`
	AOV            csvio.Float `csv:"aov"`
	MedianDelivery csvio.Float `csv:"median_delivery"`
	AvgFeesRatio   csvio.Float `csv:"avg_fees_ratio"`
}

type bucket struct {
	orders    map[string]bool
	spend     []float64
	delivery  []float64
	feesRatio []float64
	lateNight int
	weekend   int
	rows      int
}

func newBucket() *bucket { return &bucket{orders: map[string]bool{}} }

func (b *bucket) add(f model.FactOrder) {
	b.rows++
	b.orders[orderKey(f)] = true
	if f.TotalPaid.Valid {
		b.spend = append(b.spend, f.TotalPaid.Value)
	}
	if f.DeliveryMinutes.Valid {
		b.delivery = append(b.delivery, f.DeliveryMinutes.Value)
	}
	if f.FeesRatio.Valid {
		b.feesRatio = append(b.feesRatio, f.FeesRatio.Value)
	}
	at := f.OrderedTime.Time
	if isLateNight(at.Hour()) {
		b.lateNight++
	}
	if star.WeekdayIndex(at) >= 5 {
		b.weekend++
	}
}

func orderKey(f model.FactOrder) string {
	if f.OrderID != "" {
		return f.OrderID
	}
	return f.OrderedTime.Time.Format(csvio.TimestampLayout)
}

// Daily groups facts by calendar date. Rows without an ordered instant are
// excluded from all time-bucketed KPIs.
func Daily(facts []model.FactOrder) []DailyKPI {
	buckets := map[string]*bucket{}
	for _, f := range facts {
		if !f.OrderedTime.Valid {
			continue
		}
		key := f.OrderedTime.Time.Format(csvio.DateLayout)
		b := buckets[key]
		if b == nil {
			b = newBucket()
			buckets[key] = b
		}
		b.add(f)
	}

	keys := sortedKeys(buckets)
	out := make([]DailyKPI, 0, len(keys))
	for _, key := range keys {
		b := buckets[key]
		day, _ := timeOfKey(key)
		out = append(out, DailyKPI{
			Date:           day,
			Orders:         len(b.orders),
			TotalSpend:     sum(b.spend),
			AOV:            mean(b.spend),
			MedianDelivery: median(b.delivery),
			P90Delivery:    quantile(b.delivery, 0.90),
			AvgFeesRatio:   mean(b.feesRatio),
			LateNightShare: share(b.lateNight, b.rows),
			WeekendShare:   share(b.weekend, b.rows),
		})
	}
	return out
}

// Monthly groups facts by YYYY-MM.
func Monthly(facts []model.FactOrder) []MonthlyKPI {
	buckets := map[string]*bucket{}
	for _, f := range facts {
		if !f.OrderedTime.Valid {
			continue
		}
		key := f.OrderedTime.Time.Format("2006-01")
		b := buckets[key]
		if b == nil {
			b = newBucket()
			buckets[key] = b
		}
		b.add(f)
	}

	keys := sortedKeys(buckets)
	out := make([]MonthlyKPI, 0, len(keys))
	for _, key := range keys {
		b := buckets[key]
		out = append(out, MonthlyKPI{
			Month:          key,
			Orders:         len(b.orders),
			TotalSpend:     sum(b.spend),
			AOV:            mean(b.spend),
			MedianDelivery: median(b.delivery),
			AvgFeesRatio:   mean(b.feesRatio),
		})
	}
	return out
}

// Summary feeds the insights report.
type Summary struct {
	TotalOrders    int
	TotalSpend     float64
	AOV            csvio.Float
	MedianDelivery csvio.Float
	AvgFeesRatio   csvio.Float
	LateNightShare csvio.Float
	WeekendShare   csvio.Float
	TopRestaurant  csvio.Int // restaurant_id with the most orders
	TopOrders      int
	PlatformSplit  []PlatformCount
}

type PlatformCount struct {
	PlatformID int
	Orders     int
	Spend      float64
}

func Summarize(facts []model.FactOrder) Summary {
	s := Summary{}
	ids := map[string]bool{}
	var spend, delivery, fees []float64
	var lateNight, weekend, timed int
	restaurants := map[int]int{}
	platforms := map[int]*PlatformCount{}

	for _, f := range facts {
		ids[orderKey(f)] = true
		if f.TotalPaid.Valid {
			spend = append(spend, f.TotalPaid.Value)
			s.TotalSpend += f.TotalPaid.Value
		}
		if f.DeliveryMinutes.Valid {
			delivery = append(delivery, f.DeliveryMinutes.Value)
		}
		if f.FeesRatio.Valid {
			fees = append(fees, f.FeesRatio.Value)
		}
		if f.OrderedTime.Valid {
			timed++
			if isLateNight(f.OrderedTime.Time.Hour()) {
				lateNight++
			}
			if star.WeekdayIndex(f.OrderedTime.Time) >= 5 {
				weekend++
			}
		}
		if f.RestaurantID.Valid {
			restaurants[f.RestaurantID.Value]++
		}
		if f.PlatformID.Valid {
			pc := platforms[f.PlatformID.Value]
			if pc == nil {
				pc = &PlatformCount{PlatformID: f.PlatformID.Value}
				platforms[f.PlatformID.Value] = pc
			}
			pc.Orders++
			if f.TotalPaid.Valid {
				pc.Spend += f.TotalPaid.Value
			}
		}
	}

	s.TotalOrders = len(ids)
	s.AOV = mean(spend)
	s.MedianDelivery = median(delivery)
	s.AvgFeesRatio = mean(fees)
	s.LateNightShare = share(lateNight, timed)
	s.WeekendShare = share(weekend, timed)

	for rid, cnt := range restaurants {
		if cnt > s.TopOrders || (cnt == s.TopOrders && s.TopRestaurant.Valid && rid < s.TopRestaurant.Value) {
			s.TopRestaurant = csvio.NewInt(rid)
			s.TopOrders = cnt
		}
	}
	for _, pc := range platforms {
		s.PlatformSplit = append(s.PlatformSplit, *pc)
	}
	sort.Slice(s.PlatformSplit, func(i, j int) bool {
		return s.PlatformSplit[i].Orders > s.PlatformSplit[j].Orders
	})
	return s
}

func sortedKeys(m map[string]*bucket) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func timeOfKey(key string) (csvio.Date, error) {
	var d csvio.Date
	if err := d.UnmarshalCSV(key); err != nil {
		return d, fmt.Errorf("parse bucket key: %w", err)
	}
	return d, nil
}
