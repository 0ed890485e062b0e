// Package ingest loads raw per-platform order exports into the fixed Order
// shape. Column names vary by platform, so every field is resolved once at
// load time from an ordered candidate list.
package ingest

import (
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"

	"orderlens/internal/audit"
	"orderlens/internal/config"
	"orderlens/internal/csvio"
	"orderlens/internal/model"
	"orderlens/internal/timeparse"
)

// restaurantCandidates is the preference order for the canonical
// restaurant column across platform exports.
var restaurantCandidates = []string{"restaurant_name_std", "restaurant_name", "restaurant"}

// Load reads every configured raw export under rawDir. A missing file is a
// fatal precondition failure; unparseable cells inside a file are recovered
// as missing values and counted in the audit registry.
func Load(cfg config.Clean, rawDir string, aud *audit.Registry, log *zap.Logger) ([]model.Order, error) {
	var orders []model.Order
	for _, name := range cfg.RawFiles {
		path := filepath.Join(rawDir, name)
		if err := csvio.RequireFile(path, "place the platform export under "+rawDir); err != nil {
			return nil, err
		}
		t, err := csvio.ReadTable(path)
		if err != nil {
			return nil, err
		}
		t.DropEmptyColumns()
		rows := loadFile(t, platformFromFilename(name), aud)
		log.Info("raw export loaded",
			zap.String("file", name),
			zap.Int("rows", len(rows)),
			zap.Int("columns", len(t.Headers)))
		orders = append(orders, rows...)
	}
	return orders, nil
}

func platformFromFilename(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name))
}

func loadFile(t *csvio.Table, defaultPlatform string, aud *audit.Registry) []model.Order {
	orderID, _ := t.Column("order_id")
	platform, _ := t.Column("platform")
	restaurant, _ := t.Column(restaurantCandidates...)
	ordered, _ := t.Column("ordered_time")
	delivered, _ := t.Column("delivered_time")
	foodCost, _ := t.Column("food_cost")
	deliveryFee, _ := t.Column("delivery_fee")
	serviceFee, _ := t.Column("service_fee")
	totalPaid, _ := t.Column("total_paid")
	itemsCount, _ := t.Column("items_count")

	out := make([]model.Order, 0, len(t.Rows))
	for _, row := range t.Rows {
		aud.RowsIngested.Inc()
		o := model.Order{
			OrderID:     t.Get(row, orderID),
			Platform:    t.Get(row, platform),
			Restaurant:  t.Get(row, restaurant),
			FoodCost:    money(t.Get(row, foodCost), aud),
			DeliveryFee: money(t.Get(row, deliveryFee), aud),
			ServiceFee:  money(t.Get(row, serviceFee), aud),
			TotalPaid:   money(t.Get(row, totalPaid), aud),
			ItemsCount:  money(t.Get(row, itemsCount), aud),
		}
		if o.Platform == "" {
			o.Platform = defaultPlatform
		}
		o.OrderedTime = stamp(t.Get(row, ordered), aud)
		o.DeliveredTime = stamp(t.Get(row, delivered), aud)
		if o.OrderedTime.Valid {
			ot := o.OrderedTime.Time
			o.OrderDate = csvio.NewDate(ot)
			o.OrderHour = csvio.NewInt(ot.Hour())
			o.OrderWeekday = ot.Weekday().String()
		}
		out = append(out, o)
	}
	return out
}

func stamp(raw string, aud *audit.Registry) csvio.Time {
	if strings.TrimSpace(raw) == "" {
		return csvio.Time{}
	}
	t, ok := timeparse.ParseTimestamp(raw)
	if !ok {
		aud.TimestampFailures.Inc()
		return csvio.Time{}
	}
	return csvio.NewTime(t)
}

func money(raw string, aud *audit.Registry) csvio.Float {
	f := csvio.ParseFloat(raw)
	if !f.Valid && strings.TrimSpace(raw) != "" {
		aud.MoneyParseFailures.Inc()
	}
	return f
}

// MissingRates reports the share of null cells per audited column of the
// cleaned table, for the data-quality report.
func MissingRates(orders []model.Order) []ColumnRate {
	n := float64(len(orders))
	if n == 0 {
		return nil
	}
	counts := map[string]int{}
	for _, o := range orders {
		if o.OrderID == "" {
			counts["order_id"]++
		}
		if o.Restaurant == "" {
			counts["restaurant"]++
		}
		if !o.OrderedTime.Valid {
			counts["ordered_time"]++
		}
		if !o.DeliveredTime.Valid {
			counts["delivered_time"]++
		}
		if !o.FoodCost.Valid {
			counts["food_cost"]++
		}
		if !o.DeliveryFee.Valid {
			counts["delivery_fee"]++
		}
		if !o.ServiceFee.Valid {
			counts["service_fee"]++
		}
		if !o.TotalPaid.Valid {
			counts["total_paid"]++
		}
		if !o.ItemsCount.Valid {
			counts["items_count"]++
		}
		if !o.DeliveryMinutes.Valid {
			counts["delivery_minutes"]++
		}
	}
	rates := make([]ColumnRate, 0, len(counts))
	for col, c := range counts {
		rates = append(rates, ColumnRate{Column: col, Rate: float64(c) / n})
	}
	// highest missing rate first, ties by name for stable reports
	sort.Slice(rates, func(i, j int) bool {
		if rates[i].Rate != rates[j].Rate {
			return rates[i].Rate > rates[j].Rate
		}
		return rates[i].Column < rates[j].Column
	})
	return rates
}

type ColumnRate struct {
	Column string
	Rate   float64
}
