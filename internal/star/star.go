// Package star assembles the analytical star schema: three small
// dimensions with first-seen surrogate keys and one fact table keyed into
// them.
package star

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"orderlens/internal/csvio"
	"orderlens/internal/model"
)

// Schema is the full star-schema build output.
type Schema struct {
	Platforms   []model.DimPlatform
	Dates       []model.DimDate
	Restaurants []model.DimRestaurant
	Facts       []model.FactOrder
}

// Build constructs the schema from the cleaned orders. Orders without a
// parseable ordered instant stay in the fact table with a null date key.
func Build(orders []model.Order, platformLabels map[string]string) Schema {
	var s Schema
	platformIDs := map[string]int{}
	dateIDs := map[string]int{}
	restaurantIDs := map[string]int{}

	for _, o := range orders {
		platform := StandardizePlatform(o.Platform, platformLabels)
		restaurant := StandardizeRestaurant(o.Restaurant)

		pid, ok := platformIDs[platform]
		if !ok {
			pid = len(platformIDs) + 1
			platformIDs[platform] = pid
			s.Platforms = append(s.Platforms, model.DimPlatform{Platform: platform, PlatformID: pid})
		}

		rid, ok := restaurantIDs[restaurant]
		if !ok {
			rid = len(restaurantIDs) + 1
			restaurantIDs[restaurant] = rid
			s.Restaurants = append(s.Restaurants, model.DimRestaurant{Restaurant: restaurant, RestaurantID: rid})
		}

		fact := model.FactOrder{
			OrderID:                orderID(o),
			PlatformID:             csvio.NewInt(pid),
			RestaurantID:           csvio.NewInt(rid),
			OrderedTime:            o.OrderedTime,
			DeliveredTime:          o.DeliveredTime,
			OrderDate:              o.OrderDate,
			OrderHour:              o.OrderHour,
			OrderWeekday:           o.OrderWeekday,
			FoodCost:               o.FoodCost,
			DeliveryFee:            o.DeliveryFee,
			ServiceFee:             o.ServiceFee,
			TotalPaid:              o.TotalPaid,
			ItemsCount:             o.ItemsCount,
			DeliveryMinutes:        o.DeliveryMinutes,
			DeliveryTimeBad:        o.DeliveryTimeBad,
			DeliveryMinutesOutlier: o.DeliveryMinutesOutlier,
		}

		if o.OrderedTime.Valid {
			dateKey := o.OrderedTime.Time.Format(csvio.DateLayout)
			did, ok := dateIDs[dateKey]
			if !ok {
				did = len(dateIDs) + 1
				dateIDs[dateKey] = did
				d := csvio.NewDate(o.OrderedTime.Time)
				wd := WeekdayIndex(d.Time)
				s.Dates = append(s.Dates, model.DimDate{
					Date:      d,
					DateID:    did,
					Year:      d.Time.Year(),
					Month:     int(d.Time.Month()),
					Weekday:   wd,
					IsWeekend: csvio.NewBool01(wd >= 5),
				})
			}
			fact.DateID = csvio.NewInt(did)
			fact.IsWeekend = csvio.NewBool01(WeekdayIndex(o.OrderedTime.Time) >= 5)
		}

		fees := 0.0
		if o.DeliveryFee.Valid {
			fees += o.DeliveryFee.Value
		}
		if o.ServiceFee.Valid {
			fees += o.ServiceFee.Value
		}
		fact.TotalFees = csvio.NewFloat(fees)
		if o.TotalPaid.Valid && o.TotalPaid.Value > 0 {
			fact.FeesRatio = csvio.NewFloat(fees / o.TotalPaid.Value)
		}

		s.Facts = append(s.Facts, fact)
	}
	return s
}

// StandardizePlatform lowers and trims the label, then applies the display
// map; unmapped platforms keep the normalized form.
func StandardizePlatform(raw string, labels map[string]string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" || s == "nan" || s == "none" {
		return "Unknown"
	}
	if label, ok := labels[s]; ok {
		return label
	}
	return s
}

// StandardizeRestaurant trims and maps blank or placeholder names to
// "Unknown".
func StandardizeRestaurant(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" || strings.EqualFold(s, "nan") || strings.EqualFold(s, "none") {
		return "Unknown"
	}
	return s
}

// WeekdayIndex counts from Monday=0 through Sunday=6, the numbering every
// weekday column in the pipeline uses.
func WeekdayIndex(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// orderID keeps a natural id when the export had one; otherwise it derives
// a stable id by hashing the row content, so re-running the stage over the
// same data yields the same keys.
func orderID(o model.Order) string {
	if o.OrderID != "" {
		return o.OrderID
	}
	ordered, _ := o.OrderedTime.MarshalCSV()
	delivered, _ := o.DeliveredTime.MarshalCSV()
	content := strings.Join([]string{
		o.Platform, o.Restaurant, ordered, delivered,
		num(o.FoodCost), num(o.DeliveryFee), num(o.ServiceFee), num(o.TotalPaid), num(o.ItemsCount),
	}, "|")
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(content)).String()
}

func num(f csvio.Float) string {
	if !f.Valid {
		return ""
	}
	return fmt.Sprintf("%g", f.Value)
}
