// Package finance annotates enriched orders with payday-cycle and
// rent-due-proximity features. Pure date arithmetic against the configured
// calendar.
package finance

import (
	"time"

	"orderlens/internal/config"
	"orderlens/internal/csvio"
	"orderlens/internal/model"
	"orderlens/internal/star"
)

// Annotate derives the calendar features for every row that has an order
// date (falling back to the ordered instant); rows with neither keep null
// features.
func Annotate(rows []model.EnrichedOrder, cfg config.Finance) []model.FinanceOrder {
	out := make([]model.FinanceOrder, 0, len(rows))
	for _, r := range rows {
		fo := model.FinanceOrder{EnrichedOrder: r}
		day, ok := orderDay(r)
		if ok {
			wd := star.WeekdayIndex(day)
			fo.Weekday = csvio.NewInt(wd)
			fo.IsPayday = csvio.NewBool01(wd == cfg.PaydayWeekday)
			// 0 on payday, counting up until the next one
			fo.DaysSincePayday = csvio.NewInt(((wd-cfg.PaydayWeekday)%7 + 7) % 7)

			dom := day.Day()
			fo.DayOfMonth = csvio.NewInt(dom)
			fo.IsRentDue = csvio.NewBool01(dom == cfg.RentDueDay)
			fo.DaysToRentDue = csvio.NewInt(cfg.RentDueDay - dom)
			fo.IsNearRentDue = csvio.NewBool01(dom >= cfg.NearRentFromDay && dom <= cfg.RentDueDay)
		}
		out = append(out, fo)
	}
	return out
}

func orderDay(r model.EnrichedOrder) (time.Time, bool) {
	if r.OrderDate.Valid {
		return r.OrderDate.Time, true
	}
	if r.OrderedTime.Valid {
		return r.OrderedTime.Time, true
	}
	return time.Time{}, false
}
