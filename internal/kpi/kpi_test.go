package kpi

import (
	"testing"
	"time"

	"orderlens/internal/csvio"
	"orderlens/internal/model"
)

func factAt(at time.Time, paid float64) model.FactOrder {
	return model.FactOrder{
		OrderID:     at.Format("20060102150405"),
		OrderedTime: csvio.NewTime(at),
		TotalPaid:   csvio.NewFloat(paid),
	}
}

func TestDaily(t *testing.T) {
	d1 := time.Date(2024, 3, 14, 19, 0, 0, 0, time.UTC)
	facts := []model.FactOrder{
		factAt(d1, 10),
		factAt(d1.Add(3*time.Hour), 20), // 22:00, late night
		factAt(d1.AddDate(0, 0, 2), 30), // Saturday the 16th
	}
	facts[0].DeliveryMinutes = csvio.NewFloat(30)
	facts[1].DeliveryMinutes = csvio.NewFloat(50)

	daily := Daily(facts)
	if len(daily) != 2 {
		t.Fatalf("got %d days", len(daily))
	}
	day := daily[0]
	if day.Orders != 2 {
		t.Fatalf("orders = %d", day.Orders)
	}
	if !day.TotalSpend.Valid || day.TotalSpend.Value != 30 {
		t.Fatalf("total spend = %+v", day.TotalSpend)
	}
	if !day.AOV.Valid || day.AOV.Value != 15 {
		t.Fatalf("aov = %+v", day.AOV)
	}
	if !day.MedianDelivery.Valid || day.MedianDelivery.Value != 40 {
		t.Fatalf("median delivery = %+v", day.MedianDelivery)
	}
	if !day.LateNightShare.Valid || day.LateNightShare.Value != 0.5 {
		t.Fatalf("late night share = %+v", day.LateNightShare)
	}
	if !daily[1].WeekendShare.Valid || daily[1].WeekendShare.Value != 1 {
		t.Fatalf("Saturday weekend share = %+v", daily[1].WeekendShare)
	}
}

func TestDaily_SkipsRowsWithoutInstant(t *testing.T) {
	if got := Daily([]model.FactOrder{{}}); len(got) != 0 {
		t.Fatalf("got %d days for instantless rows", len(got))
	}
}

func TestMonthly(t *testing.T) {
	facts := []model.FactOrder{
		factAt(time.Date(2024, 3, 14, 19, 0, 0, 0, time.UTC), 10),
		factAt(time.Date(2024, 4, 2, 12, 0, 0, 0, time.UTC), 30),
	}
	monthly := Monthly(facts)
	if len(monthly) != 2 {
		t.Fatalf("got %d months", len(monthly))
	}
	if monthly[0].Month != "2024-03" || monthly[1].Month != "2024-04" {
		t.Fatalf("months: %q, %q", monthly[0].Month, monthly[1].Month)
	}
}

func TestSummarize(t *testing.T) {
	at := time.Date(2024, 3, 14, 23, 0, 0, 0, time.UTC)
	facts := []model.FactOrder{factAt(at, 10), factAt(at.Add(time.Hour), 20)}
	facts[0].PlatformID = csvio.NewInt(1)
	facts[1].PlatformID = csvio.NewInt(1)
	facts[0].RestaurantID = csvio.NewInt(7)
	facts[1].RestaurantID = csvio.NewInt(7)

	s := Summarize(facts)
	if s.TotalOrders != 2 {
		t.Fatalf("total orders = %d", s.TotalOrders)
	}
	if s.TotalSpend != 30 {
		t.Fatalf("total spend = %v", s.TotalSpend)
	}
	if !s.TopRestaurant.Valid || s.TopRestaurant.Value != 7 || s.TopOrders != 2 {
		t.Fatalf("top restaurant = %+v (%d)", s.TopRestaurant, s.TopOrders)
	}
	if len(s.PlatformSplit) != 1 || s.PlatformSplit[0].Orders != 2 || s.PlatformSplit[0].Spend != 30 {
		t.Fatalf("platform split = %+v", s.PlatformSplit)
	}
	if !s.LateNightShare.Valid || s.LateNightShare.Value != 1 {
		t.Fatalf("late night share = %+v", s.LateNightShare)
	}
}

func TestBehavior(t *testing.T) {
	base := time.Date(2024, 3, 11, 19, 0, 0, 0, time.UTC) // Monday, dinner hour
	var facts []model.FactOrder
	for i := 0; i < 4; i++ {
		f := factAt(base.AddDate(0, 0, i), 10)
		f.RestaurantID = csvio.NewInt(1)
		facts = append(facts, f)
	}

	metrics := Behavior(facts)
	byName := map[string]csvio.Float{}
	for _, m := range metrics {
		byName[m.Name] = m.Value
	}

	if v := byName["avg_orders_per_week"]; !v.Valid || v.Value != 4 {
		t.Fatalf("avg_orders_per_week = %+v", v)
	}
	if v := byName["dinner_share"]; !v.Valid || v.Value != 1 {
		t.Fatalf("dinner_share = %+v", v)
	}
	if v := byName["avg_repurchase_gap_days"]; !v.Valid || v.Value != 1 {
		t.Fatalf("avg_repurchase_gap_days = %+v, want 1 day between consecutive visits", v)
	}
	if v := byName["late_night_share"]; !v.Valid || v.Value != 0 {
		t.Fatalf("late_night_share = %+v", v)
	}
}

func TestGroupBy(t *testing.T) {
	rows := []model.FinanceOrder{
		{EnrichedOrder: model.EnrichedOrder{FactOrder: model.FactOrder{TotalPaid: csvio.NewFloat(10)}},
			IsPayday: csvio.NewBool01(true)},
		{EnrichedOrder: model.EnrichedOrder{FactOrder: model.FactOrder{TotalPaid: csvio.NewFloat(30)}},
			IsPayday: csvio.NewBool01(true)},
		{EnrichedOrder: model.EnrichedOrder{FactOrder: model.FactOrder{TotalPaid: csvio.NewFloat(5)}},
			IsPayday: csvio.NewBool01(false)},
		{EnrichedOrder: model.EnrichedOrder{FactOrder: model.FactOrder{TotalPaid: csvio.NewFloat(99)}}},
	}

	sum := GroupBy(rows, "is_payday", ByPayday, TotalPaidOf)
	if sum.GroupColumn != "is_payday" {
		t.Fatalf("column = %q", sum.GroupColumn)
	}
	if len(sum.Rows) != 2 {
		t.Fatalf("got %d groups, null key must be skipped", len(sum.Rows))
	}
	if sum.Rows[0].Group != 0 || sum.Rows[1].Group != 1 {
		t.Fatalf("groups not sorted: %+v", sum.Rows)
	}
	payday := sum.Rows[1]
	if payday.Orders != 2 || payday.Mean.Value != 20 || payday.Sum.Value != 40 {
		t.Fatalf("payday group = %+v", payday)
	}

	headers := sum.Headers()
	if headers[0] != "is_payday" || headers[4] != "sum" {
		t.Fatalf("headers = %+v", headers)
	}
	records := sum.Records()
	if records[1][0] != "1" || records[1][1] != "2" {
		t.Fatalf("records = %+v", records)
	}
}

func TestWorkdayFoodPrefs(t *testing.T) {
	mk := func(workday bool, spicy float64) model.OrderRosterNLP {
		return model.OrderRosterNLP{
			EnrichedOrder: model.EnrichedOrder{IsWorkday: csvio.NewBool01(workday)},
			SpicyRatio:    csvio.NewFloat(spicy),
		}
	}
	rows := []model.OrderRosterNLP{mk(true, 0.2), mk(true, 0.4), mk(false, 0.8)}

	prefs := WorkdayFoodPrefs(rows)
	if len(prefs) != 2 {
		t.Fatalf("got %d groups", len(prefs))
	}
	// false group first
	if prefs[0].IsWorkday.Value || !prefs[1].IsWorkday.Value {
		t.Fatalf("group order: %+v", prefs)
	}
	if prefs[1].SpicyRatio.Value != 0.30000000000000004 && prefs[1].SpicyRatio.Value != 0.3 {
		t.Fatalf("workday spicy mean = %v", prefs[1].SpicyRatio.Value)
	}
	if prefs[0].NoodlesRatio.Valid {
		t.Fatalf("group with no noodle data must report null")
	}
}

func TestRosterSummary(t *testing.T) {
	end := time.Date(2024, 3, 14, 15, 0, 0, 0, time.UTC)
	mk := func(typ model.ShiftType, paid, minsAfter float64) model.EnrichedOrder {
		e := model.EnrichedOrder{
			FactOrder: model.FactOrder{TotalPaid: csvio.NewFloat(paid)},
			ShiftType: typ,
			ShiftEnd:  csvio.NewTime(end),
		}
		e.IsWorkday = csvio.NewBool01(typ.IsWorkday())
		e.MinsAfterShiftEnd = csvio.NewFloat(minsAfter)
		return e
	}
	rows := []model.EnrichedOrder{
		mk(model.ShiftMorning, 10, 15),
		mk(model.ShiftMorning, 20, -30),
		mk(model.ShiftEvening, 30, 45),
		mk(model.ShiftDayOff, 40, -10),
	}

	ins := RosterSummary(rows)
	if ins.TotalOrders != 4 {
		t.Fatalf("total = %d", ins.TotalOrders)
	}
	if !ins.WorkdayShare.Valid || ins.WorkdayShare.Value != 0.75 {
		t.Fatalf("workday share = %+v", ins.WorkdayShare)
	}
	if ins.AfterShiftCount != 2 {
		t.Fatalf("after-shift count = %d, want only non-negative offsets", ins.AfterShiftCount)
	}
	if !ins.MedianMinsAfter.Valid || ins.MedianMinsAfter.Value != 30 {
		t.Fatalf("median mins after = %+v", ins.MedianMinsAfter)
	}
	if len(ins.ByShiftType) != 3 {
		t.Fatalf("got %d shift types", len(ins.ByShiftType))
	}
	if ins.ByShiftType[0].Type != model.ShiftMorning || ins.ByShiftType[0].Orders != 2 {
		t.Fatalf("breakdown not sorted by volume: %+v", ins.ByShiftType)
	}
	if ins.ByShiftType[0].AvgSpend.Value != 15 {
		t.Fatalf("morning avg spend = %+v", ins.ByShiftType[0].AvgSpend)
	}
}
