package finance

import (
	"testing"
	"time"

	"orderlens/internal/config"
	"orderlens/internal/csvio"
	"orderlens/internal/model"
)

var calendar = config.Finance{
	PaydayWeekday:   4, // Friday
	RentDueDay:      30,
	NearRentFromDay: 27,
}

func enriched(at time.Time) model.EnrichedOrder {
	return model.EnrichedOrder{FactOrder: model.FactOrder{
		OrderedTime: csvio.NewTime(at),
		OrderDate:   csvio.NewDate(at),
	}}
}

func TestAnnotate_PaydayCycle(t *testing.T) {
	// 2024-03-15 is a Friday
	rows := []model.EnrichedOrder{
		enriched(time.Date(2024, 3, 15, 19, 0, 0, 0, time.UTC)),
		enriched(time.Date(2024, 3, 16, 19, 0, 0, 0, time.UTC)),
		enriched(time.Date(2024, 3, 14, 19, 0, 0, 0, time.UTC)),
	}

	out := Annotate(rows, calendar)

	friday := out[0]
	if !friday.IsPayday.Valid || !friday.IsPayday.Value {
		t.Fatalf("Friday must be payday: %+v", friday.IsPayday)
	}
	if friday.DaysSincePayday.Value != 0 {
		t.Fatalf("days_since_payday on payday = %d, want 0", friday.DaysSincePayday.Value)
	}
	if out[1].DaysSincePayday.Value != 1 {
		t.Fatalf("Saturday days_since_payday = %d, want 1", out[1].DaysSincePayday.Value)
	}
	if out[2].DaysSincePayday.Value != 6 {
		t.Fatalf("Thursday days_since_payday = %d, want 6", out[2].DaysSincePayday.Value)
	}
	if out[2].IsPayday.Value {
		t.Fatalf("Thursday flagged as payday")
	}
}

func TestAnnotate_RentWindow(t *testing.T) {
	cases := []struct {
		day        int
		isDue      bool
		near       bool
		daysToRent int
	}{
		{25, false, false, 5},
		{27, false, true, 3},
		{30, true, true, 0},
		{31, false, false, -1},
	}
	for _, c := range cases {
		at := time.Date(2024, 3, c.day, 12, 0, 0, 0, time.UTC)
		out := Annotate([]model.EnrichedOrder{enriched(at)}, calendar)
		fo := out[0]
		if fo.IsRentDue.Value != c.isDue {
			t.Fatalf("day %d is_rent_due = %v, want %v", c.day, fo.IsRentDue.Value, c.isDue)
		}
		if fo.IsNearRentDue.Value != c.near {
			t.Fatalf("day %d is_near_rent_due = %v, want %v", c.day, fo.IsNearRentDue.Value, c.near)
		}
		if fo.DaysToRentDue.Value != c.daysToRent {
			t.Fatalf("day %d days_to_rent_due = %d, want %d", c.day, fo.DaysToRentDue.Value, c.daysToRent)
		}
	}
}

func TestAnnotate_FallsBackToOrderedInstant(t *testing.T) {
	row := model.EnrichedOrder{FactOrder: model.FactOrder{
		OrderedTime: csvio.NewTime(time.Date(2024, 3, 15, 19, 0, 0, 0, time.UTC)),
	}}
	out := Annotate([]model.EnrichedOrder{row}, calendar)
	if !out[0].IsPayday.Valid || !out[0].IsPayday.Value {
		t.Fatalf("ordered instant fallback not applied: %+v", out[0].IsPayday)
	}
}

func TestAnnotate_NoDateKeepsNulls(t *testing.T) {
	out := Annotate([]model.EnrichedOrder{{}}, calendar)
	fo := out[0]
	if fo.Weekday.Valid || fo.IsPayday.Valid || fo.DayOfMonth.Valid {
		t.Fatalf("dateless row must keep null features: %+v", fo)
	}
}
