package model

import (
	"orderlens/internal/csvio"
)

// FinanceOrder is an enriched order annotated with payday-cycle and
// rent-proximity features (orders_finance_context.csv).
type FinanceOrder struct {
	EnrichedOrder
	Weekday         csvio.Int    `csv:"weekday"`
	IsPayday        csvio.Bool01 `csv:"is_payday"`
	DaysSincePayday csvio.Int    `csv:"days_since_payday"`
	DayOfMonth      csvio.Int    `csv:"day_of_month"`
	IsRentDue       csvio.Bool01 `csv:"is_rent_due"`
	DaysToRentDue   csvio.Int    `csv:"days_to_rent_due"`
	IsNearRentDue   csvio.Bool01 `csv:"is_near_rent_due"`
}
