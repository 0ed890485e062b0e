package model

import (
	"orderlens/internal/csvio"
)

// OrderRosterNLP is an enriched order joined back to its restaurant name
// and that restaurant's menu profile (orders_roster_nlp.csv).
type OrderRosterNLP struct {
	EnrichedOrder
	Restaurant   string      `csv:"restaurant"`
	SpicyRatio   csvio.Float `csv:"spicy_ratio"`
	NoodlesRatio csvio.Float `csv:"noodles_ratio"`
	RiceRatio    csvio.Float `csv:"rice_ratio"`
	FriedRatio   csvio.Float `csv:"fried_ratio"`
	SoupRatio    csvio.Float `csv:"soup_ratio"`
	VeganRatio   csvio.Float `csv:"vegan_ratio"`
	AvgItemPrice csvio.Float `csv:"avg_item_price"`
}

// OrderRosterNLPFixed replaces the roster-derived shift window with the
// canonical per-type window anchored on the order's own date
// (orders_roster_nlp_fixed.csv).
type OrderRosterNLPFixed struct {
	OrderRosterNLP
	ShiftTypeNorm           ShiftType    `csv:"shift_type_norm"`
	ShiftStartFixed         csvio.Time   `csv:"shift_start_dt_fixed"`
	ShiftEndFixed           csvio.Time   `csv:"shift_end_dt_fixed"`
	MinsAfterShiftEndFixed  csvio.Float  `csv:"mins_after_shift_end_fixed"`
	IsAfterShiftFixed       csvio.Bool01 `csv:"is_after_shift_fixed"`
	MinsFromShiftStartFixed csvio.Float  `csv:"mins_from_shift_start_fixed"`
}
