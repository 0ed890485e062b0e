// Package model defines the record shapes exchanged between pipeline
// stages through CSV tables.
package model

import (
	"orderlens/internal/csvio"
)

// ShiftType is the closed shift vocabulary after normalization.
type ShiftType string

const (
	ShiftMorning ShiftType = "morning"
	ShiftEvening ShiftType = "evening"
	ShiftNight   ShiftType = "night"
	ShiftDayOff  ShiftType = "day off"
	ShiftUnknown ShiftType = "unknown"
)

// IsWorkday reports whether the shift type denotes a duty day.
func (s ShiftType) IsWorkday() bool {
	return s != "" && s != ShiftDayOff && s != ShiftUnknown
}

// Order is one cleaned order row (orders_clean.csv). Created by ingestion,
// mutated once by the sanitizer, read-only afterwards.
type Order struct {
	OrderID                string      `csv:"order_id"`
	Platform               string      `csv:"platform"`
	Restaurant             string      `csv:"restaurant"`
	OrderedTime            csvio.Time  `csv:"ordered_time"`
	DeliveredTime          csvio.Time  `csv:"delivered_time"`
	FoodCost               csvio.Float `csv:"food_cost"`
	DeliveryFee            csvio.Float `csv:"delivery_fee"`
	ServiceFee             csvio.Float `csv:"service_fee"`
	TotalPaid              csvio.Float `csv:"total_paid"`
	ItemsCount             csvio.Float `csv:"items_count"`
	DeliveryMinutes        csvio.Float `csv:"delivery_minutes"`
	DeliveryTimeBad        bool        `csv:"delivery_time_bad"`
	DeliveryMinutesOutlier bool        `csv:"delivery_minutes_outlier"`
	OrderDate              csvio.Date  `csv:"order_date"`
	OrderHour              csvio.Int   `csv:"order_hour"`
	OrderWeekday           string      `csv:"order_weekday"`
}

// DimPlatform, DimDate and DimRestaurant are the star-schema dimensions.
// Surrogate keys are assigned in first-seen order starting at 1.
type DimPlatform struct {
	Platform   string `csv:"platform"`
	PlatformID int    `csv:"platform_id"`
}

type DimDate struct {
	Date      csvio.Date   `csv:"date"`
	DateID    int          `csv:"date_id"`
	Year      int          `csv:"year"`
	Month     int          `csv:"month"`
	Weekday   int          `csv:"weekday"`
	IsWeekend csvio.Bool01 `csv:"is_weekend"`
}

type DimRestaurant struct {
	Restaurant   string `csv:"restaurant"`
	RestaurantID int    `csv:"restaurant_id"`
}

// FactOrder is one fact_orders.csv row: the cleaned order keyed into the
// dimensions plus fee-derived measures.
type FactOrder struct {
	OrderID                string       `csv:"order_id"`
	PlatformID             csvio.Int    `csv:"platform_id"`
	RestaurantID           csvio.Int    `csv:"restaurant_id"`
	DateID                 csvio.Int    `csv:"date_id"`
	OrderedTime            csvio.Time   `csv:"ordered_time"`
	DeliveredTime          csvio.Time   `csv:"delivered_time"`
	OrderDate              csvio.Date   `csv:"order_date"`
	OrderHour              csvio.Int    `csv:"order_hour"`
	OrderWeekday           string       `csv:"order_weekday"`
	FoodCost               csvio.Float  `csv:"food_cost"`
	DeliveryFee            csvio.Float  `csv:"delivery_fee"`
	ServiceFee             csvio.Float  `csv:"service_fee"`
	TotalPaid              csvio.Float  `csv:"total_paid"`
	ItemsCount             csvio.Float  `csv:"items_count"`
	DeliveryMinutes        csvio.Float  `csv:"delivery_minutes"`
	TotalFees              csvio.Float  `csv:"total_fees"`
	FeesRatio              csvio.Float  `csv:"fees_ratio"`
	DeliveryTimeBad        bool         `csv:"delivery_time_bad"`
	DeliveryMinutesOutlier bool         `csv:"delivery_minutes_outlier"`
	IsWeekend              csvio.Bool01 `csv:"is_weekend"`
}

// EnrichedOrder is a fact row carrying the shift context resolved by the
// join engine. ShiftType is empty when no roster row covered the order's
// date, which downstream readers can tell apart from an explicit day off.
type EnrichedOrder struct {
	FactOrder
	ShiftType         ShiftType    `csv:"shift_type"`
	ShiftStart        csvio.Time   `csv:"shift_start_dt"`
	ShiftEnd          csvio.Time   `csv:"shift_end_dt"`
	WorkHours         csvio.Float  `csv:"work_hours"`
	IsWorkday         csvio.Bool01 `csv:"is_workday"`
	MinsAfterShiftEnd csvio.Float  `csv:"mins_after_shift_end"`
	IsAfterShift      csvio.Bool01 `csv:"is_after_shift"`
}

// MenuFeature is one menu item with its keyword flags (menu_features.csv).
type MenuFeature struct {
	Restaurant string       `csv:"restaurant"`
	ItemName   string       `csv:"item_name"`
	ItemPrice  csvio.Float  `csv:"item_price"`
	Spicy      csvio.Bool01 `csv:"spicy"`
	Noodles    csvio.Bool01 `csv:"noodles"`
	Rice       csvio.Bool01 `csv:"rice"`
	Fried      csvio.Bool01 `csv:"fried"`
	Soup       csvio.Bool01 `csv:"soup"`
	Vegan      csvio.Bool01 `csv:"vegan"`
}

// RestaurantProfile aggregates a restaurant's menu into keyword ratios and
// an average item price (restaurant_profile.csv).
type RestaurantProfile struct {
	Restaurant   string      `csv:"restaurant"`
	SpicyRatio   csvio.Float `csv:"spicy_ratio"`
	NoodlesRatio csvio.Float `csv:"noodles_ratio"`
	RiceRatio    csvio.Float `csv:"rice_ratio"`
	FriedRatio   csvio.Float `csv:"fried_ratio"`
	SoupRatio    csvio.Float `csv:"soup_ratio"`
	VeganRatio   csvio.Float `csv:"vegan_ratio"`
	AvgItemPrice csvio.Float `csv:"avg_item_price"`
}
