package kpi

import (
	"sort"
	"strconv"

	"orderlens/internal/csvio"
	"orderlens/internal/model"
)

// GroupSummary is a count/mean/median/sum rollup of one monetary field over
// an integer grouping key (payday flag, cycle day, rent proximity, day of
// month). The grouping column name varies per table, so rows render
// through the dynamic table writer.
type GroupSummary struct {
	GroupColumn string
	Rows        []GroupRow
}

type GroupRow struct {
	Group  int
	Orders int
	Mean   csvio.Float
	Median csvio.Float
	Sum    csvio.Float
}

// Headers returns the CSV header row for this summary.
func (g GroupSummary) Headers() []string {
	return []string{g.GroupColumn, "orders", "mean", "median", "sum"}
}

// Records renders the rows for the dynamic writer.
func (g GroupSummary) Records() [][]string {
	out := make([][]string, 0, len(g.Rows))
	for _, r := range g.Rows {
		m, _ := r.Mean.MarshalCSV()
		md, _ := r.Median.MarshalCSV()
		s, _ := r.Sum.MarshalCSV()
		out = append(out, []string{
			strconv.Itoa(r.Group), strconv.Itoa(r.Orders), m, md, s,
		})
	}
	return out
}

// GroupBy summarizes value(row) per key(row); rows where either side is
// null are skipped.
func GroupBy(rows []model.FinanceOrder, column string,
	key func(model.FinanceOrder) (int, bool),
	value func(model.FinanceOrder) csvio.Float) GroupSummary {

	groups := map[int][]float64{}
	for _, r := range rows {
		k, ok := key(r)
		if !ok {
			continue
		}
		v := value(r)
		if !v.Valid {
			continue
		}
		groups[k] = append(groups[k], v.Value)
	}

	keys := make([]int, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Ints(keys)

	out := GroupSummary{GroupColumn: column}
	for _, k := range keys {
		vals := groups[k]
		out.Rows = append(out.Rows, GroupRow{
			Group:  k,
			Orders: len(vals),
			Mean:   mean(vals),
			Median: median(vals),
			Sum:    sum(vals),
		})
	}
	return out
}

// Grouping keys for the payday/rent KPI tables.

func ByPayday(r model.FinanceOrder) (int, bool)   { return bool01(r.IsPayday) }
func ByCycleDay(r model.FinanceOrder) (int, bool) { return intKey(r.DaysSincePayday) }
func ByNearRent(r model.FinanceOrder) (int, bool) { return bool01(r.IsNearRentDue) }
func ByMonthDay(r model.FinanceOrder) (int, bool) { return intKey(r.DayOfMonth) }

// Value selectors.

func TotalPaidOf(r model.FinanceOrder) csvio.Float { return r.TotalPaid }
func FoodCostOf(r model.FinanceOrder) csvio.Float  { return r.FoodCost }

func bool01(b csvio.Bool01) (int, bool) {
	if !b.Valid {
		return 0, false
	}
	if b.Value {
		return 1, true
	}
	return 0, true
}

func intKey(i csvio.Int) (int, bool) { return i.Value, i.Valid }
