// Package shiftjoin attaches at most one shift interval to each order.
// Workday intervals match by containment with a closest-start tie-break;
// day-off entries match by calendar date alone; a workday match always
// wins over a day-off match for the same order.
package shiftjoin

import (
	"sort"
	"time"

	"orderlens/internal/csvio"
	"orderlens/internal/model"
	"orderlens/internal/roster"
)

// Attach resolves shift context for every order with a parseable ordered
// instant; orders without one are excluded from the result, matching the
// cleaned-table contract that all joins key off the ordered time.
func Attach(orders []model.FactOrder, intervals []roster.Interval) []model.EnrichedOrder {
	work := map[time.Time][]roster.Interval{}
	off := map[time.Time]roster.Interval{}
	for _, iv := range intervals {
		if iv.Type.IsWorkday() {
			work[iv.Date] = append(work[iv.Date], iv)
			// a midnight-crossing window is also a candidate for orders
			// placed in its early-morning tail on the following date
			if iv.Crosses() {
				next := iv.Date.AddDate(0, 0, 1)
				work[next] = append(work[next], iv)
			}
			continue
		}
		if iv.Type == model.ShiftDayOff {
			if _, dup := off[iv.Date]; !dup {
				off[iv.Date] = iv
			}
		}
	}

	var out []model.EnrichedOrder
	for _, o := range orders {
		if !o.OrderedTime.Valid {
			continue
		}
		e := model.EnrichedOrder{FactOrder: o}
		at := o.OrderedTime.Time
		day := midnight(at)

		if match, ok := bestMatch(at, work[day]); ok {
			apply(&e, match)
		} else if dayOff, ok := off[day]; ok {
			apply(&e, dayOff)
		}

		e.IsWorkday = csvio.NewBool01(e.ShiftType.IsWorkday())
		if e.ShiftEnd.Valid {
			mins := at.Sub(e.ShiftEnd.Time).Minutes()
			e.MinsAfterShiftEnd = csvio.NewFloat(mins)
			e.IsAfterShift = csvio.NewBool01(mins >= 0)
		}
		out = append(out, e)
	}
	return out
}

// bestMatch filters candidates down to those containing the instant, then
// picks the one whose start is nearest. Containment guarantees the gap is
// non-negative.
func bestMatch(at time.Time, candidates []roster.Interval) (roster.Interval, bool) {
	var contained []roster.Interval
	for _, iv := range candidates {
		if iv.Contains(at) {
			contained = append(contained, iv)
		}
	}
	if len(contained) == 0 {
		return roster.Interval{}, false
	}
	sort.SliceStable(contained, func(i, j int) bool {
		return at.Sub(*contained[i].Start) < at.Sub(*contained[j].Start)
	})
	return contained[0], true
}

func apply(e *model.EnrichedOrder, iv roster.Interval) {
	e.ShiftType = iv.Type
	if iv.Start != nil {
		e.ShiftStart = csvio.NewTime(*iv.Start)
	}
	if iv.End != nil {
		e.ShiftEnd = csvio.NewTime(*iv.End)
	}
	e.WorkHours = iv.Hours
}

func midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
