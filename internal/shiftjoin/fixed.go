package shiftjoin

import (
	"time"

	"orderlens/internal/config"
	"orderlens/internal/csvio"
	"orderlens/internal/model"
	"orderlens/internal/roster"
)

// FixedTiming is the shift window re-derived from the order's own date and
// the canonical per-type window table, independent of what the roster said.
// Useful when roster times are themselves suspect.
type FixedTiming struct {
	Type          model.ShiftType
	Start         csvio.Time
	End           csvio.Time
	MinsAfterEnd  csvio.Float
	MinsFromStart csvio.Float
	// IsAfterEnd is always resolved: false covers both "before end" and
	// "no window for this shift type".
	IsAfterEnd csvio.Bool01
}

// Fixed anchors the configured window for rawType on orderedAt's date.
// Day-off, unknown and unconfigured types yield no window.
func Fixed(orderedAt time.Time, rawType string, windows map[string]config.Window) FixedTiming {
	ft := FixedTiming{
		Type:       roster.NormalizeType(rawType),
		IsAfterEnd: csvio.NewBool01(false),
	}
	w, ok := windows[string(ft.Type)]
	if !ok || !ft.Type.IsWorkday() {
		return ft
	}
	day := midnight(orderedAt)
	start := day.Add(time.Duration(w.StartHour) * time.Hour)
	end := day.Add(time.Duration(w.EndHour) * time.Hour)
	if !end.After(start) {
		end = end.AddDate(0, 0, 1)
	}
	ft.Start = csvio.NewTime(start)
	ft.End = csvio.NewTime(end)
	ft.MinsAfterEnd = csvio.NewFloat(orderedAt.Sub(end).Minutes())
	ft.MinsFromStart = csvio.NewFloat(orderedAt.Sub(start).Minutes())
	ft.IsAfterEnd = csvio.NewBool01(ft.MinsAfterEnd.Value >= 0)
	return ft
}
