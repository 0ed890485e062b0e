// Package roster turns per-day shift records into concrete duty intervals.
// Roster exports duplicate columns with a ".1" suffix when re-saved; the
// resolver prefers the unsuffixed name and fails loudly when neither exists.
package roster

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"orderlens/internal/csvio"
	"orderlens/internal/model"
	"orderlens/internal/timeparse"
)

// Row is one roster record after column resolution, still holding raw cell
// text.
type Row struct {
	Date  string
	Start string
	End   string
	Type  string
	Hours string
}

// Interval is a canonical shift interval anchored to a calendar date.
// Start and End are nil for day-off and unknown shifts. For every other
// resolved interval End is strictly after Start; a window that would close
// at or before it opens is rolled over to the next day.
type Interval struct {
	Date  time.Time // midnight of the anchor day
	Type  model.ShiftType
	Start *time.Time
	End   *time.Time
	Hours csvio.Float
}

// Crosses reports whether the interval ends on a later calendar date than
// it starts.
func (iv Interval) Crosses() bool {
	if iv.Start == nil || iv.End == nil {
		return false
	}
	sy, sm, sd := iv.Start.Date()
	ey, em, ed := iv.End.Date()
	return sy != ey || sm != em || sd != ed
}

// Contains reports whether t falls within [Start, End], inclusive of both
// ends.
func (iv Interval) Contains(t time.Time) bool {
	if iv.Start == nil || iv.End == nil {
		return false
	}
	return !t.Before(*iv.Start) && !t.After(*iv.End)
}

// Resolve maps the roster table onto the fixed Row shape. Each of the four
// required fields tries its base column name first and the ".1" duplicate
// second; failure is a structural error naming the available columns.
func Resolve(t *csvio.Table) ([]Row, error) {
	dateCol, err := t.MustColumn("date")
	if err != nil {
		return nil, fmt.Errorf("roster date: %w", err)
	}
	startCol, err := t.MustColumn("shift_start", "shift_start.1")
	if err != nil {
		return nil, fmt.Errorf("roster shift_start: %w", err)
	}
	endCol, err := t.MustColumn("shift_end", "shift_end.1")
	if err != nil {
		return nil, fmt.Errorf("roster shift_end: %w", err)
	}
	typeCol, err := t.MustColumn("shift_type", "shift_type.1")
	if err != nil {
		return nil, fmt.Errorf("roster shift_type: %w", err)
	}
	hoursCol, _ := t.Column("hours")

	rows := make([]Row, 0, len(t.Rows))
	for _, r := range t.Rows {
		rows = append(rows, Row{
			Date:  t.Get(r, dateCol),
			Start: t.Get(r, startCol),
			End:   t.Get(r, endCol),
			Type:  t.Get(r, typeCol),
			Hours: t.Get(r, hoursCol),
		})
	}
	return rows, nil
}

// NormalizeType lowers, trims and corrects the known misspelling before
// classifying into the closed vocabulary.
func NormalizeType(raw string) model.ShiftType {
	s := strings.ToLower(strings.TrimSpace(raw))
	s = strings.ReplaceAll(s, "evenning", "evening")
	switch {
	case s == "" || s == "nan" || s == "none" || s == "unknown":
		return model.ShiftUnknown
	case strings.Contains(s, "day off") || s == "off":
		return model.ShiftDayOff
	case strings.Contains(s, "morning"):
		return model.ShiftMorning
	case strings.Contains(s, "evening"):
		return model.ShiftEvening
	case strings.Contains(s, "night"):
		return model.ShiftNight
	}
	return model.ShiftUnknown
}

// Build converts resolved rows into deduplicated intervals. Rows with
// unparseable dates are dropped; exact duplicate tuples collapse to one.
// Conflicting rows for the same date survive dedup deliberately — the join
// engine's tie-break resolves them — but are logged.
func Build(rows []Row, log *zap.Logger) []Interval {
	var out []Interval
	seen := map[string]bool{}
	perDate := map[time.Time]int{}
	for _, r := range rows {
		anchor, ok := timeparse.ParseTimestamp(r.Date)
		if !ok {
			log.Warn("roster row dropped: unparseable date", zap.String("date", r.Date))
			continue
		}
		anchor = midnight(anchor)

		iv := Interval{Date: anchor, Type: NormalizeType(r.Type)}
		if iv.Type.IsWorkday() {
			startTok, sok := timeparse.ParseTimeToken(r.Start)
			endTok, eok := timeparse.ParseTimeToken(r.End)
			if sok && eok {
				start := anchor.Add(startTok)
				end := anchor.Add(endTok)
				if !end.After(start) {
					end = end.AddDate(0, 0, 1)
				}
				iv.Start = &start
				iv.End = &end
			}
		}
		iv.Hours = csvio.ParseFloat(r.Hours)
		if !iv.Hours.Valid && iv.Start != nil {
			iv.Hours = csvio.NewFloat(iv.End.Sub(*iv.Start).Hours())
		}

		key := dedupKey(iv)
		if seen[key] {
			continue
		}
		seen[key] = true
		if iv.Type.IsWorkday() {
			perDate[anchor]++
			if perDate[anchor] == 2 {
				log.Warn("conflicting roster rows for date; join tie-break will decide",
					zap.String("date", anchor.Format(csvio.DateLayout)))
			}
		}
		out = append(out, iv)
	}
	return out
}

// Load reads, resolves and builds the roster file in one step.
func Load(path string, log *zap.Logger) ([]Interval, error) {
	t, err := csvio.ReadTable(path)
	if err != nil {
		return nil, err
	}
	rows, err := Resolve(t)
	if err != nil {
		return nil, err
	}
	return Build(rows, log), nil
}

func midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func dedupKey(iv Interval) string {
	s, e := "-", "-"
	if iv.Start != nil {
		s = iv.Start.Format(csvio.TimestampLayout)
	}
	if iv.End != nil {
		e = iv.End.Format(csvio.TimestampLayout)
	}
	h := "-"
	if iv.Hours.Valid {
		h = fmt.Sprintf("%g", iv.Hours.Value)
	}
	return fmt.Sprintf("%s|%s|%s|%s|%s", iv.Date.Format(csvio.DateLayout), iv.Type, s, e, h)
}
