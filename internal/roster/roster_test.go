package roster

import (
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"orderlens/internal/csvio"
	"orderlens/internal/model"
)

func TestResolve_PrefersUnsuffixedColumn(t *testing.T) {
	tbl := &csvio.Table{
		Headers: []string{"date", "shift_start.1", "shift_start", "shift_end", "shift_type"},
		Rows:    [][]string{{"14/03/2024", "stale", "7am", "3pm", "morning"}},
	}
	rows, err := Resolve(tbl)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if rows[0].Start != "7am" {
		t.Fatalf("Start = %q, want the unsuffixed column", rows[0].Start)
	}
}

func TestResolve_MissingColumnError(t *testing.T) {
	tbl := &csvio.Table{Headers: []string{"date", "shift_end", "shift_type"}}
	_, err := Resolve(tbl)
	if err == nil {
		t.Fatalf("expected error")
	}
	for _, want := range []string{"shift_start", "shift_start.1", "date", "shift_end"} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("error %q missing %q", err, want)
		}
	}
}

func TestNormalizeType(t *testing.T) {
	cases := []struct {
		in   string
		want model.ShiftType
	}{
		{"Morning", model.ShiftMorning},
		{"  EVENING ", model.ShiftEvening},
		{"evenning", model.ShiftEvening},
		{"night shift", model.ShiftNight},
		{"Day Off", model.ShiftDayOff},
		{"off", model.ShiftDayOff},
		{"", model.ShiftUnknown},
		{"nan", model.ShiftUnknown},
		{"something else", model.ShiftUnknown},
	}
	for _, c := range cases {
		if got := NormalizeType(c.in); got != c.want {
			t.Fatalf("NormalizeType(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestBuild_MidnightRollover(t *testing.T) {
	rows := []Row{{Date: "14/03/2024", Start: "11pm", End: "7am", Type: "night"}}
	ivs := Build(rows, zap.NewNop())
	if len(ivs) != 1 {
		t.Fatalf("got %d intervals", len(ivs))
	}
	iv := ivs[0]
	if iv.Start == nil || iv.End == nil {
		t.Fatalf("night shift must resolve a window")
	}
	wantStart := time.Date(2024, 3, 14, 23, 0, 0, 0, time.UTC)
	wantEnd := time.Date(2024, 3, 15, 7, 0, 0, 0, time.UTC)
	if !iv.Start.Equal(wantStart) || !iv.End.Equal(wantEnd) {
		t.Fatalf("window [%v, %v], want [%v, %v]", iv.Start, iv.End, wantStart, wantEnd)
	}
	if !iv.Crosses() {
		t.Fatalf("Crosses() = false for a midnight-crossing window")
	}
	if !iv.Hours.Valid || iv.Hours.Value != 8 {
		t.Fatalf("hours fallback = %+v, want 8", iv.Hours)
	}
}

func TestBuild_DayOffHasNoWindow(t *testing.T) {
	rows := []Row{{Date: "2024-03-16", Start: "nan", End: "nan", Type: "Day Off"}}
	ivs := Build(rows, zap.NewNop())
	if len(ivs) != 1 {
		t.Fatalf("got %d intervals", len(ivs))
	}
	iv := ivs[0]
	if iv.Type != model.ShiftDayOff {
		t.Fatalf("type = %q", iv.Type)
	}
	if iv.Start != nil || iv.End != nil {
		t.Fatalf("day off must carry no window")
	}
	if iv.Contains(time.Date(2024, 3, 16, 12, 0, 0, 0, time.UTC)) {
		t.Fatalf("windowless interval must not contain anything")
	}
}

func TestBuild_ExplicitHoursWin(t *testing.T) {
	rows := []Row{{Date: "14/03/2024", Start: "7am", End: "3pm", Type: "morning", Hours: "7.5"}}
	ivs := Build(rows, zap.NewNop())
	if !ivs[0].Hours.Valid || ivs[0].Hours.Value != 7.5 {
		t.Fatalf("hours = %+v, want the roster's own 7.5", ivs[0].Hours)
	}
}

func TestBuild_DedupAndConflicts(t *testing.T) {
	rows := []Row{
		{Date: "14/03/2024", Start: "7am", End: "3pm", Type: "morning"},
		{Date: "14/03/2024", Start: "7am", End: "3pm", Type: "morning"},  // exact duplicate
		{Date: "14/03/2024", Start: "3pm", End: "11pm", Type: "evening"}, // conflict, kept
	}
	ivs := Build(rows, zap.NewNop())
	if len(ivs) != 2 {
		t.Fatalf("got %d intervals, want duplicate collapsed and conflict kept", len(ivs))
	}
}

func TestBuild_UnparseableDateDropped(t *testing.T) {
	rows := []Row{{Date: "not a date", Start: "7am", End: "3pm", Type: "morning"}}
	if ivs := Build(rows, zap.NewNop()); len(ivs) != 0 {
		t.Fatalf("got %d intervals, want 0", len(ivs))
	}
}
