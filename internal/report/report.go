// Package report renders the Markdown summaries that sit next to the CSV
// outputs. Reports are regenerated whole on every run.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"orderlens/internal/audit"
	"orderlens/internal/csvio"
	"orderlens/internal/ingest"
	"orderlens/internal/kpi"
	"orderlens/internal/model"
	"orderlens/internal/sanitize"
)

func write(path string, body string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func num(f csvio.Float) string {
	if !f.Valid {
		return "n/a"
	}
	return fmt.Sprintf("%.2f", f.Value)
}

func pct(f csvio.Float) string {
	if !f.Valid {
		return "n/a"
	}
	return fmt.Sprintf("%.1f%%", f.Value*100)
}

// Quality writes data_quality_report.md: ingest counters, sanitizer
// outcomes and per-column missing rates.
func Quality(path string, rowsIn, rowsOut int, rates []ingest.ColumnRate,
	san sanitize.Summary, lines []audit.Line) error {

	var b strings.Builder
	b.WriteString("# Data Quality Report\n\n")
	fmt.Fprintf(&b, "- rows ingested: %d\n", rowsIn)
	fmt.Fprintf(&b, "- rows written: %d\n", rowsOut)
	fmt.Fprintf(&b, "- delivery timestamps flagged by rules: %d\n", san.RuleFlagged)
	fmt.Fprintf(&b, "- delivery durations flagged as outliers: %d\n", san.OutlierFlagged)
	if san.Cap.Valid {
		fmt.Fprintf(&b, "- delivery-minutes cap: %.1f\n", san.Cap.Value)
	} else {
		b.WriteString("- delivery-minutes cap: n/a (no measurable durations)\n")
	}

	b.WriteString("\n## Missing rates\n\n")
	b.WriteString("| column | missing |\n|---|---|\n")
	for _, r := range rates {
		fmt.Fprintf(&b, "| %s | %.1f%% |\n", r.Column, r.Rate*100)
	}

	b.WriteString("\n## Audit counters\n\n")
	b.WriteString("| counter | value |\n|---|---|\n")
	for _, l := range lines {
		fmt.Fprintf(&b, "| %s | %.0f |\n", l.Name, l.Value)
	}
	return write(path, b.String())
}

// Insights writes insights_summary.md from the fact-table rollup, resolving
// surrogate keys back to names through the dimensions.
func Insights(path string, s kpi.Summary,
	platforms []model.DimPlatform, restaurants []model.DimRestaurant) error {

	platformName := map[int]string{}
	for _, p := range platforms {
		platformName[p.PlatformID] = p.Platform
	}
	restaurantName := map[int]string{}
	for _, r := range restaurants {
		restaurantName[r.RestaurantID] = r.Restaurant
	}

	var b strings.Builder
	b.WriteString("# Order Insights\n\n")
	fmt.Fprintf(&b, "- orders: %d\n", s.TotalOrders)
	fmt.Fprintf(&b, "- total spend: %.2f\n", s.TotalSpend)
	fmt.Fprintf(&b, "- average order value: %s\n", num(s.AOV))
	fmt.Fprintf(&b, "- median delivery minutes: %s\n", num(s.MedianDelivery))
	fmt.Fprintf(&b, "- average fees ratio: %s\n", pct(s.AvgFeesRatio))
	fmt.Fprintf(&b, "- late-night share: %s\n", pct(s.LateNightShare))
	fmt.Fprintf(&b, "- weekend share: %s\n", pct(s.WeekendShare))
	if s.TopRestaurant.Valid {
		name := restaurantName[s.TopRestaurant.Value]
		if name == "" {
			name = fmt.Sprintf("restaurant #%d", s.TopRestaurant.Value)
		}
		fmt.Fprintf(&b, "- most ordered restaurant: %s (%d orders)\n", name, s.TopOrders)
	}

	b.WriteString("\n## Platform split\n\n")
	b.WriteString("| platform | orders | spend |\n|---|---|---|\n")
	for _, pc := range s.PlatformSplit {
		name := platformName[pc.PlatformID]
		if name == "" {
			name = fmt.Sprintf("platform #%d", pc.PlatformID)
		}
		fmt.Fprintf(&b, "| %s | %d | %.2f |\n", name, pc.Orders, pc.Spend)
	}
	return write(path, b.String())
}

// Roster writes work_roster_insights.md from the shift-join rollup.
func Roster(path string, ins kpi.RosterInsights) error {
	var b strings.Builder
	b.WriteString("# Work Roster Insights\n\n")
	fmt.Fprintf(&b, "- orders joined: %d\n", ins.TotalOrders)
	fmt.Fprintf(&b, "- workday share: %s\n", pct(ins.WorkdayShare))
	fmt.Fprintf(&b, "- orders after shift end: %d\n", ins.AfterShiftCount)
	fmt.Fprintf(&b, "- median minutes after shift end: %s\n", num(ins.MedianMinsAfter))
	fmt.Fprintf(&b, "- p90 minutes after shift end: %s\n", num(ins.P90MinsAfter))

	b.WriteString("\n## By shift type\n\n")
	b.WriteString("| shift type | orders | avg spend | median delivery |\n|---|---|---|---|\n")
	for _, st := range ins.ByShiftType {
		fmt.Fprintf(&b, "| %s | %d | %s | %s |\n",
			st.Type, st.Orders, num(st.AvgSpend), num(st.MedianDelivery))
	}
	return write(path, b.String())
}

// Behavior writes behavior_insights.md as a readable rendering of the
// behavior metric table.
func Behavior(path string, metrics []kpi.Metric) error {
	var b strings.Builder
	b.WriteString("# Ordering Behavior\n\n")
	b.WriteString("| metric | value |\n|---|---|\n")
	for _, m := range metrics {
		fmt.Fprintf(&b, "| %s | %s |\n", m.Name, num(m.Value))
	}
	return write(path, b.String())
}
