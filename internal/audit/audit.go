// Package audit counts row-level anomalies during a stage run. The
// registry is gathered into the data-quality report when the stage
// finishes; a batch process has nothing to scrape while it runs.
package audit

import (
	"fmt"
	"sort"

	"github.com/prometheus/client_golang/prometheus"
)

type Registry struct {
	reg *prometheus.Registry

	RowsIngested       prometheus.Counter
	TimestampFailures  prometheus.Counter
	MoneyParseFailures prometheus.Counter
	DeliveryTimeBad    prometheus.Counter
	DurationOutliers   prometheus.Counter
	RowsWritten        prometheus.Counter
}

func NewRegistry() *Registry {
	r := prometheus.NewRegistry()
	rows := prometheus.NewCounter(prometheus.CounterOpts{Name: "clean_rows_ingested_total", Help: "raw rows read across all platform exports"})
	tsFail := prometheus.NewCounter(prometheus.CounterOpts{Name: "clean_timestamp_unparseable_total", Help: "timestamp cells that failed every parser attempt"})
	moneyFail := prometheus.NewCounter(prometheus.CounterOpts{Name: "clean_money_unparseable_total", Help: "monetary cells that did not parse as numbers"})
	bad := prometheus.NewCounter(prometheus.CounterOpts{Name: "clean_delivery_time_bad_total", Help: "rows failing the rule-based delivery-time checks"})
	outliers := prometheus.NewCounter(prometheus.CounterOpts{Name: "clean_delivery_minutes_outlier_total", Help: "rows beyond the per-run duration cap"})
	written := prometheus.NewCounter(prometheus.CounterOpts{Name: "clean_rows_written_total", Help: "rows written to the cleaned table"})

	r.MustRegister(rows, tsFail, moneyFail, bad, outliers, written)
	return &Registry{
		reg:                r,
		RowsIngested:       rows,
		TimestampFailures:  tsFail,
		MoneyParseFailures: moneyFail,
		DeliveryTimeBad:    bad,
		DurationOutliers:   outliers,
		RowsWritten:        written,
	}
}

// Line is one gathered counter for the report.
type Line struct {
	Name  string
	Help  string
	Value float64
}

// Snapshot gathers every counter, sorted by name.
func (r *Registry) Snapshot() ([]Line, error) {
	families, err := r.reg.Gather()
	if err != nil {
		return nil, fmt.Errorf("gather audit counters: %w", err)
	}
	var lines []Line
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			lines = append(lines, Line{
				Name:  mf.GetName(),
				Help:  mf.GetHelp(),
				Value: m.GetCounter().GetValue(),
			})
		}
	}
	sort.Slice(lines, func(i, j int) bool { return lines[i].Name < lines[j].Name })
	return lines, nil
}
