// Package sanitize repairs physically implausible order/delivery instant
// pairs. Two independent passes run over the whole batch: a rule-based pass
// for structurally impossible values and a distribution-based pass whose
// threshold is recomputed from the batch itself on every run.
package sanitize

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"orderlens/internal/audit"
	"orderlens/internal/csvio"
	"orderlens/internal/model"
)

// Summary reports what the sanitizer did to the batch.
type Summary struct {
	RuleFlagged    int
	OutlierFlagged int
	// Cap is the delivery-minutes quantile cap; invalid when the batch had
	// no measurable durations.
	Cap csvio.Float
}

// Orders mutates the batch in place: flagged rows keep their audit flags
// and lose only the delivered instant, never the ordered instant.
func Orders(orders []model.Order, quantile float64, aud *audit.Registry) Summary {
	var s Summary

	// Rule pass: delivery before order, or a year mismatch of two or more
	// (misparsed years). Exactly one year apart is tolerated for orders
	// spanning New Year's Eve.
	for i := range orders {
		o := &orders[i]
		if !o.OrderedTime.Valid || !o.DeliveredTime.Valid {
			continue
		}
		yearDiff := o.DeliveredTime.Time.Year() - o.OrderedTime.Time.Year()
		if yearDiff < 0 {
			yearDiff = -yearDiff
		}
		if o.DeliveredTime.Time.Before(o.OrderedTime.Time) || yearDiff >= 2 {
			o.DeliveryTimeBad = true
			o.DeliveredTime = csvio.Time{}
			s.RuleFlagged++
			aud.DeliveryTimeBad.Inc()
		}
	}

	// Duration pass: compute delivery minutes for the surviving pairs and
	// cap them at the batch quantile.
	var minutes []float64
	for i := range orders {
		o := &orders[i]
		if !o.OrderedTime.Valid || !o.DeliveredTime.Valid {
			continue
		}
		m := o.DeliveredTime.Time.Sub(o.OrderedTime.Time).Minutes()
		o.DeliveryMinutes = csvio.NewFloat(m)
		minutes = append(minutes, m)
	}
	if len(minutes) == 0 {
		return s
	}
	sort.Float64s(minutes)
	capMinutes := stat.Quantile(quantile, stat.LinInterp, minutes, nil)
	s.Cap = csvio.NewFloat(capMinutes)

	for i := range orders {
		o := &orders[i]
		if !o.DeliveryMinutes.Valid {
			continue
		}
		if o.DeliveryMinutes.Value < 0 || o.DeliveryMinutes.Value > capMinutes {
			o.DeliveryMinutesOutlier = true
			o.DeliveredTime = csvio.Time{}
			s.OutlierFlagged++
			aud.DurationOutliers.Inc()
		}
	}
	return s
}
