package kpi

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"orderlens/internal/csvio"
)

// Null-tolerant aggregates: every helper returns an invalid Float for an
// empty sample, mirroring how missing values propagate through the rest of
// the pipeline.

func mean(xs []float64) csvio.Float {
	if len(xs) == 0 {
		return csvio.Float{}
	}
	return csvio.NewFloat(stat.Mean(xs, nil))
}

func quantile(xs []float64, q float64) csvio.Float {
	if len(xs) == 0 {
		return csvio.Float{}
	}
	sorted := make([]float64, len(xs))
	copy(sorted, xs)
	sort.Float64s(sorted)
	return csvio.NewFloat(stat.Quantile(q, stat.LinInterp, sorted, nil))
}

func median(xs []float64) csvio.Float { return quantile(xs, 0.5) }

func sum(xs []float64) csvio.Float {
	total := 0.0
	for _, x := range xs {
		total += x
	}
	return csvio.NewFloat(total)
}

func share(hits, total int) csvio.Float {
	if total == 0 {
		return csvio.Float{}
	}
	return csvio.NewFloat(float64(hits) / float64(total))
}
