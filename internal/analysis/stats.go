package analysis

import (
	"math"
	"sort"
)

// Summary holds the distribution statistics for one metric column.
type Summary struct {
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	StdDev float64 `json:"std_dev"` // population standard deviation
}

// Summarize computes distribution statistics over a value set.
func Summarize(values []float64) Summary {
	n := len(values)
	if n == 0 {
		return Summary{}
	}

	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(n)

	var sq float64
	for _, v := range values {
		d := v - mean
		sq += d * d
	}

	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	var median float64
	if n%2 == 1 {
		median = sorted[n/2]
	} else {
		median = (sorted[n/2-1] + sorted[n/2]) / 2
	}

	return Summary{
		Count:  n,
		Mean:   mean,
		Median: median,
		StdDev: math.Sqrt(sq / float64(n)),
	}
}

// MetricColumns extracts the named metric columns from a record set, skipping
// unfit sentinel values so they do not skew the distributions.
func MetricColumns(records []Record) map[string][]float64 {
	cols := map[string][]float64{}
	add := func(name string, v float64) {
		cols[name] = append(cols[name], v)
	}
	for _, r := range records {
		if r.Fits() {
			add("efficiency_used", r.Efficiency)
			add("cut_loss_width_used", r.CutLossWidth)
			add("cut_loss_area_used", r.CutLossArea)
		}
		add("efficiency_ideal", r.EfficiencyIdeal)
		add("cut_loss_width_ideal", r.CutLossWidthIdeal)
		add("cut_loss_area_ideal", r.CutLossAreaIdeal)
		add("bolt_width_ideal", r.IdealBoltWidth)
		add("pattern_width", r.PatternWidth)
		add("pattern_height", r.PatternHeight)
		if r.OffcutUsable {
			add("offcut_yield", r.OffcutYield)
		}
	}
	return cols
}

// SummarizeRecords computes a Summary per metric column over a record set.
func SummarizeRecords(records []Record) map[string]Summary {
	out := map[string]Summary{}
	for name, values := range MetricColumns(records) {
		out[name] = Summarize(values)
	}
	return out
}
