package sim

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
	"gonum.org/v1/gonum/stat"
)

// Summary is the reduced outcome of one harness run.
// Count, Average, Maximum and Minimum are exact decimal figures; Stats holds
// float64 descriptive statistics used only by machine-readable sinks.
type Summary struct {
	Title   string          `json:"title"`
	Count   int             `json:"count"`
	Average decimal.Decimal `json:"average"`
	Maximum decimal.Decimal `json:"maximum"`
	Minimum decimal.Decimal `json:"minimum"`
	Stats   Stats           `json:"stats"`
}

// Stats are approximate spread statistics of the recorded results.
type Stats struct {
	StdDev float64 `json:"stddev"`
	P5     float64 `json:"p5"`
	P50    float64 `json:"p50"`
	P95    float64 `json:"p95"`
}

// Summarize reduces results into a Summary. The average is sum/count in
// decimal arithmetic; no intermediate float conversion is involved.
func Summarize(title string, results []decimal.Decimal) (Summary, error) {
	if len(results) == 0 {
		return Summary{}, fmt.Errorf("%w: cannot summarize zero results", ErrConfiguration)
	}
	sum := decimal.Zero
	maximum, minimum := results[0], results[0]
	for _, r := range results {
		sum = sum.Add(r)
		if r.GreaterThan(maximum) {
			maximum = r
		}
		if r.LessThan(minimum) {
			minimum = r
		}
	}
	return Summary{
		Title:   title,
		Count:   len(results),
		Average: sum.Div(decimal.NewFromInt(int64(len(results)))),
		Maximum: maximum,
		Minimum: minimum,
		Stats:   describe(results),
	}, nil
}

func describe(results []decimal.Decimal) Stats {
	xs := make([]float64, len(results))
	for i, r := range results {
		xs[i] = r.InexactFloat64()
	}
	sort.Float64s(xs)

	var s Stats
	if len(xs) > 1 {
		s.StdDev = stat.StdDev(xs, nil)
	}
	s.P5 = stat.Quantile(0.05, stat.Empirical, xs, nil)
	s.P50 = stat.Quantile(0.50, stat.Empirical, xs, nil)
	s.P95 = stat.Quantile(0.95, stat.Empirical, xs, nil)
	return s
}
