// Package analysis computes descriptive statistics, cross-site trends and
// comparative reports over batches of standardized price records. Every
// operation is a pure function of its input: no hidden state, no clock, no
// randomness, deterministic tie-breaks.
package analysis

import (
	"math"
	"sort"

	"pricelens/pkg/domain"
)

// Stats computes descriptive statistics over a batch of prices. It returns
// nil for an empty batch instead of dividing by zero. Min and Max are
// reported as observed; the derived values are rounded to two decimals. The
// standard deviation is the sample standard deviation (divisor n-1) and 0
// when the batch has fewer than two values.
func Stats(prices []float64) *domain.Statistics {
	if len(prices) == 0 {
		return nil
	}

	min, max := prices[0], prices[0]
	sum := 0.0
	for _, p := range prices {
		if p < min {
			min = p
		}
		if p > max {
			max = p
		}
		sum += p
	}
	mean := sum / float64(len(prices))

	return &domain.Statistics{
		Min:    min,
		Max:    max,
		Mean:   round2(mean),
		Median: round2(median(prices)),
		Range:  round2(max - min),
		StdDev: round2(stdDev(prices, mean)),
	}
}

// Trend groups prices by source domain and labels the domains with the
// lowest and highest average price. Ties resolve to the domain seen first in
// the batch, so the report is deterministic for a given input order. Returns
// nil for an empty batch.
func Trend(records []domain.Record) *domain.TrendReport {
	if len(records) == 0 {
		return nil
	}

	// Insertion order of first occurrence drives the tie-break below.
	order := make([]string, 0, len(records))
	grouped := make(map[string][]float64, len(records))
	for _, rec := range records {
		if _, seen := grouped[rec.Domain]; !seen {
			order = append(order, rec.Domain)
		}
		grouped[rec.Domain] = append(grouped[rec.Domain], rec.Price)
	}

	report := domain.TrendReport{
		DomainAverages: make(map[string]float64, len(order)),
		PricesByDomain: grouped,
	}

	var cheapest, dearest float64
	for i, dom := range order {
		sum := 0.0
		for _, p := range grouped[dom] {
			sum += p
		}
		avg := round2(sum / float64(len(grouped[dom])))
		report.DomainAverages[dom] = avg

		if i == 0 || avg < cheapest {
			cheapest = avg
			report.CheapestSite = dom
		}
		if i == 0 || avg > dearest {
			dearest = avg
			report.MostExpensiveSite = dom
		}
	}

	return &report
}

func median(prices []float64) float64 {
	sorted := make([]float64, len(prices))
	copy(sorted, prices)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}

	return (sorted[mid-1] + sorted[mid]) / 2
}

func stdDev(prices []float64, mean float64) float64 {
	if len(prices) < 2 {
		return 0
	}

	sumSq := 0.0
	for _, p := range prices {
		d := p - mean
		sumSq += d * d
	}

	return math.Sqrt(sumSq / float64(len(prices)-1))
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}

func round1(f float64) float64 {
	return math.Round(f*10) / 10
}
