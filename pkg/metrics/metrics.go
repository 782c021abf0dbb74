// Package metrics holds the Prometheus collectors shared by the price
// comparison pipeline.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// DefaultBuckets provides a common set of histogram buckets in seconds that can
// be reused across the application for latency metrics.
var DefaultBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10} //nolint: gochecknoglobals

//nolint: gochecknoglobals
var (
	// ListingsProcessed counts normalized listings by outcome ("accepted" or
	// "rejected").
	ListingsProcessed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pricelens_listings_processed_total",
		Help: "Number of raw listings processed by the normalizer, by outcome.",
	}, []string{"outcome"})

	// LookupDuration observes the wall time of end-to-end product lookups
	// (search, fetch, normalize, analyze).
	LookupDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "pricelens_lookup_duration_seconds",
		Help:    "Duration of end-to-end product price lookups.",
		Buckets: DefaultBuckets,
	})
)
