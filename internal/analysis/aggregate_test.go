package analysis_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"pricelens/internal/analysis"
	"pricelens/pkg/domain"
)

func TestStats(t *testing.T) {
	t.Run("empty batch returns nil instead of failing", func(t *testing.T) {
		require.Nil(t, analysis.Stats(nil))
		require.Nil(t, analysis.Stats([]float64{}))
	})

	t.Run("four-record batch", func(t *testing.T) {
		s := analysis.Stats([]float64{100, 200, 300, 400})
		require.NotNil(t, s)
		require.Equal(t, 100.0, s.Min)
		require.Equal(t, 400.0, s.Max)
		require.Equal(t, 250.0, s.Mean)
		require.Equal(t, 250.0, s.Median)
		require.Equal(t, 300.0, s.Range)
		require.InDelta(t, 129.10, s.StdDev, 0.005)
	})

	t.Run("single value has zero spread", func(t *testing.T) {
		s := analysis.Stats([]float64{49.99})
		require.Equal(t, 49.99, s.Min)
		require.Equal(t, 49.99, s.Max)
		require.Equal(t, 49.99, s.Median)
		require.Equal(t, 0.0, s.Range)
		require.Equal(t, 0.0, s.StdDev)
	})

	t.Run("odd count takes the middle value as median", func(t *testing.T) {
		s := analysis.Stats([]float64{30, 10, 20})
		require.Equal(t, 20.0, s.Median)
	})

	t.Run("derived values are rounded to two decimals", func(t *testing.T) {
		s := analysis.Stats([]float64{10, 10, 11})
		require.Equal(t, 10.33, s.Mean)
		require.Equal(t, 0.58, s.StdDev)
	})

	t.Run("input slice is not reordered", func(t *testing.T) {
		prices := []float64{30, 10, 20}
		analysis.Stats(prices)
		require.Equal(t, []float64{30, 10, 20}, prices)
	})
}

func rec(dom string, price float64) domain.Record {
	return domain.Record{
		ProductName: "Sony WH-1000XM5",
		Website:     "https://" + dom + "/listing",
		Domain:      dom,
		Price:       price,
		Currency:    "USD",
	}
}

func TestTrend(t *testing.T) {
	t.Run("empty batch returns nil", func(t *testing.T) {
		require.Nil(t, analysis.Trend(nil))
	})

	t.Run("groups and averages by domain", func(t *testing.T) {
		tr := analysis.Trend([]domain.Record{
			rec("amazon.com", 100),
			rec("ebay.com", 80),
			rec("amazon.com", 120),
			rec("walmart.com", 150),
		})
		require.NotNil(t, tr)
		require.Equal(t, map[string]float64{
			"amazon.com":  110,
			"ebay.com":    80,
			"walmart.com": 150,
		}, tr.DomainAverages)
		require.Equal(t, "ebay.com", tr.CheapestSite)
		require.Equal(t, "walmart.com", tr.MostExpensiveSite)
		require.Equal(t, []float64{100, 120}, tr.PricesByDomain["amazon.com"])
	})

	t.Run("average ties resolve to the first-seen domain", func(t *testing.T) {
		tr := analysis.Trend([]domain.Record{
			rec("ebay.com", 50),
			rec("amazon.com", 50),
		})
		require.Equal(t, "ebay.com", tr.CheapestSite)
		require.Equal(t, "ebay.com", tr.MostExpensiveSite)
	})
}
