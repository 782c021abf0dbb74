package pricing_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"pricelens/internal/pricing"
	"pricelens/pkg/domain"
	"pricelens/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.Setup(logger.DevelopmentEnvironment)
	m.Run()
}

func rawListing(website, price string) domain.RawListing {
	return domain.RawListing{
		Product:  "MacBook Air M3",
		Website:  website,
		RawPrice: price,
		Success:  true,
		Title:    "MacBook Air 13-inch M3",
	}
}

func TestDomainFromURL(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"https://www.amazon.com/dp/B0CHX1W1XY", "amazon.com"},
		{"https://Amazon.COM/dp/B0CHX1W1XY", "amazon.com"},
		{"http://ebay.com/itm/12345", "ebay.com"},
		{"https://www.bestbuy.com:443/site/macbook", "bestbuy.com:443"},
		{"not a url at all", "unknown"},
		{"", "unknown"},
		{"/relative/path", "unknown"},
	}

	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			if got := pricing.DomainFromURL(tc.in); got != tc.want {
				t.Fatalf("DomainFromURL(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestNormalizer_Normalize(t *testing.T) {
	n := pricing.NewDefaultNormalizer()

	t.Run("successful listing becomes a record", func(t *testing.T) {
		rec, rej := n.Normalize(rawListing("https://www.amazon.com/dp/B0CHX1W1XY", "$1,099.00"))
		require.Nil(t, rej)
		require.NotNil(t, rec)
		require.Equal(t, "MacBook Air M3", rec.ProductName)
		require.Equal(t, "amazon.com", rec.Domain)
		require.Equal(t, 1099.00, rec.Price)
		require.Equal(t, "USD", rec.Currency)
		require.Equal(t, "$1,099.00", rec.OriginalPrice)
	})

	t.Run("failed fetch is rejected up front", func(t *testing.T) {
		item := rawListing("https://www.amazon.com/dp/B0CHX1W1XY", "$1,099.00")
		item.Success = false
		item.Error = "timeout"

		rec, rej := n.Normalize(item)
		require.Nil(t, rec)
		require.NotNil(t, rej)
		require.Equal(t, pricing.ReasonFetchFailed, rej.Reason)
	})

	t.Run("unparseable price is rejected", func(t *testing.T) {
		rec, rej := n.Normalize(rawListing("https://www.amazon.com/dp/B0CHX1W1XY", "call for price"))
		require.Nil(t, rec)
		require.NotNil(t, rej)
		require.Equal(t, pricing.ReasonNotExtractable, rej.Reason)
	})

	t.Run("invalid record is rejected after extraction", func(t *testing.T) {
		rec, rej := n.Normalize(rawListing("not-a-url", "$49.99"))
		require.Nil(t, rec)
		require.NotNil(t, rej)
		require.Equal(t, pricing.ReasonFailedValidation, rej.Reason)
	})

	t.Run("normalized record always passes validation", func(t *testing.T) {
		v := pricing.NewValidator(pricing.DefaultLimits(), pricing.DefaultCurrencyTable())

		rec, rej := n.Normalize(rawListing("https://ebay.com/itm/12345", "€ 1299,99"))
		require.Nil(t, rej)
		require.True(t, v.Valid(*rec))
	})
}

func TestNormalizer_ProcessBatch(t *testing.T) {
	n := pricing.NewDefaultNormalizer()
	ctx := context.Background()

	t.Run("partitions a mixed batch", func(t *testing.T) {
		failed := rawListing("https://walmart.com/ip/987", "$999.00")
		failed.Success = false

		res := n.ProcessBatch(ctx, []domain.RawListing{
			rawListing("https://www.amazon.com/dp/B0CHX1W1XY", "$1,099.00"),
			rawListing("https://ebay.com/itm/12345", "Price: $979.00"),
			rawListing("https://bestbuy.com/site/123", "contact us"),
			failed,
		})

		require.Len(t, res.Records, 2)
		require.Len(t, res.Rejected, 2)
		require.Equal(t, 2, res.Summary.TotalProcessed)
		require.Equal(t, 2, res.Summary.TotalFailed)
		require.Equal(t, 50.0, res.Summary.SuccessRate)
	})

	t.Run("preserves input order within partitions", func(t *testing.T) {
		res := n.ProcessBatch(ctx, []domain.RawListing{
			rawListing("https://ebay.com/itm/1", "$10.00"),
			rawListing("https://amazon.com/dp/2", "$20.00"),
			rawListing("https://walmart.com/ip/3", "$30.00"),
		})

		require.Equal(t, []string{"ebay.com", "amazon.com", "walmart.com"}, []string{
			res.Records[0].Domain, res.Records[1].Domain, res.Records[2].Domain,
		})
	})

	t.Run("empty batch yields zero success rate", func(t *testing.T) {
		res := n.ProcessBatch(ctx, nil)
		require.Empty(t, res.Records)
		require.Empty(t, res.Rejected)
		require.Equal(t, 0.0, res.Summary.SuccessRate)
	})

	t.Run("uneven split rounds the success rate", func(t *testing.T) {
		res := n.ProcessBatch(ctx, []domain.RawListing{
			rawListing("https://ebay.com/itm/1", "$10.00"),
			rawListing("https://amazon.com/dp/2", "$20.00"),
			rawListing("https://walmart.com/ip/3", "no price here"),
		})
		require.Equal(t, 66.67, res.Summary.SuccessRate)
	})
}
