package pricing_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"pricelens/internal/pricing"
	"pricelens/pkg/domain"
)

func validRecord() domain.Record {
	return domain.Record{
		ProductName:   "iPhone 15 Pro",
		Website:       "https://www.amazon.com/dp/B0CHX1W1XY",
		Domain:        "amazon.com",
		Price:         999.00,
		Currency:      "USD",
		OriginalPrice: "$999.00",
	}
}

func TestValidator_Valid(t *testing.T) {
	v := pricing.NewValidator(pricing.DefaultLimits(), pricing.DefaultCurrencyTable())

	cases := []struct {
		name   string
		mutate func(*domain.Record)
		valid  bool
	}{
		{
			name:   "complete record",
			mutate: func(*domain.Record) {},
			valid:  true,
		},
		{
			name:   "missing product name",
			mutate: func(r *domain.Record) { r.ProductName = "  " },
			valid:  false,
		},
		{
			name:   "missing website",
			mutate: func(r *domain.Record) { r.Website = "" },
			valid:  false,
		},
		{
			name:   "non-http scheme",
			mutate: func(r *domain.Record) { r.Website = "ftp://amazon.com/listing" },
			valid:  false,
		},
		{
			name:   "zero price",
			mutate: func(r *domain.Record) { r.Price = 0 },
			valid:  false,
		},
		{
			name:   "negative price",
			mutate: func(r *domain.Record) { r.Price = -12.50 },
			valid:  false,
		},
		{
			name:   "price above hard maximum",
			mutate: func(r *domain.Record) { r.Price = 1_000_000.01 },
			valid:  false,
		},
		{
			name:   "price exactly at hard maximum",
			mutate: func(r *domain.Record) { r.Price = 1_000_000 },
			valid:  true,
		},
		{
			name:   "plain http is accepted",
			mutate: func(r *domain.Record) { r.Website = "http://ebay.com/itm/12345" },
			valid:  true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := validRecord()
			tc.mutate(&rec)
			require.Equal(t, tc.valid, v.Valid(rec))
		})
	}
}

func TestValidator_Check_ReportsEveryIssue(t *testing.T) {
	v := pricing.NewValidator(pricing.DefaultLimits(), pricing.DefaultCurrencyTable())

	rec := validRecord()
	rec.ProductName = ""
	rec.Website = "not-a-url"
	rec.Price = -1

	d := v.Check(rec)
	require.False(t, d.IsValid)
	require.Equal(t, []string{
		"product name is missing",
		"source URL must start with http:// or https://",
		"price must be greater than zero",
	}, d.Issues)
	require.Empty(t, d.Warnings)
}

func TestValidator_Check_Warnings(t *testing.T) {
	v := pricing.NewValidator(pricing.DefaultLimits(), pricing.DefaultCurrencyTable())

	t.Run("unusually high price warns without rejecting", func(t *testing.T) {
		rec := validRecord()
		rec.Price = 250_000

		d := v.Check(rec)
		require.True(t, d.IsValid)
		require.Empty(t, d.Issues)
		require.Equal(t, []string{"price 250000.00 is unusually high"}, d.Warnings)
	})

	t.Run("unrecognized currency code warns", func(t *testing.T) {
		rec := validRecord()
		rec.Currency = "XYZ"

		d := v.Check(rec)
		require.True(t, d.IsValid)
		require.Equal(t, []string{`unrecognized currency code "XYZ"`}, d.Warnings)
	})

	t.Run("empty currency does not warn", func(t *testing.T) {
		rec := validRecord()
		rec.Currency = ""

		d := v.Check(rec)
		require.True(t, d.IsValid)
		require.Empty(t, d.Warnings)
	})
}
