package analysis

import (
	"fmt"
	"strings"

	"pricelens/internal/pricing"
	"pricelens/pkg/domain"
)

// Messages surfaced on comparative reports.
const (
	MsgLowestPriceFound = "Lowest price found"
	MsgNoValidData      = "No valid data found"
	ErrNoAnalysisData   = "No valid data found for analysis"
)

// Analyzer produces comparative reports over standardized record batches.
// The exchange-rate table is only used to annotate the flat price listing
// with an approximate USD value; selection and statistics always operate on
// the observed prices.
type Analyzer struct {
	rates pricing.ExchangeRates
}

// NewAnalyzer creates an Analyzer with the given exchange-rate table.
func NewAnalyzer(rates pricing.ExchangeRates) *Analyzer {
	return &Analyzer{rates: rates}
}

// NewDefaultAnalyzer creates an Analyzer with the static stock rate table.
func NewDefaultAnalyzer() *Analyzer {
	return NewAnalyzer(pricing.DefaultExchangeRates())
}

// FindBest selects the record with the globally minimum price; ties resolve
// to the record seen first in the batch. The report carries the full price
// list in input order for caller display. An empty batch yields an explicit
// no-data message rather than an error.
func (a *Analyzer) FindBest(records []domain.Record) domain.BestDealReport {
	report := domain.BestDealReport{
		Message:   MsgNoValidData,
		AllPrices: a.priceEntries(records),
		TotalOpts: len(records),
	}
	if len(records) == 0 {
		return report
	}

	best := records[0]
	for _, rec := range records[1:] {
		if rec.Price < best.Price {
			best = rec
		}
	}

	price := best.Price
	report.LowestPrice = &price
	report.Source = best.Domain
	report.WebsiteURL = best.Website
	report.ProductName = best.ProductName
	report.Currency = best.Currency
	report.Message = MsgLowestPriceFound

	return report
}

// FullAnalysis combines statistics, best/worst deal, the per-site trend and
// an ordered recommendation list over one batch. The output is a pure
// function of the input, so repeated calls on the same batch are identical.
func (a *Analyzer) FullAnalysis(records []domain.Record) domain.AnalysisReport {
	report := domain.AnalysisReport{
		SitesAnalyzed:   len(records),
		ValidPrices:     len(records),
		Recommendations: []string{},
		AllPrices:       a.priceEntries(records),
	}
	if len(records) == 0 {
		report.DataAvailable = false
		report.Error = ErrNoAnalysisData

		return report
	}

	report.DataAvailable = true
	report.ProductName = records[0].ProductName

	prices := make([]float64, len(records))
	for i, rec := range records {
		prices[i] = rec.Price
	}
	stats := Stats(prices)
	report.Statistics = stats
	report.SiteAnalysis = Trend(records)

	best, worst := records[0], records[0]
	for _, rec := range records[1:] {
		if rec.Price < best.Price {
			best = rec
		}
		if rec.Price > worst.Price {
			worst = rec
		}
	}
	report.BestDeal = &domain.Deal{
		Price: best.Price, Domain: best.Domain, Website: best.Website, Currency: best.Currency,
	}
	report.WorstDeal = &domain.Deal{
		Price: worst.Price, Domain: worst.Domain, Website: worst.Website, Currency: worst.Currency,
	}
	report.Savings = stats.Range

	report.Recommendations = append(report.Recommendations,
		fmt.Sprintf("Best deal: $%.2f at %s", best.Price, best.Domain))
	if report.Savings > 0 {
		report.Recommendations = append(report.Recommendations,
			fmt.Sprintf("You could save $%.2f by choosing the cheapest option", report.Savings))
	}
	if stats.Mean > 0 && stats.StdDev/stats.Mean > 0.2 {
		report.Recommendations = append(report.Recommendations,
			"Prices vary significantly across sites - comparison shopping recommended")
	}
	if report.SiteAnalysis.CheapestSite != "" {
		report.Recommendations = append(report.Recommendations,
			fmt.Sprintf("%s tends to have lower prices for this type of product",
				report.SiteAnalysis.CheapestSite))
	}

	return report
}

// CompareSites restricts the comparison to the requested domains. A record
// matches a requested domain when the requested string is a case-insensitive
// substring of the record's source domain; among multiple matches the
// cheapest one is kept. Matched domains are compared against the cheapest
// among them; requested domains with no match are reported as missing.
func (a *Analyzer) CompareSites(records []domain.Record, requested []string) domain.ComparisonReport {
	report := domain.ComparisonReport{
		Requested:    requested,
		SitePrices:   map[string]domain.SitePrice{},
		Differences:  map[string]domain.PriceDelta{},
		SitesMissing: []string{},
	}

	// matched preserves the requested order for the best-site tie-break.
	matched := make([]string, 0, len(requested))
	for _, site := range requested {
		want := strings.ToLower(site)

		var pick *domain.Record
		for i := range records {
			if !strings.Contains(strings.ToLower(records[i].Domain), want) {
				continue
			}
			if pick == nil || records[i].Price < pick.Price {
				pick = &records[i]
			}
		}
		if pick == nil {
			report.SitesMissing = append(report.SitesMissing, site)

			continue
		}

		matched = append(matched, site)
		report.SitePrices[site] = domain.SitePrice{
			Price:         pick.Price,
			Currency:      pick.Currency,
			Website:       pick.Website,
			OriginalPrice: pick.OriginalPrice,
		}
	}
	report.SitesFound = len(matched)
	if len(matched) == 0 {
		return report
	}

	bestSite := matched[0]
	for _, site := range matched[1:] {
		if report.SitePrices[site].Price < report.SitePrices[bestSite].Price {
			bestSite = site
		}
	}
	best := report.SitePrices[bestSite]
	report.Best = &domain.BestSite{Domain: bestSite, Price: best.Price, Currency: best.Currency}

	for _, site := range matched {
		diff := report.SitePrices[site].Price - best.Price

		var pct float64
		if best.Price != 0 {
			pct = round1(diff / best.Price * 100)
		}
		report.Differences[site] = domain.PriceDelta{Difference: round2(diff), PercentMore: pct}
	}

	return report
}

// priceEntries flattens records into display rows, annotating non-USD prices
// with an approximate conversion from the static rate table.
func (a *Analyzer) priceEntries(records []domain.Record) []domain.PriceEntry {
	entries := make([]domain.PriceEntry, 0, len(records))
	for _, rec := range records {
		entry := domain.PriceEntry{
			Domain:        rec.Domain,
			Website:       rec.Website,
			Price:         rec.Price,
			Currency:      rec.Currency,
			OriginalPrice: rec.OriginalPrice,
		}
		if rec.Currency != "" && rec.Currency != pricing.DefaultCurrency {
			if usd, ok := a.rates.ToUSD(rec.Price, rec.Currency); ok {
				entry.PriceUSD = round2(usd)
			}
		}
		entries = append(entries, entry)
	}

	return entries
}
