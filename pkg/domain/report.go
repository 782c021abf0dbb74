package domain

// Statistics holds descriptive statistics over one batch of prices.
// Range is always Max-Min; StdDev is the sample standard deviation and 0 when
// the batch has fewer than two values.
type Statistics struct {
	Min    float64 `json:"lowest_price"`
	Max    float64 `json:"highest_price"`
	Mean   float64 `json:"average_price"`
	Median float64 `json:"median_price"`
	Range  float64 `json:"price_range"`
	StdDev float64 `json:"standard_deviation"`
}

// TrendReport groups prices by source domain. CheapestSite and
// MostExpensiveSite refer to the domains with the lowest and highest average
// price (not individual price); ties resolve to the domain seen first in the
// batch.
type TrendReport struct {
	DomainAverages    map[string]float64   `json:"domain_price_averages"`
	MostExpensiveSite string               `json:"most_expensive_site,omitempty"`
	CheapestSite      string               `json:"cheapest_site,omitempty"`
	PricesByDomain    map[string][]float64 `json:"price_variation_by_site"`
}

// Deal identifies a single record as the best or worst offer in a batch.
type Deal struct {
	Price    float64 `json:"price"`
	Domain   string  `json:"domain"`
	Website  string  `json:"website"`
	Currency string  `json:"currency,omitempty"`
}

// PriceEntry is one row of the flat price listing attached to analysis
// reports for caller display. PriceUSD is an approximate conversion from a
// static rate table and is only set when the observed currency is not USD.
type PriceEntry struct {
	Domain        string  `json:"domain"`
	Website       string  `json:"website"`
	Price         float64 `json:"price"`
	Currency      string  `json:"currency"`
	OriginalPrice string  `json:"original_price_string"`
	PriceUSD      float64 `json:"price_usd,omitempty"`
}

// BestDealReport is the output of the best-deal lookup. For an empty batch
// LowestPrice is nil and Message explains that no data was available.
type BestDealReport struct {
	LowestPrice *float64     `json:"lowest_price,omitempty"`
	Source      string       `json:"source,omitempty"`
	WebsiteURL  string       `json:"website_url,omitempty"`
	ProductName string       `json:"product_name,omitempty"`
	Currency    string       `json:"currency,omitempty"`
	Message     string       `json:"message"`
	AllPrices   []PriceEntry `json:"all_prices"`
	TotalOpts   int          `json:"total_options"`
}

// AnalysisReport is the output of a full comparative analysis over one batch.
// The report is a pure function of its input: no timestamps, no randomness,
// deterministic tie-breaks.
type AnalysisReport struct {
	ProductName     string       `json:"product_name,omitempty"`
	SitesAnalyzed   int          `json:"total_sites_analyzed"`
	ValidPrices     int          `json:"valid_prices_found"`
	Statistics      *Statistics  `json:"price_statistics,omitempty"`
	BestDeal        *Deal        `json:"best_deal,omitempty"`
	WorstDeal       *Deal        `json:"worst_deal,omitempty"`
	Savings         float64      `json:"potential_savings"`
	Recommendations []string     `json:"recommendations"`
	SiteAnalysis    *TrendReport `json:"site_analysis,omitempty"`
	AllPrices       []PriceEntry `json:"all_prices"`
	DataAvailable   bool         `json:"data_available"`
	Error           string       `json:"error,omitempty"`
}

// SitePrice is the selected offer for one requested domain in a targeted
// comparison. When several records match the domain, the cheapest one wins.
type SitePrice struct {
	Price         float64 `json:"price"`
	Currency      string  `json:"currency"`
	Website       string  `json:"website"`
	OriginalPrice string  `json:"original_price_string"`
}

// PriceDelta compares one matched domain against the cheapest matched domain.
// PercentMore is 0 when the cheapest price is 0 to avoid division by zero.
type PriceDelta struct {
	Difference  float64 `json:"difference"`
	PercentMore float64 `json:"percentage_more"`
}

// BestSite names the cheapest domain among the requested ones.
type BestSite struct {
	Domain   string  `json:"domain"`
	Price    float64 `json:"price"`
	Currency string  `json:"currency,omitempty"`
}

// ComparisonReport is the output of a targeted multi-site comparison.
type ComparisonReport struct {
	Requested    []string              `json:"requested_comparison"`
	SitePrices   map[string]SitePrice  `json:"site_prices"`
	Best         *BestSite             `json:"best_among_requested,omitempty"`
	Differences  map[string]PriceDelta `json:"price_differences"`
	SitesFound   int                   `json:"sites_found"`
	SitesMissing []string              `json:"sites_missing"`
}

// LookupReport is the end-to-end output of a product lookup: the sources that
// were consulted, the normalization summary, and the full analysis.
type LookupReport struct {
	ProductName string         `json:"product_name"`
	Sources     []string       `json:"sources"`
	Summary     BatchSummary   `json:"summary"`
	Rejected    []RejectedItem `json:"failed_items"`
	Analysis    AnalysisReport `json:"analysis"`
}
