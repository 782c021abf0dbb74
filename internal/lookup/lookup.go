// Package lookup orchestrates the end-to-end product price pipeline on top
// of the search, fetch, pricing and analysis components.
package lookup

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"pricelens/internal/analysis"
	"pricelens/internal/config"
	"pricelens/internal/pricing"
	"pricelens/pkg/domain"
	"pricelens/pkg/fetch"
	"pricelens/pkg/logger"
	"pricelens/pkg/metrics"
	"pricelens/pkg/search"
	"pricelens/pkg/serrors"
)

// Options configure how lookups fan out to source pages. These settings are
// typically derived from application configuration.
type Options struct {
	// MaxConcurrency bounds how many source pages are fetched in parallel
	// within one lookup.
	MaxConcurrency int
}

// NewOptions constructs an Options value from the provided application config.
func NewOptions(cfg *config.Config) Options {
	return Options{MaxConcurrency: cfg.Fetch.MaxConcurrency}
}

// service is the concrete implementation of the Lookup interface. It holds
// no cross-call state; every Product call is independent.
type service struct {
	options    Options
	search     search.Client
	fetcher    fetch.Fetcher
	normalizer *pricing.Normalizer
	analyzer   *analysis.Analyzer
}

// New constructs a Lookup from its collaborators.
func New(options Options,
	searchClient search.Client,
	fetcher fetch.Fetcher,
	normalizer *pricing.Normalizer,
	analyzer *analysis.Analyzer) Lookup {
	if options.MaxConcurrency <= 0 {
		options.MaxConcurrency = 1
	}

	return service{
		options:    options,
		search:     searchClient,
		fetcher:    fetcher,
		normalizer: normalizer,
		analyzer:   analyzer,
	}
}

// Product discovers listing pages (unless the caller supplied them), scrapes
// each page, normalizes the raw listings into standardized records and runs
// the full comparative analysis over the batch. Per-page failures degrade to
// rejected items on the report; only search-provider failures and bad input
// surface as errors.
func (s service) Product(ctx context.Context, product string, websiteURLs []string) (*domain.LookupReport, error) {
	start := time.Now()
	defer func() {
		metrics.LookupDuration.Observe(time.Since(start).Seconds())
	}()

	if strings.TrimSpace(product) == "" {
		return nil, serrors.With(serrors.ErrBadRequest, "product name is required")
	}

	urls := websiteURLs
	if len(urls) == 0 {
		hits, err := s.search.Listings(ctx, product)
		if err != nil {
			return nil, fmt.Errorf("could not search for listings: %w", err)
		}
		urls = make([]string, len(hits))
		for i, h := range hits {
			urls[i] = h.URL
		}
	}
	logger.Debug(ctx, "looking up product",
		zap.String("product", product),
		zap.Int("sources", len(urls)))

	listings := s.scrape(ctx, product, urls)
	batch := s.normalizer.ProcessBatch(ctx, listings)

	return &domain.LookupReport{
		ProductName: product,
		Sources:     urls,
		Summary:     batch.Summary,
		Rejected:    batch.Rejected,
		Analysis:    s.analyzer.FullAnalysis(batch.Records),
	}, nil
}

// scrape fetches every source page with bounded concurrency, preserving the
// source order in the returned slice.
func (s service) scrape(ctx context.Context, product string, urls []string) []domain.RawListing {
	listings := make([]domain.RawListing, len(urls))

	sem := make(chan struct{}, s.options.MaxConcurrency)

	var wg sync.WaitGroup
	for i, pageURL := range urls {
		wg.Add(1)
		go func(i int, pageURL string) {
			defer wg.Done()

			sem <- struct{}{}
			defer func() { <-sem }()

			listings[i] = s.fetcher.Listing(ctx, product, pageURL)
		}(i, pageURL)
	}
	wg.Wait()

	return listings
}
