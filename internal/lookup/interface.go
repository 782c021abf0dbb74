package lookup

import (
	"context"

	"pricelens/pkg/domain"
)

// Lookup runs the end-to-end product pipeline: discover listing pages,
// scrape them, normalize the raw listings and analyze the resulting batch.
type Lookup interface {
	// Product looks up prices for the named product. When websiteURLs is
	// empty, listing pages are discovered through the search provider;
	// otherwise only the given pages are consulted.
	Product(ctx context.Context, product string, websiteURLs []string) (*domain.LookupReport, error)
}
