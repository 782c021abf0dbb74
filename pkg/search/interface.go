// Package search defines the interface and data types used to discover
// product listing pages on e-commerce sites through a backing search
// provider.
package search

import (
	"context"
	"net/url"
	"strings"
)

// Hit is one product listing page found by the provider.
type Hit struct {
	Title          string // Title is the result title as returned by the provider.
	URL            string // URL is the listing page address.
	Snippet        string // Snippet is the provider's text excerpt, often carrying a price token.
	Domain         string // Domain is the lowercased host with a leading "www." stripped.
	Position       int    // Position is the provider's result rank, starting at 1.
	PriceMentioned string // PriceMentioned is a dollar token lifted from the snippet, when present.
}

// Client is the abstraction for listing discovery. Implementations query a
// search provider for shopping results and return only hits on recognized
// e-commerce domains.
type Client interface {
	// Listings searches for shopping pages offering the named product.
	Listings(ctx context.Context, product string) ([]Hit, error)
}

// DefaultStoreDomains returns the stock allowlist of e-commerce domains a
// search hit must belong to. Matching is a substring check against the hit's
// host so regional variants (amazon.co.uk, ebay.de) pass too.
func DefaultStoreDomains() []string {
	return []string{
		"amazon.", "ebay.", "walmart.", "target.", "bestbuy.",
		"newegg.", "etsy.", "shopify.", "alibaba.", "aliexpress.",
		"costco.", "homedepot.", "lowes.", "wayfair.", "overstock.",
		"zappos.",
	}
}

// StoreDomain reports whether the URL belongs to one of the allowed store
// domains, and returns the normalized host either way.
func StoreDomain(rawURL string, allowed []string) (string, bool) {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return "", false
	}
	host := strings.TrimPrefix(strings.ToLower(u.Host), "www.")

	for _, d := range allowed {
		if strings.Contains(host, d) {
			return host, true
		}
	}

	return host, false
}

// shoppingKeywords admit a hit from an unlisted domain when its snippet
// clearly talks about buying the product.
var shoppingKeywords = []string{"price", "buy", "shop", "store", "$"}

// MentionsShopping reports whether the snippet carries shopping language.
func MentionsShopping(snippet string) bool {
	s := strings.ToLower(snippet)
	for _, kw := range shoppingKeywords {
		if strings.Contains(s, kw) {
			return true
		}
	}

	return false
}
